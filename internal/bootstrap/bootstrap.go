package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	chimeinadapter "zazen/internal/modules/chime/adapter/in"
	chimeoutadapter "zazen/internal/modules/chime/adapter/out"
	chimeservice "zazen/internal/modules/chime/service"
	chimeusecase "zazen/internal/modules/chime/usecase"
	historyinadapter "zazen/internal/modules/history/adapter/in"
	historyoutadapter "zazen/internal/modules/history/adapter/out"
	historyservice "zazen/internal/modules/history/service"
	historyusecase "zazen/internal/modules/history/usecase"
	sessioninadapter "zazen/internal/modules/session/adapter/in"
	sessionoutadapter "zazen/internal/modules/session/adapter/out"
	sessionin "zazen/internal/modules/session/port/in"
	sessionservice "zazen/internal/modules/session/service"
	sessionusecase "zazen/internal/modules/session/usecase"
	settingsinadapter "zazen/internal/modules/settings/adapter/in"
	settingsoutadapter "zazen/internal/modules/settings/adapter/out"
	settingsservice "zazen/internal/modules/settings/service"
	settingsusecase "zazen/internal/modules/settings/usecase"
	"zazen/internal/platform/clock"
	"zazen/internal/platform/config"
	"zazen/internal/platform/id"
	uiapp "zazen/internal/ui/app"
)

type App struct {
	SessionCLI  sessioninadapter.CLIHandler
	HistoryCLI  historyinadapter.CLIHandler
	ChimeCLI    chimeinadapter.CLIHandler
	SettingsCLI settingsinadapter.CLIHandler

	session sessionin.Usecase
	engine  *sessionservice.Engine
	clock   clock.Clock
	log     hclog.Logger
	logFile *os.File
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	log, logFile, err := newLogger(cfg.LogPath)
	if err != nil {
		return nil, err
	}

	settingsUC := settingsusecase.NewInteractor(settingsservice.NewSettingsService(
		settingsoutadapter.NewYAMLStore(cfg.SettingsPath),
	))

	chimeUC := chimeusecase.NewInteractor(chimeservice.NewChimeService(
		chimeoutadapter.NewFileManifestStore(cfg.ChimesPath),
		chimeoutadapter.NewGRPCHost(),
		chimeoutadapter.NewTerminalBell(os.Stderr),
	))

	journal := historyoutadapter.NewJournalStore(cfg.JournalPath)
	index, err := historyoutadapter.NewSQLiteIndex(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new history index: %w", err)
	}
	historyUC := historyusecase.NewInteractor(historyservice.NewHistoryService(journal, index, clk, ids))

	engine := sessionservice.NewEngine(
		clk,
		sessionoutadapter.NewChimeNotifier(chimeUC, settingsUC),
		sessionoutadapter.NewHistoryRecorder(historyUC),
		log.Named("engine"),
	)
	sessionUC := sessionusecase.NewInteractor(engine, settingsUC)

	return &App{
		SessionCLI:  sessioninadapter.NewCLIHandler(sessionUC),
		HistoryCLI:  historyinadapter.NewCLIHandler(historyUC),
		ChimeCLI:    chimeinadapter.NewCLIHandler(chimeUC),
		SettingsCLI: settingsinadapter.NewCLIHandler(settingsUC),
		session:     sessionUC,
		engine:      engine,
		clock:       clk,
		log:         log,
		logFile:     logFile,
	}, nil
}

// Session exposes the session usecase for headless runs.
func (a *App) Session() sessionin.Usecase { return a.session }

// NewRunner builds the ticker loop that drives a headless session.
func (a *App) NewRunner() *sessionservice.Runner {
	return sessionservice.NewRunner(a.engine, a.clock, 0)
}

// Close flushes in-flight engine work and releases the log file.
func (a *App) Close() {
	a.engine.Close()
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.session, app.HistoryCLI)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	_, err := program.Run()
	return err
}

func newLogger(logPath string) (hclog.Logger, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log := hclog.New(&hclog.LoggerOptions{
		Name:   "zazen",
		Output: file,
		Level:  hclog.Info,
	})
	return log, file, nil
}
