package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"zazen/internal/bootstrap"
	sessiondto "zazen/internal/modules/session/dto"
	settingsdto "zazen/internal/modules/settings/dto"
	"zazen/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var homePath string

	root := &cobra.Command{
		Use:           "zazen",
		Short:         "Meditation session timer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&homePath, "home", "", "data directory (default ~/.zazen)")

	root.AddCommand(newTUICmd(&homePath))
	root.AddCommand(newSitCmd(&homePath))
	root.AddCommand(newHistoryCmd(&homePath))
	root.AddCommand(newChimeCmd(&homePath))
	root.AddCommand(newConfigCmd(&homePath))
	return root
}

func loadApp(homePath string) (*bootstrap.App, error) {
	cfg, err := config.New(homePath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the zazen terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}

func newSitCmd(homePath *string) *cobra.Command {
	var durationMinutes int
	var cues []string
	var quiet bool

	sit := &cobra.Command{
		Use:   "sit",
		Short: "Run a headless meditation session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var cueNames []string
			if cmd.Flags().Changed("cues") {
				cueNames = cues
			}
			state, err := app.Session().Start(ctx, sessiondto.StartInput{
				DurationSeconds: durationMinutes * 60,
				Cues:            cueNames,
			})
			if err != nil {
				return err
			}
			if !quiet {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sitting for %s\n", formatClock(state.TotalSeconds))
			}

			runErr := app.NewRunner().Run(ctx)
			if errors.Is(runErr, context.Canceled) {
				// Interrupted sittings are still worth recording.
				final := app.Session().Finish(context.Background())
				if !quiet {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\ninterrupted after %s\n", formatClock(final.ElapsedSeconds))
				}
				return nil
			}
			if runErr != nil {
				return runErr
			}
			if !quiet {
				final := app.Session().State(context.Background())
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "finished: sat for %s\n", formatClock(final.ElapsedSeconds))
			}
			return nil
		},
	}
	sit.Flags().IntVar(&durationMinutes, "duration", 0, "session length in minutes (0 uses your default)")
	sit.Flags().StringSliceVar(&cues, "cues", nil, "cue names to enable (session_start, session_end, halfway, every_minute)")
	sit.Flags().BoolVar(&quiet, "quiet", false, "suppress progress output")
	return sit
}

func newHistoryCmd(homePath *string) *cobra.Command {
	history := &cobra.Command{Use: "history", Short: "Completed session records"}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent sittings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer app.Close()
			records, err := app.HistoryCLI.List(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sittings recorded")
				return nil
			}
			for _, record := range records {
				status := "ended early"
				if record.Completed {
					status = "completed"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s of %s  %s\n",
					record.StartedAt.Format("2006-01-02 15:04"),
					formatClock(record.MeditatedSeconds),
					formatClock(record.PlannedSeconds),
					status,
				)
			}
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "maximum records to show")

	today := &cobra.Command{
		Use:   "today",
		Short: "Show today's total",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer app.Close()
			summary, err := app.HistoryCLI.Today(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d sittings, %s total\n",
				summary.Sessions, formatClock(summary.MeditatedSeconds))
			return nil
		},
	}

	reindex := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the history index from journal notes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.HistoryCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex complete")
			return nil
		},
	}

	history.AddCommand(listCmd, today, reindex)
	return history
}

func newChimeCmd(homePath *string) *cobra.Command {
	chime := &cobra.Command{Use: "chime", Short: "Chime plugin commands"}

	chime.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List installed chimes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer app.Close()
			chimes, err := app.ChimeCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(chimes) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no chimes installed (builtin bell is used)")
				return nil
			}
			for _, c := range chimes {
				state := "disabled"
				if c.Enabled {
					state = "enabled"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s) %s\n", c.Name, c.Version, state, c.Binary)
			}
			return nil
		},
	})

	chime.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Check chime plugin health",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer app.Close()
			results, err := app.ChimeCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no chimes installed")
				return nil
			}
			for _, result := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s binary=%t checksum=%t lifecycle=%t",
					result.Name, result.BinaryReachable, result.ChecksumValid, result.LifecycleOK)
				if result.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", result.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	var cue string
	testCmd := &cobra.Command{
		Use:   "test [name]",
		Short: "Play a chime once (no name plays the builtin bell)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer app.Close()
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := app.ChimeCLI.Test(ctx, name, cue); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "played")
			return nil
		},
	}
	testCmd.Flags().StringVar(&cue, "cue", "session_end", "cue name to play")
	chime.AddCommand(testCmd)

	return chime
}

func newConfigCmd(homePath *string) *cobra.Command {
	configCmd := &cobra.Command{Use: "config", Short: "User settings"}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer app.Close()
			settings, err := app.SettingsCLI.Show(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "default duration: %s\n", formatClock(settings.DefaultDurationSeconds))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cues: %s\n", strings.Join(settings.EnabledCues, ", "))
			chimeName := settings.Chime
			if chimeName == "" {
				chimeName = "(builtin bell)"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "chime: %s\n", chimeName)
			return nil
		},
	})

	var durationMinutes int
	var chimeName string
	var cueStart, cueEnd, cueHalfway, cueMinute bool
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			defer app.Close()

			input := settingsdto.UpdateInput{}
			if cmd.Flags().Changed("duration") {
				seconds := durationMinutes * 60
				input.DefaultDurationSeconds = &seconds
			}
			if cmd.Flags().Changed("chime") {
				input.Chime = &chimeName
			}
			if cmd.Flags().Changed("cue-start") {
				input.CueSessionStart = &cueStart
			}
			if cmd.Flags().Changed("cue-end") {
				input.CueSessionEnd = &cueEnd
			}
			if cmd.Flags().Changed("cue-halfway") {
				input.CueHalfway = &cueHalfway
			}
			if cmd.Flags().Changed("cue-minute") {
				input.CueEveryMinute = &cueMinute
			}

			settings, err := app.SettingsCLI.Set(context.Background(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "default duration: %s, cues: %s\n",
				formatClock(settings.DefaultDurationSeconds), strings.Join(settings.EnabledCues, ", "))
			return nil
		},
	}
	setCmd.Flags().IntVar(&durationMinutes, "duration", 0, "default session length in minutes")
	setCmd.Flags().StringVar(&chimeName, "chime", "", "chime plugin name (empty for builtin bell)")
	setCmd.Flags().BoolVar(&cueStart, "cue-start", true, "play a cue at session start")
	setCmd.Flags().BoolVar(&cueEnd, "cue-end", true, "play a cue at session end")
	setCmd.Flags().BoolVar(&cueHalfway, "cue-halfway", false, "play a cue at the halfway point")
	setCmd.Flags().BoolVar(&cueMinute, "cue-minute", false, "play a cue every full minute")
	configCmd.AddCommand(setCmd)

	return configCmd
}

func formatClock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	if minutes >= 60 {
		return fmt.Sprintf("%d:%02d:%02d", minutes/60, minutes%60, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
