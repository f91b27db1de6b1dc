package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"zazen/internal/modules/settings/domain"
	settingsout "zazen/internal/modules/settings/port/out"
)

type yamlSettings struct {
	DefaultDurationMinutes int    `yaml:"default_duration_minutes"`
	CueSessionStart        bool   `yaml:"cue_session_start"`
	CueSessionEnd          bool   `yaml:"cue_session_end"`
	CueHalfway             bool   `yaml:"cue_halfway"`
	CueEveryMinute         bool   `yaml:"cue_every_minute"`
	Chime                  string `yaml:"chime"`
}

type YAMLStore struct {
	path string
}

func NewYAMLStore(path string) settingsout.Store {
	return &YAMLStore{path: path}
}

func (s *YAMLStore) Load(_ context.Context) (domain.Settings, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Defaults(), nil
		}
		return domain.Settings{}, fmt.Errorf("read settings file: %w", err)
	}
	var fileData yamlSettings
	if err := yaml.Unmarshal(raw, &fileData); err != nil {
		return domain.Settings{}, fmt.Errorf("parse settings yaml: %w", err)
	}

	settings := domain.Defaults()
	if fileData.DefaultDurationMinutes > 0 {
		settings.DefaultDuration = time.Duration(fileData.DefaultDurationMinutes) * time.Minute
	}
	settings.CueSessionStart = fileData.CueSessionStart
	settings.CueSessionEnd = fileData.CueSessionEnd
	settings.CueHalfway = fileData.CueHalfway
	settings.CueEveryMinute = fileData.CueEveryMinute
	settings.Chime = fileData.Chime
	return settings, nil
}

func (s *YAMLStore) Save(_ context.Context, settings domain.Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	fileData := yamlSettings{
		DefaultDurationMinutes: int(settings.DefaultDuration / time.Minute),
		CueSessionStart:        settings.CueSessionStart,
		CueSessionEnd:          settings.CueSessionEnd,
		CueHalfway:             settings.CueHalfway,
		CueEveryMinute:         settings.CueEveryMinute,
		Chime:                  settings.Chime,
	}
	raw, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
