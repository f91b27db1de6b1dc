package config

import (
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	HomePath     string
	DBPath       string
	SettingsPath string
	JournalPath  string
	ChimesPath   string
	LogPath      string
}

// New derives all application paths from a single home directory.
// An empty homePath resolves to ~/.zazen.
func New(homePath string) (Config, error) {
	if homePath == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve user home dir: %w", err)
		}
		homePath = filepath.Join(userHome, ".zazen")
	}
	return Config{
		HomePath:     homePath,
		DBPath:       filepath.Join(homePath, "zazen.db"),
		SettingsPath: filepath.Join(homePath, "settings.yaml"),
		JournalPath:  filepath.Join(homePath, "journal"),
		ChimesPath:   filepath.Join(homePath, "chimes"),
		LogPath:      filepath.Join(homePath, "zazen.log"),
	}, nil
}
