package domain

import (
	"fmt"
	"regexp"
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest describes one installed chime plugin. The binary is only
// launched after its checksum matches the manifest entry.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Binary  string `json:"binary"`
	SHA256  string `json:"sha256"`
	Enabled bool   `json:"enabled"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("chime name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("chime version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("chime binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("chime sha256 must be lowercase 64-char hex")
	}
	return nil
}

type Metadata struct {
	Name    string
	Version string
}
