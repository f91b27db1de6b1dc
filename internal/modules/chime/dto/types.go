package dto

type ChimeInfo struct {
	Name    string
	Version string
	Enabled bool
	Binary  string
}

type DoctorResult struct {
	Name            string
	BinaryReachable bool
	ChecksumValid   bool
	LifecycleOK     bool
	Error           string
}

type PlayInput struct {
	// Chime selects the plugin by manifest name; empty plays the
	// builtin terminal bell.
	Chime string
	Cue   string
}
