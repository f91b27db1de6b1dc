package dto

type StartInput struct {
	DurationSeconds int
	// Cues selects the enabled cue kinds by name. A nil slice means
	// "use the persisted settings"; an empty non-nil slice disables all.
	Cues []string
}

type StateOutput struct {
	Status           string
	TotalSeconds     int
	ElapsedSeconds   int
	RemainingSeconds int
	Progress         float64
}
