package dto

type Output struct {
	DefaultDurationSeconds int
	CueSessionStart        bool
	CueSessionEnd          bool
	CueHalfway             bool
	CueEveryMinute         bool
	Chime                  string
	EnabledCues            []string
}

// UpdateInput applies partial updates; nil fields keep their value.
type UpdateInput struct {
	DefaultDurationSeconds *int
	CueSessionStart        *bool
	CueSessionEnd          *bool
	CueHalfway             *bool
	CueEveryMinute         *bool
	Chime                  *string
}
