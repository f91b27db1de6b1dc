package dto

import "time"

type RecordInput struct {
	StartedAt        time.Time
	MeditatedSeconds int
	PlannedSeconds   int
	Completed        bool
}

type RecordOutput struct {
	ID               string
	StartedAt        time.Time
	MeditatedSeconds int
	PlannedSeconds   int
	Completed        bool
	NotePath         string
}

type DaySummaryOutput struct {
	Day              time.Time
	Sessions         int
	MeditatedSeconds int
}
