package models

import (
	"time"

	"github.com/google/uuid"
)

// TournamentStatus is derived from the schedule, never stored
type TournamentStatus string

const (
	TournamentStatusUpcoming  TournamentStatus = "UPCOMING"
	TournamentStatusCurrent   TournamentStatus = "CURRENT"
	TournamentStatusCompleted TournamentStatus = "COMPLETED"
)

// Tournament represents a single golf event on the season schedule
type Tournament struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	CurrentRound int        `json:"current_round"`
	LivePlay     bool       `json:"live_play"`
	CourseID     *uuid.UUID `json:"course_id,omitempty"`
	TierID       *uuid.UUID `json:"tier_id,omitempty"`
	SeasonID     uuid.UUID  `json:"season_id"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Status reports where now falls relative to the tournament window.
func (t *Tournament) Status(now time.Time) TournamentStatus {
	switch {
	case now.Before(t.StartDate):
		return TournamentStatusUpcoming
	case now.After(t.EndDate):
		return TournamentStatusCompleted
	default:
		return TournamentStatusCurrent
	}
}
