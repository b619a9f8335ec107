package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

type Tier struct {
	ID      uuid.UUID             `json:"id"`
	Name    string                `json:"name"`
	Points  pqtype.NullRawMessage `json:"points"`
	Payouts pqtype.NullRawMessage `json:"payouts"`
}

type Tournament struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	CurrentRound sql.NullInt16 `json:"current_round"`
	LivePlay     bool          `json:"live_play"`
	CourseID     uuid.NullUUID `json:"course_id"`
	TierID       uuid.NullUUID `json:"tier_id"`
	SeasonID     uuid.UUID     `json:"season_id"`
	CreatedAt    time.Time     `json:"created_at"`
}
