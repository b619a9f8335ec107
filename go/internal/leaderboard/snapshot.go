package leaderboard

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/models"
)

// Tone classifies a round score against the peer average
type Tone string

const (
	ToneUnder Tone = "under" // better than average
	ToneOver  Tone = "over"
	ToneEven  Tone = "even"
)

// Delta is a round score's distance from the peer mean
type Delta struct {
	Value float64 `json:"value"`
	Tone  Tone    `json:"tone"`
}

// RoundCell holds the derived per-round display fields for one row.
// Nil Delta or empty CumulativeRank means the value is unavailable.
type RoundCell struct {
	Round          int    `json:"round"`
	Score          *int   `json:"score,omitempty"`
	Delta          *Delta `json:"delta,omitempty"`
	CumulativeRank string `json:"cumulative_rank,omitempty"`
}

// Row is a single ranked golfer or team
type Row struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Position       string      `json:"position"`
	PastPosition   string      `json:"past_position,omitempty"`
	Lifecycle      Lifecycle   `json:"lifecycle"`
	Score          *int        `json:"score,omitempty"`
	Today          *int        `json:"today,omitempty"`
	Thru           *int        `json:"thru,omitempty"`
	Rounds         [4]*int     `json:"-"`
	PositionChange int         `json:"position_change"`
	RoundCells     []RoundCell `json:"rounds,omitempty"`
	Points         *float64    `json:"points,omitempty"`
}

// Board is the ranked leaderboard of one tour, or of the golfer field
type Board struct {
	TourID *uuid.UUID `json:"tour_id,omitempty"`
	Name   string     `json:"name"`
	Rows   []Row      `json:"rows"`
}

// Snapshot is a complete, display-ready leaderboard for one tournament.
// Snapshots are replaced wholesale and never mutated after assembly.
type Snapshot struct {
	TournamentID uuid.UUID               `json:"tournament_id"`
	Tournament   models.Tournament       `json:"tournament"`
	Status       models.TournamentStatus `json:"status"`
	Round        int                     `json:"round"`
	Boards       []Board                 `json:"boards"`
	Field        Board                   `json:"field"`
	Dropped      int                     `json:"dropped"`
	GeneratedAt  time.Time               `json:"generated_at"`
	Version      uint64                  `json:"version"`
}

// ETag identifies this snapshot revision for conditional reads.
func (s *Snapshot) ETag() string {
	return fmt.Sprintf(`W/"%s-%d"`, s.TournamentID, s.Version)
}

// Board returns the leaderboard for a tour.
func (s *Snapshot) Board(tourID uuid.UUID) (*Board, bool) {
	for i := range s.Boards {
		if s.Boards[i].TourID != nil && *s.Boards[i].TourID == tourID {
			return &s.Boards[i], true
		}
	}
	return nil, false
}
