package db

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Tour struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ShortForm string    `json:"short_form"`
	SeasonID  uuid.UUID `json:"season_id"`
}

// TeamWithTour is a team row joined to its tour card. TourID and
// DisplayName are null when the tour card no longer exists.
type TeamWithTour struct {
	ID           uuid.UUID      `json:"id"`
	TournamentID uuid.UUID      `json:"tournament_id"`
	TourCardID   uuid.UUID      `json:"tour_card_id"`
	TourID       uuid.NullUUID  `json:"tour_id"`
	DisplayName  sql.NullString `json:"display_name"`
	Score        sql.NullInt32  `json:"score"`
	Today        sql.NullInt32  `json:"today"`
	Thru         sql.NullInt32  `json:"thru"`
	RoundOne     sql.NullInt32  `json:"round_one"`
	RoundTwo     sql.NullInt32  `json:"round_two"`
	RoundThree   sql.NullInt32  `json:"round_three"`
	RoundFour    sql.NullInt32  `json:"round_four"`
	Position     sql.NullString `json:"position"`
	PastPosition sql.NullString `json:"past_position"`
	GolferIds    pq.StringArray `json:"golfer_ids"`
}
