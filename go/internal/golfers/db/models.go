package db

import (
	"database/sql"

	"github.com/google/uuid"
)

type Golfer struct {
	ID           uuid.UUID      `json:"id"`
	TournamentID uuid.UUID      `json:"tournament_id"`
	ApiID        int32          `json:"api_id"`
	PlayerName   string         `json:"player_name"`
	Score        sql.NullInt32  `json:"score"`
	Today        sql.NullInt32  `json:"today"`
	Thru         sql.NullInt32  `json:"thru"`
	RoundOne     sql.NullInt32  `json:"round_one"`
	RoundTwo     sql.NullInt32  `json:"round_two"`
	RoundThree   sql.NullInt32  `json:"round_three"`
	RoundFour    sql.NullInt32  `json:"round_four"`
	Position     sql.NullString `json:"position"`
	PosChange    sql.NullInt32  `json:"pos_change"`
	GroupNumber  sql.NullInt16  `json:"group_number"`
	WorldRank    sql.NullInt32  `json:"world_rank"`
}
