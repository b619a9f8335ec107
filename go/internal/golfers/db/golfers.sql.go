package db

import (
	"context"

	"github.com/google/uuid"
)

const getGolfersByTournament = `-- name: GetGolfersByTournament :many
SELECT id, tournament_id, api_id, player_name, score, today, thru,
       round_one, round_two, round_three, round_four,
       position, pos_change, group_number, world_rank
FROM golfers
WHERE tournament_id = $1
ORDER BY world_rank NULLS LAST, player_name
`

func (q *Queries) GetGolfersByTournament(ctx context.Context, tournamentID uuid.UUID) ([]Golfer, error) {
	rows, err := q.db.QueryContext(ctx, getGolfersByTournament, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Golfer
	for rows.Next() {
		var i Golfer
		if err := rows.Scan(
			&i.ID,
			&i.TournamentID,
			&i.ApiID,
			&i.PlayerName,
			&i.Score,
			&i.Today,
			&i.Thru,
			&i.RoundOne,
			&i.RoundTwo,
			&i.RoundThree,
			&i.RoundFour,
			&i.Position,
			&i.PosChange,
			&i.GroupNumber,
			&i.WorldRank,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
