package db

import (
	"context"

	"github.com/google/uuid"
)

const getTeamsByTournament = `-- name: GetTeamsByTournament :many
SELECT t.id, t.tournament_id, t.tour_card_id, tc.tour_id, tc.display_name,
       t.score, t.today, t.thru, t.round_one, t.round_two, t.round_three, t.round_four,
       t.position, t.past_position, t.golfer_ids
FROM teams t
LEFT JOIN tour_cards tc ON tc.id = t.tour_card_id
WHERE t.tournament_id = $1
ORDER BY t.id
`

func (q *Queries) GetTeamsByTournament(ctx context.Context, tournamentID uuid.UUID) ([]TeamWithTour, error) {
	rows, err := q.db.QueryContext(ctx, getTeamsByTournament, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TeamWithTour
	for rows.Next() {
		var i TeamWithTour
		if err := rows.Scan(
			&i.ID,
			&i.TournamentID,
			&i.TourCardID,
			&i.TourID,
			&i.DisplayName,
			&i.Score,
			&i.Today,
			&i.Thru,
			&i.RoundOne,
			&i.RoundTwo,
			&i.RoundThree,
			&i.RoundFour,
			&i.Position,
			&i.PastPosition,
			&i.GolferIds,
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

const getToursBySeason = `-- name: GetToursBySeason :many
SELECT id, name, short_form, season_id FROM tours
WHERE season_id = $1
ORDER BY name
`

func (q *Queries) GetToursBySeason(ctx context.Context, seasonID uuid.UUID) ([]Tour, error) {
	rows, err := q.db.QueryContext(ctx, getToursBySeason, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Tour
	for rows.Next() {
		var i Tour
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.ShortForm,
			&i.SeasonID,
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
