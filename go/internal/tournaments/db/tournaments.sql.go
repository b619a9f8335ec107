package db

import (
	"context"

	"github.com/google/uuid"
)

const getTier = `-- name: GetTier :one
SELECT id, name, points, payouts FROM tiers
WHERE id = $1
`

func (q *Queries) GetTier(ctx context.Context, id uuid.UUID) (Tier, error) {
	row := q.db.QueryRowContext(ctx, getTier, id)
	var i Tier
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Points,
		&i.Payouts,
	)
	return i, err
}

const getTournament = `-- name: GetTournament :one
SELECT id, name, start_date, end_date, current_round, live_play, course_id, tier_id, season_id, created_at FROM tournaments
WHERE id = $1
`

func (q *Queries) GetTournament(ctx context.Context, id uuid.UUID) (Tournament, error) {
	row := q.db.QueryRowContext(ctx, getTournament, id)
	var i Tournament
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.StartDate,
		&i.EndDate,
		&i.CurrentRound,
		&i.LivePlay,
		&i.CourseID,
		&i.TierID,
		&i.SeasonID,
		&i.CreatedAt,
	)
	return i, err
}

const listLiveTournaments = `-- name: ListLiveTournaments :many
SELECT id, name, start_date, end_date, current_round, live_play, course_id, tier_id, season_id, created_at FROM tournaments
WHERE live_play = TRUE
ORDER BY start_date
`

func (q *Queries) ListLiveTournaments(ctx context.Context) ([]Tournament, error) {
	rows, err := q.db.QueryContext(ctx, listLiveTournaments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Tournament
	for rows.Next() {
		var i Tournament
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.StartDate,
			&i.EndDate,
			&i.CurrentRound,
			&i.LivePlay,
			&i.CourseID,
			&i.TierID,
			&i.SeasonID,
			&i.CreatedAt,
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
