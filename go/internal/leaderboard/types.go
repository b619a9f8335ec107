package leaderboard

import "time"

// Freshness describes how current a served snapshot is
type Freshness struct {
	State         string    `json:"state"`
	Loading       bool      `json:"loading"`
	LastRefreshed time.Time `json:"last_refreshed"`
	LastError     string    `json:"last_error,omitempty"`
}

type GetLeaderboardRequest struct {
	TournamentID string `json:"tournament_id"`
	// TourID limits the response to a single tour's board. The field board is always included.
	TourID string `json:"tour_id,omitempty"`
}

type GetLeaderboardResponse struct {
	Leaderboard *Snapshot `json:"leaderboard"`
	Freshness   Freshness `json:"freshness"`
}

type RefreshLeaderboardRequest struct {
	TournamentID string `json:"tournament_id"`
}

type RefreshLeaderboardResponse struct {
	Leaderboard *Snapshot `json:"leaderboard"`
	Freshness   Freshness `json:"freshness"`
}
