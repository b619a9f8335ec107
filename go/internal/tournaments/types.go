package tournaments

import "github.com/mcdev12/fantasygolf/go/internal/models"

type GetTournamentRequest struct {
	TournamentID string `json:"tournament_id"`
}

type GetTournamentResponse struct {
	Tournament models.Tournament       `json:"tournament"`
	Status     models.TournamentStatus `json:"status"`
}

type GetTierRequest struct {
	TierID string `json:"tier_id"`
}

type GetTierResponse struct {
	Tier models.Tier `json:"tier"`
}

type ListLiveTournamentsRequest struct{}

type ListLiveTournamentsResponse struct {
	Tournaments []models.Tournament `json:"tournaments"`
}
