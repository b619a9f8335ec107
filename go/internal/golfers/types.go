package golfers

import "github.com/mcdev12/fantasygolf/go/internal/models"

type GetGolfersByTournamentRequest struct {
	TournamentID string `json:"tournament_id"`
}

type GetGolfersByTournamentResponse struct {
	Golfers []models.Golfer `json:"golfers"`
}
