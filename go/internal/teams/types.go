package teams

import "github.com/mcdev12/fantasygolf/go/internal/models"

type GetTeamsByTournamentRequest struct {
	TournamentID string `json:"tournament_id"`
}

type GetTeamsByTournamentResponse struct {
	Teams []models.Team `json:"teams"`
}

type GetToursRequest struct {
	SeasonID string `json:"season_id"`
}

type GetToursResponse struct {
	Tours []models.Tour `json:"tours"`
}
