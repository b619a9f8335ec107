package dataservice_client

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/clients"
	"github.com/mcdev12/fantasygolf/go/internal/golfers"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard"
	"github.com/mcdev12/fantasygolf/go/internal/models"
	"github.com/mcdev12/fantasygolf/go/internal/rpc"
	"github.com/mcdev12/fantasygolf/go/internal/teams"
	"github.com/mcdev12/fantasygolf/go/internal/tournaments"
)

// DataServiceClient reads leaderboard inputs from another instance's data
// services. Calls go out as GETs so the shared cache can serve repeats.
type DataServiceClient struct {
	*clients.BaseClient

	getTournament       *connect.Client[tournaments.GetTournamentRequest, tournaments.GetTournamentResponse]
	getTier             *connect.Client[tournaments.GetTierRequest, tournaments.GetTierResponse]
	listLiveTournaments *connect.Client[tournaments.ListLiveTournamentsRequest, tournaments.ListLiveTournamentsResponse]
	getTeams            *connect.Client[teams.GetTeamsByTournamentRequest, teams.GetTeamsByTournamentResponse]
	getTours            *connect.Client[teams.GetToursRequest, teams.GetToursResponse]
	getGolfers          *connect.Client[golfers.GetGolfersByTournamentRequest, golfers.GetGolfersByTournamentResponse]
}

func NewDataServiceClient(baseURL string) *DataServiceClient {
	base := clients.NewBaseClient(baseURL)
	base.SetHeader(UserAgentHeader, UserAgent)

	hc, url := base.HTTPClient(), base.BaseURL()
	opts := rpc.ClientOptions(connect.WithHTTPGet(), rpc.ReadOnly())

	return &DataServiceClient{
		BaseClient: base,
		getTournament: connect.NewClient[tournaments.GetTournamentRequest, tournaments.GetTournamentResponse](
			hc, url+rpc.GetTournamentProcedure, opts...),
		getTier: connect.NewClient[tournaments.GetTierRequest, tournaments.GetTierResponse](
			hc, url+rpc.GetTierProcedure, opts...),
		listLiveTournaments: connect.NewClient[tournaments.ListLiveTournamentsRequest, tournaments.ListLiveTournamentsResponse](
			hc, url+rpc.ListLiveTournamentsProcedure, opts...),
		getTeams: connect.NewClient[teams.GetTeamsByTournamentRequest, teams.GetTeamsByTournamentResponse](
			hc, url+rpc.GetTeamsByTournamentProcedure, opts...),
		getTours: connect.NewClient[teams.GetToursRequest, teams.GetToursResponse](
			hc, url+rpc.GetToursProcedure, opts...),
		getGolfers: connect.NewClient[golfers.GetGolfersByTournamentRequest, golfers.GetGolfersByTournamentResponse](
			hc, url+rpc.GetGolfersByTournamentProcedure, opts...),
	}
}

func (c *DataServiceClient) Kind() leaderboard.SourceKind { return leaderboard.SourceRemote }

func (c *DataServiceClient) GetTournament(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	res, err := c.getTournament.CallUnary(ctx, connect.NewRequest(&tournaments.GetTournamentRequest{TournamentID: id.String()}))
	if err != nil {
		return nil, mapError(err, tournaments.ErrTournamentNotFound)
	}
	return &res.Msg.Tournament, nil
}

func (c *DataServiceClient) GetTier(ctx context.Context, id uuid.UUID) (*models.Tier, error) {
	res, err := c.getTier.CallUnary(ctx, connect.NewRequest(&tournaments.GetTierRequest{TierID: id.String()}))
	if err != nil {
		return nil, mapError(err, tournaments.ErrTierNotFound)
	}
	return &res.Msg.Tier, nil
}

func (c *DataServiceClient) ListLiveTournaments(ctx context.Context) ([]models.Tournament, error) {
	res, err := c.listLiveTournaments.CallUnary(ctx, connect.NewRequest(&tournaments.ListLiveTournamentsRequest{}))
	if err != nil {
		return nil, mapError(err, nil)
	}
	return res.Msg.Tournaments, nil
}

func (c *DataServiceClient) GetTeamsByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Team, error) {
	res, err := c.getTeams.CallUnary(ctx, connect.NewRequest(&teams.GetTeamsByTournamentRequest{TournamentID: tournamentID.String()}))
	if err != nil {
		return nil, mapError(err, nil)
	}
	return res.Msg.Teams, nil
}

func (c *DataServiceClient) GetTours(ctx context.Context, seasonID uuid.UUID) ([]models.Tour, error) {
	res, err := c.getTours.CallUnary(ctx, connect.NewRequest(&teams.GetToursRequest{SeasonID: seasonID.String()}))
	if err != nil {
		return nil, mapError(err, nil)
	}
	return res.Msg.Tours, nil
}

func (c *DataServiceClient) GetGolfersByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Golfer, error) {
	res, err := c.getGolfers.CallUnary(ctx, connect.NewRequest(&golfers.GetGolfersByTournamentRequest{TournamentID: tournamentID.String()}))
	if err != nil {
		return nil, mapError(err, nil)
	}
	return res.Msg.Golfers, nil
}

// mapError turns a NotFound reply into the local sentinel so callers can
// tell a missing record from a failed call.
func mapError(err error, notFound error) error {
	if notFound != nil && connect.CodeOf(err) == connect.CodeNotFound {
		return fmt.Errorf("%w: %s", notFound, connectMessage(err))
	}
	return fmt.Errorf("remote data service: %w", err)
}

func connectMessage(err error) string {
	var cerr *connect.Error
	if errors.As(err, &cerr) {
		return cerr.Message()
	}
	return err.Error()
}

var _ leaderboard.DataSource = (*DataServiceClient)(nil)
