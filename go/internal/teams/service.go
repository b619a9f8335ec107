package teams

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/models"
	"github.com/mcdev12/fantasygolf/go/internal/rpc"
)

// TeamsApp defines what the service layer needs from the teams application
type TeamsApp interface {
	GetTeamsByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Team, error)
	GetTours(ctx context.Context, seasonID uuid.UUID) ([]models.Tour, error)
}

// Service implements the TeamService RPC interface
type Service struct {
	app TeamsApp
}

// NewService creates a new teams RPC service
func NewService(app TeamsApp) *Service {
	return &Service{
		app: app,
	}
}

// Handler mounts every TeamService procedure and returns the path prefix to route
func (s *Service) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = rpc.HandlerOptions(append(opts, rpc.ReadOnly())...)
	mux := http.NewServeMux()
	mux.Handle(rpc.GetTeamsByTournamentProcedure, connect.NewUnaryHandler(rpc.GetTeamsByTournamentProcedure, s.GetTeamsByTournament, opts...))
	mux.Handle(rpc.GetToursProcedure, connect.NewUnaryHandler(rpc.GetToursProcedure, s.GetTours, opts...))
	return rpc.ServicePath(rpc.TeamServiceName), mux
}

// GetTeamsByTournament lists the teams entered in a tournament
func (s *Service) GetTeamsByTournament(ctx context.Context, req *connect.Request[GetTeamsByTournamentRequest]) (*connect.Response[GetTeamsByTournamentResponse], error) {
	id, err := uuid.Parse(req.Msg.TournamentID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	teams, err := s.app.GetTeamsByTournament(ctx, id)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	res := connect.NewResponse(&GetTeamsByTournamentResponse{Teams: teams})
	rpc.CacheFor(res.Header(), rpc.ScoresMaxAge)
	return res, nil
}

// GetTours lists the tours of a season
func (s *Service) GetTours(ctx context.Context, req *connect.Request[GetToursRequest]) (*connect.Response[GetToursResponse], error) {
	id, err := uuid.Parse(req.Msg.SeasonID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	tours, err := s.app.GetTours(ctx, id)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	res := connect.NewResponse(&GetToursResponse{Tours: tours})
	rpc.CacheFor(res.Header(), rpc.ScheduleMaxAge)
	return res, nil
}
