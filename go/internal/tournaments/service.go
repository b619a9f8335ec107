package tournaments

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/models"
	"github.com/mcdev12/fantasygolf/go/internal/rpc"
)

// TournamentsApp defines what the service layer needs from the tournaments application
type TournamentsApp interface {
	GetTournament(ctx context.Context, id uuid.UUID) (*models.Tournament, models.TournamentStatus, error)
	GetTier(ctx context.Context, id uuid.UUID) (*models.Tier, error)
	ListLiveTournaments(ctx context.Context) ([]models.Tournament, error)
}

// Service implements the TournamentService RPC interface
type Service struct {
	app TournamentsApp
}

// NewService creates a new tournaments RPC service
func NewService(app TournamentsApp) *Service {
	return &Service{
		app: app,
	}
}

// Handler mounts every TournamentService procedure and returns the path prefix to route
func (s *Service) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = rpc.HandlerOptions(append(opts, rpc.ReadOnly())...)
	mux := http.NewServeMux()
	mux.Handle(rpc.GetTournamentProcedure, connect.NewUnaryHandler(rpc.GetTournamentProcedure, s.GetTournament, opts...))
	mux.Handle(rpc.GetTierProcedure, connect.NewUnaryHandler(rpc.GetTierProcedure, s.GetTier, opts...))
	mux.Handle(rpc.ListLiveTournamentsProcedure, connect.NewUnaryHandler(rpc.ListLiveTournamentsProcedure, s.ListLiveTournaments, opts...))
	return rpc.ServicePath(rpc.TournamentServiceName), mux
}

// GetTournament retrieves a tournament by ID
func (s *Service) GetTournament(ctx context.Context, req *connect.Request[GetTournamentRequest]) (*connect.Response[GetTournamentResponse], error) {
	id, err := uuid.Parse(req.Msg.TournamentID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	t, status, err := s.app.GetTournament(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}

	res := connect.NewResponse(&GetTournamentResponse{Tournament: *t, Status: status})
	rpc.CacheFor(res.Header(), rpc.ScheduleMaxAge)
	return res, nil
}

// GetTier retrieves a tier by ID
func (s *Service) GetTier(ctx context.Context, req *connect.Request[GetTierRequest]) (*connect.Response[GetTierResponse], error) {
	id, err := uuid.Parse(req.Msg.TierID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	tier, err := s.app.GetTier(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}

	res := connect.NewResponse(&GetTierResponse{Tier: *tier})
	rpc.CacheFor(res.Header(), rpc.ScheduleMaxAge)
	return res, nil
}

// ListLiveTournaments lists tournaments currently in play
func (s *Service) ListLiveTournaments(ctx context.Context, req *connect.Request[ListLiveTournamentsRequest]) (*connect.Response[ListLiveTournamentsResponse], error) {
	list, err := s.app.ListLiveTournaments(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	res := connect.NewResponse(&ListLiveTournamentsResponse{Tournaments: list})
	rpc.CacheFor(res.Header(), rpc.ScoresMaxAge)
	return res, nil
}

func toConnectError(err error) error {
	if errors.Is(err, ErrTournamentNotFound) || errors.Is(err, ErrTierNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}
