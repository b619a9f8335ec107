package golfers

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/models"
	"github.com/mcdev12/fantasygolf/go/internal/rpc"
)

// GolfersApp defines what the service layer needs from the golfers application
type GolfersApp interface {
	GetGolfersByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Golfer, error)
}

// Service implements the GolferService RPC interface
type Service struct {
	app GolfersApp
}

// NewService creates a new golfers RPC service
func NewService(app GolfersApp) *Service {
	return &Service{
		app: app,
	}
}

// Handler mounts every GolferService procedure and returns the path prefix to route
func (s *Service) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = rpc.HandlerOptions(append(opts, rpc.ReadOnly())...)
	mux := http.NewServeMux()
	mux.Handle(rpc.GetGolfersByTournamentProcedure, connect.NewUnaryHandler(rpc.GetGolfersByTournamentProcedure, s.GetGolfersByTournament, opts...))
	return rpc.ServicePath(rpc.GolferServiceName), mux
}

// GetGolfersByTournament lists the field of a tournament
func (s *Service) GetGolfersByTournament(ctx context.Context, req *connect.Request[GetGolfersByTournamentRequest]) (*connect.Response[GetGolfersByTournamentResponse], error) {
	id, err := uuid.Parse(req.Msg.TournamentID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	golfers, err := s.app.GetGolfersByTournament(ctx, id)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	res := connect.NewResponse(&GetGolfersByTournamentResponse{Golfers: golfers})
	rpc.CacheFor(res.Header(), rpc.ScoresMaxAge)
	return res, nil
}
