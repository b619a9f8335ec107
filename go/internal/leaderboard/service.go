package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/rpc"
)

// Viewer serves snapshots out of the freshness layer
type Viewer interface {
	// View returns the cached snapshot, refreshing first if it is missing or stale.
	View(ctx context.Context, tournamentID uuid.UUID) (*Snapshot, Freshness, error)
	// Refresh forces a fetch and returns the resulting snapshot.
	Refresh(ctx context.Context, tournamentID uuid.UUID) (*Snapshot, Freshness, error)
}

// Service implements the LeaderboardService RPC interface
type Service struct {
	viewer Viewer
}

// NewService creates a new leaderboard RPC service
func NewService(viewer Viewer) *Service {
	return &Service{
		viewer: viewer,
	}
}

// Handler mounts every LeaderboardService procedure and returns the path prefix to route
func (s *Service) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = rpc.HandlerOptions(opts...)
	mux := http.NewServeMux()
	mux.Handle(rpc.GetLeaderboardProcedure, connect.NewUnaryHandler(rpc.GetLeaderboardProcedure, s.GetLeaderboard, opts...))
	mux.Handle(rpc.RefreshLeaderboardProcedure, connect.NewUnaryHandler(rpc.RefreshLeaderboardProcedure, s.RefreshLeaderboard, opts...))
	return rpc.ServicePath(rpc.LeaderboardServiceName), mux
}

// GetLeaderboard returns the current leaderboard of a tournament
func (s *Service) GetLeaderboard(ctx context.Context, req *connect.Request[GetLeaderboardRequest]) (*connect.Response[GetLeaderboardResponse], error) {
	id, err := uuid.Parse(req.Msg.TournamentID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	var tourID *uuid.UUID
	if req.Msg.TourID != "" {
		parsed, err := uuid.Parse(req.Msg.TourID)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		tourID = &parsed
	}

	snap, freshness, err := s.viewer.View(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}

	if tourID != nil {
		board, ok := snap.Board(*tourID)
		if !ok {
			return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("tour %s has no board in tournament %s", tourID, id))
		}
		filtered := *snap
		filtered.Boards = []Board{*board}
		snap = &filtered
	}

	res := connect.NewResponse(&GetLeaderboardResponse{Leaderboard: snap, Freshness: freshness})
	res.Header().Set("ETag", snap.ETag())
	return res, nil
}

// RefreshLeaderboard forces a refresh of a tournament's leaderboard
func (s *Service) RefreshLeaderboard(ctx context.Context, req *connect.Request[RefreshLeaderboardRequest]) (*connect.Response[RefreshLeaderboardResponse], error) {
	id, err := uuid.Parse(req.Msg.TournamentID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	snap, freshness, err := s.viewer.Refresh(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}

	res := connect.NewResponse(&RefreshLeaderboardResponse{Leaderboard: snap, Freshness: freshness})
	res.Header().Set("ETag", snap.ETag())
	return res, nil
}

func toConnectError(err error) error {
	switch {
	case errors.Is(err, ErrTournamentNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ErrRefreshTimeout):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, ErrControllerClosed):
		return connect.NewError(connect.CodeUnavailable, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
