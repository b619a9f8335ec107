package leaderboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/rpc"
)

type fakeViewer struct {
	snap      *Snapshot
	err       error
	refreshes int
}

func (f *fakeViewer) View(context.Context, uuid.UUID) (*Snapshot, Freshness, error) {
	return f.snap, Freshness{State: "polling"}, f.err
}

func (f *fakeViewer) Refresh(context.Context, uuid.UUID) (*Snapshot, Freshness, error) {
	f.refreshes++
	return f.snap, Freshness{State: "polling", Loading: true}, f.err
}

func newLeaderboardServer(t *testing.T, v Viewer) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle(NewService(v).Handler())
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestServiceGetLeaderboardFiltersTour(t *testing.T) {
	keep, drop := uuid.New(), uuid.New()
	snap := &Snapshot{
		TournamentID: uuid.New(),
		Version:      3,
		Boards: []Board{
			{TourID: &drop, Name: "DP World"},
			{TourID: &keep, Name: "PGA", Rows: []Row{{Name: "a"}}},
		},
	}
	srv := newLeaderboardServer(t, &fakeViewer{snap: snap})
	client := connect.NewClient[GetLeaderboardRequest, GetLeaderboardResponse](
		srv.Client(), srv.URL+rpc.GetLeaderboardProcedure, rpc.ClientOptions()...)

	res, err := client.CallUnary(context.Background(), connect.NewRequest(&GetLeaderboardRequest{
		TournamentID: snap.TournamentID.String(),
		TourID:       keep.String(),
	}))
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if len(res.Msg.Leaderboard.Boards) != 1 || res.Msg.Leaderboard.Boards[0].Name != "PGA" {
		t.Fatalf("boards = %+v", res.Msg.Leaderboard.Boards)
	}
	if len(snap.Boards) != 2 {
		t.Fatal("filtering must not modify the cached snapshot")
	}
	if res.Header().Get("ETag") != snap.ETag() {
		t.Fatalf("etag = %q, want %q", res.Header().Get("ETag"), snap.ETag())
	}
}

func TestServiceRefreshLeaderboard(t *testing.T) {
	v := &fakeViewer{snap: &Snapshot{TournamentID: uuid.New()}}
	srv := newLeaderboardServer(t, v)
	client := connect.NewClient[RefreshLeaderboardRequest, RefreshLeaderboardResponse](
		srv.Client(), srv.URL+rpc.RefreshLeaderboardProcedure, rpc.ClientOptions()...)

	res, err := client.CallUnary(context.Background(), connect.NewRequest(&RefreshLeaderboardRequest{
		TournamentID: v.snap.TournamentID.String(),
	}))
	if err != nil {
		t.Fatalf("RefreshLeaderboard: %v", err)
	}
	if v.refreshes != 1 || !res.Msg.Freshness.Loading {
		t.Fatalf("refreshes = %d, freshness = %+v", v.refreshes, res.Msg.Freshness)
	}
}

func TestServiceErrorCodes(t *testing.T) {
	tests := []struct {
		err  error
		code connect.Code
	}{
		{ErrTournamentNotFound, connect.CodeNotFound},
		{ErrRefreshTimeout, connect.CodeDeadlineExceeded},
		{ErrControllerClosed, connect.CodeUnavailable},
		{errors.New("boom"), connect.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			srv := newLeaderboardServer(t, &fakeViewer{err: tt.err})
			client := connect.NewClient[GetLeaderboardRequest, GetLeaderboardResponse](
				srv.Client(), srv.URL+rpc.GetLeaderboardProcedure, rpc.ClientOptions()...)

			_, err := client.CallUnary(context.Background(), connect.NewRequest(&GetLeaderboardRequest{
				TournamentID: uuid.NewString(),
			}))
			if got := connect.CodeOf(err); got != tt.code {
				t.Fatalf("code = %v, want %v", got, tt.code)
			}
		})
	}
}
