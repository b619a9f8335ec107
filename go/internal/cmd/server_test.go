package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard/freshness"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard/gateway"
	"github.com/mcdev12/fantasygolf/go/internal/rpc"
)

type notFoundLoader struct{}

func (notFoundLoader) Load(context.Context, uuid.UUID) (*leaderboard.Snapshot, error) {
	return nil, leaderboard.ErrTournamentNotFound
}

func newTestServices(t *testing.T) *Services {
	t.Helper()
	manager := freshness.NewManager(notFoundLoader{}, freshness.NewCache(), clockwork.NewFakeClock(), freshness.DefaultConfig())
	t.Cleanup(manager.Close)
	connections := gateway.NewConnectionManager(manager, gateway.DefaultConnectionConfig())
	return &Services{
		Leaderboard: leaderboard.NewService(manager),
		Gateway:     gateway.NewWebSocketHandler(connections),
		manager:     manager,
		connections: connections,
	}
}

func TestServerRoutes(t *testing.T) {
	srv := httptest.NewServer(setupServer(Config{Port: "0"}, newTestServices(t)).Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "OK" {
		t.Fatalf("health = %d %q", resp.StatusCode, body)
	}

	resp, err = http.Get(srv.URL + "/ws/stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats status = %d", resp.StatusCode)
	}

	// data services are not mounted without a store
	resp, err = http.Post(srv.URL+rpc.GetTournamentProcedure, "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GetTournament status = %d, want 404", resp.StatusCode)
	}
}

func TestServerCORSPreflight(t *testing.T) {
	srv := httptest.NewServer(setupServer(Config{Port: "0"}, newTestServices(t)).Handler)
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+rpc.GetLeaderboardProcedure, nil)
	req.Header.Set("Origin", "https://golf.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
}
