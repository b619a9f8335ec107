package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard/events"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard/freshness"
)

type fakeMounter struct {
	mu       sync.Mutex
	acquired map[uuid.UUID]int
	released map[uuid.UUID]int
	cached   map[uuid.UUID]*leaderboard.Snapshot
	err      error
}

func newFakeMounter() *fakeMounter {
	return &fakeMounter{
		acquired: make(map[uuid.UUID]int),
		released: make(map[uuid.UUID]int),
		cached:   make(map[uuid.UUID]*leaderboard.Snapshot),
	}
}

func (f *fakeMounter) Acquire(_ context.Context, id uuid.UUID) (*freshness.Controller, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.acquired[id]++
	return nil, nil
}

func (f *fakeMounter) Release(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released[id]++
}

func (f *fakeMounter) Cached(id uuid.UUID) (*leaderboard.Snapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap, ok := f.cached[id]
	return snap, ok
}

func (f *fakeMounter) releases(id uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.released[id]
}

var _ Mounter = (*freshness.Manager)(nil)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func startGateway(t *testing.T, mounter Mounter) (*ConnectionManager, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cm := NewConnectionManager(mounter, DefaultConnectionConfig())
	go cm.Start(ctx)

	mux := http.NewServeMux()
	NewWebSocketHandler(cm).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return cm, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/leaderboard" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) LeaderboardEvent {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev LeaderboardEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read event: %v", err)
	}
	return ev
}

func readVersion(t *testing.T, conn *websocket.Conn) uint64 {
	t.Helper()
	ev := readEvent(t, conn)
	if ev.Type != EventTypeLeaderboardRefreshed {
		t.Fatalf("event type = %s, want %s", ev.Type, EventTypeLeaderboardRefreshed)
	}
	var payload events.LeaderboardRefreshedPayload
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	return payload.Version
}

func TestSubscribeSendsCachedSnapshot(t *testing.T) {
	mounter := newFakeMounter()
	id := uuid.New()
	mounter.cached[id] = &leaderboard.Snapshot{TournamentID: id, Version: 4}
	cm, srv := startGateway(t, mounter)

	conn := dial(t, srv, "?tournament_id="+id.String())

	if ev := readEvent(t, conn); ev.Type != EventTypeSubscribed || ev.TournamentID != id.String() {
		t.Fatalf("first event = %+v", ev)
	}
	if v := readVersion(t, conn); v != 4 {
		t.Fatalf("version = %d, want cached 4", v)
	}

	if err := cm.Publish(context.Background(), &leaderboard.Snapshot{TournamentID: id, Version: 5}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if v := readVersion(t, conn); v != 5 {
		t.Fatalf("version = %d, want 5", v)
	}

	stats := cm.GetConnectionStats()
	if stats.TotalConnections != 1 || stats.TournamentConnections[id.String()] != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestSwitchingTournamentReleasesPrevious(t *testing.T) {
	mounter := newFakeMounter()
	first, second := uuid.New(), uuid.New()
	cm, srv := startGateway(t, mounter)

	conn := dial(t, srv, "?tournament_id="+first.String())
	readEvent(t, conn)

	if err := conn.WriteJSON(ClientMessage{Type: "subscribe", TournamentID: second.String()}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if ev := readEvent(t, conn); ev.Type != EventTypeSubscribed || ev.TournamentID != second.String() {
		t.Fatalf("event = %+v", ev)
	}
	if mounter.releases(first) != 1 {
		t.Fatal("switching should release the previous tournament")
	}

	// the old tournament's broadcast is queued first, so a connection still
	// in its pool would see version 1 before version 2
	cm.Publish(context.Background(), &leaderboard.Snapshot{TournamentID: first, Version: 1})
	cm.Publish(context.Background(), &leaderboard.Snapshot{TournamentID: second, Version: 2})
	if v := readVersion(t, conn); v != 2 {
		t.Fatalf("version = %d, want 2 from the new tournament", v)
	}

	conn.Close()
	waitFor(t, "release on disconnect", func() bool { return mounter.releases(second) == 1 })
	if mounter.releases(first) != 1 {
		t.Fatal("previous tournament released twice")
	}
}

func TestUnsubscribe(t *testing.T) {
	mounter := newFakeMounter()
	id := uuid.New()
	cm, srv := startGateway(t, mounter)

	conn := dial(t, srv, "?tournament_id="+id.String())
	readEvent(t, conn)

	if err := conn.WriteJSON(ClientMessage{Type: "unsubscribe"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitFor(t, "release on unsubscribe", func() bool { return mounter.releases(id) == 1 })
	if stats := cm.GetConnectionStats(); stats.TotalConnections != 0 {
		t.Fatalf("stats = %+v", stats)
	}

	conn.Close()
	time.Sleep(50 * time.Millisecond)
	if mounter.releases(id) != 1 {
		t.Fatal("disconnect after unsubscribe must not release again")
	}
}

func TestSubscribeFailureReportsError(t *testing.T) {
	mounter := newFakeMounter()
	mounter.err = leaderboard.ErrTournamentNotFound
	_, srv := startGateway(t, mounter)

	conn := dial(t, srv, "?tournament_id="+uuid.NewString())

	ev := readEvent(t, conn)
	if ev.Type != EventTypeError {
		t.Fatalf("event type = %s, want Error", ev.Type)
	}
	var payload ErrorPayload
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !strings.Contains(payload.Message, leaderboard.ErrTournamentNotFound.Error()) {
		t.Fatalf("message = %q", payload.Message)
	}
}

func TestInvalidClientMessages(t *testing.T) {
	_, srv := startGateway(t, newFakeMounter())
	conn := dial(t, srv, "")

	for _, msg := range []string{`nope`, `{"type":"subscribe","tournament_id":"x"}`, `{"type":"dance"}`} {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			t.Fatalf("write: %v", err)
		}
		if ev := readEvent(t, conn); ev.Type != EventTypeError {
			t.Fatalf("%s: event type = %s, want Error", msg, ev.Type)
		}
	}
}

func TestHandlerRejectsBadTournamentID(t *testing.T) {
	_, srv := startGateway(t, newFakeMounter())

	resp, err := http.Get(srv.URL + "/ws/leaderboard?tournament_id=bad")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestProcessMessageBroadcasts(t *testing.T) {
	mounter := newFakeMounter()
	id := uuid.New()
	cm, srv := startGateway(t, mounter)
	conn := dial(t, srv, "?tournament_id="+id.String())
	readEvent(t, conn)

	env, err := events.NewLeaderboardRefreshed(&leaderboard.Snapshot{TournamentID: id, Version: 9}, time.Now())
	if err != nil {
		t.Fatalf("NewLeaderboardRefreshed: %v", err)
	}
	data, _ := json.Marshal(env)

	ec := &EventConsumer{connectionManager: cm}
	if err := ec.processMessage(data); err != nil {
		t.Fatalf("processMessage: %v", err)
	}
	if v := readVersion(t, conn); v != 9 {
		t.Fatalf("version = %d, want 9", v)
	}

	env.EventType = "Unknown"
	data, _ = json.Marshal(env)
	if err := ec.processMessage(data); err == nil {
		t.Fatal("expected error for unknown event type")
	}
	if err := ec.processMessage([]byte("{")); err == nil {
		t.Fatal("expected error for malformed envelope")
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	cm := NewConnectionManager(newFakeMounter(), DefaultConnectionConfig())
	if err := cm.Publish(context.Background(), &leaderboard.Snapshot{TournamentID: uuid.New()}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	cm.handleBroadcast(<-cm.broadcastCh)
}
