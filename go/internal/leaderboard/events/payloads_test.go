package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard"
	"github.com/mcdev12/fantasygolf/go/internal/models"
)

func TestLeaderboardRefreshedRoundTrip(t *testing.T) {
	id := uuid.New()
	snap := &leaderboard.Snapshot{
		TournamentID: id,
		Tournament:   models.Tournament{ID: id, Name: "The Open"},
		Status:       models.TournamentStatusCurrent,
		Version:      7,
	}
	at := time.Date(2025, 7, 18, 15, 0, 0, 0, time.FixedZone("BST", 3600))

	env, err := NewLeaderboardRefreshed(snap, at)
	if err != nil {
		t.Fatalf("NewLeaderboardRefreshed: %v", err)
	}
	if env.EventType != TypeLeaderboardRefreshed || env.EventID == "" {
		t.Fatalf("envelope = %+v", env)
	}
	if env.Timestamp.Location() != time.UTC {
		t.Fatal("timestamp should be UTC")
	}

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	parsed, gotID, err := ParseEnvelope(data)
	if err != nil {
		t.Fatalf("ParseEnvelope: %v", err)
	}
	if gotID != id {
		t.Fatalf("tournament id = %s, want %s", gotID, id)
	}

	var payload LeaderboardRefreshedPayload
	if err := json.Unmarshal(parsed.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Version != 7 || payload.Status != "CURRENT" || payload.Leaderboard.Tournament.Name != "The Open" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestParseEnvelopeRejectsBadTournament(t *testing.T) {
	if _, _, err := ParseEnvelope([]byte(`{"eventType":"LeaderboardRefreshed","tournamentId":"nope"}`)); err == nil {
		t.Fatal("expected error for malformed tournament id")
	}
	if _, _, err := ParseEnvelope([]byte(`not json`)); err == nil {
		t.Fatal("expected error for malformed envelope")
	}
}
