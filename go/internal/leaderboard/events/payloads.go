package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard"
)

// Event payload types shared between the publisher and gateway packages

const TypeLeaderboardRefreshed = "LeaderboardRefreshed"

// LeaderboardRefreshedPayload is the payload for a LeaderboardRefreshed event
type LeaderboardRefreshedPayload struct {
	TournamentID string                `json:"tournament_id"`
	Version      uint64                `json:"version"`
	Status       string                `json:"status"`
	Leaderboard  *leaderboard.Snapshot `json:"leaderboard"`
}

// Envelope wraps every event on the stream
type Envelope struct {
	EventID      string          `json:"eventId"`
	EventType    string          `json:"eventType"`
	TournamentID string          `json:"tournamentId"`
	Timestamp    time.Time       `json:"timestamp"`
	Payload      json.RawMessage `json:"payload"`
}

// NewLeaderboardRefreshed wraps an applied snapshot in an event envelope.
func NewLeaderboardRefreshed(snap *leaderboard.Snapshot, at time.Time) (Envelope, error) {
	payload, err := json.Marshal(LeaderboardRefreshedPayload{
		TournamentID: snap.TournamentID.String(),
		Version:      snap.Version,
		Status:       string(snap.Status),
		Leaderboard:  snap,
	})
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal payload: %w", err)
	}

	return Envelope{
		EventID:      uuid.New().String(),
		EventType:    TypeLeaderboardRefreshed,
		TournamentID: snap.TournamentID.String(),
		Timestamp:    at.UTC(),
		Payload:      payload,
	}, nil
}

// ParseEnvelope decodes an envelope and validates its tournament id.
func ParseEnvelope(data []byte) (Envelope, uuid.UUID, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, uuid.Nil, fmt.Errorf("unmarshal event envelope: %w", err)
	}
	id, err := uuid.Parse(env.TournamentID)
	if err != nil {
		return Envelope{}, uuid.Nil, fmt.Errorf("parse tournament ID: %w", err)
	}
	return env, id, nil
}
