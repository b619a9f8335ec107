package gateway

import (
	"encoding/json"
	"time"
)

// LeaderboardEvent is the frame sent to websocket clients
type LeaderboardEvent struct {
	ID           string          `json:"id"`
	TournamentID string          `json:"tournament_id"`
	Type         EventType       `json:"type"`
	Timestamp    time.Time       `json:"timestamp"`
	Data         json.RawMessage `json:"data,omitempty"`
}

// EventType represents the type of leaderboard event
type EventType string

const (
	EventTypeLeaderboardRefreshed EventType = "LeaderboardRefreshed"
	EventTypeSubscribed           EventType = "Subscribed"
	EventTypeError                EventType = "Error"
)

// ClientMessage is a command sent by a websocket client
type ClientMessage struct {
	Type         string `json:"type"` // "subscribe" or "unsubscribe"
	TournamentID string `json:"tournament_id,omitempty"`
}

// ErrorPayload is the data of an Error event
type ErrorPayload struct {
	Message string `json:"message"`
}
