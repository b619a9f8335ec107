package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard/events"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard/freshness"
	"github.com/rs/zerolog/log"
)

var errConnectionClosed = errors.New("connection closed")

// Mounter keeps leaderboards fresh while they have subscribers, normally the
// freshness Manager.
type Mounter interface {
	Acquire(ctx context.Context, tournamentID uuid.UUID) (*freshness.Controller, error)
	Release(tournamentID uuid.UUID)
	Cached(tournamentID uuid.UUID) (*leaderboard.Snapshot, bool)
}

// ConnectionManager manages WebSocket connections subscribed to tournament
// leaderboards
type ConnectionManager struct {
	// Connection pools organized by tournament ID
	tournamentConnections map[uuid.UUID]map[*Connection]bool
	mu                    sync.RWMutex

	upgrader websocket.Upgrader
	config   ConnectionConfig
	mounter  Mounter

	broadcastCh chan BroadcastMessage
}

// Connection represents a WebSocket connection to a client
type Connection struct {
	ID      string
	Conn    *websocket.Conn
	Send    chan []byte
	Manager *ConnectionManager

	// guarded by Manager.mu
	tournamentID uuid.UUID
	closed       bool

	ConnectedAt time.Time
}

// ConnectionConfig holds configuration for WebSocket connections
type ConnectionConfig struct {
	WriteTimeout     time.Duration
	ReadTimeout      time.Duration
	PingInterval     time.Duration
	SubscribeTimeout time.Duration
	MaxMessageSize   int64
	ReadBufferSize   int
	WriteBufferSize  int
	CheckOrigin      func(r *http.Request) bool
}

// BroadcastMessage represents a message to broadcast to connections
type BroadcastMessage struct {
	TournamentID uuid.UUID
	Event        *LeaderboardEvent
}

func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:     10 * time.Second,
		ReadTimeout:      60 * time.Second,
		PingInterval:     30 * time.Second,
		SubscribeTimeout: 30 * time.Second,
		MaxMessageSize:   1024,
		ReadBufferSize:   1024,
		WriteBufferSize:  16 * 1024, // snapshots are large
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

func NewConnectionManager(mounter Mounter, config ConnectionConfig) *ConnectionManager {
	return &ConnectionManager{
		tournamentConnections: make(map[uuid.UUID]map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		mounter:     mounter,
		broadcastCh: make(chan BroadcastMessage, 1000),
	}
}

// Start begins processing broadcast messages
func (cm *ConnectionManager) Start(ctx context.Context) {
	log.Info().Msg("connection manager started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("connection manager shutting down")
			return
		case message := <-cm.broadcastCh:
			cm.handleBroadcast(message)
		}
	}
}

// UpgradeConnection upgrades an HTTP connection to WebSocket. A non-nil
// tournamentID subscribes the connection straight away.
func (cm *ConnectionManager) UpgradeConnection(w http.ResponseWriter, r *http.Request, tournamentID uuid.UUID) error {
	conn, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connection := &Connection{
		ID:          uuid.New().String(),
		Conn:        conn,
		Send:        make(chan []byte, 64),
		Manager:     cm,
		ConnectedAt: time.Now(),
	}

	go connection.writePump()

	log.Info().
		Str("connection_id", connection.ID).
		Str("remote_addr", r.RemoteAddr).
		Msg("WebSocket connection established")

	if tournamentID != uuid.Nil {
		if err := cm.Subscribe(connection, tournamentID); err != nil {
			connection.sendError(err)
		}
	}

	go connection.readPump()
	return nil
}

// Subscribe moves a connection to a tournament, keeping that leaderboard
// mounted until the connection leaves. The cached snapshot is sent at once.
func (cm *ConnectionManager) Subscribe(conn *Connection, tournamentID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(context.Background(), cm.config.SubscribeTimeout)
	defer cancel()

	if _, err := cm.mounter.Acquire(ctx, tournamentID); err != nil {
		return fmt.Errorf("subscribe to %s: %w", tournamentID, err)
	}

	cm.mu.Lock()
	if conn.closed {
		cm.mu.Unlock()
		cm.mounter.Release(tournamentID)
		return errConnectionClosed
	}
	prev := conn.tournamentID
	cm.removeLocked(conn)
	conn.tournamentID = tournamentID
	if cm.tournamentConnections[tournamentID] == nil {
		cm.tournamentConnections[tournamentID] = make(map[*Connection]bool)
	}
	cm.tournamentConnections[tournamentID][conn] = true
	cm.mu.Unlock()

	if prev != uuid.Nil {
		cm.mounter.Release(prev)
	}

	log.Debug().
		Str("connection_id", conn.ID).
		Str("tournament_id", tournamentID.String()).
		Str("previous", prev.String()).
		Msg("connection subscribed")

	ack := &LeaderboardEvent{
		ID:           uuid.New().String(),
		TournamentID: tournamentID.String(),
		Type:         EventTypeSubscribed,
		Timestamp:    time.Now(),
	}
	cm.sendTo(conn, ack)

	if snap, ok := cm.mounter.Cached(tournamentID); ok {
		event, err := refreshedEvent(snap)
		if err != nil {
			return err
		}
		cm.sendTo(conn, event)
	}
	return nil
}

// Unsubscribe detaches a connection from its tournament.
func (cm *ConnectionManager) Unsubscribe(conn *Connection) {
	cm.mu.Lock()
	prev := conn.tournamentID
	cm.removeLocked(conn)
	conn.tournamentID = uuid.Nil
	cm.mu.Unlock()

	if prev != uuid.Nil {
		cm.mounter.Release(prev)
	}
}

// removeLocked drops a connection from its tournament pool.
func (cm *ConnectionManager) removeLocked(conn *Connection) {
	connections, ok := cm.tournamentConnections[conn.tournamentID]
	if !ok {
		return
	}
	delete(connections, conn)
	if len(connections) == 0 {
		delete(cm.tournamentConnections, conn.tournamentID)
	}
}

// unregisterConnection closes a connection's send channel and releases its
// tournament. Safe to call more than once.
func (cm *ConnectionManager) unregisterConnection(conn *Connection) {
	cm.mu.Lock()
	if conn.closed {
		cm.mu.Unlock()
		return
	}
	conn.closed = true
	prev := conn.tournamentID
	cm.removeLocked(conn)
	conn.tournamentID = uuid.Nil
	close(conn.Send)
	cm.mu.Unlock()

	if prev != uuid.Nil {
		cm.mounter.Release(prev)
	}

	log.Info().
		Str("connection_id", conn.ID).
		Str("tournament_id", prev.String()).
		Msg("connection unregistered")
}

// Publish implements freshness.Sink, pushing an applied snapshot to the
// tournament's subscribers.
func (cm *ConnectionManager) Publish(_ context.Context, snap *leaderboard.Snapshot) error {
	event, err := refreshedEvent(snap)
	if err != nil {
		return err
	}
	cm.BroadcastToTournament(snap.TournamentID, event)
	return nil
}

// BroadcastToTournament sends an event to all connections for a tournament
func (cm *ConnectionManager) BroadcastToTournament(tournamentID uuid.UUID, event *LeaderboardEvent) {
	select {
	case cm.broadcastCh <- BroadcastMessage{TournamentID: tournamentID, Event: event}:
	default:
		log.Warn().Str("tournament_id", tournamentID.String()).Msg("broadcast channel full, dropping message")
	}
}

func (cm *ConnectionManager) handleBroadcast(message BroadcastMessage) {
	data, err := json.Marshal(message.Event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event for broadcast")
		return
	}

	var slow []*Connection
	cm.mu.RLock()
	connections := cm.tournamentConnections[message.TournamentID]
	for conn := range connections {
		select {
		case conn.Send <- data:
		default:
			slow = append(slow, conn)
		}
	}
	sent := len(connections) - len(slow)
	cm.mu.RUnlock()

	for _, conn := range slow {
		log.Warn().
			Str("connection_id", conn.ID).
			Msg("connection send buffer full, closing connection")
		cm.unregisterConnection(conn)
	}

	log.Debug().
		Str("event_type", string(message.Event.Type)).
		Str("tournament_id", message.TournamentID.String()).
		Int("connections", sent).
		Msg("event broadcasted")
}

// sendTo queues an event for one connection, dropping it if the connection
// is closed or backed up.
func (cm *ConnectionManager) sendTo(conn *Connection, event *LeaderboardEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event")
		return
	}

	cm.mu.RLock()
	defer cm.mu.RUnlock()
	if conn.closed {
		return
	}
	select {
	case conn.Send <- data:
	default:
		log.Warn().Str("connection_id", conn.ID).Msg("connection send buffer full, dropping event")
	}
}

// ConnectionStats is a summary of active connections
type ConnectionStats struct {
	TotalConnections      int            `json:"total_connections"`
	ActiveTournaments     int            `json:"active_tournaments"`
	TournamentConnections map[string]int `json:"tournament_connections"`
}

func (cm *ConnectionManager) GetConnectionStats() ConnectionStats {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	stats := ConnectionStats{
		ActiveTournaments:     len(cm.tournamentConnections),
		TournamentConnections: make(map[string]int, len(cm.tournamentConnections)),
	}
	for id, connections := range cm.tournamentConnections {
		stats.TotalConnections += len(connections)
		stats.TournamentConnections[id.String()] = len(connections)
	}
	return stats
}

func refreshedEvent(snap *leaderboard.Snapshot) (*LeaderboardEvent, error) {
	env, err := events.NewLeaderboardRefreshed(snap, time.Now())
	if err != nil {
		return nil, err
	}
	return envelopeEvent(env), nil
}

func envelopeEvent(env events.Envelope) *LeaderboardEvent {
	return &LeaderboardEvent{
		ID:           env.EventID,
		TournamentID: env.TournamentID,
		Type:         EventType(env.EventType),
		Timestamp:    env.Timestamp,
		Data:         env.Payload,
	}
}

// writePump handles sending messages to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.Manager.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.Manager.unregisterConnection(c)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to write message to WebSocket")
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump handles reading messages from the WebSocket connection
func (c *Connection) readPump() {
	defer func() {
		c.Manager.unregisterConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.Manager.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("unexpected WebSocket close error")
			}
			break
		}

		c.handleClientMessage(message)
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	}
}

// handleClientMessage processes subscribe and unsubscribe commands
func (c *Connection) handleClientMessage(message []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		c.sendError(fmt.Errorf("invalid message: %w", err))
		return
	}

	switch msg.Type {
	case "subscribe":
		id, err := uuid.Parse(msg.TournamentID)
		if err != nil {
			c.sendError(fmt.Errorf("invalid tournament_id: %w", err))
			return
		}
		if err := c.Manager.Subscribe(c, id); err != nil {
			log.Warn().
				Err(err).
				Str("connection_id", c.ID).
				Msg("subscribe failed")
			c.sendError(err)
		}
	case "unsubscribe":
		c.Manager.Unsubscribe(c)
	default:
		c.sendError(fmt.Errorf("unknown message type %q", msg.Type))
	}
}

func (c *Connection) sendError(err error) {
	data, _ := json.Marshal(ErrorPayload{Message: err.Error()})
	c.Manager.sendTo(c, &LeaderboardEvent{
		ID:        uuid.New().String(),
		Type:      EventTypeError,
		Timestamp: time.Now(),
		Data:      data,
	})
}
