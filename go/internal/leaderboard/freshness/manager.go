package freshness

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard"
	"github.com/rs/zerolog/log"
)

type managed struct {
	ctrl *Controller
	refs int
}

// Manager owns the controllers of every tournament currently being viewed.
// Controllers are reference counted: the first Acquire mounts one, the last
// Release closes it.
type Manager struct {
	loader Loader
	cache  *Cache
	clock  Clock
	cfg    Config
	sinks  []Sink

	mu          sync.Mutex
	controllers map[uuid.UUID]*managed
	closed      bool
}

func NewManager(loader Loader, cache *Cache, clock Clock, cfg Config, sinks ...Sink) *Manager {
	return &Manager{
		loader:      loader,
		cache:       cache,
		clock:       clock,
		cfg:         cfg,
		sinks:       sinks,
		controllers: make(map[uuid.UUID]*managed),
	}
}

// AddSink registers a sink for controllers mounted from now on.
func (m *Manager) AddSink(sink Sink) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sinks = append(m.sinks, sink)
}

// Acquire returns the tournament's controller, mounting it if this is the
// first reference. Every successful Acquire must be paired with a Release.
func (m *Manager) Acquire(ctx context.Context, tournamentID uuid.UUID) (*Controller, error) {
	ctrl, _, err := m.acquire(ctx, tournamentID)
	return ctrl, err
}

// acquire also reports the fetch made while mounting, if any.
func (m *Manager) acquire(ctx context.Context, tournamentID uuid.UUID) (*Controller, mount, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, mount{}, leaderboard.ErrControllerClosed
	}
	if e, ok := m.controllers[tournamentID]; ok {
		e.refs++
		m.mu.Unlock()
		return e.ctrl, mount{}, nil
	}
	ctrl := NewController(tournamentID, m.loader, m.cache, m.clock, m.cfg, m.sinks...)
	m.controllers[tournamentID] = &managed{ctrl: ctrl, refs: 1}
	m.mu.Unlock()

	log.Debug().
		Str("tournament_id", tournamentID.String()).
		Msg("mounting leaderboard controller")

	mounted, err := ctrl.start(ctx)
	if err != nil {
		m.Release(tournamentID)
		return nil, mount{}, err
	}
	return ctrl, mounted, nil
}

// Release drops one reference. The last release closes the controller before
// returning, so a later Acquire always gets a fresh one.
func (m *Manager) Release(tournamentID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.controllers[tournamentID]
	if !ok {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}
	delete(m.controllers, tournamentID)
	e.ctrl.Close()
}

// Trigger forwards an upstream change notice. Mounted controllers refresh
// immediately; otherwise the cached entry is invalidated for the next mount.
func (m *Manager) Trigger(tournamentID uuid.UUID) {
	m.mu.Lock()
	e, ok := m.controllers[tournamentID]
	m.mu.Unlock()

	if !ok {
		m.cache.Invalidate(tournamentID)
		return
	}
	e.ctrl.Trigger()
}

// SetLive forwards a live-play change to a mounted controller.
func (m *Manager) SetLive(tournamentID uuid.UUID, live bool) {
	m.mu.Lock()
	e, ok := m.controllers[tournamentID]
	m.mu.Unlock()

	if ok {
		e.ctrl.SetLive(live)
	}
}

// Active lists the tournaments with a mounted controller.
func (m *Manager) Active() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]uuid.UUID, 0, len(m.controllers))
	for id := range m.controllers {
		ids = append(ids, id)
	}
	return ids
}

// Cached returns the tournament's cached snapshot without fetching.
func (m *Manager) Cached(tournamentID uuid.UUID) (*leaderboard.Snapshot, bool) {
	e, ok := m.cache.Get(tournamentID)
	if !ok {
		return nil, false
	}
	return e.Snapshot, true
}

// View serves a one-off read, mounting a controller for its duration.
func (m *Manager) View(ctx context.Context, tournamentID uuid.UUID) (*leaderboard.Snapshot, leaderboard.Freshness, error) {
	ctrl, mounted, err := m.acquire(ctx, tournamentID)
	if err != nil {
		return nil, leaderboard.Freshness{}, err
	}
	defer m.Release(tournamentID)

	if mounted.fetched {
		return m.afterMount(ctrl, tournamentID, mounted)
	}
	snap, status, err := ctrl.View(ctx)
	return snap, status.Freshness(), err
}

// Refresh serves a manual refresh request. A controller mounted by this call
// has just fetched, so no second fetch is issued.
func (m *Manager) Refresh(ctx context.Context, tournamentID uuid.UUID) (*leaderboard.Snapshot, leaderboard.Freshness, error) {
	ctrl, mounted, err := m.acquire(ctx, tournamentID)
	if err != nil {
		return nil, leaderboard.Freshness{}, err
	}
	defer m.Release(tournamentID)

	if mounted.fetched {
		if mounted.fetchErr != nil {
			return nil, ctrl.Status().Freshness(), mounted.fetchErr
		}
		snap, _ := m.Cached(tournamentID)
		return snap, ctrl.Status().Freshness(), nil
	}
	snap, err := ctrl.Refresh(ctx)
	return snap, ctrl.Status().Freshness(), err
}

// afterMount answers a read from the fetch the mount already made. A failed
// fetch falls back to cached data when there is any.
func (m *Manager) afterMount(ctrl *Controller, tournamentID uuid.UUID, mounted mount) (*leaderboard.Snapshot, leaderboard.Freshness, error) {
	snap, ok := m.Cached(tournamentID)
	if mounted.fetchErr != nil {
		if !ok {
			return nil, ctrl.Status().Freshness(), mounted.fetchErr
		}
		log.Warn().
			Err(mounted.fetchErr).
			Str("tournament_id", tournamentID.String()).
			Msg("serving stale leaderboard")
	}
	return snap, ctrl.Status().Freshness(), nil
}

// Close tears down every controller. Later Acquires fail.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	for id, e := range m.controllers {
		e.ctrl.Close()
		delete(m.controllers, id)
	}
}

var _ leaderboard.Viewer = (*Manager)(nil)
