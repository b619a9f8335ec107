package freshness

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// State is where a controller is in its refresh cycle
type State int

const (
	StateIdle State = iota
	StatePolling
	StateRefreshing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePolling:
		return "polling"
	case StateRefreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}

// Loader builds a complete snapshot for a tournament
type Loader interface {
	Load(ctx context.Context, tournamentID uuid.UUID) (*leaderboard.Snapshot, error)
}

// Sink receives every applied snapshot, in version order
type Sink interface {
	Publish(ctx context.Context, snap *leaderboard.Snapshot) error
}

// Clock is the subset of clockwork.Clock the controller uses.
// In production, use clockwork.NewRealClock(). In tests, a FakeClock.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	NewTimer(d time.Duration) clockwork.Timer
	NewTicker(d time.Duration) clockwork.Ticker
}

// Status is a point-in-time view of a controller
type Status struct {
	State         State
	Loading       bool
	LastRefreshed time.Time
	LastError     error
}

// Freshness converts the status to its wire form.
func (s Status) Freshness() leaderboard.Freshness {
	f := leaderboard.Freshness{
		State:         s.State.String(),
		Loading:       s.Loading,
		LastRefreshed: s.LastRefreshed,
	}
	if s.LastError != nil {
		f.LastError = s.LastError.Error()
	}
	return f
}

const refreshKey = "refresh"

// Controller keeps one tournament's cached snapshot current while it is
// being viewed. Every fetch gets a sequence number; a result is applied only
// if no later-issued fetch has been applied already.
type Controller struct {
	tournamentID uuid.UUID
	loader       Loader
	cache        *Cache
	clock        Clock
	cfg          Config
	sinks        []Sink

	ctx    context.Context
	cancel context.CancelFunc
	flight singleflight.Group
	wg     sync.WaitGroup // poll loop and triggered refreshes

	mu            sync.Mutex
	state         State
	started       bool
	closed        bool
	issued        uint64
	applied       uint64
	cooldownUntil time.Time
	lastErr       error
	ticker        clockwork.Ticker
	stopPoll      chan struct{}

	publishMu sync.Mutex
	published uint64

	// awaitingFirst keeps the poll timer armed after a failed mount fetch left
	// nothing cached, until a snapshot lands.
	awaitingFirst bool

	// base carries snapshot versions on from an earlier controller of the
	// same tournament, so versions never repeat across remounts.
	base uint64
}

// NewController creates a controller for one tournament. It does nothing
// until Start or Refresh is called.
func NewController(tournamentID uuid.UUID, loader Loader, cache *Cache, clock Clock, cfg Config, sinks ...Sink) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	var base uint64
	if e, ok := cache.Get(tournamentID); ok && e.Snapshot != nil {
		base = e.Snapshot.Version
	}
	return &Controller{
		base:         base,
		tournamentID: tournamentID,
		loader:       loader,
		cache:        cache,
		clock:        clock,
		cfg:          cfg,
		sinks:        sinks,
		ctx:          ctx,
		cancel:       cancel,
		state:        StateIdle,
	}
}

// Start mounts the controller. A missing, invalidated or stale cache entry
// is refetched before Start returns. Polling runs while the tournament is live.
// Fetch failures are logged and reported through Status.
func (c *Controller) Start(ctx context.Context) error {
	_, err := c.start(ctx)
	return err
}

// mount describes the fetch Start made, if any.
type mount struct {
	fetched  bool  // a fetch ran on mount
	fetchErr error // its error, nil when a snapshot was applied
}

func (c *Controller) start(ctx context.Context) (mount, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return mount{}, leaderboard.ErrControllerClosed
	}
	if c.started {
		c.mu.Unlock()
		return mount{}, nil
	}
	c.started = true
	c.mu.Unlock()

	entry, ok := c.cache.Get(c.tournamentID)
	if !c.needsFetch(entry, ok) {
		c.mu.Lock()
		if !c.closed {
			c.setLiveLocked(entry.Snapshot.Tournament.LivePlay)
		}
		c.mu.Unlock()
		return mount{}, nil
	}

	log.Debug().
		Str("tournament_id", c.tournamentID.String()).
		Bool("cached", ok).
		Msg("leaderboard missing or stale on mount, fetching")
	_, err := c.Refresh(ctx)
	if err == nil {
		return mount{fetched: true}, nil
	}

	c.mu.Lock()
	if !c.closed {
		if latest, cached := c.cache.Get(c.tournamentID); cached {
			c.setLiveLocked(latest.Snapshot.Tournament.LivePlay)
		} else {
			// nothing to show yet, keep retrying on the poll interval
			c.awaitingFirst = true
			c.setLiveLocked(false)
		}
	}
	c.mu.Unlock()
	return mount{fetched: true, fetchErr: err}, nil
}

// Refresh fetches now. Concurrent callers share a single fetch.
func (c *Controller) Refresh(ctx context.Context) (*leaderboard.Snapshot, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil, leaderboard.ErrControllerClosed
	}

	ch := c.flight.DoChan(refreshKey, func() (any, error) {
		return c.fetch()
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*leaderboard.Snapshot), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// View returns the cached snapshot, refreshing first when it is missing or
// stale. A failed refresh falls back to cached data when there is any.
func (c *Controller) View(ctx context.Context) (*leaderboard.Snapshot, Status, error) {
	entry, ok := c.cache.Get(c.tournamentID)
	if c.needsFetch(entry, ok) {
		snap, err := c.Refresh(ctx)
		if err == nil {
			return snap, c.Status(), nil
		}
		if !ok {
			return nil, c.Status(), err
		}
		log.Warn().
			Err(err).
			Str("tournament_id", c.tournamentID.String()).
			Time("refreshed_at", entry.RefreshedAt).
			Msg("serving stale leaderboard")
	}
	return entry.Snapshot, c.Status(), nil
}

// Trigger starts a refresh in the background, for change notices from outside.
func (c *Controller) Trigger() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		_, _ = c.Refresh(c.ctx) // failures are logged on completion
	}()
}

// SetLive starts or stops polling.
func (c *Controller) SetLive(live bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.setLiveLocked(live)
}

// Status reports the controller's state. Loading stays true for the
// cooldown after a fetch completes.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, _ := c.cache.Get(c.tournamentID)
	return Status{
		State:         c.state,
		Loading:       c.state == StateRefreshing || c.clock.Now().Before(c.cooldownUntil),
		LastRefreshed: entry.RefreshedAt,
		LastError:     c.lastErr,
	}
}

// Close stops polling and waits for the poll loop to exit. Fetches still in
// flight are abandoned and their results discarded. Close is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopPollingLocked()
	c.state = StateIdle
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()

	log.Debug().
		Str("tournament_id", c.tournamentID.String()).
		Msg("leaderboard controller closed")
}

func (c *Controller) needsFetch(entry Entry, ok bool) bool {
	return !ok || entry.Invalidated || c.clock.Since(entry.RefreshedAt) > c.cfg.StaleAfter
}

// fetch runs one load under the fetch timeout. Only called through the
// singleflight group.
func (c *Controller) fetch() (*leaderboard.Snapshot, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, leaderboard.ErrControllerClosed
	}
	c.issued++
	seq := c.issued
	c.state = StateRefreshing
	c.mu.Unlock()

	type result struct {
		snap *leaderboard.Snapshot
		err  error
	}
	done := make(chan result, 1)
	go func() {
		snap, err := c.loader.Load(c.ctx, c.tournamentID)
		snap, applied, err := c.apply(seq, snap, err)
		done <- result{snap, err}
		// sinks run outside the fetch timeout
		if applied {
			c.publish(snap)
		}
	}()

	timeout := c.clock.NewTimer(c.cfg.FetchTimeout)
	defer timeout.Stop()

	select {
	case r := <-done:
		return r.snap, r.err
	case <-timeout.Chan():
		c.abandon(seq)
		return nil, leaderboard.ErrRefreshTimeout
	case <-c.ctx.Done():
		return nil, leaderboard.ErrControllerClosed
	}
}

// complete applies a finished fetch and publishes it. It returns the snapshot
// now current in the cache, which is newer than snap when snap was superseded.
func (c *Controller) complete(seq uint64, snap *leaderboard.Snapshot, err error) (*leaderboard.Snapshot, error) {
	snap, applied, err := c.apply(seq, snap, err)
	if applied {
		c.publish(snap)
	}
	return snap, err
}

// apply writes a finished fetch to the cache. applied is false when the
// fetch failed or was superseded.
func (c *Controller) apply(seq uint64, snap *leaderboard.Snapshot, err error) (*leaderboard.Snapshot, bool, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		log.Debug().
			Str("tournament_id", c.tournamentID.String()).
			Uint64("seq", seq).
			Msg("discarding leaderboard fetched after close")
		return nil, false, leaderboard.ErrControllerClosed
	}

	latest := seq == c.issued
	if err != nil {
		if latest {
			c.lastErr = err
			c.state = c.restingLocked()
		}
		c.mu.Unlock()
		log.Error().
			Err(err).
			Str("tournament_id", c.tournamentID.String()).
			Uint64("seq", seq).
			Msg("leaderboard refresh failed, keeping cached data")
		return nil, false, err
	}

	if seq <= c.applied {
		applied := c.applied
		c.mu.Unlock()
		log.Debug().
			Str("tournament_id", c.tournamentID.String()).
			Uint64("seq", seq).
			Uint64("applied", applied).
			Msg("discarding superseded leaderboard fetch")
		entry, _ := c.cache.Get(c.tournamentID)
		return entry.Snapshot, false, nil
	}

	now := c.clock.Now()
	snap.Version = c.base + seq
	c.applied = seq
	c.lastErr = nil
	c.cache.Put(c.tournamentID, snap, now)
	c.cooldownUntil = now.Add(c.cfg.Cooldown)
	if latest {
		c.state = StatePolling // settled by setLiveLocked below
	}
	c.awaitingFirst = false
	c.setLiveLocked(snap.Tournament.LivePlay)
	c.mu.Unlock()

	return snap, true, nil
}

func (c *Controller) abandon(seq uint64) {
	c.mu.Lock()
	if seq == c.issued && !c.closed {
		c.lastErr = leaderboard.ErrRefreshTimeout
		c.state = c.restingLocked()
	}
	c.mu.Unlock()

	log.Error().
		Str("tournament_id", c.tournamentID.String()).
		Uint64("seq", seq).
		Dur("timeout", c.cfg.FetchTimeout).
		Msg("leaderboard refresh timed out, abandoning fetch")
}

func (c *Controller) publish(snap *leaderboard.Snapshot) {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()

	if snap.Version <= c.published {
		return
	}
	c.published = snap.Version

	for _, sink := range c.sinks {
		if err := sink.Publish(c.ctx, snap); err != nil {
			log.Error().
				Err(err).
				Str("tournament_id", c.tournamentID.String()).
				Uint64("version", snap.Version).
				Msg("failed to publish leaderboard")
		}
	}
}

// setLiveLocked reconciles the poll timer with the live flag. Polling only
// runs between Start and Close.
func (c *Controller) setLiveLocked(live bool) {
	live = live || c.awaitingFirst
	switch {
	case live && c.ticker == nil && c.started && !c.closed:
		c.ticker = c.clock.NewTicker(c.cfg.PollInterval)
		c.stopPoll = make(chan struct{})
		c.wg.Add(1)
		go c.poll(c.ticker, c.stopPoll)
		log.Info().
			Str("tournament_id", c.tournamentID.String()).
			Dur("interval", c.cfg.PollInterval).
			Msg("leaderboard polling started")
	case !live && c.ticker != nil:
		c.stopPollingLocked()
		log.Info().
			Str("tournament_id", c.tournamentID.String()).
			Msg("leaderboard polling stopped")
	}

	if c.state != StateRefreshing {
		c.state = c.restingLocked()
	}
}

func (c *Controller) stopPollingLocked() {
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	close(c.stopPoll)
	c.ticker, c.stopPoll = nil, nil
}

func (c *Controller) restingLocked() State {
	if c.ticker != nil {
		return StatePolling
	}
	return StateIdle
}

func (c *Controller) poll(ticker clockwork.Ticker, stop <-chan struct{}) {
	defer c.wg.Done()
	for {
		select {
		case <-stop:
			return
		case <-c.ctx.Done():
			return
		case <-ticker.Chan():
			_, _ = c.Refresh(c.ctx) // failures are logged on completion
		}
	}
}
