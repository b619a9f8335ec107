package rpc

import (
	"fmt"
	"net/http"
	"time"

	"connectrpc.com/connect"
)

// Cache lifetimes for read-only data services. Scores move every few
// minutes; schedules and tiers rarely change during an event.
const (
	ScoresMaxAge   = 15 * time.Second
	ScheduleMaxAge = 60 * time.Second
)

// CacheFor marks a response as publicly cacheable for d.
func CacheFor(h http.Header, d time.Duration) {
	h.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(d.Seconds())))
}

// ReadOnly marks a procedure as side-effect free, which lets clients
// built with connect.WithHTTPGet issue it as a GET.
func ReadOnly() connect.Option {
	return connect.WithIdempotency(connect.IdempotencyNoSideEffects)
}
