package leaderboard

import (
	"errors"

	"github.com/mcdev12/fantasygolf/go/internal/tournaments"
)

var (
	// ErrTournamentNotFound is returned when the data source has no such tournament.
	ErrTournamentNotFound = tournaments.ErrTournamentNotFound

	// ErrRefreshTimeout is returned when a fetch outlives the configured timeout.
	// The fetch is abandoned, not cancelled at the source.
	ErrRefreshTimeout = errors.New("leaderboard refresh timed out")

	// ErrControllerClosed is returned by refreshes issued after teardown.
	ErrControllerClosed = errors.New("leaderboard controller closed")
)
