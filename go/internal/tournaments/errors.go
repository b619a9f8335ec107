package tournaments

import "errors"

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTierNotFound       = errors.New("tier not found")
)
