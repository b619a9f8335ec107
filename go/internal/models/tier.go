package models

import (
	"github.com/google/uuid"
)

// Tier is a tournament's points and payout schedule. Index 0 is first place.
type Tier struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Points  []int     `json:"points"`
	Payouts []int     `json:"payouts"`
}
