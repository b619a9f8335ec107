package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
)

// Fixture mirrors the JSON layout of a tournament snapshot
type Fixture struct {
	SeasonID   uuid.UUID         `json:"season_id"`
	Tier       *TierFixture      `json:"tier"`
	Tours      []TourFixture     `json:"tours"`
	Tournament TournamentFixture `json:"tournament"`
	TourCards  []TourCardFixture `json:"tour_cards"`
	Golfers    []GolferFixture   `json:"golfers"`
	Teams      []TeamFixture     `json:"teams"`
}

type TierFixture struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Points  []int     `json:"points"`
	Payouts []int     `json:"payouts"`
}

type TourFixture struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ShortForm string    `json:"short_form"`
}

// TournamentFixture keeps dates as strings; fixtures are hand written and
// dates come in whatever format the author used.
type TournamentFixture struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	CurrentRound *int      `json:"current_round"`
	LivePlay     bool      `json:"live_play"`

	start, end time.Time
}

type TourCardFixture struct {
	ID          uuid.UUID `json:"id"`
	MemberID    uuid.UUID `json:"member_id"`
	TourID      uuid.UUID `json:"tour_id"`
	DisplayName string    `json:"display_name"`
}

type GolferFixture struct {
	ID         uuid.UUID `json:"id"`
	APIID      int       `json:"api_id"`
	PlayerName string    `json:"player_name"`
	Score      *int      `json:"score"`
	Today      *int      `json:"today"`
	Thru       *int      `json:"thru"`
	Rounds     [4]*int   `json:"rounds"`
	Position   *string   `json:"position"`
	PosChange  *int      `json:"pos_change"`
	Group      *int      `json:"group"`
	WorldRank  *int      `json:"world_rank"`
}

type TeamFixture struct {
	ID           uuid.UUID   `json:"id"`
	TourCardID   uuid.UUID   `json:"tour_card_id"`
	Score        *int        `json:"score"`
	Today        *int        `json:"today"`
	Thru         *int        `json:"thru"`
	Rounds       [4]*int     `json:"rounds"`
	Position     *string     `json:"position"`
	PastPosition *string     `json:"past_position"`
	GolferIDs    []uuid.UUID `json:"golfer_ids"`
}

func parseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal fixture: %w", err)
	}
	if f.Tournament.ID == uuid.Nil || f.SeasonID == uuid.Nil {
		return nil, fmt.Errorf("fixture needs season_id and tournament.id")
	}

	var err error
	if f.Tournament.start, err = dateparse.ParseIn(f.Tournament.StartDate, time.UTC); err != nil {
		return nil, fmt.Errorf("parse start_date %q: %w", f.Tournament.StartDate, err)
	}
	if f.Tournament.end, err = dateparse.ParseIn(f.Tournament.EndDate, time.UTC); err != nil {
		return nil, fmt.Errorf("parse end_date %q: %w", f.Tournament.EndDate, err)
	}
	if f.Tournament.end.Before(f.Tournament.start) {
		return nil, fmt.Errorf("end_date %s is before start_date %s", f.Tournament.EndDate, f.Tournament.StartDate)
	}
	return &f, nil
}

// golferIDs renders ids for a uuid[] parameter
func golferIDs(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
