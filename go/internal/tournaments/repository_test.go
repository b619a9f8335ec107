package tournaments

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/tournaments/db"
	"github.com/sqlc-dev/pqtype"
)

type fakeQuerier struct {
	tournaments map[uuid.UUID]db.Tournament
	tiers       map[uuid.UUID]db.Tier
	err         error
}

func (f *fakeQuerier) GetTournament(_ context.Context, id uuid.UUID) (db.Tournament, error) {
	if f.err != nil {
		return db.Tournament{}, f.err
	}
	t, ok := f.tournaments[id]
	if !ok {
		return db.Tournament{}, sql.ErrNoRows
	}
	return t, nil
}

func (f *fakeQuerier) GetTier(_ context.Context, id uuid.UUID) (db.Tier, error) {
	t, ok := f.tiers[id]
	if !ok {
		return db.Tier{}, sql.ErrNoRows
	}
	return t, nil
}

func (f *fakeQuerier) ListLiveTournaments(context.Context) ([]db.Tournament, error) {
	var out []db.Tournament
	for _, t := range f.tournaments {
		if t.LivePlay {
			out = append(out, t)
		}
	}
	return out, nil
}

func rawJSON(t *testing.T, v any) pqtype.NullRawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return pqtype.NullRawMessage{RawMessage: b, Valid: true}
}

func TestRepositoryGetTournament(t *testing.T) {
	id, tier := uuid.New(), uuid.New()
	start := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
	q := &fakeQuerier{tournaments: map[uuid.UUID]db.Tournament{
		id: {
			ID:           id,
			Name:         "Masters",
			StartDate:    start,
			EndDate:      start.Add(96 * time.Hour),
			CurrentRound: sql.NullInt16{Int16: 3, Valid: true},
			LivePlay:     true,
			TierID:       uuid.NullUUID{UUID: tier, Valid: true},
		},
	}}
	repo := NewRepository(q)

	got, err := repo.GetTournament(context.Background(), id)
	if err != nil {
		t.Fatalf("GetTournament: %v", err)
	}
	if got.CurrentRound != 3 || !got.LivePlay || got.Name != "Masters" {
		t.Fatalf("unexpected tournament %+v", got)
	}
	if got.TierID == nil || *got.TierID != tier {
		t.Fatalf("tier id = %v", got.TierID)
	}
	if got.CourseID != nil {
		t.Fatalf("course id should be nil, got %v", got.CourseID)
	}
}

func TestRepositoryGetTournamentNotFound(t *testing.T) {
	repo := NewRepository(&fakeQuerier{})
	if _, err := repo.GetTournament(context.Background(), uuid.New()); !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("err = %v, want ErrTournamentNotFound", err)
	}
}

func TestRepositoryGetTournamentWrapsErrors(t *testing.T) {
	boom := errors.New("connection reset")
	repo := NewRepository(&fakeQuerier{err: boom})
	_, err := repo.GetTournament(context.Background(), uuid.New())
	if !errors.Is(err, boom) || errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestRepositoryGetTier(t *testing.T) {
	id := uuid.New()
	q := &fakeQuerier{tiers: map[uuid.UUID]db.Tier{
		id: {ID: id, Name: "Major", Points: rawJSON(t, []int{1000, 600, 400}), Payouts: pqtype.NullRawMessage{}},
	}}

	tier, err := NewRepository(q).GetTier(context.Background(), id)
	if err != nil {
		t.Fatalf("GetTier: %v", err)
	}
	if len(tier.Points) != 3 || tier.Points[1] != 600 {
		t.Fatalf("points = %v", tier.Points)
	}
	if tier.Payouts != nil {
		t.Fatalf("payouts = %v, want nil", tier.Payouts)
	}
}

func TestRepositoryGetTierBadJSON(t *testing.T) {
	id := uuid.New()
	q := &fakeQuerier{tiers: map[uuid.UUID]db.Tier{
		id: {ID: id, Points: pqtype.NullRawMessage{RawMessage: []byte(`{"not":"a list"}`), Valid: true}},
	}}
	if _, err := NewRepository(q).GetTier(context.Background(), id); err == nil {
		t.Fatal("expected decode error")
	}
}
