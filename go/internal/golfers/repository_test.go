package golfers

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/golfers/db"
)

type fakeQuerier struct {
	golfers []db.Golfer
	err     error
}

func (f *fakeQuerier) GetGolfersByTournament(context.Context, uuid.UUID) ([]db.Golfer, error) {
	return f.golfers, f.err
}

func TestRepositoryGetGolfersByTournament(t *testing.T) {
	q := &fakeQuerier{golfers: []db.Golfer{{
		ID:          uuid.New(),
		ApiID:       4242,
		PlayerName:  "Rory McIlroy",
		Score:       sql.NullInt32{Int32: -11, Valid: true},
		Thru:        sql.NullInt32{Int32: 14, Valid: true},
		RoundTwo:    sql.NullInt32{Int32: 66, Valid: true},
		Position:    sql.NullString{String: "1", Valid: true},
		PosChange:   sql.NullInt32{Int32: 3, Valid: true},
		GroupNumber: sql.NullInt16{Int16: 1, Valid: true},
	}}}

	golfers, err := NewRepository(q).GetGolfersByTournament(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetGolfersByTournament: %v", err)
	}
	g := golfers[0]
	if g.APIID != 4242 || g.Name != "Rory McIlroy" || g.Group != 1 {
		t.Fatalf("unexpected golfer %+v", g)
	}
	if g.Rounds[0] != nil || g.Rounds[1] == nil || *g.Rounds[1] != 66 {
		t.Fatalf("rounds = %v", g.Rounds)
	}
	if g.PosChange == nil || *g.PosChange != 3 {
		t.Fatalf("pos change = %v", g.PosChange)
	}
	if g.WorldRank != nil || g.Today != nil {
		t.Fatal("null columns should map to nil")
	}
}

func TestRepositoryWrapsQueryError(t *testing.T) {
	boom := errors.New("timeout")
	_, err := NewRepository(&fakeQuerier{err: boom}).GetGolfersByTournament(context.Background(), uuid.New())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
}
