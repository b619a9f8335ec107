package teams

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mcdev12/fantasygolf/go/internal/teams/db"
)

type fakeQuerier struct {
	teams []db.TeamWithTour
	tours []db.Tour
}

func (f *fakeQuerier) GetTeamsByTournament(context.Context, uuid.UUID) ([]db.TeamWithTour, error) {
	return f.teams, nil
}

func (f *fakeQuerier) GetToursBySeason(context.Context, uuid.UUID) ([]db.Tour, error) {
	return f.tours, nil
}

func TestRepositoryGetTeamsByTournament(t *testing.T) {
	tour, golfer := uuid.New(), uuid.New()
	q := &fakeQuerier{teams: []db.TeamWithTour{
		{
			ID:           uuid.New(),
			TourID:       uuid.NullUUID{UUID: tour, Valid: true},
			DisplayName:  sql.NullString{String: "Scottie's Boys", Valid: true},
			Score:        sql.NullInt32{Int32: -7, Valid: true},
			RoundOne:     sql.NullInt32{Int32: 68, Valid: true},
			RoundThree:   sql.NullInt32{Int32: 70, Valid: true},
			Position:     sql.NullString{String: "T2", Valid: true},
			PastPosition: sql.NullString{String: "5", Valid: true},
			GolferIds:    pq.StringArray{golfer.String()},
		},
		{ID: uuid.New()},
	}}

	teams, err := NewRepository(q).GetTeamsByTournament(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetTeamsByTournament: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("len = %d, want 2", len(teams))
	}

	first := teams[0]
	if first.TourID == nil || *first.TourID != tour {
		t.Fatalf("tour id = %v", first.TourID)
	}
	if first.Score == nil || *first.Score != -7 {
		t.Fatalf("score = %v", first.Score)
	}
	if first.Rounds[0] == nil || *first.Rounds[0] != 68 || first.Rounds[1] != nil || *first.Rounds[2] != 70 {
		t.Fatalf("rounds not mapped in order: %v", first.Rounds)
	}
	if len(first.GolferIDs) != 1 || first.GolferIDs[0] != golfer {
		t.Fatalf("golfer ids = %v", first.GolferIDs)
	}

	orphan := teams[1]
	if orphan.TourID != nil || orphan.Position != "" || orphan.Thru != nil {
		t.Fatalf("orphan team should carry nulls through: %+v", orphan)
	}
}

func TestRepositoryRejectsBadGolferID(t *testing.T) {
	q := &fakeQuerier{teams: []db.TeamWithTour{{ID: uuid.New(), GolferIds: pq.StringArray{"nope"}}}}
	if _, err := NewRepository(q).GetTeamsByTournament(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error for malformed golfer id")
	}
}
