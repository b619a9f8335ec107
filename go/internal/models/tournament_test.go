package models

import (
	"testing"
	"time"
)

func TestTournamentStatus(t *testing.T) {
	start := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	tr := Tournament{StartDate: start, EndDate: start.Add(4 * 24 * time.Hour)}

	tests := []struct {
		name string
		now  time.Time
		want TournamentStatus
	}{
		{"before start", start.Add(-time.Hour), TournamentStatusUpcoming},
		{"at start", start, TournamentStatusCurrent},
		{"mid event", start.Add(50 * time.Hour), TournamentStatusCurrent},
		{"at end", tr.EndDate, TournamentStatusCurrent},
		{"after end", tr.EndDate.Add(time.Minute), TournamentStatusCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.Status(tt.now); got != tt.want {
				t.Fatalf("Status = %s, want %s", got, tt.want)
			}
		})
	}
}
