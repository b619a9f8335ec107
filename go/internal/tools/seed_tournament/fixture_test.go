package main

import (
	"os"
	"strings"
	"testing"
	"time"
)

const fixtureJSON = `{
  "season_id": "6f1c1f9e-2b0e-4c53-9a51-2f0f7d4b8e10",
  "tier": {"id": "0b1f6f5e-6a3b-4d7e-8f59-1c2d3e4f5a6b", "name": "Major", "points": [1000, 600], "payouts": [500, 300]},
  "tours": [{"id": "9a8b7c6d-5e4f-4a3b-2c1d-0e9f8a7b6c5d", "name": "Dynasty Tour", "short_form": "DT"}],
  "tournament": {
    "id": "1d2c3b4a-5f6e-4d8c-9b0a-1f2e3d4c5b6a",
    "name": "The Masters",
    "start_date": "April 10, 2025",
    "end_date": "2025-04-13",
    "current_round": 2,
    "live_play": true
  },
  "golfers": [{"id": "2e3d4c5b-6a7f-4e9d-8c1b-2a3f4e5d6c7b", "api_id": 46046, "player_name": "Scottie Scheffler", "rounds": [68, null, null, null]}],
  "teams": []
}`

func TestParseFixture(t *testing.T) {
	f, err := parseFixture([]byte(fixtureJSON))
	if err != nil {
		t.Fatalf("parseFixture: %v", err)
	}
	if want := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC); !f.Tournament.start.Equal(want) {
		t.Fatalf("start = %v, want %v", f.Tournament.start, want)
	}
	if want := time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC); !f.Tournament.end.Equal(want) {
		t.Fatalf("end = %v, want %v", f.Tournament.end, want)
	}
	if f.Tier.Name != "Major" || len(f.Tier.Points) != 2 {
		t.Fatalf("tier = %+v", f.Tier)
	}
	g := f.Golfers[0]
	if g.Rounds[0] == nil || *g.Rounds[0] != 68 || g.Rounds[1] != nil {
		t.Fatalf("rounds = %v", g.Rounds)
	}
}

func TestParseFixtureErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{"bad start", func(s string) string { return strings.Replace(s, "April 10, 2025", "someday", 1) }, "start_date"},
		{"end before start", func(s string) string { return strings.Replace(s, "2025-04-13", "2025-04-01", 1) }, "before"},
		{"no season", func(s string) string {
			return strings.Replace(s, `"season_id": "6f1c1f9e-2b0e-4c53-9a51-2f0f7d4b8e10",`, "", 1)
		}, "season_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFixture([]byte(tt.mutate(fixtureJSON)))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseBundledFixture(t *testing.T) {
	data, err := os.ReadFile("testdata/tournament.json")
	if err != nil {
		t.Fatal(err)
	}
	f, err := parseFixture(data)
	if err != nil {
		t.Fatalf("parseFixture: %v", err)
	}
	if len(f.Golfers) != 4 || len(f.Teams) != 2 || len(f.TourCards) != 2 {
		t.Fatalf("counts = %d golfers, %d teams, %d cards", len(f.Golfers), len(f.Teams), len(f.TourCards))
	}
	// every rostered golfer is in the field
	field := make(map[string]bool)
	for _, g := range f.Golfers {
		field[g.ID.String()] = true
	}
	for _, tm := range f.Teams {
		for _, id := range golferIDs(tm.GolferIDs) {
			if !field[id] {
				t.Fatalf("team %s rosters unknown golfer %s", tm.ID, id)
			}
		}
	}
}
