package leaderboard

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/models"
	"github.com/rs/zerolog/log"
)

const maxRounds = 4

// Input is everything the assembler needs to build one tournament snapshot
type Input struct {
	Tournament models.Tournament
	Tier       *models.Tier
	Tours      []models.Tour
	Teams      []models.Team
	Golfers    []models.Golfer
	Now        time.Time
}

// GroupByTour partitions teams by the tour their tour card belongs to.
// Teams whose tour is missing or unknown are dropped and counted.
func GroupByTour(teams []models.Team, tours []models.Tour) (map[uuid.UUID][]models.Team, int) {
	known := make(map[uuid.UUID]struct{}, len(tours))
	for _, tour := range tours {
		known[tour.ID] = struct{}{}
	}

	groups := make(map[uuid.UUID][]models.Team, len(tours))
	dropped := 0
	for _, team := range teams {
		if team.TourID == nil {
			log.Warn().
				Str("team_id", team.ID.String()).
				Str("tour_card_id", team.TourCardID.String()).
				Msg("dropping team with unresolved tour card")
			dropped++
			continue
		}
		if _, ok := known[*team.TourID]; !ok {
			log.Warn().
				Str("team_id", team.ID.String()).
				Str("tour_id", team.TourID.String()).
				Msg("dropping team on unknown tour")
			dropped++
			continue
		}
		groups[*team.TourID] = append(groups[*team.TourID], team)
	}
	return groups, dropped
}

// RankGroup orders the rows of one group for display.
func RankGroup(rows []Row) []Row {
	return SortRows(rows)
}

// PositionChange is past minus current after stripping tie markers, so a
// positive value is an improvement. It is 0 before round 2 and whenever
// either side is not a numeric position.
func PositionChange(past, current string, round int) int {
	if round <= 1 {
		return 0
	}
	p, ok := StripTieMarker(past)
	if !ok {
		return 0
	}
	c, ok := StripTieMarker(current)
	if !ok {
		return 0
	}
	return p - c
}

// TeamPositionChange computes a team's movement since the last update.
func TeamPositionChange(team models.Team, round int) int {
	return PositionChange(team.PastPosition, team.Position, round)
}

// GolferPositionChange uses the movement reported by the scoring feed.
func GolferPositionChange(golfer models.Golfer) int {
	if golfer.PosChange == nil {
		return 0
	}
	return *golfer.PosChange
}

// RoundDelta compares a round score against the mean of the peers that have
// a score for that round, rounded to one decimal.
func RoundDelta(score *int, round int, peers []Row) (Delta, bool) {
	if score == nil || round < 1 || round > maxRounds {
		return Delta{}, false
	}

	sum, n := 0, 0
	for _, p := range peers {
		if s := p.Rounds[round-1]; s != nil {
			sum += *s
			n++
		}
	}
	if n < 2 {
		return Delta{}, false
	}

	mean := float64(sum) / float64(n)
	v := math.Round((float64(*score)-mean)*10) / 10
	if v == 0 {
		v = 0 // drop negative zero
	}

	d := Delta{Value: v, Tone: ToneEven}
	switch {
	case v < 0:
		d.Tone = ToneUnder
	case v > 0:
		d.Tone = ToneOver
	}
	return d, true
}

// CumulativeRank ranks row's running total through round among peers.
// peers must include row itself. Ties carry a "T" prefix.
func CumulativeRank(row Row, round int, peers []Row) (string, bool) {
	if round < 1 || round > maxRounds || len(peers) < 2 {
		return "", false
	}

	total := cumulative(row, round)
	lower, same := 0, 0
	for _, p := range peers {
		switch t := cumulative(p, round); {
		case t < total:
			lower++
		case t == total:
			same++
		}
	}

	rank := strconv.Itoa(lower + 1)
	if same >= 2 {
		rank = "T" + rank
	}
	return rank, true
}

func cumulative(row Row, round int) int {
	total := 0
	for i := 0; i < round; i++ {
		total += valueOr(row.Rounds[i])
	}
	return total
}

// ProjectedPoints returns the tier points for a finishing position. Tied
// entries split the points of every slot they span.
func ProjectedPoints(tier *models.Tier, position string, tied int) (float64, bool) {
	if tier == nil || len(tier.Points) == 0 {
		return 0, false
	}
	if ParseLifecycle(position).Terminal() {
		return 0, true
	}
	pos, ok := StripTieMarker(position)
	if !ok {
		return 0, false
	}
	if tied < 1 {
		tied = 1
	}

	sum := 0
	for slot := pos - 1; slot < pos-1+tied; slot++ {
		if slot < len(tier.Points) {
			sum += tier.Points[slot]
		}
	}
	return math.Round(float64(sum)/float64(tied)*10) / 10, true
}

// Assemble builds the full snapshot: one board per tour, ordered by tour
// name, plus the golfer field.
func Assemble(in Input) *Snapshot {
	round := min(max(in.Tournament.CurrentRound, 0), maxRounds)
	groups, dropped := GroupByTour(in.Teams, in.Tours)

	tours := slices.Clone(in.Tours)
	slices.SortFunc(tours, func(a, b models.Tour) int {
		return strings.Compare(a.Name, b.Name)
	})

	boards := make([]Board, 0, len(tours))
	for _, tour := range tours {
		teams := groups[tour.ID]
		rows := make([]Row, 0, len(teams))
		for _, team := range teams {
			r := teamRow(team)
			r.PositionChange = TeamPositionChange(team, round)
			rows = append(rows, r)
		}
		ranked := RankGroup(rows)
		decorate(ranked, round, in.Tier)

		tourID := tour.ID
		boards = append(boards, Board{TourID: &tourID, Name: tour.Name, Rows: ranked})
	}

	fieldRows := make([]Row, 0, len(in.Golfers))
	for _, golfer := range in.Golfers {
		r := golferRow(golfer)
		r.PositionChange = GolferPositionChange(golfer)
		fieldRows = append(fieldRows, r)
	}
	field := RankGroup(fieldRows)
	decorate(field, round, nil)

	return &Snapshot{
		TournamentID: in.Tournament.ID,
		Tournament:   in.Tournament,
		Status:       in.Tournament.Status(in.Now),
		Round:        round,
		Boards:       boards,
		Field:        Board{Name: "Field", Rows: field},
		Dropped:      dropped,
		GeneratedAt:  in.Now,
	}
}

func decorate(rows []Row, round int, tier *models.Tier) {
	tied := make(map[string]int, len(rows))
	for _, r := range rows {
		tied[r.Position]++
	}

	for i := range rows {
		r := &rows[i]
		if tier != nil {
			if pts, ok := ProjectedPoints(tier, r.Position, tied[r.Position]); ok {
				r.Points = &pts
			}
		}
		if round == 0 {
			continue
		}
		r.RoundCells = make([]RoundCell, 0, round)
		for rd := 1; rd <= round; rd++ {
			cell := RoundCell{Round: rd, Score: r.Rounds[rd-1]}
			if d, ok := RoundDelta(r.Rounds[rd-1], rd, rows); ok {
				cell.Delta = &d
			}
			if rank, ok := CumulativeRank(*r, rd, rows); ok {
				cell.CumulativeRank = rank
			}
			r.RoundCells = append(r.RoundCells, cell)
		}
	}
}

func teamRow(t models.Team) Row {
	return Row{
		ID:           t.ID,
		Name:         t.DisplayName,
		Position:     t.Position,
		PastPosition: t.PastPosition,
		Lifecycle:    ParseLifecycle(t.Position),
		Score:        t.Score,
		Today:        t.Today,
		Thru:         t.Thru,
		Rounds:       t.Rounds,
	}
}

func golferRow(g models.Golfer) Row {
	return Row{
		ID:        g.ID,
		Name:      g.Name,
		Position:  g.Position,
		Lifecycle: ParseLifecycle(g.Position),
		Score:     g.Score,
		Today:     g.Today,
		Thru:      g.Thru,
		Rounds:    g.Rounds,
	}
}
