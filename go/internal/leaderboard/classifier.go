package leaderboard

import (
	"cmp"
	"slices"
	"strings"
)

// Lifecycle is the scoring state of a golfer or team
type Lifecycle string

const (
	LifecycleActive       Lifecycle = "ACTIVE"
	LifecycleCut          Lifecycle = "CUT"
	LifecycleWithdrawn    Lifecycle = "WD"
	LifecycleDisqualified Lifecycle = "DQ"
)

// Offsets push terminal entries past every real score. Tiers never
// interleave for scores inside the normal golf range.
const (
	cutOffset          = 444
	withdrawnOffset    = 888
	disqualifiedOffset = 999
)

// ParseLifecycle reads the lifecycle tag carried in a position string.
// Anything that is not a terminal tag is active.
func ParseLifecycle(position string) Lifecycle {
	switch strings.ToUpper(strings.TrimSpace(position)) {
	case "CUT":
		return LifecycleCut
	case "WD":
		return LifecycleWithdrawn
	case "DQ":
		return LifecycleDisqualified
	default:
		return LifecycleActive
	}
}

// Terminal reports whether the entry has stopped scoring.
func (l Lifecycle) Terminal() bool {
	return l == LifecycleCut || l == LifecycleWithdrawn || l == LifecycleDisqualified
}

// RankingKey maps a score and position tag to a value suitable for an
// ascending sort. A nil score counts as Sentinel before the offset.
func RankingKey(score *int, position string) int {
	s := valueOr(score)
	switch ParseLifecycle(position) {
	case LifecycleDisqualified:
		return s + disqualifiedOffset
	case LifecycleWithdrawn:
		return s + withdrawnOffset
	case LifecycleCut:
		return s + cutOffset
	default:
		return s
	}
}

// SortRows returns rows ordered by ranking key, with equal keys ordered by
// holes completed ascending. The sort is stable and the input is not modified.
func SortRows(rows []Row) []Row {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b Row) int {
		if c := cmp.Compare(RankingKey(a.Score, a.Position), RankingKey(b.Score, b.Position)); c != 0 {
			return c
		}
		return cmp.Compare(thruOf(a.Thru), thruOf(b.Thru))
	})
	return out
}
