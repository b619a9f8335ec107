package leaderboard

import (
	"strconv"
	"strings"
)

// Sentinel stands in for any missing score so that entries without data
// sort as the worst case instead of failing.
const Sentinel = 999

func valueOr(v *int) int {
	if v == nil {
		return Sentinel
	}
	return *v
}

// thruOf treats a missing holes-completed counter as not started.
func thruOf(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// StripTieMarker parses a position such as "T4" or "12" into its number.
// Terminal tags (CUT, WD, DQ) and anything else non-numeric return false.
func StripTieMarker(position string) (int, bool) {
	p := strings.TrimSpace(position)
	p = strings.TrimPrefix(strings.TrimPrefix(p, "T"), "t")
	n, err := strconv.Atoi(p)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
