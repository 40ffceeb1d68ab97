package scoring

import (
	"cmp"
	"slices"
	"time"
)

type Entry struct {
	UserID string
	Summary
	CreatedAt time.Time
}

type RankedEntry struct {
	Entry
	Position int
}

// Compare orders entries best first: points, exact hits and correct outcomes
// descending, then earlier registration. UserID is the last key so identical
// timestamps still sort the same way every time.
func Compare(a, b Entry) int {
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	if c := cmp.Compare(b.ExactHits, a.ExactHits); c != 0 {
		return c
	}
	if c := cmp.Compare(b.CorrectOutcomes, a.CorrectOutcomes); c != 0 {
		return c
	}
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.UserID, b.UserID)
}

// Rank returns a sorted copy of entries with 1-based positions.
func Rank(entries []Entry) []RankedEntry {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, Compare)

	ranked := make([]RankedEntry, len(sorted))
	for i, e := range sorted {
		ranked[i] = RankedEntry{Entry: e, Position: i + 1}
	}
	return ranked
}
