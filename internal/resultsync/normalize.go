package resultsync

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var fillerTokens = map[string]bool{
	"fc":  true,
	"cf":  true,
	"sc":  true,
	"ac":  true,
	"afc": true,
}

// NormalizeTeamName folds a team name to a comparable key: accents removed,
// lower case, punctuation dropped and club suffixes like "FC" stripped.
func NormalizeTeamName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	folded = strings.ToLower(folded)
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	kept := fields[:0]
	for _, f := range fields {
		if !fillerTokens[f] {
			kept = append(kept, f)
		}
	}

	return strings.Join(kept, " ")
}

// minContainLen keeps short keys like "us" from matching inside unrelated names.
const minContainLen = 4

func sameTeam(a, b string) bool {
	na, nb := NormalizeTeamName(a), NormalizeTeamName(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	if len(na) >= minContainLen && strings.Contains(nb, na) {
		return true
	}
	return len(nb) >= minContainLen && strings.Contains(na, nb)
}
