package resultsync

import "kickoffAPI/internal/match"

// FindFixture picks the local fixture a feed match refers to. Kickoff must
// fall on the same UTC day and both team names must agree after
// normalization. The feed's short name is tried when the full name differs.
func FindFixture(fixtures []*match.Match, fm FeedMatch) (*match.Match, bool) {
	feedDay := fm.UTCDate.UTC().Format("2006-01-02")

	for _, f := range fixtures {
		if f.KickoffAt.UTC().Format("2006-01-02") != feedDay {
			continue
		}
		if teamMatches(f.HomeTeam, fm.HomeTeam) && teamMatches(f.AwayTeam, fm.AwayTeam) {
			return f, true
		}
	}
	return nil, false
}

func teamMatches(local string, remote FeedTeam) bool {
	if sameTeam(local, remote.Name) {
		return true
	}
	return remote.ShortName != "" && sameTeam(local, remote.ShortName)
}
