// Package team canonicalizes NFL team names so that the local schedule,
// user picks and the results provider can be joined on the same key.
package team

import (
	"sort"
	"strings"
)

type franchise struct {
	name    string
	short   string
	mascot  string
	abbrevs []string
	aliases []string
}

var franchises = []franchise{
	{name: "Arizona Cardinals", short: "Arizona", mascot: "Cardinals", abbrevs: []string{"ARI"}},
	{name: "Atlanta Falcons", short: "Atlanta", mascot: "Falcons", abbrevs: []string{"ATL"}},
	{name: "Baltimore Ravens", short: "Baltimore", mascot: "Ravens", abbrevs: []string{"BAL"}},
	{name: "Buffalo Bills", short: "Buffalo", mascot: "Bills", abbrevs: []string{"BUF"}},
	{name: "Carolina Panthers", short: "Carolina", mascot: "Panthers", abbrevs: []string{"CAR"}},
	{name: "Chicago Bears", short: "Chicago", mascot: "Bears", abbrevs: []string{"CHI"}},
	{name: "Cincinnati Bengals", short: "Cincinnati", mascot: "Bengals", abbrevs: []string{"CIN"}},
	{name: "Cleveland Browns", short: "Cleveland", mascot: "Browns", abbrevs: []string{"CLE"}},
	{name: "Dallas Cowboys", short: "Dallas", mascot: "Cowboys", abbrevs: []string{"DAL"}},
	{name: "Denver Broncos", short: "Denver", mascot: "Broncos", abbrevs: []string{"DEN"}},
	{name: "Detroit Lions", short: "Detroit", mascot: "Lions", abbrevs: []string{"DET"}},
	{name: "Green Bay Packers", short: "Green Bay", mascot: "Packers", abbrevs: []string{"GB", "GNB"}},
	{name: "Houston Texans", short: "Houston", mascot: "Texans", abbrevs: []string{"HOU"}},
	{name: "Indianapolis Colts", short: "Indianapolis", mascot: "Colts", abbrevs: []string{"IND"}},
	{name: "Jacksonville Jaguars", short: "Jacksonville", mascot: "Jaguars", abbrevs: []string{"JAX", "JAC"}},
	{name: "Kansas City Chiefs", short: "Kansas City", mascot: "Chiefs", abbrevs: []string{"KC", "KAN"}},
	{name: "Las Vegas Raiders", short: "Las Vegas", mascot: "Raiders", abbrevs: []string{"LV", "LVR"}, aliases: []string{"Oakland Raiders", "Oakland"}},
	{name: "Los Angeles Chargers", short: "LA Chargers", mascot: "Chargers", abbrevs: []string{"LAC"}, aliases: []string{"San Diego Chargers"}},
	{name: "Los Angeles Rams", short: "LA Rams", mascot: "Rams", abbrevs: []string{"LAR"}, aliases: []string{"St. Louis Rams"}},
	{name: "Miami Dolphins", short: "Miami", mascot: "Dolphins", abbrevs: []string{"MIA"}},
	{name: "Minnesota Vikings", short: "Minnesota", mascot: "Vikings", abbrevs: []string{"MIN"}},
	{name: "New England Patriots", short: "New England", mascot: "Patriots", abbrevs: []string{"NE", "NWE"}},
	{name: "New Orleans Saints", short: "New Orleans", mascot: "Saints", abbrevs: []string{"NO", "NOR"}},
	{name: "New York Giants", short: "NY Giants", mascot: "Giants", abbrevs: []string{"NYG"}},
	{name: "New York Jets", short: "NY Jets", mascot: "Jets", abbrevs: []string{"NYJ"}},
	{name: "Philadelphia Eagles", short: "Philadelphia", mascot: "Eagles", abbrevs: []string{"PHI"}},
	{name: "Pittsburgh Steelers", short: "Pittsburgh", mascot: "Steelers", abbrevs: []string{"PIT"}},
	{name: "San Francisco 49ers", short: "San Francisco", mascot: "49ers", abbrevs: []string{"SF", "SFO"}, aliases: []string{"Niners"}},
	{name: "Seattle Seahawks", short: "Seattle", mascot: "Seahawks", abbrevs: []string{"SEA"}},
	{name: "Tampa Bay Buccaneers", short: "Tampa Bay", mascot: "Buccaneers", abbrevs: []string{"TB", "TAM"}, aliases: []string{"Bucs"}},
	{name: "Tennessee Titans", short: "Tennessee", mascot: "Titans", abbrevs: []string{"TEN"}},
	{name: "Washington Commanders", short: "Washington", mascot: "Commanders", abbrevs: []string{"WSH", "WAS"}, aliases: []string{"Washington Football Team"}},
}

var lookup = buildLookup()

func buildLookup() map[string]string {
	out := make(map[string]string, len(franchises)*6)
	for _, f := range franchises {
		keys := append([]string{f.name, f.short, f.mascot}, f.abbrevs...)
		keys = append(keys, f.aliases...)
		for _, k := range keys {
			out[lookupKey(k)] = f.name
		}
	}
	return out
}

func lookupKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// stripDriveByMarker removes the "(db)" suffix the schedule uses to flag
// the drive-by team of a game.
func stripDriveByMarker(name string) string {
	trimmed := strings.TrimSpace(name)
	lower := strings.ToLower(trimmed)
	if strings.HasSuffix(lower, "(db)") {
		return strings.TrimSpace(trimmed[:len(trimmed)-len("(db)")])
	}
	return trimmed
}

// Normalize returns the canonical franchise name for any known spelling.
// Unknown names come back trimmed and otherwise unchanged.
func Normalize(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	if canonical, ok := lookup[lookupKey(stripDriveByMarker(trimmed))]; ok {
		return canonical
	}
	return trimmed
}

// Known reports whether name resolves to a franchise.
func Known(name string) bool {
	_, ok := lookup[lookupKey(stripDriveByMarker(name))]
	return ok
}

// Same reports whether two non-empty names refer to the same team.
func Same(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	return na != "" && na == nb
}

// MatchupKey is order-insensitive: MatchupKey(a, b) == MatchupKey(b, a).
func MatchupKey(a, b string) string {
	pair := []string{Normalize(a), Normalize(b)}
	sort.Strings(pair)
	return pair[0] + " @ " + pair[1]
}

// All lists the canonical franchise names in alphabetical order.
func All() []string {
	out := make([]string, 0, len(franchises))
	for _, f := range franchises {
		out = append(out, f.name)
	}
	sort.Strings(out)
	return out
}
