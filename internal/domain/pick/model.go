package pick

import "sort"

// WeeklyPick is one user's submission for a week. Picks maps game id to the
// chosen winner; PointSpreads maps game id to free text such as
// "Minnesota Covers +3.5".
type WeeklyPick struct {
	UserID       string
	Week         int
	Picks        map[string]string
	PointSpreads map[string]string
	SurvivorPick string
}

// GameIDs returns every game id referenced by the row, sorted.
func (p WeeklyPick) GameIDs() []string {
	seen := make(map[string]struct{}, len(p.Picks)+len(p.PointSpreads))
	for id := range p.Picks {
		seen[id] = struct{}{}
	}
	for id := range p.PointSpreads {
		seen[id] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
