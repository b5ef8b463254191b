package schedule

import (
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/spread"
	"github.com/riskibarqy/pickem-league/internal/domain/team"
)

// Spread is the posted line for a game. Line is attached to Team; an empty
// Team means the line belongs to the away side.
type Spread struct {
	Team string
	Line float64
}

// Game is one locally stored matchup of a week.
type Game struct {
	ID          string
	Week        int
	AwayTeam    string
	HomeTeam    string
	DriveByTeam string
	PointSpread *Spread
	KickoffAt   time.Time
}

func (g Game) MatchupKey() string {
	return team.MatchupKey(g.AwayTeam, g.HomeTeam)
}

func (g Game) HasTeam(name string) bool {
	return team.Same(name, g.HomeTeam) || team.Same(name, g.AwayTeam)
}

func (g Game) HasDriveBy() bool {
	return g.DriveByTeam != ""
}

// SpreadPick resolves the posted line into a pick on its team.
func (g Game) SpreadPick() (spread.Pick, bool) {
	if g.PointSpread == nil {
		return spread.Pick{}, false
	}
	side := g.PointSpread.Team
	if side == "" {
		side = g.AwayTeam
	}
	return spread.Pick{Team: team.Normalize(side), Line: g.PointSpread.Line}, true
}

// IsOpenForPicks is true strictly before kickoff. Games without a kickoff
// time are treated as open.
func (g Game) IsOpenForPicks(now time.Time) bool {
	if g.KickoffAt.IsZero() {
		return true
	}
	return now.Before(g.KickoffAt)
}
