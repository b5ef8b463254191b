package result

import "github.com/riskibarqy/pickem-league/internal/domain/team"

type SurvivorOutcome string

const (
	SurvivorPending SurvivorOutcome = "pending"
	SurvivorWin     SurvivorOutcome = "win"
	SurvivorLoss    SurvivorOutcome = "loss"
)

// Terminal is true for win and loss.
func (o SurvivorOutcome) Terminal() bool {
	return o == SurvivorWin || o == SurvivorLoss
}

// ExternalResult is one provider event reduced to what scoring needs.
type ExternalResult struct {
	EventID    string
	HomeTeam   string
	AwayTeam   string
	HomeScore  int
	AwayScore  int
	Completed  bool
	WinnerTeam string
}

func (r ExternalResult) MatchupKey() string {
	return team.MatchupKey(r.AwayTeam, r.HomeTeam)
}

func (r ExternalResult) HasTeam(name string) bool {
	return team.Same(name, r.HomeTeam) || team.Same(name, r.AwayTeam)
}

// GameResult is the persisted per-game outcome keyed by (Week, GameID).
type GameResult struct {
	Week          int
	GameID        string
	HomeTeam      string
	AwayTeam      string
	Winner        string
	DriveByTeam   string
	CorrectSpread string
	HomeScore     int
	AwayScore     int
}

// WeeklyDelta is what a user earned in one week, before accumulation.
type WeeklyDelta struct {
	UserID       string
	Week         int
	StraightWins int
	DriveByWins  int
	SpreadWins   int
	Survivor     SurvivorOutcome
}

// WeeklyResult holds running totals through Week. SurvivorResult is empty
// unless the survivor pick resolved to win or loss this week.
type WeeklyResult struct {
	UserID            string
	Week              int
	ThisWeekScore     int
	PrevWeekScore     int
	OverallScore      int
	TotalDriveBys     int
	TotalPointSpreads int
	SurvivorResult    SurvivorOutcome
}

type SurvivorPick struct {
	UserID string
	Week   int
	Team   string
	Result SurvivorOutcome
}
