// Package scoring joins a week's local games to provider results and scores
// user picks against them. Everything here is pure.
package scoring

import (
	"sort"

	"github.com/riskibarqy/pickem-league/internal/domain/result"
	"github.com/riskibarqy/pickem-league/internal/domain/schedule"
	"github.com/riskibarqy/pickem-league/internal/domain/spread"
	"github.com/riskibarqy/pickem-league/internal/domain/team"
)

// Board is the joined view of one week.
type Board struct {
	week      int
	games     []schedule.Game
	gamesByID map[string]schedule.Game
	byMatchup map[string]result.ExternalResult
	results   []result.ExternalResult
	unmatched []result.ExternalResult
}

// NewBoard joins games and results on the normalized matchup key. When a
// key repeats in the provider feed the first event wins.
func NewBoard(week int, games []schedule.Game, results []result.ExternalResult) *Board {
	b := &Board{
		week:      week,
		games:     append([]schedule.Game(nil), games...),
		gamesByID: make(map[string]schedule.Game, len(games)),
		byMatchup: make(map[string]result.ExternalResult, len(results)),
		results:   append([]result.ExternalResult(nil), results...),
	}
	sort.SliceStable(b.games, func(i, j int) bool { return b.games[i].ID < b.games[j].ID })

	localKeys := make(map[string]struct{}, len(games))
	for _, g := range b.games {
		b.gamesByID[g.ID] = g
		localKeys[g.MatchupKey()] = struct{}{}
	}
	for _, r := range b.results {
		key := r.MatchupKey()
		if _, ok := localKeys[key]; !ok {
			b.unmatched = append(b.unmatched, r)
			continue
		}
		if _, dup := b.byMatchup[key]; !dup {
			b.byMatchup[key] = r
		}
	}
	return b
}

func (b *Board) Week() int { return b.week }

func (b *Board) Games() []schedule.Game { return b.games }

func (b *Board) Game(id string) (schedule.Game, bool) {
	g, ok := b.gamesByID[id]
	return g, ok
}

// ResultFor returns the provider event matching the game's two teams.
func (b *Board) ResultFor(g schedule.Game) (result.ExternalResult, bool) {
	r, ok := b.byMatchup[g.MatchupKey()]
	return r, ok
}

// Unmatched lists provider events whose teams match no local game.
func (b *Board) Unmatched() []result.ExternalResult { return b.unmatched }

// Matched counts local games that have a provider event.
func (b *Board) Matched() int { return len(b.byMatchup) }

// GameResults builds the persisted outcome of every joined game, in game id
// order. Winner and CorrectSpread stay empty until the game completes.
func (b *Board) GameResults() []result.GameResult {
	out := make([]result.GameResult, 0, len(b.byMatchup))
	for _, g := range b.games {
		r, ok := b.ResultFor(g)
		if !ok {
			continue
		}
		gr := result.GameResult{
			Week:        b.week,
			GameID:      g.ID,
			HomeTeam:    team.Normalize(r.HomeTeam),
			AwayTeam:    team.Normalize(r.AwayTeam),
			DriveByTeam: team.Normalize(g.DriveByTeam),
			HomeScore:   r.HomeScore,
			AwayScore:   r.AwayScore,
		}
		if r.Completed {
			gr.Winner = team.Normalize(r.WinnerTeam)
			if line, ok := g.SpreadPick(); ok {
				gr.CorrectSpread = spread.CoveringTeam(line, r.HomeTeam, r.AwayTeam, r.HomeScore, r.AwayScore)
			}
		}
		out = append(out, gr)
	}
	return out
}

// SurvivorOutcome resolves the survivor team against the first provider
// event of the week that includes it, matched or not.
func (b *Board) SurvivorOutcome(survivorTeam string) (result.SurvivorOutcome, bool) {
	if team.Normalize(survivorTeam) == "" {
		return "", false
	}
	for _, r := range b.results {
		if !r.HasTeam(survivorTeam) {
			continue
		}
		if !r.Completed {
			return result.SurvivorPending, true
		}
		if team.Same(r.WinnerTeam, survivorTeam) {
			return result.SurvivorWin, true
		}
		return result.SurvivorLoss, true
	}
	return result.SurvivorPending, false
}
