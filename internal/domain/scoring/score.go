package scoring

import (
	"sort"

	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/result"
	"github.com/riskibarqy/pickem-league/internal/domain/spread"
	"github.com/riskibarqy/pickem-league/internal/domain/team"
)

type SkipReason string

const (
	SkipUnknownGame       SkipReason = "unknown_game"
	SkipNoResult          SkipReason = "no_result"
	SkipIncomplete        SkipReason = "incomplete"
	SkipUnparseableSpread SkipReason = "unparseable_spread"
	SkipSpreadWithoutPick SkipReason = "spread_without_pick"
)

// Skip records a pick that could not be scored.
type Skip struct {
	GameID string
	Kind   string
	Reason SkipReason
	Detail string
}

const (
	KindStraight = "straight"
	KindSpread   = "spread"
)

type UserScore struct {
	Delta        result.WeeklyDelta
	SurvivorTeam string
	Skips        []Skip
}

// ScoreUser counts straight wins, drive-by wins and spread covers for one
// row. The survivor pick is only resolved when survivorEligible is true.
func (b *Board) ScoreUser(p pick.WeeklyPick, survivorEligible bool) UserScore {
	out := UserScore{Delta: result.WeeklyDelta{UserID: p.UserID, Week: b.week}}

	for _, id := range sortedKeys(p.Picks) {
		spreadText, hasSpread := p.PointSpreads[id]
		r, skip, ok := b.completedResult(id, KindStraight)
		if !ok {
			out.Skips = append(out.Skips, skip)
			if hasSpread {
				skip.Kind = KindSpread
				out.Skips = append(out.Skips, skip)
			}
			continue
		}

		chosen := p.Picks[id]
		if team.Same(chosen, r.WinnerTeam) {
			out.Delta.StraightWins++
			if g, _ := b.Game(id); g.HasDriveBy() && team.Same(chosen, g.DriveByTeam) {
				out.Delta.DriveByWins++
			}
		}

		if !hasSpread {
			continue
		}
		parsed := spread.Parse(spreadText)
		if !parsed.OK {
			out.Skips = append(out.Skips, Skip{GameID: id, Kind: KindSpread, Reason: SkipUnparseableSpread, Detail: parsed.Reason})
			continue
		}
		if spread.Covered(parsed.Pick, r.HomeTeam, r.AwayTeam, r.HomeScore, r.AwayScore) {
			out.Delta.SpreadWins++
		}
	}

	// A spread pick only counts alongside a straight pick for the same game.
	for _, id := range sortedKeys(p.PointSpreads) {
		if _, picked := p.Picks[id]; !picked {
			out.Skips = append(out.Skips, Skip{GameID: id, Kind: KindSpread, Reason: SkipSpreadWithoutPick})
		}
	}

	if survivorEligible && p.SurvivorPick != "" {
		out.SurvivorTeam = team.Normalize(p.SurvivorPick)
		if outcome, ok := b.SurvivorOutcome(p.SurvivorPick); ok {
			out.Delta.Survivor = outcome
		} else {
			out.Delta.Survivor = result.SurvivorPending
		}
	}
	return out
}

func (b *Board) completedResult(gameID, kind string) (result.ExternalResult, Skip, bool) {
	g, ok := b.Game(gameID)
	if !ok {
		return result.ExternalResult{}, Skip{GameID: gameID, Kind: kind, Reason: SkipUnknownGame}, false
	}
	r, ok := b.ResultFor(g)
	if !ok {
		return result.ExternalResult{}, Skip{GameID: gameID, Kind: kind, Reason: SkipNoResult}, false
	}
	if !r.Completed {
		return result.ExternalResult{}, Skip{GameID: gameID, Kind: kind, Reason: SkipIncomplete}, false
	}
	return r, Skip{}, true
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
