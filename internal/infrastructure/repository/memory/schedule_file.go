package memory

import (
	"fmt"
	"os"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pickem-league/internal/domain/schedule"
)

type scheduleFile struct {
	Weeks []scheduleFileWeek `json:"weeks"`
}

type scheduleFileWeek struct {
	WeekNumber int                `json:"weekNumber"`
	Games      []scheduleFileGame `json:"games"`
}

type scheduleFileGame struct {
	ID          string              `json:"id"`
	Teams       []string            `json:"teams"`
	DBTeam      string              `json:"dbTeam"`
	PointSpread *scheduleFileSpread `json:"pointSpread"`
	Kickoff     string              `json:"kickoff"`
}

type scheduleFileSpread struct {
	Team string  `json:"team"`
	Line float64 `json:"line"`
}

// LoadScheduleFile reads the committed season schedule. teams is
// [away, home]; kickoff is RFC 3339 and optional.
func LoadScheduleFile(path string) ([]schedule.Game, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule file: %w", err)
	}
	return ParseSchedule(raw)
}

func ParseSchedule(raw []byte) ([]schedule.Game, error) {
	var doc scheduleFile
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}

	var games []schedule.Game
	for _, w := range doc.Weeks {
		for _, g := range w.Games {
			if len(g.Teams) != 2 {
				return nil, fmt.Errorf("week %d game %s: expected 2 teams, got %d", w.WeekNumber, g.ID, len(g.Teams))
			}
			game := schedule.Game{
				ID:          strings.TrimSpace(g.ID),
				Week:        w.WeekNumber,
				AwayTeam:    strings.TrimSpace(g.Teams[0]),
				HomeTeam:    strings.TrimSpace(g.Teams[1]),
				DriveByTeam: strings.TrimSpace(g.DBTeam),
			}
			if g.PointSpread != nil {
				game.PointSpread = &schedule.Spread{Team: strings.TrimSpace(g.PointSpread.Team), Line: g.PointSpread.Line}
			}
			if k := strings.TrimSpace(g.Kickoff); k != "" {
				at, err := time.Parse(time.RFC3339, k)
				if err != nil {
					return nil, fmt.Errorf("week %d game %s: kickoff: %w", w.WeekNumber, g.ID, err)
				}
				game.KickoffAt = at.UTC()
			}
			games = append(games, game)
		}
	}
	return games, nil
}
