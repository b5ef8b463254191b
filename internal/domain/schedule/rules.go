package schedule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/domain/team"
)

var (
	ErrInvalidWeek      = errors.New("week must be >= 1")
	ErrMissingGameID    = errors.New("game id is required")
	ErrDuplicateGameID  = errors.New("duplicate game id in week")
	ErrSameTeams        = errors.New("game must have two distinct teams")
	ErrDriveByNotInGame = errors.New("drive-by team is not playing in the game")
)

// ValidateWeek checks the invariants of one week's matchups.
func ValidateWeek(week int, games []Game) error {
	if week < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidWeek, week)
	}

	seen := make(map[string]struct{}, len(games))
	for _, g := range games {
		id := strings.TrimSpace(g.ID)
		if id == "" {
			return ErrMissingGameID
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateGameID, id)
		}
		seen[id] = struct{}{}

		home, away := team.Normalize(g.HomeTeam), team.Normalize(g.AwayTeam)
		if home == "" || away == "" || home == away {
			return fmt.Errorf("%w: game %s", ErrSameTeams, id)
		}
		if g.HasDriveBy() && !g.HasTeam(g.DriveByTeam) {
			return fmt.Errorf("%w: game %s drive-by %q", ErrDriveByNotInGame, id, g.DriveByTeam)
		}
	}
	return nil
}
