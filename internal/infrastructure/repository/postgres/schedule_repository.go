package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-league/internal/domain/schedule"
	"github.com/riskibarqy/pickem-league/internal/domain/team"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type ScheduleRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewScheduleRepository(db *sqlx.DB, logger *logging.Logger) *ScheduleRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScheduleRepository{db: db, logger: logger}
}

func (r *ScheduleRepository) ListByWeek(ctx context.Context, week int) ([]schedule.Game, error) {
	query, args, err := qb.Select("*").From("weekly_games").
		Where(qb.Eq("week", week)).
		OrderBy("game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select weekly games query: %w", err)
	}

	var rows []weeklyGameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select weekly games: %w", err)
	}

	out := make([]schedule.Game, 0, len(rows))
	for _, row := range rows {
		game, ok := gameFromRow(row)
		if !ok {
			r.logger.WarnContext(ctx, "skip weekly game without two teams",
				"week", week,
				"game_id", row.GameID,
				"teams", []string(row.Teams),
			)
			continue
		}
		out = append(out, game)
	}
	return out, nil
}

func gameFromRow(row weeklyGameTableModel) (schedule.Game, bool) {
	if len(row.Teams) != 2 {
		return schedule.Game{}, false
	}

	game := schedule.Game{
		ID:          row.GameID,
		Week:        row.Week,
		AwayTeam:    team.Normalize(row.Teams[0]),
		HomeTeam:    team.Normalize(row.Teams[1]),
		DriveByTeam: team.Normalize(nullStringValue(row.DBTeam)),
	}
	if row.SpreadLine.Valid {
		game.PointSpread = &schedule.Spread{
			Team: team.Normalize(nullStringValue(row.SpreadTeam)),
			Line: row.SpreadLine.Float64,
		}
	}
	if row.KickoffAt.Valid {
		game.KickoffAt = row.KickoffAt.Time.UTC()
	}
	return game, true
}
