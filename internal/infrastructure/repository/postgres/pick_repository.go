package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type PickRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewPickRepository(db *sqlx.DB, logger *logging.Logger) *PickRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &PickRepository{db: db, logger: logger}
}

// ListByWeek sets aside rows whose jsonb columns cannot be decoded so that
// one bad submission does not block the whole week.
func (r *PickRepository) ListByWeek(ctx context.Context, week int) ([]pick.WeeklyPick, []pick.MalformedRow, error) {
	query, args, err := qb.Select("*").From("weekly_picks").
		Where(qb.Eq("week", week)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, nil, fmt.Errorf("build select weekly picks query: %w", err)
	}

	var rows []weeklyPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, nil, fmt.Errorf("select weekly picks: %w", err)
	}

	out := make([]pick.WeeklyPick, 0, len(rows))
	var malformed []pick.MalformedRow
	for _, row := range rows {
		item, err := pickFromRow(row)
		if err != nil {
			r.logger.WarnContext(ctx, "skip malformed weekly pick row",
				"week", week,
				"user_id", row.UserID,
				"error", err,
			)
			malformed = append(malformed, pick.MalformedRow{UserID: row.UserID, Week: row.Week, Err: err})
			continue
		}
		out = append(out, item)
	}
	return out, malformed, nil
}

func pickFromRow(row weeklyPickTableModel) (pick.WeeklyPick, error) {
	picks, err := decodeStringMap(row.Picks)
	if err != nil {
		return pick.WeeklyPick{}, fmt.Errorf("decode picks: %w", err)
	}
	spreads, err := decodeStringMap(row.PointSpreads)
	if err != nil {
		return pick.WeeklyPick{}, fmt.Errorf("decode point_spreads: %w", err)
	}
	return pick.WeeklyPick{
		UserID:       row.UserID,
		Week:         row.Week,
		Picks:        picks,
		PointSpreads: spreads,
		SurvivorPick: nullStringValue(row.SurvivorPick),
	}, nil
}
