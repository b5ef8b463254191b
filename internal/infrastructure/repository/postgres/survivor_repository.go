package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-league/internal/domain/result"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type SurvivorRepository struct {
	db *sqlx.DB
}

func NewSurvivorRepository(db *sqlx.DB) *SurvivorRepository {
	return &SurvivorRepository{db: db}
}

func (r *SurvivorRepository) UpsertSurvivorPick(ctx context.Context, sp result.SurvivorPick) error {
	model := survivorPickInsertModel{
		UserID: sp.UserID,
		Week:   sp.Week,
		Team:   sp.Team,
		Result: string(sp.Result),
	}
	if err := upsertModel(ctx, r.db, "survivor_picks", model, []string{"user_id", "week"}); err != nil {
		return fmt.Errorf("upsert survivor pick user=%s week=%d: %w", sp.UserID, sp.Week, err)
	}
	return nil
}

func (r *SurvivorRepository) EliminationWeek(ctx context.Context, userID string, beforeWeek int) (int, bool, error) {
	query, args, err := qb.Select("MIN(week)").From("survivor_picks").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("result", string(result.SurvivorLoss)),
			qb.Lt("week", beforeWeek),
		).
		ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build elimination week query: %w", err)
	}

	var week sql.NullInt64
	if err := r.db.GetContext(ctx, &week, query, args...); err != nil {
		return 0, false, fmt.Errorf("get elimination week: %w", err)
	}
	if !week.Valid {
		return 0, false, nil
	}
	return int(week.Int64), true, nil
}

func (r *SurvivorRepository) ListSurvivorPicks(ctx context.Context) ([]result.SurvivorPick, error) {
	query, args, err := qb.Select("*").From("survivor_picks").
		OrderBy("user_id", "week").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list survivor picks query: %w", err)
	}

	var rows []survivorPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list survivor picks: %w", err)
	}

	out := make([]result.SurvivorPick, 0, len(rows))
	for _, row := range rows {
		out = append(out, result.SurvivorPick{
			UserID: row.UserID,
			Week:   row.Week,
			Team:   row.Team,
			Result: result.SurvivorOutcome(row.Result),
		})
	}
	return out, nil
}
