package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-league/internal/domain/result"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) UpsertGameResult(ctx context.Context, gr result.GameResult) error {
	model := gameResultInsertModel{
		Week:          gr.Week,
		GameID:        gr.GameID,
		HomeTeam:      gr.HomeTeam,
		AwayTeam:      gr.AwayTeam,
		Winner:        nullableString(gr.Winner),
		DBTeam:        nullableString(gr.DriveByTeam),
		CorrectSpread: nullableString(gr.CorrectSpread),
		HomeScore:     gr.HomeScore,
		AwayScore:     gr.AwayScore,
	}
	if err := r.upsert(ctx, "game_results", model, []string{"week", "game_id"}); err != nil {
		return fmt.Errorf("upsert game result week=%d game=%s: %w", gr.Week, gr.GameID, err)
	}
	return nil
}

func (r *ResultRepository) PreviousWeeklyResult(ctx context.Context, userID string, week int) (result.WeeklyResult, bool, error) {
	query, args, err := qb.Select("*").From("weekly_results").
		Where(
			qb.Eq("user_id", userID),
			qb.Lt("week", week),
		).
		OrderBy("week DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return result.WeeklyResult{}, false, fmt.Errorf("build previous weekly result query: %w", err)
	}

	var row weeklyResultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return result.WeeklyResult{}, false, nil
		}
		return result.WeeklyResult{}, false, fmt.Errorf("get previous weekly result: %w", err)
	}
	return weeklyResultFromRow(row), true, nil
}

func (r *ResultRepository) UpsertWeeklyResult(ctx context.Context, wr result.WeeklyResult) error {
	model := weeklyResultInsertModel{
		UserID:            wr.UserID,
		Week:              wr.Week,
		ThisWeekScore:     wr.ThisWeekScore,
		PrevWeekScore:     wr.PrevWeekScore,
		OverallScore:      wr.OverallScore,
		TotalDriveBys:     wr.TotalDriveBys,
		TotalPointSpreads: wr.TotalPointSpreads,
		SurvivorResult:    nullableString(string(wr.SurvivorResult)),
	}
	if err := r.upsert(ctx, "weekly_results", model, []string{"user_id", "week"}); err != nil {
		return fmt.Errorf("upsert weekly result user=%s week=%d: %w", wr.UserID, wr.Week, err)
	}
	return nil
}

func (r *ResultRepository) ListWeeklyResultsByWeek(ctx context.Context, week int) ([]result.WeeklyResult, error) {
	query, args, err := qb.Select("*").From("weekly_results").
		Where(qb.Eq("week", week)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list weekly results query: %w", err)
	}

	var rows []weeklyResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list weekly results: %w", err)
	}

	out := make([]result.WeeklyResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, weeklyResultFromRow(row))
	}
	return out, nil
}

func (r *ResultRepository) LatestWeek(ctx context.Context) (int, bool, error) {
	query, args, err := qb.Select("MAX(week)").From("weekly_results").ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build latest week query: %w", err)
	}

	var week sql.NullInt64
	if err := r.db.GetContext(ctx, &week, query, args...); err != nil {
		return 0, false, fmt.Errorf("get latest week: %w", err)
	}
	if !week.Valid {
		return 0, false, nil
	}
	return int(week.Int64), true, nil
}

func (r *ResultRepository) upsert(ctx context.Context, table string, model any, conflict []string) error {
	return upsertModel(ctx, r.db, table, model, conflict)
}

func upsertModel(ctx context.Context, db *sqlx.DB, table string, model any, conflict []string) error {
	insert, err := qb.InsertModel(table, model)
	if err != nil {
		return fmt.Errorf("build upsert %s query: %w", table, err)
	}
	query, args, err := insert.
		OnConflictUpdate(conflict, qb.Without(qb.ColumnsOf(model), conflict...), "updated_at = NOW()").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert %s query: %w", table, err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return nil
}

func weeklyResultFromRow(row weeklyResultTableModel) result.WeeklyResult {
	return result.WeeklyResult{
		UserID:            row.UserID,
		Week:              row.Week,
		ThisWeekScore:     row.ThisWeekScore,
		PrevWeekScore:     row.PrevWeekScore,
		OverallScore:      row.OverallScore,
		TotalDriveBys:     row.TotalDriveBys,
		TotalPointSpreads: row.TotalPointSpreads,
		SurvivorResult:    result.SurvivorOutcome(nullStringValue(row.SurvivorResult)),
	}
}
