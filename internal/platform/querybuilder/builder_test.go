package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("user_id", "week", "overall_score").
		From("weekly_results").
		Where(Eq("user_id", "u1"), Lt("week", 4)).
		OrderBy("week DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT user_id, week, overall_score FROM weekly_results WHERE user_id = $1 AND week < $2 ORDER BY week DESC LIMIT 1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "u1" || args[1] != 4 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_ExprBindsInOrder(t *testing.T) {
	query, args, err := Select("week").
		From("survivor_picks").
		Where(Eq("user_id", "u1"), Expr("result = ? AND week <= ?", "loss", 3)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT week FROM survivor_picks WHERE user_id = $1 AND result = $2 AND week <= $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[1] != "loss" || args[2] != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_RequiresTableAndColumns(t *testing.T) {
	if _, _, err := Select().From("t").ToSQL(); err == nil {
		t.Fatalf("expected error without columns")
	}
	if _, _, err := Select("a").ToSQL(); err == nil {
		t.Fatalf("expected error without table")
	}
}

type sampleRow struct {
	Week      int    `db:"week"`
	GameID    string `db:"game_id"`
	Winner    string `db:"winner,omitempty"`
	Ignored   string `db:"-"`
	unexposed string `db:"secret"`
}

func TestInsertModel_OnConflictUpdate(t *testing.T) {
	row := sampleRow{Week: 2, GameID: "g1", Winner: "Dallas Cowboys", unexposed: "x"}
	insert, err := InsertModel("game_results", row)
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}

	cols := ColumnsOf(row)
	query, args, err := insert.
		OnConflictUpdate([]string{"week", "game_id"}, Without(cols, "week", "game_id"), "updated_at = NOW()").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO game_results (week, game_id, winner) VALUES ($1, $2, $3) " +
		"ON CONFLICT (week, game_id) DO UPDATE SET winner = EXCLUDED.winner, updated_at = NOW()"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != 2 || args[2] != "Dallas Cowboys" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_RejectsNonStruct(t *testing.T) {
	if _, err := InsertModel("t", 42); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	var nilRow *sampleRow
	if _, err := InsertModel("t", nilRow); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
