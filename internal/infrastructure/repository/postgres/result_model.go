package postgres

import (
	"database/sql"
	"time"
)

type gameResultInsertModel struct {
	Week          int     `db:"week"`
	GameID        string  `db:"game_id"`
	HomeTeam      string  `db:"home_team"`
	AwayTeam      string  `db:"away_team"`
	Winner        *string `db:"winner"`
	DBTeam        *string `db:"db_team"`
	CorrectSpread *string `db:"correct_spread"`
	HomeScore     int     `db:"home_score"`
	AwayScore     int     `db:"away_score"`
}

type weeklyResultTableModel struct {
	ID                int64          `db:"id"`
	UserID            string         `db:"user_id"`
	Week              int            `db:"week"`
	ThisWeekScore     int            `db:"this_week_score"`
	PrevWeekScore     int            `db:"prev_week_score"`
	OverallScore      int            `db:"overall_score"`
	TotalDriveBys     int            `db:"total_drive_bys"`
	TotalPointSpreads int            `db:"total_point_spreads"`
	SurvivorResult    sql.NullString `db:"survivor_result"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

type weeklyResultInsertModel struct {
	UserID            string  `db:"user_id"`
	Week              int     `db:"week"`
	ThisWeekScore     int     `db:"this_week_score"`
	PrevWeekScore     int     `db:"prev_week_score"`
	OverallScore      int     `db:"overall_score"`
	TotalDriveBys     int     `db:"total_drive_bys"`
	TotalPointSpreads int     `db:"total_point_spreads"`
	SurvivorResult    *string `db:"survivor_result"`
}

type survivorPickTableModel struct {
	ID        int64     `db:"id"`
	UserID    string    `db:"user_id"`
	Week      int       `db:"week"`
	Team      string    `db:"team"`
	Result    string    `db:"result"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type survivorPickInsertModel struct {
	UserID string `db:"user_id"`
	Week   int    `db:"week"`
	Team   string `db:"team"`
	Result string `db:"result"`
}
