package postgres

import (
	"database/sql"
	"time"
)

type weeklyPickTableModel struct {
	ID           int64          `db:"id"`
	UserID       string         `db:"user_id"`
	Week         int            `db:"week"`
	Picks        []byte         `db:"picks"`
	PointSpreads []byte         `db:"point_spreads"`
	SurvivorPick sql.NullString `db:"survivor_pick"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}
