package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// weeklyGameTableModel stores teams as [away, home].
type weeklyGameTableModel struct {
	ID         int64           `db:"id"`
	GameID     string          `db:"game_id"`
	Week       int             `db:"week"`
	Teams      pq.StringArray  `db:"teams"`
	DBTeam     sql.NullString  `db:"db_team"`
	SpreadTeam sql.NullString  `db:"spread_team"`
	SpreadLine sql.NullFloat64 `db:"spread_line"`
	KickoffAt  sql.NullTime    `db:"kickoff_at"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}
