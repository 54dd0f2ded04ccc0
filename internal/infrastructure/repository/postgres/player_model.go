package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID          int64          `db:"id"`
	TeamName    string         `db:"team_name"`
	SortOrder   int            `db:"sort_order"`
	Number      int            `db:"number"`
	Name        string         `db:"name"`
	Position    string         `db:"position"`
	Nation      string         `db:"nation"`
	Club        string         `db:"club"`
	Overall     sql.NullInt64  `db:"overall"`
	Potential   sql.NullInt64  `db:"potential"`
	Age         sql.NullInt64  `db:"age"`
	MarketValue sql.NullString `db:"market_value"`
	Caps        sql.NullInt64  `db:"caps"`
	Goals       sql.NullInt64  `db:"goals"`
	Assists     sql.NullInt64  `db:"assists"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   *time.Time     `db:"deleted_at"`
}
