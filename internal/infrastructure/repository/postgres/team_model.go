package postgres

import "time"

type teamTableModel struct {
	ID             int64      `db:"id"`
	Name           string     `db:"name"`
	Confederation  string     `db:"confederation"`
	FIFARank       int        `db:"fifa_rank"`
	WorldCupTitles int        `db:"world_cup_titles"`
	RecentForm     string     `db:"recent_form"`
	FlagCode       string     `db:"flag_code"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}
