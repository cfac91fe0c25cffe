package repo

import "github.com/jackc/pgx/v5"

// ErrNoRows is returned when a lookup or guarded update matched nothing.
var ErrNoRows = pgx.ErrNoRows
