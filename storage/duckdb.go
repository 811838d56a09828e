package storage

import (
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/marcboeker/go-duckdb/v2"
)

//go:embed schema/games.sql
var gamesSchema string

type DuckDB = *sqlx.DB

// InitDuckDB opens an in-memory database with the games schema
// applied. Nothing is written to disk; the data lives as long as the
// returned handle.
func InitDuckDB() (DuckDB, error) {
	db, err := sqlx.Connect("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("connect duckdb: %w", err)
	}

	if _, err := db.Exec(gamesSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return db, nil
}
