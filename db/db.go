package db

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// Connect opens a Postgres handle and verifies the connection. The handle is
// passed explicitly to the store rather than held as package state.
func Connect(url string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	return conn, nil
}
