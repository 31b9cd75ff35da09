package services

import (
	"database/sql"

	"github.com/tradewisearg/servitec-web/internal/repositories"
)

// serviceTx is the transaction surface the services need: the executor
// handed to repositories plus commit/rollback.
type serviceTx interface {
	repositories.SQLExecutor
	Commit() error
	Rollback() error
}

// beginSQLTx adapts *sql.DB to the serviceTx seam; *sql.Tx satisfies it
// directly.
func beginSQLTx(db *sql.DB) func() (serviceTx, error) {
	return func() (serviceTx, error) {
		tx, err := db.Begin()
		if err != nil {
			return nil, err
		}
		return tx, nil
	}
}
