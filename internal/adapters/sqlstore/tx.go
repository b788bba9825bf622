package sqlstore

import (
	"database/sql"

	"sulu/internal/ports"
)

// storeTx implements ports.Tx
type storeTx struct {
	queries
	tx *sql.Tx
}

// Ensure storeTx implements Tx
var _ ports.Tx = (*storeTx)(nil)

// Commit commits the transaction
func (t *storeTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *storeTx) Rollback() error {
	return t.tx.Rollback()
}
