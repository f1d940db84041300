package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// The reserve is a singleton row with a fixed key.
const reserveID = 1

// EnsureReserve inserts the reserve row with the given starting total if
// it does not exist yet. Idempotent.
func (s *Store) EnsureReserve(ctx context.Context, db DB, initial int64) error {
	_, err := db.Exec(ctx, `
		INSERT INTO bank_reserve (id, total) VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING`, reserveID, initial)
	return err
}

func (s *Store) GetReserve(ctx context.Context, db DB) (Reserve, error) {
	row := db.QueryRow(ctx, `SELECT total FROM bank_reserve WHERE id = $1`, reserveID)
	return scanReserve(row)
}

// GetReserveForUpdate locks the reserve row for the rest of the enclosing
// transaction. Callers holding an account lock acquire this second.
func (s *Store) GetReserveForUpdate(ctx context.Context, tx pgx.Tx) (Reserve, error) {
	row := tx.QueryRow(ctx, `SELECT total FROM bank_reserve WHERE id = $1 FOR UPDATE`, reserveID)
	return scanReserve(row)
}

func (s *Store) UpdateReserveTotal(ctx context.Context, db DB, total int64) error {
	_, err := db.Exec(ctx, `UPDATE bank_reserve SET total = $2 WHERE id = $1`, reserveID, total)
	return err
}

func scanReserve(row pgx.Row) (Reserve, error) {
	var r Reserve
	err := row.Scan(&r.Total)
	if errors.Is(err, pgx.ErrNoRows) {
		return Reserve{}, ErrNotFound
	}
	if err != nil {
		return Reserve{}, err
	}
	return r, nil
}
