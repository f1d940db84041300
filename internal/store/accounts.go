package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

const accountColumns = `id, name, balance, last_bonus_at, last_loan_at, created_at`

func scanAccount(row pgx.Row) (Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.Name, &a.Balance, &a.LastBonusAt, &a.LastLoanAt, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, err
	}
	return a, nil
}

// GetOrCreateAccount returns the account for id, inserting it with the
// given starting balance on first contact. The conditional insert closes
// the duplicate-creation race: of any number of concurrent callers for a
// new id, exactly one observes created == true. On an existing account
// the stored name is refreshed when the caller supplies a different one.
func (s *Store) GetOrCreateAccount(ctx context.Context, db DB, id int64, name string, initial int64, now time.Time) (Account, bool, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO accounts (id, name, balance, last_bonus_at, last_loan_at, created_at)
		VALUES ($1, $2, $3, $4, $4, $4)
		ON CONFLICT (id) DO NOTHING
		RETURNING `+accountColumns,
		id, name, initial, now)
	a, err := scanAccount(row)
	if err == nil {
		return a, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Account{}, false, err
	}
	if name != "" {
		if _, err := db.Exec(ctx, `UPDATE accounts SET name = $2 WHERE id = $1 AND name <> $2`, id, name); err != nil {
			return Account{}, false, err
		}
	}
	a, err = s.GetAccount(ctx, db, id)
	return a, false, err
}

func (s *Store) GetAccount(ctx context.Context, db DB, id int64) (Account, error) {
	row := db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

// GetAccountForUpdate locks the account row for the rest of the enclosing
// transaction. Must be called before GetReserveForUpdate, never after.
func (s *Store) GetAccountForUpdate(ctx context.Context, tx pgx.Tx, id int64) (Account, error) {
	row := tx.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id)
	return scanAccount(row)
}

func (s *Store) UpdateAccountBalance(ctx context.Context, db DB, id, balance int64) error {
	_, err := db.Exec(ctx, `UPDATE accounts SET balance = $2 WHERE id = $1`, id, balance)
	return err
}

// UpdateAccountBonus writes the post-grant balance and bonus timestamp in
// one statement so no reader can see one without the other.
func (s *Store) UpdateAccountBonus(ctx context.Context, db DB, id, balance int64, lastBonusAt time.Time) error {
	_, err := db.Exec(ctx, `UPDATE accounts SET balance = $2, last_bonus_at = $3 WHERE id = $1`, id, balance, lastBonusAt)
	return err
}

func (s *Store) UpdateAccountLoan(ctx context.Context, db DB, id, balance int64, lastLoanAt time.Time) error {
	_, err := db.Exec(ctx, `UPDATE accounts SET balance = $2, last_loan_at = $3 WHERE id = $1`, id, balance, lastLoanAt)
	return err
}

// TopAccountsByBalance returns up to n accounts ordered by balance
// descending, ties broken by insertion order.
func (s *Store) TopAccountsByBalance(ctx context.Context, db DB, n int) ([]Account, error) {
	if n <= 0 {
		n = 10
	}
	rows, err := db.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		ORDER BY balance DESC, created_at ASC, id ASC
		LIMIT $1`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Account{}
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Balance, &a.LastBonusAt, &a.LastLoanAt, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
