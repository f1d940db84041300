package store

import "time"

type Account struct {
	ID          int64
	Name        string
	Balance     int64
	LastBonusAt time.Time
	LastLoanAt  time.Time
	CreatedAt   time.Time
}

// Reserve is the single shared bank pool. Exactly one row exists.
type Reserve struct {
	Total int64
}
