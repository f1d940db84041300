package ledger

import "time"

type RegisterResult struct {
	Created bool  `json:"created"`
	Balance int64 `json:"balance"`
}

type ProfileResult struct {
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}

type BankResult struct {
	Total int64 `json:"total"`
}

// GrantResult reports a bonus claim. When not granted, Remaining holds
// the exact wait and RemainingHours the display value floored to hours.
type GrantResult struct {
	Granted        bool          `json:"granted"`
	Amount         int64         `json:"amount,omitempty"`
	Balance        int64         `json:"balance"`
	Remaining      time.Duration `json:"-"`
	RemainingHours int           `json:"remaining_hours,omitempty"`
}

// LoanResult additionally distinguishes a short reserve, which does not
// advance the cooldown.
type LoanResult struct {
	Granted        bool          `json:"granted"`
	Amount         int64         `json:"amount,omitempty"`
	Balance        int64         `json:"balance"`
	Remaining      time.Duration `json:"-"`
	RemainingHours int           `json:"remaining_hours,omitempty"`
	ReserveShort   bool          `json:"reserve_short,omitempty"`
}

type WagerResult struct {
	OK      bool     `json:"ok"`
	WagerID string   `json:"wager_id,omitempty"`
	Kind    string   `json:"kind"`
	Stake   int64    `json:"stake"`
	Net     int64    `json:"net"`
	Balance int64    `json:"balance"`
	Coin    string   `json:"coin,omitempty"`
	Reels   []string `json:"reels,omitempty"`
	Roll    int      `json:"roll,omitempty"`
}

type Row struct {
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}
