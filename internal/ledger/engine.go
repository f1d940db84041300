// Package ledger is the transaction engine for the shared coin economy.
// Every operation is a single atomic unit against the store: account rows
// are locked before the reserve row, never the reverse.
package ledger

import (
	"context"
	"fmt"
	"time"

	"coin-bank/internal/cooldown"
	"coin-bank/internal/store"
	"coin-bank/internal/wager"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

const (
	StartingBalance int64 = 500
	ReserveTotal    int64 = 100000

	BonusAmount   int64 = 200
	BonusCooldown       = 6 * time.Hour

	LoanAmount   int64 = 300
	LoanCooldown       = 12 * time.Hour
)

const leaderboardMaxRows = 100

type Engine struct {
	store *store.Store
	now   func() time.Time
	rnd   wager.Rand
}

// New builds an engine over st. A nil clock means time.Now, a nil random
// source means a clock-seeded one.
func New(st *store.Store, now func() time.Time, rnd wager.Rand) *Engine {
	if now == nil {
		now = time.Now
	}
	if rnd == nil {
		rnd = wager.NewRand(0)
	}
	return &Engine{store: st, now: now, rnd: rnd}
}

// Register creates the account on first contact and reports whether this
// call created it. The reserve is seeded alongside the first account.
func (e *Engine) Register(ctx context.Context, identity int64, name string) (RegisterResult, error) {
	now := e.now().UTC()
	var res RegisterResult
	err := e.store.WithTx(ctx, func(tx pgx.Tx) error {
		acc, created, err := e.store.GetOrCreateAccount(ctx, tx, identity, name, StartingBalance, now)
		if err != nil {
			return fmt.Errorf("get or create account: %w", err)
		}
		if err := e.store.EnsureReserve(ctx, tx, ReserveTotal); err != nil {
			return fmt.Errorf("ensure reserve: %w", err)
		}
		res = RegisterResult{Created: created, Balance: acc.Balance}
		return nil
	})
	if err != nil {
		return RegisterResult{}, fmt.Errorf("register: %w", err)
	}
	if res.Created {
		log.Info().Int64("identity", identity).Str("name", name).Msg("account created")
	}
	return res, nil
}

func (e *Engine) Profile(ctx context.Context, identity int64, name string) (ProfileResult, error) {
	acc, _, err := e.store.GetOrCreateAccount(ctx, e.store.Pool, identity, name, StartingBalance, e.now().UTC())
	if err != nil {
		return ProfileResult{}, fmt.Errorf("profile: %w", err)
	}
	return ProfileResult{Name: acc.Name, Balance: acc.Balance}, nil
}

func (e *Engine) BankInfo(ctx context.Context) (BankResult, error) {
	if err := e.store.EnsureReserve(ctx, e.store.Pool, ReserveTotal); err != nil {
		return BankResult{}, fmt.Errorf("bank info: %w", err)
	}
	r, err := e.store.GetReserve(ctx, e.store.Pool)
	if err != nil {
		return BankResult{}, fmt.Errorf("bank info: %w", err)
	}
	return BankResult{Total: r.Total}, nil
}

// ClaimBonus credits the fixed bonus when the 6h cooldown has elapsed.
// The locked reread makes concurrent claims for one identity serialize:
// exactly one sees an elapsed cooldown.
func (e *Engine) ClaimBonus(ctx context.Context, identity int64, name string) (GrantResult, error) {
	now := e.now().UTC()
	var res GrantResult
	err := e.store.WithTx(ctx, func(tx pgx.Tx) error {
		if _, _, err := e.store.GetOrCreateAccount(ctx, tx, identity, name, StartingBalance, now); err != nil {
			return fmt.Errorf("get or create account: %w", err)
		}
		acc, err := e.store.GetAccountForUpdate(ctx, tx, identity)
		if err != nil {
			return fmt.Errorf("lock account: %w", err)
		}
		cd := cooldown.Evaluate(acc.LastBonusAt, now, BonusCooldown)
		if !cd.Eligible {
			res = GrantResult{
				Balance:        acc.Balance,
				Remaining:      cd.Remaining,
				RemainingHours: cooldown.WholeHours(cd.Remaining),
			}
			return nil
		}
		newBal := acc.Balance + BonusAmount
		if err := e.store.UpdateAccountBonus(ctx, tx, identity, newBal, now); err != nil {
			return fmt.Errorf("apply bonus: %w", err)
		}
		res = GrantResult{Granted: true, Amount: BonusAmount, Balance: newBal}
		return nil
	})
	if err != nil {
		return GrantResult{}, fmt.Errorf("claim bonus: %w", err)
	}
	if res.Granted {
		log.Debug().Int64("identity", identity).Int64("balance", res.Balance).Msg("bonus granted")
	}
	return res, nil
}

// ClaimLoan credits the fixed loan from the shared reserve when the 12h
// cooldown has elapsed and the reserve covers it. A short reserve leaves
// the cooldown untouched so the caller may retry once funds return.
func (e *Engine) ClaimLoan(ctx context.Context, identity int64, name string) (LoanResult, error) {
	now := e.now().UTC()
	var res LoanResult
	err := e.store.WithTx(ctx, func(tx pgx.Tx) error {
		if _, _, err := e.store.GetOrCreateAccount(ctx, tx, identity, name, StartingBalance, now); err != nil {
			return fmt.Errorf("get or create account: %w", err)
		}
		acc, err := e.store.GetAccountForUpdate(ctx, tx, identity)
		if err != nil {
			return fmt.Errorf("lock account: %w", err)
		}
		cd := cooldown.Evaluate(acc.LastLoanAt, now, LoanCooldown)
		if !cd.Eligible {
			res = LoanResult{
				Balance:        acc.Balance,
				Remaining:      cd.Remaining,
				RemainingHours: cooldown.WholeHours(cd.Remaining),
			}
			return nil
		}
		if err := e.store.EnsureReserve(ctx, tx, ReserveTotal); err != nil {
			return fmt.Errorf("ensure reserve: %w", err)
		}
		reserve, err := e.store.GetReserveForUpdate(ctx, tx)
		if err != nil {
			return fmt.Errorf("lock reserve: %w", err)
		}
		if reserve.Total < LoanAmount {
			res = LoanResult{Balance: acc.Balance, ReserveShort: true}
			return nil
		}
		newBal := acc.Balance + LoanAmount
		if err := e.store.UpdateAccountLoan(ctx, tx, identity, newBal, now); err != nil {
			return fmt.Errorf("apply loan: %w", err)
		}
		if err := e.store.UpdateReserveTotal(ctx, tx, reserve.Total-LoanAmount); err != nil {
			return fmt.Errorf("debit reserve: %w", err)
		}
		res = LoanResult{Granted: true, Amount: LoanAmount, Balance: newBal}
		return nil
	})
	if err != nil {
		return LoanResult{}, fmt.Errorf("claim loan: %w", err)
	}
	if res.Granted {
		log.Debug().Int64("identity", identity).Int64("balance", res.Balance).Msg("loan granted")
	}
	return res, nil
}

// PlaceWager stakes, resolves, and settles in one transaction. The net
// delta is applied as a single balance write, so the stake debit and the
// payout credit can never be observed separately.
func (e *Engine) PlaceWager(ctx context.Context, identity int64, name string, kind wager.Kind) (WagerResult, error) {
	stake, err := wager.Stake(kind)
	if err != nil {
		return WagerResult{}, err
	}
	now := e.now().UTC()
	var res WagerResult
	err = e.store.WithTx(ctx, func(tx pgx.Tx) error {
		if _, _, err := e.store.GetOrCreateAccount(ctx, tx, identity, name, StartingBalance, now); err != nil {
			return fmt.Errorf("get or create account: %w", err)
		}
		acc, err := e.store.GetAccountForUpdate(ctx, tx, identity)
		if err != nil {
			return fmt.Errorf("lock account: %w", err)
		}
		if acc.Balance < stake {
			res = WagerResult{Kind: string(kind), Stake: stake, Balance: acc.Balance}
			return nil
		}
		out, err := wager.Resolve(kind, e.rnd)
		if err != nil {
			return err
		}
		newBal := acc.Balance + out.Net
		if err := e.store.UpdateAccountBalance(ctx, tx, identity, newBal); err != nil {
			return fmt.Errorf("settle wager: %w", err)
		}
		res = WagerResult{
			OK:      true,
			WagerID: NewWagerID(),
			Kind:    string(kind),
			Stake:   stake,
			Net:     out.Net,
			Balance: newBal,
			Coin:    out.Coin,
			Reels:   out.Reels,
			Roll:    out.Roll,
		}
		return nil
	})
	if err != nil {
		return WagerResult{}, fmt.Errorf("place wager: %w", err)
	}
	if res.OK {
		log.Debug().
			Str("wager_id", res.WagerID).
			Int64("identity", identity).
			Str("kind", res.Kind).
			Int64("net", res.Net).
			Msg("wager settled")
	}
	return res, nil
}

// Leaderboard returns up to n accounts ordered by balance descending,
// ties broken by insertion order.
func (e *Engine) Leaderboard(ctx context.Context, n int) ([]Row, error) {
	if n <= 0 {
		n = 10
	}
	if n > leaderboardMaxRows {
		n = leaderboardMaxRows
	}
	accounts, err := e.store.TopAccountsByBalance(ctx, e.store.Pool, n)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	rows := make([]Row, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, Row{Name: a.Name, Balance: a.Balance})
	}
	return rows, nil
}
