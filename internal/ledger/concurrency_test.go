package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"coin-bank/internal/testutil"
	"coin-bank/internal/wager"
)

func TestConcurrentBonusClaimsGrantOnce(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	clock := &fixedClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	eng := New(st, clock.Now, nil)
	ctx := context.Background()

	if _, err := eng.Register(ctx, 1, "Alice"); err != nil {
		t.Fatalf("register: %v", err)
	}
	clock.now = clock.now.Add(7 * time.Hour)

	const n = 16
	var wg sync.WaitGroup
	results := make([]GrantResult, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = eng.ClaimBonus(ctx, 1, "Alice")
		}(i)
	}
	wg.Wait()

	granted := 0
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("claim %d: %v", i, errs[i])
		}
		if results[i].Granted {
			granted++
		}
	}
	if granted != 1 {
		t.Fatalf("expected exactly one grant, got %d", granted)
	}

	p, err := eng.Profile(ctx, 1, "Alice")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.Balance != StartingBalance+BonusAmount {
		t.Fatalf("balance = %d, want %d", p.Balance, StartingBalance+BonusAmount)
	}
}

func TestConcurrentLoansNeverOverdrawReserve(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	clock := &fixedClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	eng := New(st, clock.Now, nil)
	ctx := context.Background()

	const m = 10
	for i := 0; i < m; i++ {
		if _, err := eng.Register(ctx, int64(i+1), "P"); err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
	}
	// Reserve covers only three loans.
	if err := st.UpdateReserveTotal(ctx, st.Pool, 1000); err != nil {
		t.Fatalf("shrink reserve: %v", err)
	}
	clock.now = clock.now.Add(13 * time.Hour)

	var wg sync.WaitGroup
	results := make([]LoanResult, m)
	errs := make([]error, m)
	for i := 0; i < m; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = eng.ClaimLoan(ctx, int64(i+1), "P")
		}(i)
	}
	wg.Wait()

	granted := 0
	short := 0
	for i := 0; i < m; i++ {
		if errs[i] != nil {
			t.Fatalf("loan %d: %v", i, errs[i])
		}
		if results[i].Granted {
			granted++
		}
		if results[i].ReserveShort {
			short++
		}
	}
	if granted != 3 {
		t.Fatalf("expected floor(1000/300) = 3 grants, got %d", granted)
	}
	if short != m-3 {
		t.Fatalf("expected %d reserve-short refusals, got %d", m-3, short)
	}

	bank, err := eng.BankInfo(ctx)
	if err != nil {
		t.Fatalf("bank info: %v", err)
	}
	if bank.Total != 1000-3*LoanAmount {
		t.Fatalf("reserve = %d, want %d", bank.Total, 1000-3*LoanAmount)
	}
}

func TestConcurrentRegisterCreatesOnce(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	eng := New(st, nil, nil)
	ctx := context.Background()

	const k = 16
	var wg sync.WaitGroup
	results := make([]RegisterResult, k)
	errs := make([]error, k)
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = eng.Register(ctx, 777, "Fresh")
		}(i)
	}
	wg.Wait()

	created := 0
	for i := 0; i < k; i++ {
		if errs[i] != nil {
			t.Fatalf("register %d: %v", i, errs[i])
		}
		if results[i].Created {
			created++
		}
	}
	if created != 1 {
		t.Fatalf("expected exactly one created=true, got %d", created)
	}

	p, err := eng.Profile(ctx, 777, "Fresh")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.Balance != StartingBalance {
		t.Fatalf("balance = %d, want %d", p.Balance, StartingBalance)
	}
}

func TestConcurrentWagersStaySerializable(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	eng := New(st, nil, wager.NewRand(7))
	ctx := context.Background()

	if _, err := eng.Register(ctx, 55, "Races"); err != nil {
		t.Fatalf("register: %v", err)
	}

	const n = 20
	var wg sync.WaitGroup
	results := make([]WagerResult, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = eng.PlaceWager(ctx, 55, "Races", wager.KindDice)
		}(i)
	}
	wg.Wait()

	var sum int64
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("wager %d: %v", i, errs[i])
		}
		if results[i].OK {
			sum += results[i].Net
		}
	}

	p, err := eng.Profile(ctx, 55, "Races")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.Balance != StartingBalance+sum {
		t.Fatalf("balance = %d, want %d", p.Balance, StartingBalance+sum)
	}
	if p.Balance < 0 {
		t.Fatalf("balance went negative: %d", p.Balance)
	}
}
