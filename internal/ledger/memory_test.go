package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestMemoryLedger(t *testing.T) {
	t.Run("DebitAndCredit", testDebitAndCredit)
	t.Run("InsufficientFunds", testInsufficientFunds)
	t.Run("BannedBlocksDebitNotCredit", testBannedBlocksDebitNotCredit)
	t.Run("UnknownAccount", testUnknownAccount)
	t.Run("ConcurrentDebitsNeverGoNegative", testConcurrentDebits)
	t.Run("IndependentAccountsInParallel", testIndependentAccounts)
}

func testDebitAndCredit(t *testing.T) {
	m := NewMemory()
	acc := m.CreateAccount("matt@example.com", "Matheo Poulain", dec(t, "1000.00"))

	bal, err := m.Debit(context.Background(), acc.ID, dec(t, "100.00"))
	if err != nil {
		t.Fatalf("debit: %v", err)
	}
	if !bal.Equal(dec(t, "900.00")) {
		t.Errorf("balance after debit = %s, want 900.00", bal)
	}

	bal, err = m.Credit(context.Background(), acc.ID, dec(t, "250.00"))
	if err != nil {
		t.Fatalf("credit: %v", err)
	}
	if !bal.Equal(dec(t, "1150.00")) {
		t.Errorf("balance after credit = %s, want 1150.00", bal)
	}
}

func testInsufficientFunds(t *testing.T) {
	m := NewMemory()
	acc := m.CreateAccount("anna@example.com", "Anna Dupont", dec(t, "50.00"))

	_, err := m.Debit(context.Background(), acc.ID, dec(t, "100.00"))
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("debit err = %v, want ErrInsufficientFunds", err)
	}

	got, err := m.Get(context.Background(), acc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Balance.Equal(dec(t, "50.00")) {
		t.Errorf("balance after failed debit = %s, want untouched 50.00", got.Balance)
	}
}

func testBannedBlocksDebitNotCredit(t *testing.T) {
	m := NewMemory()
	acc := m.CreateAccount("leo@example.com", "Leo Martin", dec(t, "800.00"))
	if err := m.SetBanned(acc.ID, true); err != nil {
		t.Fatalf("set banned: %v", err)
	}

	if _, err := m.Debit(context.Background(), acc.ID, dec(t, "10.00")); !errors.Is(err, ErrAccountBanned) {
		t.Fatalf("debit err = %v, want ErrAccountBanned", err)
	}

	// ban bloqueia aposta nova, nunca o pagamento de aposta antiga
	bal, err := m.Credit(context.Background(), acc.ID, dec(t, "40.00"))
	if err != nil {
		t.Fatalf("credit on banned account: %v", err)
	}
	if !bal.Equal(dec(t, "840.00")) {
		t.Errorf("balance = %s, want 840.00", bal)
	}
}

func testUnknownAccount(t *testing.T) {
	m := NewMemory()
	if _, err := m.Debit(context.Background(), "nope", dec(t, "1.00")); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("debit err = %v, want ErrAccountNotFound", err)
	}
	if _, err := m.Credit(context.Background(), "nope", dec(t, "1.00")); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("credit err = %v, want ErrAccountNotFound", err)
	}
	if _, err := m.Get(context.Background(), "nope"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("get err = %v, want ErrAccountNotFound", err)
	}
}

func testConcurrentDebits(t *testing.T) {
	m := NewMemory()
	acc := m.CreateAccount("c@example.com", "Concurrent", dec(t, "1000.00"))
	amount := dec(t, "100.00")

	const workers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Debit(context.Background(), acc.ID, amount); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 10 {
		t.Errorf("succeeded debits = %d, want exactly 10", succeeded)
	}

	got, _ := m.Get(context.Background(), acc.ID)
	want := dec(t, "1000.00").Sub(amount.Mul(decimal.NewFromInt(int64(succeeded))))
	if !got.Balance.Equal(want) {
		t.Errorf("balance = %s, want %s", got.Balance, want)
	}
	if got.Balance.IsNegative() {
		t.Errorf("balance went negative: %s", got.Balance)
	}
}

func testIndependentAccounts(t *testing.T) {
	m := NewMemory()
	a := m.CreateAccount("a@example.com", "A", dec(t, "1000.00"))
	b := m.CreateAccount("b@example.com", "B", dec(t, "1000.00"))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Debit(context.Background(), a.ID, dec(t, "50.00"))
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Debit(context.Background(), b.ID, dec(t, "50.00"))
		}()
	}
	wg.Wait()

	ga, _ := m.Get(context.Background(), a.ID)
	gb, _ := m.Get(context.Background(), b.ID)
	if !ga.Balance.Equal(dec(t, "500.00")) || !gb.Balance.Equal(dec(t, "500.00")) {
		t.Errorf("balances = %s / %s, want 500.00 / 500.00", ga.Balance, gb.Balance)
	}
}
