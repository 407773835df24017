package ledger

import (
	"context"
	"testing"
	"time"

	"finagent/internal/kv"

	"github.com/shopspring/decimal"
)

// countingStore wraps a kv.Store and counts writes, to observe whether an
// operation actually mutated storage.
type countingStore struct {
	kv.Store
	puts int
}

func (c *countingStore) Put(ctx context.Context, key string, value []byte) error {
	c.puts++
	return c.Store.Put(ctx, key, value)
}

func TestInitIdempotent(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Store: kv.NewMemoryStore()}
	l := New(store)

	if err := l.Init(ctx); err != nil {
		t.Fatalf("first Init: %v", err)
	}
	// marker plus three collections
	if store.puts != 4 {
		t.Fatalf("first Init wrote %d keys, want 4", store.puts)
	}

	if err := l.AppendExpense(ctx, Expense{ID: "e1", Amount: decimal.NewFromInt(10), Date: time.Now()}); err != nil {
		t.Fatalf("AppendExpense: %v", err)
	}

	putsBefore := store.puts
	if err := l.Init(ctx); err != nil {
		t.Fatalf("second Init: %v", err)
	}
	if store.puts != putsBefore {
		t.Fatalf("second Init performed %d writes, want 0", store.puts-putsBefore)
	}

	expenses, err := l.Expenses(ctx)
	if err != nil {
		t.Fatalf("Expenses: %v", err)
	}
	if len(expenses) != 1 || expenses[0].ID != "e1" {
		t.Fatalf("expenses after re-init = %+v, want the one appended record", expenses)
	}
}

func TestReadsMissingKeysAsEmpty(t *testing.T) {
	ctx := context.Background()
	l := New(kv.NewMemoryStore())

	expenses, err := l.Expenses(ctx)
	if err != nil {
		t.Fatalf("Expenses: %v", err)
	}
	if len(expenses) != 0 {
		t.Fatalf("Expenses on fresh store = %v, want empty", expenses)
	}

	bills, err := l.Bills(ctx)
	if err != nil || len(bills) != 0 {
		t.Fatalf("Bills on fresh store = (%v, %v), want empty", bills, err)
	}

	goals, err := l.Goals(ctx)
	if err != nil || len(goals) != 0 {
		t.Fatalf("Goals on fresh store = (%v, %v), want empty", goals, err)
	}
}

func TestAppendRoundTrip(t *testing.T) {
	ctx := context.Background()
	l := New(kv.NewMemoryStore())
	if err := l.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	amount := decimal.RequireFromString("12.34")
	date := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	e := Expense{
		ID:          "e1",
		Amount:      amount,
		Category:    "food",
		Description: "lunch",
		Date:        date,
	}
	if err := l.AppendExpense(ctx, e); err != nil {
		t.Fatalf("AppendExpense: %v", err)
	}

	b := Bill{ID: "b1", Name: "Rent", Amount: decimal.NewFromInt(1200), DueDate: "2024-07-01", Category: "rent", Recurring: true}
	if err := l.AppendBill(ctx, b); err != nil {
		t.Fatalf("AppendBill: %v", err)
	}

	g := SavingsGoal{ID: "g1", Name: "Vacation Fund", TargetAmount: decimal.NewFromInt(6000), TargetDate: "2025-01-01", MonthlyContribution: decimal.NewFromInt(500), CurrentAmount: decimal.Zero}
	if err := l.AppendGoal(ctx, g); err != nil {
		t.Fatalf("AppendGoal: %v", err)
	}

	expenses, err := l.Expenses(ctx)
	if err != nil {
		t.Fatalf("Expenses: %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("got %d expenses, want 1", len(expenses))
	}
	got := expenses[0]
	if !got.Amount.Equal(amount) {
		t.Errorf("amount = %s, want %s (no rounding drift)", got.Amount, amount)
	}
	if !got.Date.Equal(date) {
		t.Errorf("date = %v, want %v", got.Date, date)
	}
	if got.Category != "food" || got.Description != "lunch" {
		t.Errorf("round-tripped expense = %+v", got)
	}

	bills, _ := l.Bills(ctx)
	if len(bills) != 1 || bills[0].Name != "Rent" || !bills[0].Recurring {
		t.Errorf("round-tripped bills = %+v", bills)
	}

	goals, _ := l.Goals(ctx)
	if len(goals) != 1 || !goals[0].CurrentAmount.IsZero() {
		t.Errorf("round-tripped goals = %+v", goals)
	}
}
