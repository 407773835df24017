package agent

import (
	"context"
	"fmt"
	"testing"
	"time"

	"finagent/internal/kv"
	"finagent/internal/ledger"

	"github.com/shopspring/decimal"
)

func TestSnapshotEmptyLedger(t *testing.T) {
	snap := computeSnapshot(nil, nil, nil, testNow)
	for name, v := range map[string]decimal.Decimal{
		"monthlyExpenses": snap.MonthlyExpenses,
		"upcomingBills":   snap.UpcomingBills,
		"totalSaved":      snap.TotalSaved,
		"netWorth":        snap.NetWorth,
	} {
		if !v.IsZero() {
			t.Errorf("%s = %s, want 0 for empty ledger", name, v)
		}
	}
}

func TestSnapshotExpenseWindowInclusive(t *testing.T) {
	expenses := []ledger.Expense{
		{ID: "boundary", Amount: decimal.NewFromInt(10), Date: testNow.Add(-30 * 24 * time.Hour)},
		{ID: "inside", Amount: decimal.NewFromInt(5), Date: testNow.Add(-24 * time.Hour)},
		{ID: "outside", Amount: decimal.NewFromInt(100), Date: testNow.Add(-30*24*time.Hour - time.Second)},
	}

	snap := computeSnapshot(expenses, nil, nil, testNow)
	// boundary expense (exactly 30 days old) counts, older one does not
	if want := decimal.NewFromInt(15); !snap.MonthlyExpenses.Equal(want) {
		t.Errorf("monthlyExpenses = %s, want %s", snap.MonthlyExpenses, want)
	}
}

func TestSnapshotBillWindowInclusive(t *testing.T) {
	bills := []ledger.Bill{
		{ID: "today", Amount: decimal.NewFromInt(100), DueDate: testNow.Format(ledger.DateLayout)},
		{ID: "future", Amount: decimal.NewFromInt(50), DueDate: "2030-01-01"},
		{ID: "past", Amount: decimal.NewFromInt(999), DueDate: "2020-01-01"},
		{ID: "garbage", Amount: decimal.NewFromInt(777), DueDate: "soon"},
	}

	snap := computeSnapshot(nil, bills, nil, testNow)
	// due today counts, past and unparsable dates do not
	if want := decimal.NewFromInt(150); !snap.UpcomingBills.Equal(want) {
		t.Errorf("upcomingBills = %s, want %s", snap.UpcomingBills, want)
	}
}

func TestSnapshotNetWorthIdentity(t *testing.T) {
	expenses := []ledger.Expense{
		{Amount: decimal.NewFromInt(30), Date: testNow},
	}
	goals := []ledger.SavingsGoal{
		{CurrentAmount: decimal.NewFromInt(200)},
		{CurrentAmount: decimal.NewFromInt(50)},
	}

	snap := computeSnapshot(expenses, nil, goals, testNow)
	if want := decimal.NewFromInt(250); !snap.TotalSaved.Equal(want) {
		t.Errorf("totalSaved = %s, want %s", snap.TotalSaved, want)
	}
	if !snap.NetWorth.Equal(snap.TotalSaved.Sub(snap.MonthlyExpenses)) {
		t.Errorf("netWorth = %s, want totalSaved - monthlyExpenses = %s",
			snap.NetWorth, snap.TotalSaved.Sub(snap.MonthlyExpenses))
	}
}

func TestCollectSortsAndCapsExpenses(t *testing.T) {
	ctx := context.Background()
	l := ledger.New(kv.NewMemoryStore())
	if err := l.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	// 55 expenses, oldest first, all inside the 30-day window
	for i := 0; i < 55; i++ {
		e := ledger.Expense{
			ID:     fmt.Sprintf("e%02d", i),
			Amount: decimal.NewFromInt(1),
			Date:   testNow.Add(time.Duration(-55+i) * time.Hour),
		}
		if err := l.AppendExpense(ctx, e); err != nil {
			t.Fatalf("AppendExpense: %v", err)
		}
	}

	overview, err := NewAggregator(l).Collect(ctx, testNow)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if len(overview.Expenses) != 50 {
		t.Fatalf("display list has %d expenses, want 50", len(overview.Expenses))
	}
	if overview.Expenses[0].ID != "e54" {
		t.Errorf("first expense = %s, want newest (e54)", overview.Expenses[0].ID)
	}
	for i := 1; i < len(overview.Expenses); i++ {
		if overview.Expenses[i].Date.After(overview.Expenses[i-1].Date) {
			t.Fatalf("expenses not sorted newest-first at index %d", i)
		}
	}

	// Snapshot totals cover the full collection, not the display cap.
	if want := decimal.NewFromInt(55); !overview.Summary.MonthlyExpenses.Equal(want) {
		t.Errorf("monthlyExpenses = %s, want %s (all 55 records)", overview.Summary.MonthlyExpenses, want)
	}
}

func TestCollectSortsBillsAndGoals(t *testing.T) {
	ctx := context.Background()
	l := ledger.New(kv.NewMemoryStore())
	if err := l.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	for _, due := range []string{"2025-03-01", "2024-07-01", "2024-12-01"} {
		if err := l.AppendBill(ctx, ledger.Bill{ID: due, Name: "b", Amount: decimal.NewFromInt(1), DueDate: due}); err != nil {
			t.Fatalf("AppendBill: %v", err)
		}
	}
	for _, target := range []string{"2026-01-01", "2024-08-01"} {
		if err := l.AppendGoal(ctx, ledger.SavingsGoal{ID: target, TargetAmount: decimal.NewFromInt(1), TargetDate: target}); err != nil {
			t.Fatalf("AppendGoal: %v", err)
		}
	}

	overview, err := NewAggregator(l).Collect(ctx, testNow)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	wantBills := []string{"2024-07-01", "2024-12-01", "2025-03-01"}
	for i, due := range wantBills {
		if overview.Bills[i].DueDate != due {
			t.Errorf("bills[%d].DueDate = %s, want %s (soonest first)", i, overview.Bills[i].DueDate, due)
		}
	}
	if overview.SavingsGoals[0].TargetDate != "2024-08-01" {
		t.Errorf("goals[0].TargetDate = %s, want 2024-08-01", overview.SavingsGoals[0].TargetDate)
	}
}

func TestCollectEmptyCollectionsAreNonNil(t *testing.T) {
	overview, err := NewAggregator(ledger.New(kv.NewMemoryStore())).Collect(context.Background(), testNow)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if overview.Expenses == nil || overview.Bills == nil || overview.SavingsGoals == nil {
		t.Error("empty collections must be non-nil so they serialize as []")
	}
}
