package agent

import (
	"context"
	"sort"
	"time"

	"finagent/internal/ledger"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// expenseDisplayLimit bounds the expense list returned for presentation.
// Snapshot totals are computed over the full collection regardless.
const expenseDisplayLimit = 50

// Overview is the full read-side payload: the three sorted collections plus
// the derived snapshot.
type Overview struct {
	Expenses     []ledger.Expense     `json:"expenses"`
	Bills        []ledger.Bill        `json:"bills"`
	SavingsGoals []ledger.SavingsGoal `json:"savingsGoals"`
	Summary      ledger.Snapshot      `json:"summary"`
}

// Aggregator derives the financial snapshot from the ledger. It holds no
// state of its own; every call recomputes from storage.
type Aggregator struct {
	ledger *ledger.Ledger
}

func NewAggregator(l *ledger.Ledger) *Aggregator {
	return &Aggregator{ledger: l}
}

// Collect reads all three collections and assembles the overview. The three
// reads are independent and run concurrently.
func (a *Aggregator) Collect(ctx context.Context, now time.Time) (Overview, error) {
	var (
		expenses []ledger.Expense
		bills    []ledger.Bill
		goals    []ledger.SavingsGoal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = a.ledger.Expenses(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bills, err = a.ledger.Bills(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = a.ledger.Goals(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	snapshot := computeSnapshot(expenses, bills, goals, now)

	sortExpenses(expenses)
	if len(expenses) > expenseDisplayLimit {
		expenses = expenses[:expenseDisplayLimit]
	}
	sortBills(bills)
	sortGoals(goals)

	// Collections serialize as [] rather than null when empty.
	if expenses == nil {
		expenses = []ledger.Expense{}
	}
	if bills == nil {
		bills = []ledger.Bill{}
	}
	if goals == nil {
		goals = []ledger.SavingsGoal{}
	}

	return Overview{
		Expenses:     expenses,
		Bills:        bills,
		SavingsGoals: goals,
		Summary:      snapshot,
	}, nil
}

// Snapshot computes just the derived totals.
func (a *Aggregator) Snapshot(ctx context.Context, now time.Time) (ledger.Snapshot, error) {
	overview, err := a.Collect(ctx, now)
	if err != nil {
		return ledger.Snapshot{}, err
	}
	return overview.Summary, nil
}

// computeSnapshot derives the four totals. Both date windows are
// boundary-inclusive: an expense exactly 30 days old counts toward
// monthlyExpenses, a bill due today counts toward upcomingBills.
func computeSnapshot(expenses []ledger.Expense, bills []ledger.Bill, goals []ledger.SavingsGoal, now time.Time) ledger.Snapshot {
	windowStart := now.Add(-30 * 24 * time.Hour)
	monthly := decimal.Zero
	for _, e := range expenses {
		if !e.Date.Before(windowStart) {
			monthly = monthly.Add(e.Amount)
		}
	}

	today := truncateToDate(now)
	upcoming := decimal.Zero
	for _, b := range bills {
		due, err := time.ParseInLocation(ledger.DateLayout, b.DueDate, time.UTC)
		if err != nil {
			continue
		}
		if !due.Before(today) {
			upcoming = upcoming.Add(b.Amount)
		}
	}

	saved := decimal.Zero
	for _, g := range goals {
		saved = saved.Add(g.CurrentAmount)
	}

	return ledger.Snapshot{
		MonthlyExpenses: monthly,
		UpcomingBills:   upcoming,
		TotalSaved:      saved,
		NetWorth:        saved.Sub(monthly),
	}
}

func truncateToDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// sortExpenses orders newest first.
func sortExpenses(expenses []ledger.Expense) {
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date)
	})
}

// sortBills orders soonest due first. ISO dates sort lexicographically.
func sortBills(bills []ledger.Bill) {
	sort.SliceStable(bills, func(i, j int) bool {
		return bills[i].DueDate < bills[j].DueDate
	})
}

func sortGoals(goals []ledger.SavingsGoal) {
	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].TargetDate < goals[j].TargetDate
	})
}
