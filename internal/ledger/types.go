package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used for bill due dates and goal
// target dates.
const DateLayout = "2006-01-02"

// Expense is a single recorded spend. Immutable once created.
type Expense struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Recurring   bool            `json:"recurring"`
}

// Bill is a payment obligation with a calendar due date. The due date is a
// date, not necessarily in the future.
type Bill struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	DueDate   string          `json:"due_date"`
	Category  string          `json:"category"`
	Recurring bool            `json:"recurring"`
}

// SavingsGoal is a savings target. CurrentAmount starts at zero and no
// operation currently increments it.
type SavingsGoal struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	TargetAmount        decimal.Decimal `json:"target_amount"`
	TargetDate          string          `json:"target_date"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	CurrentAmount       decimal.Decimal `json:"current_amount"`
}

// Snapshot is the derived point-in-time view of a ledger. It is recomputed
// on every read and never persisted.
type Snapshot struct {
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses"`
	UpcomingBills   decimal.Decimal `json:"upcomingBills"`
	TotalSaved      decimal.Decimal `json:"totalSaved"`
	NetWorth        decimal.Decimal `json:"netWorth"`
}

// ZeroSnapshot returns a snapshot with all four totals at zero, the default
// answered when a ledger is empty or unreadable.
func ZeroSnapshot() Snapshot {
	zero := decimal.Zero
	return Snapshot{
		MonthlyExpenses: zero,
		UpcomingBills:   zero,
		TotalSaved:      zero,
		NetWorth:        zero,
	}
}
