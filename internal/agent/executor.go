package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finagent/internal/events"
	"finagent/internal/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Executor turns a validated resolution into a ledger mutation and a
// human-readable confirmation. Parameters arrive pre-filled by whichever
// resolver produced them; amount positivity is re-asserted here so a bad
// resolution can never write to storage.
type Executor struct {
	ledger    *ledger.Ledger
	aggregate *Aggregator
	publisher events.Publisher
}

func NewExecutor(l *ledger.Ledger, agg *Aggregator, pub events.Publisher) *Executor {
	return &Executor{
		ledger:    l,
		aggregate: agg,
		publisher: pub,
	}
}

// Execute runs one action. Validation failures come back as guidance
// responses with no error; only storage failures are errors.
func (e *Executor) Execute(ctx context.Context, res Resolution, now time.Time) (Response, error) {
	switch res.Action {
	case ActionAddExpense:
		return e.addExpense(ctx, res.Params, now)
	case ActionAddBill:
		return e.addBill(ctx, res.Params, now)
	case ActionSetSavingsGoal:
		return e.setSavingsGoal(ctx, res.Params, now)
	case ActionGetSummary:
		return e.getSummary(ctx, now)
	default:
		// Unknown never reaches execution; both resolvers terminate it with
		// a help message first.
		return Response{Message: apologyMessage, Timestamp: now}, nil
	}
}

func (e *Executor) addExpense(ctx context.Context, p Params, now time.Time) (Response, error) {
	if !p.Amount.IsPositive() {
		return Response{Message: expenseAmountGuidance, Timestamp: now}, nil
	}

	category := p.Category
	if category == "" {
		category = "general"
	}
	description := p.Description
	if description == "" {
		description = fmt.Sprintf("Expense of $%s", p.Amount)
	}

	expense := ledger.Expense{
		ID:          uuid.NewString(),
		Amount:      p.Amount,
		Category:    category,
		Description: description,
		Date:        now,
		Recurring:   p.Recurring,
	}

	if err := e.ledger.AppendExpense(ctx, expense); err != nil {
		return Response{}, fmt.Errorf("append expense: %w", err)
	}
	e.publish(ctx, events.KindExpenseAdded, expense.ID)

	return Response{
		Message:   fmt.Sprintf("Added expense: $%s for %s - %s", expense.Amount, expense.Category, expense.Description),
		Data:      expense,
		Timestamp: now,
	}, nil
}

func (e *Executor) addBill(ctx context.Context, p Params, now time.Time) (Response, error) {
	if !p.Amount.IsPositive() {
		return Response{Message: billAmountGuidance, Timestamp: now}, nil
	}

	name := p.Name
	if name == "" {
		name = "Bill"
	}
	dueDate := p.DueDate
	if dueDate == "" {
		dueDate = now.AddDate(0, 0, 30).Format(ledger.DateLayout)
	}
	category := p.Category
	if category == "" {
		category = "utilities"
	}

	bill := ledger.Bill{
		ID:        uuid.NewString(),
		Name:      name,
		Amount:    p.Amount,
		DueDate:   dueDate,
		Category:  category,
		Recurring: p.Recurring,
	}

	if err := e.ledger.AppendBill(ctx, bill); err != nil {
		return Response{}, fmt.Errorf("append bill: %w", err)
	}
	e.publish(ctx, events.KindBillAdded, bill.ID)

	return Response{
		Message:   fmt.Sprintf("Added bill: %s - $%s due %s", bill.Name, bill.Amount, bill.DueDate),
		Data:      bill,
		Timestamp: now,
	}, nil
}

func (e *Executor) setSavingsGoal(ctx context.Context, p Params, now time.Time) (Response, error) {
	if !p.TargetAmount.IsPositive() {
		return Response{Message: goalAmountGuidance, Timestamp: now}, nil
	}

	name := p.Name
	if name == "" {
		name = "Savings Goal"
	}
	targetDate := p.TargetDate
	if targetDate == "" {
		targetDate = now.AddDate(0, 0, 365).Format(ledger.DateLayout)
	}
	contribution := p.MonthlyContribution
	if !contribution.IsPositive() {
		contribution = p.TargetAmount.Div(twelve).Ceil()
	}

	goal := ledger.SavingsGoal{
		ID:                  uuid.NewString(),
		Name:                name,
		TargetAmount:        p.TargetAmount,
		TargetDate:          targetDate,
		MonthlyContribution: contribution,
		CurrentAmount:       decimal.Zero,
	}

	if err := e.ledger.AppendGoal(ctx, goal); err != nil {
		return Response{}, fmt.Errorf("append savings goal: %w", err)
	}
	e.publish(ctx, events.KindGoalSet, goal.ID)

	return Response{
		Message:   fmt.Sprintf("Set savings goal: %s - $%s by %s", goal.Name, goal.TargetAmount, goal.TargetDate),
		Data:      goal,
		Timestamp: now,
	}, nil
}

func (e *Executor) getSummary(ctx context.Context, now time.Time) (Response, error) {
	snapshot, err := e.aggregate.Snapshot(ctx, now)
	if err != nil {
		return Response{}, fmt.Errorf("compute summary: %w", err)
	}
	return Response{
		Message:   "Here's your financial summary:",
		Data:      snapshot,
		Timestamp: now,
	}, nil
}

// publish sends a mutation event if a publisher is configured. The mutation
// already succeeded, so a failed publish is logged and swallowed.
func (e *Executor) publish(ctx context.Context, kind, id string) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.PublishLedgerEvent(ctx, kind, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"kind", kind, "id", id, "error", err)
	}
}
