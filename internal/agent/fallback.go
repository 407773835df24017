package agent

import (
	"fmt"
	"strings"
	"time"

	"finagent/internal/extract"
	"finagent/internal/ledger"

	"github.com/shopspring/decimal"
)

// Guidance messages returned when the fallback cannot find a required
// amount. No mutation happens on these paths.
const (
	expenseAmountGuidance = "I couldn't find an amount in your message. Please try: 'I spent $50 on groceries'"
	billAmountGuidance    = "I couldn't find an amount in your message. Please try: 'Add rent bill of $1200 due 2024-01-01'"
	goalAmountGuidance    = "I couldn't find a target amount in your message. Please try: 'Save $5000 for vacation by 2024-12-31'"
)

const helpTemplate = `I received: "%s". I can help you:
- Add expenses (e.g., "I spent $50 on groceries")
- Add bills (e.g., "Add rent bill of $1200 due 2024-01-01")
- Set savings goals (e.g., "Save $5000 for vacation by 2024-12-31")
- Get financial summary (e.g., "Show me my financial summary")`

var twelve = decimal.NewFromInt(12)

// classifyIntent assigns the message to an action by keyword matching in a
// fixed priority order. The order is a deliberate tie-break: a message
// containing both "spent" and "save" resolves to add_expense.
func classifyIntent(message string) Action {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, "add expense", "spent", "bought"):
		return ActionAddExpense
	case containsAny(lower, "add bill", "recurring bill", "due"):
		return ActionAddBill
	case containsAny(lower, "savings goal", "save", "target"):
		return ActionSetSavingsGoal
	case containsAny(lower, "summary", "overview", "how much"):
		return ActionGetSummary
	default:
		return ActionUnknown
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// resolveFallback classifies the message deterministically and extracts its
// parameters. A non-empty guidance string means the request terminates with
// that message and no mutation; otherwise the resolution is executable.
func resolveFallback(message string, now time.Time) (Resolution, string) {
	switch classifyIntent(message) {
	case ActionAddExpense:
		return fallbackExpense(message)
	case ActionAddBill:
		return fallbackBill(message, now)
	case ActionSetSavingsGoal:
		return fallbackGoal(message, now)
	case ActionGetSummary:
		return Resolution{Action: ActionGetSummary}, ""
	default:
		return Resolution{Action: ActionUnknown}, fmt.Sprintf(helpTemplate, message)
	}
}

func fallbackExpense(message string) (Resolution, string) {
	amount, ok := extract.Amount(message)
	if !ok {
		return Resolution{}, expenseAmountGuidance
	}

	category, ok := extract.Category(message)
	if !ok {
		category = "general"
	}
	description, ok := extract.Description(message)
	if !ok {
		description = fmt.Sprintf("Expense of $%s", amount)
	}

	return Resolution{
		Action: ActionAddExpense,
		Params: Params{
			Amount:      amount,
			Category:    category,
			Description: description,
			Recurring:   false,
		},
	}, ""
}

func fallbackBill(message string, now time.Time) (Resolution, string) {
	amount, ok := extract.Amount(message)
	if !ok {
		return Resolution{}, billAmountGuidance
	}

	dueDate, ok := extract.Date(message)
	if !ok {
		dueDate = now.AddDate(0, 0, 30).Format(ledger.DateLayout)
	}
	category, ok := extract.Category(message)
	if !ok {
		category = "utilities"
	}

	return Resolution{
		Action: ActionAddBill,
		Params: Params{
			Name:      extract.BillName(message),
			Amount:    amount,
			DueDate:   dueDate,
			Category:  category,
			Recurring: true,
		},
	}, ""
}

func fallbackGoal(message string, now time.Time) (Resolution, string) {
	target, ok := extract.Amount(message)
	if !ok {
		return Resolution{}, goalAmountGuidance
	}

	targetDate, ok := extract.Date(message)
	if !ok {
		targetDate = now.AddDate(0, 0, 365).Format(ledger.DateLayout)
	}

	return Resolution{
		Action: ActionSetSavingsGoal,
		Params: Params{
			Name:                extract.GoalName(message),
			TargetAmount:        target,
			TargetDate:          targetDate,
			MonthlyContribution: target.Div(twelve).Ceil(),
		},
	}, ""
}
