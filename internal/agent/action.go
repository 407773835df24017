package agent

import (
	"time"

	"github.com/shopspring/decimal"
)

// Action identifies one member of the closed set of ledger actions a message
// can resolve to.
type Action string

const (
	ActionAddExpense     Action = "add_expense"
	ActionAddBill        Action = "add_bill"
	ActionSetSavingsGoal Action = "set_savings_goal"
	ActionGetSummary     Action = "get_summary"
	ActionUnknown        Action = "unknown"
)

// ParseAction maps an action name to its Action, reporting whether the name
// belongs to the executable set. "unknown" is not executable.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionAddExpense, ActionAddBill, ActionSetSavingsGoal, ActionGetSummary:
		return Action(s), true
	default:
		return ActionUnknown, false
	}
}

// Params is the union of parameter shapes across the four actions. Decimal
// fields unmarshal from JSON numbers as well as strings, which covers both
// resolver tiers.
type Params struct {
	Amount              decimal.Decimal `json:"amount"`
	Category            string          `json:"category"`
	Description         string          `json:"description"`
	Recurring           bool            `json:"recurring"`
	Name                string          `json:"name"`
	DueDate             string          `json:"due_date"`
	TargetAmount        decimal.Decimal `json:"target_amount"`
	TargetDate          string          `json:"target_date"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
}

// Resolution couples a recognized action with its validated parameters.
type Resolution struct {
	Action Action
	Params Params
}

// Response is the uniform reply shape for every processed message. Every
// path through the pipeline, including failures, produces one.
type Response struct {
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
