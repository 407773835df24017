package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"finagent/internal/kv"
	"finagent/internal/ledger"

	"github.com/shopspring/decimal"
)

// fakeLLM scripts the completion capability.
type fakeLLM struct {
	reply string
	err   error
}

func (f fakeLLM) Complete(ctx context.Context, system, user string) (string, error) {
	return f.reply, f.err
}

func newTestOrchestrator(client fakeLLM) *Orchestrator {
	o := New(ledger.New(kv.NewMemoryStore()), client, nil)
	o.now = func() time.Time { return testNow }
	return o
}

func TestResolvePrimaryValidReply(t *testing.T) {
	o := newTestOrchestrator(fakeLLM{
		reply: `{"action": "add_expense", "parameters": {"amount": 50, "category": "food", "description": "groceries", "recurring": false}}`,
	})

	res, ok := o.resolvePrimary(context.Background(), "I spent $50 on groceries")
	if !ok {
		t.Fatal("expected primary resolution to succeed")
	}
	if res.Action != ActionAddExpense {
		t.Errorf("action = %s, want add_expense", res.Action)
	}
	if !res.Params.Amount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("amount = %s, want 50", res.Params.Amount)
	}
	if res.Params.Category != "food" {
		t.Errorf("category = %q, want food", res.Params.Category)
	}
}

func TestResolvePrimaryStringAmount(t *testing.T) {
	// Models sometimes quote numbers; the decimal fields accept both.
	o := newTestOrchestrator(fakeLLM{
		reply: `{"action": "set_savings_goal", "parameters": {"name": "Vacation Fund", "target_amount": "6000", "target_date": "2025-01-01"}}`,
	})

	res, ok := o.resolvePrimary(context.Background(), "save for vacation")
	if !ok {
		t.Fatal("expected primary resolution to succeed")
	}
	if !res.Params.TargetAmount.Equal(decimal.NewFromInt(6000)) {
		t.Errorf("target = %s, want 6000", res.Params.TargetAmount)
	}
}

func TestResolvePrimaryFencedReply(t *testing.T) {
	o := newTestOrchestrator(fakeLLM{
		reply: "```json\n{\"action\": \"get_summary\", \"parameters\": {}}\n```",
	})

	res, ok := o.resolvePrimary(context.Background(), "summary please")
	if !ok {
		t.Fatal("expected fenced JSON to be tolerated")
	}
	if res.Action != ActionGetSummary {
		t.Errorf("action = %s, want get_summary", res.Action)
	}
}

func TestResolvePrimaryUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		client fakeLLM
	}{
		{"transport error", fakeLLM{err: errors.New("connection refused")}},
		{"malformed JSON", fakeLLM{reply: "I think you spent money on food!"}},
		{"truncated JSON", fakeLLM{reply: `{"action": "add_exp`}},
		{"unrecognized action", fakeLLM{reply: `{"action": "delete_everything", "parameters": {}}`}},
		{"empty reply", fakeLLM{reply: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrchestrator(tt.client)
			if _, ok := o.resolvePrimary(context.Background(), "whatever"); ok {
				t.Error("expected primary resolution to report unavailable")
			}
		})
	}
}

func TestResolvePrimaryNilClient(t *testing.T) {
	o := New(ledger.New(kv.NewMemoryStore()), nil, nil)
	if _, ok := o.resolvePrimary(context.Background(), "anything"); ok {
		t.Error("nil client must report unavailable")
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`},
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding prose", `Sure! {"a": {"b": 2}} Hope that helps.`, `{"a": {"b": 2}}`},
		{"no object", "nope", "nope"},
		{"unbalanced", `{"a": 1`, `{"a": 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSONObject(tt.in); got != tt.want {
				t.Errorf("extractJSONObject(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
