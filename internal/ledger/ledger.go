// Package ledger holds the persisted financial entities and the typed access
// layer over the key-value store that owns them.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"finagent/internal/kv"
)

// Storage keys. One ledger owns exactly these four entries.
const (
	keyInitialized = "tables_initialized"
	keyExpenses    = "expenses"
	keyBills       = "bills"
	keyGoals       = "savings_goals"
)

// Ledger is the typed view over one financial record set. Append methods do
// read-append-write and rely on the orchestrator serializing mutations.
type Ledger struct {
	store kv.Store
}

func New(store kv.Store) *Ledger {
	return &Ledger{store: store}
}

// Init creates the three collections as empty sequences exactly once per
// ledger lifetime. Subsequent calls are no-ops.
func (l *Ledger) Init(ctx context.Context) error {
	_, err := l.store.Get(ctx, keyInitialized)
	if err == nil {
		return nil
	}
	if !errors.Is(err, kv.ErrNotFound) {
		return fmt.Errorf("check init marker: %w", err)
	}

	if err := l.store.Put(ctx, keyInitialized, []byte("true")); err != nil {
		return fmt.Errorf("write init marker: %w", err)
	}
	for _, key := range []string{keyExpenses, keyBills, keyGoals} {
		if err := l.store.Put(ctx, key, []byte("[]")); err != nil {
			return fmt.Errorf("initialize %s: %w", key, err)
		}
	}
	return nil
}

// Expenses returns the stored expense collection. A missing key reads as an
// empty collection.
func (l *Ledger) Expenses(ctx context.Context) ([]Expense, error) {
	var out []Expense
	if err := l.read(ctx, keyExpenses, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *Ledger) Bills(ctx context.Context) ([]Bill, error) {
	var out []Bill
	if err := l.read(ctx, keyBills, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *Ledger) Goals(ctx context.Context) ([]SavingsGoal, error) {
	var out []SavingsGoal
	if err := l.read(ctx, keyGoals, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *Ledger) AppendExpense(ctx context.Context, e Expense) error {
	items, err := l.Expenses(ctx)
	if err != nil {
		return err
	}
	return l.write(ctx, keyExpenses, append(items, e))
}

func (l *Ledger) AppendBill(ctx context.Context, b Bill) error {
	items, err := l.Bills(ctx)
	if err != nil {
		return err
	}
	return l.write(ctx, keyBills, append(items, b))
}

func (l *Ledger) AppendGoal(ctx context.Context, g SavingsGoal) error {
	items, err := l.Goals(ctx)
	if err != nil {
		return err
	}
	return l.write(ctx, keyGoals, append(items, g))
}

func (l *Ledger) read(ctx context.Context, key string, out any) error {
	raw, err := l.store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (l *Ledger) write(ctx context.Context, key string, items any) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := l.store.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
