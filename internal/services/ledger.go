package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"finman/internal/core"
	"finman/internal/journal"
	"finman/internal/log"
)

// Publisher announces accepted records to the outside world.
type Publisher interface {
	PublishTransaction(ctx context.Context, t core.Transaction, balance float64) error
}

// Receipt is the outcome of an accepted income or expense.
type Receipt struct {
	Transaction core.Transaction
	Balance     float64
	Ref         string
}

// String renders the confirmation shown to the user.
func (r Receipt) String() string {
	amount := core.FormatAmount(r.Transaction.Amount)
	balance := core.FormatAmount(r.Balance)
	if r.Transaction.Kind == core.Expense {
		return fmt.Sprintf("Added expense of %s for %s. New balance: %s", amount, r.Transaction.Label, balance)
	}
	return fmt.Sprintf("Added income of %s from %s. New balance: %s", amount, r.Transaction.Label, balance)
}

// Ledger owns the session's records, through its journal, and the running
// balance derived from them. Balance always equals the sum of incomes minus
// the sum of accepted expenses; rejected operations change nothing.
type Ledger struct {
	journal   journal.Journal
	publisher Publisher
	logger    *log.Logger
	balance   float64
}

// NewLedger creates an empty ledger. publisher and logger may be nil.
func NewLedger(j journal.Journal, publisher Publisher, logger *log.Logger) *Ledger {
	if logger == nil {
		logger = log.Discard()
	}
	return &Ledger{
		journal:   j,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentLedger),
	}
}

// AddIncome records an income from source and raises the balance.
func (l *Ledger) AddIncome(ctx context.Context, source string, amount float64) (Receipt, error) {
	t := core.NewIncome(strings.TrimSpace(source), amount)
	if err := t.Validate(); err != nil {
		return Receipt{}, err
	}
	return l.record(ctx, log.OpAddIncome, t)
}

// AddExpense records an expense unless amount exceeds the current balance,
// in which case core.ErrInsufficientBalance is returned and nothing changes.
func (l *Ledger) AddExpense(ctx context.Context, description string, amount float64) (Receipt, error) {
	t := core.NewExpense(strings.TrimSpace(description), amount)
	if err := t.Validate(); err != nil {
		return Receipt{}, err
	}
	if amount > l.balance {
		l.logger.LogFields(ctx, slog.LevelInfo, "Expense rejected",
			log.NewFields().
				WithOperation(log.OpAddExpense).
				WithTransaction(string(t.Kind), t.Label, t.Amount).
				WithBalance(l.balance).
				WithError(core.ErrInsufficientBalance))
		return Receipt{}, core.ErrInsufficientBalance
	}
	return l.record(ctx, log.OpAddExpense, t)
}

func (l *Ledger) record(ctx context.Context, op string, t core.Transaction) (Receipt, error) {
	// Append first: the balance only moves once the record is stored.
	ref, err := l.journal.Append(ctx, t)
	if err != nil {
		return Receipt{}, fmt.Errorf("append %s: %w", t.Kind, err)
	}
	l.balance += t.Signed()

	l.logger.LogFields(ctx, slog.LevelInfo, "Transaction recorded",
		log.NewFields().
			WithOperation(op).
			WithTransaction(string(t.Kind), t.Label, t.Amount).
			WithBalance(l.balance).
			WithRef(ref))

	if l.publisher != nil {
		if err := l.publisher.PublishTransaction(ctx, t, l.balance); err != nil {
			// The record is stored; a lost notification is not fatal.
			l.logger.LogFields(ctx, slog.LevelError, "Failed to publish transaction",
				log.NewFields().WithOperation(log.OpPublish).WithError(err))
		}
	}

	return Receipt{Transaction: t, Balance: l.balance, Ref: ref}, nil
}

// CurrentBalance returns the running balance.
func (l *Ledger) CurrentBalance() float64 {
	return l.balance
}

// Transactions returns the session's records in insertion order.
func (l *Ledger) Transactions(ctx context.Context) ([]core.Transaction, error) {
	items, err := l.journal.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return items, nil
}

// ListTransactions returns one display line per record, in insertion order.
func (l *Ledger) ListTransactions(ctx context.Context) ([]string, error) {
	items, err := l.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(items))
	for i, t := range items {
		lines[i] = t.String()
	}
	return lines, nil
}
