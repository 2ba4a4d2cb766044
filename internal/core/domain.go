package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	Kind string

	// Transaction is one immutable income or expense entry. Label holds the
	// income source or the expense description depending on Kind.
	Transaction struct {
		Kind   Kind
		Label  string
		Amount float64
	}
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrEmptyLabel          = errors.New("empty label")
	ErrInvalidKind         = errors.New("invalid transaction kind")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// NewIncome builds an income record for the given source.
func NewIncome(source string, amount float64) Transaction {
	return Transaction{Kind: Income, Label: source, Amount: amount}
}

// NewExpense builds an expense record for the given description.
func NewExpense(description string, amount float64) Transaction {
	return Transaction{Kind: Expense, Label: description, Amount: amount}
}

// IsValid returns true if the kind is income or expense
func (k Kind) IsValid() bool {
	switch k {
	case Income, Expense:
		return true
	default:
		return false
	}
}

// Title returns the capitalized kind as shown in listings.
func (k Kind) Title() string {
	switch k {
	case Income:
		return "Income"
	case Expense:
		return "Expense"
	default:
		return string(k)
	}
}

// ValidateAmount rejects negative (including negative zero), NaN and infinite amounts.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || math.Signbit(amount) {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Kind.IsValid() {
		return ErrInvalidKind
	}
	if strings.TrimSpace(t.Label) == "" {
		return ErrEmptyLabel
	}
	return ValidateAmount(t.Amount)
}

// String renders the record as a listing line, e.g. "Income: Job, Amount: 1000.0".
func (t Transaction) String() string {
	return fmt.Sprintf("%s: %s, Amount: %s", t.Kind.Title(), t.Label, FormatAmount(t.Amount))
}

// Signed returns the amount's effect on the balance.
func (t Transaction) Signed() float64 {
	if t.Kind == Expense {
		return -t.Amount
	}
	return t.Amount
}
