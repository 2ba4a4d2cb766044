// Package console implements the interactive menu driving the ledger.
//
// The loop is an explicit state machine over a reader and a writer, so it
// can be exercised with scripted input as well as a real terminal.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"finman/internal/core"
	"finman/internal/log"
	"finman/internal/services"
)

// Ledger is the set of ledger operations the menu exposes.
type Ledger interface {
	AddIncome(ctx context.Context, source string, amount float64) (services.Receipt, error)
	AddExpense(ctx context.Context, description string, amount float64) (services.Receipt, error)
	CurrentBalance() float64
	ListTransactions(ctx context.Context) ([]string, error)
}

type State int

const (
	StateMenuPrompt State = iota
	StateAwaitChoice
	StateCollectIncome
	StateCollectExpense
	StateShowBalance
	StateShowTransactions
	StateExit
)

func (s State) String() string {
	switch s {
	case StateMenuPrompt:
		return "menu_prompt"
	case StateAwaitChoice:
		return "await_choice"
	case StateCollectIncome:
		return "collect_income"
	case StateCollectExpense:
		return "collect_expense"
	case StateShowBalance:
		return "show_balance"
	case StateShowTransactions:
		return "show_transactions"
	case StateExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Menu selectors
const (
	SelectIncome       = 1
	SelectExpense      = 2
	SelectBalance      = 3
	SelectTransactions = 4
	SelectExit         = 0
)

var selectorStates = map[int]State{
	SelectIncome:       StateCollectIncome,
	SelectExpense:      StateCollectExpense,
	SelectBalance:      StateShowBalance,
	SelectTransactions: StateShowTransactions,
	SelectExit:         StateExit,
}

// Session runs one interactive conversation against a ledger.
type Session struct {
	ledger Ledger
	in     io.Reader
	out    io.Writer
	logger *log.Logger
	input  *lineReader
}

func NewSession(ledger Ledger, in io.Reader, out io.Writer, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Discard()
	}
	return &Session{
		ledger: ledger,
		in:     in,
		out:    out,
		logger: logger.WithComponent(log.ComponentConsole),
	}
}

// Run drives the menu until the exit selector is chosen or input ends, both
// of which return nil. A cancelled context ends the session with ctx.Err().
func (s *Session) Run(ctx context.Context) error {
	s.input = newLineReader(s.in)
	defer s.input.stop()

	state := StateMenuPrompt
	for state != StateExit {
		next, err := s.step(ctx, state)
		if errors.Is(err, io.EOF) {
			s.logger.DebugContext(ctx, "Input closed, leaving session", log.FieldState, state.String())
			return nil
		}
		if err != nil {
			return err
		}
		state = next
	}
	s.logger.DebugContext(ctx, "Session finished")
	return nil
}

func (s *Session) step(ctx context.Context, state State) (State, error) {
	switch state {
	case StateMenuPrompt:
		s.printMenu()
		return StateAwaitChoice, nil
	case StateAwaitChoice:
		return s.awaitChoice(ctx)
	case StateCollectIncome:
		return StateMenuPrompt, s.collectIncome(ctx)
	case StateCollectExpense:
		return StateMenuPrompt, s.collectExpense(ctx)
	case StateShowBalance:
		balance := s.ledger.CurrentBalance()
		s.logger.LogFields(ctx, slog.LevelDebug, "Balance shown",
			log.NewFields().WithOperation(log.OpBalance).WithBalance(balance))
		fmt.Fprintf(s.out, "%s %s\n", MsgCurrentBalance, core.FormatAmount(balance))
		return StateMenuPrompt, nil
	case StateShowTransactions:
		s.showTransactions(ctx)
		return StateMenuPrompt, nil
	default:
		return StateExit, fmt.Errorf("unknown state %d", state)
	}
}

func (s *Session) printMenu() {
	fmt.Fprint(s.out, Menu)
	fmt.Fprint(s.out, PromptChoice)
}

func (s *Session) awaitChoice(ctx context.Context) (State, error) {
	line, err := s.input.next(ctx)
	if errors.Is(err, errLineTooLong) {
		fmt.Fprintln(s.out, MsgInvalidChoice)
		return StateMenuPrompt, nil
	}
	if err != nil {
		return StateExit, err
	}
	next, ok := parseSelector(line)
	if !ok {
		s.logger.DebugContext(ctx, "Unrecognized selector", log.FieldSelector, line)
		fmt.Fprintln(s.out, MsgInvalidChoice)
		return StateMenuPrompt, nil
	}
	return next, nil
}

// parseSelector maps a typed selector to the state it opens.
func parseSelector(line string) (State, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return StateMenuPrompt, false
	}
	next, ok := selectorStates[n]
	return next, ok
}

func (s *Session) collectIncome(ctx context.Context) error {
	source, amount, err := s.collectFields(ctx, PromptIncomeSource, PromptIncomeAmount)
	if err != nil {
		return err
	}
	receipt, err := s.ledger.AddIncome(ctx, source, amount)
	s.report(ctx, log.OpAddIncome, receipt, err)
	return nil
}

func (s *Session) collectExpense(ctx context.Context) error {
	description, amount, err := s.collectFields(ctx, PromptExpenseDescription, PromptExpenseAmount)
	if err != nil {
		return err
	}
	receipt, err := s.ledger.AddExpense(ctx, description, amount)
	s.report(ctx, log.OpAddExpense, receipt, err)
	return nil
}

// collectFields asks for a free-text line, then an amount. A malformed amount
// is asked for again.
func (s *Session) collectFields(ctx context.Context, textPrompt, amountPrompt string) (string, float64, error) {
	text, err := s.ask(ctx, textPrompt, MsgLineTooLong)
	if err != nil {
		return "", 0, err
	}

	for {
		line, err := s.ask(ctx, amountPrompt, MsgInvalidAmount)
		if err != nil {
			return "", 0, err
		}
		amount, err := core.ParseAmount(line)
		if err == nil {
			return text, amount, nil
		}
		fmt.Fprintln(s.out, MsgInvalidAmount)
	}
}

// ask prints prompt and returns the next non-blank line, trimmed. A discarded
// overlong line is answered with tooLongMsg and the prompt is repeated.
func (s *Session) ask(ctx context.Context, prompt, tooLongMsg string) (string, error) {
	for {
		fmt.Fprint(s.out, prompt)
		text, err := s.input.nextText(ctx)
		if !errors.Is(err, errLineTooLong) {
			return text, err
		}
		s.logger.DebugContext(ctx, "Discarded overlong input line", "max_bytes", maxLineBytes)
		fmt.Fprintln(s.out, tooLongMsg)
	}
}

func (s *Session) report(ctx context.Context, op string, receipt services.Receipt, err error) {
	switch {
	case err == nil:
		fmt.Fprintln(s.out, receipt.String())
	case errors.Is(err, core.ErrInsufficientBalance):
		fmt.Fprintln(s.out, MsgInsufficientBalance)
	case errors.Is(err, core.ErrInvalidAmount):
		fmt.Fprintln(s.out, MsgInvalidAmount)
	case errors.Is(err, core.ErrEmptyLabel):
		fmt.Fprintln(s.out, MsgEmptyLabel)
	default:
		s.logger.LogFields(ctx, slog.LevelError, "Ledger operation failed",
			log.NewFields().WithOperation(op).WithError(err))
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *Session) showTransactions(ctx context.Context) {
	lines, err := s.ledger.ListTransactions(ctx)
	if err != nil {
		s.report(ctx, log.OpList, services.Receipt{}, err)
		return
	}
	s.logger.LogFields(ctx, slog.LevelDebug, "Transactions listed",
		log.NewFields().WithOperation(log.OpList).WithRecordCount(len(lines)))
	fmt.Fprintln(s.out, MsgTransactionsHeader)
	if len(lines) == 0 {
		fmt.Fprintln(s.out, MsgNoTransactions)
		return
	}
	for _, line := range lines {
		fmt.Fprintln(s.out, line)
	}
}
