package journal

import (
	"context"

	"finman/internal/core"
)

// Ports for journal backends. A journal is the append-only, session-scoped
// sequence of records backing the ledger.
type (
	Writer interface {
		Append(ctx context.Context, t core.Transaction) (ref string, err error)
	}

	// Lister returns the records of the current session in insertion order.
	Lister interface {
		List(ctx context.Context) ([]core.Transaction, error)
	}

	Journal interface {
		Writer
		Lister
	}
)
