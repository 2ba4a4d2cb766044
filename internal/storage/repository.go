package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"finman/internal/core"
	"finman/internal/log"

	_ "modernc.org/sqlite"
)

// MemoryDSN keeps the whole database inside the process.
const MemoryDSN = ":memory:"

// SQLiteRepository is a journal backend. Every row is tagged with the
// session ID of the repository that wrote it and only rows of that session
// are ever read back, so a file database behaves as an append-only archive.
type SQLiteRepository struct {
	db        *sql.DB
	sessionID string
}

func NewSQLiteRepository(dbPath, sessionID string) (*SQLiteRepository, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("session id is required")
	}

	if !IsInMemory(dbPath) {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection keeps an in-memory database alive and shared.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:        db,
		sessionID: sessionID,
	}, nil
}

// IsInMemory reports whether dsn points to a non-file SQLite database.
func IsInMemory(dsn string) bool {
	return dsn == MemoryDSN || strings.HasPrefix(dsn, "file::memory:") || strings.Contains(dsn, "mode=memory")
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements journal.Writer
func (r *SQLiteRepository) Append(ctx context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (session_id, kind, label, amount) VALUES (?, ?, ?, ?)`,
		r.sessionID, string(t.Kind), t.Label, t.Amount)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("last insert id: %w", err)
	}

	ref := strconv.FormatInt(id, 10)
	log.FromContext(ctx).WithComponent(log.ComponentStorage).LogFields(ctx, slog.LevelDebug, "Transaction saved to SQLite",
		log.NewFields().WithTransaction(string(t.Kind), t.Label, t.Amount).WithRef(ref))

	return ref, nil
}

// List implements journal.Lister
func (r *SQLiteRepository) List(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT kind, label, amount FROM transactions WHERE session_id = ? ORDER BY id`,
		r.sessionID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			kind   string
			label  string
			amount float64
		)
		if err := rows.Scan(&kind, &label, &amount); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, core.Transaction{
			Kind:   core.Kind(kind),
			Label:  label,
			Amount: amount,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return out, nil
}

// Count returns the number of rows written by this session.
func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE session_id = ?`, r.sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}
