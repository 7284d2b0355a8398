// Package ledger implements the per-account transaction ledger on top of the
// user directory document. Every operation re-reads the directory before
// acting and persists the whole document after mutating; that re-fetch is the
// only defense against stale reads across concurrent contexts, so no result
// here is ever cached.
package ledger

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/directory"
)

// Draft is the validated boundary input for a new transaction, before the
// ledger assigns an id. Build one from raw form input with ParseDraft-style
// code at the HTTP boundary; nothing unvalidated enters the ledger.
type Draft struct {
	Type        core.TransactionType
	Amount      float64
	Category    string
	Date        core.Date
	Description string
}

// Confirmation is an explicit capability for destructive operations. The UI
// confirmation dialog produces one; EraseAll refuses to run without it.
type Confirmation struct {
	confirmed bool
}

func Confirmed() Confirmation {
	return Confirmation{confirmed: true}
}

type Ledger struct {
	dir *directory.Directory
	now func() time.Time
}

func New(dir *directory.Directory) *Ledger {
	return NewWithClock(dir, time.Now)
}

// NewWithClock injects the clock used for id generation.
func NewWithClock(dir *directory.Directory, now func() time.Time) *Ledger {
	return &Ledger{dir: dir, now: now}
}

// List returns the account's transactions, re-reading the full directory.
func (l *Ledger) List(ctx context.Context, email string) ([]core.Transaction, error) {
	return l.dir.Transactions(ctx, email)
}

// Append validates the draft, assigns a creation-timestamp id, and persists
// the grown ledger. The stored amount is always the absolute value of the
// input; a blank category defaults to "Other".
func (l *Ledger) Append(ctx context.Context, email string, d Draft) (core.Transaction, error) {
	if err := d.Type.Validate(); err != nil {
		return core.Transaction{}, err
	}
	amount := math.Abs(d.Amount)
	if amount == 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return core.Transaction{}, core.ErrInvalidAmount
	}
	category := strings.TrimSpace(d.Category)
	if category == "" {
		category = core.DefaultCategory
	}
	if err := d.Date.Validate(); err != nil {
		return core.Transaction{}, err
	}

	txs, err := l.dir.Transactions(ctx, email)
	if err != nil {
		return core.Transaction{}, err
	}

	tx := core.Transaction{
		ID:          l.uniqueID(txs),
		Type:        d.Type,
		Amount:      amount,
		Category:    category,
		Date:        d.Date,
		Description: strings.TrimSpace(d.Description),
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	txs = append(txs, tx)
	if err := l.dir.SaveTransactions(ctx, email, txs); err != nil {
		return core.Transaction{}, err
	}

	slog.InfoContext(ctx, "Transaction appended",
		"email", email,
		"id", tx.ID,
		"type", string(tx.Type),
		"amount", tx.Amount,
		"category", tx.Category)
	return tx, nil
}

// uniqueID derives an id from the creation timestamp, advancing a
// millisecond at a time on collision within the same ledger.
func (l *Ledger) uniqueID(existing []core.Transaction) string {
	ts := l.now()
	for {
		id := core.NewTransactionID(ts)
		taken := false
		for _, tx := range existing {
			if tx.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		ts = ts.Add(time.Millisecond)
	}
}

// DeleteByID removes the matching transaction. A missing id is a no-op, not
// an error; the returned bool reports whether anything was removed.
func (l *Ledger) DeleteByID(ctx context.Context, email, id string) (bool, error) {
	txs, err := l.dir.Transactions(ctx, email)
	if err != nil {
		return false, err
	}

	kept := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	removed := len(kept) != len(txs)

	if err := l.dir.SaveTransactions(ctx, email, kept); err != nil {
		return false, err
	}
	if removed {
		slog.InfoContext(ctx, "Transaction deleted", "email", email, "id", id)
	}
	return removed, nil
}

// EraseAll irreversibly replaces the ledger with an empty list. It refuses
// to run without an explicit Confirmation.
func (l *Ledger) EraseAll(ctx context.Context, email string, confirm Confirmation) error {
	if !confirm.confirmed {
		return core.ErrNotConfirmed
	}
	if _, err := l.dir.Transactions(ctx, email); err != nil {
		return err
	}
	if err := l.dir.SaveTransactions(ctx, email, []core.Transaction{}); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Ledger erased", "email", email)
	return nil
}
