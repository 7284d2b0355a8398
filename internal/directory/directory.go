// Package directory implements the user directory: one JSON document in the
// key-value store mapping normalized emails to account records. The document
// is the sole source of truth; every read re-enters the store so externally
// modified state is always observed. There is deliberately no caching layer.
package directory

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/core"
	"fintrack/internal/kv"
)

type Directory struct {
	store kv.Store
}

func New(store kv.Store) *Directory {
	return &Directory{store: store}
}

// accounts re-reads the whole directory document. An absent or corrupt
// document degrades to an empty directory.
func (d *Directory) accounts(ctx context.Context) map[string]core.Account {
	return kv.Load(ctx, d.store, kv.UsersKey, map[string]core.Account{})
}

func (d *Directory) save(ctx context.Context, accounts map[string]core.Account) error {
	if err := kv.Save(ctx, d.store, kv.UsersKey, accounts); err != nil {
		return fmt.Errorf("persist user directory: %w", err)
	}
	return nil
}

// Register creates a new account with an empty transaction list. The email
// is lowercase-normalized before lookup and storage; a second signup with
// the same email, in any casing, fails with ErrAccountExists.
func (d *Directory) Register(ctx context.Context, name, email, password string) error {
	if err := core.ValidateRegistration(name, email, password); err != nil {
		return err
	}
	key := core.NormalizeEmail(email)

	accounts := d.accounts(ctx)
	if _, exists := accounts[key]; exists {
		return core.ErrAccountExists
	}

	accounts[key] = core.Account{
		Name:         name,
		Email:        key,
		Password:     password, // plaintext, demo limitation
		Transactions: []core.Transaction{},
	}
	if err := d.save(ctx, accounts); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Account registered", "email", key)
	return nil
}

// Authenticate resolves an account by normalized email and exact password
// equality. Absent account and password mismatch are indistinguishable to
// the caller.
func (d *Directory) Authenticate(ctx context.Context, email, password string) (core.Account, error) {
	key := core.NormalizeEmail(email)
	account, ok := d.accounts(ctx)[key]
	if !ok || account.Password != password {
		return core.Account{}, core.ErrInvalidCredentials
	}
	return account, nil
}

// Lookup returns the account stored under the normalized email.
func (d *Directory) Lookup(ctx context.Context, email string) (core.Account, bool) {
	account, ok := d.accounts(ctx)[core.NormalizeEmail(email)]
	return account, ok
}

// Transactions re-reads the directory and returns the account's ledger.
func (d *Directory) Transactions(ctx context.Context, email string) ([]core.Transaction, error) {
	account, ok := d.accounts(ctx)[core.NormalizeEmail(email)]
	if !ok {
		return nil, core.ErrAccountNotFound
	}
	return account.Transactions, nil
}

// SaveTransactions replaces the account's transaction list and persists the
// whole directory document.
func (d *Directory) SaveTransactions(ctx context.Context, email string, txs []core.Transaction) error {
	key := core.NormalizeEmail(email)
	accounts := d.accounts(ctx)
	account, ok := accounts[key]
	if !ok {
		return core.ErrAccountNotFound
	}
	account.Transactions = txs
	accounts[key] = account
	return d.save(ctx, accounts)
}
