package directory

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/core"
	"fintrack/internal/kv"
)

// SignIn persists the session reference: the signed-in account's normalized
// email under its own document key.
func (d *Directory) SignIn(ctx context.Context, email string) error {
	key := core.NormalizeEmail(email)
	if err := kv.Save(ctx, d.store, kv.SessionKey, key); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	slog.InfoContext(ctx, "Session started", "email", key)
	return nil
}

// SignOut clears the session reference.
func (d *Directory) SignOut(ctx context.Context) error {
	if err := d.store.Remove(ctx, kv.SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// CurrentAccount resolves the session to an account. The directory is
// re-read fresh on every call. A session pointing at a missing account is
// corrupt state: it is cleared as a side effect and reported as no session.
func (d *Directory) CurrentAccount(ctx context.Context) (core.Account, error) {
	email := kv.Load(ctx, d.store, kv.SessionKey, "")
	if email == "" {
		return core.Account{}, core.ErrNoSession
	}

	account, ok := d.accounts(ctx)[email]
	if !ok {
		slog.WarnContext(ctx, "Session references missing account, clearing", "email", email)
		if err := d.store.Remove(ctx, kv.SessionKey); err != nil {
			slog.WarnContext(ctx, "Failed clearing corrupt session", "error", err)
		}
		return core.Account{}, core.ErrNoSession
	}
	return account, nil
}
