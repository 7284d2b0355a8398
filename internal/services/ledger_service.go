package services

import (
	"context"
	"log/slog"

	"fintrack/internal/core"
	"fintrack/internal/events"
	"fintrack/internal/ledger"
)

// EventPublisher announces ledger mutations to interested consumers.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, event *events.LedgerEvent) error
	Close() error
}

// LedgerService orchestrates ledger mutations and change-event publishing.
// The publisher is optional; without one, mutations are local-only.
type LedgerService struct {
	ledger    *ledger.Ledger
	publisher EventPublisher
}

func NewLedgerService(l *ledger.Ledger, publisher EventPublisher) *LedgerService {
	return &LedgerService{ledger: l, publisher: publisher}
}

// List returns the account's transactions.
func (s *LedgerService) List(ctx context.Context, email string) ([]core.Transaction, error) {
	return s.ledger.List(ctx, email)
}

// Append persists the transaction locally first, then announces it. A
// publish failure never fails the mutation; the store is the source of
// truth and the event stream is best-effort.
func (s *LedgerService) Append(ctx context.Context, email string, d ledger.Draft) (core.Transaction, error) {
	tx, err := s.ledger.Append(ctx, email, d)
	if err != nil {
		return core.Transaction{}, err
	}
	s.publish(ctx, events.NewLedgerEvent(events.ActionAppended, email, tx.ID))
	return tx, nil
}

// Delete removes a transaction by id; a missing id stays a no-op and
// publishes nothing.
func (s *LedgerService) Delete(ctx context.Context, email, id string) (bool, error) {
	removed, err := s.ledger.DeleteByID(ctx, email, id)
	if err != nil {
		return false, err
	}
	if removed {
		s.publish(ctx, events.NewLedgerEvent(events.ActionDeleted, email, id))
	}
	return removed, nil
}

// Erase empties the account's ledger, gated on the confirmation token.
func (s *LedgerService) Erase(ctx context.Context, email string, confirm ledger.Confirmation) error {
	if err := s.ledger.EraseAll(ctx, email, confirm); err != nil {
		return err
	}
	s.publish(ctx, events.NewLedgerEvent(events.ActionErased, email, ""))
	return nil
}

func (s *LedgerService) publish(ctx context.Context, event *events.LedgerEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerEvent(ctx, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish ledger event",
			"error", err,
			"action", event.Action,
			"email", event.Email)
	}
}

// Close releases the publisher connection, if any.
func (s *LedgerService) Close() error {
	if s.publisher == nil {
		return nil
	}
	return s.publisher.Close()
}
