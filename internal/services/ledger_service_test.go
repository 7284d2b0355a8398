package services

import (
	"context"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/directory"
	"fintrack/internal/events"
	"fintrack/internal/kv"
	"fintrack/internal/ledger"
)

type capturingPublisher struct {
	published []*events.LedgerEvent
	fail      error
}

func (p *capturingPublisher) PublishLedgerEvent(_ context.Context, e *events.LedgerEvent) error {
	if p.fail != nil {
		return p.fail
	}
	p.published = append(p.published, e)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func newTestService(t *testing.T, pub EventPublisher) *LedgerService {
	t.Helper()
	dir := directory.New(kv.NewMemory())
	if err := dir.Register(context.Background(), "Alice", "alice@x.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	return NewLedgerService(ledger.New(dir), pub)
}

func testDraft() ledger.Draft {
	return ledger.Draft{
		Type:     core.Income,
		Amount:   100,
		Category: "Salary",
		Date:     core.NewDate(2024, 1, 15),
	}
}

func TestAppendPublishesEvent(t *testing.T) {
	ctx := context.Background()
	pub := &capturingPublisher{}
	s := newTestService(t, pub)

	tx, err := s.Append(ctx, "alice@x.com", testDraft())
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.published))
	}
	e := pub.published[0]
	if e.Action != events.ActionAppended || e.TransactionID != tx.ID || e.Email != "alice@x.com" {
		t.Fatalf("unexpected event %+v", e)
	}
}

func TestDeleteOfMissingIDPublishesNothing(t *testing.T) {
	ctx := context.Background()
	pub := &capturingPublisher{}
	s := newTestService(t, pub)

	removed, err := s.Delete(ctx, "alice@x.com", "tx_missing")
	if err != nil || removed {
		t.Fatalf("delete: removed=%v err=%v", removed, err)
	}
	if len(pub.published) != 0 {
		t.Fatalf("no-op delete must not publish, got %+v", pub.published)
	}
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	ctx := context.Background()
	pub := &capturingPublisher{fail: context.DeadlineExceeded}
	s := newTestService(t, pub)

	if _, err := s.Append(ctx, "alice@x.com", testDraft()); err != nil {
		t.Fatalf("append must succeed despite publish failure: %v", err)
	}
	txs, err := s.List(ctx, "alice@x.com")
	if err != nil || len(txs) != 1 {
		t.Fatalf("transaction not persisted: %v %v", txs, err)
	}
}

func TestNilPublisherTolerated(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil)

	if _, err := s.Append(ctx, "alice@x.com", testDraft()); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Erase(ctx, "alice@x.com", ledger.Confirmed()); err != nil {
		t.Fatalf("erase: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
