// Package worker consumes ledger change events and mirrors appended
// transactions to the configured exporter.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/directory"
	"fintrack/internal/events"
	"fintrack/internal/export"
)

type ExportWorker struct {
	dir      *directory.Directory
	exporter export.TransactionExporter
}

func NewExportWorker(dir *directory.Directory, exporter export.TransactionExporter) *ExportWorker {
	return &ExportWorker{dir: dir, exporter: exporter}
}

// HandleEvent processes a single ledger event. Only appends are mirrored;
// the export sheet is an append-only backup, so deletions and erasures are
// acknowledged and skipped.
func (w *ExportWorker) HandleEvent(ctx context.Context, event *events.LedgerEvent) error {
	switch event.Action {
	case events.ActionAppended:
		return w.exportAppended(ctx, event)
	case events.ActionDeleted, events.ActionErased:
		slog.InfoContext(ctx, "Skipping non-append event",
			"action", event.Action,
			"email", event.Email)
		return nil
	default:
		slog.WarnContext(ctx, "Unknown event action, dropping",
			"action", event.Action,
			"event_id", event.EventID)
		return nil
	}
}

func (w *ExportWorker) exportAppended(ctx context.Context, event *events.LedgerEvent) error {
	// The event carries only references; fetch current state from the store.
	txs, err := w.dir.Transactions(ctx, event.Email)
	if err != nil {
		return fmt.Errorf("load ledger for %s: %w", event.Email, err)
	}

	for _, tx := range txs {
		if tx.ID == event.TransactionID {
			if err := w.exporter.AppendTransaction(ctx, event.Email, tx); err != nil {
				return fmt.Errorf("export transaction %s: %w", tx.ID, err)
			}
			return nil
		}
	}

	// Deleted between publish and consume; nothing left to mirror.
	slog.InfoContext(ctx, "Transaction no longer present, skipping export",
		"email", event.Email,
		"id", event.TransactionID)
	return nil
}
