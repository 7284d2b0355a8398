package export

import (
	"context"

	"fintrack/internal/core"
)

// TransactionExporter mirrors appended transactions to an external backup.
type TransactionExporter interface {
	AppendTransaction(ctx context.Context, email string, tx core.Transaction) error
}
