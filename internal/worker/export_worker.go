// Package worker consumes bill events and mirrors bills into the export
// ledger.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"nhatro/internal/amqp"
	"nhatro/internal/backend"
	"nhatro/internal/core"
)

// BillExporter appends one bill row to an external ledger.
type BillExporter interface {
	AppendBill(ctx context.Context, b core.Bill) error
}

// ExportWorker fetches the bill named by each event and appends it to the
// export ledger. The ledger is append-only; delete events are logged and
// skipped.
type ExportWorker struct {
	bills    backend.BillStore
	exporter BillExporter
}

func NewExportWorker(bills backend.BillStore, exporter BillExporter) *ExportWorker {
	return &ExportWorker{bills: bills, exporter: exporter}
}

func (w *ExportWorker) HandleEvent(ctx context.Context, msg *amqp.BillEventMessage) error {
	slog.InfoContext(ctx, "Processing bill event",
		"id", msg.ID,
		"action", msg.Action)

	if msg.Action == amqp.ActionDeleted {
		slog.InfoContext(ctx, "Skipping export for deleted bill", "id", msg.ID)
		return nil
	}

	bill, err := w.bills.GetBill(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get bill %s: %w", msg.ID, err)
	}

	if err := w.exporter.AppendBill(ctx, bill); err != nil {
		return fmt.Errorf("export bill %s: %w", msg.ID, err)
	}

	slog.InfoContext(ctx, "Bill exported",
		"id", msg.ID,
		"month", bill.Month.String(),
		"total_dong", bill.Total.Dong)

	return nil
}
