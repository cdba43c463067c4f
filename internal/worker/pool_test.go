package worker_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ledgerdesk/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_EnqueueAndProcess(t *testing.T) {
	d := worker.NewDispatcher(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan worker.InvoiceExportPayload, 1)
	worker.StartPool(ctx, d, 1, func(_ context.Context, job worker.Job) error {
		require.Equal(t, worker.JobInvoiceExport, job.Type)
		var payload worker.InvoiceExportPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return err
		}
		done <- payload
		return nil
	})

	err := d.EnqueueInvoiceExport(ctx, worker.InvoiceExportPayload{
		SaleID:     7,
		OutputPath: "/tmp/INV-2026-0007.pdf",
	})
	require.NoError(t, err)

	select {
	case payload := <-done:
		assert.Equal(t, uint(7), payload.SaleID)
		assert.Equal(t, "/tmp/INV-2026-0007.pdf", payload.OutputPath)
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
	}
}

func TestDispatcher_FullQueueDoesNotBlock(t *testing.T) {
	d := worker.NewDispatcher(1)
	ctx := context.Background()

	require.NoError(t, d.EnqueueInvoiceExport(ctx, worker.InvoiceExportPayload{SaleID: 1}))
	err := d.EnqueueInvoiceExport(ctx, worker.InvoiceExportPayload{SaleID: 2})
	assert.EqualError(t, err, "worker queue full")
}
