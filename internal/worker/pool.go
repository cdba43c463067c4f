package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
)

const JobInvoiceExport = "invoice_export"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// InvoiceExportPayload asks the pool to render a sale's invoice PDF and
// write it to disk.
type InvoiceExportPayload struct {
	SaleID     uint   `json:"saleId"`
	TemplateID *uint  `json:"templateId,omitempty"`
	OutputPath string `json:"outputPath"`
}

// Handler processes one dequeued job.
type Handler func(ctx context.Context, job Job) error

// Dispatcher enqueues async jobs onto an in-process buffered channel.
// The worker pool consumes it; everything runs inside this process.
type Dispatcher struct {
	jobs chan Job
}

func NewDispatcher(buffer int) *Dispatcher {
	if buffer < 1 {
		buffer = 64
	}
	return &Dispatcher{jobs: make(chan Job, buffer)}
}

// EnqueueInvoiceExport pushes an invoice export job. Returns an error when
// the queue is full rather than blocking the request path.
func (d *Dispatcher) EnqueueInvoiceExport(ctx context.Context, payload InvoiceExportPayload) error {
	return d.enqueue(ctx, JobInvoiceExport, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	select {
	case d.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return errors.New("worker queue full")
	}
}

// StartPool launches numWorkers goroutines consuming the dispatcher's queue.
// Workers exit when ctx is cancelled; pending jobs are dropped on shutdown.
func StartPool(ctx context.Context, d *Dispatcher, numWorkers int, handler Handler) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, d, i, handler)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, d *Dispatcher, id int, handler Handler) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		case job := <-d.jobs:
			if err := handler(ctx, job); err != nil {
				log.Error().Str("type", job.Type).Err(err).Msg("job failed")
			}
		}
	}
}
