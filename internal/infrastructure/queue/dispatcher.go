package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/schoolhub/portal-api/internal/api/metrics"
	"github.com/schoolhub/portal-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes attachment access events to a fixed set of workers using
// consistent hashing on the attachment id, so the audit trail for one
// attachment is written in arrival order.
type Dispatcher struct {
	workers []chan ports.AccessEvent
	service ports.AccessEventService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AccessEventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.AccessEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AccessEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its attachment id.
// Audit logging is best effort: when the worker's buffer is full the event
// is dropped rather than stalling the request path.
func (d *Dispatcher) Enqueue(event ports.AccessEvent) {
	idx := d.shardIndex(event.AttachmentID)
	select {
	case d.workers[idx] <- event:
		metrics.AccessQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().
			Str("attachment_id", event.AttachmentID).
			Int("worker_id", idx).
			Msg("audit queue full, dropping access event")
	}
}

// shardIndex maps an attachment id deterministically to a worker index.
func (d *Dispatcher) shardIndex(attachmentID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(attachmentID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AccessEvent) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AccessQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.service.Process(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("attachment_id", event.AttachmentID).
					Str("user_id", event.UserID).
					Msg("failed to record access event")
			}
		}
	}
}
