package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	sharedretry "github.com/couchcryptid/storm-data-shared/retry"

	"github.com/couchcryptid/travel-suitability-service/internal/domain"
	"github.com/couchcryptid/travel-suitability-service/internal/observability"
)

// BatchExtractor reads up to batchSize raw requests from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer turns a raw assessment request into a serialized result.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error)
}

// BatchLoader writes multiple results to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.OutputEvent) error
}

// Pipeline runs the extract-assess-load loop.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// CheckReadiness returns nil once a batch of results has been written.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not written any assessments yet")
	}
	return nil
}

// Ready reports whether a batch of results has been written.
func (p *Pipeline) Ready() bool {
	return p.ready.Load()
}

// Run executes the batch loop until the context is cancelled. Extract and
// load failures are retried with exponential backoff.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	r := newRetry(200*time.Millisecond, 5*time.Second)
	for ctx.Err() == nil {
		if !p.processBatch(ctx, r) {
			break
		}
	}

	p.logger.Info("pipeline stopping", "reason", context.Cause(ctx))
	return nil
}

// processBatch runs one cycle. It returns false when the pipeline should stop.
func (p *Pipeline) processBatch(ctx context.Context, r *retry) bool {
	start := time.Now()

	batch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err, "retry_in", r.current)
		return r.wait(ctx)
	}
	if len(batch) == 0 {
		return ctx.Err() == nil
	}

	p.metrics.MessagesConsumed.Add(float64(len(batch)))
	p.metrics.BatchSize.Observe(float64(len(batch)))
	r.reset()

	results, done, ok := p.transformBatch(ctx, batch)
	if !ok {
		return false
	}
	if len(results) == 0 {
		return true
	}

	if err := p.loader.LoadBatch(ctx, results); err != nil {
		p.logger.Error("load batch failed", "error", err, "batch_size", len(results), "retry_in", r.current)
		return r.wait(ctx)
	}

	p.metrics.MessagesProduced.Add(float64(len(results)))
	for _, raw := range done {
		p.commit(ctx, raw)
	}

	p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	return true
}

// transformBatch assesses each request of the batch. Requests that fail to
// parse or validate are committed and dropped so they are not redelivered.
// The returned raw events are the ones whose results still need committing.
// It reports false when the context ends mid-batch; nothing from the batch is
// committed then, so the broker redelivers it.
func (p *Pipeline) transformBatch(ctx context.Context, batch []domain.RawEvent) ([]domain.OutputEvent, []domain.RawEvent, bool) {
	results := make([]domain.OutputEvent, 0, len(batch))
	done := make([]domain.RawEvent, 0, len(batch))

	for _, raw := range batch {
		out, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			if ctx.Err() != nil {
				p.logger.Info("batch interrupted, leaving offsets uncommitted",
					"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
				return nil, nil, false
			}
			p.logger.Warn("invalid assessment request, skipping",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.TransformErrors.Inc()
			p.commit(ctx, raw)
			continue
		}
		results = append(results, out)
		done = append(done, raw)
	}
	return results, done, true
}

func (p *Pipeline) commit(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

// retry is a doubling backoff capped at max.
type retry struct {
	initial time.Duration
	max     time.Duration
	current time.Duration
}

func newRetry(initial, maxDelay time.Duration) *retry {
	return &retry{initial: initial, max: maxDelay, current: initial}
}

func (r *retry) reset() {
	r.current = r.initial
}

// wait sleeps for the current delay and doubles it. It returns false if the
// context ends first.
func (r *retry) wait(ctx context.Context) bool {
	if !sharedretry.SleepWithContext(ctx, r.current) {
		return false
	}
	r.current = sharedretry.NextBackoff(r.current, r.max)
	return true
}
