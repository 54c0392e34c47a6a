package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/travel-suitability-service/internal/domain"
	"github.com/couchcryptid/travel-suitability-service/internal/observability"
)

// ProfileLookup finds the climate profile for a region id, or nil when the
// dataset has none.
type ProfileLookup interface {
	Lookup(id string) *domain.MonthlyClimateProfile
}

// AssessmentTransformer implements Transformer by rating every region of a
// request concurrently.
type AssessmentTransformer struct {
	assessor    *domain.Assessor
	profiles    ProfileLookup
	metrics     *observability.Metrics
	logger      *slog.Logger
	concurrency int
}

// NewTransformer creates an AssessmentTransformer. concurrency bounds how
// many regions of one request are assessed at once.
func NewTransformer(assessor *domain.Assessor, profiles ProfileLookup, metrics *observability.Metrics, logger *slog.Logger, concurrency int) *AssessmentTransformer {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &AssessmentTransformer{
		assessor:    assessor,
		profiles:    profiles,
		metrics:     metrics,
		logger:      logger,
		concurrency: concurrency,
	}
}

func (t *AssessmentTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	req, err := domain.ParseAssessmentRequest(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	res, err := t.Evaluate(ctx, req)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	return domain.SerializeAssessmentResult(res)
}

// Evaluate validates a request and assesses its regions. Assessments keep
// the request's region order.
func (t *AssessmentTransformer) Evaluate(ctx context.Context, req domain.AssessmentRequest) (domain.AssessmentResult, error) {
	req, act, months, err := domain.NormalizeRequest(req)
	if err != nil {
		return domain.AssessmentResult{}, err
	}

	start := time.Now()
	assessments := make([]domain.Assessment, len(req.Regions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.concurrency)
	for i, ref := range req.Regions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			assessments[i] = t.assessor.Assess(gctx, t.region(ref), act, months)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.AssessmentResult{}, fmt.Errorf("assess request %s: %w", req.RequestID, err)
	}

	t.record(assessments, time.Since(start))
	t.logger.Debug("request assessed",
		"request_id", req.RequestID,
		"activity", act,
		"months", months.String(),
		"regions", len(assessments),
	)

	return domain.AssessmentResult{
		RequestID:   req.RequestID,
		Activity:    act,
		Months:      months,
		Assessments: assessments,
		AssessedAt:  domain.Now(),
	}, nil
}

func (t *AssessmentTransformer) region(ref domain.RegionRef) domain.Region {
	return domain.Region{
		ID:      ref.ID,
		Lat:     ref.Lat,
		Lon:     ref.Lon,
		Admin:   ref.Admin,
		Name:    ref.Name,
		Profile: t.profiles.Lookup(ref.ID),
	}
}

func (t *AssessmentTransformer) record(assessments []domain.Assessment, elapsed time.Duration) {
	if t.metrics == nil {
		return
	}
	t.metrics.AssessmentLatency.Observe(elapsed.Seconds())
	for _, a := range assessments {
		t.metrics.RegionsAssessed.WithLabelValues(string(a.Rating), a.Source).Inc()
		for _, label := range a.Hazards {
			t.metrics.HazardOverrides.WithLabelValues(label).Inc()
		}
	}
}
