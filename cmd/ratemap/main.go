// Command ratemap rates every region of a profile dataset for one activity and
// month selection and writes the result as a JSON fixture. It runs the same
// transformer as the service so the fixture matches real pipeline output.
//
// Usage:
//
//	go run ./cmd/ratemap \
//	  -profiles data/profiles.json \
//	  -activity beach \
//	  -months 5,6,7 \
//	  -out data/mock/beach_summer.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/travel-suitability-service/internal/domain"
	"github.com/couchcryptid/travel-suitability-service/internal/pipeline"
	"github.com/couchcryptid/travel-suitability-service/internal/profiles"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	profilesPath := flag.String("profiles", "data/profiles.json", "path to the profile dataset (.json, .json.gz or .json.zst)")
	thresholdsPath := flag.String("thresholds", "", "optional JSON threshold overrides")
	activity := flag.String("activity", "city", "activity to rate: beach, hike or city")
	monthList := flag.String("months", "", "comma-separated month indexes, 0 = January")
	out := flag.String("out", "", "output path for the rated JSON fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	months, err := domain.ParseMonthList(*monthList)
	if err != nil {
		return err
	}

	store, err := profiles.Load(*profilesPath)
	if err != nil {
		return err
	}
	log.Printf("loaded %d profiles from %s", store.Len(), *profilesPath)

	thresholds, err := profiles.LoadThresholds(*thresholdsPath)
	if err != nil {
		return err
	}

	// Set a fixed clock for reproducible AssessedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	assessor := domain.NewAssessor(thresholds, domain.DefaultHazardRules(), nil, logger)
	tfm := pipeline.NewTransformer(assessor, store, nil, logger, 8)

	refs := make([]domain.RegionRef, 0, store.Len())
	for _, id := range store.IDs() {
		refs = append(refs, domain.RegionRef{ID: id})
	}

	res, err := tfm.Evaluate(context.Background(), domain.AssessmentRequest{
		Activity: *activity,
		Months:   months.Slice(),
		Regions:  refs,
	})
	if err != nil {
		return fmt.Errorf("rate profiles: %w", err)
	}

	if err := writeJSON(*out, res); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote fixture: %s", *out)

	printStats(res)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// statsResult holds aggregated counts for printStats reporting.
type statsResult struct {
	ratingCounts map[domain.Rating]int
	sourceCounts map[string]int
	hazardCounts map[string]int
	bestByMonth  [domain.MonthsPerYear]int
}

func collectStats(res domain.AssessmentResult) statsResult {
	s := statsResult{
		ratingCounts: map[domain.Rating]int{},
		sourceCounts: map[string]int{},
		hazardCounts: map[string]int{},
	}
	for i := range res.Assessments {
		a := &res.Assessments[i]
		s.ratingCounts[a.Rating]++
		s.sourceCounts[a.Source]++
		for _, h := range a.Hazards {
			s.hazardCounts[h]++
		}
		for _, m := range a.BestMonths {
			s.bestByMonth[m]++
		}
	}
	return s
}

func printStats(res domain.AssessmentResult) {
	stats := collectStats(res)

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Activity: %s, months: %s\n", res.Activity, res.Months)
	fmt.Printf("Total: %d\n", len(res.Assessments))
	fmt.Printf("By rating: best=%d, good=%d, other=%d, bad=%d\n",
		stats.ratingCounts[domain.RatingBest], stats.ratingCounts[domain.RatingGood],
		stats.ratingCounts[domain.RatingOther], stats.ratingCounts[domain.RatingBad])
	fmt.Printf("By source: profile=%d, hazard=%d, heuristic=%d, none=%d\n",
		stats.sourceCounts[domain.SourceProfile], stats.sourceCounts[domain.SourceHazard],
		stats.sourceCounts[domain.SourceHeuristic], stats.sourceCounts[domain.SourceNone])

	if len(stats.hazardCounts) > 0 {
		labels := make([]string, 0, len(stats.hazardCounts))
		for l := range stats.hazardCounts {
			labels = append(labels, l)
		}
		sort.Strings(labels)
		fmt.Println("\nHazards:")
		for _, l := range labels {
			fmt.Printf("  %s=%d\n", l, stats.hazardCounts[l])
		}
	}

	fmt.Print("\nRegions with a best month: ")
	for m, n := range stats.bestByMonth {
		fmt.Printf("%s=%d ", domain.MonthName(m), n)
	}
	fmt.Println()

	fmt.Println("\nPer region:")
	for i := range res.Assessments {
		a := &res.Assessments[i]
		fmt.Printf("  %-8s %-6s %-9s %s\n", a.RegionID, a.Rating, a.Source, a.Explanation)
	}
}
