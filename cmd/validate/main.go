// Command validate checks a monthly climate profile dataset before it is
// shipped to the service. It verifies structure, value plausibility, rating
// consistency and, optionally, that a fixture written by ratemap still
// matches what the current rules produce.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -profiles data/profiles.json \
//	  -fixture data/mock/beach_summer.json
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/couchcryptid/travel-suitability-service/internal/domain"
	"github.com/couchcryptid/travel-suitability-service/internal/profiles"
)

var activities = []domain.ActivityType{domain.ActivityBeach, domain.ActivityHike, domain.ActivityCity}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	profilesPath := flag.String("profiles", "", "path to the profile dataset (.json, .json.gz or .json.zst)")
	thresholdsPath := flag.String("thresholds", "", "optional JSON threshold overrides")
	fixturePath := flag.String("fixture", "", "optional ratemap fixture to re-check")
	flag.Parse()

	if *profilesPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*profilesPath, *thresholdsPath, *fixturePath); code != 0 {
		os.Exit(code)
	}
}

func run(profilesPath, thresholdsPath, fixturePath string) int {
	fmt.Println("=== Climate Profile Validation ===")
	fmt.Println()

	db, err := profiles.ReadFile(profilesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load profiles: %v\n", err)
		return 1
	}

	thresholds, err := profiles.LoadThresholds(thresholdsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	structure, store := validateStructure(db)
	phases := []*phase{
		structure,
		validateRanges(db),
		validateRatings(store, thresholds),
	}
	if fixturePath != "" {
		phases = append(phases, validateFixture(fixturePath, store, thresholds))
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Profiles: %d in dataset, %d indexed (source %q)\n", len(db.Features), store.Len(), db.Meta.Source)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Structure ──
// Runs the service's own loader and reports each rejected profile.

func validateStructure(db domain.ProfilesDB) (*phase, *profiles.Store) {
	p := &phase{name: "Phase 1: Structure"}

	store, err := profiles.New(db)
	if err == nil {
		return p, store
	}

	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			p.errorf("%v", e)
		}
	} else {
		p.errorf("%v", err)
	}

	// Index the valid subset so later phases still have something to check.
	valid := domain.ProfilesDB{Meta: db.Meta}
	seen := map[string]bool{}
	for _, f := range db.Features {
		if seen[f.ID] {
			continue
		}
		if _, err := profiles.New(domain.ProfilesDB{Features: []domain.MonthlyClimateProfile{f}}); err == nil {
			valid.Features = append(valid.Features, f)
			seen[f.ID] = true
		}
	}
	store, _ = profiles.New(valid)
	return p, store
}

// ── Phase 2: Value Ranges ──
// Flags physically implausible monthly values that still pass the loader.

func validateRanges(db domain.ProfilesDB) *phase {
	p := &phase{name: "Phase 2: Value Ranges"}
	for i := range db.Features {
		checkProfileRanges(p, &db.Features[i])
	}
	return p
}

func checkProfileRanges(p *phase, f *domain.MonthlyClimateProfile) {
	check := func(field string, series []float64, lo, hi float64) {
		for m, v := range series {
			if math.IsNaN(v) || v < lo || v > hi {
				p.errorf("%s %s[%s]=%g outside [%g, %g]", f.ID, field, domain.MonthName(m), v, lo, hi)
			}
		}
	}
	check("tmean", f.TMean, -60, 45)
	check("prcp", f.Prcp, 0, 2500)
	check("sst", f.SST, -2, 36)

	if f.Admin == "" && f.Name == "" {
		p.errorf("%s has neither admin nor name", f.ID)
	}
	if f.Lat == 0 && f.Lon == 0 {
		p.errorf("%s sits at null island (0, 0)", f.ID)
	}
}

// ── Phase 3: Rating Consistency ──
// Re-derives ratings per activity and checks they agree with each other.

func validateRatings(store *profiles.Store, th domain.ThresholdTable) *phase {
	p := &phase{name: "Phase 3: Rating Consistency"}
	if store == nil {
		p.errorf("no valid profiles to rate")
		return p
	}

	all := domain.Months(0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11)
	for _, prof := range store.All() {
		for _, act := range activities {
			if got := domain.RateRegion(act, 0, prof, th); got != domain.RatingOther {
				p.errorf("%s %s: empty selection rated %s, want other", prof.ID, act, got)
			}

			best := domain.BestMonths(act, prof, th)
			if len(best) > 0 {
				if got := domain.RateRegion(act, domain.Months(best...), prof, th); got != domain.RatingBest {
					p.errorf("%s %s: best months %v rate %s together", prof.ID, act, best, got)
				}
			}
			if len(best) == domain.MonthsPerYear {
				if got := domain.RateRegion(act, all, prof, th); got != domain.RatingBest {
					p.errorf("%s %s: every month best but year rates %s", prof.ID, act, got)
				}
			}
			for m := range domain.MonthsPerYear {
				isBest := domain.RateMonth(act, m, prof, th) == domain.RatingBest
				if isBest != slices.Contains(best, m) {
					p.errorf("%s %s: month %s disagrees with best months", prof.ID, act, domain.MonthName(m))
				}
			}
		}
	}
	return p
}

// ── Phase 4: Fixture ──
// Re-rates each region of a ratemap fixture and compares the outcome.

func validateFixture(path string, store *profiles.Store, th domain.ThresholdTable) *phase {
	p := &phase{name: "Phase 4: Fixture"}

	data, err := os.ReadFile(path)
	if err != nil {
		p.errorf("read fixture: %v", err)
		return p
	}
	var res domain.AssessmentResult
	if err := json.Unmarshal(data, &res); err != nil {
		p.errorf("decode fixture: %v", err)
		return p
	}

	hazards := domain.DefaultHazardRules()
	for i := range res.Assessments {
		a := &res.Assessments[i]
		prof := store.Lookup(a.RegionID)
		if prof == nil {
			p.errorf("%s: not in dataset", a.RegionID)
			continue
		}
		want := expectedRating(prof, res.Activity, res.Months, th, hazards)
		if a.Rating != want {
			p.errorf("%s: fixture says %s, rules now give %s", a.RegionID, a.Rating, want)
		}
	}
	return p
}

func expectedRating(prof *domain.MonthlyClimateProfile, act domain.ActivityType, months domain.MonthSelection, th domain.ThresholdTable, hazards []domain.HazardRule) domain.Rating {
	if months.Empty() {
		return domain.RatingOther
	}
	if len(domain.HazardsFor(prof.Lat, prof.Lon, months, hazards)) > 0 {
		return domain.RatingBad
	}
	return domain.RateRegion(act, months, prof, th)
}
