package domain

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Assessment sources.
const (
	SourceNone      = "none"
	SourceHazard    = "hazard"
	SourceProfile   = "profile"
	SourceHeuristic = "heuristic"
)

// Region is one admin-1 region to assess. Profile is nil when the dataset has
// no climate record for the region.
type Region struct {
	ID      string
	Lat     float64
	Lon     float64
	Admin   string
	Name    string
	Profile *MonthlyClimateProfile
}

// Assessment is the rating of one region plus what a map tooltip needs to
// explain it.
type Assessment struct {
	RegionID    string         `json:"region_id"`
	Admin       string         `json:"admin,omitempty"`
	Name        string         `json:"name,omitempty"`
	Activity    ActivityType   `json:"activity"`
	Months      MonthSelection `json:"months"`
	Rating      Rating         `json:"rating"`
	Source      string         `json:"source"`
	Hazards     []string       `json:"hazards,omitempty"`
	BestMonths  []int          `json:"best_months,omitempty"`
	Explanation string         `json:"explanation"`
	AssessedAt  time.Time      `json:"assessed_at"`
}

// Assessor combines the hazard overlay, the profile rating and the latitude
// fallback into one region assessment.
type Assessor struct {
	thresholds ThresholdTable
	hazards    []HazardRule
	geocoder   Geocoder
	logger     *slog.Logger
}

// NewAssessor creates an Assessor. Pass a nil geocoder to skip place-name
// lookups for regions that have neither profile nor names.
func NewAssessor(th ThresholdTable, hazards []HazardRule, geocoder Geocoder, logger *slog.Logger) *Assessor {
	return &Assessor{
		thresholds: th,
		hazards:    hazards,
		geocoder:   geocoder,
		logger:     logger,
	}
}

// Thresholds returns the table the assessor rates against.
func (a *Assessor) Thresholds() ThresholdTable {
	return a.thresholds
}

// Assess rates a region for an activity over the selected months.
//
// Hazards are checked first and force bad. Without a hazard the profile is
// rated with RateRegion; regions without a profile fall back to
// ScoreByLatitude.
func (a *Assessor) Assess(ctx context.Context, region Region, act ActivityType, months MonthSelection) Assessment {
	region = fillFromProfile(region)

	out := Assessment{
		RegionID:   region.ID,
		Admin:      region.Admin,
		Name:       region.Name,
		Activity:   act,
		Months:     months,
		AssessedAt: clock.Now(),
	}
	if region.Profile != nil {
		out.BestMonths = BestMonths(act, region.Profile, a.thresholds)
	}

	hazards := HazardsFor(region.Lat, region.Lon, months, a.hazards)

	switch {
	case months.Empty():
		out.Rating = RatingOther
		out.Source = SourceNone
	case len(hazards) > 0:
		out.Rating = RatingBad
		out.Source = SourceHazard
		out.Hazards = hazards
	case region.Profile != nil:
		out.Rating = RateRegion(act, months, region.Profile, a.thresholds)
		out.Source = SourceProfile
	default:
		region = a.resolveNames(ctx, region)
		out.Admin, out.Name = region.Admin, region.Name
		out.Rating = ScoreByLatitude(region.Lat, region.Admin, region.Name, months)
		out.Source = SourceHeuristic
	}

	out.Explanation = explain(out)
	return out
}

// fillFromProfile copies coordinates and names from the profile where the
// region reference leaves them empty.
func fillFromProfile(region Region) Region {
	p := region.Profile
	if p == nil {
		return region
	}
	if region.Lat == 0 {
		region.Lat = p.Lat
	}
	if region.Lon == 0 {
		region.Lon = p.Lon
	}
	if region.Admin == "" {
		region.Admin = p.Admin
	}
	if region.Name == "" {
		region.Name = p.Name
	}
	return region
}

// resolveNames looks up country and region names for the keyword fallback
// when the region carries none. Geocoding failures degrade to a latitude-only
// score.
func (a *Assessor) resolveNames(ctx context.Context, region Region) Region {
	if a.geocoder == nil || region.Admin != "" || region.Name != "" {
		return region
	}

	result, err := a.geocoder.ReverseGeocode(ctx, region.Lat, region.Lon)
	if err != nil {
		a.logger.Warn("reverse geocoding failed",
			"region_id", region.ID,
			"lat", region.Lat,
			"lon", region.Lon,
			"error", err,
		)
		return region
	}
	region.Admin = result.Country
	region.Name = result.Region
	return region
}

func explain(a Assessment) string {
	var reason string
	switch a.Source {
	case SourceHazard:
		reason = "Risk: " + strings.Join(a.Hazards, ", ")
	case SourceProfile:
		reason = "Climate suitability from monthly profile"
	case SourceHeuristic:
		reason = "Heuristic suitability by latitude"
	default:
		reason = "No months selected"
	}
	if len(a.BestMonths) > 0 {
		reason += ". Best months: " + joinMonthNames(a.BestMonths)
	}
	return reason
}
