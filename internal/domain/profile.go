package domain

import (
	"errors"
	"fmt"
)

// MonthsPerYear is the length of every monthly profile array.
const MonthsPerYear = 12

var (
	// ErrInvalidActivity is returned for activity strings outside beach, hike, city.
	ErrInvalidActivity = errors.New("invalid activity")

	// ErrInvalidMonth is returned for month indexes outside 0..11.
	ErrInvalidMonth = errors.New("invalid month")
)

// ActivityType selects which threshold set applies.
type ActivityType string

const (
	ActivityBeach ActivityType = "beach"
	ActivityHike  ActivityType = "hike"
	ActivityCity  ActivityType = "city"
)

// ParseActivity validates an activity string. Matching is exact.
func ParseActivity(s string) (ActivityType, error) {
	switch a := ActivityType(s); a {
	case ActivityBeach, ActivityHike, ActivityCity:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidActivity, s)
	}
}

// Rating is the suitability of a region or month for an activity.
type Rating string

const (
	RatingBest  Rating = "best"
	RatingGood  Rating = "good"
	RatingOther Rating = "other"
	RatingBad   Rating = "bad"
)

// MonthlyClimateProfile holds the monthly climate statistics for one admin-1
// region. TMean and Prcp are always present; SST, RH and PProb may be nil.
// Profiles are read-only once loaded.
type MonthlyClimateProfile struct {
	ID    string    `json:"id" validate:"required"`
	Lat   float64   `json:"lat" validate:"gte=-90,lte=90"`
	Lon   float64   `json:"lon,omitempty" validate:"gte=-180,lte=180"`
	Admin string    `json:"admin,omitempty"`
	Name  string    `json:"name,omitempty"`
	TMean []float64 `json:"tmean" validate:"len=12"`
	Prcp  []float64 `json:"prcp" validate:"len=12,dive,gte=0"`
	SST   []float64 `json:"sst,omitempty" validate:"omitempty,len=12"`
	RH    []float64 `json:"rh,omitempty" validate:"omitempty,len=12,dive,gte=0,lte=100"`
	PProb []float64 `json:"pprob,omitempty" validate:"omitempty,len=12,dive,gte=0,lte=1"`
}

func (p *MonthlyClimateProfile) sstAt(m int) (float64, bool) {
	if p.SST == nil {
		return 0, false
	}
	return p.SST[m], true
}

func (p *MonthlyClimateProfile) rhAt(m int) (float64, bool) {
	if p.RH == nil {
		return 0, false
	}
	return p.RH[m], true
}

func (p *MonthlyClimateProfile) pprobAt(m int) (float64, bool) {
	if p.PProb == nil {
		return 0, false
	}
	return p.PProb[m], true
}

// ProfilesMeta describes where a profile dataset came from.
type ProfilesMeta struct {
	Source string `json:"source"`
	Note   string `json:"note,omitempty"`
}

// ProfilesDB is the on-disk shape of a profile dataset.
type ProfilesDB struct {
	Meta     ProfilesMeta            `json:"meta"`
	Features []MonthlyClimateProfile `json:"features" validate:"dive"`
}
