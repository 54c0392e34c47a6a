package domain

import (
	"errors"
	"fmt"
)

// ActivityThresholds are the comfort bounds for one activity.
// Units: °C for temperatures, mm for precipitation, % for humidity and a
// 0..1 fraction for precipitation probability. SSTMin only applies to beach.
type ActivityThresholds struct {
	SSTMin   float64 `json:"sst_min,omitempty"`
	AirMin   float64 `json:"air_min"`
	AirMax   float64 `json:"air_max"`
	PrcpMax  float64 `json:"prcp_max"`
	RHMax    float64 `json:"rh_max"`
	PProbMax float64 `json:"pprob_max"`
}

// ThresholdTable holds one threshold set per activity.
type ThresholdTable struct {
	Beach ActivityThresholds `json:"beach"`
	Hike  ActivityThresholds `json:"hike"`
	City  ActivityThresholds `json:"city"`
}

// DefaultThresholds returns the built-in threshold table. Each call returns a
// fresh copy.
func DefaultThresholds() ThresholdTable {
	return ThresholdTable{
		Beach: ActivityThresholds{SSTMin: 23, AirMin: 22, AirMax: 34, PrcpMax: 80, RHMax: 85, PProbMax: 0.35},
		Hike:  ActivityThresholds{AirMin: 10, AirMax: 22, PrcpMax: 90, RHMax: 80, PProbMax: 0.4},
		City:  ActivityThresholds{AirMin: 12, AirMax: 27, PrcpMax: 100, RHMax: 85, PProbMax: 0.5},
	}
}

// For returns the thresholds for an activity. Anything that is not beach or
// hike gets the city set.
func (t ThresholdTable) For(act ActivityType) ActivityThresholds {
	switch act {
	case ActivityBeach:
		return t.Beach
	case ActivityHike:
		return t.Hike
	default:
		return t.City
	}
}

// Validate checks min ≤ max on the temperature bounds and that no threshold
// is negative.
func (t ThresholdTable) Validate() error {
	var errs []error
	for _, item := range []struct {
		act ActivityType
		th  ActivityThresholds
	}{
		{ActivityBeach, t.Beach},
		{ActivityHike, t.Hike},
		{ActivityCity, t.City},
	} {
		if err := item.th.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s thresholds: %w", item.act, err))
		}
	}
	return errors.Join(errs...)
}

func (a ActivityThresholds) validate() error {
	var errs []error
	if a.AirMin > a.AirMax {
		errs = append(errs, fmt.Errorf("air_min %g exceeds air_max %g", a.AirMin, a.AirMax))
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"sst_min", a.SSTMin},
		{"air_min", a.AirMin},
		{"air_max", a.AirMax},
		{"prcp_max", a.PrcpMax},
		{"rh_max", a.RHMax},
		{"pprob_max", a.PProbMax},
	} {
		if f.v < 0 {
			errs = append(errs, fmt.Errorf("%s must be non-negative, got %g", f.name, f.v))
		}
	}
	return errors.Join(errs...)
}
