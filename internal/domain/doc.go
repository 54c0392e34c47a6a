// Package domain rates how suitable an admin-1 region is for a travel
// activity in a set of calendar months.
//
// # Data Source
//
// Monthly climate profiles come from a static JSON document built offline
// from ERA5-Land monthly means (1991–2020), sampled at each admin-1 centroid.
// Each profile carries twelve monthly values per variable:
//
//	tmean  2m air temperature, °C          (always present)
//	prcp   total precipitation, mm         (always present)
//	sst    sea-surface temperature, °C     (coastal regions only)
//	rh     relative humidity, %            (optional)
//	pprob  wet-day fraction, 0..1          (optional)
//
// Months are zero-indexed: 0 = January, 11 = December. Array lengths are
// checked when the dataset is loaded (see package profiles), so rating code
// indexes by month without bounds checks.
//
// # Rating Scale
//
// Ratings are one of best, good, other and bad. best > good > other is an
// order of desirability; bad is a veto and overrides every other signal.
//
// Per month ([RateMonth]):
//
//	1. rh > rhMax or pprob > pprobMax       → bad
//	2. inside the activity's comfort bounds  → best
//	3. inside the relaxed envelope           → good
//	4. otherwise                             → other
//
//	Relaxed envelopes:
//	  beach: sst ≥ sstMin-1, airMin-2 ≤ t ≤ airMax+1, p ≤ prcpMax+20
//	  hike:  airMin-2 ≤ t ≤ airMax+2, p ≤ prcpMax+30
//	  city:  airMin-2 ≤ t ≤ airMax+2, p ≤ prcpMax+40
//
// Beach falls back to air temperature when no SST is available.
//
// Across months ([RateRegion]): any bad month makes the region bad, best needs
// every month to be best, good needs one best month or every month good.
//
// # Hazards
//
// Tropical-cyclone and tornado seasons are described by bounding boxes
// [minLon, minLat, maxLon, maxLat] plus a month set. A box whose minLon is
// greater than its maxLon wraps through the antimeridian. A hazard match forces
// bad before any climate rating is computed. See [HazardsFor].
//
// # Fallback
//
// Regions without a profile are scored from latitude band and hemisphere with
// monsoon adjustments keyed on country/region names ([ScoreByLatitude]). The
// fallback never returns bad.
package domain
