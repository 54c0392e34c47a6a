package domain

// BBox is a geographic box [minLon, minLat, maxLon, maxLat] in degrees.
// When minLon > maxLon the box wraps through the antimeridian.
type BBox [4]float64

// HazardRule marks a seasonal hazard over a geographic box.
type HazardRule struct {
	BBox   BBox           `json:"bbox"`
	Months MonthSelection `json:"months"`
	Label  string         `json:"label"`
}

// DefaultHazardRules returns the built-in tropical-cyclone and tornado season
// table. Each call returns a fresh slice.
func DefaultHazardRules() []HazardRule {
	return []HazardRule{
		{BBox: BBox{-100, 5, -10, 35}, Months: Months(5, 6, 7, 8, 9, 10, 11), Label: "Atlantic hurricane season"},
		{BBox: BBox{-140, 5, -90, 30}, Months: Months(4, 5, 6, 7, 8, 9, 10, 11), Label: "Eastern Pacific hurricane season"},
		{BBox: BBox{100, 0, 180, 35}, Months: Months(6, 7, 8, 9, 10, 11, 0), Label: "Western Pacific typhoon season"},
		{BBox: BBox{55, 0, 100, 30}, Months: Months(3, 4, 5, 9, 10, 11), Label: "North Indian Ocean cyclone season"},
		{BBox: BBox{55, -30, 120, 0}, Months: Months(10, 11, 0, 1, 2, 3, 4), Label: "South Indian Ocean cyclone season"},
		{BBox: BBox{150, -30, -120, 0}, Months: Months(10, 11, 0, 1, 2, 3, 4), Label: "South Pacific cyclone season"},
		{BBox: BBox{-105, 25, -85, 50}, Months: Months(3, 4, 5, 6), Label: "US tornado season"},
		{BBox: BBox{-90, 25, -75, 35}, Months: Months(2, 3, 4, 10, 11), Label: "Southeast US tornado peaks"},
	}
}

// InBBox reports whether the point lies inside the box, edges included.
func InBBox(lon, lat float64, b BBox) bool {
	minLon, minLat, maxLon, maxLat := b[0], b[1], b[2], b[3]
	if lat < minLat || lat > maxLat {
		return false
	}
	if minLon <= maxLon {
		return lon >= minLon && lon <= maxLon
	}
	return lon >= minLon || lon <= maxLon
}

// HazardsFor returns the labels of every rule whose box contains the point and
// whose season overlaps the selected months, in rule order. The result is
// empty when nothing matches.
func HazardsFor(lat, lon float64, months MonthSelection, rules []HazardRule) []string {
	var labels []string
	for _, r := range rules {
		if InBBox(lon, lat, r.BBox) && months.Intersects(r.Months) {
			labels = append(labels, r.Label)
		}
	}
	return labels
}
