package domain

import (
	"regexp"
	"strings"
)

var (
	// Coarse regional keyword groups matched against "admin name", lowercased.
	southAsiaRe      = regexp.MustCompile(`india|bangladesh|nepal|sri lanka|pakistan`)
	southeastAsiaRe  = regexp.MustCompile(`thailand|vietnam|lao|cambodia|myanmar|malaysia|indonesia|philippines`)
	eastAsiaHumidRe  = regexp.MustCompile(`china|taiwan|japan|korea`)
	northAfricaHotRe = regexp.MustCompile(`egypt|morocco|algeria|libya|tunisia`)
)

// seasonWindow is the set of best and good months for a climate zone.
type seasonWindow struct {
	best MonthSelection
	good MonthSelection
}

var (
	northHighWindow = seasonWindow{best: Months(5, 6, 7, 8), good: Months(4, 9)}
	northMidWindow  = seasonWindow{best: Months(4, 5, 9, 10), good: Months(6, 7, 8)}
	tropicsNWindow  = seasonWindow{best: Months(10, 11, 0, 1, 2), good: Months(3, 9)}
	tropicsSWindow  = seasonWindow{best: Months(4, 5, 6, 7, 8), good: Months(3, 9)}
	southWindow     = seasonWindow{best: Months(11, 0, 1, 2), good: Months(10, 3)}

	monsoonNWindow    = seasonWindow{best: Months(10, 11, 0, 1, 2), good: Months(3, 9)}
	monsoonSWindow    = seasonWindow{best: Months(5, 6, 7, 8, 9), good: Months(4, 10)}
	eastAsiaWindow    = seasonWindow{best: Months(4, 5, 9, 10), good: Months(6, 7, 8)}
	northAfricaWindow = seasonWindow{best: Months(3, 4, 5, 10, 11), good: Months(2, 6, 9)}
)

// ScoreByLatitude approximates a rating for a region without a climate
// profile. The best/good window comes from the latitude band and hemisphere,
// then regional keyword matches on admin and name override it with monsoon
// and dry-season windows. It never returns bad.
func ScoreByLatitude(lat float64, admin, name string, months MonthSelection) Rating {
	if months.Empty() {
		return RatingOther
	}

	w := latitudeWindow(lat)

	key := strings.ToLower(admin + " " + name)
	north := lat > 0
	if southAsiaRe.MatchString(key) || southeastAsiaRe.MatchString(key) {
		if north {
			w = monsoonNWindow
		} else {
			w = monsoonSWindow
		}
	}
	if eastAsiaHumidRe.MatchString(key) {
		w = eastAsiaWindow
	}
	if northAfricaHotRe.MatchString(key) {
		w = northAfricaWindow
	}

	var best, good int
	for _, m := range months.Slice() {
		switch {
		case w.best.Has(m):
			best++
		case w.good.Has(m):
			good++
		}
	}

	return aggregate(months.Len(), best, good, 0)
}

// latitudeWindow picks the season window for a latitude. Latitude 0 counts as
// southern hemisphere.
func latitudeWindow(lat float64) seasonWindow {
	band := lat
	if band < 0 {
		band = -band
	}
	north := lat > 0

	switch {
	case north && band >= 45:
		return northHighWindow
	case north && band >= 30:
		return northMidWindow
	case north:
		return tropicsNWindow
	case band < 30:
		return tropicsSWindow
	default:
		return southWindow
	}
}
