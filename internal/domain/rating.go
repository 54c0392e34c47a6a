package domain

// RateMonth rates a single month of a profile for an activity.
//
// A month whose humidity or precipitation probability exceeds the activity's
// maximum is bad regardless of temperature and precipitation. Otherwise the
// month is best inside the comfort bounds, good inside the relaxed envelope
// and other outside both. month must be in 0..11; the profile arrays are
// assumed to hold twelve entries.
func RateMonth(act ActivityType, month int, p *MonthlyClimateProfile, th ThresholdTable) Rating {
	lim := th.For(act)
	if vetoed(p, month, lim) {
		return RatingBad
	}

	t := p.TMean[month]
	prcp := p.Prcp[month]

	switch act {
	case ActivityBeach:
		s, ok := p.sstAt(month)
		if !ok {
			s = t
		}
		switch {
		case s >= lim.SSTMin && within(t, lim.AirMin, lim.AirMax) && prcp <= lim.PrcpMax:
			return RatingBest
		case s >= lim.SSTMin-1 && within(t, lim.AirMin-2, lim.AirMax+1) && prcp <= lim.PrcpMax+20:
			return RatingGood
		default:
			return RatingOther
		}
	case ActivityHike:
		return rateAir(t, prcp, lim, 30)
	default:
		return rateAir(t, prcp, lim, 40)
	}
}

// vetoed reports whether humidity or precipitation probability rule the month out.
func vetoed(p *MonthlyClimateProfile, month int, lim ActivityThresholds) bool {
	if rh, ok := p.rhAt(month); ok && rh > lim.RHMax {
		return true
	}
	if pr, ok := p.pprobAt(month); ok && pr > lim.PProbMax {
		return true
	}
	return false
}

// rateAir applies the air-temperature/precipitation envelopes shared by hike
// and city. The relaxed envelope widens air bounds by 2°C either side and the
// precipitation cap by prcpSlack mm.
func rateAir(t, prcp float64, lim ActivityThresholds, prcpSlack float64) Rating {
	switch {
	case within(t, lim.AirMin, lim.AirMax) && prcp <= lim.PrcpMax:
		return RatingBest
	case within(t, lim.AirMin-2, lim.AirMax+2) && prcp <= lim.PrcpMax+prcpSlack:
		return RatingGood
	default:
		return RatingOther
	}
}

func within(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// RateRegion aggregates per-month ratings over a selection:
//   - empty selection: other
//   - any bad month: bad
//   - every month best: best
//   - at least one best, or every month good: good
//   - otherwise: other
func RateRegion(act ActivityType, months MonthSelection, p *MonthlyClimateProfile, th ThresholdTable) Rating {
	if months.Empty() {
		return RatingOther
	}

	var best, good, bad int
	for _, m := range months.Slice() {
		switch RateMonth(act, m, p, th) {
		case RatingBest:
			best++
		case RatingGood:
			good++
		case RatingBad:
			bad++
		}
	}

	return aggregate(months.Len(), best, good, bad)
}

func aggregate(total, best, good, bad int) Rating {
	switch {
	case bad > 0:
		return RatingBad
	case best == total:
		return RatingBest
	case best > 0 || good == total:
		return RatingGood
	default:
		return RatingOther
	}
}

// BestMonths returns, in ascending order, every month the profile rates best
// for the activity.
func BestMonths(act ActivityType, p *MonthlyClimateProfile, th ThresholdTable) []int {
	var out []int
	for m := range MonthsPerYear {
		if RateMonth(act, m, p, th) == RatingBest {
			out = append(out, m)
		}
	}
	return out
}
