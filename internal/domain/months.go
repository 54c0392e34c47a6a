package domain

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

var monthAbbrev = [MonthsPerYear]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthName returns the three-letter English abbreviation for a month index,
// or an empty string when m is out of range.
func MonthName(m int) string {
	if m < 0 || m >= MonthsPerYear {
		return ""
	}
	return monthAbbrev[m]
}

// MonthSelection is a set of calendar months, bit m set for month m (0 = Jan).
// Duplicates collapse and order is irrelevant. The zero value is the empty
// selection.
type MonthSelection uint16

const allMonths MonthSelection = 1<<MonthsPerYear - 1

// NewMonthSelection builds a selection, rejecting indexes outside 0..11.
func NewMonthSelection(months ...int) (MonthSelection, error) {
	var s MonthSelection
	for _, m := range months {
		if m < 0 || m >= MonthsPerYear {
			return 0, fmt.Errorf("%w: %d", ErrInvalidMonth, m)
		}
		s |= 1 << m
	}
	return s, nil
}

// Months builds a selection from static data. Indexes wrap modulo 12, so -1
// is December.
func Months(months ...int) MonthSelection {
	var s MonthSelection
	for _, m := range months {
		s |= 1 << ((m%MonthsPerYear + MonthsPerYear) % MonthsPerYear)
	}
	return s
}

// ParseMonthList parses a comma-separated list such as "0,6,7".
func ParseMonthList(s string) (MonthSelection, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	parts := strings.Split(s, ",")
	months := make([]int, 0, len(parts))
	for _, part := range parts {
		m, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidMonth, part)
		}
		months = append(months, m)
	}
	return NewMonthSelection(months...)
}

// Has reports whether month m is selected.
func (s MonthSelection) Has(m int) bool {
	if m < 0 || m >= MonthsPerYear {
		return false
	}
	return s&(1<<m) != 0
}

// Len returns the number of distinct selected months.
func (s MonthSelection) Len() int {
	return bits.OnesCount16(uint16(s & allMonths))
}

// Empty reports whether no month is selected.
func (s MonthSelection) Empty() bool {
	return s&allMonths == 0
}

// Intersects reports whether the two selections share a month.
func (s MonthSelection) Intersects(other MonthSelection) bool {
	return s&other&allMonths != 0
}

// Slice returns the selected months in ascending order.
func (s MonthSelection) Slice() []int {
	out := make([]int, 0, s.Len())
	for m := range MonthsPerYear {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

// String renders the selection as month abbreviations, e.g. "Jan, Jul".
func (s MonthSelection) String() string {
	return joinMonthNames(s.Slice())
}

// MarshalJSON encodes the selection as an ascending array of month indexes.
func (s MonthSelection) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

// UnmarshalJSON decodes an array of month indexes, rejecting out-of-range values.
func (s *MonthSelection) UnmarshalJSON(data []byte) error {
	var months []int
	if err := json.Unmarshal(data, &months); err != nil {
		return err
	}
	sel, err := NewMonthSelection(months...)
	if err != nil {
		return err
	}
	*s = sel
	return nil
}

func joinMonthNames(months []int) string {
	names := make([]string, 0, len(months))
	for _, m := range months {
		names = append(names, MonthName(m))
	}
	return strings.Join(names, ", ")
}
