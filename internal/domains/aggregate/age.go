package aggregate

import "time"

// Age computes whole years elapsed between birth and end using anniversary
// semantics: the year difference, minus one while the (month, day) pair of
// end is still before that of birth. The comparison is lexicographic on the
// pair, not date arithmetic, so the anniversary day itself never decrements.
// A nil birth yields nil; a nil end means today (a still-living author).
func Age(birth, end *time.Time) *int {
	if birth == nil {
		return nil
	}

	endDate := time.Now()
	if end != nil {
		endDate = *end
	}

	years := endDate.Year() - birth.Year()
	if endDate.Month() < birth.Month() ||
		(endDate.Month() == birth.Month() && endDate.Day() < birth.Day()) {
		years--
	}

	return &years
}
