// Package streak computes consecutive-day activity streaks.
package streak

import "time"

const dayLayout = "2006-01-02"

// Current returns the number of consecutive calendar days, ending today or
// yesterday, that contain at least one timestamp. Days are taken in
// asOf's location. Activity after asOf's day is ignored.
func Current(timestamps []time.Time, asOf time.Time) int {
	if len(timestamps) == 0 {
		return 0
	}
	loc := asOf.Location()

	days := make(map[string]bool, len(timestamps))
	for _, ts := range timestamps {
		days[ts.In(loc).Format(dayLayout)] = true
	}

	// Noon keeps AddDate away from DST transitions at midnight.
	y, m, d := asOf.Date()
	check := time.Date(y, m, d, 12, 0, 0, 0, loc)

	if !days[check.Format(dayLayout)] {
		check = check.AddDate(0, 0, -1)
		if !days[check.Format(dayLayout)] {
			return 0
		}
	}

	streak := 0
	for days[check.Format(dayLayout)] {
		streak++
		check = check.AddDate(0, 0, -1)
	}
	return streak
}
