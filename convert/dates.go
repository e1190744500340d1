package convert

import (
	"strconv"
	"strings"
	"time"
)

// NormalizeDate converts a DD.MM.YYYY value into ISO-8601 form
// (YYYY-MM-DD). Exactly three dot-separated components are required and
// the year must be four characters. Anything that is not a valid calendar
// date in that form comes back as null; bad data never aborts a run.
func NormalizeDate(raw, null string) string {
	parts := strings.Split(strings.TrimSpace(raw), ".")
	if len(parts) != 3 || len(parts[2]) != 4 {
		return null
	}

	day, errD := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	year, errY := strconv.Atoi(parts[2])
	if errD != nil || errM != nil || errY != nil {
		return null
	}
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return null
	}

	// time.Date normalizes out-of-range values (Feb 30 becomes Mar 1),
	// so round-trip the components to reject invalid calendar dates.
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return null
	}

	return d.Format("2006-01-02")
}
