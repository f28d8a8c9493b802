package attendance

import (
	"time"

	"officesync-ai/app/service/tool"
)

// resolvedDate is the effective query window after defaulting and
// month normalization. Day == 0 means no day filter.
type resolvedDate struct {
	Day   int
	Month int
	Year  int
}

// resolveDate applies the date-resolution policy: missing month/year
// default to the current server date, missing day means whole month,
// and out-of-range months carry into the year instead of being
// rejected. The model computes relative dates itself and is allowed to
// be off by one (month 0 means December of the previous year).
func resolveDate(args tool.Args, now time.Time) resolvedDate {
	month := args.IntOr("month", int(now.Month()))
	year := args.IntOr("year", now.Year())
	day := args.IntOr("day", 0)

	for month < 1 {
		month += 12
		year--
	}
	for month > 12 {
		month -= 12
		year++
	}

	return resolvedDate{
		Day:   day,
		Month: month,
		Year:  year,
	}
}

// parseCheckInTime accepts the upstream's ISO-8601 timestamps with or
// without a zone offset.
func parseCheckInTime(raw string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
