package stats

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// sheetEpochOffsetDays converts a spreadsheet serial-date number (days since
// 1899-12-30) to a Unix timestamp in days.
const sheetEpochOffsetDays = 25569

var (
	isoDayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dmyPattern    = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// ParseFecha normalizes the historical date formats found in stored records.
// In priority order: a bare ISO day (anchored to local noon so timezone
// shifts cannot move it across midnight), D/M/YYYY at local midnight, a full
// timestamp, a spreadsheet serial number, then a best-effort generic parse.
// Unparseable or empty input returns the zero time: such records sort last
// and never match a date range, but are never rejected.
func ParseFecha(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	if isoDayPattern.MatchString(s) {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return time.Time{}
		}
		return t.Add(12 * time.Hour)
	}

	if m := dmyPattern.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
		}
		return time.Time{}
	}

	if strings.Contains(s, "T") {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
		if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
			return t
		}
		return time.Time{}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Unix(int64((serial-sheetEpochOffsetDays)*86400), 0)
	}

	for _, layout := range []string{
		"2006-01-02 15:04:05",
		"02-01-2006",
		time.RFC1123,
	} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

// DiaInicio returns the inclusive lower bound of t's local calendar day.
func DiaInicio(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// DiaFin returns the inclusive upper bound of t's local calendar day.
func DiaFin(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.Local)
}
