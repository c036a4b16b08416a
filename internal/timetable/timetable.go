// Package timetable derives display values for schedule rows: time ranges,
// session labels, weekday names and the weekly histogram.
package timetable

import (
	"sort"
	"strings"
	"time"

	"github.com/kampus/orari/internal/models"
)

// Placeholder renders a missing value.
const Placeholder = "—"

const (
	LabelLecture  = "Ligjerate"
	LabelPractice = "Ushrime"
	LabelMixed    = "Ligjerate/Ushrime"
)

var (
	dayShort  = [7]string{"H", "Ma", "Me", "E", "P", "Sh", "D"}
	dayName   = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	dayAbbrev = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	dayLabel  = [7]string{"Hënë", "Marte", "Mërkure", "Enjte", "Premte", "Shtune", "Diele"}
)

// FormatTime trims a HH:MM[:SS] value to HH:MM.
func FormatTime(t *string) string {
	if t == nil || *t == "" {
		return Placeholder
	}
	if len(*t) > 5 {
		return (*t)[:5]
	}
	return *t
}

// TimeRange renders "HH:MM-HH:MM". Each missing side becomes the placeholder,
// and when both are missing the placeholder stands alone.
func TimeRange(start, end *string) string {
	s, e := FormatTime(start), FormatTime(end)
	if s == Placeholder && e == Placeholder {
		return Placeholder
	}
	return s + "-" + e
}

// SessionLabel infers lecture or practice from the course code suffix.
// The suffix is a naming convention, not stored data.
func SessionLabel(code *string) string {
	if code == nil {
		return LabelMixed
	}
	trimmed := strings.TrimSpace(*code)
	switch {
	case strings.HasSuffix(trimmed, "001"):
		return LabelLecture
	case strings.HasSuffix(trimmed, "002"):
		return LabelPractice
	default:
		return LabelMixed
	}
}

// DayOfWeek maps a time to the Monday=1..Sunday=7 convention.
func DayOfWeek(t time.Time) int {
	if wd := t.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return 7
}

func lookup(names *[7]string, day int) string {
	if day < 1 || day > 7 {
		return ""
	}
	return names[day-1]
}

// DayShort is the one or two letter day used by the public table.
func DayShort(day int) string { return lookup(&dayShort, day) }

// DayName is the English day name used by the management tables.
func DayName(day int) string { return lookup(&dayName, day) }

// DayAbbrev is the three letter day used by the dashboard.
func DayAbbrev(day int) string { return lookup(&dayAbbrev, day) }

// DayLabel is the day name offered by the schedule form.
func DayLabel(day int) string { return lookup(&dayLabel, day) }

// DateForWeekday returns the DD-MM-YYYY date of day within the Monday-first
// week containing now.
func DateForWeekday(day int, now time.Time) string {
	if day < 1 || day > 7 {
		return ""
	}
	return now.AddDate(0, 0, day-DayOfWeek(now)).Format("02-01-2006")
}

// SortByDay orders rows by weekday, keeping the incoming order within a day.
func SortByDay(rows []models.ScheduleDetail) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].DayOfWeek < rows[j].DayOfWeek
	})
}

// DayCount is one histogram bucket.
type DayCount struct {
	Day   int    `json:"day"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Histogram buckets weekday values into seven Monday-first buckets. Values
// outside 1..7 are ignored.
func Histogram(days []int) [7]DayCount {
	var out [7]DayCount
	for i := range out {
		out[i] = DayCount{Day: i + 1, Name: dayAbbrev[i]}
	}
	for _, d := range days {
		if d >= 1 && d <= 7 {
			out[d-1].Count++
		}
	}
	return out
}

// LatestUpdate returns the most recent change across rows, or nil when empty.
func LatestUpdate(rows []models.ScheduleDetail) *time.Time {
	var latest time.Time
	for _, r := range rows {
		if t := r.LastTouched(); t.After(latest) {
			latest = t
		}
	}
	if latest.IsZero() {
		return nil
	}
	return &latest
}
