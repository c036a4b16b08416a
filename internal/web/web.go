// Package web holds the embedded page templates and their helper functions.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/kampus/orari/internal/timetable"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every page template with the helper functions bound to
// loc, the zone used to display timestamps.
func Templates(loc *time.Location) (*template.Template, error) {
	if loc == nil {
		loc = time.UTC
	}
	tmpl, err := template.New("").Funcs(Funcs(loc)).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// Funcs returns the template helpers.
func Funcs(loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"timeRange":  timetable.TimeRange,
		"formatTime": timetable.FormatTime,
		"dayName":    timetable.DayName,
		"dayShort":   timetable.DayShort,
		"dayLabel":   timetable.DayLabel,
		"sessionLabel": func(code string) string {
			return timetable.SessionLabel(&code)
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"orDash": func(s string) string {
			if strings.TrimSpace(s) == "" {
				return timetable.Placeholder
			}
			return s
		},
		"datetime": func(t *time.Time) string {
			if t == nil || t.IsZero() {
				return timetable.Placeholder
			}
			return t.In(loc).Format("02.01.2006 15:04")
		},
		"creditsLabel": func(credits int) string {
			return fmt.Sprintf("%d x 45min", credits)
		},
		"str": func(v interface{}) string { return fmt.Sprint(v) },
		"timePtr": func(t time.Time) *time.Time {
			return &t
		},
		"rowRef": func(entity, id string) RowRef {
			return RowRef{Entity: entity, ID: id}
		},
	}
}

// RowRef addresses one table row for the row action links.
type RowRef struct {
	Entity string
	ID     string
}
