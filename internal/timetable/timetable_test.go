package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kampus/orari/internal/models"
)

func strPtr(s string) *string { return &s }

func TestTimeRange(t *testing.T) {
	cases := []struct {
		name       string
		start, end *string
		want       string
	}{
		{"both", strPtr("08:00:00"), strPtr("09:30:00"), "08:00-09:30"},
		{"short form", strPtr("08:00"), strPtr("09:30"), "08:00-09:30"},
		{"no start", nil, strPtr("09:30:00"), "—-09:30"},
		{"no end", strPtr("08:00:00"), nil, "08:00-—"},
		{"empty string counts as missing", strPtr(""), strPtr("10:00:00"), "—-10:00"},
		{"neither", nil, nil, "—"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TimeRange(tc.start, tc.end))
		})
	}
}

func TestSessionLabel(t *testing.T) {
	assert.Equal(t, LabelLecture, SessionLabel(strPtr("DB_001")))
	assert.Equal(t, LabelLecture, SessionLabel(strPtr("  DB_001  ")))
	assert.Equal(t, LabelPractice, SessionLabel(strPtr("DB_002")))
	assert.Equal(t, LabelMixed, SessionLabel(strPtr("DB_003")))
	assert.Equal(t, LabelMixed, SessionLabel(strPtr("")))
	assert.Equal(t, LabelMixed, SessionLabel(nil))
}

func TestDayOfWeekMapsSundayToSeven(t *testing.T) {
	// 2025-03-02 is a Sunday.
	sunday := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 7, DayOfWeek(sunday))
	for i := 1; i <= 6; i++ {
		assert.Equal(t, i, DayOfWeek(sunday.AddDate(0, 0, i)))
	}
}

func TestDayNames(t *testing.T) {
	assert.Equal(t, "H", DayShort(1))
	assert.Equal(t, "D", DayShort(7))
	assert.Equal(t, "Wednesday", DayName(3))
	assert.Equal(t, "Sat", DayAbbrev(6))
	assert.Equal(t, "Mërkure", DayLabel(3))
	assert.Empty(t, DayShort(0))
	assert.Empty(t, DayName(8))
}

func TestDateForWeekday(t *testing.T) {
	// Wednesday 2025-03-05.
	now := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "03-03-2025", DateForWeekday(1, now))
	assert.Equal(t, "05-03-2025", DateForWeekday(3, now))
	assert.Equal(t, "09-03-2025", DateForWeekday(7, now))

	sunday := time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "03-03-2025", DateForWeekday(1, sunday))
	assert.Empty(t, DateForWeekday(9, now))
}

func TestSortByDayIsStable(t *testing.T) {
	rows := []models.ScheduleDetail{
		{Schedule: models.Schedule{ID: "c", DayOfWeek: 3}},
		{Schedule: models.Schedule{ID: "a1", DayOfWeek: 1}},
		{Schedule: models.Schedule{ID: "c2", DayOfWeek: 3}},
		{Schedule: models.Schedule{ID: "a2", DayOfWeek: 1}},
	}
	SortByDay(rows)

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"a1", "a2", "c", "c2"}, ids)
}

func TestHistogram(t *testing.T) {
	got := Histogram([]int{1, 1, 3, 7, 0, 8, 7, 7})
	require.Len(t, got, 7)
	counts := make([]int, 7)
	for i, b := range got {
		assert.Equal(t, i+1, b.Day)
		counts[i] = b.Count
	}
	assert.Equal(t, []int{2, 0, 1, 0, 0, 0, 3}, counts)
	assert.Equal(t, "Mon", got[0].Name)

	empty := Histogram(nil)
	for _, b := range empty {
		assert.Zero(t, b.Count)
	}
}

func TestLatestUpdate(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []models.ScheduleDetail{
		{Schedule: models.Schedule{CreatedAt: base, UpdatedAt: base.Add(time.Hour)}},
		{Schedule: models.Schedule{CreatedAt: base.Add(3 * time.Hour)}},
	}
	got := LatestUpdate(rows)
	require.NotNil(t, got)
	assert.Equal(t, base.Add(3*time.Hour), *got)
	assert.Nil(t, LatestUpdate(nil))
}
