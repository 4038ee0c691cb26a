package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWorkCalendar_IsWorkingDay(t *testing.T) {
	cal := NewWorkCalendar([]time.Time{day(2026, time.January, 26)})

	assert.True(t, cal.IsWorkingDay(day(2026, time.January, 27)), "regular Tuesday")
	assert.False(t, cal.IsWorkingDay(day(2026, time.January, 24)), "Saturday")
	assert.False(t, cal.IsWorkingDay(day(2026, time.January, 25)), "Sunday")
	assert.False(t, cal.IsWorkingDay(day(2026, time.January, 26)), "Monday holiday")
}

func TestWorkCalendar_WorkingDays(t *testing.T) {
	t.Run("skips weekend and holiday, inclusive bounds", func(t *testing.T) {
		cal := NewWorkCalendar([]time.Time{day(2026, time.January, 26)})

		days := cal.WorkingDays(day(2026, time.January, 23), day(2026, time.January, 28))

		assert.Equal(t, []time.Time{
			day(2026, time.January, 23),
			day(2026, time.January, 27),
			day(2026, time.January, 28),
		}, days)
	})

	t.Run("single working day", func(t *testing.T) {
		cal := NewWorkCalendar(nil)
		days := cal.WorkingDays(day(2026, time.February, 2), day(2026, time.February, 2))
		assert.Equal(t, []time.Time{day(2026, time.February, 2)}, days)
	})

	t.Run("weekend only range is empty", func(t *testing.T) {
		cal := NewWorkCalendar(nil)
		days := cal.WorkingDays(day(2026, time.January, 24), day(2026, time.January, 25))
		assert.Empty(t, days)
	})
}

func TestGroupConsecutive(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, groupConsecutive(nil))
	})

	t.Run("single run", func(t *testing.T) {
		days := []time.Time{
			day(2026, time.February, 2),
			day(2026, time.February, 3),
			day(2026, time.February, 4),
		}
		runs := groupConsecutive(days)
		assert.Len(t, runs, 1)
		assert.Equal(t, days, runs[0])
	})

	t.Run("friday and monday split into two runs", func(t *testing.T) {
		days := []time.Time{
			day(2026, time.January, 23),
			day(2026, time.January, 26),
			day(2026, time.January, 27),
		}
		runs := groupConsecutive(days)
		assert.Len(t, runs, 2)
		assert.Equal(t, []time.Time{day(2026, time.January, 23)}, runs[0])
		assert.Equal(t, []time.Time{day(2026, time.January, 26), day(2026, time.January, 27)}, runs[1])
	})
}
