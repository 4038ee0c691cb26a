package leave

import "time"

const dateLayout = "2006-01-02"

// WorkCalendar answers working-day questions for one company. A working day
// is a weekday that is not a company holiday.
type WorkCalendar struct {
	holidays map[string]struct{}
}

func NewWorkCalendar(holidayDates []time.Time) *WorkCalendar {
	holidays := make(map[string]struct{}, len(holidayDates))
	for _, d := range holidayDates {
		holidays[d.Format(dateLayout)] = struct{}{}
	}
	return &WorkCalendar{holidays: holidays}
}

func (c *WorkCalendar) IsWorkingDay(d time.Time) bool {
	wd := d.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	_, holiday := c.holidays[d.Format(dateLayout)]
	return !holiday
}

// WorkingDays returns the working days between from and to, inclusive,
// in ascending order.
func (c *WorkCalendar) WorkingDays(from, to time.Time) []time.Time {
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if c.IsWorkingDay(d) {
			days = append(days, d)
		}
	}
	return days
}

// groupConsecutive splits an ascending list of days into maximal runs of
// calendar-consecutive dates. A Friday and the following Monday land in
// different runs.
func groupConsecutive(days []time.Time) [][]time.Time {
	if len(days) == 0 {
		return nil
	}

	var runs [][]time.Time
	run := []time.Time{days[0]}
	for _, d := range days[1:] {
		prev := run[len(run)-1]
		if d.AddDate(0, 0, -1).Equal(prev) {
			run = append(run, d)
			continue
		}
		runs = append(runs, run)
		run = []time.Time{d}
	}
	runs = append(runs, run)
	return runs
}
