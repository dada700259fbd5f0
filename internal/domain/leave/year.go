package leave

import "time"

// ResolveLeaveYear computes the leave year containing today, anchored
// to the hiring-date anniversary. If today is before this calendar
// year's anniversary the window began on last year's anniversary;
// otherwise it began on this year's.
func ResolveLeaveYear(hiringDate, today time.Time) LeaveYearWindow {
	day := dateOnly(today)
	anchor := anniversaryIn(day.Year(), hiringDate)
	if day.Before(anchor) {
		return LeaveYearWindow{
			Start: anniversaryIn(day.Year()-1, hiringDate),
			End:   anchor.AddDate(0, 0, -1),
		}
	}
	return LeaveYearWindow{
		Start: anchor,
		End:   anniversaryIn(day.Year()+1, hiringDate).AddDate(0, 0, -1),
	}
}

// NextAnniversary returns the first hiring anniversary on or after today.
func NextAnniversary(hiringDate, today time.Time) time.Time {
	day := dateOnly(today)
	anchor := anniversaryIn(day.Year(), hiringDate)
	if anchor.Before(day) {
		return anniversaryIn(day.Year()+1, hiringDate)
	}
	return anchor
}

// Contains reports whether the given date falls inside the window.
func (w LeaveYearWindow) Contains(t time.Time) bool {
	day := dateOnly(t)
	return !day.Before(w.Start) && !day.After(w.End)
}

// InclusiveDays counts whole days in [start, end], both ends included:
// a single-day span is 1 day.
func InclusiveDays(start, end time.Time) (int, error) {
	s, e := dateOnly(start), dateOnly(end)
	if e.Before(s) {
		return 0, ErrInvalidRange
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}

// anniversaryIn maps the hiring-date month/day into the given year.
// A Feb 29 hiring date falls back to Feb 28 in non-leap years, so the
// anniversary never drifts into March.
func anniversaryIn(year int, hiringDate time.Time) time.Time {
	month, day := hiringDate.Month(), hiringDate.Day()
	if month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
