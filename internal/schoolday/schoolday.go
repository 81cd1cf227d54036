// Package schoolday resolves which calendar date the menu should be requested
// for. Schools publish no weekend menus, so both views roll weekend reference
// dates forward to the next school day instead of asking the upstream API for
// a date that cannot have data.
package schoolday

import "time"

// DateLayout is the calendar-date format used across the service and by the
// upstream provider.
const DateLayout = "2006-01-02"

// View selects which school day the caller wants.
type View int

const (
	// Today requests the current school day (or the next one on weekends).
	Today View = iota
	// NextDay requests the school day after that.
	NextDay
)

// Resolve computes the concrete date to request for the given reference
// instant and view, along with a display label. It is pure and never fails.
//
//	Today   + Sat/Sun -> next Monday,  "NEXT MONDAY"
//	Today   + weekday -> same day,     "TODAY"
//	NextDay + Sat/Sun -> next Tuesday, "NEXT TUESDAY"
//	NextDay + Friday  -> next Monday,  "NEXT MONDAY"
//	NextDay + weekday -> day + 1,      "TOMORROW"
func Resolve(ref time.Time, view View) (time.Time, string) {
	switch view {
	case NextDay:
		switch ref.Weekday() {
		case time.Saturday:
			return ref.AddDate(0, 0, 3), "NEXT TUESDAY"
		case time.Sunday:
			return ref.AddDate(0, 0, 2), "NEXT TUESDAY"
		case time.Friday:
			return ref.AddDate(0, 0, 3), "NEXT MONDAY"
		default:
			return ref.AddDate(0, 0, 1), "TOMORROW"
		}
	default:
		switch ref.Weekday() {
		case time.Saturday:
			return ref.AddDate(0, 0, 2), "NEXT MONDAY"
		case time.Sunday:
			return ref.AddDate(0, 0, 1), "NEXT MONDAY"
		default:
			return ref, "TODAY"
		}
	}
}
