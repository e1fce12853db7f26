package salary

import "time"

// ResolvePaymentDate returns the date within the target month on which
// payment falls for a member who joined on joiningDate, together with
// the day-of-month anchor actually used. The anchor is the joining
// day clamped to the length of the target month, so joining on the
// 31st pays on Feb 28/29 and Apr 30 rather than overflowing.
func ResolvePaymentDate(joiningDate time.Time, month Month) (time.Time, int) {
	day := joiningDate.Day()
	if d := month.Days(); day > d {
		day = d
	}
	return time.Date(month.Year, month.Month, day, 0, 0, 0, 0, joiningDate.Location()), day
}
