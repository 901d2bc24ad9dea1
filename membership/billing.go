// Package membership holds the billing lifecycle arithmetic: deriving a
// member's next bill date from a payment date and a plan duration, and
// classifying a member's billing state against today. Everything here is
// pure; controllers and the renewal scheduler call into it.
package membership

import "time"

// Billing classification enum values. This is a read-time categorization
// derived from the next bill date, distinct from the persisted
// ACTIVE/INACTIVE administrative status on the member row.
const (
	BillingActive       = "ACTIVE"
	BillingExpiringSoon = "EXPIRING_SOON"
	BillingExpired      = "EXPIRED"
)

// NextBillDate adds durationMonths calendar months to paymentDate and
// returns the result truncated to midnight. When the day of month does not
// exist in the target month, it clamps to the last day of that month, so
// Jan 31 + 1 month is Feb 28 (Feb 29 in leap years), never Mar 2/3.
func NextBillDate(paymentDate time.Time, durationMonths int) time.Time {
	y, m, d := paymentDate.Date()
	loc := paymentDate.Location()

	// Walk from the first of the target month so time.AddDate cannot
	// overflow into the month after.
	firstOfTarget := time.Date(y, m, 1, 0, 0, 0, 0, loc).AddDate(0, durationMonths, 0)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, loc)
}

// Classify returns the billing classification of a next bill date as of
// today. Comparisons are day-granular. Boundary rules: a bill date equal to
// today is already EXPIRED; a bill date exactly thresholdDays away is still
// EXPIRING_SOON.
func Classify(nextBillDate, today time.Time, thresholdDays int) string {
	next := StartOfDay(nextBillDate)
	day := StartOfDay(today)

	if !next.After(day) {
		return BillingExpired
	}
	if !next.After(day.AddDate(0, 0, thresholdDays)) {
		return BillingExpiringSoon
	}
	return BillingActive
}

// StartOfDay truncates t to midnight in its own location. Billing dates are
// day-granular everywhere in this system.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
