package membership

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextBillDateAddsCalendarMonths(t *testing.T) {
	got := NextBillDate(date(2024, time.January, 15), 3)
	assert.Equal(t, date(2024, time.April, 15), got)
}

func TestNextBillDateClampsToEndOfMonth(t *testing.T) {
	// Non-leap year: Jan 31 + 1 month = Feb 28
	assert.Equal(t, date(2023, time.February, 28), NextBillDate(date(2023, time.January, 31), 1))

	// Leap year: Jan 31 + 1 month = Feb 29
	assert.Equal(t, date(2024, time.February, 29), NextBillDate(date(2024, time.January, 31), 1))

	// Clamp only when the day overflows
	assert.Equal(t, date(2024, time.April, 30), NextBillDate(date(2024, time.March, 31), 1))
	assert.Equal(t, date(2024, time.April, 30), NextBillDate(date(2024, time.January, 30), 3))
}

func TestNextBillDateCrossesYearBoundary(t *testing.T) {
	assert.Equal(t, date(2025, time.June, 10), NextBillDate(date(2024, time.June, 10), 12))
	assert.Equal(t, date(2025, time.January, 5), NextBillDate(date(2024, time.November, 5), 2))
}

func TestNextBillDateTruncatesTimeOfDay(t *testing.T) {
	paid := time.Date(2024, time.May, 4, 18, 45, 12, 0, time.UTC)
	assert.Equal(t, date(2024, time.June, 4), NextBillDate(paid, 1))
}

func TestNextBillDateIsDeterministic(t *testing.T) {
	paid := date(2024, time.January, 31)
	first := NextBillDate(paid, 1)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, NextBillDate(paid, 1))
	}
}

func TestClassifyBoundaries(t *testing.T) {
	today := date(2024, time.April, 10)

	// Bill date equal to today is already expired
	assert.Equal(t, BillingExpired, Classify(today, today, 7))
	assert.Equal(t, BillingExpired, Classify(today.AddDate(0, 0, -1), today, 7))

	// Exactly at the threshold edge is still expiring soon
	assert.Equal(t, BillingExpiringSoon, Classify(today.AddDate(0, 0, 7), today, 7))
	assert.Equal(t, BillingExpiringSoon, Classify(today.AddDate(0, 0, 1), today, 7))

	// One day past the threshold is active
	assert.Equal(t, BillingActive, Classify(today.AddDate(0, 0, 8), today, 7))
}

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2024, time.April, 10, 23, 50, 0, 0, time.UTC)
	billDate := time.Date(2024, time.April, 10, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, BillingExpired, Classify(billDate, today, 7))
}

func TestRenewalNeverClassifiesExpired(t *testing.T) {
	// A fresh renewal with any plan of >= 1 month must come out active.
	today := date(2024, time.April, 10)
	for months := 1; months <= 24; months++ {
		next := NextBillDate(today, months)
		assert.Equal(t, BillingActive, Classify(next, today, 7),
			"duration %d months", months)
	}
}

func TestExpiringScenario(t *testing.T) {
	// Member paid 2024-01-15 on a 3-month plan; checked on 2024-04-10 with
	// a 7-day window the membership is expiring soon.
	next := NextBillDate(date(2024, time.January, 15), 3)
	assert.Equal(t, date(2024, time.April, 15), next)
	assert.Equal(t, BillingExpiringSoon, Classify(next, date(2024, time.April, 10), 7))
}
