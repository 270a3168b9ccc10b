package services

import (
	"time"

	"billcore/contexts/billing/billing-service/domain/entities"
	domainerrors "billcore/contexts/billing/billing-service/domain/errors"
)

// NextBillingDate maps a date and a plan cycle to the next scheduled billing
// date: MONTHLY advances one calendar month, YEARLY one calendar year.
// time.AddDate normalizes month-end overflow instead of clamping (Jan 31 plus
// one month is Mar 2 or Mar 3, not Feb 28), which is the documented behavior
// of this calendar. An unknown cycle is a programming error; the cycle set is
// closed and there is deliberately no default branch.
func NextBillingDate(from time.Time, cycle entities.BillingCycle) (time.Time, error) {
	switch cycle {
	case entities.BillingCycleMonthly:
		return from.AddDate(0, 1, 0), nil
	case entities.BillingCycleYearly:
		return from.AddDate(1, 0, 0), nil
	}
	return time.Time{}, domainerrors.ErrInvalidBillingCycle
}

// AdvanceOnSettlement decides whether paying an invoice moves the
// subscription's schedule forward. Only the invoice issued exactly at the
// start of the current billing period qualifies: its due date sits
// InvoiceDueDays after the period start, so the schedule advances iff
// NextBillingDate equals DueDate minus that offset. Manually renewed invoices
// fail the equality and leave the schedule untouched.
func AdvanceOnSettlement(
	subscription entities.Subscription,
	invoice entities.Invoice,
	cycle entities.BillingCycle,
) (time.Time, bool, error) {
	if subscription.NextBillingDate == nil {
		return time.Time{}, false, nil
	}
	periodStart := invoice.DueDate.AddDate(0, 0, -entities.InvoiceDueDays)
	if !subscription.NextBillingDate.Equal(periodStart) {
		return time.Time{}, false, nil
	}
	next, err := NextBillingDate(*subscription.NextBillingDate, cycle)
	if err != nil {
		return time.Time{}, false, err
	}
	return next, true, nil
}

// DateOf truncates a timestamp to its UTC calendar date. Start, next-billing,
// and due dates are stored as midnight-UTC dates.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
