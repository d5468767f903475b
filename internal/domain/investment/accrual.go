package investment

import "time"

// AccrualAction is what the monthly accrual run should do with one investment
// for a given period end.
type AccrualAction int

const (
	// AccrualSkip: nothing to do for this period (not started yet, or the
	// period was already processed).
	AccrualSkip AccrualAction = iota
	// AccrualClose: principal is fully drawn down, close the investment.
	AccrualClose
	// AccrualComplete: the investment is past its end date, complete it.
	AccrualComplete
	// AccrualAccrue: record a profit return for this period.
	AccrualAccrue
)

// DecideAccrual evaluates one investment against a period end and returns the
// action the accrual run should take. Checks run in order: drained principal
// closes first, then the start/end window, then the already-processed guard.
// The unique (investment, period end) constraint on return rows backstops the
// already-processed guard, so a crash between creating the return and
// advancing LastProfitDate cannot double-pay.
func DecideAccrual(inv *Investment, periodEnd time.Time) AccrualAction {
	if !inv.IsActive() {
		return AccrualSkip
	}
	if inv.CurrentPrincipal.Sign() <= 0 {
		return AccrualClose
	}
	if dateOnly(inv.StartDate).After(dateOnly(periodEnd)) {
		return AccrualSkip
	}
	if inv.EndDate != nil && dateOnly(periodEnd).After(dateOnly(*inv.EndDate)) {
		return AccrualComplete
	}
	if inv.LastProfitDate != nil && !dateOnly(*inv.LastProfitDate).Before(dateOnly(periodEnd)) {
		return AccrualSkip
	}
	return AccrualAccrue
}

// LastDayOfMonth returns the last calendar day of t's month, at midnight in
// t's location.
func LastDayOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
