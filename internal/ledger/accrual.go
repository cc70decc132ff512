package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxBreakdownDays caps the per-day history returned with an agreement status.
const MaxBreakdownDays = 60

// Agreement is a flat per-day obligation with one person.
type Agreement struct {
	ID         uint
	PersonName string
	DailyRate  decimal.Decimal
	StartDate  time.Time
	IsActive   bool
}

// Payment is money received from (or paid to) a person. Agreement payments
// only count toward daily-rate agreements; the rest only settle IOUs.
type Payment struct {
	PersonName         string
	Amount             decimal.Decimal
	Date               time.Time
	IsAgreementPayment bool
}

type MonthWindow struct {
	Start    string          `json:"start"`
	End      string          `json:"end"`
	Days     int             `json:"days"`
	Expected decimal.Decimal `json:"expected"`
	Paid     decimal.Decimal `json:"paid"`
	Balance  decimal.Decimal `json:"balance"`
}

type DayAccrual struct {
	Date               string          `json:"date"`
	DayNumber          int             `json:"dayNumber"`
	CumulativeExpected decimal.Decimal `json:"cumulativeExpected"`
	CumulativePaid     decimal.Decimal `json:"cumulativePaid"`
	Balance            decimal.Decimal `json:"balance"`
	IsPaid             bool            `json:"isPaid"`
}

type AgreementStatus struct {
	AgreementID    uint            `json:"agreementId"`
	PersonName     string          `json:"personName"`
	DailyRate      decimal.Decimal `json:"dailyRate"`
	StartDate      string          `json:"startDate"`
	DaysElapsed    int             `json:"daysElapsed"`
	ExpectedTotal  decimal.Decimal `json:"expectedTotal"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	DaysAhead      int64           `json:"daysAhead"`
	// IOUDebt is always zero: agreements and IOUs are separate ledgers.
	IOUDebt        decimal.Decimal `json:"iouDebt"`
	CurrentMonth   MonthWindow     `json:"currentMonth"`
	DailyBreakdown []DayAccrual    `json:"dailyBreakdown"`
}

// AgreementStatusFor computes the running balance of one agreement as of today.
//
// Payments are matched by person name only, so a person with several
// agreements has the same pooled total applied to each of them. The daily
// breakdown caps the lifetime total at each day's expected amount rather
// than replaying payment dates.
func AgreementStatusFor(a Agreement, payments []Payment, today time.Time) AgreementStatus {
	today = Day(today)
	start := Day(a.StartDate)
	rate := a.DailyRate

	daysElapsed := daysBetween(start, today) + 1
	if daysElapsed < 0 {
		daysElapsed = 0
	}

	var matched []Payment
	totalPaid := decimal.Zero
	for _, p := range payments {
		if !p.IsAgreementPayment || p.PersonName != a.PersonName {
			continue
		}
		matched = append(matched, p)
		totalPaid = totalPaid.Add(p.Amount)
	}

	expected := rate.Mul(decimal.NewFromInt(int64(daysElapsed)))
	running := expected.Sub(totalPaid)

	var daysAhead int64
	if rate.IsPositive() {
		daysAhead = running.Neg().Div(rate).Floor().IntPart()
	}

	return AgreementStatus{
		AgreementID:    a.ID,
		PersonName:     a.PersonName,
		DailyRate:      rate,
		StartDate:      FormatDay(start),
		DaysElapsed:    daysElapsed,
		ExpectedTotal:  expected,
		TotalPaid:      totalPaid,
		RunningBalance: running,
		DaysAhead:      daysAhead,
		IOUDebt:        decimal.Zero,
		CurrentMonth:   currentMonth(start, today, rate, matched),
		DailyBreakdown: dailyBreakdown(start, daysElapsed, rate, totalPaid),
	}
}

// AgreementStatuses evaluates every active agreement, in input order.
func AgreementStatuses(agreements []Agreement, payments []Payment, today time.Time) []AgreementStatus {
	statuses := make([]AgreementStatus, 0, len(agreements))
	for _, a := range agreements {
		if !a.IsActive {
			continue
		}
		statuses = append(statuses, AgreementStatusFor(a, payments, today))
	}
	return statuses
}

func currentMonth(start, today time.Time, rate decimal.Decimal, payments []Payment) MonthWindow {
	first, last := monthBounds(today)
	w := MonthWindow{
		Start:    FormatDay(first),
		End:      FormatDay(last),
		Expected: decimal.Zero,
		Paid:     decimal.Zero,
		Balance:  decimal.Zero,
	}
	if start.After(today) {
		return w
	}

	effective := start
	if first.After(start) {
		effective = first
	}
	w.Days = daysBetween(effective, today) + 1
	w.Expected = rate.Mul(decimal.NewFromInt(int64(w.Days)))

	for _, p := range payments {
		d := Day(p.Date)
		if d.Before(first) || d.After(last) {
			continue
		}
		w.Paid = w.Paid.Add(p.Amount)
	}
	w.Balance = w.Expected.Sub(w.Paid)
	return w
}

func dailyBreakdown(start time.Time, daysElapsed int, rate, totalPaid decimal.Decimal) []DayAccrual {
	n := min(daysElapsed, MaxBreakdownDays)
	days := make([]DayAccrual, 0, n)
	for i := 0; i < n; i++ {
		dayNumber := daysElapsed - i
		cumExpected := rate.Mul(decimal.NewFromInt(int64(dayNumber)))
		cumPaid := decimal.Min(totalPaid, cumExpected)
		days = append(days, DayAccrual{
			Date:               FormatDay(start.AddDate(0, 0, dayNumber-1)),
			DayNumber:          dayNumber,
			CumulativeExpected: cumExpected,
			CumulativePaid:     cumPaid,
			Balance:            decimal.Max(decimal.Zero, cumExpected.Sub(cumPaid)),
			IsPaid:             cumPaid.GreaterThanOrEqual(cumExpected),
		})
	}
	return days
}
