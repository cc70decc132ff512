package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgreementStatusFor_NothingPaid(t *testing.T) {
	today := day("2024-05-20")
	a := Agreement{ID: 1, PersonName: "Sam", DailyRate: dec("10"), StartDate: today.AddDate(0, 0, -4), IsActive: true}

	s := AgreementStatusFor(a, nil, today)

	assert.Equal(t, 5, s.DaysElapsed)
	assert.True(t, s.ExpectedTotal.Equal(dec("50")))
	assert.True(t, s.TotalPaid.IsZero())
	assert.True(t, s.RunningBalance.Equal(dec("50")))
	assert.Equal(t, int64(-5), s.DaysAhead)
	assert.True(t, s.IOUDebt.IsZero())
	assert.Equal(t, "2024-05-16", s.StartDate)
}

func TestAgreementStatusFor_PaidAhead(t *testing.T) {
	today := day("2024-05-20")
	a := Agreement{ID: 1, PersonName: "Sam", DailyRate: dec("15"), StartDate: day("2024-05-18"), IsActive: true}
	payments := []Payment{
		{PersonName: "Sam", Amount: dec("100"), Date: day("2024-05-18"), IsAgreementPayment: true},
	}

	s := AgreementStatusFor(a, payments, today)

	assert.Equal(t, 3, s.DaysElapsed)
	assert.True(t, s.RunningBalance.Equal(dec("-55")))
	// 55 / 15 = 3.67 days of credit
	assert.Equal(t, int64(3), s.DaysAhead)
}

func TestAgreementStatusFor_PartialDayBehind(t *testing.T) {
	today := day("2024-05-20")
	a := Agreement{PersonName: "Sam", DailyRate: dec("10"), StartDate: day("2024-05-16")}
	payments := []Payment{{PersonName: "Sam", Amount: dec("35"), Date: today, IsAgreementPayment: true}}

	s := AgreementStatusFor(a, payments, today)

	assert.True(t, s.RunningBalance.Equal(dec("15")))
	assert.Equal(t, int64(-2), s.DaysAhead)
}

func TestAgreementStatusFor_FutureStart(t *testing.T) {
	today := day("2024-05-20")
	a := Agreement{PersonName: "Kim", DailyRate: dec("20"), StartDate: day("2024-06-02"), IsActive: true}
	payments := []Payment{{PersonName: "Kim", Amount: dec("40"), Date: day("2024-05-19"), IsAgreementPayment: true}}

	s := AgreementStatusFor(a, payments, today)

	assert.Equal(t, 0, s.DaysElapsed)
	assert.True(t, s.ExpectedTotal.IsZero())
	assert.True(t, s.RunningBalance.Equal(dec("-40")))
	assert.Equal(t, int64(2), s.DaysAhead)
	assert.Empty(t, s.DailyBreakdown)

	assert.Equal(t, 0, s.CurrentMonth.Days)
	assert.True(t, s.CurrentMonth.Expected.IsZero())
	assert.True(t, s.CurrentMonth.Paid.IsZero())
	assert.True(t, s.CurrentMonth.Balance.IsZero())
}

func TestAgreementStatusFor_StartsToday(t *testing.T) {
	today := day("2024-05-20")
	a := Agreement{PersonName: "Kim", DailyRate: dec("20"), StartDate: today}

	s := AgreementStatusFor(a, nil, today)

	assert.Equal(t, 1, s.DaysElapsed)
	assert.True(t, s.ExpectedTotal.Equal(dec("20")))
	require.Len(t, s.DailyBreakdown, 1)
	assert.Equal(t, "2024-05-20", s.DailyBreakdown[0].Date)
}

func TestAgreementStatusFor_CurrentMonth(t *testing.T) {
	today := day("2024-05-10")
	a := Agreement{PersonName: "Lee", DailyRate: dec("12.50"), StartDate: day("2024-04-20")}
	payments := []Payment{
		{PersonName: "Lee", Amount: dec("100"), Date: day("2024-04-25"), IsAgreementPayment: true},
		{PersonName: "Lee", Amount: dec("60"), Date: day("2024-05-02"), IsAgreementPayment: true},
		{PersonName: "Lee", Amount: dec("25"), Date: day("2024-05-31"), IsAgreementPayment: true},
		{PersonName: "Lee", Amount: dec("999"), Date: day("2024-05-03"), IsAgreementPayment: false},
	}

	s := AgreementStatusFor(a, payments, today)

	assert.Equal(t, "2024-05-01", s.CurrentMonth.Start)
	assert.Equal(t, "2024-05-31", s.CurrentMonth.End)
	assert.Equal(t, 10, s.CurrentMonth.Days)
	assert.True(t, s.CurrentMonth.Expected.Equal(dec("125")))
	assert.True(t, s.CurrentMonth.Paid.Equal(dec("85")))
	assert.True(t, s.CurrentMonth.Balance.Equal(dec("40")))

	assert.Equal(t, 21, s.DaysElapsed)
	assert.True(t, s.TotalPaid.Equal(dec("185")))
}

func TestAgreementStatusFor_StartInsideCurrentMonth(t *testing.T) {
	today := day("2024-05-10")
	a := Agreement{PersonName: "Lee", DailyRate: dec("10"), StartDate: day("2024-05-07")}

	s := AgreementStatusFor(a, nil, today)

	assert.Equal(t, 4, s.CurrentMonth.Days)
	assert.True(t, s.CurrentMonth.Expected.Equal(dec("40")))
}

func TestAgreementStatusFor_DailyBreakdown(t *testing.T) {
	today := day("2024-05-10")
	a := Agreement{PersonName: "Ana", DailyRate: dec("10"), StartDate: day("2024-05-01")}
	payments := []Payment{{PersonName: "Ana", Amount: dec("45"), Date: day("2024-05-02"), IsAgreementPayment: true}}

	s := AgreementStatusFor(a, payments, today)

	require.Len(t, s.DailyBreakdown, 10)

	latest := s.DailyBreakdown[0]
	assert.Equal(t, 10, latest.DayNumber)
	assert.Equal(t, "2024-05-10", latest.Date)
	assert.True(t, latest.CumulativeExpected.Equal(dec("100")))
	assert.True(t, latest.CumulativePaid.Equal(dec("45")))
	assert.True(t, latest.Balance.Equal(dec("55")))
	assert.False(t, latest.IsPaid)

	day4 := s.DailyBreakdown[6]
	assert.Equal(t, 4, day4.DayNumber)
	assert.True(t, day4.CumulativePaid.Equal(dec("40")))
	assert.True(t, day4.Balance.IsZero())
	assert.True(t, day4.IsPaid)

	first := s.DailyBreakdown[9]
	assert.Equal(t, 1, first.DayNumber)
	assert.Equal(t, "2024-05-01", first.Date)
}

func TestAgreementStatusFor_BreakdownCapped(t *testing.T) {
	today := day("2024-05-10")
	a := Agreement{PersonName: "Ana", DailyRate: dec("1"), StartDate: day("2023-05-10")}

	s := AgreementStatusFor(a, nil, today)

	assert.Equal(t, 367, s.DaysElapsed)
	require.Len(t, s.DailyBreakdown, MaxBreakdownDays)
	assert.Equal(t, 367, s.DailyBreakdown[0].DayNumber)
	assert.Equal(t, 308, s.DailyBreakdown[MaxBreakdownDays-1].DayNumber)
}

func TestAgreementStatusFor_PoolsPaymentsAcrossAgreements(t *testing.T) {
	today := day("2024-05-10")
	first := Agreement{ID: 1, PersonName: "Bo", DailyRate: dec("5"), StartDate: day("2024-05-01"), IsActive: true}
	second := Agreement{ID: 2, PersonName: "Bo", DailyRate: dec("20"), StartDate: day("2024-05-06"), IsActive: true}
	payments := []Payment{{PersonName: "Bo", Amount: dec("80"), Date: day("2024-05-06"), IsAgreementPayment: true}}

	statuses := AgreementStatuses([]Agreement{first, second}, payments, today)

	require.Len(t, statuses, 2)
	assert.True(t, statuses[0].TotalPaid.Equal(dec("80")))
	assert.True(t, statuses[1].TotalPaid.Equal(dec("80")))
}

func TestAgreementStatuses_SkipsInactive(t *testing.T) {
	today := day("2024-05-10")
	agreements := []Agreement{
		{ID: 1, PersonName: "A", DailyRate: dec("5"), StartDate: today, IsActive: true},
		{ID: 2, PersonName: "B", DailyRate: dec("5"), StartDate: today, IsActive: false},
		{ID: 3, PersonName: "C", DailyRate: dec("5"), StartDate: today, IsActive: true},
	}

	statuses := AgreementStatuses(agreements, nil, today)

	require.Len(t, statuses, 2)
	assert.Equal(t, uint(1), statuses[0].AgreementID)
	assert.Equal(t, uint(3), statuses[1].AgreementID)
}

func TestAgreementStatusFor_TruncatesToday(t *testing.T) {
	a := Agreement{PersonName: "Ana", DailyRate: dec("10"), StartDate: day("2024-05-01")}

	s := AgreementStatusFor(a, nil, day("2024-05-03").Add(23*time.Hour))

	assert.Equal(t, 3, s.DaysElapsed)
	assert.True(t, s.ExpectedTotal.Equal(decimal.NewFromInt(30)))
}
