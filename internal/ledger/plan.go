package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// MaxPlanDays bounds the simulation: once the plan runs past this many days
// after its start date the remaining bills are reported as unpaid.
const MaxPlanDays = 365

const PlanCapWarning = "Some bills could not be fully paid within the time limit"

// DefaultDailyBudget is the budget used when a plan request omits one.
var DefaultDailyBudget = decimal.NewFromInt(100)

type Bill struct {
	ID     uint
	Name   string
	Amount decimal.Decimal
	DueDay int
}

type PlanEntry struct {
	Date             string          `json:"date"`
	BillID           uint            `json:"billId"`
	BillName         string          `json:"billName"`
	Payment          decimal.Decimal `json:"payment"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	DueDate          string          `json:"dueDate"`
}

type UnpaidBill struct {
	BillID    uint            `json:"billId"`
	BillName  string          `json:"billName"`
	AmountDue decimal.Decimal `json:"amountDue"`
	DueDate   string          `json:"dueDate"`
}

// Plan is a simulated payment schedule. It is never persisted.
type Plan struct {
	Entries  []PlanEntry  `json:"paymentPlan"`
	Warnings []string     `json:"warnings"`
	Unpaid   []UnpaidBill `json:"unpaid"`
	Days     int          `json:"days"`
}

type workingBill struct {
	bill      Bill
	due       time.Time
	amountDue decimal.Decimal
}

// GeneratePlan spreads dailyBudget across bills one calendar day at a time,
// earliest due date first, until every bill is paid off or MaxPlanDays is
// exceeded. Every bill is due in the month containing start, and every bill
// starts from its full amount.
//
// A non-positive budget can never pay anything, so the plan comes back empty
// with every outstanding bill unpaid and the time-limit warning set.
func GeneratePlan(bills []Bill, start time.Time, dailyBudget decimal.Decimal) (*Plan, error) {
	if len(bills) == 0 {
		return nil, ErrNoBills
	}
	start = Day(start)

	working := make([]*workingBill, 0, len(bills))
	for _, b := range bills {
		working = append(working, &workingBill{
			bill:      b,
			due:       time.Date(start.Year(), start.Month(), b.DueDay, 0, 0, 0, 0, time.UTC),
			amountDue: b.Amount,
		})
	}
	sortByDueDate(working)
	working = outstanding(working)

	plan := &Plan{Entries: []PlanEntry{}, Warnings: []string{}, Unpaid: []UnpaidBill{}}
	if len(working) == 0 {
		return plan, nil
	}
	if !dailyBudget.IsPositive() {
		plan.Warnings = append(plan.Warnings, PlanCapWarning)
		plan.Unpaid = unpaidBills(working)
		return plan, nil
	}

	current := start
	for len(working) > 0 {
		sortByDueDate(working)

		remaining := dailyBudget
		for _, w := range working {
			if !remaining.IsPositive() || !w.amountDue.IsPositive() {
				continue
			}
			payment := decimal.Min(remaining, w.amountDue)
			w.amountDue = w.amountDue.Sub(payment)
			remaining = remaining.Sub(payment)

			plan.Entries = append(plan.Entries, PlanEntry{
				Date:             FormatDay(current),
				BillID:           w.bill.ID,
				BillName:         w.bill.Name,
				Payment:          payment.Round(2),
				RemainingBalance: w.amountDue.Round(2),
				DueDate:          FormatDay(w.due),
			})
		}

		working = outstanding(working)
		current = current.AddDate(0, 0, 1)
		plan.Days++

		if len(working) > 0 && daysBetween(start, current) > MaxPlanDays {
			plan.Warnings = append(plan.Warnings, PlanCapWarning)
			break
		}
	}

	plan.Unpaid = unpaidBills(working)
	return plan, nil
}

// GroupByDate indexes the plan's entries by their YYYY-MM-DD date, keeping
// the per-day order.
func (p *Plan) GroupByDate() map[string][]PlanEntry {
	grouped := make(map[string][]PlanEntry)
	for _, e := range p.Entries {
		grouped[e.Date] = append(grouped[e.Date], e)
	}
	return grouped
}

// TotalPaid sums the scheduled payments for one bill.
func (p *Plan) TotalPaid(billID uint) decimal.Decimal {
	total := decimal.Zero
	for _, e := range p.Entries {
		if e.BillID == billID {
			total = total.Add(e.Payment)
		}
	}
	return total
}

func sortByDueDate(bills []*workingBill) {
	sort.SliceStable(bills, func(i, j int) bool {
		return bills[i].due.Before(bills[j].due)
	})
}

func outstanding(bills []*workingBill) []*workingBill {
	kept := bills[:0]
	for _, w := range bills {
		if w.amountDue.IsPositive() {
			kept = append(kept, w)
		}
	}
	return kept
}

func unpaidBills(bills []*workingBill) []UnpaidBill {
	unpaid := make([]UnpaidBill, 0, len(bills))
	for _, w := range bills {
		unpaid = append(unpaid, UnpaidBill{
			BillID:    w.bill.ID,
			BillName:  w.bill.Name,
			AmountDue: w.amountDue.Round(2),
			DueDate:   FormatDay(w.due),
		})
	}
	return unpaid
}
