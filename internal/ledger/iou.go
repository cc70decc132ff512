package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

type IOU struct {
	ID         uint
	PersonName string
	Amount     decimal.Decimal
	IsActive   bool
}

type PersonSummary struct {
	PersonName   string          `json:"personName"`
	TotalOwed    decimal.Decimal `json:"totalOwed"`
	TotalPaid    decimal.Decimal `json:"totalPaid"`
	Balance      decimal.Decimal `json:"balance"`
	IOUCount     int             `json:"iouCount"`
	PaymentCount int             `json:"paymentCount"`
}

// SummarizeIOUs totals active IOUs per person and subtracts that person's
// ordinary payments. People without an active IOU are left out; overpaid
// people stay in with a negative balance. Results are sorted by balance,
// largest first.
func SummarizeIOUs(ious []IOU, payments []Payment) []PersonSummary {
	byPerson := make(map[string]*PersonSummary)
	var order []string

	for _, iou := range ious {
		if !iou.IsActive {
			continue
		}
		s, ok := byPerson[iou.PersonName]
		if !ok {
			s = &PersonSummary{PersonName: iou.PersonName, TotalOwed: decimal.Zero, TotalPaid: decimal.Zero}
			byPerson[iou.PersonName] = s
			order = append(order, iou.PersonName)
		}
		s.TotalOwed = s.TotalOwed.Add(iou.Amount)
		s.IOUCount++
	}

	for _, p := range payments {
		if p.IsAgreementPayment {
			continue
		}
		s, ok := byPerson[p.PersonName]
		if !ok {
			continue
		}
		s.TotalPaid = s.TotalPaid.Add(p.Amount)
		s.PaymentCount++
	}

	summary := make([]PersonSummary, 0, len(order))
	for _, name := range order {
		s := byPerson[name]
		s.Balance = s.TotalOwed.Sub(s.TotalPaid)
		summary = append(summary, *s)
	}
	sort.SliceStable(summary, func(i, j int) bool {
		return summary[i].Balance.GreaterThan(summary[j].Balance)
	})
	return summary
}
