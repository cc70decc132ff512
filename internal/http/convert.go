package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gig-ledger-go/internal/ledger"
	"gig-ledger-go/internal/models"
)

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// today is the server's current UTC day, or the ?today= override.
func (s *Server) today(c *gin.Context) (time.Time, error) {
	if v := c.Query("today"); v != "" {
		return ledger.ParseDay("today", v)
	}
	return ledger.Day(s.now()), nil
}

func ledgerBills(bills []models.Bill) []ledger.Bill {
	out := make([]ledger.Bill, 0, len(bills))
	for _, b := range bills {
		out = append(out, ledger.Bill{ID: b.ID, Name: b.Name, Amount: b.Amount, DueDay: b.DueDay})
	}
	return out
}

func ledgerAgreements(agreements []models.Agreement) ([]ledger.Agreement, error) {
	out := make([]ledger.Agreement, 0, len(agreements))
	for _, a := range agreements {
		start, err := ledger.ParseDay("startDate", a.StartDate)
		if err != nil {
			return nil, fmt.Errorf("agreement %d: %w", a.ID, err)
		}
		out = append(out, ledger.Agreement{
			ID:         a.ID,
			PersonName: a.PersonName,
			DailyRate:  a.DailyRate,
			StartDate:  start,
			IsActive:   a.IsActive,
		})
	}
	return out, nil
}

func ledgerPayments(payments []models.Payment) ([]ledger.Payment, error) {
	out := make([]ledger.Payment, 0, len(payments))
	for _, p := range payments {
		date, err := ledger.ParseDay("paymentDate", p.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("payment %d: %w", p.ID, err)
		}
		out = append(out, ledger.Payment{
			PersonName:         p.PersonName,
			Amount:             p.Amount,
			Date:               date,
			IsAgreementPayment: p.IsAgreementPayment,
		})
	}
	return out, nil
}

func ledgerIOUs(ious []models.IOU) []ledger.IOU {
	out := make([]ledger.IOU, 0, len(ious))
	for _, i := range ious {
		out = append(out, ledger.IOU{ID: i.ID, PersonName: i.PersonName, Amount: i.Amount, IsActive: i.IsActive})
	}
	return out
}
