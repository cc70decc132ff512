package http

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"gig-ledger-go/internal/ledger"
	"gig-ledger-go/internal/models"
)

func (s *Server) createPayment(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input struct {
		PersonName         string          `json:"personName"`
		Amount             decimal.Decimal `json:"amount"`
		PaymentDate        string          `json:"paymentDate"`
		IsAgreementPayment bool            `json:"isAgreementPayment"`
		Notes              string          `json:"notes"`
	}
	if !s.bindValidated(c, "payment_create", &input) {
		return
	}
	if _, err := ledger.ParseDay("paymentDate", input.PaymentDate); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	payment := models.Payment{
		UserID:             userID,
		PersonName:         strings.TrimSpace(input.PersonName),
		Amount:             input.Amount,
		PaymentDate:        input.PaymentDate,
		IsAgreementPayment: input.IsAgreementPayment,
		Notes:              input.Notes,
	}
	if err := s.db.WithContext(c.Request.Context()).Create(&payment).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, payment)
}

func (s *Server) listPayments(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	query := s.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("payment_date desc, id desc")

	switch c.Query("agreement") {
	case "true":
		query = query.Where("is_agreement_payment = ?", true)
	case "false":
		query = query.Where("is_agreement_payment = ?", false)
	}
	if person := strings.TrimSpace(c.Query("person")); person != "" {
		query = query.Where("person_name = ?", person)
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, payments)
}

func (s *Server) deletePayment(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, ok := parseID(c)
	if !ok {
		return
	}

	res := s.db.WithContext(c.Request.Context()).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Payment{})
	if res.Error != nil {
		c.JSON(500, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(404, gin.H{"error": "payment not found"})
		return
	}

	c.JSON(200, gin.H{"message": "payment deleted"})
}
