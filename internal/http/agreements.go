package http

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gig-ledger-go/internal/ledger"
	"gig-ledger-go/internal/logger"
	"gig-ledger-go/internal/models"
)

func (s *Server) createAgreement(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input struct {
		PersonName string          `json:"personName"`
		DailyRate  decimal.Decimal `json:"dailyRate"`
		StartDate  string          `json:"startDate"`
		Notes      string          `json:"notes"`
	}
	if !s.bindValidated(c, "agreement_create", &input) {
		return
	}
	if _, err := ledger.ParseDay("startDate", input.StartDate); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	agreement := models.Agreement{
		UserID:     userID,
		PersonName: strings.TrimSpace(input.PersonName),
		DailyRate:  input.DailyRate,
		StartDate:  input.StartDate,
		IsActive:   true,
		Notes:      input.Notes,
	}
	if err := s.db.WithContext(c.Request.Context()).Create(&agreement).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, agreement)
}

// GET /v1/agreements
//
// With includeStatus=true every active agreement also gets an accrual
// status, in the same order as the agreements list.
func (s *Server) listAgreements(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	db := s.db.WithContext(c.Request.Context())

	query := db.Where("user_id = ?", userID).Order("person_name asc, id asc")
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var agreements []models.Agreement
	if err := query.Find(&agreements).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	if c.Query("includeStatus") != "true" {
		c.JSON(200, gin.H{"agreements": agreements})
		return
	}

	today, err := s.today(c)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	var payments []models.Payment
	if err := db.Where("user_id = ? AND is_agreement_payment = ?", userID, true).Find(&payments).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	la, err := ledgerAgreements(agreements)
	if err != nil {
		logger.FromGin(c, s.log).Error("stored agreement is invalid", zap.Error(err))
		c.JSON(500, gin.H{"error": "invalid_stored_agreement"})
		return
	}
	lp, err := ledgerPayments(payments)
	if err != nil {
		logger.FromGin(c, s.log).Error("stored payment is invalid", zap.Error(err))
		c.JSON(500, gin.H{"error": "invalid_stored_payment"})
		return
	}

	c.JSON(200, gin.H{
		"agreements": agreements,
		"statuses":   ledger.AgreementStatuses(la, lp, today),
	})
}

func (s *Server) updateAgreement(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, ok := parseID(c)
	if !ok {
		return
	}
	db := s.db.WithContext(c.Request.Context())

	var agreement models.Agreement
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&agreement).Error; err != nil {
		if isNotFound(err) {
			c.JSON(404, gin.H{"error": "agreement not found"})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	var input struct {
		DailyRate *decimal.Decimal `json:"dailyRate"`
		StartDate *string          `json:"startDate"`
		IsActive  *bool            `json:"isActive"`
		Notes     *string          `json:"notes"`
	}
	if !s.bindValidated(c, "agreement_update", &input) {
		return
	}

	if input.DailyRate != nil {
		agreement.DailyRate = *input.DailyRate
	}
	if input.StartDate != nil {
		if _, err := ledger.ParseDay("startDate", *input.StartDate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		agreement.StartDate = *input.StartDate
	}
	if input.IsActive != nil {
		agreement.IsActive = *input.IsActive
	}
	if input.Notes != nil {
		agreement.Notes = *input.Notes
	}

	if err := db.Save(&agreement).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, agreement)
}

// DELETE /v1/agreements/:id only deactivates; the history stays.
func (s *Server) deactivateAgreement(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, ok := parseID(c)
	if !ok {
		return
	}

	res := s.db.WithContext(c.Request.Context()).
		Model(&models.Agreement{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_active", false)
	if res.Error != nil {
		c.JSON(500, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(404, gin.H{"error": "agreement not found"})
		return
	}

	c.JSON(200, gin.H{"message": "agreement deactivated"})
}
