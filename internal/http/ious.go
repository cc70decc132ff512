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

func (s *Server) createIOU(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input struct {
		PersonName  string          `json:"personName"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
		Date        string          `json:"date"`
	}
	if !s.bindValidated(c, "iou_create", &input) {
		return
	}
	if input.Date == "" {
		input.Date = ledger.FormatDay(ledger.Day(s.now()))
	} else if _, err := ledger.ParseDay("date", input.Date); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	iou := models.IOU{
		UserID:      userID,
		PersonName:  strings.TrimSpace(input.PersonName),
		Amount:      input.Amount,
		Description: input.Description,
		Date:        input.Date,
		IsActive:    true,
	}
	if err := s.db.WithContext(c.Request.Context()).Create(&iou).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, iou)
}

func (s *Server) listIOUs(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	query := s.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("date desc, id desc")
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var ious []models.IOU
	if err := query.Find(&ious).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, ious)
}

// GET /v1/ious/summary
func (s *Server) iouSummary(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	db := s.db.WithContext(c.Request.Context())

	var ious []models.IOU
	if err := db.Where("user_id = ? AND is_active = ?", userID, true).Order("id asc").Find(&ious).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	var payments []models.Payment
	if err := db.Where("user_id = ? AND is_agreement_payment = ?", userID, false).Find(&payments).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	lp, err := ledgerPayments(payments)
	if err != nil {
		logger.FromGin(c, s.log).Error("stored payment is invalid", zap.Error(err))
		c.JSON(500, gin.H{"error": "invalid_stored_payment"})
		return
	}

	c.JSON(200, gin.H{"summary": ledger.SummarizeIOUs(ledgerIOUs(ious), lp)})
}

// DELETE /v1/ious/:id marks the IOU settled. The amount is never edited.
func (s *Server) settleIOU(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, ok := parseID(c)
	if !ok {
		return
	}

	res := s.db.WithContext(c.Request.Context()).
		Model(&models.IOU{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_active", false)
	if res.Error != nil {
		c.JSON(500, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(404, gin.H{"error": "iou not found"})
		return
	}

	c.JSON(200, gin.H{"message": "iou settled"})
}
