package http

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gig-ledger-go/internal/ledger"
	"gig-ledger-go/internal/logger"
	"gig-ledger-go/internal/models"
)

type billInput struct {
	Name     *string          `json:"name"`
	Amount   *decimal.Decimal `json:"amount"`
	DueDay   *int             `json:"dueDayOfMonth"`
	Category *string          `json:"category"`
	Notes    *string          `json:"notes"`
}

func (in billInput) apply(b *models.Bill) {
	if in.Name != nil {
		b.Name = strings.TrimSpace(*in.Name)
	}
	if in.Amount != nil {
		b.Amount = *in.Amount
	}
	if in.DueDay != nil {
		b.DueDay = *in.DueDay
	}
	if in.Category != nil {
		b.Category = *in.Category
	}
	if in.Notes != nil {
		b.Notes = *in.Notes
	}
}

func (s *Server) createBill(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input billInput
	if !s.bindValidated(c, "bill_create", &input) {
		return
	}

	bill := models.Bill{UserID: userID}
	input.apply(&bill)
	if err := s.db.WithContext(c.Request.Context()).Create(&bill).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, bill)
}

func (s *Server) listBills(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var bills []models.Bill
	if err := s.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("due_day asc, id asc").
		Find(&bills).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, bills)
}

func (s *Server) updateBill(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, ok := parseID(c)
	if !ok {
		return
	}
	db := s.db.WithContext(c.Request.Context())

	var bill models.Bill
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&bill).Error; err != nil {
		c.JSON(404, gin.H{"error": "bill not found"})
		return
	}

	var input billInput
	if !s.bindValidated(c, "bill_update", &input) {
		return
	}
	input.apply(&bill)

	if err := db.Save(&bill).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, bill)
}

func (s *Server) deleteBill(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, ok := parseID(c)
	if !ok {
		return
	}

	res := s.db.WithContext(c.Request.Context()).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Bill{})
	if res.Error != nil {
		c.JSON(500, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(404, gin.H{"error": "bill not found"})
		return
	}

	c.JSON(200, gin.H{"message": "bill deleted"})
}

// POST /v1/bills/plan
//
// Simulates paying the caller's bills from a fixed daily budget. Nothing is
// written back; the plan is recomputed on every request.
func (s *Server) generatePlan(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input struct {
		StartDate    string           `json:"startDate"`
		DailyPayment *decimal.Decimal `json:"dailyPayment"`
	}
	if !s.bindValidated(c, "plan_request", &input) {
		return
	}

	start, err := ledger.ParseDay("startDate", input.StartDate)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	budget := s.cfg.DefaultDailyBudget
	if input.DailyPayment != nil {
		budget = *input.DailyPayment
	}

	var bills []models.Bill
	if err := s.db.WithContext(c.Request.Context()).Where("user_id = ?", userID).Order("id asc").Find(&bills).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	plan, err := ledger.GeneratePlan(ledgerBills(bills), start, budget)
	if errors.Is(err, ledger.ErrNoBills) {
		c.JSON(400, gin.H{"error": "No bills found. Add bills before generating a payment plan."})
		return
	}
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	capped := len(plan.Warnings) > 0
	s.metrics.ObservePlan(plan.Days, capped)
	logger.FromGin(c, s.log).Debug("payment plan generated",
		zap.Int("bills", len(bills)),
		zap.Int("days", plan.Days),
		zap.Int("entries", len(plan.Entries)),
		zap.Bool("capped", capped),
	)

	c.JSON(200, gin.H{
		"paymentPlan":   plan.Entries,
		"groupedByDate": plan.GroupByDate(),
		"warnings":      plan.Warnings,
		"unpaid":        plan.Unpaid,
		"days":          plan.Days,
	})
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
