package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gig-ledger-go/internal/auth"
	"gig-ledger-go/internal/config"
	"gig-ledger-go/internal/logger"
	"gig-ledger-go/internal/metrics"
)

func init() {
	// Amounts go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Server struct {
	cfg     *config.Config
	db      *gorm.DB
	log     *zap.Logger
	tokens  *auth.TokenManager
	metrics *metrics.Metrics
	schemas map[string]*gojsonschema.Schema
	now     func() time.Time
}

func NewServer(cfg *config.Config, db *gorm.DB, log *zap.Logger, m *metrics.Metrics) (*gin.Engine, error) {
	schemas, err := loadSchemas()
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:     cfg,
		db:      db,
		log:     log,
		tokens:  auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour),
		metrics: m,
		schemas: schemas,
		now:     time.Now,
	}
	return s.routes(), nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(logger.Recovery(s.log))
	r.Use(cors(s.cfg))
	r.Use(logger.GinMiddleware(s.log))
	r.Use(s.metrics.Middleware())

	r.POST("/v1/auth/guest", s.authGuest)
	r.POST("/v1/auth/register", s.authRegister)
	r.POST("/v1/auth/login", s.authLogin)

	authorized := r.Group("/v1")
	authorized.Use(s.AuthMiddleware())
	{
		authorized.POST("/bills", s.createBill)
		authorized.GET("/bills", s.listBills)
		authorized.PUT("/bills/:id", s.updateBill)
		authorized.DELETE("/bills/:id", s.deleteBill)
		authorized.POST("/bills/plan", s.generatePlan)

		authorized.POST("/agreements", s.createAgreement)
		authorized.GET("/agreements", s.listAgreements)
		authorized.PUT("/agreements/:id", s.updateAgreement)
		authorized.DELETE("/agreements/:id", s.deactivateAgreement)

		authorized.POST("/payments", s.createPayment)
		authorized.GET("/payments", s.listPayments)
		authorized.DELETE("/payments/:id", s.deletePayment)

		authorized.POST("/ious", s.createIOU)
		authorized.GET("/ious", s.listIOUs)
		authorized.GET("/ious/summary", s.iouSummary)
		authorized.DELETE("/ious/:id", s.settleIOU)
	}

	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	return r
}

func cors(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.AllowOrigins)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// AuthMiddleware resolves the bearer token to a user and stores it under
// "user" and "userID".
func (s *Server) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "authorization_header_missing"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(401, gin.H{"error": "authorization_header_invalid"})
			return
		}

		claims, err := s.tokens.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid_token"})
			return
		}

		user, err := s.findUserByUUID(c, claims.UserUUID)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid_token_user_not_found"})
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Next()
	}
}
