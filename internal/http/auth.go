package http

import (
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gig-ledger-go/internal/auth"
	"gig-ledger-go/internal/logger"
	"gig-ledger-go/internal/models"
)

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *Server) findUserByUUID(c *gin.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(c.Request.Context()).Where("uuid = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Server) respondWithToken(c *gin.Context, status int, user *models.User) {
	token, err := s.tokens.Generate(user.UUID)
	if err != nil {
		c.JSON(500, gin.H{"error": "token_generation_failed"})
		return
	}
	user.HasPin = user.PinHash != ""
	c.JSON(status, AuthResponse{Token: token, User: user})
}

// POST /v1/auth/guest
func (s *Server) authGuest(c *gin.Context) {
	var input struct {
		DeviceID string `json:"deviceId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && err != io.EOF {
		c.JSON(400, gin.H{"error": "invalid_request"})
		return
	}
	db := s.db.WithContext(c.Request.Context())

	var user models.User
	if input.DeviceID != "" {
		err := db.Where("device_id = ? AND is_guest = ?", input.DeviceID, true).First(&user).Error
		if err == nil {
			s.respondWithToken(c, 200, &user)
			return
		}
	}

	var deviceIDPtr *string
	if input.DeviceID != "" {
		deviceIDPtr = &input.DeviceID
	}

	id := uuid.NewString()
	user = models.User{
		UUID:     id,
		IsGuest:  true,
		DeviceID: deviceIDPtr,
		Username: "Guest_" + id[:8],
	}
	if err := db.Create(&user).Error; err != nil {
		logger.FromGin(c, s.log).Error("create guest failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "failed_create_guest"})
		return
	}

	s.respondWithToken(c, 200, &user)
}

// POST /v1/auth/register
//
// Registers a new account, or upgrades the caller's guest account in place
// when guestUuid is given so their records stay attached.
func (s *Server) authRegister(c *gin.Context) {
	var input struct {
		Email     string `json:"email" binding:"required,email"`
		PIN       string `json:"pin" binding:"required,len=4,numeric"`
		GuestUUID string `json:"guestUuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	db := s.db.WithContext(c.Request.Context())
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		c.JSON(409, gin.H{"error": "user_already_exists"})
		return
	}

	hash, err := auth.HashPIN(input.PIN)
	if err != nil {
		c.JSON(500, gin.H{"error": "encryption_failed"})
		return
	}

	var user models.User
	if input.GuestUUID != "" {
		if err := db.Where("uuid = ? AND is_guest = ?", input.GuestUUID, true).First(&user).Error; err == nil {
			user.Email = &email
			user.PinHash = hash
			user.IsGuest = false
			user.Username = "User_" + user.UUID[:8]
			if err := db.Save(&user).Error; err != nil {
				c.JSON(500, gin.H{"error": "failed_upgrade_guest"})
				return
			}
			s.respondWithToken(c, 201, &user)
			return
		}
	}

	id := uuid.NewString()
	user = models.User{
		UUID:     id,
		Email:    &email,
		PinHash:  hash,
		Username: "User_" + id[:8],
	}
	if err := db.Create(&user).Error; err != nil {
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	s.respondWithToken(c, 201, &user)
}

// POST /v1/auth/login
func (s *Server) authLogin(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required"`
		PIN   string `json:"pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err := s.db.WithContext(c.Request.Context()).
		Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !auth.CheckPIN(user.PinHash, input.PIN)) {
		c.JSON(401, gin.H{"error": "invalid_credentials"})
		return
	}
	if err != nil {
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}

	s.respondWithToken(c, 200, &user)
}
