package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gig-ledger-go/internal/auth"
	"gig-ledger-go/internal/config"
	"gig-ledger-go/internal/database"
	"gig-ledger-go/internal/metrics"
)

var testNow = time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// each connection to :memory: is its own database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	schemas, err := loadSchemas()
	require.NoError(t, err)

	s := &Server{
		cfg: &config.Config{
			AllowOrigins:       "*",
			JWTSecret:          "test-secret",
			TokenTTLHours:      1,
			DefaultDailyBudget: decimal.NewFromInt(100),
		},
		db:      db,
		log:     zap.NewNop(),
		tokens:  auth.NewTokenManager("test-secret", time.Hour),
		metrics: metrics.New(),
		schemas: schemas,
		now:     func() time.Time { return testNow },
	}
	return s.routes()
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func guestToken(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/v1/auth/guest", "", map[string]string{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	r := setupTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gigledger_http_requests_total")
}

func TestAuthMiddleware(t *testing.T) {
	r := setupTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/v1/bills", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/v1/bills", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := auth.NewTokenManager("test-secret", time.Hour).Generate("no-such-user")
	require.NoError(t, err)
	w = doJSON(t, r, http.MethodGet, "/v1/bills", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_token_user_not_found")
}

func TestAuth_RegisterUpgradesGuestAndLogsIn(t *testing.T) {
	r := setupTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/v1/auth/guest", "", map[string]string{"deviceId": "phone-1"})
	require.Equal(t, http.StatusOK, w.Code)
	var guest AuthResponse
	decodeBody(t, w, &guest)
	assert.True(t, guest.User.IsGuest)

	w = doJSON(t, r, http.MethodPost, "/v1/bills", guest.Token, map[string]any{"name": "Rent", "amount": 500, "dueDayOfMonth": 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/v1/auth/guest", "", map[string]string{"deviceId": "phone-1"})
	var again AuthResponse
	decodeBody(t, w, &again)
	assert.Equal(t, guest.User.UUID, again.User.UUID)

	w = doJSON(t, r, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email": "Driver@Example.com", "pin": "4821", "guestUuid": guest.User.UUID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var registered AuthResponse
	decodeBody(t, w, &registered)
	assert.False(t, registered.User.IsGuest)
	assert.True(t, registered.User.HasPin)
	assert.Equal(t, guest.User.ID, registered.User.ID)

	w = doJSON(t, r, http.MethodPost, "/v1/auth/register", "", map[string]string{"email": "driver@example.com", "pin": "1111"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "driver@example.com", "pin": "0000"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/v1/auth/login", "", map[string]string{"email": "driver@example.com", "pin": "4821"})
	require.Equal(t, http.StatusOK, w.Code)
	var loggedIn AuthResponse
	decodeBody(t, w, &loggedIn)

	w = doJSON(t, r, http.MethodGet, "/v1/bills", loggedIn.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rent")

	w = doJSON(t, r, http.MethodPost, "/v1/auth/register", "", map[string]string{"email": "x@example.com", "pin": "12"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
