package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pawtrail/pawtrail-server/internal/api"
	"github.com/pawtrail/pawtrail-server/internal/models"
	"github.com/pawtrail/pawtrail-server/internal/repository"
	"github.com/pawtrail/pawtrail-server/internal/service"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

const (
	testJWTSecret  = "test-secret-key"
	testUndoWindow = 10 * time.Minute
)

// TestContext holds all dependencies for tests
type TestContext struct {
	Router        *gin.Engine
	Repository    *repository.MemoryRepository
	Service       service.Service
	JWTSecret     []byte
	TestAccountID string
	TestUserID    string
	TestUserJWT   string
}

// SetupTestContext builds a router over a fresh in-memory store with one
// seeded account and user.
func SetupTestContext(t *testing.T) *TestContext {
	repo := repository.NewMemoryRepository()
	svc := service.NewDefaultService(repo, testJWTSecret, testUndoWindow)
	handler := api.NewHandler(svc)

	gin.SetMode(gin.TestMode)
	router := gin.Default()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(testJWTSecret))
		c.Next()
	})

	handler.SetupRoutes(router)

	accountID, userID, token := seedTestUser(t, repo)

	return &TestContext{
		Router:        router,
		Repository:    repo,
		Service:       svc,
		JWTSecret:     []byte(testJWTSecret),
		TestAccountID: accountID,
		TestUserID:    userID,
		TestUserJWT:   token,
	}
}

// CleanupTestContext clears the in-memory store
func CleanupTestContext(tc *TestContext) {
	if tc.Repository != nil {
		tc.Repository.Reset()
	}
}

// seedTestUser creates the default test account with its owner user and
// returns a signed token for them.
func seedTestUser(t *testing.T, repo repository.Repository) (string, string, string) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("testpassword"), bcrypt.DefaultCost)

	now := time.Now().UTC()
	account := &models.Account{
		ID:        uuid.New().String(),
		Name:      "Test Household",
		CreatedAt: now,
		UpdatedAt: now,
	}

	user := &models.User{
		ID:        uuid.New().String(),
		AccountID: account.ID,
		Email:     "testuser@example.com",
		Name:      "Test User",
		Password:  string(hashedPassword),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := repo.CreateAccountWithOwner(context.Background(), account, user)
	assert.NoError(t, err, "Failed to create test user")

	return account.ID, user.ID, IssueToken(t, user.ID, account.ID)
}

// IssueToken signs a JWT for the given identity with the test secret
func IssueToken(t *testing.T, userID, accountID string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"acct": accountID,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	})

	tokenString, err := token.SignedString([]byte(testJWTSecret))
	assert.NoError(t, err, "Failed to generate JWT token")

	return tokenString
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}
