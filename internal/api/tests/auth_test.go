package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pawtrail/pawtrail-server/internal/api/testutils"
	"github.com/pawtrail/pawtrail-server/internal/joincode"
	"github.com/pawtrail/pawtrail-server/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSignup(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// Test case 1: Successful signup creates an account and its first user
	signupReq := models.SignUpRequest{
		Email:       "newuser@example.com",
		UserName:    "New User",
		AccountName: "New Household",
		Password:    "Password123",
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/signup",
		signupReq,
		nil,
	)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp models.AuthResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.UserID)
	assert.NotEmpty(t, resp.AccountID)

	// Test case 2: Duplicate email
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/signup",
		signupReq,
		nil,
	)

	assert.Equal(t, http.StatusConflict, w.Code)

	// Test case 3: Invalid request (missing required fields)
	invalidReq := models.SignUpRequest{
		Email: "invalid@example.com",
		// Missing user name, account name and password
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/signup",
		invalidReq,
		nil,
	)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJoin(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// Fetch the joining code of the seeded account
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/account",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var account models.AccountResponse
	err := json.Unmarshal(w.Body.Bytes(), &account)
	assert.NoError(t, err)
	assert.NotEmpty(t, account.JoiningCode)

	// Test case 1: Successful join lands the new user in the same account
	joinReq := models.JoinRequest{
		Email:       "second@example.com",
		UserName:    "Second User",
		Password:    "Password123",
		JoiningCode: account.JoiningCode,
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/join",
		joinReq,
		nil,
	)

	assert.Equal(t, http.StatusCreated, w.Code)

	var joined models.AuthResponse
	err = json.Unmarshal(w.Body.Bytes(), &joined)
	assert.NoError(t, err)
	assert.Equal(t, testCtx.TestAccountID, joined.AccountID)

	// Test case 2: Unparseable joining code
	joinReq.Email = "third@example.com"
	joinReq.JoiningCode = "not-a-code"

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/join",
		joinReq,
		nil,
	)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 3: Code pointing at a missing account leaves no user behind
	deadCode := joincode.New("Ghost Household", "Nobody", "00000000-0000-0000-0000-000000000000")
	joinReq.JoiningCode = deadCode.String()

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/join",
		joinReq,
		nil,
	)

	assert.Equal(t, http.StatusNotFound, w.Code)

	loginReq := models.LoginRequest{
		Email:    "third@example.com",
		Password: "Password123",
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		loginReq,
		nil,
	)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Test case 4: Email already taken
	joinReq.Email = "testuser@example.com"
	joinReq.JoiningCode = account.JoiningCode

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/join",
		joinReq,
		nil,
	)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// Test case 1: Successful login
	loginReq := models.LoginRequest{
		Email:    "testuser@example.com",
		Password: "testpassword",
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		loginReq,
		nil,
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.AuthResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, testCtx.TestAccountID, resp.AccountID)

	// Test case 2: Invalid credentials
	invalidLoginReq := models.LoginRequest{
		Email:    "testuser@example.com",
		Password: "wrongpassword",
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		invalidLoginReq,
		nil,
	)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Test case 3: User not found
	nonExistentUserReq := models.LoginRequest{
		Email:    "nonexistent@example.com",
		Password: "testpassword",
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		nonExistentUserReq,
		nil,
	)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Test case 4: Token from login works against protected routes
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/account",
		nil,
		testutils.AuthHeaders(resp.Token),
	)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// Test case 1: Missing Authorization header
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/account",
		nil,
		nil,
	)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Test case 2: Garbage token
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/account",
		nil,
		testutils.AuthHeaders("not.a.token"),
	)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
