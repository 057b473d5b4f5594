package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pawtrail/pawtrail-server/internal/joincode"
	"github.com/pawtrail/pawtrail-server/internal/models"
)

// SignUp creates a new account together with its first user
func (s *DefaultService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error) {
	// Check if user already exists
	existingUser, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking user existence: %w", err)
	}

	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		Name: req.AccountName,
	}

	user := &models.User{
		Email:    req.Email,
		Name:     req.UserName,
		Password: string(hashedPassword),
	}

	if err := s.repo.CreateAccountWithOwner(ctx, account, user); err != nil {
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	return &models.AuthResponse{
		Status:    "success",
		UserID:    user.ID,
		AccountID: account.ID,
		Email:     user.Email,
		Name:      user.Name,
	}, nil
}

// Join creates a new user and attaches it to the account encoded in the
// joining code. A code pointing at a missing account fails with ErrNotFound
// before any user row is written.
func (s *DefaultService) Join(ctx context.Context, req models.JoinRequest) (*models.AuthResponse, error) {
	code, err := joincode.Parse(req.JoiningCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, err)
	}

	account, err := s.repo.GetAccount(ctx, code.AccountID)
	if err != nil {
		return nil, fmt.Errorf("error getting account: %w", err)
	}

	if account == nil {
		return nil, ErrNotFound
	}

	existingUser, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking user existence: %w", err)
	}

	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		AccountID: account.ID,
		Email:     req.Email,
		Name:      req.UserName,
		Password:  string(hashedPassword),
	}

	if err := s.repo.CreateUserInAccount(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return &models.AuthResponse{
		Status:    "success",
		UserID:    user.ID,
		AccountID: account.ID,
		Email:     user.Email,
		Name:      user.Name,
	}, nil
}

// Login verifies credentials and issues a JWT
func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &models.AuthResponse{
		Status:    "success",
		UserID:    user.ID,
		AccountID: user.AccountID,
		Token:     token,
		ExpiresIn: int(s.tokenDuration.Seconds()),
	}, nil
}
