package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pawtrail/pawtrail-server/internal/models"
	"github.com/pawtrail/pawtrail-server/internal/repository"
)

// Service defines all the business logic operations
type Service interface {
	// Authentication
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error)
	Join(ctx context.Context, req models.JoinRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)

	// Account
	CurrentAccount(ctx context.Context, accountID, userID string) (*models.AccountResponse, error)
	Dashboard(ctx context.Context, accountID string) (*models.DashboardResponse, error)

	// Animals
	CreateAnimal(ctx context.Context, accountID string, req models.CreateAnimalRequest) (*models.AnimalResponse, error)
	GetAnimal(ctx context.Context, accountID, animalID string) (*models.AnimalResponse, error)
	DeleteAnimal(ctx context.Context, accountID, animalID string) error
	AnimalEventTypes(ctx context.Context, accountID, animalID string) (*models.AnimalEventTypesResponse, error)
	TrackEventType(ctx context.Context, accountID, animalID, eventTypeID string) error
	UntrackEventType(ctx context.Context, accountID, animalID, eventTypeID string) error
	LatestEventsForAnimal(ctx context.Context, accountID, animalID string) (*models.LatestEventsResponse, error)

	// Events
	CaptureEvent(ctx context.Context, accountID, userID string, req models.CaptureEventRequest) (*models.EventResponse, error)
	UndoEvent(ctx context.Context, accountID, userID, eventID string) error
	ListEvents(ctx context.Context, accountID, animalID string) (*models.GroupedEventsResponse, error)

	// Event types
	AllEventTypes(ctx context.Context, accountID string) (*models.EventTypesResponse, error)
	GetEventTypeDetail(ctx context.Context, accountID, eventTypeID string) (*models.EventTypeDetailResponse, error)
	AddEventType(ctx context.Context, accountID string, req models.AddEventTypeRequest) (*models.EventTypeResponse, error)
	UpdateEventType(ctx context.Context, accountID, eventTypeID string, req models.UpdateEventTypeRequest) error
	DeleteEventType(ctx context.Context, accountID, eventTypeID string) error
	RelateEventTypes(ctx context.Context, accountID string, req models.RelateEventTypesRequest) (*models.RelationshipResponse, error)

	// Relationships
	GetRelationship(ctx context.Context, accountID, relationshipID string) (*models.RelationshipResponse, error)
	UpdateRelationship(ctx context.Context, accountID, relationshipID string, req models.UpdateRelationshipRequest) error
	DeleteRelationship(ctx context.Context, accountID, relationshipID string) error
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	jwtSecret     []byte
	tokenDuration time.Duration
	undoWindow    time.Duration
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(repo repository.Repository, jwtSecret string, undoWindow time.Duration) Service {
	return &DefaultService{
		repo:          repo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour, // 24 hours token validity
		undoWindow:    undoWindow,
	}
}

// generateJWT issues a token carrying the user and account identity
func (s *DefaultService) generateJWT(user *models.User) (string, error) {
	expirationTime := time.Now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub":  user.ID, // subject
		"acct": user.AccountID,
		"exp":  expirationTime.Unix(),
		"iat":  time.Now().Unix(), // issued at
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
