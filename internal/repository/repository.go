package repository

import (
	"context"
	"time"

	"github.com/pawtrail/pawtrail-server/internal/models"
)

// Repository interface defines the methods that any store implementation must
// satisfy. Lookups return (nil, nil) when the row does not exist.
type Repository interface {
	// Account and user operations
	CreateAccountWithOwner(ctx context.Context, account *models.Account, owner *models.User) error
	CreateUserInAccount(ctx context.Context, user *models.User) error
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetAccountUsers(ctx context.Context, accountID string) ([]models.User, error)

	// Animal operations
	CreateAnimal(ctx context.Context, animal *models.Animal) error
	GetAnimal(ctx context.Context, id string) (*models.Animal, error)
	GetAccountAnimals(ctx context.Context, accountID string) ([]models.Animal, error)
	DeleteAnimal(ctx context.Context, id string) error

	// Tracking operations (animal <-> event type)
	TrackEventType(ctx context.Context, animalID, eventTypeID string) error
	UntrackEventType(ctx context.Context, animalID, eventTypeID string) error
	GetTrackedEventTypes(ctx context.Context, animalID string) ([]models.EventType, error)
	GetTrackingAnimals(ctx context.Context, eventTypeID string) ([]models.Animal, error)

	// Event type operations
	CreateEventType(ctx context.Context, eventType *models.EventType) error
	GetEventType(ctx context.Context, id string) (*models.EventType, error)
	GetAccountEventTypes(ctx context.Context, accountID string) ([]models.EventType, error)
	UpdateEventTypeName(ctx context.Context, id, name string) error
	DeleteEventType(ctx context.Context, id string) error

	// Event operations
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	GetAnimalEvents(ctx context.Context, animalID string) ([]models.EventInfo, error)
	GetAccountLevelEvents(ctx context.Context, accountID string) ([]models.EventInfo, error)
	GetAnimalEventsSince(ctx context.Context, animalID string, since time.Time) ([]models.EventInfo, error)
	GetLatestAnimalEventsByType(ctx context.Context, animalID string) ([]models.EventInfo, error)
	GetLatestAccountLevelEventsByType(ctx context.Context, accountID string) ([]models.EventInfo, error)
	GetRecentEventsForType(ctx context.Context, eventTypeID string, limit int) ([]models.EventInfo, error)
	CountEventsForType(ctx context.Context, eventTypeID string, since time.Time) (int64, error)
	CountEventsByUser(ctx context.Context, accountID, eventTypeID string) ([]models.UserCaptureCount, error)

	// Relationship operations
	CreateRelationship(ctx context.Context, relationship *models.EventTypeRelationship, eventTypeAID, eventTypeBID string) error
	GetRelationship(ctx context.Context, id string) (*models.EventTypeRelationship, error)
	GetRelationshipMembers(ctx context.Context, relationshipID string) ([]models.EventType, error)
	GetEventTypeRelationships(ctx context.Context, eventTypeID string) ([]models.EventTypeRelationship, error)
	GetAccountRelationships(ctx context.Context, accountID string) ([]models.EventTypeRelationship, error)
	UpdateRelationship(ctx context.Context, id string, name *string, compareSince *time.Time) error
	DeleteRelationship(ctx context.Context, id string) error
}
