package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pawtrail/pawtrail-server/internal/models"
)

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

// Account and user repository methods

func (r *PostgresRepository) CreateAccountWithOwner(ctx context.Context, account *models.Account, owner *models.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	if account.ID == "" {
		account.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	_, err = tx.ExecContext(ctx,
		`INSERT INTO accounts (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		account.ID, account.Name, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		return err
	}

	if owner.ID == "" {
		owner.ID = uuid.New().String()
	}

	owner.AccountID = account.ID
	owner.CreatedAt = now
	owner.UpdatedAt = now

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, account_id, email, name, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		owner.ID, owner.AccountID, owner.Email, owner.Name, owner.Password,
		owner.CreatedAt, owner.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) CreateUserInAccount(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, account_id, email, name, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.AccountID, user.Email, user.Name, user.Password,
		user.CreatedAt, user.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	err := r.db.GetContext(ctx, &account, `SELECT * FROM accounts WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Account not found
		}
		return nil, err
	}

	return &account, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetAccountUsers(ctx context.Context, accountID string) ([]models.User, error) {
	var users []models.User
	err := r.db.SelectContext(ctx, &users,
		`SELECT * FROM users WHERE account_id = $1 ORDER BY name`, accountID)
	if err != nil {
		return nil, err
	}

	return users, nil
}

// Animal repository methods

func (r *PostgresRepository) CreateAnimal(ctx context.Context, animal *models.Animal) error {
	if animal.ID == "" {
		animal.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	animal.CreatedAt = now
	animal.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO animals (id, account_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		animal.ID, animal.AccountID, animal.Name, animal.CreatedAt, animal.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetAnimal(ctx context.Context, id string) (*models.Animal, error) {
	var animal models.Animal
	err := r.db.GetContext(ctx, &animal, `SELECT * FROM animals WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Animal not found
		}
		return nil, err
	}

	return &animal, nil
}

func (r *PostgresRepository) GetAccountAnimals(ctx context.Context, accountID string) ([]models.Animal, error) {
	var animals []models.Animal
	err := r.db.SelectContext(ctx, &animals,
		`SELECT * FROM animals WHERE account_id = $1 ORDER BY created_at`, accountID)
	if err != nil {
		return nil, err
	}

	return animals, nil
}

// DeleteAnimal removes the animal together with its events and tracking rows,
// honoring the referential-integrity contract.
func (r *PostgresRepository) DeleteAnimal(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	_, err = tx.ExecContext(ctx, `DELETE FROM events WHERE animal_id = $1`, id)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM animal_event_types WHERE animal_id = $1`, id)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Tracking repository methods

func (r *PostgresRepository) TrackEventType(ctx context.Context, animalID, eventTypeID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO animal_event_types (animal_id, event_type_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (animal_id, event_type_id) DO NOTHING`,
		animalID, eventTypeID, time.Now().UTC())

	return err
}

func (r *PostgresRepository) UntrackEventType(ctx context.Context, animalID, eventTypeID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM animal_event_types WHERE animal_id = $1 AND event_type_id = $2`,
		animalID, eventTypeID)

	return err
}

func (r *PostgresRepository) GetTrackedEventTypes(ctx context.Context, animalID string) ([]models.EventType, error) {
	var eventTypes []models.EventType
	err := r.db.SelectContext(ctx, &eventTypes, `
		SELECT t.* FROM event_types t
		JOIN animal_event_types a ON t.id = a.event_type_id
		WHERE a.animal_id = $1
		ORDER BY t.name`, animalID)
	if err != nil {
		return nil, err
	}

	return eventTypes, nil
}

func (r *PostgresRepository) GetTrackingAnimals(ctx context.Context, eventTypeID string) ([]models.Animal, error) {
	var animals []models.Animal
	err := r.db.SelectContext(ctx, &animals, `
		SELECT an.* FROM animals an
		JOIN animal_event_types a ON an.id = a.animal_id
		WHERE a.event_type_id = $1
		ORDER BY an.name`, eventTypeID)
	if err != nil {
		return nil, err
	}

	return animals, nil
}

// Event type repository methods

func (r *PostgresRepository) CreateEventType(ctx context.Context, eventType *models.EventType) error {
	if eventType.ID == "" {
		eventType.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	eventType.CreatedAt = now
	eventType.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_types (id, account_id, name, is_account_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		eventType.ID, eventType.AccountID, eventType.Name, eventType.IsAccountLevel,
		eventType.CreatedAt, eventType.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetEventType(ctx context.Context, id string) (*models.EventType, error) {
	var eventType models.EventType
	err := r.db.GetContext(ctx, &eventType, `SELECT * FROM event_types WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Event type not found
		}
		return nil, err
	}

	return &eventType, nil
}

func (r *PostgresRepository) GetAccountEventTypes(ctx context.Context, accountID string) ([]models.EventType, error) {
	var eventTypes []models.EventType
	err := r.db.SelectContext(ctx, &eventTypes,
		`SELECT * FROM event_types WHERE account_id = $1 ORDER BY name`, accountID)
	if err != nil {
		return nil, err
	}

	return eventTypes, nil
}

func (r *PostgresRepository) UpdateEventTypeName(ctx context.Context, id, name string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE event_types SET name = $2, updated_at = $3 WHERE id = $1`,
		id, name, time.Now().UTC())

	return err
}

// DeleteEventType removes the type together with its events, any relationship
// it is a member of, and its tracking rows.
func (r *PostgresRepository) DeleteEventType(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	_, err = tx.ExecContext(ctx, `DELETE FROM events WHERE event_type_id = $1`, id)
	if err != nil {
		return err
	}

	// Member rows cascade with the relationship
	_, err = tx.ExecContext(ctx, `
		DELETE FROM event_type_relationships WHERE id IN (
			SELECT relationship_id FROM event_type_relationship_members WHERE event_type_id = $1
		)`, id)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM animal_event_types WHERE event_type_id = $1`, id)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM event_types WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Event repository methods

func (r *PostgresRepository) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	// Set timestamp if not provided
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (id, account_id, event_type_id, user_id, animal_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		event.ID, event.AccountID, event.EventTypeID, event.UserID, event.AnimalID, event.CreatedAt)

	return err
}

func (r *PostgresRepository) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := r.db.GetContext(ctx, &event, `SELECT * FROM events WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Event not found
		}
		return nil, err
	}

	return &event, nil
}

func (r *PostgresRepository) DeleteEvent(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) GetAnimalEvents(ctx context.Context, animalID string) ([]models.EventInfo, error) {
	var events []models.EventInfo
	err := r.db.SelectContext(ctx, &events, `
		SELECT e.*, u.name AS user_name FROM events e
		JOIN users u ON u.id = e.user_id
		WHERE e.animal_id = $1
		ORDER BY e.created_at DESC`, animalID)
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *PostgresRepository) GetAccountLevelEvents(ctx context.Context, accountID string) ([]models.EventInfo, error) {
	var events []models.EventInfo
	err := r.db.SelectContext(ctx, &events, `
		SELECT e.*, u.name AS user_name FROM events e
		JOIN users u ON u.id = e.user_id
		WHERE e.account_id = $1 AND e.animal_id IS NULL
		ORDER BY e.created_at DESC`, accountID)
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *PostgresRepository) GetAnimalEventsSince(ctx context.Context, animalID string, since time.Time) ([]models.EventInfo, error) {
	var events []models.EventInfo
	err := r.db.SelectContext(ctx, &events, `
		SELECT e.*, u.name AS user_name FROM events e
		JOIN users u ON u.id = e.user_id
		WHERE e.animal_id = $1 AND e.created_at >= $2
		ORDER BY e.created_at DESC`, animalID, since)
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *PostgresRepository) GetLatestAnimalEventsByType(ctx context.Context, animalID string) ([]models.EventInfo, error) {
	var events []models.EventInfo
	err := r.db.SelectContext(ctx, &events, `
		SELECT DISTINCT ON (e.event_type_id) e.*, u.name AS user_name FROM events e
		JOIN users u ON u.id = e.user_id
		WHERE e.animal_id = $1
		ORDER BY e.event_type_id, e.created_at DESC`, animalID)
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *PostgresRepository) GetLatestAccountLevelEventsByType(ctx context.Context, accountID string) ([]models.EventInfo, error) {
	var events []models.EventInfo
	err := r.db.SelectContext(ctx, &events, `
		SELECT DISTINCT ON (e.event_type_id) e.*, u.name AS user_name FROM events e
		JOIN users u ON u.id = e.user_id
		WHERE e.account_id = $1 AND e.animal_id IS NULL
		ORDER BY e.event_type_id, e.created_at DESC`, accountID)
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *PostgresRepository) GetRecentEventsForType(ctx context.Context, eventTypeID string, limit int) ([]models.EventInfo, error) {
	var events []models.EventInfo
	err := r.db.SelectContext(ctx, &events, `
		SELECT e.*, u.name AS user_name FROM events e
		JOIN users u ON u.id = e.user_id
		WHERE e.event_type_id = $1
		ORDER BY e.created_at DESC
		LIMIT $2`, eventTypeID, limit)
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *PostgresRepository) CountEventsForType(ctx context.Context, eventTypeID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM events WHERE event_type_id = $1 AND created_at >= $2`,
		eventTypeID, since)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *PostgresRepository) CountEventsByUser(ctx context.Context, accountID, eventTypeID string) ([]models.UserCaptureCount, error) {
	var counts []models.UserCaptureCount
	err := r.db.SelectContext(ctx, &counts, `
		SELECT u.id AS user_id, u.name, COUNT(e.id) AS count FROM users u
		LEFT JOIN events e ON e.user_id = u.id AND e.event_type_id = $2
		WHERE u.account_id = $1
		GROUP BY u.id, u.name
		ORDER BY u.name`, accountID, eventTypeID)
	if err != nil {
		return nil, err
	}

	return counts, nil
}

// Relationship repository methods

func (r *PostgresRepository) CreateRelationship(ctx context.Context, relationship *models.EventTypeRelationship, eventTypeAID, eventTypeBID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	if relationship.ID == "" {
		relationship.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	relationship.CreatedAt = now
	relationship.UpdatedAt = now

	_, err = tx.ExecContext(ctx,
		`INSERT INTO event_type_relationships (id, name, relationship_type, compare_since, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		relationship.ID, relationship.Name, relationship.RelationshipType,
		relationship.CompareSince, relationship.CreatedAt, relationship.UpdatedAt)
	if err != nil {
		return err
	}

	for _, eventTypeID := range []string{eventTypeAID, eventTypeBID} {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO event_type_relationship_members (relationship_id, event_type_id) VALUES ($1, $2)`,
			relationship.ID, eventTypeID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetRelationship(ctx context.Context, id string) (*models.EventTypeRelationship, error) {
	var relationship models.EventTypeRelationship
	err := r.db.GetContext(ctx, &relationship,
		`SELECT * FROM event_type_relationships WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Relationship not found
		}
		return nil, err
	}

	return &relationship, nil
}

func (r *PostgresRepository) GetRelationshipMembers(ctx context.Context, relationshipID string) ([]models.EventType, error) {
	var eventTypes []models.EventType
	err := r.db.SelectContext(ctx, &eventTypes, `
		SELECT t.* FROM event_types t
		JOIN event_type_relationship_members m ON t.id = m.event_type_id
		WHERE m.relationship_id = $1
		ORDER BY t.name`, relationshipID)
	if err != nil {
		return nil, err
	}

	return eventTypes, nil
}

func (r *PostgresRepository) GetEventTypeRelationships(ctx context.Context, eventTypeID string) ([]models.EventTypeRelationship, error) {
	var relationships []models.EventTypeRelationship
	err := r.db.SelectContext(ctx, &relationships, `
		SELECT rel.* FROM event_type_relationships rel
		JOIN event_type_relationship_members m ON rel.id = m.relationship_id
		WHERE m.event_type_id = $1
		ORDER BY rel.created_at`, eventTypeID)
	if err != nil {
		return nil, err
	}

	return relationships, nil
}

func (r *PostgresRepository) GetAccountRelationships(ctx context.Context, accountID string) ([]models.EventTypeRelationship, error) {
	var relationships []models.EventTypeRelationship
	err := r.db.SelectContext(ctx, &relationships, `
		SELECT DISTINCT rel.* FROM event_type_relationships rel
		JOIN event_type_relationship_members m ON rel.id = m.relationship_id
		JOIN event_types t ON t.id = m.event_type_id
		WHERE t.account_id = $1
		ORDER BY rel.created_at`, accountID)
	if err != nil {
		return nil, err
	}

	return relationships, nil
}

func (r *PostgresRepository) UpdateRelationship(ctx context.Context, id string, name *string, compareSince *time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE event_type_relationships
		SET name = COALESCE($2, name),
			compare_since = COALESCE($3, compare_since),
			updated_at = $4
		WHERE id = $1`,
		id, name, compareSince, time.Now().UTC())

	return err
}

func (r *PostgresRepository) DeleteRelationship(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM event_type_relationship_members WHERE relationship_id = $1`, id)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM event_type_relationships WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return tx.Commit()
}
