package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pawtrail/pawtrail-server/internal/models"
)

// MemoryRepository implements the Repository interface with plain maps guarded
// by a mutex. It backs the test suite and any deployment that does not need a
// database; semantics mirror PostgresRepository, including (nil, nil) lookups.
type MemoryRepository struct {
	mu            sync.RWMutex
	accounts      map[string]models.Account
	users         map[string]models.User
	animals       map[string]models.Animal
	eventTypes    map[string]models.EventType
	events        map[string]models.Event
	relationships map[string]models.EventTypeRelationship
	tracking      map[string]map[string]bool // animal id -> set of event type ids
	members       map[string][]string        // relationship id -> member event type ids
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		accounts:      map[string]models.Account{},
		users:         map[string]models.User{},
		animals:       map[string]models.Animal{},
		eventTypes:    map[string]models.EventType{},
		events:        map[string]models.Event{},
		relationships: map[string]models.EventTypeRelationship{},
		tracking:      map[string]map[string]bool{},
		members:       map[string][]string{},
	}
}

// Reset drops all stored data
func (r *MemoryRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts = map[string]models.Account{}
	r.users = map[string]models.User{}
	r.animals = map[string]models.Animal{}
	r.eventTypes = map[string]models.EventType{}
	r.events = map[string]models.Event{}
	r.relationships = map[string]models.EventTypeRelationship{}
	r.tracking = map[string]map[string]bool{}
	r.members = map[string][]string{}
}

func copyEvent(event models.Event) models.Event {
	if event.AnimalID != nil {
		animalID := *event.AnimalID
		event.AnimalID = &animalID
	}
	return event
}

func copyRelationship(relationship models.EventTypeRelationship) models.EventTypeRelationship {
	if relationship.CompareSince != nil {
		since := *relationship.CompareSince
		relationship.CompareSince = &since
	}
	return relationship
}

// sortEventInfos orders events newest first; equal timestamps fall back to id
// order so results are deterministic.
func sortEventInfos(events []models.EventInfo) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].ID < events[j].ID
		}
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
}

func (r *MemoryRepository) eventInfo(event models.Event) models.EventInfo {
	info := models.EventInfo{Event: copyEvent(event)}
	if user, ok := r.users[event.UserID]; ok {
		info.UserName = user.Name
	}
	return info
}

// Account and user repository methods

func (r *MemoryRepository) CreateAccountWithOwner(ctx context.Context, account *models.Account, owner *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if account.ID == "" {
		account.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	if owner.ID == "" {
		owner.ID = uuid.New().String()
	}

	owner.AccountID = account.ID
	owner.CreatedAt = now
	owner.UpdatedAt = now

	r.accounts[account.ID] = *account
	r.users[owner.ID] = *owner

	return nil
}

func (r *MemoryRepository) CreateUserInAccount(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.ID] = *user

	return nil
}

func (r *MemoryRepository) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}

	return &account, nil
}

func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			user := user
			return &user, nil
		}
	}

	return nil, nil
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}

	return &user, nil
}

func (r *MemoryRepository) GetAccountUsers(ctx context.Context, accountID string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []models.User
	for _, user := range r.users {
		if user.AccountID == accountID {
			users = append(users, user)
		}
	}

	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })

	return users, nil
}

// Animal repository methods

func (r *MemoryRepository) CreateAnimal(ctx context.Context, animal *models.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if animal.ID == "" {
		animal.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	animal.CreatedAt = now
	animal.UpdatedAt = now

	r.animals[animal.ID] = *animal

	return nil
}

func (r *MemoryRepository) GetAnimal(ctx context.Context, id string) (*models.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	animal, ok := r.animals[id]
	if !ok {
		return nil, nil
	}

	return &animal, nil
}

func (r *MemoryRepository) GetAccountAnimals(ctx context.Context, accountID string) ([]models.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var animals []models.Animal
	for _, animal := range r.animals {
		if animal.AccountID == accountID {
			animals = append(animals, animal)
		}
	}

	sort.Slice(animals, func(i, j int) bool {
		if animals[i].CreatedAt.Equal(animals[j].CreatedAt) {
			return animals[i].ID < animals[j].ID
		}
		return animals[i].CreatedAt.Before(animals[j].CreatedAt)
	})

	return animals, nil
}

func (r *MemoryRepository) DeleteAnimal(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for eventID, event := range r.events {
		if event.AnimalID != nil && *event.AnimalID == id {
			delete(r.events, eventID)
		}
	}

	delete(r.tracking, id)
	delete(r.animals, id)

	return nil
}

// Tracking repository methods

func (r *MemoryRepository) TrackEventType(ctx context.Context, animalID, eventTypeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tracking[animalID] == nil {
		r.tracking[animalID] = map[string]bool{}
	}
	r.tracking[animalID][eventTypeID] = true

	return nil
}

func (r *MemoryRepository) UntrackEventType(ctx context.Context, animalID, eventTypeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tracking[animalID], eventTypeID)

	return nil
}

func (r *MemoryRepository) GetTrackedEventTypes(ctx context.Context, animalID string) ([]models.EventType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var eventTypes []models.EventType
	for eventTypeID := range r.tracking[animalID] {
		if eventType, ok := r.eventTypes[eventTypeID]; ok {
			eventTypes = append(eventTypes, eventType)
		}
	}

	sort.Slice(eventTypes, func(i, j int) bool { return eventTypes[i].Name < eventTypes[j].Name })

	return eventTypes, nil
}

func (r *MemoryRepository) GetTrackingAnimals(ctx context.Context, eventTypeID string) ([]models.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var animals []models.Animal
	for animalID, tracked := range r.tracking {
		if !tracked[eventTypeID] {
			continue
		}
		if animal, ok := r.animals[animalID]; ok {
			animals = append(animals, animal)
		}
	}

	sort.Slice(animals, func(i, j int) bool { return animals[i].Name < animals[j].Name })

	return animals, nil
}

// Event type repository methods

func (r *MemoryRepository) CreateEventType(ctx context.Context, eventType *models.EventType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if eventType.ID == "" {
		eventType.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	eventType.CreatedAt = now
	eventType.UpdatedAt = now

	r.eventTypes[eventType.ID] = *eventType

	return nil
}

func (r *MemoryRepository) GetEventType(ctx context.Context, id string) (*models.EventType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	eventType, ok := r.eventTypes[id]
	if !ok {
		return nil, nil
	}

	return &eventType, nil
}

func (r *MemoryRepository) GetAccountEventTypes(ctx context.Context, accountID string) ([]models.EventType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var eventTypes []models.EventType
	for _, eventType := range r.eventTypes {
		if eventType.AccountID == accountID {
			eventTypes = append(eventTypes, eventType)
		}
	}

	sort.Slice(eventTypes, func(i, j int) bool { return eventTypes[i].Name < eventTypes[j].Name })

	return eventTypes, nil
}

func (r *MemoryRepository) UpdateEventTypeName(ctx context.Context, id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	eventType, ok := r.eventTypes[id]
	if !ok {
		return nil
	}

	eventType.Name = name
	eventType.UpdatedAt = time.Now().UTC()
	r.eventTypes[id] = eventType

	return nil
}

func (r *MemoryRepository) DeleteEventType(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for eventID, event := range r.events {
		if event.EventTypeID == id {
			delete(r.events, eventID)
		}
	}

	for relationshipID, memberIDs := range r.members {
		for _, memberID := range memberIDs {
			if memberID == id {
				delete(r.relationships, relationshipID)
				delete(r.members, relationshipID)
				break
			}
		}
	}

	for _, tracked := range r.tracking {
		delete(tracked, id)
	}

	delete(r.eventTypes, id)

	return nil
}

// Event repository methods

func (r *MemoryRepository) CreateEvent(ctx context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	r.events[event.ID] = copyEvent(*event)

	return nil
}

func (r *MemoryRepository) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.events[id]
	if !ok {
		return nil, nil
	}

	event = copyEvent(event)
	return &event, nil
}

func (r *MemoryRepository) DeleteEvent(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.events, id)

	return nil
}

func (r *MemoryRepository) GetAnimalEvents(ctx context.Context, animalID string) ([]models.EventInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var events []models.EventInfo
	for _, event := range r.events {
		if event.AnimalID != nil && *event.AnimalID == animalID {
			events = append(events, r.eventInfo(event))
		}
	}

	sortEventInfos(events)

	return events, nil
}

func (r *MemoryRepository) GetAccountLevelEvents(ctx context.Context, accountID string) ([]models.EventInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var events []models.EventInfo
	for _, event := range r.events {
		if event.AccountID == accountID && event.AnimalID == nil {
			events = append(events, r.eventInfo(event))
		}
	}

	sortEventInfos(events)

	return events, nil
}

func (r *MemoryRepository) GetAnimalEventsSince(ctx context.Context, animalID string, since time.Time) ([]models.EventInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var events []models.EventInfo
	for _, event := range r.events {
		if event.AnimalID != nil && *event.AnimalID == animalID && !event.CreatedAt.Before(since) {
			events = append(events, r.eventInfo(event))
		}
	}

	sortEventInfos(events)

	return events, nil
}

func (r *MemoryRepository) latestByType(match func(models.Event) bool) []models.EventInfo {
	latest := map[string]models.Event{}
	for _, event := range r.events {
		if !match(event) {
			continue
		}
		current, ok := latest[event.EventTypeID]
		if !ok || event.CreatedAt.After(current.CreatedAt) {
			latest[event.EventTypeID] = event
		}
	}

	var events []models.EventInfo
	for _, event := range latest {
		events = append(events, r.eventInfo(event))
	}

	sortEventInfos(events)

	return events
}

func (r *MemoryRepository) GetLatestAnimalEventsByType(ctx context.Context, animalID string) ([]models.EventInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.latestByType(func(event models.Event) bool {
		return event.AnimalID != nil && *event.AnimalID == animalID
	}), nil
}

func (r *MemoryRepository) GetLatestAccountLevelEventsByType(ctx context.Context, accountID string) ([]models.EventInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.latestByType(func(event models.Event) bool {
		return event.AccountID == accountID && event.AnimalID == nil
	}), nil
}

func (r *MemoryRepository) GetRecentEventsForType(ctx context.Context, eventTypeID string, limit int) ([]models.EventInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var events []models.EventInfo
	for _, event := range r.events {
		if event.EventTypeID == eventTypeID {
			events = append(events, r.eventInfo(event))
		}
	}

	sortEventInfos(events)

	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}

	return events, nil
}

func (r *MemoryRepository) CountEventsForType(ctx context.Context, eventTypeID string, since time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, event := range r.events {
		if event.EventTypeID == eventTypeID && !event.CreatedAt.Before(since) {
			count++
		}
	}

	return count, nil
}

func (r *MemoryRepository) CountEventsByUser(ctx context.Context, accountID, eventTypeID string) ([]models.UserCaptureCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byUser := map[string]int64{}
	for _, event := range r.events {
		if event.EventTypeID == eventTypeID {
			byUser[event.UserID]++
		}
	}

	var counts []models.UserCaptureCount
	for _, user := range r.users {
		if user.AccountID != accountID {
			continue
		}
		counts = append(counts, models.UserCaptureCount{
			UserID: user.ID,
			Name:   user.Name,
			Count:  byUser[user.ID],
		})
	}

	sort.Slice(counts, func(i, j int) bool { return counts[i].Name < counts[j].Name })

	return counts, nil
}

// Relationship repository methods

func (r *MemoryRepository) CreateRelationship(ctx context.Context, relationship *models.EventTypeRelationship, eventTypeAID, eventTypeBID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if relationship.ID == "" {
		relationship.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	relationship.CreatedAt = now
	relationship.UpdatedAt = now

	r.relationships[relationship.ID] = copyRelationship(*relationship)
	r.members[relationship.ID] = []string{eventTypeAID, eventTypeBID}

	return nil
}

func (r *MemoryRepository) GetRelationship(ctx context.Context, id string) (*models.EventTypeRelationship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	relationship, ok := r.relationships[id]
	if !ok {
		return nil, nil
	}

	relationship = copyRelationship(relationship)
	return &relationship, nil
}

func (r *MemoryRepository) GetRelationshipMembers(ctx context.Context, relationshipID string) ([]models.EventType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var eventTypes []models.EventType
	for _, eventTypeID := range r.members[relationshipID] {
		if eventType, ok := r.eventTypes[eventTypeID]; ok {
			eventTypes = append(eventTypes, eventType)
		}
	}

	sort.Slice(eventTypes, func(i, j int) bool { return eventTypes[i].Name < eventTypes[j].Name })

	return eventTypes, nil
}

func (r *MemoryRepository) GetEventTypeRelationships(ctx context.Context, eventTypeID string) ([]models.EventTypeRelationship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var relationships []models.EventTypeRelationship
	for relationshipID, memberIDs := range r.members {
		for _, memberID := range memberIDs {
			if memberID != eventTypeID {
				continue
			}
			if relationship, ok := r.relationships[relationshipID]; ok {
				relationships = append(relationships, copyRelationship(relationship))
			}
			break
		}
	}

	sortRelationships(relationships)

	return relationships, nil
}

func (r *MemoryRepository) GetAccountRelationships(ctx context.Context, accountID string) ([]models.EventTypeRelationship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var relationships []models.EventTypeRelationship
	for relationshipID, memberIDs := range r.members {
		inAccount := false
		for _, memberID := range memberIDs {
			if eventType, ok := r.eventTypes[memberID]; ok && eventType.AccountID == accountID {
				inAccount = true
				break
			}
		}
		if !inAccount {
			continue
		}
		if relationship, ok := r.relationships[relationshipID]; ok {
			relationships = append(relationships, copyRelationship(relationship))
		}
	}

	sortRelationships(relationships)

	return relationships, nil
}

func sortRelationships(relationships []models.EventTypeRelationship) {
	sort.Slice(relationships, func(i, j int) bool {
		if relationships[i].CreatedAt.Equal(relationships[j].CreatedAt) {
			return relationships[i].ID < relationships[j].ID
		}
		return relationships[i].CreatedAt.Before(relationships[j].CreatedAt)
	})
}

func (r *MemoryRepository) UpdateRelationship(ctx context.Context, id string, name *string, compareSince *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	relationship, ok := r.relationships[id]
	if !ok {
		return nil
	}

	if name != nil {
		relationship.Name = *name
	}
	if compareSince != nil {
		since := *compareSince
		relationship.CompareSince = &since
	}
	relationship.UpdatedAt = time.Now().UTC()

	r.relationships[id] = relationship

	return nil
}

func (r *MemoryRepository) DeleteRelationship(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.relationships, id)
	delete(r.members, id)

	return nil
}
