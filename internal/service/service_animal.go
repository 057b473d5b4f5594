package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pawtrail/pawtrail-server/internal/models"
)

// getAccountAnimal loads an animal and hides animals of other accounts
// behind ErrNotFound.
func (s *DefaultService) getAccountAnimal(ctx context.Context, accountID, animalID string) (*models.Animal, error) {
	animal, err := s.repo.GetAnimal(ctx, animalID)
	if err != nil {
		return nil, fmt.Errorf("error getting animal: %w", err)
	}

	if animal == nil || animal.AccountID != accountID {
		return nil, ErrNotFound
	}

	return animal, nil
}

func (s *DefaultService) CreateAnimal(ctx context.Context, accountID string, req models.CreateAnimalRequest) (*models.AnimalResponse, error) {
	animal := &models.Animal{
		AccountID: accountID,
		Name:      req.Name,
	}

	if err := s.repo.CreateAnimal(ctx, animal); err != nil {
		return nil, fmt.Errorf("error creating animal: %w", err)
	}

	return &models.AnimalResponse{
		Status: "success",
		ID:     animal.ID,
		Name:   animal.Name,
	}, nil
}

func (s *DefaultService) GetAnimal(ctx context.Context, accountID, animalID string) (*models.AnimalResponse, error) {
	animal, err := s.getAccountAnimal(ctx, accountID, animalID)
	if err != nil {
		return nil, err
	}

	return &models.AnimalResponse{
		Status: "success",
		ID:     animal.ID,
		Name:   animal.Name,
	}, nil
}

// DeleteAnimal removes the animal and all of its events
func (s *DefaultService) DeleteAnimal(ctx context.Context, accountID, animalID string) error {
	if _, err := s.getAccountAnimal(ctx, accountID, animalID); err != nil {
		return err
	}

	if err := s.repo.DeleteAnimal(ctx, animalID); err != nil {
		return fmt.Errorf("error deleting animal: %w", err)
	}

	return nil
}

// AnimalEventTypes splits the account's animal-level event types into the
// ones the animal already tracks and the ones still available.
func (s *DefaultService) AnimalEventTypes(ctx context.Context, accountID, animalID string) (*models.AnimalEventTypesResponse, error) {
	if _, err := s.getAccountAnimal(ctx, accountID, animalID); err != nil {
		return nil, err
	}

	tracked, err := s.repo.GetTrackedEventTypes(ctx, animalID)
	if err != nil {
		return nil, fmt.Errorf("error getting tracked event types: %w", err)
	}

	trackedIDs := make(map[string]bool, len(tracked))
	for _, eventType := range tracked {
		trackedIDs[eventType.ID] = true
	}

	eventTypes, err := s.repo.GetAccountEventTypes(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error getting event types: %w", err)
	}

	available := make([]models.EventType, 0)
	for _, eventType := range eventTypes {
		if eventType.IsAccountLevel || trackedIDs[eventType.ID] {
			continue
		}
		available = append(available, eventType)
	}

	if tracked == nil {
		tracked = make([]models.EventType, 0)
	}

	return &models.AnimalEventTypesResponse{
		Status:    "success",
		Tracked:   tracked,
		Available: available,
	}, nil
}

func (s *DefaultService) TrackEventType(ctx context.Context, accountID, animalID, eventTypeID string) error {
	if _, err := s.getAccountAnimal(ctx, accountID, animalID); err != nil {
		return err
	}

	if _, err := s.getAccountEventType(ctx, accountID, eventTypeID); err != nil {
		return err
	}

	if err := s.repo.TrackEventType(ctx, animalID, eventTypeID); err != nil {
		return fmt.Errorf("error tracking event type: %w", err)
	}

	return nil
}

func (s *DefaultService) UntrackEventType(ctx context.Context, accountID, animalID, eventTypeID string) error {
	if _, err := s.getAccountAnimal(ctx, accountID, animalID); err != nil {
		return err
	}

	if err := s.repo.UntrackEventType(ctx, animalID, eventTypeID); err != nil {
		return fmt.Errorf("error untracking event type: %w", err)
	}

	return nil
}

// LatestEventsForAnimal reports, for every event type the animal tracks, the
// most recent event ever and the events captured today, newest first. A type
// with no events yet has a nil latest event and an empty today list.
func (s *DefaultService) LatestEventsForAnimal(ctx context.Context, accountID, animalID string) (*models.LatestEventsResponse, error) {
	if _, err := s.getAccountAnimal(ctx, accountID, animalID); err != nil {
		return nil, err
	}

	tracked, err := s.repo.GetTrackedEventTypes(ctx, animalID)
	if err != nil {
		return nil, fmt.Errorf("error getting tracked event types: %w", err)
	}

	latest, err := s.repo.GetLatestAnimalEventsByType(ctx, animalID)
	if err != nil {
		return nil, fmt.Errorf("error getting latest events: %w", err)
	}

	latestByType := make(map[string]*models.EventInfo, len(latest))
	for i := range latest {
		latestByType[latest[i].EventTypeID] = &latest[i]
	}

	startOfDay := StartOfDay(time.Now(), time.Local)
	today, err := s.repo.GetAnimalEventsSince(ctx, animalID, startOfDay)
	if err != nil {
		return nil, fmt.Errorf("error getting today's events: %w", err)
	}

	todayByType := make(map[string][]models.EventInfo)
	for _, event := range today {
		todayByType[event.EventTypeID] = append(todayByType[event.EventTypeID], event)
	}

	activities := make([]models.TypeActivity, 0, len(tracked))
	for _, eventType := range tracked {
		eventsToday := todayByType[eventType.ID]
		if eventsToday == nil {
			eventsToday = make([]models.EventInfo, 0)
		}
		activities = append(activities, models.TypeActivity{
			EventType:   eventType,
			LatestEvent: latestByType[eventType.ID],
			EventsToday: eventsToday,
		})
	}

	return &models.LatestEventsResponse{
		Status:     "success",
		AnimalID:   animalID,
		EventTypes: activities,
	}, nil
}
