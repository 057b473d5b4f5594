package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pawtrail/pawtrail-server/internal/models"
)

// CaptureEvent records a new event against an animal or, when no animal is
// given, against the household. The event type's account-level flag is not
// cross-checked against the subject; that contract stays with the caller.
func (s *DefaultService) CaptureEvent(ctx context.Context, accountID, userID string, req models.CaptureEventRequest) (*models.EventResponse, error) {
	if _, err := s.getAccountEventType(ctx, accountID, req.EventTypeID); err != nil {
		return nil, err
	}

	event := &models.Event{
		AccountID:   accountID,
		EventTypeID: req.EventTypeID,
		UserID:      userID,
	}

	if req.AnimalID != "" {
		if _, err := s.getAccountAnimal(ctx, accountID, req.AnimalID); err != nil {
			return nil, err
		}
		animalID := req.AnimalID
		event.AnimalID = &animalID
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}

	return &models.EventResponse{
		Status: "success",
		Event:  *event,
	}, nil
}

// UndoEvent deletes a captured event. Only the author may undo, and only
// while the event is younger than the undo window.
func (s *DefaultService) UndoEvent(ctx context.Context, accountID, userID, eventID string) error {
	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("error getting event: %w", err)
	}

	if event == nil || event.AccountID != accountID {
		return ErrNotFound
	}

	if event.UserID != userID {
		return ErrForbidden
	}

	if time.Now().UTC().Sub(event.CreatedAt) >= s.undoWindow {
		return ErrForbidden
	}

	if err := s.repo.DeleteEvent(ctx, eventID); err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}

	return nil
}

// ListEvents returns the events of an animal, or the household-level events
// when animalID is empty, grouped by event type with each group newest first.
func (s *DefaultService) ListEvents(ctx context.Context, accountID, animalID string) (*models.GroupedEventsResponse, error) {
	var events []models.EventInfo
	var err error

	if animalID == "" {
		events, err = s.repo.GetAccountLevelEvents(ctx, accountID)
		if err != nil {
			return nil, fmt.Errorf("error getting account-level events: %w", err)
		}
	} else {
		if _, err := s.getAccountAnimal(ctx, accountID, animalID); err != nil {
			return nil, err
		}

		events, err = s.repo.GetAnimalEvents(ctx, animalID)
		if err != nil {
			return nil, fmt.Errorf("error getting animal events: %w", err)
		}
	}

	eventTypes, err := s.repo.GetAccountEventTypes(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error getting event types: %w", err)
	}

	typesByID := make(map[string]models.EventType, len(eventTypes))
	for _, eventType := range eventTypes {
		typesByID[eventType.ID] = eventType
	}

	// Groups appear in first-seen order, so the type with the newest event
	// comes first; events inside a group stay newest first.
	groups := make([]models.EventGroup, 0)
	groupIndex := map[string]int{}
	for _, event := range events {
		index, ok := groupIndex[event.EventTypeID]
		if !ok {
			eventType, known := typesByID[event.EventTypeID]
			if !known {
				continue
			}
			groups = append(groups, models.EventGroup{EventType: eventType})
			index = len(groups) - 1
			groupIndex[event.EventTypeID] = index
		}
		groups[index].Events = append(groups[index].Events, event)
	}

	return &models.GroupedEventsResponse{
		Status: "success",
		Groups: groups,
	}, nil
}
