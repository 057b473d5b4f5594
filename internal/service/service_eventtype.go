package service

import (
	"context"
	"fmt"

	"github.com/pawtrail/pawtrail-server/internal/models"
)

const recentEventsLimit = 10

// getAccountEventType loads an event type and hides types of other accounts
// behind ErrNotFound.
func (s *DefaultService) getAccountEventType(ctx context.Context, accountID, eventTypeID string) (*models.EventType, error) {
	eventType, err := s.repo.GetEventType(ctx, eventTypeID)
	if err != nil {
		return nil, fmt.Errorf("error getting event type: %w", err)
	}

	if eventType == nil || eventType.AccountID != accountID {
		return nil, ErrNotFound
	}

	return eventType, nil
}

// AllEventTypes lists the account's event types together with the
// relationships defined over them.
func (s *DefaultService) AllEventTypes(ctx context.Context, accountID string) (*models.EventTypesResponse, error) {
	eventTypes, err := s.repo.GetAccountEventTypes(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error getting event types: %w", err)
	}

	if eventTypes == nil {
		eventTypes = make([]models.EventType, 0)
	}

	relationships, err := s.repo.GetAccountRelationships(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error getting relationships: %w", err)
	}

	withMembers := make([]models.RelationshipWithMembers, 0, len(relationships))
	for _, relationship := range relationships {
		members, err := s.repo.GetRelationshipMembers(ctx, relationship.ID)
		if err != nil {
			return nil, fmt.Errorf("error getting relationship members: %w", err)
		}
		withMembers = append(withMembers, models.RelationshipWithMembers{
			Relationship: relationship,
			EventTypes:   members,
		})
	}

	return &models.EventTypesResponse{
		Status:        "success",
		EventTypes:    eventTypes,
		Relationships: withMembers,
	}, nil
}

// GetEventTypeDetail returns a type with its tracking animals, its
// relationships, the ten most recent events and per-user capture counts.
func (s *DefaultService) GetEventTypeDetail(ctx context.Context, accountID, eventTypeID string) (*models.EventTypeDetailResponse, error) {
	eventType, err := s.getAccountEventType(ctx, accountID, eventTypeID)
	if err != nil {
		return nil, err
	}

	animals, err := s.repo.GetTrackingAnimals(ctx, eventTypeID)
	if err != nil {
		return nil, fmt.Errorf("error getting tracking animals: %w", err)
	}

	refs := make([]models.AnimalRef, 0, len(animals))
	for _, animal := range animals {
		refs = append(refs, models.AnimalRef{ID: animal.ID, Name: animal.Name})
	}

	relationships, err := s.repo.GetEventTypeRelationships(ctx, eventTypeID)
	if err != nil {
		return nil, fmt.Errorf("error getting relationships: %w", err)
	}

	if relationships == nil {
		relationships = make([]models.EventTypeRelationship, 0)
	}

	recent, err := s.repo.GetRecentEventsForType(ctx, eventTypeID, recentEventsLimit)
	if err != nil {
		return nil, fmt.Errorf("error getting recent events: %w", err)
	}

	if recent == nil {
		recent = make([]models.EventInfo, 0)
	}

	counts, err := s.repo.CountEventsByUser(ctx, accountID, eventTypeID)
	if err != nil {
		return nil, fmt.Errorf("error counting events by user: %w", err)
	}

	return &models.EventTypeDetailResponse{
		Status:        "success",
		EventType:     *eventType,
		Animals:       refs,
		Relationships: relationships,
		RecentEvents:  recent,
		CaptureCounts: counts,
	}, nil
}

func (s *DefaultService) AddEventType(ctx context.Context, accountID string, req models.AddEventTypeRequest) (*models.EventTypeResponse, error) {
	eventType := &models.EventType{
		AccountID:      accountID,
		Name:           req.Name,
		IsAccountLevel: req.IsAccountLevel,
	}

	if err := s.repo.CreateEventType(ctx, eventType); err != nil {
		return nil, fmt.Errorf("error creating event type: %w", err)
	}

	return &models.EventTypeResponse{
		Status:    "success",
		EventType: *eventType,
	}, nil
}

func (s *DefaultService) UpdateEventType(ctx context.Context, accountID, eventTypeID string, req models.UpdateEventTypeRequest) error {
	if _, err := s.getAccountEventType(ctx, accountID, eventTypeID); err != nil {
		return err
	}

	if err := s.repo.UpdateEventTypeName(ctx, eventTypeID, req.Name); err != nil {
		return fmt.Errorf("error updating event type: %w", err)
	}

	return nil
}

// DeleteEventType removes the type, its events and every relationship it is
// part of. The underlying animals are untouched.
func (s *DefaultService) DeleteEventType(ctx context.Context, accountID, eventTypeID string) error {
	if _, err := s.getAccountEventType(ctx, accountID, eventTypeID); err != nil {
		return err
	}

	if err := s.repo.DeleteEventType(ctx, eventTypeID); err != nil {
		return fmt.Errorf("error deleting event type: %w", err)
	}

	return nil
}

// RelateEventTypes creates a DIFFERENCE relationship between two distinct
// event types. Whether both types belong to the caller's account is not
// checked at write time; dashboard reads filter by account membership.
func (s *DefaultService) RelateEventTypes(ctx context.Context, accountID string, req models.RelateEventTypesRequest) (*models.RelationshipResponse, error) {
	if req.RelationshipType != models.RelationshipTypeDifference {
		return nil, fmt.Errorf("%w: unsupported relationship type %q", ErrInvalidArgument, req.RelationshipType)
	}

	if req.EventTypeAID == req.EventTypeBID {
		return nil, fmt.Errorf("%w: cannot relate an event type to itself", ErrInvalidArgument)
	}

	for _, eventTypeID := range []string{req.EventTypeAID, req.EventTypeBID} {
		eventType, err := s.repo.GetEventType(ctx, eventTypeID)
		if err != nil {
			return nil, fmt.Errorf("error getting event type: %w", err)
		}
		if eventType == nil {
			return nil, ErrNotFound
		}
	}

	relationship := &models.EventTypeRelationship{
		Name:             req.Name,
		RelationshipType: models.RelationshipTypeDifference,
	}

	if err := s.repo.CreateRelationship(ctx, relationship, req.EventTypeAID, req.EventTypeBID); err != nil {
		return nil, fmt.Errorf("error creating relationship: %w", err)
	}

	return s.relationshipResponse(ctx, relationship)
}
