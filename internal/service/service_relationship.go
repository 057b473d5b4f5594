package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pawtrail/pawtrail-server/internal/models"
)

// getAccountRelationship loads a relationship and hides it behind ErrNotFound
// unless at least one member type belongs to the caller's account.
func (s *DefaultService) getAccountRelationship(ctx context.Context, accountID, relationshipID string) (*models.EventTypeRelationship, error) {
	relationship, err := s.repo.GetRelationship(ctx, relationshipID)
	if err != nil {
		return nil, fmt.Errorf("error getting relationship: %w", err)
	}

	if relationship == nil {
		return nil, ErrNotFound
	}

	members, err := s.repo.GetRelationshipMembers(ctx, relationship.ID)
	if err != nil {
		return nil, fmt.Errorf("error getting relationship members: %w", err)
	}

	for _, member := range members {
		if member.AccountID == accountID {
			return relationship, nil
		}
	}

	return nil, ErrNotFound
}

// GetRelationship returns the relationship together with its evaluation
func (s *DefaultService) GetRelationship(ctx context.Context, accountID, relationshipID string) (*models.RelationshipResponse, error) {
	relationship, err := s.getAccountRelationship(ctx, accountID, relationshipID)
	if err != nil {
		return nil, err
	}

	return s.relationshipResponse(ctx, relationship)
}

// UpdateRelationship applies a partial update; omitted fields are untouched
func (s *DefaultService) UpdateRelationship(ctx context.Context, accountID, relationshipID string, req models.UpdateRelationshipRequest) error {
	if _, err := s.getAccountRelationship(ctx, accountID, relationshipID); err != nil {
		return err
	}

	if err := s.repo.UpdateRelationship(ctx, relationshipID, req.Name, req.CompareSince); err != nil {
		return fmt.Errorf("error updating relationship: %w", err)
	}

	return nil
}

// DeleteRelationship removes the relationship and its member rows. The event
// types themselves and their events are untouched.
func (s *DefaultService) DeleteRelationship(ctx context.Context, accountID, relationshipID string) error {
	if _, err := s.getAccountRelationship(ctx, accountID, relationshipID); err != nil {
		return err
	}

	if err := s.repo.DeleteRelationship(ctx, relationshipID); err != nil {
		return fmt.Errorf("error deleting relationship: %w", err)
	}

	return nil
}

func (s *DefaultService) relationshipResponse(ctx context.Context, relationship *models.EventTypeRelationship) (*models.RelationshipResponse, error) {
	evaluation, err := s.evaluateRelationship(ctx, relationship)
	if err != nil {
		return nil, err
	}

	return &models.RelationshipResponse{
		Status:       "success",
		Relationship: *relationship,
		Evaluation:   *evaluation,
	}, nil
}

// evaluateRelationship counts both members' events since the comparison
// baseline (all time when unset) and orders the sides by count. Equal counts
// collapse into a tie with no larger or lesser side.
func (s *DefaultService) evaluateRelationship(ctx context.Context, relationship *models.EventTypeRelationship) (*models.RelationshipEvaluation, error) {
	members, err := s.repo.GetRelationshipMembers(ctx, relationship.ID)
	if err != nil {
		return nil, fmt.Errorf("error getting relationship members: %w", err)
	}

	if len(members) != 2 {
		return nil, fmt.Errorf("relationship %s has %d members, want 2", relationship.ID, len(members))
	}

	var since time.Time
	if relationship.CompareSince != nil {
		since = *relationship.CompareSince
	}

	counts := make([]models.RelationshipMemberCount, 0, len(members))
	for _, member := range members {
		count, err := s.repo.CountEventsForType(ctx, member.ID, since)
		if err != nil {
			return nil, fmt.Errorf("error counting events: %w", err)
		}
		counts = append(counts, models.RelationshipMemberCount{
			EventType: member,
			Count:     count,
		})
	}

	if counts[0].Count == counts[1].Count {
		return &models.RelationshipEvaluation{Tie: true, Difference: 0}, nil
	}

	larger, lesser := counts[0], counts[1]
	if lesser.Count > larger.Count {
		larger, lesser = lesser, larger
	}

	return &models.RelationshipEvaluation{
		Larger:     &larger,
		Lesser:     &lesser,
		Difference: larger.Count - lesser.Count,
	}, nil
}
