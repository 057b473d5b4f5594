package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pawtrail/pawtrail-server/internal/joincode"
	"github.com/pawtrail/pawtrail-server/internal/models"
)

// CurrentAccount returns the account, its animals and a joining code minted
// for the requesting user.
func (s *DefaultService) CurrentAccount(ctx context.Context, accountID, userID string) (*models.AccountResponse, error) {
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error getting account: %w", err)
	}

	if account == nil {
		return nil, ErrNotFound
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if user == nil {
		return nil, ErrNotFound
	}

	animals, err := s.repo.GetAccountAnimals(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error getting animals: %w", err)
	}

	refs := make([]models.AnimalRef, 0, len(animals))
	for _, animal := range animals {
		refs = append(refs, models.AnimalRef{ID: animal.ID, Name: animal.Name})
	}

	return &models.AccountResponse{
		Status:      "success",
		ID:          account.ID,
		Name:        account.Name,
		Animals:     refs,
		JoiningCode: joincode.New(account.Name, user.Name, account.ID).String(),
	}, nil
}

// Dashboard builds the account-wide summary: per-animal latest events by
// type, account-level types with their latest event, and relationship counts.
// Animals without a single event are omitted.
func (s *DefaultService) Dashboard(ctx context.Context, accountID string) (*models.DashboardResponse, error) {
	eventTypes, err := s.repo.GetAccountEventTypes(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error getting event types: %w", err)
	}

	typesByID := make(map[string]models.EventType, len(eventTypes))
	for _, eventType := range eventTypes {
		typesByID[eventType.ID] = eventType
	}

	animals, err := s.repo.GetAccountAnimals(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error getting animals: %w", err)
	}

	animalSummaries := make([]models.AnimalSummary, 0, len(animals))
	for _, animal := range animals {
		latest, err := s.repo.GetLatestAnimalEventsByType(ctx, animal.ID)
		if err != nil {
			return nil, fmt.Errorf("error getting latest events: %w", err)
		}

		if len(latest) == 0 {
			continue
		}

		summaries := make([]models.EventTypeSummary, 0, len(latest))
		for i := range latest {
			eventType, ok := typesByID[latest[i].EventTypeID]
			if !ok {
				continue
			}
			summaries = append(summaries, models.EventTypeSummary{
				EventType:   eventType,
				LatestEvent: &latest[i],
			})
		}

		sort.Slice(summaries, func(i, j int) bool {
			return summaries[i].EventType.Name < summaries[j].EventType.Name
		})

		animalSummaries = append(animalSummaries, models.AnimalSummary{
			ID:           animal.ID,
			Name:         animal.Name,
			LatestByType: summaries,
		})
	}

	accountLevelSummaries, err := s.accountLevelSummaries(ctx, accountID, eventTypes)
	if err != nil {
		return nil, err
	}

	relationshipSummaries, err := s.relationshipSummaries(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &models.DashboardResponse{
		Status:            "success",
		Animals:           animalSummaries,
		AccountLevelTypes: accountLevelSummaries,
		Relationships:     relationshipSummaries,
	}, nil
}

func (s *DefaultService) accountLevelSummaries(ctx context.Context, accountID string, eventTypes []models.EventType) ([]models.EventTypeSummary, error) {
	latest, err := s.repo.GetLatestAccountLevelEventsByType(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error getting account-level events: %w", err)
	}

	latestByType := make(map[string]*models.EventInfo, len(latest))
	for i := range latest {
		latestByType[latest[i].EventTypeID] = &latest[i]
	}

	summaries := make([]models.EventTypeSummary, 0)
	for _, eventType := range eventTypes {
		if !eventType.IsAccountLevel {
			continue
		}
		// Types that have not happened yet appear with a nil latest event
		summaries = append(summaries, models.EventTypeSummary{
			EventType:   eventType,
			LatestEvent: latestByType[eventType.ID],
		})
	}

	return summaries, nil
}

func (s *DefaultService) relationshipSummaries(ctx context.Context, accountID string) ([]models.RelationshipSummary, error) {
	relationships, err := s.repo.GetAccountRelationships(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error getting relationships: %w", err)
	}

	summaries := make([]models.RelationshipSummary, 0, len(relationships))
	for _, relationship := range relationships {
		members, err := s.repo.GetRelationshipMembers(ctx, relationship.ID)
		if err != nil {
			return nil, fmt.Errorf("error getting relationship members: %w", err)
		}

		since := time.Time{}
		if relationship.CompareSince != nil {
			since = *relationship.CompareSince
		}

		memberCounts := make([]models.RelationshipMemberCount, 0, len(members))
		for _, member := range members {
			count, err := s.repo.CountEventsForType(ctx, member.ID, since)
			if err != nil {
				return nil, fmt.Errorf("error counting events: %w", err)
			}
			memberCounts = append(memberCounts, models.RelationshipMemberCount{
				EventType: member,
				Count:     count,
			})
		}

		summaries = append(summaries, models.RelationshipSummary{
			Relationship: relationship,
			Members:      memberCounts,
		})
	}

	return summaries, nil
}
