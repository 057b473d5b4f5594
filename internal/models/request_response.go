package models

import "time"

// Request models
type SignUpRequest struct {
	Email       string `json:"email" binding:"required,email"`
	UserName    string `json:"userName" binding:"required,max=100"`
	AccountName string `json:"accountName" binding:"required,max=100"`
	Password    string `json:"password" binding:"required,min=8,max=100"`
}

type JoinRequest struct {
	Email       string `json:"email" binding:"required,email"`
	UserName    string `json:"userName" binding:"required,max=100"`
	Password    string `json:"password" binding:"required,min=8,max=100"`
	JoiningCode string `json:"joiningCode" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateAnimalRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type TrackRequest struct {
	EventTypeID string `json:"eventTypeId" binding:"required"`
}

type CaptureEventRequest struct {
	EventTypeID string `json:"eventTypeId" binding:"required"`
	AnimalID    string `json:"animalId"` // empty means a household-level event
}

type AddEventTypeRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	IsAccountLevel bool   `json:"isAccountLevel"`
}

type UpdateEventTypeRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type RelateEventTypesRequest struct {
	Name             string `json:"name" binding:"required,max=100"`
	EventTypeAID     string `json:"eventTypeAId" binding:"required"`
	EventTypeBID     string `json:"eventTypeBId" binding:"required"`
	RelationshipType string `json:"relationshipType" binding:"required"`
}

type UpdateRelationshipRequest struct {
	Name         *string    `json:"name,omitempty"`
	CompareSince *time.Time `json:"compareSince,omitempty"`
}

// Response models
type AuthResponse struct {
	Status    string `json:"status"`
	UserID    string `json:"userId,omitempty"`
	AccountID string `json:"accountId,omitempty"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int    `json:"expiresIn,omitempty"`
}

type AnimalRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AccountResponse struct {
	Status      string      `json:"status"`
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Animals     []AnimalRef `json:"animals"`
	JoiningCode string      `json:"joiningCode"`
}

type AnimalResponse struct {
	Status string `json:"status"`
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
}

// EventTypeSummary pairs an event type with its most recent event, if any
type EventTypeSummary struct {
	EventType   EventType  `json:"eventType"`
	LatestEvent *EventInfo `json:"latestEvent,omitempty"`
}

// AnimalSummary holds, per distinct event type with at least one event on
// the animal, only the most recent event
type AnimalSummary struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	LatestByType []EventTypeSummary `json:"latestByType"`
}

// RelationshipMemberCount is one side of a relationship with its event count
type RelationshipMemberCount struct {
	EventType EventType `json:"eventType"`
	Count     int64     `json:"count"`
}

type RelationshipSummary struct {
	Relationship EventTypeRelationship     `json:"relationship"`
	Members      []RelationshipMemberCount `json:"members"`
}

type DashboardResponse struct {
	Status            string                `json:"status"`
	Animals           []AnimalSummary       `json:"animals"`
	AccountLevelTypes []EventTypeSummary    `json:"accountLevelTypes"`
	Relationships     []RelationshipSummary `json:"relationships"`
}

// TypeActivity is an event type's recency view for one animal: the latest
// event ever, plus today's events newest first. A type with no events has a
// nil LatestEvent and an empty EventsToday.
type TypeActivity struct {
	EventType   EventType   `json:"eventType"`
	LatestEvent *EventInfo  `json:"latestEvent,omitempty"`
	EventsToday []EventInfo `json:"eventsToday"`
}

type LatestEventsResponse struct {
	Status     string         `json:"status"`
	AnimalID   string         `json:"animalId"`
	EventTypes []TypeActivity `json:"eventTypes"`
}

type AnimalEventTypesResponse struct {
	Status    string      `json:"status"`
	Tracked   []EventType `json:"tracked"`
	Available []EventType `json:"available"`
}

type EventResponse struct {
	Status string `json:"status"`
	Event  Event  `json:"event"`
}

// EventGroup is the events of one type, newest first
type EventGroup struct {
	EventType EventType   `json:"eventType"`
	Events    []EventInfo `json:"events"`
}

type GroupedEventsResponse struct {
	Status string       `json:"status"`
	Groups []EventGroup `json:"groups"`
}

type RelationshipWithMembers struct {
	Relationship EventTypeRelationship `json:"relationship"`
	EventTypes   []EventType           `json:"eventTypes"`
}

type EventTypesResponse struct {
	Status        string                    `json:"status"`
	EventTypes    []EventType               `json:"eventTypes"`
	Relationships []RelationshipWithMembers `json:"relationships"`
}

type EventTypeDetailResponse struct {
	Status        string                  `json:"status"`
	EventType     EventType               `json:"eventType"`
	Animals       []AnimalRef             `json:"animals"`
	Relationships []EventTypeRelationship `json:"relationships"`
	RecentEvents  []EventInfo             `json:"recentEvents"`
	CaptureCounts []UserCaptureCount      `json:"captureCounts"`
}

type EventTypeResponse struct {
	Status    string    `json:"status"`
	EventType EventType `json:"eventType"`
}

// RelationshipEvaluation is the outcome of comparing the two member types.
// When the counts are equal Tie is true and Larger/Lesser are omitted.
type RelationshipEvaluation struct {
	Tie        bool                     `json:"tie"`
	Larger     *RelationshipMemberCount `json:"larger,omitempty"`
	Lesser     *RelationshipMemberCount `json:"lesser,omitempty"`
	Difference int64                    `json:"difference"`
}

type RelationshipResponse struct {
	Status       string                 `json:"status"`
	Relationship EventTypeRelationship  `json:"relationship"`
	Evaluation   RelationshipEvaluation `json:"evaluation"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
