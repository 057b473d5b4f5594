package models

import (
	"time"
)

// RelationshipTypeDifference is the only relationship variant: count(A) - count(B).
const RelationshipTypeDifference = "DIFFERENCE"

// Account represents a household that groups users, animals and event types
type Account struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// User represents a person belonging to exactly one account
type User struct {
	ID        string    `db:"id" json:"id"`
	AccountID string    `db:"account_id" json:"accountId"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	Password  string    `db:"password" json:"-"` // Password hash, not returned in JSON
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Animal represents a tracked subject belonging to an account
type Animal struct {
	ID        string    `db:"id" json:"id"`
	AccountID string    `db:"account_id" json:"accountId"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// EventType represents a named, account-scoped category of loggable action.
// Account-level types apply to the household as a whole instead of an animal.
type EventType struct {
	ID             string    `db:"id" json:"id"`
	AccountID      string    `db:"account_id" json:"accountId"`
	Name           string    `db:"name" json:"name"`
	IsAccountLevel bool      `db:"is_account_level" json:"isAccountLevel"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// Event is an immutable occurrence record. AccountID is always the owning
// account; AnimalID is nil for household-level events.
type Event struct {
	ID          string    `db:"id" json:"id"`
	AccountID   string    `db:"account_id" json:"accountId"`
	EventTypeID string    `db:"event_type_id" json:"eventTypeId"`
	UserID      string    `db:"user_id" json:"userId"`
	AnimalID    *string   `db:"animal_id" json:"animalId,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// SubjectKind tags what an event was recorded against
type SubjectKind string

const (
	SubjectAnimal    SubjectKind = "animal"
	SubjectHousehold SubjectKind = "household"
)

// EventSubject is the tagged variant for an event's subject: either a
// specific animal or the household as a whole.
type EventSubject struct {
	Kind     SubjectKind `json:"kind"`
	AnimalID string      `json:"animalId,omitempty"`
}

// AnimalSubject returns the subject for an event on a specific animal
func AnimalSubject(animalID string) EventSubject {
	return EventSubject{Kind: SubjectAnimal, AnimalID: animalID}
}

// HouseholdSubject returns the subject for an account-level event
func HouseholdSubject() EventSubject {
	return EventSubject{Kind: SubjectHousehold}
}

// Subject returns the tagged subject variant for the event
func (e *Event) Subject() EventSubject {
	if e.AnimalID != nil {
		return AnimalSubject(*e.AnimalID)
	}
	return HouseholdSubject()
}

// EventInfo is an event annotated with the capturing user's name
type EventInfo struct {
	Event
	UserName string `db:"user_name" json:"userName"`
}

// EventTypeRelationship is a stored comparison between exactly two event
// types. CompareSince is the counting baseline; nil means all time.
type EventTypeRelationship struct {
	ID               string     `db:"id" json:"id"`
	Name             string     `db:"name" json:"name"`
	RelationshipType string     `db:"relationship_type" json:"relationshipType"`
	CompareSince     *time.Time `db:"compare_since" json:"compareSince,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
}

// UserCaptureCount is how many events of a given type a user has captured
type UserCaptureCount struct {
	UserID string `db:"user_id" json:"userId"`
	Name   string `db:"name" json:"name"`
	Count  int64  `db:"count" json:"count"`
}
