package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/pawtrail/pawtrail-server/internal/api/testutils"
	"github.com/pawtrail/pawtrail-server/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAddEventType(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// Test case 1: Animal-level type
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/event-types",
		models.AddEventTypeRequest{Name: "Walk"},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp models.EventTypeResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "Walk", resp.EventType.Name)
	assert.False(t, resp.EventType.IsAccountLevel)
	assert.Equal(t, testCtx.TestAccountID, resp.EventType.AccountID)

	// Test case 2: Account-level type
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/event-types",
		models.AddEventTypeRequest{Name: "Water Plants", IsAccountLevel: true},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusCreated, w.Code)
	err = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.True(t, resp.EventType.IsAccountLevel)

	// Test case 3: Missing name
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/event-types",
		models.AddEventTypeRequest{},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListEventTypes(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	walkID := addEventType(t, testCtx, "Walk", false)
	feedID := addEventType(t, testCtx, "Feed", false)
	relateTypes(t, testCtx, "Walks vs feeds", walkID, feedID)

	// Test case 1: Types and relationships of the account
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/event-types",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.EventTypesResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Len(t, resp.EventTypes, 2)
	assert.Len(t, resp.Relationships, 1)
	assert.Equal(t, "Walks vs feeds", resp.Relationships[0].Relationship.Name)
	assert.Len(t, resp.Relationships[0].EventTypes, 2)

	// Test case 2: Another account sees none of it
	outsiderToken := signupOther(t, testCtx, "outsider@example.com")

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/event-types",
		nil,
		testutils.AuthHeaders(outsiderToken),
	)

	assert.Equal(t, http.StatusOK, w.Code)
	err = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Empty(t, resp.EventTypes)
	assert.Empty(t, resp.Relationships)
}

func TestEventTypeDetail(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	animalID := createAnimal(t, testCtx, "Rex")
	walkID := addEventType(t, testCtx, "Walk", false)
	feedID := addEventType(t, testCtx, "Feed", false)
	trackType(t, testCtx, animalID, walkID)
	relateTypes(t, testCtx, "Walks vs feeds", walkID, feedID)

	captureEvent(t, testCtx, walkID, animalID)
	captureEvent(t, testCtx, walkID, animalID)

	// Test case 1: Detail view
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/event-types/"+walkID,
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.EventTypeDetailResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "Walk", resp.EventType.Name)
	assert.Len(t, resp.Animals, 1)
	assert.Equal(t, "Rex", resp.Animals[0].Name)
	assert.Len(t, resp.Relationships, 1)
	assert.Len(t, resp.RecentEvents, 2)
	assert.Len(t, resp.CaptureCounts, 1)
	assert.Equal(t, testCtx.TestUserID, resp.CaptureCounts[0].UserID)
	assert.Equal(t, int64(2), resp.CaptureCounts[0].Count)

	// Test case 2: Unknown id
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/event-types/"+uuid.New().String(),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateEventType(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	walkID := addEventType(t, testCtx, "Walk", false)

	// Test case 1: Rename
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPatch,
		"/api/event-types/"+walkID,
		models.UpdateEventTypeRequest{Name: "Morning Walk"},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	eventType, err := testCtx.Repository.GetEventType(context.Background(), walkID)
	assert.NoError(t, err)
	assert.Equal(t, "Morning Walk", eventType.Name)

	// Test case 2: Another account cannot rename it
	outsiderToken := signupOther(t, testCtx, "outsider@example.com")

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPatch,
		"/api/event-types/"+walkID,
		models.UpdateEventTypeRequest{Name: "Hijacked"},
		testutils.AuthHeaders(outsiderToken),
	)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteEventType(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	animalID := createAnimal(t, testCtx, "Rex")
	walkID := addEventType(t, testCtx, "Walk", false)
	feedID := addEventType(t, testCtx, "Feed", false)
	trackType(t, testCtx, animalID, walkID)
	relationshipID := relateTypes(t, testCtx, "Walks vs feeds", walkID, feedID)
	eventID := captureEvent(t, testCtx, walkID, animalID)

	// Test case 1: Delete cascades to events and relationships
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/event-types/"+walkID,
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	eventType, err := testCtx.Repository.GetEventType(context.Background(), walkID)
	assert.NoError(t, err)
	assert.Nil(t, eventType)

	event, err := testCtx.Repository.GetEvent(context.Background(), eventID)
	assert.NoError(t, err)
	assert.Nil(t, event)

	relationship, err := testCtx.Repository.GetRelationship(context.Background(), relationshipID)
	assert.NoError(t, err)
	assert.Nil(t, relationship)

	// The animal and the other type survive
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/animals/"+animalID,
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	feed, err := testCtx.Repository.GetEventType(context.Background(), feedID)
	assert.NoError(t, err)
	assert.NotNil(t, feed)

	// Test case 2: Deleting twice is a 404
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/event-types/"+walkID,
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
