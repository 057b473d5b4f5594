package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pawtrail/pawtrail-server/internal/api/testutils"
	"github.com/pawtrail/pawtrail-server/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCreateAnimal(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// Test case 1: Successful creation
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/animals",
		models.CreateAnimalRequest{Name: "Rex"},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp models.AnimalResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Rex", resp.Name)

	// Test case 2: Missing name
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/animals",
		models.CreateAnimalRequest{},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAnimal(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	animalID := createAnimal(t, testCtx, "Rex")

	// Test case 1: Own animal
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/animals/"+animalID,
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	// Test case 2: Unknown id
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/animals/"+uuid.New().String(),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusNotFound, w.Code)

	// Test case 3: Another account's animal reads as missing
	outsiderToken := signupOther(t, testCtx, "outsider@example.com")

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/animals/"+animalID,
		nil,
		testutils.AuthHeaders(outsiderToken),
	)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAnimal(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	animalID := createAnimal(t, testCtx, "Rex")
	walkID := addEventType(t, testCtx, "Walk", false)
	trackType(t, testCtx, animalID, walkID)
	eventID := captureEvent(t, testCtx, walkID, animalID)

	// Test case 1: Delete removes the animal
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/animals/"+animalID,
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/animals/"+animalID,
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusNotFound, w.Code)

	// Test case 2: The animal's events went with it
	event, err := testCtx.Repository.GetEvent(context.Background(), eventID)
	assert.NoError(t, err)
	assert.Nil(t, event)

	// Test case 3: Deleting twice is a 404
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/animals/"+animalID,
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTrackAndUntrack(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	animalID := createAnimal(t, testCtx, "Rex")
	walkID := addEventType(t, testCtx, "Walk", false)
	feedID := addEventType(t, testCtx, "Feed", false)
	addEventType(t, testCtx, "Water Plants", true)

	// Test case 1: Untracked animal sees all non-account-level types as available
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/animals/"+animalID+"/event-types",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.AnimalEventTypesResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Empty(t, resp.Tracked)
	assert.Len(t, resp.Available, 2)

	// Test case 2: Tracking moves a type over; tracking twice is idempotent
	trackType(t, testCtx, animalID, walkID)
	trackType(t, testCtx, animalID, walkID)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/animals/"+animalID+"/event-types",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)
	err = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Len(t, resp.Tracked, 1)
	assert.Equal(t, "Walk", resp.Tracked[0].Name)
	assert.Len(t, resp.Available, 1)
	assert.Equal(t, "Feed", resp.Available[0].Name)

	// Test case 3: Untrack restores availability
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/animals/"+animalID+"/untrack",
		models.TrackRequest{EventTypeID: walkID},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/animals/"+animalID+"/event-types",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)
	err = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Empty(t, resp.Tracked)
	assert.Len(t, resp.Available, 2)

	// Test case 4: Tracking a missing type is a 404
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/animals/"+animalID+"/track",
		models.TrackRequest{EventTypeID: uuid.New().String()},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusNotFound, w.Code)

	// Test case 5: Tracking the remaining available type
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/animals/"+animalID+"/track",
		models.TrackRequest{EventTypeID: feedID},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLatestEvents(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	animalID := createAnimal(t, testCtx, "Rex")
	walkID := addEventType(t, testCtx, "Walk", false)
	feedID := addEventType(t, testCtx, "Feed", false)
	trackType(t, testCtx, animalID, walkID)
	trackType(t, testCtx, animalID, feedID)

	// Capture two walks; the second is the latest
	firstID := captureEvent(t, testCtx, walkID, animalID)
	secondID := captureEvent(t, testCtx, walkID, animalID)

	// A walk from yesterday: counts for "latest" ordering history but is
	// excluded from today's list
	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	err := testCtx.Repository.CreateEvent(context.Background(), &models.Event{
		ID:          uuid.New().String(),
		AccountID:   testCtx.TestAccountID,
		EventTypeID: walkID,
		UserID:      testCtx.TestUserID,
		AnimalID:    &animalID,
		CreatedAt:   yesterday,
	})
	assert.NoError(t, err)

	// Test case 1: Per-type recency view
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/animals/"+animalID+"/latest-events",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.LatestEventsResponse
	err = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, animalID, resp.AnimalID)
	assert.Len(t, resp.EventTypes, 2)

	byName := map[string]models.TypeActivity{}
	for _, activity := range resp.EventTypes {
		byName[activity.EventType.Name] = activity
	}

	walk := byName["Walk"]
	assert.NotNil(t, walk.LatestEvent)
	assert.Equal(t, secondID, walk.LatestEvent.ID)
	assert.NotEqual(t, firstID, walk.LatestEvent.ID)

	// Today's walks exclude the backdated one, newest first
	assert.Len(t, walk.EventsToday, 2)
	assert.Equal(t, secondID, walk.EventsToday[0].ID)
	assert.Equal(t, firstID, walk.EventsToday[1].ID)

	// A tracked type with no events still appears, empty
	feed := byName["Feed"]
	assert.Nil(t, feed.LatestEvent)
	assert.Empty(t, feed.EventsToday)
}
