package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pawtrail/pawtrail-server/internal/api/testutils"
	"github.com/pawtrail/pawtrail-server/internal/models"
	"github.com/stretchr/testify/assert"
)

// createAnimal registers an animal through the API and returns its id
func createAnimal(t *testing.T, tc *testutils.TestContext, name string) string {
	w := testutils.PerformRequest(
		tc.Router,
		http.MethodPost,
		"/api/animals",
		models.CreateAnimalRequest{Name: name},
		testutils.AuthHeaders(tc.TestUserJWT),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp models.AnimalResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.ID)

	return resp.ID
}

// addEventType creates an event type and returns its id
func addEventType(t *testing.T, tc *testutils.TestContext, name string, accountLevel bool) string {
	w := testutils.PerformRequest(
		tc.Router,
		http.MethodPost,
		"/api/event-types",
		models.AddEventTypeRequest{Name: name, IsAccountLevel: accountLevel},
		testutils.AuthHeaders(tc.TestUserJWT),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp models.EventTypeResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.EventType.ID)

	return resp.EventType.ID
}

// trackType starts tracking an event type on the animal
func trackType(t *testing.T, tc *testutils.TestContext, animalID, eventTypeID string) {
	w := testutils.PerformRequest(
		tc.Router,
		http.MethodPost,
		"/api/animals/"+animalID+"/track",
		models.TrackRequest{EventTypeID: eventTypeID},
		testutils.AuthHeaders(tc.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)
}

// captureEvent appends an event and returns its id. An empty animalID
// captures a household-level event.
func captureEvent(t *testing.T, tc *testutils.TestContext, eventTypeID, animalID string) string {
	w := testutils.PerformRequest(
		tc.Router,
		http.MethodPost,
		"/api/events",
		models.CaptureEventRequest{EventTypeID: eventTypeID, AnimalID: animalID},
		testutils.AuthHeaders(tc.TestUserJWT),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp models.EventResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Event.ID)

	return resp.Event.ID
}

// relateTypes creates a DIFFERENCE relationship and returns its id
func relateTypes(t *testing.T, tc *testutils.TestContext, name, typeAID, typeBID string) string {
	w := testutils.PerformRequest(
		tc.Router,
		http.MethodPost,
		"/api/event-types/relate",
		models.RelateEventTypesRequest{
			Name:             name,
			EventTypeAID:     typeAID,
			EventTypeBID:     typeBID,
			RelationshipType: models.RelationshipTypeDifference,
		},
		testutils.AuthHeaders(tc.TestUserJWT),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp models.RelationshipResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Relationship.ID)

	return resp.Relationship.ID
}

// signupOther creates an unrelated account and returns a token for its owner
func signupOther(t *testing.T, tc *testutils.TestContext, email string) string {
	w := testutils.PerformRequest(
		tc.Router,
		http.MethodPost,
		"/api/auth/signup",
		models.SignUpRequest{
			Email:       email,
			UserName:    "Outsider",
			AccountName: "Other Household",
			Password:    "Password123",
		},
		nil,
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = testutils.PerformRequest(
		tc.Router,
		http.MethodPost,
		"/api/auth/login",
		models.LoginRequest{Email: email, Password: "Password123"},
		nil,
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.AuthResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)

	return resp.Token
}
