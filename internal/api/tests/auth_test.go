package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/safarhub/backoffice/internal/api/testutils"
	"github.com/safarhub/backoffice/internal/models"
)

func TestLoginSuccess(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(tc)

	w := testutils.PerformRequest(tc.Router, "POST", "/api/admin/login", models.LoginRequest{
		Email:    "testuser@example.com",
		Password: "testpassword",
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.AuthResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "testuser@example.com", resp.Email)

	// The issued token opens protected routes
	tc.Upstream.SetHandler(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"flights":[]}`))
	})
	w = testutils.PerformRequest(tc.Router, "GET", "/api/flights", nil, testutils.AuthHeaders(resp.Token))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(tc)

	w := testutils.PerformRequest(tc.Router, "POST", "/api/admin/login", models.LoginRequest{
		Email:    "testuser@example.com",
		Password: "wrongpassword",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(tc)

	w := testutils.PerformRequest(tc.Router, "POST", "/api/admin/login", models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(tc)

	w := testutils.PerformRequest(tc.Router, "GET", "/api/flights", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, tc.Upstream.RequestCount())
}

func TestProtectedRouteRejectsBadToken(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(tc)

	w := testutils.PerformRequest(tc.Router, "GET", "/api/flights", nil, testutils.AuthHeaders("not-a-jwt"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuditTrailListsMutationsNewestFirst(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(tc)

	tc.Upstream.SetHandler(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	})

	flight := validFlight()
	w := testutils.PerformRequest(tc.Router, "POST", "/api/flights", flight, testutils.AuthHeaders(tc.TestUserJWT))
	assert.Equal(t, http.StatusCreated, w.Code)
	w = testutils.PerformRequest(tc.Router, "PUT", "/api/flights/F1", flight, testutils.AuthHeaders(tc.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(tc.Router, "GET", "/api/admin/audit", nil, testutils.AuthHeaders(tc.TestUserJWT))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.AuditResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Events, 2)
	assert.Equal(t, "update", resp.Events[0].Action)
	assert.Equal(t, "create", resp.Events[1].Action)
	assert.Equal(t, "testuser@example.com", resp.Events[0].Actor)
}

func TestHealthEndpointIsPublic(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(tc)

	w := testutils.PerformRequest(tc.Router, "GET", "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
