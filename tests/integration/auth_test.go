package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kickoffAPI/handlers"
	"kickoffAPI/internal/user"
	"kickoffAPI/middleware"
	"kickoffAPI/services"
	"kickoffAPI/tests/helpers"
)

func authedRequest(method, target, body, clerkID string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	// simulates a successful ClerkAuthMiddleware
	return req.WithContext(context.WithValue(req.Context(), middleware.ClerkIDKey, clerkID))
}

func createTestUser(t *testing.T, userService *services.UserService, name string) *user.User {
	t.Helper()
	clerkID := helpers.UniqueClerkID()
	u, err := userService.CreateUser(context.Background(), &user.CreateUserRequest{
		ClerkID:   clerkID,
		Email:     "test" + name + "." + clerkID + "@example.com",
		Username:  name,
		FirstName: "Test",
		LastName:  name,
	})
	require.NoError(t, err)
	return u
}

func TestAuthMiddleware_RejectsTokenWithoutBearerScheme(t *testing.T) {
	token, err := helpers.GenerateMockClerkJWT("user_test_scheme")
	require.NoError(t, err)

	protected := middleware.ClerkAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user", nil)
	req.Header.Set("Authorization", "Token "+token)
	rr := httptest.NewRecorder()

	protected.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetProfile_Authenticated(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	userService := services.NewUserService(pool)
	userHandler := handlers.NewUserHandler(userService, services.NewPredictionService(pool))

	createdUser := createTestUser(t, userService, "testauth")

	rr := httptest.NewRecorder()
	userHandler.GetProfile(rr, authedRequest(http.MethodGet, "/api/v1/user", "", createdUser.ClerkID))

	assert.Equal(t, http.StatusOK, rr.Code)

	var response user.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, createdUser.ID, response.ID)
	assert.Equal(t, createdUser.ClerkID, response.ClerkID)
	assert.Equal(t, "testauth", response.Username)
}

func TestGetProfile_UnknownUser(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	userHandler := handlers.NewUserHandler(services.NewUserService(pool), services.NewPredictionService(pool))

	rr := httptest.NewRecorder()
	userHandler.GetProfile(rr, authedRequest(http.MethodGet, "/api/v1/user", "", helpers.UniqueClerkID()))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateProfile_Authenticated(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	userService := services.NewUserService(pool)
	userHandler := handlers.NewUserHandler(userService, services.NewPredictionService(pool))

	u := createTestUser(t, userService, "testupdate")

	body := `{"firstName": "Updated", "lastName": "Name", "username": "newusername"}`
	rr := httptest.NewRecorder()
	userHandler.UpdateProfile(rr, authedRequest(http.MethodPut, "/api/v1/user", body, u.ClerkID))

	assert.Equal(t, http.StatusOK, rr.Code)

	var response user.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "Updated", response.FirstName)
	assert.Equal(t, "Name", response.LastName)
	assert.Equal(t, "newusername", response.Username)
}

func TestDeleteAccount_Authenticated(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	userService := services.NewUserService(pool)
	userHandler := handlers.NewUserHandler(userService, services.NewPredictionService(pool))

	u := createTestUser(t, userService, "testdelete")

	rr := httptest.NewRecorder()
	userHandler.DeleteAccount(rr, authedRequest(http.MethodDelete, "/api/v1/user", "", u.ClerkID))

	assert.Equal(t, http.StatusOK, rr.Code)

	_, err := userService.GetUserByClerkID(context.Background(), u.ClerkID)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}
