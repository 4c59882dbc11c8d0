package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t0sssik/gsd-ci-cd/internal/domain"
)

func TestListUsers_Empty(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/users", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestCreateUser(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/users", map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"role":     "admin",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	user := decode[domain.User](t, rec)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.Len(t, user.APIKey, 20)
	assert.Equal(t, testTime, user.RegistrationDate)
}

func TestCreateUser_DefaultRole(t *testing.T) {
	srv := newTestServer(t)

	user := seedUser(t, srv, "alice", "alice@example.com")
	assert.Equal(t, domain.RoleUser, user.Role)
}

func TestCreateUser_InvalidEmail(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/users", map[string]any{
		"username": "alice",
		"email":    "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateUser_InvalidRole(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/users", map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"role":     "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	seedUser(t, srv, "alice", "alice@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/users", map[string]any{
		"username": "bob",
		"email":    "alice@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already registered")
}

func TestGetUser(t *testing.T) {
	srv := newTestServer(t)
	created := seedUser(t, srv, "alice", "alice@example.com")

	rec := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	user := decode[domain.User](t, rec)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestGetUser_NotFound(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/users/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "user not found")
}

func TestGetUser_BadID(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/users/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUser_Partial(t *testing.T) {
	srv := newTestServer(t)
	created := seedUser(t, srv, "alice", "alice@example.com")

	rec := doJSON(t, srv, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", created.ID), map[string]any{
		"role": "moderator",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	user := decode[domain.User](t, rec)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, domain.RoleModerator, user.Role)
}

func TestUpdateUser_NotFound(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPut, "/api/v1/users/42", map[string]any{"username": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteUser(t *testing.T) {
	srv := newTestServer(t)
	created := seedUser(t, srv, "alice", "alice@example.com")

	rec := doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User 'alice' deleted successfully")

	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteUser_CascadesImages(t *testing.T) {
	srv := newTestServer(t)
	user := seedUser(t, srv, "alice", "alice@example.com")
	img := seedImage(t, srv, user.ID, "scene.jpg")

	rec := doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/images/%d", img.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
