// ABOUTME: Tests for registration, login, and logout handlers
// ABOUTME: Credential failures must be uniform; revoked tokens must stop working

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"password": "secret1",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "user registered", body["message"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", user["username"])
	assert.NotEmpty(t, user["id"])
	assert.NotEmpty(t, user["created_at"])

	// The hash must never appear in any response field
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "$2a$")
}

func TestRegister_InvalidInput(t *testing.T) {
	_, h := newTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"short username", map[string]string{"username": "ab", "password": "secret1"}},
		{"username starts with digit", map[string]string{"username": "1alice", "password": "secret1"}},
		{"username with spaces", map[string]string{"username": "al ice", "password": "secret1"}},
		{"short password", map[string]string{"username": "alice", "password": "12345"}},
		{"empty", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice", "password": "different",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "user already exists", decodeBody(t, rec)["error"])
}

func TestRegister_DistinctUsersDistinctIDs(t *testing.T) {
	_, h := newTestServer(t)

	_, aliceID := registerAndLogin(t, h, "alice", "secret1")
	_, bobID := registerAndLogin(t, h, "bob", "secret2")

	assert.NotEqual(t, aliceID, bobID)
}

func TestLogin_WrongPassword(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid username or password", decodeBody(t, rec)["error"])
}

func TestLogin_UnknownUser(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "ghost", "password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Same error body as a wrong password: no username oracle
	assert.Equal(t, "invalid username or password", decodeBody(t, rec)["error"])
}

func TestLogin_TokenResolvesToUser(t *testing.T) {
	s, h := newTestServer(t)

	token, userID := registerAndLogin(t, h, "alice", "secret1")

	gotID, err := s.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
}

func TestLogin_MissingFields(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout_MissingHeader(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout_MalformedHeader(t *testing.T) {
	_, h := newTestServer(t)

	for _, header := range []string{"Basic abc123", "Bearer", "Bearer ", "token-without-scheme"} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "header %q", header)
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	_, h := newTestServer(t)

	token, _ := registerAndLogin(t, h, "alice", "secret1")

	// Token works before logout
	rec := doJSON(t, h, http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "logout successful", decodeBody(t, rec)["message"])

	// Same token is now rejected even though its signature still verifies
	rec = doJSON(t, h, http.MethodGet, "/api/tasks", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_Idempotent(t *testing.T) {
	_, h := newTestServer(t)

	token, _ := registerAndLogin(t, h, "alice", "secret1")

	for i := 0; i < 2; i++ {
		rec := doJSON(t, h, http.MethodPost, "/api/auth/logout", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
