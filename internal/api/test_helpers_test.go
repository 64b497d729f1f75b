// ABOUTME: Shared helpers for API handler tests
// ABOUTME: Builds a server over a real SQLite store with a test signing secret

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/laksh-krishna-sharma/AI-Task-Manager/internal/auth"
	"github.com/laksh-krishna-sharma/AI-Task-Manager/internal/store"
)

// apiTestSecret is a 32-byte secret that meets MinSecretLength requirement.
var apiTestSecret = []byte("api-handler-test-secret-32-bytes")

// newTestServer builds an API server backed by a fresh SQLite store.
func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()

	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "api-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	verifier, err := auth.NewJWTVerifier(apiTestSecret)
	require.NoError(t, err)

	revoked := auth.NewRevocationSet()
	t.Cleanup(revoked.Close)

	s := New(st, verifier, revoked, Config{
		TokenTTL:       time.Hour,
		AllowedOrigins: []string{"http://localhost:5173"},
	})

	return s, s.Handler()
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeBody decodes a recorded JSON response into a map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// decodeBodyInto decodes a recorded JSON response into the given value.
func decodeBodyInto(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

// registerAndLogin creates an account and returns its token and user id.
func registerAndLogin(t *testing.T, h http.Handler, username, password string) (token, userID string) {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "register: %s", rec.Body.String())

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, "login: %s", rec.Body.String())

	body := decodeBody(t, rec)
	token, _ = body["token"].(string)
	require.NotEmpty(t, token)

	user, _ := body["user"].(map[string]any)
	require.NotNil(t, user)
	userID, _ = user["id"].(string)
	require.NotEmpty(t, userID)

	return token, userID
}
