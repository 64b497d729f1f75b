// ABOUTME: HTTP handlers for registration, login, and logout
// ABOUTME: Credential failures are deliberately indistinguishable (no username oracle)

package api

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/laksh-krishna-sharma/AI-Task-Manager/internal/auth"
	"github.com/laksh-krishna-sharma/AI-Task-Manager/internal/store"
)

// Username validation regex: letter first, then alphanumeric + underscores, 3-32 characters
var usernameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]{2,31}$`)

const minPasswordLength = 6

// credentialsRequest is the JSON request body for register and login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userResponse is the public-safe projection of a user. The password hash
// never appears here.
type userResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

// registerResponse is the JSON response for POST /api/auth/register.
type registerResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

// loginResponse is the JSON response for POST /api/auth/login.
type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

func toUserResponse(u *store.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func validateCredentials(req *credentialsRequest) string {
	if !usernameRegex.MatchString(req.Username) {
		return "username must be 3-32 characters, starting with a letter"
	}
	if len(req.Password) < minPasswordLength {
		return "password must be at least 6 characters"
	}
	return ""
}

// handleRegister handles POST /api/auth/register requests.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if errMsg := validateCredentials(&req); errMsg != "" {
		s.sendJSONError(w, http.StatusBadRequest, errMsg)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "an error occurred")
		return
	}

	user := &store.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			s.sendJSONError(w, http.StatusConflict, "user already exists")
			return
		}
		s.logger.Error("failed to create user", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "an error occurred")
		return
	}

	s.writeJSON(w, http.StatusCreated, registerResponse{
		Message: "user registered",
		User:    toUserResponse(user),
	})
}

// handleLogin handles POST /api/auth/login requests.
// Unknown username and wrong password produce the same 401, and the unknown
// path burns a dummy bcrypt compare so the timing matches too.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Username == "" || req.Password == "" {
		s.sendJSONError(w, http.StatusBadRequest, "username and password required")
		return
	}

	user, err := s.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			auth.DummyCompare(req.Password)
			s.sendJSONError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		s.logger.Error("failed to get user", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "an error occurred")
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		s.sendJSONError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := s.tokens.Generate(user.ID, s.config.TokenTTL)
	if err != nil {
		s.logger.Error("failed to generate token", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "an error occurred")
		return
	}

	s.logger.Info("login successful", "username", user.Username)
	s.writeJSON(w, http.StatusOK, loginResponse{
		Message: "login successful",
		Token:   token,
		User:    toUserResponse(user),
	})
}

// handleLogout handles POST /api/auth/logout requests.
// The presented token enters the revocation set; the auth middleware rejects
// it from then on even though its signature still verifies. A missing or
// malformed header is the only failure mode.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, errMsg := auth.ExtractBearerToken(r.Header.Get("Authorization"))
	if errMsg != "" {
		s.sendJSONError(w, http.StatusBadRequest, errMsg)
		return
	}

	s.revoked.Add(token, s.tokens.ExpiresAt(token))

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "logout successful"})
}
