// ABOUTME: HTTP middleware enforcing bearer-token authentication on API endpoints
// ABOUTME: Verifies the JWT, consults the revocation set, and injects the user id into context

package auth

import (
	"net/http"
	"strings"
)

// ExtractBearerToken extracts a bearer token from the Authorization header.
// Returns the token and an error message (empty if successful).
func ExtractBearerToken(authHeader string) (string, string) {
	if authHeader == "" {
		return "", "missing authorization header"
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "invalid authorization header format"
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", "empty token"
	}
	return token, ""
}

// Middleware creates an HTTP middleware that authenticates each request
// independently. Missing header, failed verification, and revocation all
// produce the same 401; the client learns only that it must re-authenticate.
func Middleware(verifier TokenVerifier, revoked *RevocationSet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, errMsg := ExtractBearerToken(r.Header.Get("Authorization"))
			if errMsg != "" {
				unauthorized(w)
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				unauthorized(w)
				return
			}

			// A verified-but-revoked token is treated identically to an
			// invalid one from the caller's perspective.
			if revoked != nil && revoked.Contains(token) {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthenticated"}`))
}
