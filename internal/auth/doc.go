// Package auth provides authentication for the task-manager API.
//
// # Tokens
//
// Clients authenticate with stateless HS256-signed JWTs carrying the user id
// in the "sub" claim plus "iat"/"exp". Verification is pure CPU work — no
// store lookup per request — which is what makes the middleware cheap. The
// trade-off is that an issued token stays cryptographically valid until
// expiry, so explicit logout needs the RevocationSet.
//
// All verification failures (bad signature, malformed payload, wrong
// algorithm, expiry) collapse into ErrInvalidToken. Distinguishing them in
// responses would hand attackers an oracle.
//
// # Passwords
//
// Passwords are hashed with bcrypt (adaptive cost, per-call salt). The
// deliberate slowness is a brute-force defense, not a performance bug.
// Login handlers run DummyCompare for unknown usernames so that response
// timing does not reveal which accounts exist.
//
// # Revocation
//
// RevocationSet is a mutex-guarded in-memory set of logged-out tokens,
// injected into the middleware. Entries are retained only until the token's
// own expiry and then pruned by a janitor goroutine. The set is
// process-local; multi-instance deployments would need a shared keyed store
// with per-entry expiry instead.
//
// # Request Flow
//
// Middleware extracts the bearer token, verifies it, checks revocation, and
// binds the user id into the request context via WithUser. Handlers read it
// back with UserFromContext. Every request is authenticated independently;
// there is no retry or session affinity.
package auth
