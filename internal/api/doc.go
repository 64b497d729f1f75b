// Package api implements the REST interface for the task manager.
//
// # Routes
//
//	POST   /api/auth/register   create an account            (public)
//	POST   /api/auth/login      exchange credentials for JWT (public)
//	POST   /api/auth/logout     revoke the presented token   (public)
//	GET    /api/tasks           list own tasks               (bearer token)
//	POST   /api/tasks           create a task                (bearer token)
//	PATCH  /api/tasks/{id}      partial update               (bearer token)
//	DELETE /api/tasks/{id}      delete                       (bearer token)
//	GET    /health              liveness probe               (public)
//
// # Status Mapping
//
//   - 400 invalid input (schema/validation failures)
//   - 401 missing, invalid, expired, or revoked token — undifferentiated
//   - 403 authenticated but the task is absent or owned by someone else —
//     also undifferentiated, so task ids cannot be enumerated
//   - 409 duplicate username on register
//   - 500 store or signing failures; the client may retry, the server won't
//
// Error bodies are a terse {"error": "..."}.
//
// # Identity Flow
//
// Protected routes sit behind auth.Middleware, which resolves the user id
// from the bearer token and binds it into the request context. Handlers read
// it with auth.MustUserFromContext and scope every store call by it. Create
// stamps the owner from context and ignores any client-supplied owner field.
package api
