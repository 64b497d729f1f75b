// Package store provides persistent storage for the task manager using SQLite.
//
// # Architecture
//
// The Store interface covers user and task persistence; SQLiteStore is the
// single implementation, backed by modernc.org/sqlite (pure Go, no cgo).
//
// # Data Models
//
//   - User: Account with a unique username and a bcrypt password hash.
//     The hash never leaves the store/auth boundary.
//   - Task: A single task bound to exactly one owning user via UserID.
//
// # Ownership Scoping
//
// Every task read and mutation takes both the task id and the owner's user
// id, and the SQL predicates on both ("WHERE id = ? AND user_id = ?").
// A task that does not exist and a task owned by another user produce the
// same ErrNotFound; callers deliberately cannot tell the two apart.
//
// List and create are scoped differently: lists filter by owner, creates
// stamp the owner from the authenticated identity.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// Timestamps are stored as RFC3339 text in UTC.
//
// # Error Handling
//
//   - ErrNotFound: entity absent (or, for tasks, not owned by the caller)
//   - ErrUsernameExists: UNIQUE constraint violation on users.username
//
// All methods accept context.Context for cancellation support.
package store
