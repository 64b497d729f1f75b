// ABOUTME: Store interface and data types for task-manager persistence
// ABOUTME: Defines User, Task structs and the Store interface for database operations

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist.
// Owner-scoped task lookups return it both for absent tasks and for tasks
// owned by someone else; callers must not distinguish the two.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when trying to create a user with an existing username.
var ErrUsernameExists = errors.New("username already exists")

// User represents a registered account.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash; never serialized to clients
	CreatedAt    time.Time
}

// Task represents a single task owned by exactly one user.
type Task struct {
	ID        string
	UserID    string
	Title     string
	DueDate   *time.Time
	Completed bool
	CreatedAt time.Time
}

// TaskUpdate describes a partial update to a task. Nil fields are left unchanged.
type TaskUpdate struct {
	Title     *string
	DueDate   *time.Time
	ClearDue  bool // set due_date to NULL; takes precedence over DueDate
	Completed *bool
}

// Store defines the persistence operations used by the API layer.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CountUsers(ctx context.Context) (int, error)

	// Tasks (all lookups owner-scoped)
	CreateTask(ctx context.Context, task *Task) error
	ListTasks(ctx context.Context, userID string) ([]*Task, error)
	GetTask(ctx context.Context, id, userID string) (*Task, error)
	UpdateTask(ctx context.Context, id, userID string, update TaskUpdate) (*Task, error)
	DeleteTask(ctx context.Context, id, userID string) error

	Close() error
}
