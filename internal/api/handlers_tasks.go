// ABOUTME: HTTP handlers for task CRUD, all scoped to the authenticated owner
// ABOUTME: Absent and not-owned tasks get the same 403 to prevent id enumeration

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/laksh-krishna-sharma/AI-Task-Manager/internal/auth"
	"github.com/laksh-krishna-sharma/AI-Task-Manager/internal/store"
)

const maxTitleLength = 500

// taskResponse is the JSON representation of a task.
type taskResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Title     string  `json:"title"`
	DueDate   *string `json:"due_date"`
	Completed bool    `json:"completed"`
	CreatedAt string  `json:"created_at"`
}

// createTaskRequest is the JSON request body for POST /api/tasks.
// Any client-supplied owner field is ignored; the owner comes from the token.
type createTaskRequest struct {
	Title     string  `json:"title"`
	DueDate   *string `json:"due_date"`
	Completed bool    `json:"completed"`
}

// updateTaskRequest is the JSON request body for PATCH /api/tasks/{id}.
// Absent fields are left unchanged; an explicit null due_date clears it.
type updateTaskRequest struct {
	Title     *string      `json:"title"`
	DueDate   optionalDate `json:"due_date"`
	Completed *bool        `json:"completed"`
}

// optionalDate distinguishes an absent JSON field from an explicit null.
type optionalDate struct {
	Set   bool
	Value *string
}

func (o *optionalDate) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func toTaskResponse(t *store.Task) taskResponse {
	resp := taskResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		Title:     t.Title,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
	}
	if t.DueDate != nil {
		due := t.DueDate.UTC().Format(time.RFC3339)
		resp.DueDate = &due
	}
	return resp
}

func parseDueDate(raw string) (*time.Time, error) {
	due, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("due_date must be RFC3339")
	}
	return &due, nil
}

// handleListTasks handles GET /api/tasks requests.
// Returns the caller's tasks, newest first, as a JSON array (never null).
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	userID := auth.MustUserFromContext(r.Context())

	tasks, err := s.store.ListTasks(r.Context(), userID)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "an error occurred")
		return
	}

	response := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		response = append(response, toTaskResponse(t))
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleCreateTask handles POST /api/tasks requests.
// The owner is stamped from the authenticated identity.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	userID := auth.MustUserFromContext(r.Context())

	var req createTaskRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		s.sendJSONError(w, http.StatusBadRequest, "title is required")
		return
	}
	if len(req.Title) > maxTitleLength {
		s.sendJSONError(w, http.StatusBadRequest, "title too long")
		return
	}

	task := &store.Task{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     req.Title,
		Completed: req.Completed,
		CreatedAt: time.Now().UTC(),
	}

	if req.DueDate != nil && *req.DueDate != "" {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			s.sendJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		task.DueDate = due
	}

	if err := s.store.CreateTask(r.Context(), task); err != nil {
		s.logger.Error("failed to create task", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "an error occurred")
		return
	}

	s.writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

// handleUpdateTask handles PATCH /api/tasks/{id} requests.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	userID := auth.MustUserFromContext(r.Context())
	taskID := r.PathValue("id")

	var req updateTaskRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var update store.TaskUpdate

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			s.sendJSONError(w, http.StatusBadRequest, "title cannot be empty")
			return
		}
		if len(title) > maxTitleLength {
			s.sendJSONError(w, http.StatusBadRequest, "title too long")
			return
		}
		update.Title = &title
	}

	if req.DueDate.Set {
		if req.DueDate.Value == nil || *req.DueDate.Value == "" {
			update.ClearDue = true
		} else {
			due, err := parseDueDate(*req.DueDate.Value)
			if err != nil {
				s.sendJSONError(w, http.StatusBadRequest, err.Error())
				return
			}
			update.DueDate = due
		}
	}

	update.Completed = req.Completed

	task, err := s.store.UpdateTask(r.Context(), taskID, userID, update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.sendJSONError(w, http.StatusForbidden, "forbidden")
			return
		}
		s.logger.Error("failed to update task", "error", err, "task_id", taskID)
		s.sendJSONError(w, http.StatusInternalServerError, "an error occurred")
		return
	}

	s.writeJSON(w, http.StatusOK, toTaskResponse(task))
}

// handleDeleteTask handles DELETE /api/tasks/{id} requests.
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	userID := auth.MustUserFromContext(r.Context())
	taskID := r.PathValue("id")

	if err := s.store.DeleteTask(r.Context(), taskID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.sendJSONError(w, http.StatusForbidden, "forbidden")
			return
		}
		s.logger.Error("failed to delete task", "error", err, "task_id", taskID)
		s.sendJSONError(w, http.StatusInternalServerError, "an error occurred")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
