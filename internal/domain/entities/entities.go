package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrTaskNotFound = errors.New("task not found")
)

// Task represents a single to-do item. ID and CreatedAt are assigned at
// creation and never change; Description is immutable after creation;
// Completed is mutated only through Toggle.
type Task struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTask builds a task from an already validated, trimmed description.
// The caller is responsible for validation; NewTask does not re-check the
// input and does not insert the task anywhere.
func NewTask(description string) Task {
	return Task{
		ID:          uuid.NewString(),
		Description: description,
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
	}
}

// Toggle flips the completion flag. Active and completed are symmetric
// states; there is no terminal state other than deletion.
func (t *Task) Toggle() {
	t.Completed = !t.Completed
}

// IsActive reports whether the task is still open.
func (t *Task) IsActive() bool {
	return !t.Completed
}
