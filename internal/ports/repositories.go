package ports

import (
	"context"

	"github.com/todolite/core/internal/domain/entities"
)

// TaskRepository defines the interface for the in-process task collection.
// The collection is insertion ordered: tasks appear in creation order, and a
// deletion removes exactly one element without reordering the survivors.
type TaskRepository interface {
	// Create validates the description, builds a task and appends it to the
	// end of the collection. On validation failure the collection is left
	// unchanged and the returned error carries the full error list. The
	// returned warnings are informational and may accompany a success.
	Create(description string) (*entities.Task, []string, error)

	// ToggleByID flips the completion flag of the task with the given id,
	// leaving every other field untouched. Returns entities.ErrTaskNotFound
	// (and changes nothing) when the id is unknown.
	ToggleByID(id string) (*entities.Task, error)

	// DeleteByID removes the task with the given id. Returns
	// entities.ErrTaskNotFound (and changes nothing) when the id is unknown.
	DeleteByID(id string) error

	// FindByID is a read-only point lookup.
	FindByID(id string) (*entities.Task, bool)

	// List returns a snapshot of the collection in creation order. Mutating
	// the returned slice does not affect internal state.
	List() []entities.Task

	// ReplaceAll swaps the entire collection, used only when hydrating from
	// storage. Descriptions are not re-validated: data that round-tripped
	// through the codec is assumed valid.
	ReplaceAll(tasks []entities.Task)

	// Len reports the current collection size.
	Len() int
}

// Storage defines the interface for the durable document store backing the
// task collection. Load returns nil bytes (and no error) when nothing has
// been saved yet.
type Storage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, raw []byte) error
	Clear(ctx context.Context) error
}
