package ports

import (
	"context"

	"github.com/todolite/core/internal/domain/entities"
)

// TaskService defines the application facade handling user intents. Each
// mutating intent is a single atomic sequence: validate, mutate the
// collection, persist the whole document, report the outcome. A failed
// validation or an unknown id never reaches storage.
type TaskService interface {
	Create(ctx context.Context, description string) (*entities.Task, []string, error)
	Toggle(ctx context.Context, id string) (*entities.Task, error)
	Delete(ctx context.Context, id string) error
	List() []entities.Task
	Find(id string) (*entities.Task, bool)

	// Restore hydrates the collection from storage, simulating application
	// start. A malformed document is rejected wholesale: the in-memory
	// collection keeps its previous contents.
	Restore(ctx context.Context) error

	// Reset empties both the collection and the backing storage.
	Reset(ctx context.Context) error
}
