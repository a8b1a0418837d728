// Package harness drives the task core through the same primitives a
// behavior-driven test runner would use, without any rendering layer. A
// World is one scenario's mutable context; it is constructed and reset
// explicitly, never shared globally.
package harness

import (
	"context"
	"fmt"

	"github.com/todolite/core/internal/adapters/repository"
	"github.com/todolite/core/internal/adapters/storage"
	"github.com/todolite/core/internal/application/services"
	"github.com/todolite/core/internal/codec"
	"github.com/todolite/core/internal/domain/entities"
	"github.com/todolite/core/internal/domain/validation"
	"github.com/todolite/core/internal/infrastructure/logger"
	"github.com/todolite/core/internal/ports"
)

// World holds one scenario's state: the task collection, an in-memory
// storage double, the codec and facade wired over them, plus the outcome of
// the last intent for Then-style assertions.
type World struct {
	Repo    ports.TaskRepository
	Storage *storage.MemoryStorage
	Codec   *codec.Codec
	Service ports.TaskService

	LastTask     *entities.Task
	LastWarnings []string
	LastErr      error
}

// NewWorld wires a fresh world with default limits and a discarding logger.
func NewWorld() *World {
	return NewWorldWithLimits(validation.DefaultMaxLength, validation.DefaultWarnLength)
}

// NewWorldWithLimits wires a fresh world with explicit description limits.
func NewWorldWithLimits(maxLength, warnLength int) *World {
	v := validation.NewValidator(maxLength, warnLength)
	repo := repository.NewTaskRepository(v)
	mem := storage.NewMemoryStorage()
	cdc := codec.New("1.0", maxLength)

	return &World{
		Repo:    repo,
		Storage: mem,
		Codec:   cdc,
		Service: services.NewTaskService(repo, cdc, mem, logger.NewNop()),
	}
}

// ResetContext clears the collection, the storage double and the recorded
// outcome, returning the world to a blank scenario state.
func (w *World) ResetContext(ctx context.Context) error {
	w.LastTask = nil
	w.LastWarnings = nil
	w.LastErr = nil
	return w.Service.Reset(ctx)
}

// AddTask creates a task directly in the collection, bypassing the facade's
// intent wrapper. Intended for Given-step scenario setup.
func (w *World) AddTask(description string) (*entities.Task, error) {
	task, _, err := w.Repo.Create(description)
	return task, err
}

// FindTaskByDescription scans the collection for the first task with the
// given description.
func (w *World) FindTaskByDescription(description string) (*entities.Task, bool) {
	for _, t := range w.Repo.List() {
		if t.Description == description {
			task := t
			return &task, true
		}
	}
	return nil, false
}

// FindTaskByID is a point lookup against the collection.
func (w *World) FindTaskByID(id string) (*entities.Task, bool) {
	return w.Repo.FindByID(id)
}

// SimulateStorageRestore writes the given tasks through the codec and reads
// them back, emulating a process restart over a populated store.
func (w *World) SimulateStorageRestore(ctx context.Context, tasks []entities.Task) error {
	raw, err := w.Codec.Encode(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := w.Storage.Save(ctx, raw); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return w.Service.Restore(ctx)
}

// PersistedTasks decodes the current storage document, failing when the
// document is absent or malformed. Used by Then-steps asserting persistence
// immediacy.
func (w *World) PersistedTasks(ctx context.Context) ([]entities.Task, error) {
	raw, err := w.Storage.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no storage document present")
	}
	return w.Codec.Decode(raw)
}

// SubmitDescription runs the create intent and records its outcome.
func (w *World) SubmitDescription(ctx context.Context, text string) {
	w.LastTask, w.LastWarnings, w.LastErr = w.Service.Create(ctx, text)
}

// ToggleTask runs the toggle intent and records its outcome.
func (w *World) ToggleTask(ctx context.Context, id string) {
	w.LastTask, w.LastErr = w.Service.Toggle(ctx, id)
}

// DeleteTask runs the delete intent and records its outcome.
func (w *World) DeleteTask(ctx context.Context, id string) {
	w.LastTask = nil
	w.LastErr = w.Service.Delete(ctx, id)
}
