package repository

import (
	"strings"
	"sync"

	"github.com/todolite/core/internal/domain/entities"
	"github.com/todolite/core/internal/domain/validation"
	"github.com/todolite/core/internal/ports"
)

// TaskRepositoryImpl is the in-memory, insertion-ordered task collection.
// A slice keeps creation order; ids are unique by construction (random
// 128-bit identifiers from the entity factory). The facade serializes
// intents, the mutex only guards against accidental concurrent callers.
type TaskRepositoryImpl struct {
	mu        sync.RWMutex
	tasks     []entities.Task
	validator *validation.Validator
}

// NewTaskRepository creates an empty task repository using the given
// description validator.
func NewTaskRepository(v *validation.Validator) ports.TaskRepository {
	return &TaskRepositoryImpl{validator: v}
}

func (r *TaskRepositoryImpl) Create(description string) (*entities.Task, []string, error) {
	res := r.validator.ValidateDescription(description)
	if !res.Valid {
		return nil, res.Warnings, res.Err()
	}

	task := entities.NewTask(strings.TrimSpace(description))

	r.mu.Lock()
	r.tasks = append(r.tasks, task)
	r.mu.Unlock()

	return &task, res.Warnings, nil
}

func (r *TaskRepositoryImpl) ToggleByID(id string) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks[i].Toggle()
			task := r.tasks[i]
			return &task, nil
		}
	}
	return nil, entities.ErrTaskNotFound
}

func (r *TaskRepositoryImpl) DeleteByID(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return entities.ErrTaskNotFound
}

func (r *TaskRepositoryImpl) FindByID(id string) (*entities.Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.tasks {
		if r.tasks[i].ID == id {
			task := r.tasks[i]
			return &task, true
		}
	}
	return nil, false
}

func (r *TaskRepositoryImpl) List() []entities.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

func (r *TaskRepositoryImpl) ReplaceAll(tasks []entities.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = make([]entities.Task, len(tasks))
	copy(r.tasks, tasks)
}

func (r *TaskRepositoryImpl) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tasks)
}
