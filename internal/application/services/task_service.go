package services

import (
	"context"
	"fmt"

	"github.com/todolite/core/internal/codec"
	"github.com/todolite/core/internal/domain/entities"
	"github.com/todolite/core/internal/infrastructure/logger"
	"github.com/todolite/core/internal/ports"
)

// TaskService orchestrates user intents against the task collection. Every
// successful mutation is followed by a whole-document write before the
// intent is reported done, so the persisted document always mirrors the
// in-memory collection.
type TaskService struct {
	repo    ports.TaskRepository
	codec   *codec.Codec
	storage ports.Storage
	logger  *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(repo ports.TaskRepository, cdc *codec.Codec, storage ports.Storage, logger *logger.Logger) *TaskService {
	return &TaskService{
		repo:    repo,
		codec:   cdc,
		storage: storage,
		logger:  logger,
	}
}

// Create validates and stores a new task built from description, then
// persists the collection. On validation failure nothing is stored and
// storage is not touched; the returned warnings are informational either way.
func (s *TaskService) Create(ctx context.Context, description string) (*entities.Task, []string, error) {
	task, warnings, err := s.repo.Create(description)
	if err != nil {
		return nil, warnings, err
	}

	if err := s.persist(ctx); err != nil {
		return nil, warnings, err
	}

	s.logger.Infow("task created", "task_id", task.ID)
	return task, warnings, nil
}

// Toggle flips the completion flag of the task with the given id and
// persists the collection. An unknown id is reported and logged; storage is
// not touched.
func (s *TaskService) Toggle(ctx context.Context, id string) (*entities.Task, error) {
	task, err := s.repo.ToggleByID(id)
	if err != nil {
		s.logger.Errorw("task toggle failed", "task_id", id, "error", err)
		return nil, err
	}

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	s.logger.Infow("task toggled", "task_id", task.ID, "completed", task.Completed)
	return task, nil
}

// Delete removes the task with the given id and persists the collection.
// An unknown id is reported and logged; the collection and storage are left
// unchanged.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(id); err != nil {
		s.logger.Errorw("task delete failed", "task_id", id, "error", err)
		return err
	}

	if err := s.persist(ctx); err != nil {
		return err
	}

	s.logger.Infow("task deleted", "task_id", id)
	return nil
}

// List returns the collection snapshot in creation order.
func (s *TaskService) List() []entities.Task {
	return s.repo.List()
}

// Find is a read-only point lookup.
func (s *TaskService) Find(id string) (*entities.Task, bool) {
	return s.repo.FindByID(id)
}

// Restore hydrates the collection from the storage document, simulating
// application start. An absent document yields an empty collection; a
// malformed one is rejected wholesale and the in-memory collection keeps its
// previous contents.
func (s *TaskService) Restore(ctx context.Context) error {
	raw, err := s.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("load storage document: %w", err)
	}

	if len(raw) == 0 {
		s.repo.ReplaceAll(nil)
		return nil
	}

	tasks, err := s.codec.Decode(raw)
	if err != nil {
		s.logger.Errorw("storage document rejected", "error", err)
		return err
	}

	s.repo.ReplaceAll(tasks)
	return nil
}

// Reset empties the collection and clears the backing storage.
func (s *TaskService) Reset(ctx context.Context) error {
	s.repo.ReplaceAll(nil)
	if err := s.storage.Clear(ctx); err != nil {
		return fmt.Errorf("clear storage: %w", err)
	}
	return nil
}

func (s *TaskService) persist(ctx context.Context) error {
	raw, err := s.codec.Encode(s.repo.List())
	if err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	if err := s.storage.Save(ctx, raw); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}
