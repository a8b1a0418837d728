package commands

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/todolite/core/internal/adapters/repository"
	"github.com/todolite/core/internal/adapters/storage"
	"github.com/todolite/core/internal/application/services"
	"github.com/todolite/core/internal/codec"
	"github.com/todolite/core/internal/domain/entities"
	"github.com/todolite/core/internal/domain/validation"
	"github.com/todolite/core/internal/infrastructure/config"
	"github.com/todolite/core/internal/infrastructure/logger"
	"github.com/todolite/core/internal/ports"
)

// NewAddCommand creates the add command
func NewAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <description>",
		Short: "Add a new task",
		Long:  "Add a new task with the given description. Multiple arguments are joined with spaces.",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			withService(func(ctx context.Context, svc *services.TaskService) {
				task, warnings, err := svc.Create(ctx, strings.Join(args, " "))
				for _, w := range warnings {
					fmt.Printf("warning: %s\n", w)
				}
				if err != nil {
					log.Fatalf("Failed to add task: %v", err)
				}
				fmt.Printf("Added task %s: %s\n", shortID(task.ID), task.Description)
			})
		},
	}
}

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tasks in creation order",
		Run: func(cmd *cobra.Command, args []string) {
			withService(func(ctx context.Context, svc *services.TaskService) {
				tasks := svc.List()
				if len(tasks) == 0 {
					fmt.Println("No tasks.")
					return
				}
				for _, t := range tasks {
					mark := " "
					if t.Completed {
						mark = "x"
					}
					fmt.Printf("[%s] %s  %s  (%s)\n", mark, shortID(t.ID), t.Description, t.CreatedAt.Local().Format(time.DateTime))
				}
			})
		},
	}
}

// NewToggleCommand creates the toggle command
func NewToggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Toggle a task between active and completed",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			withService(func(ctx context.Context, svc *services.TaskService) {
				id, err := resolveID(svc, args[0])
				if err != nil {
					log.Fatalf("Failed to toggle task: %v", err)
				}
				task, err := svc.Toggle(ctx, id)
				if err != nil {
					log.Fatalf("Failed to toggle task: %v", err)
				}
				state := "active"
				if task.Completed {
					state = "completed"
				}
				fmt.Printf("Task %s is now %s\n", shortID(task.ID), state)
			})
		},
	}
}

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			withService(func(ctx context.Context, svc *services.TaskService) {
				id, err := resolveID(svc, args[0])
				if err != nil {
					log.Fatalf("Failed to delete task: %v", err)
				}
				if err := svc.Delete(ctx, id); err != nil {
					log.Fatalf("Failed to delete task: %v", err)
				}
				fmt.Printf("Deleted task %s\n", shortID(id))
			})
		},
	}
}

// NewClearCommand creates the clear command
func NewClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all tasks and clear storage",
		Run: func(cmd *cobra.Command, args []string) {
			withService(func(ctx context.Context, svc *services.TaskService) {
				if err := svc.Reset(ctx); err != nil {
					log.Fatalf("Failed to clear tasks: %v", err)
				}
				fmt.Println("All tasks cleared.")
			})
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print todolite version",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			fmt.Printf("%s v%s\n", cfg.App.Name, cfg.App.Version)
		},
	}
}

// withService wires the full stack from configuration, restores the
// collection from storage and hands the service to the command body.
func withService(run func(ctx context.Context, svc *services.TaskService)) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	st, closeStorage, err := openStorage(cfg.Storage)
	if err != nil {
		appLogger.Fatalw("Failed to open storage", "driver", cfg.Storage.Driver, "error", err)
	}
	defer closeStorage()

	v := validation.NewValidator(cfg.Task.MaxDescriptionLength, cfg.Task.DescriptionWarnLength)
	repo := repository.NewTaskRepository(v)
	cdc := codec.New(cfg.Storage.DocumentVersion, cfg.Task.MaxDescriptionLength)
	svc := services.NewTaskService(repo, cdc, st, appLogger.WithComponent("task_service"))

	ctx := context.Background()
	if err := svc.Restore(ctx); err != nil {
		appLogger.Fatalw("Failed to restore tasks from storage", "error", err)
	}

	run(ctx, svc)
}

func openStorage(cfg config.StorageConfig) (ports.Storage, func(), error) {
	switch cfg.Driver {
	case "file":
		return storage.NewFileStorage(cfg.Path), func() {}, nil
	case "sqlite":
		s, err := storage.NewSQLiteStorage(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "memory":
		return storage.NewMemoryStorage(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// resolveID accepts a full task id or a unique id prefix.
func resolveID(svc *services.TaskService, arg string) (string, error) {
	if _, ok := svc.Find(arg); ok {
		return arg, nil
	}

	var match string
	for _, t := range svc.List() {
		if strings.HasPrefix(t.ID, arg) {
			if match != "" {
				return "", fmt.Errorf("id prefix %q is ambiguous", arg)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", entities.ErrTaskNotFound
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
