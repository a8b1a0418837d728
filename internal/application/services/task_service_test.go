package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/todolite/core/internal/adapters/repository"
	"github.com/todolite/core/internal/adapters/storage"
	"github.com/todolite/core/internal/codec"
	"github.com/todolite/core/internal/domain/entities"
	"github.com/todolite/core/internal/domain/validation"
	"github.com/todolite/core/internal/infrastructure/logger"
)

type fixture struct {
	svc     *TaskService
	storage *storage.MemoryStorage
	codec   *codec.Codec
	logs    *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	repo := repository.NewTaskRepository(validation.NewValidator(500, 400))
	mem := storage.NewMemoryStorage()
	cdc := codec.New("1.0", 500)

	return &fixture{
		svc:     NewTaskService(repo, cdc, mem, logger.FromZap(zap.New(core))),
		storage: mem,
		codec:   cdc,
		logs:    logs,
	}
}

// persisted decodes the current storage document.
func (f *fixture) persisted(t *testing.T) []entities.Task {
	t.Helper()
	raw, err := f.storage.Load(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, raw, "expected a storage document")
	tasks, err := f.codec.Decode(raw)
	require.NoError(t, err)
	return tasks
}

func assertSameCollection(t *testing.T, want, got []entities.Task) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Description, got[i].Description)
		assert.Equal(t, want[i].Completed, got[i].Completed)
		assert.True(t, got[i].CreatedAt.Equal(want[i].CreatedAt))
	}
}

func TestCreate_PersistsImmediately(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	task, warnings, err := f.svc.Create(ctx, "Buy groceries")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "Buy groceries", task.Description)

	assertSameCollection(t, f.svc.List(), f.persisted(t))
}

func TestCreate_WarningsDoNotBlock(t *testing.T) {
	f := newFixture(t)

	task, warnings, err := f.svc.Create(context.Background(), "  padded  ")
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "padded", task.Description)
}

func TestCreate_ValidationFailureTouchesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	task, _, err := f.svc.Create(ctx, "   ")
	assert.Nil(t, task)

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)

	assert.Empty(t, f.svc.List())
	raw, loadErr := f.storage.Load(ctx)
	require.NoError(t, loadErr)
	assert.Nil(t, raw, "validation failure must not write storage")
}

func TestToggle_PersistsImmediately(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	task, _, err := f.svc.Create(ctx, "Buy groceries")
	require.NoError(t, err)

	toggled, err := f.svc.Toggle(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	assertSameCollection(t, f.svc.List(), f.persisted(t))

	back, err := f.svc.Toggle(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, *task, *back)
	assertSameCollection(t, f.svc.List(), f.persisted(t))
}

func TestDelete_PersistsImmediately(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, _, err := f.svc.Create(ctx, "A")
	require.NoError(t, err)
	_, _, err = f.svc.Create(ctx, "B")
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, a.ID))

	persisted := f.persisted(t)
	require.Len(t, persisted, 1)
	assert.Equal(t, "B", persisted[0].Description)
	assertSameCollection(t, f.svc.List(), persisted)
}

func TestToggle_NotFoundIsLoggedAndNotPersisted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.Create(ctx, "keep")
	require.NoError(t, err)
	before := f.persisted(t)
	f.logs.TakeAll()

	task, err := f.svc.Toggle(ctx, "missing")
	assert.Nil(t, task)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)

	errorLogs := f.logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errorLogs, 1)
	assert.Equal(t, "task toggle failed", errorLogs[0].Message)

	assertSameCollection(t, before, f.persisted(t))
	require.Len(t, f.svc.List(), 1)
}

func TestDelete_NotFoundIsLoggedAndNotPersisted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.Create(ctx, "keep")
	require.NoError(t, err)
	before := f.persisted(t)
	f.logs.TakeAll()

	err = f.svc.Delete(ctx, "missing")
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)

	errorLogs := f.logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errorLogs, 1)
	assert.Equal(t, "task delete failed", errorLogs[0].Message)

	assertSameCollection(t, before, f.persisted(t))
	require.Len(t, f.svc.List(), 1)
}

func TestRestore_EmptyStorageYieldsEmptyCollection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.Create(ctx, "stale")
	require.NoError(t, err)
	require.NoError(t, f.storage.Clear(ctx))

	require.NoError(t, f.svc.Restore(ctx))
	assert.Empty(t, f.svc.List())
}

func TestRestore_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, _, err := f.svc.Create(ctx, "A")
	require.NoError(t, err)
	b, _, err := f.svc.Create(ctx, "B")
	require.NoError(t, err)
	_, err = f.svc.Toggle(ctx, b.ID)
	require.NoError(t, err)

	before := f.svc.List()

	// drop in-memory state, then hydrate from the document
	require.NoError(t, f.svc.Restore(ctx))
	assertSameCollection(t, before, f.svc.List())

	restored, ok := f.svc.Find(a.ID)
	require.True(t, ok)
	assert.True(t, restored.CreatedAt.Equal(a.CreatedAt))
}

func TestRestore_CorruptDocumentLeavesStateIntact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.Create(ctx, "survivor")
	require.NoError(t, err)
	before := f.svc.List()
	f.logs.TakeAll()

	require.NoError(t, f.storage.Save(ctx, []byte(`{"version":"9.9","tasks":[]}`)))

	err = f.svc.Restore(ctx)
	var ferr *codec.FormatError
	require.ErrorAs(t, err, &ferr)

	assert.Equal(t, before, f.svc.List(), "rejected document must not change in-memory state")
	require.Len(t, f.logs.FilterLevelExact(zapcore.ErrorLevel).All(), 1)
}

func TestReset_ClearsCollectionAndStorage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.Create(ctx, "A")
	require.NoError(t, err)

	require.NoError(t, f.svc.Reset(ctx))
	assert.Empty(t, f.svc.List())

	raw, err := f.storage.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, raw)
}
