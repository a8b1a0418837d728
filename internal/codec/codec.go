// Package codec is the sole gateway between the task collection and durable
// storage. It wraps the collection into a versioned document and validates
// the full document shape on the way back in; a document that fails any
// check is rejected wholesale so the collection can never be hydrated from
// partially valid data.
package codec

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/todolite/core/internal/domain/entities"
)

// Document is the persisted representation of the task collection. Every
// mutation rewrites the whole document; there is no delta persistence.
type Document struct {
	Version string       `json:"version" validate:"required"`
	Tasks   []TaskRecord `json:"tasks" validate:"dive"`
}

// TaskRecord is the serialized form of a task. CreatedAt is carried as an
// RFC 3339 string and reconstructed into a timestamp on decode.
type TaskRecord struct {
	ID          string `json:"id" validate:"required"`
	Description string `json:"description" validate:"required"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt" validate:"required"`
}

// FormatError reports a storage document that failed schema validation.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid storage document: %s: %v", e.Reason, e.Err)
	}
	return "invalid storage document: " + e.Reason
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Codec serializes and deserializes the versioned storage document. The
// accepted version string is opaque and round-trips unchanged.
type Codec struct {
	version   string
	maxLength int
	validate  *validator.Validate
}

// New creates a codec that writes and accepts the given document version and
// enforces the configured maximum description length on decode.
func New(version string, maxDescriptionLength int) *Codec {
	return &Codec{
		version:   version,
		maxLength: maxDescriptionLength,
		validate:  validator.New(),
	}
}

// Version returns the document version the codec writes and accepts.
func (c *Codec) Version() string {
	return c.version
}

// Serialize wraps the collection into a storage document. Deterministic:
// the same collection always yields the same document.
func (c *Codec) Serialize(tasks []entities.Task) Document {
	records := make([]TaskRecord, len(tasks))
	for i, t := range tasks {
		records[i] = TaskRecord{
			ID:          t.ID,
			Description: t.Description,
			Completed:   t.Completed,
			CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339Nano),
		}
	}
	return Document{Version: c.version, Tasks: records}
}

// Encode serializes the collection and marshals the document to JSON.
func (c *Codec) Encode(tasks []entities.Task) ([]byte, error) {
	raw, err := json.Marshal(c.Serialize(tasks))
	if err != nil {
		return nil, fmt.Errorf("marshal storage document: %w", err)
	}
	return raw, nil
}

// Decode parses and schema-validates a raw storage document, reconstructing
// the task collection in document order. Any failure yields a *FormatError
// and no tasks.
func (c *Codec) Decode(raw []byte) ([]entities.Task, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &FormatError{Reason: "malformed JSON", Err: err}
	}

	if err := c.validate.Struct(doc); err != nil {
		return nil, &FormatError{Reason: "schema validation failed", Err: err}
	}
	if doc.Version != c.version {
		return nil, &FormatError{Reason: fmt.Sprintf("unrecognized version %q", doc.Version)}
	}
	if doc.Tasks == nil {
		return nil, &FormatError{Reason: "tasks field is missing"}
	}

	tasks := make([]entities.Task, len(doc.Tasks))
	seen := make(map[string]struct{}, len(doc.Tasks))
	for i, rec := range doc.Tasks {
		if _, dup := seen[rec.ID]; dup {
			return nil, &FormatError{Reason: fmt.Sprintf("duplicate task id %q", rec.ID)}
		}
		seen[rec.ID] = struct{}{}

		// Descriptions are stored trimmed and non-empty; anything else is
		// a document no code path here could have written.
		if strings.TrimSpace(rec.Description) == "" {
			return nil, &FormatError{Reason: fmt.Sprintf("task %q: description is empty", rec.ID)}
		}
		if strings.TrimSpace(rec.Description) != rec.Description {
			return nil, &FormatError{Reason: fmt.Sprintf("task %q: description has surrounding whitespace", rec.ID)}
		}
		if utf8.RuneCountInString(rec.Description) > c.maxLength {
			return nil, &FormatError{Reason: fmt.Sprintf("task %q: description exceeds %d characters", rec.ID, c.maxLength)}
		}

		createdAt, err := time.Parse(time.RFC3339Nano, rec.CreatedAt)
		if err != nil {
			return nil, &FormatError{Reason: fmt.Sprintf("task %q: invalid createdAt timestamp", rec.ID), Err: err}
		}

		tasks[i] = entities.Task{
			ID:          rec.ID,
			Description: rec.Description,
			Completed:   rec.Completed,
			CreatedAt:   createdAt.UTC(),
		}
	}

	return tasks, nil
}
