package store

import (
	"context"
	"errors"
)

// Entity type segments used in storage keys.
const (
	EntityQuestions   = "questions"
	EntityExams       = "exams"
	EntitySubmissions = "submissions"
	EntitySeries      = "series"
	EntityClasses     = "classes"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is a per-owner key-value collection abstraction. Implementations own
// the key scheme (<entityType>:<owner>:<id>); callers never see raw keys.
type Store interface {
	Get(ctx context.Context, owner, entityType, id string) ([]byte, error)
	Put(ctx context.Context, owner, entityType, id string, value []byte) error
	Delete(ctx context.Context, owner, entityType, id string) error
	List(ctx context.Context, owner, entityType string) ([][]byte, error)
}
