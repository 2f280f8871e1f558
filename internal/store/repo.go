package store

import (
	"context"
	"errors"

	"github.com/monstermash2008/time-range/internal/domain"
)

// ErrNotFound is returned by Get when a chat has no stored hours.
var ErrNotFound = errors.New("work hours not found")

// Repo defines storage operations for per-chat work hours.
type Repo interface {
	Get(ctx context.Context, chatID int64) (*domain.WorkHours, error)
	Upsert(ctx context.Context, wh *domain.WorkHours) error
	Delete(ctx context.Context, chatID int64) error
	Close() error
}
