package store

import (
	"database/sql"
	"fmt"

	"github.com/monstermash2008/time-range/internal/domain"
)

// toNullMinutes stores an optional endpoint as minutes since midnight.
func toNullMinutes(t *domain.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(t.Minutes()), Valid: true}
}

func fromNullMinutes(ns sql.NullInt64) (*domain.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := domain.FromMinutes(int(ns.Int64))
	if err != nil {
		return nil, fmt.Errorf("stored minutes: %w", err)
	}
	return &t, nil
}
