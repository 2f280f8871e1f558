package domain

import "time"

// WorkHours is the range a chat has configured.
type WorkHours struct {
	ChatID    int64
	Range     Range
	CreatedAt time.Time // UTC
	UpdatedAt time.Time // UTC
}

// DefaultRange is what a new chat starts with: 9:00am to 5:00pm.
func DefaultRange() Range {
	return NewRange(Time{Hour: 9}, Time{Hour: 17})
}
