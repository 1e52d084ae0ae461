package domain

import (
	"errors"
	"strings"
	"time"
)

// Base carries the storage identity and audit timestamps shared by every cinema entity.
type Base struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stamp sets both timestamps for a record that has not been persisted yet.
func (b *Base) Stamp(now time.Time) {
	now = now.UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
}

// Touch refreshes UpdatedAt. The new value is always strictly after the previous one,
// even when the clock has not advanced past the stored precision.
func (b *Base) Touch(now time.Time) {
	now = now.UTC()
	if !now.After(b.UpdatedAt) {
		now = b.UpdatedAt.Add(time.Microsecond)
	}
	b.UpdatedAt = now
}

// ErrInvalidReference is returned when a required foreign key is not set.
var ErrInvalidReference = errors.New("reference id must be positive")

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}
