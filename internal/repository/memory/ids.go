package memory

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.New().String()
}

func (s *Store) stamp(created *time.Time, updated *time.Time) {
	now := s.clock.Now().UTC()
	if created.IsZero() {
		*created = now
	}
	if updated.IsZero() {
		*updated = now
	}
}

func indexByID[T any](items []T, id string, idOf func(T) string) int {
	return slices.IndexFunc(items, func(item T) bool { return idOf(item) == id })
}

var errDuplicateID = errors.New("duplicate id")
