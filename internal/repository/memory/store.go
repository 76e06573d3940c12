// Package memory keeps all state in one process-wide store with a single
// writer. Multi-entity operations run against a staged copy that replaces the
// live state only when they succeed. Committed collections are mirrored to an
// optional durable backend.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/bistrohq/staff-backend-go/internal/domain/attendance"
	"github.com/bistrohq/staff-backend-go/internal/domain/bonus"
	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/domain/leave"
	"github.com/bistrohq/staff-backend-go/internal/domain/note"
	"github.com/bistrohq/staff-backend-go/internal/domain/notification"
	"github.com/bistrohq/staff-backend-go/internal/domain/payroll"
	"github.com/bistrohq/staff-backend-go/internal/domain/shift"
	"github.com/bistrohq/staff-backend-go/internal/pkg/clock"
)

// Collection keys double as the mirror's entry names.
const (
	KeyEmployees     = "employees"
	KeyShifts        = "shifts"
	KeyAttendance    = "attendance"
	KeyLeaveRequests = "leaveRequests"
	KeyNotifications = "notifications"
	KeyNotes         = "notes"
	KeyPayroll       = "payroll"
	KeyBonusAwards   = "bonusAwards"
)

// Mirror persists serialized collections. Save receives only the collections
// changed by one commit.
type Mirror interface {
	Load(ctx context.Context) (map[string][]byte, error)
	Save(ctx context.Context, entries map[string][]byte) error
}

type state struct {
	employees     []employee.Employee
	shifts        []shift.Shift
	attendance    []attendance.Record
	leaves        []leave.LeaveRequest
	notifications []notification.Notification
	notes         []note.Note
	payroll       []payroll.PayrollItem
	bonusAwards   []bonus.Award
}

func (s *state) clone() *state {
	return &state{
		employees:     append([]employee.Employee(nil), s.employees...),
		shifts:        append([]shift.Shift(nil), s.shifts...),
		attendance:    append([]attendance.Record(nil), s.attendance...),
		leaves:        append([]leave.LeaveRequest(nil), s.leaves...),
		notifications: append([]notification.Notification(nil), s.notifications...),
		notes:         append([]note.Note(nil), s.notes...),
		payroll:       append([]payroll.PayrollItem(nil), s.payroll...),
		bonusAwards:   append([]bonus.Award(nil), s.bonusAwards...),
	}
}

// collection maps a key to the slice it names, for (de)serialization.
func (s *state) collection(key string) (interface{}, bool) {
	switch key {
	case KeyEmployees:
		return &s.employees, true
	case KeyShifts:
		return &s.shifts, true
	case KeyAttendance:
		return &s.attendance, true
	case KeyLeaveRequests:
		return &s.leaves, true
	case KeyNotifications:
		return &s.notifications, true
	case KeyNotes:
		return &s.notes, true
	case KeyPayroll:
		return &s.payroll, true
	case KeyBonusAwards:
		return &s.bonusAwards, true
	}
	return nil, false
}

type Store struct {
	mu     sync.Mutex
	data   *state
	mirror Mirror
	clock  clock.Clock
}

type Option func(*Store)

// WithClock sets the clock used for CreatedAt and UpdatedAt defaults.
func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

func newStore(mirror Mirror, opts []Option) *Store {
	s := &Store{data: &state{}, mirror: mirror, clock: clock.New()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type txKey struct{}

type txn struct {
	store *Store
	data  *state
	dirty map[string]bool
	done  atomic.Bool
}

// NewStore returns an empty store without a mirror.
func NewStore(opts ...Option) *Store {
	return newStore(nil, opts)
}

// Open restores the store from mirror. A nil mirror yields an empty store.
func Open(ctx context.Context, mirror Mirror, opts ...Option) (*Store, error) {
	s := newStore(mirror, opts)
	if mirror == nil {
		return s, nil
	}

	entries, err := mirror.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	for key, payload := range entries {
		target, ok := s.data.collection(key)
		if !ok {
			slog.Warn("Ignoring unknown snapshot entry", "name", key)
			continue
		}
		if err := json.Unmarshal(payload, target); err != nil {
			return nil, fmt.Errorf("decode snapshot %s: %w", key, err)
		}
	}
	return s, nil
}

func (s *Store) activeTxn(ctx context.Context) *txn {
	t, ok := ctx.Value(txKey{}).(*txn)
	if !ok || t.store != s || t.done.Load() {
		return nil
	}
	return t
}

// WithinTransaction implements database.Transactor. Nested calls join the
// outer transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.activeTxn(ctx) != nil {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &txn{store: s, data: s.data.clone(), dirty: make(map[string]bool)}
	defer t.done.Store(true)

	if err := fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		return err
	}

	s.data = t.data
	s.persist(ctx, t.dirty)
	return nil
}

func (s *Store) read(ctx context.Context, fn func(st *state)) {
	if t := s.activeTxn(ctx); t != nil {
		fn(t.data)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.data)
}

// write runs fn against the live state, or the staged state inside a
// transaction. fn must leave the state untouched when it returns an error.
func (s *Store) write(ctx context.Context, key string, fn func(st *state) error) error {
	if t := s.activeTxn(ctx); t != nil {
		if err := fn(t.data); err != nil {
			return err
		}
		t.dirty[key] = true
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.data); err != nil {
		return err
	}
	s.persist(ctx, map[string]bool{key: true})
	return nil
}

// persist mirrors the named collections. Failures are logged; the in-memory
// state stays authoritative. Callers hold s.mu.
func (s *Store) persist(ctx context.Context, keys map[string]bool) {
	if s.mirror == nil || len(keys) == 0 {
		return
	}

	entries := make(map[string][]byte, len(keys))
	for key := range keys {
		src, _ := s.data.collection(key)
		payload, err := json.Marshal(src)
		if err != nil {
			slog.Error("Failed to encode collection", "name", key, "error", err)
			continue
		}
		entries[key] = payload
	}

	if err := s.mirror.Save(ctx, entries); err != nil {
		slog.Error("Failed to mirror collections", "names", len(entries), "error", err)
	}
}
