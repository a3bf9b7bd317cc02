package journal

import "sync"

// Status is the lifecycle of a store's cached list
type Status string

// Store statuses
const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// Snapshot is an immutable copy of a store's state
type Snapshot[T any] struct {
	Status    Status `json:"status"`
	Rows      []T    `json:"rows"`
	LastError *Error `json:"last_error,omitempty"`
}

// state guards a cached row list. Repository calls never run while mu is held.
type state[T any] struct {
	mu      sync.RWMutex
	status  Status
	rows    []T
	lastErr *Error
	idOf    func(T) string
	clone   func(T) T
}

func newState[T any](idOf func(T) string, clone func(T) T) *state[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &state[T]{
		status: StatusLoading,
		rows:   []T{},
		idOf:   idOf,
		clone:  clone,
	}
}

func (s *state[T]) snapshot() Snapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]T, len(s.rows))
	for i, r := range s.rows {
		rows[i] = s.clone(r)
	}
	return Snapshot[T]{Status: s.status, Rows: rows, LastError: s.lastErr}
}

func (s *state[T]) find(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rows {
		if s.idOf(r) == id {
			return s.clone(r), true
		}
	}
	var zero T
	return zero, false
}

func (s *state[T]) any(match func(T) bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rows {
		if match(r) {
			return true
		}
	}
	return false
}

func (s *state[T]) replaceAll(rows []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows = rows
	s.status = StatusReady
	s.lastErr = nil
}

func (s *state[T]) prepend(row T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows = append([]T{row}, s.rows...)
	s.succeeded()
}

// replace swaps the row with the same id. Rows not in the cache are ignored.
func (s *state[T]) replace(row T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.idOf(row)
	for i, r := range s.rows {
		if s.idOf(r) == id {
			s.rows[i] = row
			break
		}
	}
	s.succeeded()
}

func (s *state[T]) remove(match func(T) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]T, 0, len(s.rows))
	for _, r := range s.rows {
		if !match(r) {
			kept = append(kept, r)
		}
	}
	s.rows = kept
	s.succeeded()
}

// succeeded clears the last error after a mutation. A store left in
// StatusError by a failed refresh is ready again. Callers hold mu.
func (s *state[T]) succeeded() {
	s.lastErr = nil
	if s.status == StatusError {
		s.status = StatusReady
	}
}

// fail records err. A failed load also moves the store to StatusError.
func (s *state[T]) fail(err *Error, load bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastErr = err
	if load {
		s.status = StatusError
	}
}
