package history

import (
	"sync"
	"time"
)

// DefaultMaxEntries bounds the number of snapshots kept when no limit is given.
const DefaultMaxEntries = 1000

// entry wraps a snapshot with metadata.
type entry[T any] struct {
	value       T
	description string
	timestamp   time.Time
}

// EntryInfo describes one snapshot in the history.
type EntryInfo struct {
	Description string    // Human-readable description of the edit that produced it
	Timestamp   time.Time // When the snapshot was committed
}

// Store is a linear undo/redo history of full snapshots.
//
// Entries after the cursor form the redo future; Commit discards them.
// The cursor always points at a valid entry.
type Store[T any] struct {
	mu sync.Mutex

	entries []entry[T]
	cursor  int

	// Configuration
	maxEntries int
}

// New creates a store whose only entry is initial.
// A maxEntries of zero or less selects DefaultMaxEntries.
func New[T any](initial T, maxEntries int) *Store[T] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Store[T]{
		entries:    []entry[T]{{value: initial, description: "Initial", timestamp: time.Now()}},
		maxEntries: maxEntries,
	}
}

// Current returns the snapshot at the cursor.
func (s *Store[T]) Current() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[s.cursor].value
}

// Commit truncates the redo future, appends value and moves the cursor to it.
func (s *Store[T]) Commit(value T, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries[:s.cursor+1:s.cursor+1], entry[T]{
		value:       value,
		description: description,
		timestamp:   time.Now(),
	})
	s.cursor = len(s.entries) - 1

	s.trimLocked()
}

// trimLocked enforces maxEntries, keeping the cursor on the same snapshot.
// The redo future is dropped before any undo past.
func (s *Store[T]) trimLocked() {
	if len(s.entries) <= s.maxEntries {
		return
	}
	if keep := max(s.cursor+1, s.maxEntries); keep < len(s.entries) {
		s.entries = s.entries[:keep:keep]
	}
	if excess := len(s.entries) - s.maxEntries; excess > 0 {
		s.entries = append([]entry[T](nil), s.entries[excess:]...)
		s.cursor -= excess
	}
}

// Undo moves the cursor back one entry and returns the new current snapshot.
// At the first entry it does nothing and reports false.
func (s *Store[T]) Undo() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor == 0 {
		return s.entries[s.cursor].value, false
	}
	s.cursor--
	return s.entries[s.cursor].value, true
}

// Redo moves the cursor forward one entry and returns the new current snapshot.
// At the last entry it does nothing and reports false.
func (s *Store[T]) Redo() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor == len(s.entries)-1 {
		return s.entries[s.cursor].value, false
	}
	s.cursor++
	return s.entries[s.cursor].value, true
}

// CanUndo returns true if undo is available.
func (s *Store[T]) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor > 0
}

// CanRedo returns true if redo is available.
func (s *Store[T]) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor < len(s.entries)-1
}

// Len returns the number of stored snapshots, including the redo future.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Cursor returns the index of the current snapshot.
func (s *Store[T]) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Reset discards all history and starts over from initial.
func (s *Store[T]) Reset(initial T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = []entry[T]{{value: initial, description: "Initial", timestamp: time.Now()}}
	s.cursor = 0
}

// Entries returns info about every stored snapshot, oldest first.
func (s *Store[T]) Entries() []EntryInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]EntryInfo, len(s.entries))
	for i, e := range s.entries {
		result[i] = EntryInfo{
			Description: e.description,
			Timestamp:   e.timestamp,
		}
	}
	return result
}

// PeekUndo returns info about the edit an Undo would revert.
func (s *Store[T]) PeekUndo() (EntryInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor == 0 {
		return EntryInfo{}, false
	}
	e := s.entries[s.cursor]
	return EntryInfo{Description: e.description, Timestamp: e.timestamp}, true
}

// PeekRedo returns info about the edit a Redo would reapply.
func (s *Store[T]) PeekRedo() (EntryInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor == len(s.entries)-1 {
		return EntryInfo{}, false
	}
	e := s.entries[s.cursor+1]
	return EntryInfo{Description: e.description, Timestamp: e.timestamp}, true
}

// SetMaxEntries changes the maximum number of stored snapshots.
// If the history is larger, the oldest entries are removed.
func (s *Store[T]) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.maxEntries = max
	s.trimLocked()
}

// MaxEntries returns the maximum number of stored snapshots.
func (s *Store[T]) MaxEntries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxEntries
}
