package history

import "errors"

// ErrEmpty is returned when Back or Peek is called on an empty
// history.
var ErrEmpty = errors.New("history is empty")

// Tracker is a LIFO record of played songs, most recent last. It is
// intentionally separate from the navigator's shuffle visit trail:
// "Back" reflects actual play order, including jumps triggered by
// search, while "Previous" retraces the playlist cursor.
type Tracker struct {
	entries []string
	maxSize int // 0 means unbounded
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithMaxSize bounds the history to n entries, dropping the oldest
// when full. n <= 0 leaves the history unbounded.
func WithMaxSize(n int) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.maxSize = n
		}
	}
}

// NewTracker creates an empty history.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RecordPlay appends a song to the history. A song played twice
// appears twice.
func (t *Tracker) RecordPlay(id string) {
	t.entries = append(t.entries, id)
	if t.maxSize > 0 && len(t.entries) > t.maxSize {
		excess := len(t.entries) - t.maxSize
		t.entries = append(t.entries[:0], t.entries[excess:]...)
	}
}

// Back removes and returns the most recently recorded song.
func (t *Tracker) Back() (string, error) {
	if len(t.entries) == 0 {
		return "", ErrEmpty
	}
	id := t.entries[len(t.entries)-1]
	t.entries = t.entries[:len(t.entries)-1]
	return id, nil
}

// Peek returns the most recently recorded song without removing it.
func (t *Tracker) Peek() (string, error) {
	if len(t.entries) == 0 {
		return "", ErrEmpty
	}
	return t.entries[len(t.entries)-1], nil
}

// Len returns the number of recorded plays.
func (t *Tracker) Len() int {
	return len(t.entries)
}

// Clear empties the history.
func (t *Tracker) Clear() {
	t.entries = t.entries[:0]
}

// Entries returns a copy of the history in play order, oldest first.
func (t *Tracker) Entries() []string {
	out := make([]string, len(t.entries))
	copy(out, t.entries)
	return out
}

// Restore replaces the history with the given entries, oldest first,
// re-applying the configured bound.
func (t *Tracker) Restore(entries []string) {
	t.entries = append(t.entries[:0:0], entries...)
	if t.maxSize > 0 && len(t.entries) > t.maxSize {
		excess := len(t.entries) - t.maxSize
		t.entries = t.entries[excess:]
	}
}
