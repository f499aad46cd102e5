package history

import (
	"errors"
	"testing"
)

func TestTrackerLIFO(t *testing.T) {
	tr := NewTracker()
	tr.RecordPlay("a")
	tr.RecordPlay("b")

	if id, err := tr.Back(); err != nil || id != "b" {
		t.Errorf("first Back() = %q, %v, want %q, nil", id, err, "b")
	}
	if id, err := tr.Back(); err != nil || id != "a" {
		t.Errorf("second Back() = %q, %v, want %q, nil", id, err, "a")
	}
	if _, err := tr.Back(); !errors.Is(err, ErrEmpty) {
		t.Errorf("third Back() = %v, want ErrEmpty", err)
	}
}

func TestTrackerNoDeduplication(t *testing.T) {
	tr := NewTracker()
	tr.RecordPlay("a")
	tr.RecordPlay("a")

	if got := tr.Len(); got != 2 {
		t.Errorf("Len() after playing the same song twice = %d, want 2", got)
	}
}

func TestTrackerPeek(t *testing.T) {
	tr := NewTracker()

	if _, err := tr.Peek(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Peek() on empty history = %v, want ErrEmpty", err)
	}

	tr.RecordPlay("a")
	if id, err := tr.Peek(); err != nil || id != "a" {
		t.Errorf("Peek() = %q, %v, want %q, nil", id, err, "a")
	}
	if got := tr.Len(); got != 1 {
		t.Errorf("Len() after Peek = %d, want 1 (Peek must not pop)", got)
	}
}

func TestTrackerClear(t *testing.T) {
	tr := NewTracker()
	tr.RecordPlay("a")
	tr.RecordPlay("b")
	tr.Clear()

	if got := tr.Len(); got != 0 {
		t.Errorf("Len() after Clear = %d, want 0", got)
	}
	if _, err := tr.Back(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Back() after Clear = %v, want ErrEmpty", err)
	}
}

func TestTrackerBoundDropsOldest(t *testing.T) {
	tr := NewTracker(WithMaxSize(3))
	for _, id := range []string{"a", "b", "c", "d"} {
		tr.RecordPlay(id)
	}

	if got := tr.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	want := []string{"b", "c", "d"}
	got := tr.Entries()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Entries() = %v, want %v", got, want)
		}
	}
}

func TestTrackerRestore(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		tr := NewTracker()
		tr.RecordPlay("a")
		tr.RecordPlay("b")

		fresh := NewTracker()
		fresh.Restore(tr.Entries())

		if id, err := fresh.Back(); err != nil || id != "b" {
			t.Errorf("Back() after restore = %q, %v, want %q, nil", id, err, "b")
		}
	})

	t.Run("bound applies", func(t *testing.T) {
		tr := NewTracker(WithMaxSize(2))
		tr.Restore([]string{"a", "b", "c"})

		if got := tr.Len(); got != 2 {
			t.Errorf("Len() after bounded restore = %d, want 2", got)
		}
		if id, _ := tr.Peek(); id != "c" {
			t.Errorf("Peek() after bounded restore = %q, want %q", id, "c")
		}
	})
}
