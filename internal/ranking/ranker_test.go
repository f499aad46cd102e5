package ranking

import (
	"errors"
	"testing"
)

func playTimes(r *Ranker, id string, n int) {
	for i := 0; i < n; i++ {
		r.RecordPlay(id)
	}
}

func TestRankerTopK(t *testing.T) {
	r := NewRanker()
	playTimes(r, "a", 3)
	playTimes(r, "b", 5)
	playTimes(r, "c", 1)

	top, err := r.TopK(2)
	if err != nil {
		t.Fatalf("TopK() returned error: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("TopK(2) returned %d entries", len(top))
	}
	if top[0].SongID != "b" || top[0].Count != 5 {
		t.Errorf("top[0] = %+v, want b with count 5", top[0])
	}
	if top[1].SongID != "a" || top[1].Count != 3 {
		t.Errorf("top[1] = %+v, want a with count 3", top[1])
	}

	if got := r.CountOf("c"); got != 1 {
		t.Errorf("CountOf(c) = %d, want 1", got)
	}
}

func TestRankerCountOfUnknown(t *testing.T) {
	r := NewRanker()
	if got := r.CountOf("ghost"); got != 0 {
		t.Errorf("CountOf(unknown) = %d, want 0", got)
	}
}

func TestRankerTopKBounds(t *testing.T) {
	r := NewRanker()
	playTimes(r, "a", 2)

	t.Run("negative k", func(t *testing.T) {
		if _, err := r.TopK(-1); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("TopK(-1) = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("k beyond size", func(t *testing.T) {
		top, err := r.TopK(10)
		if err != nil {
			t.Fatalf("TopK(10) returned error: %v", err)
		}
		if len(top) != 1 {
			t.Errorf("TopK(10) returned %d entries, want 1", len(top))
		}
	})

	t.Run("zero k", func(t *testing.T) {
		top, err := r.TopK(0)
		if err != nil {
			t.Fatalf("TopK(0) returned error: %v", err)
		}
		if len(top) != 0 {
			t.Errorf("TopK(0) returned %d entries, want 0", len(top))
		}
	})
}

func TestRankerTieBreakMostRecent(t *testing.T) {
	r := NewRanker()
	playTimes(r, "a", 2)
	playTimes(r, "b", 2) // b reached count 2 after a

	top, err := r.TopK(2)
	if err != nil {
		t.Fatalf("TopK() returned error: %v", err)
	}
	if top[0].SongID != "b" || top[1].SongID != "a" {
		t.Errorf("tied ranking = [%s %s], want most recent first [b a]", top[0].SongID, top[1].SongID)
	}

	// A further play of a re-reaches a higher count and takes the lead.
	r.RecordPlay("a")
	top, err = r.TopK(1)
	if err != nil {
		t.Fatalf("TopK() returned error: %v", err)
	}
	if top[0].SongID != "a" || top[0].Count != 3 {
		t.Errorf("top after extra play = %+v, want a with count 3", top[0])
	}
}

func TestRankerTopKDoesNotMutate(t *testing.T) {
	r := NewRanker()
	playTimes(r, "a", 1)
	playTimes(r, "b", 2)
	playTimes(r, "c", 3)

	if _, err := r.TopK(3); err != nil {
		t.Fatalf("TopK() returned error: %v", err)
	}

	// Querying again yields the same result; the live structure stays
	// intact and increments still work.
	r.RecordPlay("a")
	top, err := r.TopK(3)
	if err != nil {
		t.Fatalf("TopK() returned error: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("TopK(3) returned %d entries", len(top))
	}
	if got := r.CountOf("a"); got != 2 {
		t.Errorf("CountOf(a) = %d, want 2", got)
	}
}

func TestRankerRemove(t *testing.T) {
	r := NewRanker()
	playTimes(r, "a", 4)
	playTimes(r, "b", 2)

	r.Remove("a")
	r.Remove("ghost") // no-op

	top, err := r.TopK(5)
	if err != nil {
		t.Fatalf("TopK() returned error: %v", err)
	}
	if len(top) != 1 || top[0].SongID != "b" {
		t.Errorf("TopK after remove = %+v, want only b", top)
	}
	if got := r.CountOf("a"); got != 0 {
		t.Errorf("CountOf(removed) = %d, want 0", got)
	}
}

func TestRankerRestore(t *testing.T) {
	r := NewRanker()
	playTimes(r, "a", 3)
	playTimes(r, "b", 5)
	playTimes(r, "c", 1)

	fresh := NewRanker()
	fresh.Restore(r.Counts())

	top, err := fresh.TopK(3)
	if err != nil {
		t.Fatalf("TopK() returned error: %v", err)
	}
	want := []Entry{{"b", 5}, {"a", 3}, {"c", 1}}
	for i := range want {
		if top[i] != want[i] {
			t.Errorf("top[%d] = %+v, want %+v", i, top[i], want[i])
		}
	}

	// Restored entries keep working as a live heap.
	fresh.RecordPlay("c")
	if got := fresh.CountOf("c"); got != 2 {
		t.Errorf("CountOf(c) after restored play = %d, want 2", got)
	}
}

func TestRankerRestoreTiesByID(t *testing.T) {
	fresh := NewRanker()
	fresh.Restore(map[string]int{"b": 2, "a": 2, "zero": 0})

	top, err := fresh.TopK(5)
	if err != nil {
		t.Fatalf("TopK() returned error: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("TopK returned %d entries, want 2 (zero counts dropped)", len(top))
	}
	if top[0].SongID != "a" || top[1].SongID != "b" {
		t.Errorf("restored tie order = [%s %s], want [a b]", top[0].SongID, top[1].SongID)
	}
}
