package search

import (
	"errors"
	"fmt"
	"testing"
)

func mustInsert(t *testing.T, idx *Index, title, id string) {
	t.Helper()

	if err := idx.Insert(title, id); err != nil {
		t.Fatalf("Insert(%q, %q) returned error: %v", title, id, err)
	}
}

func mustQuery(t *testing.T, idx *Index, prefix string) []Match {
	t.Helper()

	matches, err := idx.Query(prefix)
	if err != nil {
		t.Fatalf("Query(%q) returned error: %v", prefix, err)
	}
	return matches
}

// hasPath reports whether every rune of the given path is reachable
// from the root. The path is walked as-is, untrimmed, so tests can
// probe nodes that normalization would strip away.
func hasPath(idx *Index, path string) bool {
	cur := idx.root
	for _, ch := range path {
		child, ok := cur.children[ch]
		if !ok {
			return false
		}
		cur = child
	}
	return true
}

func TestIndexInsertAndQuery(t *testing.T) {
	idx := NewIndex()
	mustInsert(t, idx, "Bohemian Rhapsody", "id1")

	tests := []struct {
		prefix string
		want   int
	}{
		{"boh", 1},
		{"BOH", 1},
		{"  boh  ", 1},
		{"bohemian rhapsody", 1},
		{"bohemian rhapsody!", 0},
		{"xyz", 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("prefix %q", tt.prefix), func(t *testing.T) {
			matches := mustQuery(t, idx, tt.prefix)
			if len(matches) != tt.want {
				t.Fatalf("Query(%q) returned %d matches, want %d", tt.prefix, len(matches), tt.want)
			}
			if tt.want == 1 && matches[0].SongID != "id1" {
				t.Errorf("Query(%q)[0].SongID = %q, want %q", tt.prefix, matches[0].SongID, "id1")
			}
		})
	}
}

func TestIndexInsertEmptyTitle(t *testing.T) {
	idx := NewIndex()
	if err := idx.Insert("   ", "id1"); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Insert(whitespace title) = %v, want ErrEmptyTitle", err)
	}
}

func TestIndexDuplicateInsert(t *testing.T) {
	idx := NewIndex()
	mustInsert(t, idx, "Song", "id1")
	mustInsert(t, idx, "Song", "id1")

	if got := idx.Len(); got != 1 {
		t.Errorf("Len() after duplicate insert = %d, want 1", got)
	}
	if matches := mustQuery(t, idx, "song"); len(matches) != 1 {
		t.Errorf("Query returned %d matches, want 1", len(matches))
	}
}

func TestIndexRemovePrunes(t *testing.T) {
	idx := NewIndex()
	mustInsert(t, idx, "Bohemian Rhapsody", "id1")

	if err := idx.Remove("Bohemian Rhapsody", "id1"); err != nil {
		t.Fatalf("Remove() returned error: %v", err)
	}

	if matches := mustQuery(t, idx, "boh"); len(matches) != 0 {
		t.Errorf("Query after remove returned %d matches, want 0", len(matches))
	}
	if hasPath(idx, "boh") {
		t.Error("node path for removed title still reachable from root")
	}
	if got := idx.Len(); got != 0 {
		t.Errorf("Len() after remove = %d, want 0", got)
	}
}

func TestIndexRemoveKeepsSharedNodes(t *testing.T) {
	idx := NewIndex()
	mustInsert(t, idx, "Rhapsody", "id1")
	mustInsert(t, idx, "Rhapsody in Blue", "id2")

	if err := idx.Remove("Rhapsody in Blue", "id2"); err != nil {
		t.Fatalf("Remove() returned error: %v", err)
	}

	// The shared "rhapsody" path must survive, the tail must not.
	if !hasPath(idx, "rhapsody") {
		t.Error("shared prefix path was pruned")
	}
	if hasPath(idx, "rhapsody ") {
		t.Error("tail of removed title still reachable")
	}

	matches := mustQuery(t, idx, "rhap")
	if len(matches) != 1 || matches[0].SongID != "id1" {
		t.Errorf("Query after partial remove = %v, want only id1", matches)
	}
}

func TestIndexRemoveStopsAtTerminalWithIDs(t *testing.T) {
	idx := NewIndex()
	mustInsert(t, idx, "Rhap", "id1")
	mustInsert(t, idx, "Rhapsody", "id2")

	if err := idx.Remove("Rhapsody", "id2"); err != nil {
		t.Fatalf("Remove() returned error: %v", err)
	}

	// Pruning must stop at the "rhap" terminal, which still holds id1.
	if !hasPath(idx, "rhap") {
		t.Error("terminal node with remaining IDs was pruned")
	}
	if hasPath(idx, "rhaps") {
		t.Error("nodes below the surviving terminal were not pruned")
	}
}

func TestIndexRemoveNotFound(t *testing.T) {
	idx := NewIndex()
	mustInsert(t, idx, "Song", "id1")

	tests := []struct {
		name  string
		title string
		id    string
	}{
		{"unknown title", "Other", "id1"},
		{"unknown id", "Song", "id2"},
		{"unindexed path", "Songs", "id1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := idx.Remove(tt.title, tt.id); !errors.Is(err, ErrNotFound) {
				t.Errorf("Remove(%q, %q) = %v, want ErrNotFound", tt.title, tt.id, err)
			}
		})
	}
}

func TestIndexRelevanceOrdering(t *testing.T) {
	idx := NewIndex()
	mustInsert(t, idx, "Rhapsody", "id1")
	mustInsert(t, idx, "Rhap", "id2")

	matches := mustQuery(t, idx, "rhap")
	if len(matches) != 2 {
		t.Fatalf("Query returned %d matches, want 2", len(matches))
	}
	// Exact terminal match for the prefix comes first.
	if matches[0].SongID != "id2" || matches[1].SongID != "id1" {
		t.Errorf("Query order = [%s %s], want [id2 id1]", matches[0].SongID, matches[1].SongID)
	}
}

func TestIndexOrderingByLengthThenTitle(t *testing.T) {
	idx := NewIndex()
	mustInsert(t, idx, "Help!", "id-help")
	mustInsert(t, idx, "Hey Jude", "id-jude")
	mustInsert(t, idx, "Hello", "id-hello")
	mustInsert(t, idx, "Here Comes the Sun", "id-sun")

	matches := mustQuery(t, idx, "he")
	want := []string{"id-hello", "id-help", "id-jude", "id-sun"}
	if len(matches) != len(want) {
		t.Fatalf("Query returned %d matches, want %d", len(matches), len(want))
	}
	for i, id := range want {
		if matches[i].SongID != id {
			t.Errorf("match[%d] = %q, want %q", i, matches[i].SongID, id)
		}
	}
}

func TestIndexSharedTitleOrderedByID(t *testing.T) {
	idx := NewIndex()
	mustInsert(t, idx, "Cover", "id-b")
	mustInsert(t, idx, "Cover", "id-a")

	matches := mustQuery(t, idx, "cov")
	if len(matches) != 2 {
		t.Fatalf("Query returned %d matches, want 2", len(matches))
	}
	if matches[0].SongID != "id-a" || matches[1].SongID != "id-b" {
		t.Errorf("IDs under one title = [%s %s], want [id-a id-b]", matches[0].SongID, matches[1].SongID)
	}
}

func TestIndexLimit(t *testing.T) {
	idx := NewIndex(WithLimit(2))
	mustInsert(t, idx, "Song A", "id1")
	mustInsert(t, idx, "Song B", "id2")
	mustInsert(t, idx, "Song C", "id3")

	if matches := mustQuery(t, idx, "song"); len(matches) != 2 {
		t.Errorf("Query with limit 2 returned %d matches", len(matches))
	}
}

func TestIndexEmptyPrefix(t *testing.T) {
	t.Run("all policy returns everything", func(t *testing.T) {
		idx := NewIndex()
		mustInsert(t, idx, "Alpha", "id1")
		mustInsert(t, idx, "Beta", "id2")

		if matches := mustQuery(t, idx, ""); len(matches) != 2 {
			t.Errorf("Query(\"\") returned %d matches, want 2", len(matches))
		}
	})

	t.Run("reject policy errors", func(t *testing.T) {
		idx := NewIndex(WithEmptyPrefixPolicy(EmptyPrefixReject))
		mustInsert(t, idx, "Alpha", "id1")

		if _, err := idx.Query("  "); !errors.Is(err, ErrEmptyPrefix) {
			t.Errorf("Query(blank) = %v, want ErrEmptyPrefix", err)
		}
	})
}

func TestIndexNonAlphanumericTitles(t *testing.T) {
	idx := NewIndex()
	mustInsert(t, idx, "99 Luftballons", "id1")
	mustInsert(t, idx, "...Baby One More Time", "id2")

	if matches := mustQuery(t, idx, "99 "); len(matches) != 1 {
		t.Errorf("Query(\"99 \") returned %d matches, want 1", len(matches))
	}
	if matches := mustQuery(t, idx, "..."); len(matches) != 1 {
		t.Errorf("Query(\"...\") returned %d matches, want 1", len(matches))
	}
}
