package library

import (
	"errors"
	"testing"
)

func TestCatalogAddGetRemove(t *testing.T) {
	c := NewCatalog()
	c.Add(Song{ID: "id-a", Title: "Abbey Road"})

	song, err := c.Get("id-a")
	if err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}
	if song.Title != "Abbey Road" {
		t.Errorf("Get().Title = %q, want %q", song.Title, "Abbey Road")
	}

	if err := c.Remove("id-a"); err != nil {
		t.Fatalf("Remove() returned error: %v", err)
	}
	if _, err := c.Get("id-a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after remove = %v, want ErrNotFound", err)
	}
	if err := c.Remove("id-a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove() twice = %v, want ErrNotFound", err)
	}
}

func TestCatalogAllTitleOrder(t *testing.T) {
	c := NewCatalog()
	c.Add(Song{ID: "1", Title: "zebra"})
	c.Add(Song{ID: "2", Title: "Apple"})
	c.Add(Song{ID: "3", Title: "mango"})

	want := []string{"2", "3", "1"}
	ids := c.IDs()
	if len(ids) != len(want) {
		t.Fatalf("IDs() returned %d ids, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("IDs() = %v, want %v (case-insensitive title order)", ids, want)
		}
	}
}

func TestCatalogAddReplaces(t *testing.T) {
	c := NewCatalog()
	c.Add(Song{ID: "id-a", Title: "Old"})
	c.Add(Song{ID: "id-a", Title: "New"})

	if got := c.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
	song, _ := c.Get("id-a")
	if song.Title != "New" {
		t.Errorf("Title after replace = %q, want %q", song.Title, "New")
	}
}
