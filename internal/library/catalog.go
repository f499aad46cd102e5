package library

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned when a song ID is not present in the catalog.
var ErrNotFound = errors.New("song not found")

// Catalog holds all known songs, addressed by ID. It is the single
// owner of Song records; the navigator, history, search index and
// ranker store IDs only.
type Catalog struct {
	byID map[string]Song
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byID: make(map[string]Song)}
}

// Add inserts or replaces a song record.
func (c *Catalog) Add(song Song) {
	c.byID[song.ID] = song
}

// Remove deletes a song record. Returns ErrNotFound if the ID is
// unknown.
func (c *Catalog) Remove(id string) error {
	if _, ok := c.byID[id]; !ok {
		return ErrNotFound
	}
	delete(c.byID, id)
	return nil
}

// Get returns the song with the given ID.
func (c *Catalog) Get(id string) (Song, error) {
	song, ok := c.byID[id]
	if !ok {
		return Song{}, ErrNotFound
	}
	return song, nil
}

// Len returns the number of songs in the catalog.
func (c *Catalog) Len() int {
	return len(c.byID)
}

// All returns every song ordered by title (case-insensitive), matching
// the order songs are presented in the playlist after a scan.
func (c *Catalog) All() []Song {
	songs := make([]Song, 0, len(c.byID))
	for _, song := range c.byID {
		songs = append(songs, song)
	}
	sort.Slice(songs, func(i, j int) bool {
		ti := strings.ToLower(songs[i].Title)
		tj := strings.ToLower(songs[j].Title)
		if ti != tj {
			return ti < tj
		}
		return songs[i].ID < songs[j].ID
	})
	return songs
}

// IDs returns the IDs of all songs in title order.
func (c *Catalog) IDs() []string {
	songs := c.All()
	ids := make([]string, len(songs))
	for i, song := range songs {
		ids[i] = song.ID
	}
	return ids
}
