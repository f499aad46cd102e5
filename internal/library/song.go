package library

import "time"

// Song is a single track in the library. The ID is assigned when the
// song is added and never changes; every other component refers to
// songs by ID only.
type Song struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Artist  string    `json:"artist,omitempty"`
	Album   string    `json:"album,omitempty"`
	Path    string    `json:"path"`
	Format  string    `json:"format,omitempty"`
	AddedAt time.Time `json:"added_at"`
}
