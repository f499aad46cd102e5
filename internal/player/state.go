package player

// State is a plain serializable snapshot of everything the engine
// cannot rebuild from the library itself: play counts, playlist
// order, the cursor, and the play history. Persistence is the
// caller's business; the snapshot marshals cleanly as JSON and maps
// directly onto the store's tables.
type State struct {
	Counts   map[string]int `json:"counts"`
	Playlist []string       `json:"playlist"`
	Current  string         `json:"current,omitempty"`
	History  []string       `json:"history"`
	Shuffle  bool           `json:"shuffle"`
}

// ExportState captures the current snapshot.
func (e *Engine) ExportState() State {
	st := State{
		Counts:   e.rank.Counts(),
		Playlist: e.nav.Order(),
		History:  e.hist.Entries(),
		Shuffle:  e.nav.Shuffle(),
	}
	if id, err := e.nav.Current(); err == nil {
		st.Current = id
	}
	return st
}

// ImportState replaces playlist order, cursor, history, counts, and
// shuffle mode from a snapshot. The catalog and search index are fed
// by the library, not the snapshot, so load the library first; a
// snapshot cursor pointing at a song missing from the playlist is
// ignored.
func (e *Engine) ImportState(st State) {
	if e.nav.Shuffle() != st.Shuffle {
		e.nav.ToggleShuffle()
	}
	if err := e.nav.Restore(st.Playlist, st.Current); err != nil {
		e.logger.Warn().Str("song_id", st.Current).Msg("Snapshot cursor not in playlist")
	}
	e.hist.Restore(st.History)
	e.rank.Restore(st.Counts)
	e.logger.Info().
		Int("playlist", len(st.Playlist)).
		Int("history", len(st.History)).
		Int("counts", len(st.Counts)).
		Msg("State imported")
}
