package player

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kstrand/vinyl/internal/history"
	"github.com/kstrand/vinyl/internal/library"
	"github.com/kstrand/vinyl/internal/playlist"
	"github.com/kstrand/vinyl/internal/ranking"
	"github.com/kstrand/vinyl/internal/search"
)

// Config holds engine configuration.
type Config struct {
	HistoryMaxSize    int // 0 means unbounded
	SearchLimit       int // 0 means unbounded
	EmptyPrefixPolicy search.EmptyPrefixPolicy
	Shuffle           bool
}

// RankedSong is a song with its play count, as returned by TopPlayed.
type RankedSong struct {
	library.Song
	Count int
}

// Engine owns one instance of each playback structure and routes
// events between them: playing a song moves the playlist cursor,
// records the play in the history, and bumps the ranking. All calls
// must come from a single goroutine; the engine does no locking.
type Engine struct {
	catalog *library.Catalog
	nav     *playlist.Navigator
	hist    *history.Tracker
	rank    *ranking.Ranker
	idx     *search.Index
	logger  zerolog.Logger
}

// New creates an engine with an empty library.
func New(cfg Config, logger zerolog.Logger) *Engine {
	policy := cfg.EmptyPrefixPolicy
	if policy == "" {
		policy = search.EmptyPrefixAll
	}
	return &Engine{
		catalog: library.NewCatalog(),
		nav: playlist.NewNavigator(
			playlist.WithShuffle(cfg.Shuffle),
		),
		hist: history.NewTracker(
			history.WithMaxSize(cfg.HistoryMaxSize),
		),
		rank: ranking.NewRanker(),
		idx: search.NewIndex(
			search.WithLimit(cfg.SearchLimit),
			search.WithEmptyPrefixPolicy(policy),
		),
		logger: logger.With().Str("component", "engine").Logger(),
	}
}

// LoadLibrary replaces the catalog, search index, playlist, and
// history with the given songs. Play counts survive a reload, as
// they describe all-time listening rather than the current library
// view.
func (e *Engine) LoadLibrary(songs []library.Song) {
	e.catalog = library.NewCatalog()
	e.idx = search.NewIndex(
		search.WithLimit(e.idx.Limit()),
		search.WithEmptyPrefixPolicy(e.idx.EmptyPrefixPolicy()),
	)
	e.hist.Clear()

	for _, song := range songs {
		e.catalog.Add(song)
		if err := e.idx.Insert(song.Title, song.ID); err != nil {
			e.logger.Warn().Err(err).Str("song_id", song.ID).Msg("Song not indexed")
		}
	}
	e.nav.Load(e.catalog.IDs())
	e.logger.Info().Int("songs", len(songs)).Msg("Library loaded")
}

// AddSong adds one song to the library, indexing it and appending it
// to the playlist.
func (e *Engine) AddSong(song library.Song) {
	e.catalog.Add(song)
	if err := e.idx.Insert(song.Title, song.ID); err != nil {
		e.logger.Warn().Err(err).Str("song_id", song.ID).Msg("Song not indexed")
	}
	e.nav.Insert(song.ID, e.nav.Len())
}

// RemoveSong removes a song from the library, the search index, the
// playlist, and the ranking. History entries referencing it stay but
// are skipped on Back.
func (e *Engine) RemoveSong(id string) error {
	song, err := e.catalog.Get(id)
	if err != nil {
		return err
	}
	if err := e.idx.Remove(song.Title, id); err != nil {
		e.logger.Debug().Err(err).Str("song_id", id).Msg("Song was not indexed")
	}
	if err := e.nav.Remove(id); err != nil {
		e.logger.Debug().Err(err).Str("song_id", id).Msg("Song was not in playlist")
	}
	e.rank.Remove(id)
	return e.catalog.Remove(id)
}

// Song returns the catalog record for an ID.
func (e *Engine) Song(id string) (library.Song, error) {
	return e.catalog.Get(id)
}

// Songs returns the library in playlist order.
func (e *Engine) Songs() []library.Song {
	return e.catalog.All()
}

// CurrentSong returns the song under the playlist cursor.
func (e *Engine) CurrentSong() (library.Song, error) {
	id, err := e.nav.Current()
	if err != nil {
		return library.Song{}, err
	}
	return e.catalog.Get(id)
}

// PlaySong starts the given song: the cursor jumps to it, the play is
// recorded in the history, and its count is bumped. The top of the
// history is always the song currently playing.
func (e *Engine) PlaySong(id string) (library.Song, error) {
	song, err := e.catalog.Get(id)
	if err != nil {
		return library.Song{}, err
	}
	if err := e.nav.JumpTo(id); err != nil {
		return library.Song{}, fmt.Errorf("song not in playlist: %w", err)
	}
	e.recordStart(id)
	return song, nil
}

// Next advances the playlist cursor and starts the song it lands on.
func (e *Engine) Next() (library.Song, error) {
	id, err := e.nav.Next()
	if err != nil {
		return library.Song{}, err
	}
	e.recordStart(id)
	return e.catalog.Get(id)
}

// Previous moves the playlist cursor backward (retracing the shuffle
// trail when shuffling) and starts the song it lands on.
func (e *Engine) Previous() (library.Song, error) {
	id, err := e.nav.Previous()
	if err != nil {
		return library.Song{}, err
	}
	e.recordStart(id)
	return e.catalog.Get(id)
}

// PlaybackEnded advances to the next song when the audio layer
// reports the current one finished.
func (e *Engine) PlaybackEnded() (library.Song, error) {
	return e.Next()
}

// Back replays the song played before the current one, consuming the
// history entry of the current play. Entries for songs no longer in
// the library are skipped. The replay is not re-recorded, so repeated
// Back calls walk further into the past.
func (e *Engine) Back() (library.Song, error) {
	if e.hist.Len() < 2 {
		return library.Song{}, history.ErrEmpty
	}
	if _, err := e.hist.Back(); err != nil { // drop the current play
		return library.Song{}, err
	}

	for {
		id, err := e.hist.Peek()
		if err != nil {
			return library.Song{}, err
		}
		song, err := e.catalog.Get(id)
		if err != nil {
			// Song left the library since it was played.
			if _, err := e.hist.Back(); err != nil {
				return library.Song{}, err
			}
			continue
		}
		if err := e.nav.JumpTo(id); err != nil {
			e.logger.Debug().Err(err).Str("song_id", id).Msg("Replayed song not in playlist")
		}
		e.rank.RecordPlay(id)
		return song, nil
	}
}

// PeekNext previews the song Next would start, without side effects.
func (e *Engine) PeekNext() (library.Song, error) {
	id, err := e.nav.PeekNext()
	if err != nil {
		return library.Song{}, err
	}
	return e.catalog.Get(id)
}

// PeekPrevious previews the song Previous would start.
func (e *Engine) PeekPrevious() (library.Song, error) {
	id, err := e.nav.PeekPrevious()
	if err != nil {
		return library.Song{}, err
	}
	return e.catalog.Get(id)
}

// ToggleShuffle flips shuffle mode and returns the new state.
func (e *Engine) ToggleShuffle() bool {
	on := e.nav.ToggleShuffle()
	e.logger.Info().Bool("shuffle", on).Msg("Shuffle toggled")
	return on
}

// ShuffleOn reports the current shuffle mode.
func (e *Engine) ShuffleOn() bool {
	return e.nav.Shuffle()
}

// SearchTitles returns the songs whose title starts with the typed
// prefix, in relevance order. IDs the catalog no longer knows are
// dropped.
func (e *Engine) SearchTitles(prefix string) ([]library.Song, error) {
	matches, err := e.idx.Query(prefix)
	if err != nil {
		return nil, err
	}
	songs := make([]library.Song, 0, len(matches))
	for _, m := range matches {
		if song, err := e.catalog.Get(m.SongID); err == nil {
			songs = append(songs, song)
		}
	}
	return songs, nil
}

// TopPlayed returns the k most played songs with their counts.
func (e *Engine) TopPlayed(k int) ([]RankedSong, error) {
	entries, err := e.rank.TopK(k)
	if err != nil {
		return nil, err
	}
	ranked := make([]RankedSong, 0, len(entries))
	for _, entry := range entries {
		song, err := e.catalog.Get(entry.SongID)
		if err != nil {
			song = library.Song{ID: entry.SongID, Title: entry.SongID}
		}
		ranked = append(ranked, RankedSong{Song: song, Count: entry.Count})
	}
	return ranked, nil
}

// CountOf returns a song's all-time play count.
func (e *Engine) CountOf(id string) int {
	return e.rank.CountOf(id)
}

// RecentlyPlayed returns up to limit recent plays, most recent first.
func (e *Engine) RecentlyPlayed(limit int) []library.Song {
	entries := e.hist.Entries()
	var songs []library.Song
	for i := len(entries) - 1; i >= 0 && (limit <= 0 || len(songs) < limit); i-- {
		if song, err := e.catalog.Get(entries[i]); err == nil {
			songs = append(songs, song)
		}
	}
	return songs
}

// recordStart routes a song start: history push plus ranking bump.
func (e *Engine) recordStart(id string) {
	e.hist.RecordPlay(id)
	e.rank.RecordPlay(id)
	e.logger.Debug().Str("song_id", id).Msg("Song started")
}
