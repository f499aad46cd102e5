package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kstrand/vinyl/internal/config"
	"github.com/kstrand/vinyl/internal/library"
	"github.com/kstrand/vinyl/internal/player"
	"github.com/kstrand/vinyl/internal/search"
	"github.com/kstrand/vinyl/internal/store"
)

// openSession loads the stored catalog and snapshot into a fresh
// engine. The snapshot is reconciled against the catalog first: IDs
// of removed songs are dropped, new songs are appended to the
// playlist end.
func openSession(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*player.Engine, *store.Store, error) {
	s, err := store.New(cfg.DatabasePath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open library database: %w", err)
	}

	songs, err := s.LoadCatalog(ctx)
	if err != nil {
		s.Close()
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	engine := player.New(player.Config{
		HistoryMaxSize:    cfg.HistoryMaxSize,
		SearchLimit:       cfg.SearchLimit,
		EmptyPrefixPolicy: search.EmptyPrefixPolicy(cfg.EmptyPrefixPolicy),
		Shuffle:           cfg.Shuffle,
	}, logger)
	engine.LoadLibrary(songs)

	st, err := s.LoadSnapshot(ctx)
	if err != nil {
		s.Close()
		return nil, nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if len(st.Playlist) > 0 || len(st.Counts) > 0 || len(st.History) > 0 {
		engine.ImportState(reconcile(st, songs))
	}

	return engine, s, nil
}

// saveSession persists the engine's state.
func saveSession(ctx context.Context, engine *player.Engine, s *store.Store) error {
	if err := s.SaveSnapshot(ctx, engine.ExportState()); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// reconcile drops snapshot references to songs no longer in the
// catalog and appends songs the snapshot has never seen.
func reconcile(st player.State, songs []library.Song) player.State {
	known := make(map[string]bool, len(songs))
	for _, song := range songs {
		known[song.ID] = true
	}

	inPlaylist := make(map[string]bool, len(st.Playlist))
	playlist := st.Playlist[:0:0]
	for _, id := range st.Playlist {
		if known[id] {
			playlist = append(playlist, id)
			inPlaylist[id] = true
		}
	}
	for _, song := range songs {
		if !inPlaylist[song.ID] {
			playlist = append(playlist, song.ID)
		}
	}
	st.Playlist = playlist

	history := st.History[:0:0]
	for _, id := range st.History {
		if known[id] {
			history = append(history, id)
		}
	}
	st.History = history

	for id := range st.Counts {
		if !known[id] {
			delete(st.Counts, id)
		}
	}
	if st.Current != "" && !known[st.Current] {
		st.Current = ""
	}
	return st
}
