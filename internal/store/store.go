package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kstrand/vinyl/internal/library"
	"github.com/kstrand/vinyl/internal/player"
)

// Store persists the song catalog and the engine's exported state in
// SQLite, so a session can pick up where the last one stopped.
type Store struct {
	db *sql.DB
}

// New opens (and if needed creates) the database at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection keeps in-memory databases consistent and is
	// plenty for a single-user player.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS songs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			artist TEXT,
			album TEXT,
			path TEXT NOT NULL,
			format TEXT,
			added_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS play_counts (
			song_id TEXT PRIMARY KEY,
			count INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS playlist (
			position INTEGER PRIMARY KEY,
			song_id TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS history (
			position INTEGER PRIMARY KEY,
			song_id TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveCatalog replaces the stored song catalog.
func (s *Store) SaveCatalog(ctx context.Context, songs []library.Song) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM songs"); err != nil {
		return fmt.Errorf("failed to clear songs: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO songs (id, title, artist, album, path, format, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, song := range songs {
		_, err := stmt.ExecContext(ctx,
			song.ID, song.Title, song.Artist, song.Album,
			song.Path, song.Format, song.AddedAt.Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert song %s: %w", song.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

// LoadCatalog returns every stored song.
func (s *Store) LoadCatalog(ctx context.Context) ([]library.Song, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, COALESCE(artist, ''), COALESCE(album, ''),
		       path, COALESCE(format, ''), added_at
		FROM songs
		ORDER BY title COLLATE NOCASE
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []library.Song
	for rows.Next() {
		var song library.Song
		var addedAt int64
		if err := rows.Scan(&song.ID, &song.Title, &song.Artist, &song.Album,
			&song.Path, &song.Format, &addedAt); err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		song.AddedAt = time.Unix(addedAt, 0)
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating songs: %w", err)
	}
	return songs, nil
}

// SaveSnapshot replaces the stored engine state in one transaction.
func (s *Store) SaveSnapshot(ctx context.Context, st player.State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"play_counts", "playlist", "history", "meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	countStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO play_counts (song_id, count) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare count insert: %w", err)
	}
	defer countStmt.Close()
	for id, count := range st.Counts {
		if _, err := countStmt.ExecContext(ctx, id, count); err != nil {
			return fmt.Errorf("failed to insert count for %s: %w", id, err)
		}
	}

	listStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO playlist (position, song_id) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare playlist insert: %w", err)
	}
	defer listStmt.Close()
	for i, id := range st.Playlist {
		if _, err := listStmt.ExecContext(ctx, i, id); err != nil {
			return fmt.Errorf("failed to insert playlist entry %d: %w", i, err)
		}
	}

	histStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO history (position, song_id) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare history insert: %w", err)
	}
	defer histStmt.Close()
	for i, id := range st.History {
		if _, err := histStmt.ExecContext(ctx, i, id); err != nil {
			return fmt.Errorf("failed to insert history entry %d: %w", i, err)
		}
	}

	shuffle := "0"
	if st.Shuffle {
		shuffle = "1"
	}
	meta := map[string]string{
		"current": st.Current,
		"shuffle": shuffle,
	}
	for key, value := range meta {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO meta (key, value) VALUES (?, ?)", key, value); err != nil {
			return fmt.Errorf("failed to insert meta %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored engine state. A database with no
// snapshot yields a zero State.
func (s *Store) LoadSnapshot(ctx context.Context) (player.State, error) {
	st := player.State{Counts: make(map[string]int)}

	rows, err := s.db.QueryContext(ctx, "SELECT song_id, count FROM play_counts")
	if err != nil {
		return st, fmt.Errorf("failed to query play counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return st, fmt.Errorf("failed to scan play count: %w", err)
		}
		st.Counts[id] = count
	}
	if err := rows.Err(); err != nil {
		return st, fmt.Errorf("error iterating play counts: %w", err)
	}

	st.Playlist, err = s.loadOrdered(ctx, "playlist")
	if err != nil {
		return st, err
	}
	st.History, err = s.loadOrdered(ctx, "history")
	if err != nil {
		return st, err
	}

	metaRows, err := s.db.QueryContext(ctx, "SELECT key, value FROM meta")
	if err != nil {
		return st, fmt.Errorf("failed to query meta: %w", err)
	}
	defer metaRows.Close()
	for metaRows.Next() {
		var key, value string
		if err := metaRows.Scan(&key, &value); err != nil {
			return st, fmt.Errorf("failed to scan meta: %w", err)
		}
		switch key {
		case "current":
			st.Current = value
		case "shuffle":
			st.Shuffle = value == "1"
		}
	}
	if err := metaRows.Err(); err != nil {
		return st, fmt.Errorf("error iterating meta: %w", err)
	}

	return st, nil
}

func (s *Store) loadOrdered(ctx context.Context, table string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT song_id FROM "+table+" ORDER BY position ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan %s entry: %w", table, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", table, err)
	}
	return ids, nil
}
