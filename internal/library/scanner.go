package library

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultExtensions are the audio file extensions scanned when none
// are configured.
var DefaultExtensions = []string{".mp3", ".wav", ".ogg", ".flac", ".m4a"}

// Scanner walks a music directory and builds Song records from the
// audio files it finds. Metadata comes from embedded tags when
// readable, falling back to the file name.
type Scanner struct {
	extensions map[string]bool
	logger     zerolog.Logger
}

// NewScanner creates a scanner accepting the given extensions
// (lower-case, with leading dot). An empty list means
// DefaultExtensions.
func NewScanner(extensions []string, logger zerolog.Logger) *Scanner {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	accept := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		accept[strings.ToLower(ext)] = true
	}
	return &Scanner{
		extensions: accept,
		logger:     logger.With().Str("component", "scanner").Logger(),
	}
}

// Scan walks dir and returns a Song record per matching audio file.
// Unreadable files are skipped with a warning rather than failing the
// whole scan.
func (s *Scanner) Scan(dir string) ([]Song, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat music directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	var songs []Song
	err = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Skipping unreadable entry")
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !s.extensions[ext] {
			return nil
		}
		songs = append(songs, s.songFromFile(path, ext))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk music directory: %w", err)
	}

	s.logger.Info().Int("songs", len(songs)).Str("dir", dir).Msg("Scan complete")
	return songs, nil
}

// songFromFile builds a Song for one audio file. Tag metadata is best
// effort; the file name (without extension) is the title fallback.
func (s *Scanner) songFromFile(path, ext string) Song {
	song := Song{
		ID:      uuid.NewString(),
		Title:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:    path,
		Format:  ext,
		AddedAt: time.Now(),
	}
	if info, err := os.Stat(path); err == nil {
		song.AddedAt = info.ModTime()
	}

	file, err := os.Open(path)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("Failed to open file for tag read")
		return song
	}
	defer file.Close()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		s.logger.Debug().Err(err).Str("path", path).Msg("No readable tags, using file name")
		return song
	}

	if title := strings.TrimSpace(metadata.Title()); title != "" {
		song.Title = title
	}
	song.Artist = strings.TrimSpace(metadata.Artist())
	song.Album = strings.TrimSpace(metadata.Album())
	return song
}
