package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Directory scanned for audio files
	MusicDir string

	// Directory for the library database
	DataDir string

	// File extensions accepted by the scanner
	Extensions []string

	// History bound; 0 keeps the full history
	HistoryMaxSize int

	// Maximum search results per query; 0 is unbounded
	SearchLimit int

	// What an empty search prefix returns: "all" or "reject"
	EmptyPrefixPolicy string

	// Start in shuffle mode
	Shuffle bool

	// Default size of the top-played listing
	TopK int

	// Simulated track length for the TUI's auto-advance; 0 disables
	AutoAdvance time.Duration
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	v.SetDefault("music_dir", defaultMusicDir())
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("extensions", []string{".mp3", ".wav", ".ogg", ".flac", ".m4a"})
	v.SetDefault("history_max_size", 0)
	v.SetDefault("search_limit", 30)
	v.SetDefault("empty_prefix_policy", "all")
	v.SetDefault("shuffle", false)
	v.SetDefault("top_k", 10)
	v.SetDefault("auto_advance", "0s")

	// Config file is optional - don't fail if missing
	_ = v.ReadInConfig()

	v.SetEnvPrefix("VINYL")
	v.AutomaticEnv()

	cfg := &Config{
		MusicDir:          v.GetString("music_dir"),
		DataDir:           v.GetString("data_dir"),
		Extensions:        v.GetStringSlice("extensions"),
		HistoryMaxSize:    v.GetInt("history_max_size"),
		SearchLimit:       v.GetInt("search_limit"),
		EmptyPrefixPolicy: v.GetString("empty_prefix_policy"),
		Shuffle:           v.GetBool("shuffle"),
		TopK:              v.GetInt("top_k"),
		AutoAdvance:       v.GetDuration("auto_advance"),
	}

	return cfg, nil
}

// DatabasePath returns the library database location, creating the
// data directory if needed.
func (c *Config) DatabasePath() string {
	_ = os.MkdirAll(c.DataDir, 0755)
	return filepath.Join(c.DataDir, "library.db")
}

// Save writes configuration to file
func (c *Config) Save() error {
	v := viper.New()

	configDir := getConfigDir()
	configFile := filepath.Join(configDir, "config.yaml")

	v.Set("music_dir", c.MusicDir)
	v.Set("data_dir", c.DataDir)
	v.Set("extensions", c.Extensions)
	v.Set("history_max_size", c.HistoryMaxSize)
	v.Set("search_limit", c.SearchLimit)
	v.Set("empty_prefix_policy", c.EmptyPrefixPolicy)
	v.Set("shuffle", c.Shuffle)
	v.Set("top_k", c.TopK)
	v.Set("auto_advance", c.AutoAdvance.String())

	return v.WriteConfigAs(configFile)
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "vinyl")
	_ = os.MkdirAll(configDir, 0755)
	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

func defaultMusicDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, "Music")
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".local", "share", "vinyl")
}
