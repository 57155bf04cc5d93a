// Package config loads and saves application settings from the user's
// home directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configDirName  = ".familytree"
	configFileName = "settings.yaml"

	// DefaultGridSize is the canvas snapping grid pitch in world units.
	DefaultGridSize = 50

	maxRecentFiles = 10
)

// Settings holds user preferences persisted between runs.
type Settings struct {
	Language       string   `mapstructure:"language"`
	ShowGrid       bool     `mapstructure:"show_grid"`
	GridSize       float32  `mapstructure:"grid_size"`
	NodeColorTheme string   `mapstructure:"node_color_theme"`
	RecentFiles    []string `mapstructure:"recent_files"`
}

// Defaults returns the settings used when no config file exists.
func Defaults() Settings {
	return Settings{
		Language:       "japanese",
		ShowGrid:       true,
		GridSize:       DefaultGridSize,
		NodeColorTheme: "default",
		RecentFiles:    nil,
	}
}

// Path returns the settings file location under the user's home directory.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// Load reads settings from path. A missing file yields the defaults, not an
// error; a malformed file is an error.
func Load(path string) (Settings, error) {
	s := Defaults()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("language", s.Language)
	v.SetDefault("show_grid", s.ShowGrid)
	v.SetDefault("grid_size", s.GridSize)
	v.SetDefault("node_color_theme", s.NodeColorTheme)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("decode settings %s: %w", path, err)
	}
	if s.GridSize <= 0 {
		s.GridSize = DefaultGridSize
	}
	return s, nil
}

// Save writes settings to path, creating the parent directory if needed.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.Set("language", s.Language)
	v.Set("show_grid", s.ShowGrid)
	v.Set("grid_size", s.GridSize)
	v.Set("node_color_theme", s.NodeColorTheme)
	v.Set("recent_files", s.RecentFiles)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}

// AddRecentFile puts path at the front of the recent files list, dropping
// duplicates and trimming to the cap.
func (s *Settings) AddRecentFile(path string) {
	files := []string{path}
	for _, f := range s.RecentFiles {
		if f != path {
			files = append(files, f)
		}
	}
	if len(files) > maxRecentFiles {
		files = files[:maxRecentFiles]
	}
	s.RecentFiles = files
}
