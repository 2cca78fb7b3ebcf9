// Package presets supplies the size and format catalog the configurator UI
// offers. The catalog is loaded from a YAML file when one is configured and
// can be reloaded at runtime, either explicitly or through a file watcher.
package presets

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/pubtools/gptsampler/internal/models"
)

// SizePreset is a named creative size offered by the size picker.
type SizePreset struct {
	Name        string `yaml:"name" json:"name"`
	Width       int    `yaml:"width" json:"width"`
	Height      int    `yaml:"height" json:"height"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// FormatPreset describes an out-of-page format for the format selector.
type FormatPreset struct {
	Format      models.OutOfPageFormat `yaml:"format" json:"format"`
	Label       string                 `yaml:"label" json:"label"`
	Description string                 `yaml:"description,omitempty" json:"description,omitempty"`
}

// Catalog is the full preset catalog served to the UI.
type Catalog struct {
	Sizes   []SizePreset   `yaml:"sizes" json:"sizes"`
	Formats []FormatPreset `yaml:"formats" json:"formats"`
}

// Default returns the built-in catalog used when no presets file is
// configured. Sizes follow the common IAB inventory names.
func Default() Catalog {
	return Catalog{
		Sizes: []SizePreset{
			{Name: "Medium rectangle", Width: 300, Height: 250},
			{Name: "Leaderboard", Width: 728, Height: 90},
			{Name: "Large leaderboard", Width: 970, Height: 90},
			{Name: "Billboard", Width: 970, Height: 250},
			{Name: "Wide skyscraper", Width: 160, Height: 600},
			{Name: "Half page", Width: 300, Height: 600},
			{Name: "Mobile banner", Width: 320, Height: 50},
			{Name: "Large mobile banner", Width: 320, Height: 100},
		},
		Formats: []FormatPreset{
			{Format: models.FormatTopAnchor, Label: "Top anchor"},
			{Format: models.FormatBottomAnchor, Label: "Bottom anchor"},
			{Format: models.FormatLeftSideRail, Label: "Left side rail"},
			{Format: models.FormatRightSideRail, Label: "Right side rail"},
			{Format: models.FormatInterstitial, Label: "Interstitial"},
			{Format: models.FormatRewarded, Label: "Rewarded"},
		},
	}
}

// Load reads and validates a catalog file.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read presets: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("parse presets: %w", err)
	}

	for _, size := range catalog.Sizes {
		if size.Name == "" || size.Width <= 0 || size.Height <= 0 {
			return Catalog{}, fmt.Errorf("invalid size preset %q (%dx%d)", size.Name, size.Width, size.Height)
		}
	}
	for _, format := range catalog.Formats {
		if !format.Format.Valid() {
			return Catalog{}, fmt.Errorf("invalid format preset %q", format.Format)
		}
	}
	return catalog, nil
}

// Store holds the active catalog behind a read lock so handlers can serve it
// while reloads happen.
type Store struct {
	mu      sync.RWMutex
	catalog Catalog
	path    string
	logger  *zap.Logger
}

// NewStore builds a store from the file at path, or from the built-in
// defaults when path is empty.
func NewStore(path string, logger *zap.Logger) (*Store, error) {
	s := &Store{
		path:    path,
		logger:  logger.Named("presets"),
		catalog: Default(),
	}
	if path != "" {
		catalog, err := Load(path)
		if err != nil {
			return nil, err
		}
		s.catalog = catalog
	}
	return s, nil
}

// Catalog returns the active catalog.
func (s *Store) Catalog() Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Reload re-reads the catalog file. The active catalog is untouched if the
// new file fails to parse.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	catalog, err := Load(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.catalog = catalog
	s.mu.Unlock()

	s.logger.Info("presets reloaded",
		zap.String("path", s.path),
		zap.Int("sizes", len(catalog.Sizes)),
		zap.Int("formats", len(catalog.Formats)))
	return nil
}

// Watch reloads the catalog whenever the file changes, until ctx is done.
// Editors replace files on save, so Create events are treated like writes.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.path); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", s.path, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					if err := s.Reload(); err != nil {
						s.logger.Error("presets reload failed", zap.Error(err))
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Error("presets watcher", zap.Error(err))
			}
		}
	}()

	return nil
}
