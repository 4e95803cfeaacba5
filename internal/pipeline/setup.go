package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"crec-parser-go/internal/config"
	"crec-parser-go/internal/patterns"
	"crec-parser-go/internal/speakers"
)

// FromConfig loads the pattern table and speaker directory named by cfg.
func FromConfig(ctx context.Context, cfg config.Config) (*Assembler, error) {
	tbl, err := patterns.LoadOrDefault(cfg.PatternsFile)
	if err != nil {
		return nil, fmt.Errorf("pattern table: %w", err)
	}
	dir, err := loadDirectory(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("speaker directory: %w", err)
	}
	return New(tbl, dir), nil
}

func loadDirectory(ctx context.Context, cfg config.Config) (speakers.Map, error) {
	var parts []speakers.Map
	if cfg.SpeakersURL != "" {
		m, err := speakers.Fetch(ctx, cfg.SpeakersURL)
		if err != nil {
			return nil, err
		}
		parts = append(parts, m)
	}
	if cfg.SpeakersFile != "" {
		var (
			m   speakers.Map
			err error
		)
		switch strings.ToLower(filepath.Ext(cfg.SpeakersFile)) {
		case ".xlsx", ".xlsm":
			m, err = speakers.LoadXLSX(cfg.SpeakersFile)
		default:
			m, err = speakers.LoadJSON(cfg.SpeakersFile)
		}
		if err != nil {
			return nil, err
		}
		parts = append(parts, m)
	}
	// the local file is appended last so it overrides the remote copy
	return speakers.Merge(parts...), nil
}
