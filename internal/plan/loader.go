package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading tier catalogs from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalog loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "plan-loader").Logger(),
	}
}

// Load reads a JSON catalog file and returns the parsed Catalog.
func (l *fileLoader) Load(ctx context.Context, path string) (*Catalog, error) {
	l.logger.Info().Str("file", path).Msg("loading plan catalog")

	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read catalog file")
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	catalog, err := parseCatalog(data)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to parse catalog file")
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("tiers", len(catalog.Tiers)).
		Msg("plan catalog loaded")

	return catalog, nil
}

// parseCatalog decodes catalog JSON and rejects unusable tier tables.
func parseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, err
	}
	if len(catalog.Tiers) == 0 {
		return nil, fmt.Errorf("catalog has no tiers")
	}
	for i, t := range catalog.Tiers {
		if t.MinAmount < 0 {
			return nil, fmt.Errorf("tier %d: negative minimum amount", i)
		}
		if t.GrantedLimit <= 0 {
			return nil, fmt.Errorf("tier %d: granted limit must be positive", i)
		}
	}
	catalog.normalize()
	return &catalog, nil
}
