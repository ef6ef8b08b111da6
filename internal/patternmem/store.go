// Package patternmem persists which escape patterns have already received
// their long-form explanation. The set is tiny and survives across sessions.
package patternmem

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/danielpatrickdp/unwind/go-controller/internal/classifier"
)

// Store reads and writes the explained-pattern set. Load on an empty or
// missing store returns an empty set and no error.
type Store interface {
	Load(ctx context.Context) ([]classifier.Pattern, error)
	Save(ctx context.Context, explained []classifier.Pattern) error
}

// Sentinel errors for store operations.
var (
	ErrLoadFailed = errors.New("pattern memory load failed")
	ErrSaveFailed = errors.New("pattern memory save failed")
	ErrCorrupt    = errors.New("pattern memory corrupt")
)

// Backend names accepted by Config.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config selects and locates the pattern-memory backend.
type Config struct {
	Backend string `yaml:"backend,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// DefaultConfig returns the JSON file backend under logs/.
func DefaultConfig() Config {
	return Config{Backend: BackendFile, Path: "logs/pattern_memory.json"}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Backend != "" {
		c.Backend = source.Backend
	}
	if source.Path != "" {
		c.Path = source.Path
	}
}

// NewStore creates a Store from configuration. An empty backend or the
// memory backend yields a fresh in-memory store.
func NewStore(cfg *Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemStore(), nil
	case BackendFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("file backend requires a path")
		}
		return NewFileStore(cfg.Path), nil
	case BackendSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite backend requires a path")
		}
		s, err := OpenSQLiteStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown pattern memory backend %q", cfg.Backend)
	}
}

// normalize drops unknown values and duplicates and sorts by name.
func normalize(patterns []classifier.Pattern) []classifier.Pattern {
	seen := make(map[classifier.Pattern]bool, len(patterns))
	out := make([]classifier.Pattern, 0, len(patterns))
	for _, p := range patterns {
		if !p.Valid() || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func toNames(patterns []classifier.Pattern) []string {
	ps := normalize(patterns)
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = string(p)
	}
	return names
}

func fromNames(names []string) []classifier.Pattern {
	ps := make([]classifier.Pattern, len(names))
	for i, n := range names {
		ps[i] = classifier.Pattern(n)
	}
	return normalize(ps)
}
