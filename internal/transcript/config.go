package transcript

import "fmt"

// Backend names accepted by Config.
const (
	BackendNone   = "none"
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config selects where finished transcripts go.
type Config struct {
	Backend string `yaml:"backend,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
	DBPath  string `yaml:"db_path,omitempty"`
}

// DefaultConfig writes JSON files under logs/.
func DefaultConfig() Config {
	return Config{Backend: BackendJSON, Dir: "logs", DBPath: "logs/unwind.db"}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Backend != "" {
		c.Backend = source.Backend
	}
	if source.Dir != "" {
		c.Dir = source.Dir
	}
	if source.DBPath != "" {
		c.DBPath = source.DBPath
	}
}

// NewWriter creates a Writer from configuration.
func NewWriter(cfg *Config) (Writer, error) {
	switch cfg.Backend {
	case BackendNone:
		return Discard{}, nil
	case "", BackendJSON:
		dir := cfg.Dir
		if dir == "" {
			dir = "logs"
		}
		return NewJSONWriter(dir), nil
	case BackendSQLite:
		if cfg.DBPath == "" {
			return nil, fmt.Errorf("sqlite transcript backend requires db_path")
		}
		w, err := OpenSQLiteWriter(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		return nil, fmt.Errorf("unknown transcript backend %q", cfg.Backend)
	}
}
