package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// JSONWriter writes each transcript to logs/transcript_YYYYmmdd_HHMMSS.json
// style files under Dir.
type JSONWriter struct {
	Dir string
	Now func() time.Time
}

// NewJSONWriter creates a writer rooted at dir.
func NewJSONWriter(dir string) *JSONWriter {
	return &JSONWriter{Dir: dir, Now: time.Now}
}

func (w *JSONWriter) Write(_ context.Context, _ string, entries []Entry) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	path := filepath.Join(w.Dir, "transcript_"+now().Format("20060102_150405")+".json")

	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
	}
	return path, nil
}
