// Package transcript records the ordered prompts and utterances of one
// session and exports them when the session ends.
package transcript

import (
	"context"
	"errors"
	"sync"
	"time"
)

// #region entry

// Speaker values.
const (
	SpeakerSystem = "system"
	SpeakerUser   = "user"
)

// Entry is one logged prompt or utterance.
type Entry struct {
	Speaker string    `json:"who"`
	Text    string    `json:"text"`
	Note    string    `json:"note,omitempty"`
	At      time.Time `json:"at"`
}

// #endregion entry

// #region log

// Log is an append-only, ordered list of entries.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

// NewLog creates an empty log stamped with the wall clock.
func NewLog() *Log {
	return &Log{now: time.Now}
}

// Append adds an entry. A zero At is stamped with the current time.
func (l *Log) Append(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e.At.IsZero() {
		now := time.Now
		if l.now != nil {
			now = l.now
		}
		e.At = now().UTC()
	}
	l.entries = append(l.entries, e)
}

// Entries returns a copy of every entry in append order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// #endregion log

// #region writer

// ErrWriteFailed wraps every export failure.
var ErrWriteFailed = errors.New("transcript write failed")

// Writer exports a finished transcript and returns where it went.
type Writer interface {
	Write(ctx context.Context, sessionID string, entries []Entry) (string, error)
}

// Discard is a Writer that keeps nothing.
type Discard struct{}

func (Discard) Write(context.Context, string, []Entry) (string, error) {
	return "", nil
}

// #endregion writer
