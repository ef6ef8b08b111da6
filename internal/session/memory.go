package session

import (
	"sort"

	"github.com/danielpatrickdp/unwind/go-controller/internal/classifier"
)

// Memory is the mutable record of one session's progress. The transcript is
// kept separately by the controller.
type Memory struct {
	// UsedBefore is nil until entry routing answers it.
	UsedBefore       *bool
	OrientationIndex int

	// Explained holds patterns whose long-form mirror has been shown. It is
	// loaded from the pattern store and saved whenever it grows.
	Explained map[classifier.Pattern]bool

	// Current pass through the sensation tree.
	LastReport      string
	LastDomainKey   string
	LastDomainLabel string
	LastRefinement  string
	LastWord        string

	DenseDepth        int
	SuccessfulStays   int
	SpaciousCheckDone bool
	HandoffGiven      bool
}

func newMemory() Memory {
	return Memory{Explained: make(map[classifier.Pattern]bool)}
}

// Snapshot returns a deep copy.
func (m Memory) Snapshot() Memory {
	out := m
	if m.UsedBefore != nil {
		v := *m.UsedBefore
		out.UsedBefore = &v
	}
	out.Explained = make(map[classifier.Pattern]bool, len(m.Explained))
	for p, ok := range m.Explained {
		out.Explained[p] = ok
	}
	return out
}

// ExplainedList returns the explained set sorted by name.
func (m Memory) ExplainedList() []classifier.Pattern {
	out := make([]classifier.Pattern, 0, len(m.Explained))
	for p, ok := range m.Explained {
		if ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// startPass clears the sensation context for a fresh report.
func (m *Memory) startPass(report string) {
	m.LastReport = report
	m.LastDomainKey = ""
	m.LastDomainLabel = ""
	m.LastRefinement = ""
	m.LastWord = ""
	m.DenseDepth = 0
}
