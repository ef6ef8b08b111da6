// Package scenario replays scripted sessions against the controller. A
// scenario lists typed inputs and the outcome of each timed silence, then
// states what the finished session must look like.
package scenario

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/danielpatrickdp/unwind/go-controller/internal/patternmem"
	"github.com/danielpatrickdp/unwind/go-controller/internal/session"
	"github.com/danielpatrickdp/unwind/go-controller/internal/timedwait"
	"github.com/danielpatrickdp/unwind/go-controller/internal/transcript"
)

// #region types

// Scenario is the JSON fixture shape.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// StartState defaults to mirror_central_view.
	StartState string   `json:"start_state,omitempty"`
	UserInputs []string `json:"user_inputs"`
	// WaitInputs resolve silences in order. null lets the silence complete;
	// a string interrupts it. Once exhausted every silence completes.
	WaitInputs []*string `json:"wait_inputs"`
	Expect     Expect    `json:"expect"`
}

// Expect describes the finished session. Nil and empty fields are not checked.
type Expect struct {
	FinalState      string   `json:"final_state,omitempty"`
	HandoffGiven    *bool    `json:"handoff_given,omitempty"`
	DenseDepth      *int     `json:"dense_depth,omitempty"`
	SuccessfulStays *int     `json:"successful_stays,omitempty"`
	Explained       []string `json:"explained,omitempty"`
	// NoteCounts counts entries of any speaker by note. Zero asserts absence.
	NoteCounts map[string]int `json:"note_counts,omitempty"`
	// LastNotes are the notes of the final system entries, in order.
	LastNotes []string `json:"last_notes,omitempty"`
}

// Result is what a run produced.
type Result struct {
	Name       string
	FinalState session.State
	Memory     session.Memory
	Transcript []transcript.Entry
	Outputs    []string
}

// #endregion types

// #region loading

//go:embed fixtures/*.json
var builtin embed.FS

// Builtin returns the shipped scenarios sorted by name.
func Builtin() ([]*Scenario, error) {
	return loadFS(builtin, "fixtures")
}

// LoadFile reads one scenario from disk.
func LoadFile(p string) (*Scenario, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", p, err)
	}
	return parse(p, data)
}

// LoadDir reads every *.json scenario in dir.
func LoadDir(dir string) ([]*Scenario, error) {
	return loadFS(os.DirFS(dir), ".")
}

func loadFS(fsys fs.FS, dir string) ([]*Scenario, error) {
	names, err := fs.Glob(fsys, path.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	out := make([]*Scenario, 0, len(names))
	for _, n := range names {
		data, err := fs.ReadFile(fsys, n)
		if err != nil {
			return nil, fmt.Errorf("read scenario %s: %w", n, err)
		}
		sc, err := parse(n, data)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func parse(name string, data []byte) (*Scenario, error) {
	var sc Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", name, err)
	}
	if sc.Name == "" {
		sc.Name = path.Base(name)
	}
	return &sc, nil
}

// #endregion loading

// #region run

// Run drives a fresh controller through sc. Pending silences are drained
// before and after every input. Caller options are applied last.
func Run(ctx context.Context, sc *Scenario, opts ...session.Option) (*Result, error) {
	start := session.StateCentralView
	if sc.StartState != "" {
		s, ok := session.ParseState(sc.StartState)
		if !ok {
			return nil, fmt.Errorf("scenario %s: unknown start state %q", sc.Name, sc.StartState)
		}
		start = s
	}

	outcomes := make([]timedwait.Outcome, len(sc.WaitInputs))
	for i, w := range sc.WaitInputs {
		if w != nil {
			outcomes[i] = timedwait.Interrupt(*w)
		}
	}

	base := []session.Option{
		session.WithInitialState(start),
		session.WithWaiter(timedwait.NewScripted(outcomes...)),
		session.WithStore(patternmem.NewMemStore()),
	}
	c := session.New(ctx, append(base, opts...)...)

	res := &Result{Name: sc.Name}
	drain := func() {
		for {
			out, ok := c.ResumeIfWaiting(ctx)
			if !ok {
				return
			}
			res.Outputs = append(res.Outputs, out)
		}
	}

	drain()
	for _, in := range sc.UserInputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res.Outputs = append(res.Outputs, c.Step(ctx, in))
		drain()
	}

	res.FinalState = c.State()
	res.Memory = c.Memory()
	res.Transcript = c.Transcript()
	return res, nil
}

// #endregion run

// #region check

// Check compares the result with e and returns one line per mismatch.
func (r *Result) Check(e Expect) []string {
	var bad []string
	if e.FinalState != "" && r.FinalState.String() != e.FinalState {
		bad = append(bad, fmt.Sprintf("final state: got %s, want %s", r.FinalState, e.FinalState))
	}
	if e.HandoffGiven != nil && r.Memory.HandoffGiven != *e.HandoffGiven {
		bad = append(bad, fmt.Sprintf("handoff given: got %v, want %v", r.Memory.HandoffGiven, *e.HandoffGiven))
	}
	if e.DenseDepth != nil && r.Memory.DenseDepth != *e.DenseDepth {
		bad = append(bad, fmt.Sprintf("dense depth: got %d, want %d", r.Memory.DenseDepth, *e.DenseDepth))
	}
	if e.SuccessfulStays != nil && r.Memory.SuccessfulStays != *e.SuccessfulStays {
		bad = append(bad, fmt.Sprintf("successful stays: got %d, want %d", r.Memory.SuccessfulStays, *e.SuccessfulStays))
	}
	if len(e.Explained) > 0 {
		got := r.Memory.ExplainedList()
		names := make([]string, len(got))
		for i, p := range got {
			names[i] = string(p)
		}
		if fmt.Sprint(names) != fmt.Sprint(e.Explained) {
			bad = append(bad, fmt.Sprintf("explained: got %v, want %v", names, e.Explained))
		}
	}

	if len(e.NoteCounts) > 0 {
		counts := r.NoteCounts()
		keys := make([]string, 0, len(e.NoteCounts))
		for k := range e.NoteCounts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if counts[k] != e.NoteCounts[k] {
				bad = append(bad, fmt.Sprintf("note %q: got %d, want %d", k, counts[k], e.NoteCounts[k]))
			}
		}
	}

	if len(e.LastNotes) > 0 {
		sys := r.SystemNotes()
		if len(sys) < len(e.LastNotes) {
			bad = append(bad, fmt.Sprintf("last notes: only %d system entries", len(sys)))
		} else if tail := sys[len(sys)-len(e.LastNotes):]; fmt.Sprint(tail) != fmt.Sprint(e.LastNotes) {
			bad = append(bad, fmt.Sprintf("last notes: got %v, want %v", tail, e.LastNotes))
		}
	}
	return bad
}

// NoteCounts tallies transcript notes across both speakers.
func (r *Result) NoteCounts() map[string]int {
	out := make(map[string]int)
	for _, e := range r.Transcript {
		if e.Note != "" {
			out[e.Note]++
		}
	}
	return out
}

// SystemNotes returns the note of every system entry in order.
func (r *Result) SystemNotes() []string {
	var out []string
	for _, e := range r.Transcript {
		if e.Speaker == transcript.SpeakerSystem {
			out = append(out, e.Note)
		}
	}
	return out
}

// #endregion check
