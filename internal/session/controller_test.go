package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/danielpatrickdp/unwind/go-controller/internal/classifier"
	"github.com/danielpatrickdp/unwind/go-controller/internal/content"
	"github.com/danielpatrickdp/unwind/go-controller/internal/patternmem"
	"github.com/danielpatrickdp/unwind/go-controller/internal/timedwait"
	"github.com/danielpatrickdp/unwind/go-controller/internal/transcript"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
)

// #region helpers

func newCtrl(t *testing.T, opts ...Option) *Controller {
	t.Helper()
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	return New(context.Background(), opts...)
}

func step(c *Controller, text string) string {
	return c.Step(context.Background(), text)
}

func resume(t *testing.T, c *Controller) string {
	t.Helper()
	out, ok := c.ResumeIfWaiting(context.Background())
	if !ok {
		t.Fatalf("expected a pending silence in state %s", c.State())
	}
	return out
}

func systemNotes(c *Controller) []string {
	var out []string
	for _, e := range c.Transcript() {
		if e.Speaker == transcript.SpeakerSystem {
			out = append(out, e.Note)
		}
	}
	return out
}

func lastEntry(c *Controller) transcript.Entry {
	es := c.Transcript()
	return es[len(es)-1]
}

func wantState(t *testing.T, c *Controller, want State) {
	t.Helper()
	if c.State() != want {
		t.Fatalf("state: got %s, want %s", c.State(), want)
	}
}

// toFork walks a fresh central-view report through the neutral domain to the
// sensory fork.
func toFork(t *testing.T, c *Controller) {
	t.Helper()
	step(c, "gut clench")
	step(c, "10")
	wantState(t, c, StateMirrorSilence)
	resume(t, c)
	wantState(t, c, StateSensoryFork)
}

// #endregion helpers

// #region entry-and-orientation

func TestStart_LogsUsedBefore(t *testing.T) {
	c := newCtrl(t)
	if got := c.Start(context.Background()); got != content.UsedBefore {
		t.Fatalf("Start: got %q", got)
	}
	e := lastEntry(c)
	if e.Speaker != transcript.SpeakerSystem || e.Note != "start" {
		t.Errorf("unexpected start entry %+v", e)
	}
	if e.At.IsZero() {
		t.Error("entries must be timestamped")
	}
}

func TestEntryRouting(t *testing.T) {
	tests := []struct {
		name      string
		inputs    []string
		wantState State
		wantOut   string
	}{
		{"new-user", []string{"no"}, StateOrientation, content.OrientationScreens()[0]},
		{"new-user-short", []string{"N"}, StateOrientation, content.OrientationScreens()[0]},
		{"returning", []string{"yes"}, StateReturningChoice, content.ReturningChoice},
		{"invalid", []string{"maybe"}, StateUsedBefore, content.UsedBefore},
		{"review", []string{"y", "1"}, StateOrientation, content.OrientationScreens()[0]},
		{"skip-to-mirror", []string{"y", "2"}, StateCentralView, content.CentralView},
		{"returning-invalid", []string{"y", "3"}, StateReturningChoice, content.ReturningChoice},
		// Done keywords are ordinary input during entry routing.
		{"done-at-entry", []string{"done"}, StateUsedBefore, content.UsedBefore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCtrl(t)
			c.Start(context.Background())
			var out string
			for _, in := range tt.inputs {
				out = step(c, in)
			}
			wantState(t, c, tt.wantState)
			if out != tt.wantOut {
				t.Errorf("output: got %q, want %q", out, tt.wantOut)
			}
		})
	}
}

func TestOrientation_WalkAndSafetyGate(t *testing.T) {
	c := newCtrl(t)
	screens := content.OrientationScreens()

	step(c, "no")
	if got := step(c, "next"); got != screens[1] {
		t.Fatalf("expected safety screen")
	}
	// Safety screen only advances on "yes".
	for _, in := range []string{"ok", "done", "y", "I get it"} {
		if got := step(c, in); got != screens[1] {
			t.Fatalf("input %q should repeat the safety screen", in)
		}
		if c.Memory().OrientationIndex != 1 {
			t.Fatalf("input %q moved the orientation cursor", in)
		}
	}
	if lastEntry(c).Note != "repeat_safety" {
		t.Errorf("note: got %q", lastEntry(c).Note)
	}
	if got := step(c, "YES"); got != screens[2] {
		t.Fatalf("expected screen 3 after yes")
	}

	// Remaining screens advance on any input, including pattern language.
	for i := 3; i < len(screens); i++ {
		if got := step(c, "what happens now"); got != screens[i] {
			t.Fatalf("screen %d not shown", i)
		}
	}
	if got := step(c, "yes"); got != content.CentralView {
		t.Fatalf("expected central view after last screen, got %q", got)
	}
	wantState(t, c, StateCentralView)
	if c.Memory().OrientationIndex != len(screens) {
		t.Errorf("cursor: got %d, want %d", c.Memory().OrientationIndex, len(screens))
	}
	if lastEntry(c).Note != "mirror_after_orientation" {
		t.Errorf("note: got %q", lastEntry(c).Note)
	}
}

func TestOrientation_QuitAtSafety(t *testing.T) {
	c := newCtrl(t)
	step(c, "no")
	step(c, "yes")
	if got := step(c, "quit"); got != content.Completion {
		t.Fatalf("got %q", got)
	}
	wantState(t, c, StateExit)
	if c.Memory().HandoffGiven {
		t.Error("quit must not give the handoff")
	}
}

func TestOrientation_CountIsData(t *testing.T) {
	c := newCtrl(t, WithOrientation([]string{"one", "safety", "three"}))
	if got := step(c, "no"); got != "one" {
		t.Fatalf("got %q", got)
	}
	step(c, "x")
	if got := step(c, "x"); got != "safety" {
		t.Fatalf("safety gate should hold, got %q", got)
	}
	if got := step(c, "yes"); got != "three" {
		t.Fatalf("got %q", got)
	}
	if got := step(c, "x"); got != content.CentralView {
		t.Fatalf("got %q", got)
	}

	empty := newCtrl(t, WithOrientation(nil))
	if got := step(empty, "no"); got != content.CentralView {
		t.Fatalf("empty orientation should go straight to mirror mode, got %q", got)
	}
	wantState(t, empty, StateCentralView)
}

// #endregion entry-and-orientation

// #region global-handling

func TestCrisis_EndsSessionFromAnyState(t *testing.T) {
	for s := State(0); s < stateCount; s++ {
		t.Run(s.String(), func(t *testing.T) {
			c := newCtrl(t, WithInitialState(s))
			c.mem.LastDomainKey = "pressure"
			got := step(c, "Sometimes I think about suicide.")
			if got != content.Completion {
				t.Fatalf("got %q, want closing message", got)
			}
			wantState(t, c, StateExit)
		})
	}
}

func TestCrisis_DuringSilence(t *testing.T) {
	c := newCtrl(t,
		WithInitialState(StateMirrorSilence),
		WithWaiter(timedwait.NewScripted(timedwait.Interrupt("I want to hurt myself"))))
	if got := resume(t, c); got != content.Completion {
		t.Fatalf("got %q", got)
	}
	wantState(t, c, StateExit)
	if lastEntry(c).Note != "crisis_exit" {
		t.Errorf("note: got %q", lastEntry(c).Note)
	}
}

func TestQuit_ClosingOnly(t *testing.T) {
	c := newCtrl(t, WithInitialState(StateCentralView))
	if got := step(c, "Exit"); got != content.Completion {
		t.Fatalf("got %q", got)
	}
	wantState(t, c, StateExit)
	if c.Memory().HandoffGiven {
		t.Error("quit must not give the handoff")
	}
	if lastEntry(c).Note != "exit" {
		t.Errorf("note: got %q", lastEntry(c).Note)
	}
}

func TestDone_FinishesFromMirrorStates(t *testing.T) {
	states := []State{
		StateCentralView, StateDomain, StateRefinement, StateOneWord, StateClenchChoice,
		StateSensoryFork, StateDenseContinueOrStop, StateWhatsHere,
		StateSpaciousnessCheck1, StateSpaciousnessCheck2,
	}
	for _, s := range states {
		t.Run(s.String(), func(t *testing.T) {
			c := newCtrl(t, WithInitialState(s))
			c.mem.LastDomainKey = "pressure"
			got := step(c, "that's enough")
			want := content.OffAppHandoff + "\n\n" + content.Completion
			if got != want {
				t.Fatalf("got %q", got)
			}
			wantState(t, c, StateExit)
		})
	}
}

func TestFinish_HandoffOnlyOnce(t *testing.T) {
	c := newCtrl(t, WithInitialState(StateCentralView))
	step(c, "done")
	if !c.Memory().HandoffGiven {
		t.Fatal("handoff should be recorded")
	}
	notes := systemNotes(c)
	if diff := cmp.Diff([]string{"offsession_handoff", "completion"}, notes); diff != "" {
		t.Errorf("notes (-want +got):\n%s", diff)
	}

	// Stepping after the end only repeats the closing message.
	if got := step(c, "done"); got != content.Completion {
		t.Fatalf("after exit: got %q", got)
	}
	handoffs := 0
	for _, e := range c.Transcript() {
		if e.Text == content.OffAppHandoff {
			handoffs++
		}
	}
	if handoffs != 1 {
		t.Errorf("handoff shown %d times", handoffs)
	}

	again := newCtrl(t, WithInitialState(StateSensoryFork))
	again.mem.HandoffGiven = true
	if got := step(again, "done"); got != content.Completion {
		t.Errorf("second termination should be closing only, got %q", got)
	}
}

// #endregion global-handling

// #region patterns

func TestPatternMirror_EveryTriggerSet(t *testing.T) {
	for _, r := range classifier.Rules() {
		t.Run(string(r.Pattern), func(t *testing.T) {
			store := patternmem.NewMemStore()
			c := newCtrl(t, WithInitialState(StateCentralView), WithStore(store))
			phrase := r.Triggers[0]

			first := step(c, phrase)
			if first != content.PatternFirstTime(r.Pattern) {
				t.Fatalf("first mirror: got %q", first)
			}
			if !strings.Contains(first, r.Pattern.Label()) {
				t.Errorf("first mirror missing label %q", r.Pattern.Label())
			}
			wantState(t, c, StateCentralView)
			if c.Memory().LastReport != "" {
				t.Error("a mirrored utterance must not be stored as a report")
			}

			second := step(c, phrase)
			if second != content.PatternOneWord(r.Pattern) {
				t.Fatalf("second mirror: got %q", second)
			}
			wantState(t, c, StateCentralView)

			if store.Saves() != 1 {
				t.Errorf("expected one save, got %d", store.Saves())
			}
			saved, _ := store.Load(context.Background())
			if diff := cmp.Diff([]classifier.Pattern{r.Pattern}, saved); diff != "" {
				t.Errorf("persisted set (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPatternMirror_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		text string
		want classifier.Pattern
	}{
		{"destination", "what happens now", classifier.PatternDestinationSeeking},
		{"narrative-with-emotion", "my boss is getting on my nerves and I am so angry", classifier.PatternStory},
		{"insight-over-sensation", "I get it now, my chest feels tight", classifier.PatternClaimingInsight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCtrl(t, WithInitialState(StateCentralView))
			got := step(c, tt.text)
			if got != content.PatternFirstTime(tt.want) {
				t.Fatalf("got %q", got)
			}
			wantState(t, c, StateCentralView)
		})
	}
}

func TestPatternMirror_LoadedFromStore(t *testing.T) {
	c := newCtrl(t, WithInitialState(StateCentralView),
		WithStore(patternmem.NewMemStore(classifier.PatternStory)))
	if got := step(c, "I went for a walk"); got != content.PatternOneWord(classifier.PatternStory) {
		t.Fatalf("got %q", got)
	}
}

func TestPatternMirror_StoreFailuresAreSwallowed(t *testing.T) {
	store := patternmem.NewMemStore()
	store.LoadErr = patternmem.ErrLoadFailed
	store.SaveErr = patternmem.ErrSaveFailed
	c := newCtrl(t, WithInitialState(StateCentralView), WithStore(store))

	if got := step(c, "what happens now"); got != content.PatternFirstTime(classifier.PatternDestinationSeeking) {
		t.Fatalf("first: got %q", got)
	}
	// In-memory state still remembers the explanation.
	if got := step(c, "what happens now"); got != content.PatternOneWord(classifier.PatternDestinationSeeking) {
		t.Fatalf("second: got %q", got)
	}
}

func TestPatternMirror_OneWordExemption(t *testing.T) {
	c := newCtrl(t, WithInitialState(StateRefinement))
	c.mem.LastDomainKey, c.mem.LastDomainLabel = "intensity", "Intensity"
	step(c, "7")
	wantState(t, c, StateOneWord)

	// A single word is the label even when it is trigger language.
	got := step(c, "breakthrough")
	wantState(t, c, StateClenchChoice)
	if !strings.HasPrefix(got, content.RemoveWord("breakthrough")) {
		t.Errorf("got %q", got)
	}

	c2 := newCtrl(t, WithInitialState(StateOneWord))
	if got := step(c2, "my boss is the problem"); got != content.PatternFirstTime(classifier.PatternStory) {
		t.Fatalf("multi-word story should be mirrored, got %q", got)
	}
	wantState(t, c2, StateCentralView)
}

func TestPatternMirror_ExemptStatesRunOwnLogic(t *testing.T) {
	c := newCtrl(t, WithInitialState(StateSensoryFork))
	// "spacious" is a floating trigger, but the fork reads it as a choice.
	step(c, "more spacious")
	wantState(t, c, StateSpaciousSilence)
}

// #endregion patterns

// #region mirror-flow

func TestHappyPath(t *testing.T) {
	waiter := timedwait.NewScripted(timedwait.Timeout(), timedwait.Timeout())
	c := newCtrl(t, WithInitialState(StateCentralView), WithWaiter(waiter))
	ctx := context.Background()

	step(c, "gut clench")
	wantState(t, c, StateDomain)
	step(c, "9")
	wantState(t, c, StateRefinement)
	if got := step(c, "7"); got != content.EchoAndWord("Steady", "Intensity") {
		t.Fatalf("echo: got %q", got)
	}
	step(c, "tight")
	wantState(t, c, StateClenchChoice)
	if got := step(c, "1"); got != content.ClenchStay {
		t.Fatalf("clench: got %q", got)
	}
	if got := resume(t, c); got != content.SensoryFork {
		t.Fatalf("after silence: got %q", got)
	}
	if got := step(c, "2"); got != content.SpaciousStay {
		t.Fatalf("fork: got %q", got)
	}
	if got := resume(t, c); got != content.WhatsHereNow {
		t.Fatalf("after spacious silence: got %q", got)
	}
	if _, ok := c.ResumeIfWaiting(ctx); ok {
		t.Fatal("no silence should be pending")
	}
	step(c, "done")

	wantState(t, c, StateExit)
	m := c.Memory()
	if !m.HandoffGiven || m.SuccessfulStays != 1 || m.DenseDepth != 0 {
		t.Errorf("unexpected memory %+v", m)
	}
	if m.LastReport != "gut clench" || m.LastDomainKey != "intensity" || m.LastRefinement != "Steady" || m.LastWord != "tight" {
		t.Errorf("sensation context %+v", m)
	}
	notes := systemNotes(c)
	if diff := cmp.Diff([]string{"offsession_handoff", "completion"}, notes[len(notes)-2:]); diff != "" {
		t.Errorf("final notes (-want +got):\n%s", diff)
	}
	es := c.Transcript()
	if es[len(es)-2].Text != content.OffAppHandoff || es[len(es)-1].Text != content.Completion {
		t.Error("final two entries must be the handoff then the closing message")
	}
	want := []time.Duration{75 * time.Second, 60 * time.Second}
	if diff := cmp.Diff(want, waiter.Waited()); diff != "" {
		t.Errorf("waited (-want +got):\n%s", diff)
	}
}

func TestNeutralDomain_SkipsRefinement(t *testing.T) {
	c := newCtrl(t, WithInitialState(StateCentralView))
	step(c, "gut clench")
	if got := step(c, "10"); got != content.StayWhatsHere {
		t.Fatalf("got %q", got)
	}
	wantState(t, c, StateMirrorSilence)
	if lastEntry(c).Note != "neutral_skip" {
		t.Errorf("note: got %q", lastEntry(c).Note)
	}
}

func TestRefinement_Skip(t *testing.T) {
	c := newCtrl(t, WithInitialState(StateCentralView))
	step(c, "gut clench")
	step(c, "texture")
	got := step(c, "skip")
	wantState(t, c, StateOneWord)
	if !strings.HasPrefix(got, "Notice that texture. ") {
		t.Errorf("got %q", got)
	}
	if lastEntry(c).Note != "echo_and_word_skipped" {
		t.Errorf("note: got %q", lastEntry(c).Note)
	}
}

func TestClenchChoice_Encodings(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", content.ClenchStay}, {"yes", content.ClenchStay}, {"y", content.ClenchStay},
		{"2", content.ClenchStay}, {"i think so", content.ClenchStay}, {"sort of", content.ClenchStay},
		{"maybe yes", content.ClenchStay}, {"think so", content.ClenchStay},
		{"3", content.RawSensation}, {"no", content.RawSensation}, {"not sure", content.RawSensation},
		{"unclear", content.RawSensation}, {"idk", content.RawSensation}, {"maybe", content.RawSensation},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c := newCtrl(t, WithInitialState(StateClenchChoice))
			if got := step(c, tt.in); got != tt.want {
				t.Fatalf("got %q", got)
			}
			wantState(t, c, StateMirrorSilence)
		})
	}
}

func TestInvalidInput_IsIdempotent(t *testing.T) {
	tests := []struct {
		state State
		input string
	}{
		{StateUsedBefore, "maybe"},
		{StateReturningChoice, "3"},
		{StateDomain, "banana"},
		{StateDomain, ""},
		{StateRefinement, "banana"},
		{StateClenchChoice, "perhaps"},
		{StateSensoryFork, "purple"},
		{StateSpaciousnessCheck1, "perhaps"},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			c := newCtrl(t, WithInitialState(tt.state))
			c.mem.LastDomainKey, c.mem.LastDomainLabel = "pressure", "Pressure / Force"
			before := c.Memory()
			want := c.Prompt()

			for i := 0; i < 3; i++ {
				if got := step(c, tt.input); got != want {
					t.Fatalf("attempt %d: got %q, want %q", i, got, want)
				}
				wantState(t, c, tt.state)
			}
			if diff := cmp.Diff(before, c.Memory()); diff != "" {
				t.Errorf("memory mutated (-before +after):\n%s", diff)
			}
		})
	}
}

func TestDenseLadder(t *testing.T) {
	waiter := timedwait.NewScripted()
	c := newCtrl(t, WithInitialState(StateCentralView), WithWaiter(waiter))
	toFork(t, c)

	inputs := []string{"1", "3", "tighter"}
	for i, in := range inputs {
		layer := i + 1
		if got := step(c, in); got != content.DenseLayer(layer) {
			t.Fatalf("layer %d: wrong instruction", layer)
		}
		wantState(t, c, denseSilenceFor(layer))
		if c.Memory().DenseDepth != layer {
			t.Fatalf("depth: got %d, want %d", c.Memory().DenseDepth, layer)
		}
		if got := resume(t, c); got != content.SensoryFork {
			t.Fatalf("layer %d silence should return to the fork", layer)
		}
	}

	if got := step(c, "no change"); got != content.DenseLayer(4) {
		t.Fatal("expected layer 4")
	}
	wantState(t, c, StateDenseSilence4)
	if got := resume(t, c); got != content.ContinueOrStop {
		t.Fatalf("after layer 4: got %q", got)
	}
	if got := step(c, "keep going now"); got != content.CentralView {
		t.Fatalf("continue: got %q", got)
	}
	wantState(t, c, StateCentralView)
	if c.Memory().DenseDepth != 0 {
		t.Errorf("continue must reset depth, got %d", c.Memory().DenseDepth)
	}

	want := []string{"dense_layer_1", "sensory_fork_after_dense1", "dense_layer_2", "sensory_fork_after_dense2",
		"dense_layer_3", "sensory_fork_after_dense3", "dense_layer_4", "continue_or_stop", "continue_after_dense4"}
	notes := systemNotes(c)
	if diff := cmp.Diff(want, notes[len(notes)-len(want):]); diff != "" {
		t.Errorf("notes (-want +got):\n%s", diff)
	}
}

func TestDenseLadder_SaturatesAtFour(t *testing.T) {
	c := newCtrl(t, WithInitialState(StateSensoryFork))
	c.mem.DenseDepth = 4
	if got := step(c, "1"); got != content.DenseLayer(4) {
		t.Fatal("depth 5 should reuse layer 4")
	}
	wantState(t, c, StateDenseSilence4)
	if c.Memory().DenseDepth != 5 {
		t.Errorf("depth: got %d", c.Memory().DenseDepth)
	}
	if lastEntry(c).Note != "dense_layer_4" {
		t.Errorf("note: got %q", lastEntry(c).Note)
	}
}

func TestContinueOrStop(t *testing.T) {
	tests := []struct {
		in        string
		wantState State
		handoff   bool
	}{
		{"stop", StateExit, true},
		{"no thanks", StateExit, true},
		{"I've had enough", StateExit, true},
		{"quit", StateExit, false},
		{"continue", StateCentralView, false},
		{"now", StateCentralView, false},
		{"i know", StateCentralView, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c := newCtrl(t, WithInitialState(StateDenseContinueOrStop))
			c.mem.DenseDepth = 4
			step(c, tt.in)
			wantState(t, c, tt.wantState)
			if c.Memory().HandoffGiven != tt.handoff {
				t.Errorf("handoff: got %v", c.Memory().HandoffGiven)
			}
		})
	}
}

func TestSpaciousResetsDepthAndCounts(t *testing.T) {
	c := newCtrl(t, WithInitialState(StateSensoryFork))
	c.mem.DenseDepth = 2
	step(c, "less dense")
	wantState(t, c, StateSpaciousSilence)
	m := c.Memory()
	if m.DenseDepth != 0 || m.SuccessfulStays != 1 {
		t.Errorf("got depth %d stays %d", m.DenseDepth, m.SuccessfulStays)
	}
}

func TestWhatsHere_NewReport(t *testing.T) {
	c := newCtrl(t, WithInitialState(StateWhatsHere))
	c.mem.DenseDepth = 3
	c.mem.LastDomainKey = "pressure"
	if got := step(c, "warm in my belly"); got != content.DomainMenu() {
		t.Fatalf("got %q", got)
	}
	wantState(t, c, StateDomain)
	m := c.Memory()
	if m.LastReport != "warm in my belly" || m.DenseDepth != 0 || m.LastDomainKey != "" {
		t.Errorf("unexpected memory %+v", m)
	}
}

func TestLayer7_OneShot(t *testing.T) {
	waiter := timedwait.NewScripted()
	c := newCtrl(t, WithInitialState(StateCentralView), WithWaiter(waiter),
		WithDurations(Durations{Check: 5 * time.Second}))

	toFork(t, c)
	stays := 0
	for cycle := 1; cycle <= 2; cycle++ {
		step(c, "2")
		if got := resume(t, c); got != content.WhatsHereNow {
			t.Fatalf("cycle %d: got %q", cycle, got)
		}
		if c.Memory().SuccessfulStays <= stays {
			t.Fatal("stays must increase")
		}
		stays = c.Memory().SuccessfulStays
		step(c, "warm in my belly")
		step(c, "10")
		resume(t, c)
		wantState(t, c, StateSensoryFork)
	}

	step(c, "2")
	if got := resume(t, c); got != content.SpaciousCheck1 {
		t.Fatalf("third stay should trigger the check, got %q", got)
	}
	if !c.Memory().SpaciousCheckDone {
		t.Fatal("gate should be set")
	}
	if got := step(c, "1"); got != content.SpaciousCheck2 {
		t.Fatalf("got %q", got)
	}
	if got := step(c, "just happening"); got != content.CentralView {
		t.Fatalf("check 2 answer should run the silence and return to central view, got %q", got)
	}
	wantState(t, c, StateCentralView)
	waited := waiter.Waited()
	if waited[len(waited)-1] != 5*time.Second {
		t.Errorf("check silence used %v", waited[len(waited)-1])
	}

	// A fourth stay never triggers the check again.
	toFork(t, c)
	step(c, "2")
	if got := resume(t, c); got != content.WhatsHereNow {
		t.Fatalf("check must not repeat, got %q", got)
	}
	if c.Memory().SuccessfulStays != 4 {
		t.Errorf("stays: got %d", c.Memory().SuccessfulStays)
	}
}

func TestLayer7_OnlyContraction(t *testing.T) {
	for _, in := range []string{"2", "3", "not sure"} {
		t.Run(in, func(t *testing.T) {
			c := newCtrl(t, WithInitialState(StateSpaciousnessCheck1))
			if got := step(c, in); got != content.SpaciousCheckOK {
				t.Fatalf("got %q", got)
			}
			wantState(t, c, StateMirrorSilence)
		})
	}
}

// #endregion mirror-flow

// #region silences

func TestSilence_Interruptions(t *testing.T) {
	tests := []struct {
		name      string
		state     State
		text      string
		wantState State
		wantOut   string
		wantNote  string
	}{
		{"pattern", StateMirrorSilence, "nothing is happening", StateCentralView,
			content.PatternFirstTime(classifier.PatternDestinationSeeking), "during_silence"},
		{"sensation-falls-back", StateDenseSilence2, "warm in my chest", StateCentralView,
			content.CentralView, "during_dense_silence_2"},
		{"done", StateSpaciousSilence, "done", StateExit,
			content.OffAppHandoff + "\n\n" + content.Completion, "during_spacious_silence"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCtrl(t, WithInitialState(tt.state),
				WithWaiter(timedwait.NewScripted(timedwait.Interrupt(tt.text))))
			if got := resume(t, c); got != tt.wantOut {
				t.Fatalf("got %q", got)
			}
			wantState(t, c, tt.wantState)
			for _, e := range c.Transcript() {
				if e.Speaker == transcript.SpeakerUser {
					if e.Note != tt.wantNote || e.Text != tt.text {
						t.Errorf("user entry %+v, want note %q", e, tt.wantNote)
					}
				}
			}
		})
	}
}

func TestSilence_EmptyInterruptionAndErrorsComplete(t *testing.T) {
	providers := map[string]timedwait.Provider{
		"blank": timedwait.NewScripted(timedwait.Interrupt("   ")),
		"error": timedwait.Func(func(context.Context, string, time.Duration) (string, bool, error) {
			return "", false, errors.New("tty gone")
		}),
	}
	for name, p := range providers {
		t.Run(name, func(t *testing.T) {
			c := newCtrl(t, WithInitialState(StateMirrorSilence), WithWaiter(p))
			if got := resume(t, c); got != content.SensoryFork {
				t.Fatalf("got %q", got)
			}
			if len(c.Transcript()) != 1 {
				t.Errorf("only the fork prompt should be logged, got %d entries", len(c.Transcript()))
			}
		})
	}
}

func TestResumeIfWaiting_NotWaiting(t *testing.T) {
	c := newCtrl(t, WithInitialState(StateCentralView))
	out, ok := c.ResumeIfWaiting(context.Background())
	if ok || out != "" {
		t.Fatalf("got (%q, %v)", out, ok)
	}
	if len(c.Transcript()) != 0 {
		t.Error("nothing should be logged")
	}
}

func TestDispatch_RecoversFromPanic(t *testing.T) {
	boom := timedwait.Func(func(context.Context, string, time.Duration) (string, bool, error) {
		panic("waiter exploded")
	})
	c := newCtrl(t, WithInitialState(StateSpaciousnessCheck2), WithWaiter(boom))
	if got := step(c, "anything"); got != content.CentralView {
		t.Fatalf("got %q", got)
	}
	wantState(t, c, StateCentralView)
	if lastEntry(c).Note != "fallback" {
		t.Errorf("note: got %q", lastEntry(c).Note)
	}
}

// #endregion silences

// #region identity

func TestSessionID(t *testing.T) {
	c := newCtrl(t)
	id, err := uuid.Parse(c.SessionID())
	if err != nil {
		t.Fatalf("session id %q: %v", c.SessionID(), err)
	}
	if id.Version() != 7 {
		t.Errorf("expected UUIDv7, got version %d", id.Version())
	}
	if got := newCtrl(t, WithSessionID("fixed")).SessionID(); got != "fixed" {
		t.Errorf("WithSessionID: got %q", got)
	}
}

func TestExport(t *testing.T) {
	c := newCtrl(t, WithSessionID("s1"))
	c.Start(context.Background())
	step(c, "no")

	var gotID string
	var gotEntries []transcript.Entry
	w := writerFunc(func(_ context.Context, id string, es []transcript.Entry) (string, error) {
		gotID, gotEntries = id, es
		return "mem://" + id, nil
	})
	loc, err := c.Export(context.Background(), w)
	if err != nil || loc != "mem://s1" || gotID != "s1" {
		t.Fatalf("Export = %q, %v (id %q)", loc, err, gotID)
	}
	speakers := make([]string, len(gotEntries))
	for i, e := range gotEntries {
		speakers[i] = e.Speaker
	}
	want := []string{transcript.SpeakerSystem, transcript.SpeakerUser, transcript.SpeakerSystem}
	if diff := cmp.Diff(want, speakers); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

type writerFunc func(context.Context, string, []transcript.Entry) (string, error)

func (f writerFunc) Write(ctx context.Context, id string, es []transcript.Entry) (string, error) {
	return f(ctx, id, es)
}

// #endregion identity
