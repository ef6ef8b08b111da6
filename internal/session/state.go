package session

import (
	"fmt"
	"time"
)

// State is the controller's only control-flow cursor.
type State int

// #region states
const (
	// Entry routing
	StateUsedBefore State = iota
	StateReturningChoice

	StateOrientation

	// Mirror mode
	StateCentralView
	StateDomain
	StateRefinement
	StateOneWord
	StateClenchChoice
	StateMirrorSilence
	StateSensoryFork

	// Dense ladder
	StateDenseSilence1
	StateDenseSilence2
	StateDenseSilence3
	StateDenseSilence4
	StateDenseContinueOrStop

	// Spacious path and the late-session check
	StateSpaciousSilence
	StateWhatsHere
	StateSpaciousnessCheck1
	StateSpaciousnessCheck2
	StateSpaciousnessSilence

	StateExit

	stateCount
)

// #endregion states

// #region capabilities

// silenceKind picks which configured duration a silence uses.
type silenceKind int

const (
	noSilence silenceKind = iota
	mainSilence
	denseSilence
	spaciousSilence
	checkSilence
)

// stateInfo is the per-state capability row.
type stateInfo struct {
	name string
	// exempt disables escape-pattern interception. These states accept
	// short fixed tokens.
	exempt bool
	// entry marks entry routing and orientation, where done keywords are
	// ordinary input.
	entry   bool
	silence silenceKind
	// interruptNote labels a user entry that arrived during this silence.
	interruptNote string
}

var stateTable = [stateCount]stateInfo{
	StateUsedBefore:          {name: "route_used_before", exempt: true, entry: true},
	StateReturningChoice:     {name: "route_returning_choice", exempt: true, entry: true},
	StateOrientation:         {name: "orientation_screen", exempt: true, entry: true},
	StateCentralView:         {name: "mirror_central_view"},
	StateDomain:              {name: "mirror_domain", exempt: true},
	StateRefinement:          {name: "mirror_refinement", exempt: true},
	StateOneWord:             {name: "mirror_one_word"},
	StateClenchChoice:        {name: "mirror_clench_choice", exempt: true},
	StateMirrorSilence:       {name: "mirror_silence", silence: mainSilence, interruptNote: "during_silence"},
	StateSensoryFork:         {name: "mirror_sensory_fork", exempt: true},
	StateDenseSilence1:       {name: "dense_silence_1", silence: denseSilence, interruptNote: "during_dense_silence_1"},
	StateDenseSilence2:       {name: "dense_silence_2", silence: denseSilence, interruptNote: "during_dense_silence_2"},
	StateDenseSilence3:       {name: "dense_silence_3", silence: denseSilence, interruptNote: "during_dense_silence_3"},
	StateDenseSilence4:       {name: "dense_silence_4", silence: denseSilence, interruptNote: "during_dense_silence_4"},
	StateDenseContinueOrStop: {name: "dense_continue_or_stop", exempt: true},
	StateSpaciousSilence:     {name: "spacious_silence", silence: spaciousSilence, interruptNote: "during_spacious_silence"},
	StateWhatsHere:           {name: "mirror_spacious_whats_here"},
	StateSpaciousnessCheck1:  {name: "spaciousness_check_1", exempt: true},
	StateSpaciousnessCheck2:  {name: "spaciousness_check_2", exempt: true},
	StateSpaciousnessSilence: {name: "spaciousness_silence", silence: checkSilence, interruptNote: "during_spaciousness_check_silence"},
	StateExit:                {name: "exit"},
}

func (s State) info() stateInfo {
	if s < 0 || s >= stateCount {
		return stateInfo{name: fmt.Sprintf("state(%d)", int(s))}
	}
	return stateTable[s]
}

func (s State) String() string { return s.info().name }

// EscapeExempt reports whether pattern interception is suppressed in s.
func (s State) EscapeExempt() bool { return s.info().exempt }

// Waiting reports whether s is a timed silence driven by ResumeIfWaiting.
func (s State) Waiting() bool { return s.info().silence != noSilence }

// ParseState resolves a state name as returned by String.
func ParseState(name string) (State, bool) {
	for i := State(0); i < stateCount; i++ {
		if stateTable[i].name == name {
			return i, true
		}
	}
	return 0, false
}

// denseSilenceFor returns the silence state for a 1-based ladder layer.
func denseSilenceFor(layer int) State {
	switch layer {
	case 1:
		return StateDenseSilence1
	case 2:
		return StateDenseSilence2
	case 3:
		return StateDenseSilence3
	default:
		return StateDenseSilence4
	}
}

// #endregion capabilities

// #region durations

// Durations configures each kind of timed silence.
type Durations struct {
	Main     time.Duration
	Dense    time.Duration
	Spacious time.Duration
	Check    time.Duration
}

// DefaultDurations returns the standard silences.
func DefaultDurations() Durations {
	return Durations{
		Main:     75 * time.Second,
		Dense:    60 * time.Second,
		Spacious: 60 * time.Second,
		Check:    60 * time.Second,
	}
}

func (d Durations) forKind(k silenceKind) time.Duration {
	switch k {
	case mainSilence:
		return d.Main
	case denseSilence:
		return d.Dense
	case spaciousSilence:
		return d.Spacious
	case checkSilence:
		return d.Check
	}
	return 0
}

// #endregion durations
