// Package session drives one guided session: entry routing, orientation,
// and the mirror loop, with continuous escape-pattern screening and timed
// silences.
package session

// #region imports
import (
	"context"
	"fmt"
	"strings"

	"github.com/danielpatrickdp/unwind/go-controller/internal/classifier"
	"github.com/danielpatrickdp/unwind/go-controller/internal/content"
	"github.com/danielpatrickdp/unwind/go-controller/internal/patternmem"
	"github.com/danielpatrickdp/unwind/go-controller/internal/taxonomy"
	"github.com/danielpatrickdp/unwind/go-controller/internal/timedwait"
	"github.com/danielpatrickdp/unwind/go-controller/internal/transcript"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// #endregion imports

// #region controller

// Controller is the session state machine. A Controller serves exactly one
// session and is not safe for concurrent use.
type Controller struct {
	state     State
	mem       Memory
	log       *transcript.Log
	store     patternmem.Store
	waiter    timedwait.Provider
	logger    *zap.Logger
	durations Durations
	screens   []string
	id        string
}

// New builds a controller and loads the explained-pattern set. A store read
// failure is logged and treated as nothing explained yet.
func New(ctx context.Context, opts ...Option) *Controller {
	c := &Controller{
		state:     StateUsedBefore,
		mem:       newMemory(),
		log:       transcript.NewLog(),
		store:     patternmem.NewMemStore(),
		waiter:    timedwait.Instant{},
		logger:    zap.NewNop(),
		durations: DefaultDurations(),
		screens:   content.OrientationScreens(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.id == "" {
		c.id = newSessionID()
	}
	c.logger = c.logger.With(zap.String("session_id", c.id))

	explained, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Warn("pattern memory load failed; starting empty", zap.Error(err))
	}
	for _, p := range explained {
		c.mem.Explained[p] = true
	}
	return c
}

func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Memory returns a copy of the session memory.
func (c *Controller) Memory() Memory { return c.mem.Snapshot() }

// Transcript returns every logged entry in order.
func (c *Controller) Transcript() []transcript.Entry { return c.log.Entries() }

// SessionID returns the id used for transcript export.
func (c *Controller) SessionID() string { return c.id }

// Finished reports whether the session reached its terminal state.
func (c *Controller) Finished() bool { return c.state == StateExit }

// Export hands the transcript to w.
func (c *Controller) Export(ctx context.Context, w transcript.Writer) (string, error) {
	return w.Write(ctx, c.id, c.log.Entries())
}

// #endregion controller

// #region public-api

// Start shows the prompt for the current state, normally the used-before
// question.
func (c *Controller) Start(_ context.Context) string {
	msg := c.Prompt()
	if msg == "" {
		return ""
	}
	return c.say(msg, "start")
}

// Step processes one typed utterance and returns the next text to show.
func (c *Controller) Step(ctx context.Context, text string) string {
	c.log.Append(transcript.Entry{Speaker: transcript.SpeakerUser, Text: text})
	return c.dispatch(ctx, text)
}

// ResumeIfWaiting drives a pending timed silence. It returns false when the
// controller is not in a silence. Interrupting text re-enters the normal
// pipeline; completing the silence advances to the next checkpoint.
func (c *Controller) ResumeIfWaiting(ctx context.Context) (string, bool) {
	info := c.state.info()
	if info.silence == noSilence {
		return "", false
	}

	timeout := c.durations.forKind(info.silence)
	text, interrupted, err := c.waiter.Wait(ctx, "", timeout)
	if err != nil {
		c.logger.Warn("timed wait failed; treating as silence",
			zap.String("state", c.state.String()), zap.Error(err))
		interrupted = false
	}
	if interrupted && strings.TrimSpace(text) != "" {
		c.log.Append(transcript.Entry{Speaker: transcript.SpeakerUser, Text: text, Note: info.interruptNote})
		return c.dispatch(ctx, text), true
	}
	return c.completeSilence(), true
}

// Prompt returns the text the current state is waiting on, or "" for
// silences and the terminal state.
func (c *Controller) Prompt() string {
	switch c.state {
	case StateUsedBefore:
		return content.UsedBefore
	case StateReturningChoice:
		return content.ReturningChoice
	case StateOrientation:
		if c.mem.OrientationIndex < len(c.screens) {
			return c.screens[c.mem.OrientationIndex]
		}
		return content.CentralView
	case StateCentralView:
		return content.CentralView
	case StateDomain:
		return content.DomainMenu()
	case StateRefinement:
		if m, err := content.RefinementMenu(c.mem.LastDomainKey); err == nil {
			return m
		}
		return content.DomainMenu()
	case StateOneWord:
		return content.EchoAndWord(c.mem.LastRefinement, c.mem.LastDomainLabel)
	case StateClenchChoice:
		return content.ClenchQuestion
	case StateSensoryFork:
		return content.SensoryFork
	case StateDenseContinueOrStop:
		return content.ContinueOrStop
	case StateWhatsHere:
		return content.WhatsHereNow
	case StateSpaciousnessCheck1:
		return content.SpaciousCheck1
	case StateSpaciousnessCheck2:
		return content.SpaciousCheck2
	}
	return ""
}

// #endregion public-api

// #region dispatch

// dispatch runs global handling and then the current state's logic. It never
// panics; anything unexpected lands on central view.
func (c *Controller) dispatch(ctx context.Context, text string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("state dispatch panicked; returning to central view",
				zap.String("state", c.state.String()), zap.Any("panic", r))
			out = c.fallback()
		}
	}()

	if c.state == StateExit {
		return c.say(content.Completion, "after_exit")
	}

	if isQuit(text) {
		c.to(StateExit)
		return c.say(content.Completion, "exit")
	}

	cls := classifier.Classify(text)

	if cls.Crisis {
		c.logger.Info("crisis language detected; ending session", zap.String("state", c.state.String()))
		c.to(StateExit)
		return c.say(content.Completion, "crisis_exit")
	}

	if isDone(text) && !c.state.info().entry {
		return c.finish()
	}

	if c.intercepts(text) && cls.Pattern != classifier.PatternNone {
		return c.mirrorPattern(ctx, cls)
	}

	return c.handle(ctx, text)
}

// intercepts reports whether escape-pattern interception applies to text in
// the current state.
func (c *Controller) intercepts(text string) bool {
	if c.state.EscapeExempt() {
		return false
	}
	if c.state == StateOneWord && isOneWord(text) {
		return false
	}
	return true
}

func (c *Controller) handle(ctx context.Context, text string) string {
	switch c.state {
	case StateUsedBefore:
		return c.onUsedBefore(text)
	case StateReturningChoice:
		return c.onReturningChoice(text)
	case StateOrientation:
		return c.onOrientation(text)
	case StateCentralView:
		c.mem.startPass(strings.TrimSpace(text))
		c.to(StateDomain)
		return c.say(content.DomainMenu(), "domain_menu")
	case StateDomain:
		return c.onDomain(text)
	case StateRefinement:
		return c.onRefinement(text)
	case StateOneWord:
		c.mem.LastWord = strings.TrimSpace(text)
		c.to(StateClenchChoice)
		return c.say(content.RemoveWord(c.mem.LastWord)+"\n\n"+content.ClenchQuestion, "remove_word_and_clench_q")
	case StateClenchChoice:
		return c.onClench(text)
	case StateSensoryFork:
		return c.onFork(text)
	case StateDenseContinueOrStop:
		if isStop(text) {
			return c.finish()
		}
		c.mem.DenseDepth = 0
		c.to(StateCentralView)
		return c.say(content.CentralView, "continue_after_dense4")
	case StateWhatsHere:
		c.mem.startPass(strings.TrimSpace(text))
		c.to(StateDomain)
		return c.say(content.DomainMenu(), "domain_after_spacious")
	case StateSpaciousnessCheck1:
		return c.onSpaciousnessCheck1(text)
	case StateSpaciousnessCheck2:
		// Any answer is accepted; the silence follows immediately.
		c.to(StateSpaciousnessSilence)
		out, _ := c.ResumeIfWaiting(ctx)
		return out
	}
	return c.fallback()
}

// #endregion dispatch

// #region entry-handlers

func (c *Controller) onUsedBefore(text string) string {
	yes, ok := parseYesNo(text)
	if !ok {
		return c.say(content.UsedBefore, "repeat_used_before")
	}
	c.mem.UsedBefore = &yes
	if !yes {
		return c.enterOrientation("orientation_start")
	}
	c.to(StateReturningChoice)
	return c.say(content.ReturningChoice, "returning_choice")
}

func (c *Controller) onReturningChoice(text string) string {
	switch strings.TrimSpace(text) {
	case "1":
		return c.enterOrientation("orientation_review")
	case "2":
		c.to(StateCentralView)
		return c.say(content.CentralView, "mirror_entry")
	}
	return c.say(content.ReturningChoice, "repeat_returning_choice")
}

func (c *Controller) enterOrientation(note string) string {
	c.mem.OrientationIndex = 0
	if len(c.screens) == 0 {
		c.to(StateCentralView)
		return c.say(content.CentralView, "mirror_after_orientation")
	}
	c.to(StateOrientation)
	return c.say(c.screens[0], note)
}

// safetyScreen is the orientation index that only advances on "yes".
const safetyScreen = 1

func (c *Controller) onOrientation(text string) string {
	if c.mem.OrientationIndex == safetyScreen && norm(text) != "yes" {
		return c.say(c.screens[safetyScreen], "repeat_safety")
	}
	c.mem.OrientationIndex++
	if c.mem.OrientationIndex >= len(c.screens) {
		c.mem.OrientationIndex = len(c.screens)
		c.to(StateCentralView)
		return c.say(content.CentralView, "mirror_after_orientation")
	}
	return c.say(c.screens[c.mem.OrientationIndex], "orientation_next")
}

// #endregion entry-handlers

// #region mirror-handlers

func (c *Controller) onDomain(text string) string {
	key, ok := taxonomy.ParseDomainChoice(text)
	if !ok {
		return c.say(content.DomainMenu(), "repeat_domain_menu")
	}
	d, err := taxonomy.Lookup(key)
	if err != nil {
		return c.fallback()
	}
	c.mem.LastDomainKey = d.Key
	c.mem.LastDomainLabel = d.Label

	if taxonomy.IsNeutral(d.Key) {
		c.to(StateMirrorSilence)
		return c.say(content.StayWhatsHere, "neutral_skip")
	}

	menu, err := content.RefinementMenu(d.Key)
	if err != nil {
		return c.fallback()
	}
	c.to(StateRefinement)
	return c.say(menu, "refinement_menu")
}

func (c *Controller) onRefinement(text string) string {
	label, skipped, ok := taxonomy.ParseRefinementChoice(c.mem.LastDomainKey, text)
	if !ok {
		menu, err := content.RefinementMenu(c.mem.LastDomainKey)
		if err != nil {
			return c.fallback()
		}
		return c.say(menu, "repeat_refinement_menu")
	}
	note := "echo_and_word"
	if skipped {
		note = "echo_and_word_skipped"
	}
	c.mem.LastRefinement = label
	c.to(StateOneWord)
	return c.say(content.EchoAndWord(label, c.mem.LastDomainLabel), note)
}

func (c *Controller) onClench(text string) string {
	var msg string
	switch parse123(text) {
	case 1, 2:
		msg = content.ClenchStay
	case 3:
		msg = content.RawSensation
	default:
		return c.say(content.ClenchQuestion, "repeat_clench_choice")
	}
	c.to(StateMirrorSilence)
	return c.say(msg, "contact_instruction")
}

func (c *Controller) onFork(text string) string {
	switch parseFork(text) {
	case forkDenser, forkNoChange:
		c.mem.DenseDepth++
		layer := c.mem.DenseDepth
		if layer > 4 {
			layer = 4
		}
		c.to(denseSilenceFor(layer))
		return c.say(content.DenseLayer(layer), fmt.Sprintf("dense_layer_%d", layer))
	case forkSpacious:
		c.mem.SuccessfulStays++
		c.mem.DenseDepth = 0
		c.to(StateSpaciousSilence)
		return c.say(content.SpaciousStay, "spacious_stay")
	}
	return c.say(content.SensoryFork, "repeat_sensory_fork")
}

func (c *Controller) onSpaciousnessCheck1(text string) string {
	switch parse123(text) {
	case 1:
		c.to(StateSpaciousnessCheck2)
		return c.say(content.SpaciousCheck2, "spaciousness_check_2")
	case 2, 3:
		c.to(StateMirrorSilence)
		return c.say(content.SpaciousCheckOK, "spaciousness_check_fallback")
	}
	return c.say(content.SpaciousCheck1, "repeat_spaciousness_check_1")
}

// completeSilence advances a silence whose deadline passed.
func (c *Controller) completeSilence() string {
	switch c.state {
	case StateMirrorSilence:
		c.to(StateSensoryFork)
		return c.say(content.SensoryFork, "sensory_fork")
	case StateDenseSilence1, StateDenseSilence2, StateDenseSilence3:
		layer := int(c.state-StateDenseSilence1) + 1
		c.to(StateSensoryFork)
		return c.say(content.SensoryFork, fmt.Sprintf("sensory_fork_after_dense%d", layer))
	case StateDenseSilence4:
		c.to(StateDenseContinueOrStop)
		return c.say(content.ContinueOrStop, "continue_or_stop")
	case StateSpaciousSilence:
		if c.mem.SuccessfulStays >= 3 && !c.mem.SpaciousCheckDone {
			c.mem.SpaciousCheckDone = true
			c.to(StateSpaciousnessCheck1)
			return c.say(content.SpaciousCheck1, "spaciousness_check_1")
		}
		c.to(StateWhatsHere)
		return c.say(content.WhatsHereNow, "whats_here_now")
	case StateSpaciousnessSilence:
		c.to(StateCentralView)
		return c.say(content.CentralView, "central_view_after_spaciousness_check")
	}
	return c.fallback()
}

// #endregion mirror-handlers

// #region shared

// mirrorPattern reflects an escape pattern and returns to central view. The
// long form is shown once per pattern, ever.
func (c *Controller) mirrorPattern(ctx context.Context, cls classifier.Classification) string {
	p := cls.Pattern
	first := !c.mem.Explained[p]
	c.logger.Info("escape pattern mirrored",
		zap.String("pattern", string(p)),
		zap.String("trigger", cls.Trigger),
		zap.String("state", c.state.String()),
		zap.Bool("first_time", first))

	var msg string
	if first {
		c.mem.Explained[p] = true
		if err := c.store.Save(ctx, c.mem.ExplainedList()); err != nil {
			c.logger.Warn("pattern memory save failed", zap.String("pattern", string(p)), zap.Error(err))
		}
		msg = content.PatternFirstTime(p)
	} else {
		msg = content.PatternOneWord(p)
	}
	c.to(StateCentralView)
	return c.say(msg, "pattern_mirror")
}

// finish ends the session. The off-app handoff is shown only the first time.
func (c *Controller) finish() string {
	c.to(StateExit)
	if c.mem.HandoffGiven {
		return c.say(content.Completion, "completion")
	}
	c.mem.HandoffGiven = true
	c.say(content.OffAppHandoff, "offsession_handoff")
	c.say(content.Completion, "completion")
	return content.OffAppHandoff + "\n\n" + content.Completion
}

func (c *Controller) fallback() string {
	c.to(StateCentralView)
	return c.say(content.CentralView, "fallback")
}

// say logs a system entry and returns its text.
func (c *Controller) say(msg, note string) string {
	c.log.Append(transcript.Entry{Speaker: transcript.SpeakerSystem, Text: msg, Note: note})
	return msg
}

func (c *Controller) to(next State) {
	if next != c.state {
		c.logger.Debug("state transition",
			zap.String("from", c.state.String()), zap.String("to", next.String()))
	}
	c.state = next
}

// #endregion shared
