package classifier

// #region pattern

// Pattern names one of the eight escape behaviors. The zero value means no
// pattern was detected.
type Pattern string

const (
	PatternNone               Pattern = ""
	PatternStory              Pattern = "STORY"
	PatternCertaintySeeking   Pattern = "CERTAINTY_SEEKING"
	PatternProblemSolving     Pattern = "PROBLEM_SOLVING"
	PatternClaimingInsight    Pattern = "CLAIMING_INSIGHT"
	PatternManaging           Pattern = "MANAGING"
	PatternDestinationSeeking Pattern = "DESTINATION_SEEKING"
	PatternFloating           Pattern = "FLOATING"
	PatternUnknownAvoidance   Pattern = "UNKNOWN_AVOIDANCE"
)

var allPatterns = []Pattern{
	PatternStory,
	PatternCertaintySeeking,
	PatternProblemSolving,
	PatternClaimingInsight,
	PatternManaging,
	PatternDestinationSeeking,
	PatternFloating,
	PatternUnknownAvoidance,
}

var labels = map[Pattern]string{
	PatternStory:              "Story",
	PatternCertaintySeeking:   "Certainty-Seeking",
	PatternProblemSolving:     "Problem-Solving",
	PatternClaimingInsight:    "Claiming/Insight",
	PatternManaging:           "Managing",
	PatternDestinationSeeking: "Destination-Seeking",
	PatternFloating:           "Floating",
	PatternUnknownAvoidance:   "Unknown-Avoidance",
}

// AllPatterns returns the eight patterns in declaration order.
func AllPatterns() []Pattern {
	out := make([]Pattern, len(allPatterns))
	copy(out, allPatterns)
	return out
}

// Label returns the display label, or "" for PatternNone and unknown values.
func (p Pattern) Label() string {
	return labels[p]
}

// Valid reports whether p is one of the eight known patterns.
func (p Pattern) Valid() bool {
	_, ok := labels[p]
	return ok
}

// ParsePattern maps a persisted pattern name back to a Pattern.
func ParsePattern(name string) (Pattern, bool) {
	p := Pattern(name)
	if !p.Valid() {
		return PatternNone, false
	}
	return p, true
}

// #endregion pattern

// #region classification

// Signals holds the independent sensation detections for one utterance.
type Signals struct {
	Location    bool
	Resistance  bool
	Contraction bool
	Sensation   bool
	Emotion     string // first matching emotion word, "" if none
}

// Any reports whether at least one sensation signal fired.
func (s Signals) Any() bool {
	return s.Location || s.Resistance || s.Contraction || s.Sensation || s.Emotion != ""
}

// Classification is the tag set produced for a single utterance.
type Classification struct {
	Crisis       bool
	Confirmation bool
	Signals      Signals
	Pattern      Pattern
	Trigger      string // matched trigger or marker phrase, "" for the bare default
}

// #endregion classification

// #region rule

// Rule binds a pattern to its ordered trigger phrases.
type Rule struct {
	Pattern  Pattern
	Triggers []string
}

// #endregion rule
