// Package classifier tags user utterances with crisis, confirmation, sensation
// signals, and at most one escape pattern. Matching is phrase membership only.
package classifier

// #region imports
import (
	"regexp"
	"strings"
)

// #endregion imports

// #region keywords

var crisisPhrases = []string{
	"suicide", "kill myself", "self-harm", "hurt myself", "hurt someone else",
}

var confirmRe = regexp.MustCompile(`\b(yes|yep|yup|exactly|that's right|correct|true)\b`)

var locationWords = []string{
	"chest", "gut", "stomach", "throat", "neck", "jaw", "shoulders", "back",
	"heart", "belly", "solar plexus", "head",
}

// emotionWords is checked in priority order; the first whole-word hit wins.
var emotionWords = []string{"fear", "anxiety", "sadness", "anger", "shame", "panic", "stress"}

var resistanceMarkers = []string{
	"i don't want", "i dont want", "i can't", "i cant", "i shouldn't", "i shouldnt",
	"i hate", "this shouldn't", "this shouldnt", "i need this to stop", "make it stop",
	"get rid of", "go away", "can't stand", "cant stand",
}

var contractionWords = []string{
	"tight", "tightness", "bracing", "brace", "clench", "clenching", "contract", "contraction",
	"narrow", "narrowing", "pulling in", "closing", "compressed", "pressure",
}

var sensationWords = []string{
	"pressure", "heat", "cold", "vibration", "vibrating", "buzz", "buzzing", "tingle",
	"tingling", "flutter", "ache", "heavy", "light", "movement", "moving", "throb",
	"push", "pull", "push/pull", "bracing", "brace", "holding", "clench", "tension", "tightness",
}

// meaningMarkers flag explanation layered onto a sensation report.
var meaningMarkers = []string{
	"meaning", "means", "because", "so that", "in the way", "wholeness", "should", "supposed to",
	"i think", "i feel it is", "this is not", "doesn't work", "not working", "why is", "why does",
}

// narrativeMarkers flag talk about people and situations. They force Story
// even when emotion or body words are present.
var narrativeMarkers = []string{
	"my boss", "my wife", "my husband", "my partner", "my mom", "my dad", "my mother", "my father",
	"my friend", "my coworker", "my colleague", "my ex", "my sister", "my brother", "my family",
	"he said", "she said", "they said", "he did", "she did", "they did",
	"he is", "she is", "they are", "he was", "she was", "they were",
	"at work", "at home", "at school", "in the meeting", "on the phone",
	"getting on my nerves", "driving me crazy", "making me", "did to me", "said to me",
	"happened", "yesterday", "last week", "last night", "this morning", "earlier today",
	"when i was", "after i", "before i",
	"i can't believe", "i cant believe", "can you believe", "it's so unfair", "its so unfair",
	"i'm so sick of", "im so sick of", "i'm tired of", "im tired of",
}

// rules lists the trigger-driven patterns in priority order. Story is the
// fallback and has no entry here.
var rules = []Rule{
	{PatternClaimingInsight, []string{
		"i just realized", "oh wow", "i get it", "this is the answer", "now i understand",
		"breakthrough", "i'm seeing a pattern", "i see what i do",
	}},
	{PatternCertaintySeeking, []string{
		"am i doing", "doing this right", "how do i know", "what if", "is this correct",
		"is it working", "tell me if", "how can i be sure", "reassure me", "tell me i'm going to be okay",
	}},
	{PatternProblemSolving, []string{
		"should i", "what should i do", "what's the answer", "how do i fix", "tell me what to do",
		"give me advice",
	}},
	{PatternManaging, []string{
		"i'm trying to", "i keep trying", "i need to keep", "i have to stay", "am i doing it correctly",
		"i'm managing", "i'm forcing", "i'm controlling", "checking if i'm doing it right",
	}},
	{PatternDestinationSeeking, []string{
		"what happens now", "is that it", "this isn't leading", "not leading anywhere",
		"nothing's happening", "nothing is happening", "i'm bored", "im bored",
		"when will this", "until it", "waiting for", "i'm waiting for", "waiting for it",
		"so it will", "so this resolves", "so it opens", "to get through", "to make it go away",
		"shift", "resolve",
	}},
	{PatternFloating, []string{
		"i'm aware of", "i'm observing", "from awareness", "spacious", "just watching",
		"watching it", "the witness", "above it", "dissociated",
	}},
	{PatternUnknownAvoidance, []string{
		"i can't stand not knowing", "cant stand not knowing", "uncertainty is", "the uncertainty is",
		"not knowing is", "the unknown", "i need certainty", "i can't handle uncertainty",
	}},
}

// #endregion keywords

// #region matchers

var (
	contractionRes = wordMatchers(contractionWords)
	sensationRes   = wordMatchers(sensationWords)
	emotionRes     = wordMatchers(emotionWords)
)

func wordMatchers(words []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return out
}

func anyWord(res []*regexp.Regexp, text string) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// firstContained returns the first phrase that occurs as a substring of text.
func firstContained(phrases []string, text string) (string, bool) {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return p, true
		}
	}
	return "", false
}

// #endregion matchers

// #region accessors

// Rules returns a copy of the ordered trigger table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{Pattern: r.Pattern, Triggers: append([]string(nil), r.Triggers...)}
	}
	return out
}

// Triggers returns the trigger phrases for p, or nil for Story and unknown values.
func Triggers(p Pattern) []string {
	for _, r := range rules {
		if r.Pattern == p {
			return append([]string(nil), r.Triggers...)
		}
	}
	return nil
}

// Normalize lowercases and trims an utterance.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// #endregion accessors

// #region classify

// Classify tags an utterance. Crisis short-circuits every other field.
func Classify(text string) Classification {
	t := Normalize(text)

	if _, ok := firstContained(crisisPhrases, t); ok {
		return Classification{Crisis: true}
	}

	c := Classification{
		Confirmation: confirmRe.MatchString(t),
		Signals:      extractSignals(t),
	}

	for _, r := range rules {
		if trig, ok := firstContained(r.Triggers, t); ok {
			c.Pattern = r.Pattern
			c.Trigger = trig
			return c
		}
	}

	c.Pattern, c.Trigger = storyFallback(t, c.Signals)
	return c
}

func extractSignals(t string) Signals {
	s := Signals{
		Contraction: anyWord(contractionRes, t),
		Sensation:   anyWord(sensationRes, t),
	}
	_, s.Location = firstContained(locationWords, t)
	_, s.Resistance = firstContained(resistanceMarkers, t)
	for i, re := range emotionRes {
		if re.MatchString(t) {
			s.Emotion = emotionWords[i]
			break
		}
	}
	return s
}

// storyFallback decides Story when no trigger matched. A pure sensation
// report with no meaning marker yields PatternNone.
func storyFallback(t string, s Signals) (Pattern, string) {
	if m, ok := firstContained(narrativeMarkers, t); ok {
		return PatternStory, m
	}
	if s.Any() {
		if m, ok := firstContained(meaningMarkers, t); ok {
			return PatternStory, m
		}
		return PatternNone, ""
	}
	return PatternStory, ""
}

// #endregion classify
