package session

import (
	"regexp"
	"strings"
)

// #region keyword-sets

var doneWords = map[string]bool{
	"done": true, "finished": true, "im finished": true, "i'm finished": true,
	"stop": true, "that's enough": true, "thats enough": true,
}

var (
	clenchYes    = map[string]bool{"yes": true, "y": true}
	clenchMaybe  = map[string]bool{"i think so": true, "think so": true, "maybe yes": true, "sort of": true}
	clenchUnsure = map[string]bool{
		"no": true, "n": true, "not sure": true, "unclear": true, "unsure": true,
		"maybe": true, "i don't know": true, "idk": true,
	}
)

// Fork keywords. Spacious is checked first so "less dense" is not read as dense.
var (
	spaciousWords = []string{"spacious", "less dense", "lighter", "open", "better", "released"}
	denseWords    = []string{"dense", "tight", "more dense", "tighter", "heavier", "worse"}
	sameWords     = []string{"same", "no change", "unchanged", "nothing"}
)

var stopRe = regexp.MustCompile(`\b(stop|done|enough|no|quit)\b`)

// #endregion keyword-sets

// #region parsers

func norm(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func isQuit(text string) bool {
	t := norm(text)
	return t == "quit" || t == "exit"
}

func isDone(text string) bool {
	return doneWords[norm(text)]
}

func isOneWord(text string) bool {
	return len(strings.Fields(text)) == 1
}

// parseYesNo accepts yes/y and no/n.
func parseYesNo(text string) (yes, ok bool) {
	switch norm(text) {
	case "yes", "y":
		return true, true
	case "no", "n":
		return false, true
	}
	return false, false
}

// parse123 reads the clench and spaciousness checkpoints. It returns 0 for
// input outside the accepted set.
func parse123(text string) int {
	t := norm(text)
	switch {
	case t == "1" || clenchYes[t]:
		return 1
	case t == "2" || clenchMaybe[t]:
		return 2
	case t == "3" || clenchUnsure[t]:
		return 3
	}
	return 0
}

// Fork outcomes.
const (
	forkInvalid = iota
	forkDenser
	forkSpacious
	forkNoChange
)

func parseFork(text string) int {
	t := norm(text)
	switch t {
	case "1":
		return forkDenser
	case "2":
		return forkSpacious
	case "3":
		return forkNoChange
	}
	if containsAny(t, spaciousWords) {
		return forkSpacious
	}
	if containsAny(t, denseWords) {
		return forkDenser
	}
	if containsAny(t, sameWords) {
		return forkNoChange
	}
	return forkInvalid
}

func containsAny(t string, words []string) bool {
	for _, w := range words {
		if strings.Contains(t, w) {
			return true
		}
	}
	return false
}

// isStop reads the continue-or-stop checkpoint. Stop words must appear as
// whole words, so "now" or "know" mean continue.
func isStop(text string) bool {
	return stopRe.MatchString(norm(text))
}

// #endregion parsers
