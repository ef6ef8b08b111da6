// Package content is the fixed text table shown to the user. Nothing here
// makes decisions; the session controller picks which string to show.
package content

import (
	"fmt"
	"strings"

	"github.com/danielpatrickdp/unwind/go-controller/internal/classifier"
	"github.com/danielpatrickdp/unwind/go-controller/internal/taxonomy"
)

// #region entry-routing

const (
	UsedBefore      = "Have you used UNWIND before?\n\nType YES or NO."
	ReturningChoice = "Would you like to:\n1. Review Orientation\n2. Go to Mirror Mode\n\nType 1 or 2."
)

// #endregion entry-routing

// #region mirror

const (
	CentralView     = "What's most pressing in your central view right now?"
	domainPrompt    = "Which best matches what's present right now?"
	refinePrompt    = "Which fits best?"
	pickNumberName  = "Type the number (or name)."
	pickNumberWord  = "Type the number (or word)."
	WhatsHereNow    = "What's here now?"
	ContinueOrStop  = "Would you like to continue or stop here for today?"
	StayWhatsHere   = "Stay with what's here for about a minute."
	RawSensation    = "That's okay. Stay with the raw sensation itself for about a minute."
	ClenchStay      = "Feel that clench — the whole charged tension. The sensation AND the bracing against it. Both at once. Stay with it for about a minute."
	SpaciousStay    = "Feel that more spacious quality directly — not as an idea.\nStay with it for about another minute."
	Completion      = "Okay. See you next time."
	OffAppHandoff   = "Off-app: when urgency hits, that's the switch flipping. Feel what's underneath. If it's dense — stay, nothing happens. If it's spacious — you're already home. Either way, the dog has no teeth."
	SpaciousCheck2  = "Is there a solid someone feeling this — or is sensation just happening?"
	SpaciousCheckOK = "That's fine. Stay with what's here."
)

const ClenchQuestion = `Beneath that sensation, can you feel where you're bracing against it?
The tightness holding against it?

1) Yes
2) I think so
3) Not sure / unclear

Type 1, 2, or 3.`

const SensoryFork = `As you stayed with it, what happened in the sensation itself?

1) More dense / tighter
2) Less dense / more spacious
3) No real change

Type 1, 2, or 3.`

const SpaciousCheck1 = `As you stay with the density... is spaciousness also present right now?
Not after the contraction — but with it?

1) Yes, both are here
2) Only contraction
3) Not sure

Type 1, 2, or 3.`

// DomainMenu renders the domain question with its numbered options.
func DomainMenu() string {
	return domainPrompt + "\n" + taxonomy.DomainOptions() + "\n" + pickNumberName
}

// RefinementMenu renders the refinement question for a domain.
func RefinementMenu(domainKey string) (string, error) {
	opts, err := taxonomy.RefinementOptions(domainKey)
	if err != nil {
		return "", err
	}
	return refinePrompt + "\n" + opts + "\n" + pickNumberWord, nil
}

// EchoAndWord reflects the chosen refinement and domain back and asks for a
// single word. An empty refinement (skipped) echoes the domain alone.
func EchoAndWord(refinement, domain string) string {
	subject := strings.TrimSpace(strings.ToLower(refinement) + " " + strings.ToLower(domain))
	return fmt.Sprintf("Notice that %s. If you had to use one word to describe it, what would it be?", subject)
}

// RemoveWord asks the user to drop their label and is followed by the
// clench question.
func RemoveWord(word string) string {
	return fmt.Sprintf("Now feel that sensation without the word '%s.' Just the raw sensation itself.", word)
}

// #endregion mirror

// #region dense

var denseLayers = [4]string{
	`Okay. Don't fix it.
See if you can feel both poles at once:
the sensation and the bracing against it.
Stay with it for about a minute.`,

	`Okay. Don't chase spaciousness.
Don't fight density.
Just stay curious about what's here.

Density isn't a problem.
It's just sensation.

Stay with it for about another minute.`,

	`Okay. This is important.

Fear is real as sensation —
but the threats are empty.

This is all bark. No bite.
There are no daggers here.

You're not facing danger.
You're facing energy the body learned to brace against.

Nothing bad is happening.

Stay with it — not to change it —
just to see that nothing happens.

Stay for about a minute.`,

	`Okay. You don't need to get past this.

See how long you can rest right here —
not there, not after — here.

This is just fear with no bite.
And you're discovering that you can feel it.

Through staying — slowly, gently —
your nervous system learns: this is safe.

That's what flips the switch.
From the movie back to reality.
From Bullshit Valley to what's actually here.

You can rest here.`,
}

// DenseLayer returns the instruction for a 1-based ladder depth. Depths of
// four and above share the last layer.
func DenseLayer(depth int) string {
	switch {
	case depth < 1:
		depth = 1
	case depth > len(denseLayers):
		depth = len(denseLayers)
	}
	return denseLayers[depth-1]
}

// #endregion dense

// #region patterns

// PatternFirstTime is the long mirror shown once per pattern, ever.
func PatternFirstTime(p classifier.Pattern) string {
	return fmt.Sprintf("That's %s — leaving sensation.\nIt doesn't work because it moves attention away from what's actually here.\n\n%s", p.Label(), CentralView)
}

// PatternOneWord is the short mirror for a pattern already explained.
func PatternOneWord(p classifier.Pattern) string {
	return fmt.Sprintf("%s.\n\n%s", p.Label(), CentralView)
}

// #endregion patterns
