package content

// #region orientation

// screen is one onboarding page.
type screen struct {
	title  string
	body   string
	action string
}

var orientation = []screen{
	{
		title:  "UNWIND",
		body:   "A training tool for noticing how you leave\n\nThis app is not here to help you feel better. It's here to show you how you avoid feeling.\nIf you're willing to see that, this can help. If not, it won't.",
		action: "Type YES to continue / Type QUIT to exit",
	},
	{
		title:  "Before We Begin",
		body:   "This tool is not for people currently experiencing:\n• active abuse or unsafe environments\n• acute crisis or suicidal ideation\n• unresolved trauma that still has teeth\nIf that describes you, please work with a therapist first.\nThis app will NOT soothe you or calm you down. It will show you how you avoid feeling.",
		action: "Type YES to continue / Type QUIT to exit",
	},
	{
		title:  "Why This Exists",
		body:   "Here's what's underneath all of it:\n\nThe nervous system is applying protective logic to internal sensations as if they were physical threats.\n\nIn the external world, the body can be hit. A car can strike you. Protection makes sense.\n\nBut internally? There's nothing localized that can be damaged. The \"me\" that needs protecting is part of the projection.\n\nThe gun is real as experience. The bullets are blanks. They fire and hit nothing — because there's nothing there to hit.\n\nThat's the category error. The rules of being hit are being applied where nothing can be hit.\n\nThis app exists to help you verify that through contact.",
		action: "Type YES to continue",
	},
	{
		title:  "How It Works",
		body:   "Most of the time, we don't experience life directly.\nWhen something uncomfortable appears, a rail switch flips. Experience gets routed from direct perception to filtered mental experience.\nThat switch is the clench — existential bracing.\nWhen the switch flips, the blinds close. You're no longer looking at reality directly. The mind fills the vacuum — backfilling threats, futures, catastrophes.\nNot because the mind is lying. But because the body is mobilized and the mind needs to justify the mobilization.\nThis app shows you that switch — as it flips.",
		action: "Type YES to continue",
	},
	{
		title:  "The Loop",
		body:   "Here's the basic sequence:\n1. Trigger (something happens)\n2. Arousal (body mobilizing — the hum, not yet suffering)\n3. System checks windshield — no lion, but arousal still there\n4. Rail switch flips — the clench (existential bracing)\n5. Blinds close — direct experience filtered through mind\n6. Mind fills vacuum — backfills threats to justify mobilization\n7. Beachball appears (sensation + story fused, loud and urgent)\n8. Mind holds you at gunpoint — managing the projections\n9. Manager appears to handle the \"threat\"\n\nWhen the clench is felt FULLY (both poles — the arousal AND the bracing against it), the switch flips back. Blinds open. Direct experience resumes.\nWhen felt PARTIALLY (just enough to trigger, not enough to feel safe), the blinds stay closed. Mind keeps projecting. Questions generate.\nThis app helps you notice when the switch flips and feel the clench fully before the mind takes over.",
		action: "Type YES to continue",
	},
	{
		title:  "Why You Escape",
		body:   "At some point — often very early — your nervous system learned: \"This feeling is too much.\"\nThat learning may be decades old.\nThe system learned to apply protective logic to internal sensation — as if the feeling itself could destroy you. But internally, there's nothing that can be hit.\nThe fear is real as experience. But it's shooting blanks. The consequences never come.\nWhat remains is a habit: Switch flips → blinds close → react to projections → repeat\nThe mind's authority depends on you never finding out what happens if you stop watching the movie and open the blinds.\nYou won't understand your way out of this. Your system has to learn something new.\nThat only happens through contact.",
		action: "Type YES to continue",
	},
	{
		title:  "One Important Thing",
		body:   "You do not need to find the origin. You do not need to know why this started. You do not need to relive the past.\nIf this happened when you were two and you're forty now — you're not running from a monster.\nYou're running from a sock you once thought was one.\nYou kept the blinds closed to make it convincing. The mind kept projecting threats onto those blinds. The gun felt real. But it was shooting blanks — because internally, there's nothing to hit.\nThis app is designed to open the blinds.\nThe only thing that updates the system is discovering: \"I can feel this — and nothing bad happens.\"",
		action: "Type YES to continue",
	},
	{
		title:  "Central View",
		body:   "When sensation arises, attention automatically moves one of two directions:\nLEFT: toward the projections on the blinds — story, explanation, threat management\nRIGHT: toward the sensation itself — direct experience\nThe app will show you when you've gone left.\nCentral view is not a special state. It's just: what's most pressing right now — before the mind fills the vacuum?\nWhen you notice you've drifted left into the movie, you can return to center — to what's actually arising.",
		action: "Type YES to continue",
	},
	{
		title:  "Curiosity",
		body:   "The app will guide you to feel sensation with curiosity — not management.\nCuriosity means: \"What is this, actually?\"\nNot: \"How do I fix this?\" Not: \"What does this mean?\" Not: \"When will this end?\"\nJust: direct contact with what's arising.\nWithout the word \"dangerous.\" Without the word \"unbearable.\" Without trying to change it.",
		action: "Type YES to continue",
	},
	{
		title:  "What To Notice",
		body:   "When you feel sensation directly, you might notice:\n• Location (where in the body?)\n• Quality (tight? warm? heavy? electric?)\n• Movement (spreading? pulsing? static?)\n• Intensity (faint? strong? fluctuating?)\nYou're not analyzing. You're making contact.\nThe beachball (sensation + story fused) is loud — it's what you notice first. But it's downstream.\nThe clench is underneath it. That's where the work happens.\nThe app will help you notice sensation precisely, then drop beneath it to the clench.",
		action: "Type YES to continue",
	},
	{
		title:  "What Actually Changes Things",
		body:   "The blinds can only open one way: by feeling the clench fully.\nThe clench contains two poles:\n• The arousal (the sensation, the hum, the activation)\n• The bracing AGAINST that arousal (the fear of it, the holding)\nWhen both poles are felt simultaneously — the sensation AND the bracing against it — the charge discharges. The switch flips back. The blinds open.\nThrough titration — staying when you wanted to run — you discover the projections were shooting blanks. The gun was real as experience. The consequences never came. Because internally, there was nothing to hit.\nWhen you call the bluff and feel the clench fully, direct experience resumes. The arousal underneath reveals itself as just aliveness. The thing you were running from was harmless. A sock.\nOnce the bluff has been called enough times, the projector loses credibility. The blinds don't stay open because you hold them open. They stay open because there's no incentive left to close them.\n\nAnd sometimes, after repeated contact, something else becomes obvious: while contraction is happening, spaciousness is also present. Not after the contraction. Not instead of it. At the same time.\nYou're spacious while contracted.\nWhen you notice that, you might also notice: there's no solid someone sitting with the contraction. Just experience happening. Contraction and awareness of contraction — but no one in between.\nThat's not something to seek. It's what reveals itself when you stop running.",
		action: "Type YES to continue",
	},
	{
		title:  "How You Leave",
		body:   "The app watches for these 8 escape patterns — ways you go left into the movie instead of staying with sensation:\n1. STORY — narrative about what happened or what comes next\n2. CERTAINTY-SEEKING — \"Am I doing this right?\"\n3. PROBLEM-SOLVING — turning sensation into puzzle to solve\n4. CLAIMING/INSIGHT — \"I get it now!\"\n5. MANAGING — monitoring the staying\n6. DESTINATION-SEEKING — waiting for shift\n7. FLOATING — dissociative witnessing\n8. UNKNOWN-AVOIDANCE — scrambling when uncertain\nThese are exactly as documented in Clear Seeing (Chapter 15).\nWhen the app detects one, it mirrors it back briefly. Then redirects you to sensation. Then helps you drop beneath the beachball to the clench.",
		action: "Type YES to continue",
	},
	{
		title:  "What Happens Next",
		body:   "You'll now enter Mirror Mode.\nThe app will:\n• Listen as you speak\n• Detect when you've gone left into the movie (escaped into one of the 8 patterns)\n• Mirror the pattern back (one word)\n• Redirect you to central view\n• Help you notice the beachball (sensation + story)\n• Help you drop beneath it to the clench (both poles)\n• Check temporal qualities (what has changed or stayed the same)\n• After repeated contact, check if spaciousness is present while contracted\n• Stay quiet while you feel\nNo fixing. No teaching. No soothing.\nJust: noticing escape, returning to sensation, dropping to the clench, feeling both poles, staying in contact.\nThe container holds. You do the feeling. The blinds open on their own.",
		action: "Type YES to begin Mirror Mode",
	},
}

// OrientationScreens renders every onboarding screen in order.
func OrientationScreens() []string {
	out := make([]string, len(orientation))
	for i, s := range orientation {
		out[i] = s.title + "\n\n" + s.body + "\n\nAction: " + s.action
	}
	return out
}

// #endregion orientation
