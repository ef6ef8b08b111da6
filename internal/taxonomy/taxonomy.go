// Package taxonomy holds the sensation vocabulary: ordered domains, each with
// ordered refinement labels, plus parsers that map user choices back to keys.
package taxonomy

// #region imports
import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// #endregion imports

// #region types

// Domain is one top-level sensation category.
type Domain struct {
	Key         string
	Label       string
	Refinements []string
}

// NeutralKey identifies the domain that bypasses refinement.
const NeutralKey = "neutral"

// SkipToken always resolves a refinement menu to "no refinement chosen".
const SkipToken = "skip"

// ErrUnknownDomain is returned by Lookup for keys outside the taxonomy.
var ErrUnknownDomain = errors.New("unknown domain")

// #endregion types

// #region data

var domains = []Domain{
	{"pressure", "Pressure / Force", []string{
		"Tight", "Compressed", "Expanding", "Contracting", "Squeezing",
		"Pressing outward", "Pulling inward", "Pulsing pressure",
	}},
	{"texture", "Texture", []string{
		"Smooth", "Rough", "Sharp", "Dull", "Grainy", "Sticky", "Slippery",
		"Prickly", "Fibrous", "Thick", "Thin", "Muddy", "Clear",
	}},
	{"movement", "Movement", []string{
		"Still", "Trembling", "Vibrating", "Swirling", "Rising", "Sinking",
		"Flickering", "Spreading", "Contracting", "Jerky", "Flowing",
	}},
	{"temperature", "Temperature", []string{
		"Warm", "Cool", "Hot", "Cold", "Fluctuating", "Neutral",
		"Localized warmth", "Radiating heat",
	}},
	{"density", "Density / Weight", []string{
		"Heavy", "Light", "Thick", "Thin", "Dense", "Hollow", "Solid",
		"Airy", "Weighted", "Pressurized",
	}},
	{"energy", "Vibration / Energy", []string{
		"Buzzing", "Humming", "Tingling", "Electric", "Static", "Fizzing",
		"Pulsing", "Quiet energy", "Diffuse energy",
	}},
	{"shape", "Shape / Boundary", []string{
		"Tight ball", "Band", "Knot", "Cloud", "Sheet", "Line", "Block",
		"Ring", "Undefined shape", "No clear edge",
	}},
	{"location", "Location / Spread", []string{
		"Localized", "Central", "Peripheral", "Spreading outward",
		"Moving location", "Fixed spot", "Diffuse", "Whole-body", "Front / back / sides",
	}},
	{"intensity", "Intensity", []string{
		"Faint", "Moderate", "Strong", "Surging", "Peaking", "Diminishing",
		"Steady", "Fluctuating",
	}},
	{NeutralKey, "Neutral / Unclear", []string{
		"Hard to describe", "Vague", "Blank", "Quiet", "Numb-adjacent",
		"Indistinct", "Nothing specific",
	}},
}

// inferKeywords maps free text to a likely domain. Checked in domain order.
var inferKeywords = []struct {
	key   string
	words []string
}{
	{"pressure", []string{"pressure", "tight", "squeeze", "squeezing", "compress", "compressed", "clench", "bracing"}},
	{"texture", []string{"rough", "smooth", "sharp", "dull", "grainy", "sticky", "slippery", "prickly", "fibrous", "muddy"}},
	{"movement", []string{"move", "moving", "spreading", "rising", "sinking", "swirl", "swirling", "tremble", "vibrate", "vibrating", "flow"}},
	{"temperature", []string{"warm", "cool", "hot", "cold", "heat"}},
	{"density", []string{"heavy", "light", "dense", "hollow", "solid", "airy", "weighted", "pressurized"}},
	{"energy", []string{"buzz", "buzzing", "hum", "humming", "tingle", "tingling", "electric", "static", "fizz", "fizzing"}},
	{"shape", []string{"ball", "band", "knot", "cloud", "sheet", "line", "block", "ring", "edge", "boundary"}},
	{"location", []string{"where", "left", "right", "center", "central", "peripheral", "spread", "spreading", "whole-body", "front", "back", "sides"}},
	{"intensity", []string{"intense", "intensity", "strong", "faint", "moderate", "surging", "peaking", "diminishing", "steady", "fluctuating"}},
	{NeutralKey, []string{"unclear", "vague", "blank", "quiet", "numb", "nothing"}},
}

// #endregion data

// #region lookup

// Domains returns the ordered domain list. Callers must not mutate the
// refinement slices.
func Domains() []Domain {
	out := make([]Domain, len(domains))
	copy(out, domains)
	return out
}

// Lookup returns the domain for key.
func Lookup(key string) (Domain, error) {
	for _, d := range domains {
		if d.Key == key {
			return d, nil
		}
	}
	return Domain{}, fmt.Errorf("%w: %s", ErrUnknownDomain, key)
}

// IsNeutral reports whether key is the Neutral / Unclear domain.
func IsNeutral(key string) bool {
	return key == NeutralKey
}

// #endregion lookup

// #region parse

// ParseDomainChoice resolves a 1-based index, an exact label, or a label
// substring (first hit wins) to a domain key.
func ParseDomainChoice(text string) (string, bool) {
	labels := make([]string, len(domains))
	for i, d := range domains {
		labels[i] = d.Label
	}
	i, ok := choose(labels, text)
	if !ok {
		return "", false
	}
	return domains[i].Key, true
}

// ParseRefinementChoice resolves a refinement of the given domain. The skip
// token returns skipped=true with ok=true and an empty label.
func ParseRefinementChoice(domainKey, text string) (label string, skipped, ok bool) {
	d, err := Lookup(domainKey)
	if err != nil {
		return "", false, false
	}
	if strings.ToLower(strings.TrimSpace(text)) == SkipToken {
		return "", true, true
	}
	i, found := choose(d.Refinements, text)
	if !found {
		return "", false, false
	}
	return d.Refinements[i], false, true
}

// choose applies the three strategies shared by both menus: numeric index,
// exact case-insensitive match, then case-insensitive substring match.
func choose(options []string, text string) (int, bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return 0, false
	}
	if isDigits(t) {
		n, err := strconv.Atoi(t)
		if err != nil || n < 1 || n > len(options) {
			return 0, false
		}
		return n - 1, true
	}
	for i, o := range options {
		if t == strings.ToLower(o) {
			return i, true
		}
	}
	for i, o := range options {
		if strings.Contains(strings.ToLower(o), t) {
			return i, true
		}
	}
	return 0, false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// InferDomain maps free text to a domain when an obvious keyword is present.
func InferDomain(text string) (string, bool) {
	t := strings.ToLower(text)
	for _, k := range inferKeywords {
		for _, w := range k.words {
			if strings.Contains(t, w) {
				return k.key, true
			}
		}
	}
	return "", false
}

// #endregion parse

// #region format

// DomainOptions renders the numbered domain list, one per line.
func DomainOptions() string {
	lines := make([]string, len(domains))
	for i, d := range domains {
		lines[i] = fmt.Sprintf("%d) %s", i+1, d.Label)
	}
	return strings.Join(lines, "\n")
}

// RefinementOptions renders the numbered refinement list for a domain.
func RefinementOptions(domainKey string) (string, error) {
	d, err := Lookup(domainKey)
	if err != nil {
		return "", err
	}
	lines := make([]string, len(d.Refinements))
	for i, r := range d.Refinements {
		lines[i] = fmt.Sprintf("%d) %s", i+1, r)
	}
	return strings.Join(lines, "\n"), nil
}

// #endregion format
