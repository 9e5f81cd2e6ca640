// Package parser converts command strings into Command structs.
// Intentionally dumb: alias tables and a fuzzy fallback, no NLP.
package parser

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/nathoo/emberwood/types"
)

var verbAliases = map[string]string{
	// Look / Examine
	"l":       "look",
	"x":       "look",
	"examine": "look",
	"inspect": "look",
	"check":   "look",
	"survey":  "look",

	// Movement
	"go":      "move",
	"walk":    "move",
	"head":    "move",
	"explore": "move",
	"push":    "move",
	"press":   "move",
	"deeper":  "move",

	// Leaving a zone
	"return":  "leave",
	"back":    "leave",
	"retreat": "leave",
	"exit":    "leave",

	// Camp / rest
	"rest":  "camp",
	"sleep": "camp",
	"stay":  "camp",

	// Eating
	"consume": "eat",
	"snack":   "eat",
	"devour":  "eat",

	// Brewing
	"tea":   "brew",
	"steep": "brew",

	// Runestone work
	"fix":    "repair",
	"mend":   "repair",
	"seal":   "repair",
	"tune":   "tune",
	"radio":  "tune",
	"align":  "align",
	"attune": "align",
	"craft":  "mix",
	"make":   "mix",

	// Status
	"stats":     "status",
	"condition": "status",
	"self":      "status",
	"inv":       "inventory",
	"i":         "inventory",
	"bag":       "inventory",
	"pack":      "inventory",

	// Misc
	"quest":   "journal",
	"journal": "journal",
	"ping":    "ping",
	"call":    "ping",
	"forage":  "forage",
	"gather":  "forage",
	"wait":    "wait",
	"z":       "wait",
	"help":    "help",
	"?":       "help",
	"quit":    "quit",
	"q":       "quit",
}

// Two-word phrases collapsed into a single verb before alias lookup.
var phrases = map[string]string{
	"go deeper":    "move",
	"press on":     "move",
	"head back":    "leave",
	"turn back":    "leave",
	"go back":      "leave",
	"make camp":    "camp",
	"set camp":     "camp",
	"lie down":     "camp",
	"give up":      "quit",
	"look around":  "look",
	"check status": "status",
	"brew tea":     "brew",
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true, "some": true,
}

// canonicalVerbs is the fuzzy-match candidate set: every alias target plus
// the bare verbs the dispatcher understands.
var canonicalVerbs = []string{
	"look", "move", "leave", "camp", "eat", "brew", "status", "inventory",
	"repair", "tune", "align", "mix", "journal", "ping", "forage", "wait",
	"help", "quit", "save",
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// fuzzyVerb finds the closest canonical verb within a length-scaled distance
// budget. Exact and prefix matches win outright.
func fuzzyVerb(token string) (string, bool) {
	best := ""
	bestDist := 1 << 30
	for _, cand := range canonicalVerbs {
		if token == cand {
			return cand, true
		}
		if len(token) >= 2 && strings.HasPrefix(cand, token) {
			return cand, true
		}
		dist := levenshtein.ComputeDistance(token, cand)
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		if dist < bestDist || (dist == bestDist && cand < best) {
			best, bestDist = cand, dist
		}
	}
	return best, best != ""
}

// Parse converts a raw input line into a Command. Unknown verbs pass through
// unchanged; the dispatcher decides what "no response" means in context.
func Parse(input string) types.Command {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return types.Command{}
	}

	words := strings.Fields(input)

	// Collapse known two-word phrases first.
	if len(words) >= 2 {
		if verb, ok := phrases[words[0]+" "+words[1]]; ok {
			return types.Command{Verb: verb, Args: stripArticles(words[2:])}
		}
	}

	verb := words[0]
	if canonical, ok := verbAliases[verb]; ok {
		verb = canonical
	} else if !isCanonical(verb) {
		if fuzzy, ok := fuzzyVerb(verb); ok {
			verb = fuzzy
		}
	}

	return types.Command{Verb: verb, Args: stripArticles(words[1:])}
}

func isCanonical(verb string) bool {
	for _, c := range canonicalVerbs {
		if verb == c {
			return true
		}
	}
	return false
}

func stripArticles(words []string) []string {
	var out []string
	for _, w := range words {
		if !articles[w] {
			out = append(out, w)
		}
	}
	return out
}
