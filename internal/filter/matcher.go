package filter

import (
	"regexp"
	"strings"
	"sync"
)

// maxPhraseDepth bounds recursion through nested phrase lists. Config never
// nests this deep; an aliased slice that contains itself would.
const maxPhraseDepth = 32

// Phrase is a rule term: either a literal or a group whose members must all
// match (AND). Sibling phrases in a rule list are OR'd by the caller.
type Phrase struct {
	text  string
	items []Phrase
	group bool
}

func Literal(s string) Phrase {
	return Phrase{text: s}
}

func All(items ...Phrase) Phrase {
	return Phrase{items: items, group: true}
}

// Literals is shorthand for a rule list of plain strings.
func Literals(ss ...string) []Phrase {
	out := make([]Phrase, len(ss))
	for i, s := range ss {
		out[i] = Literal(s)
	}
	return out
}

func (p Phrase) IsGroup() bool {
	return p.group
}

func (p Phrase) Items() []Phrase {
	return p.items
}

// String renders the phrase as it is stored in ignore_term: a literal as
// itself, a group as a Python list literal, e.g. ['senior', 'java'].
func (p Phrase) String() string {
	if !p.group {
		return p.text
	}
	return p.listLiteral()
}

func (p Phrase) listLiteral() string {
	parts := make([]string, len(p.items))
	for i, item := range p.items {
		if item.group {
			parts[i] = item.listLiteral()
		} else {
			parts[i] = quoteItem(item.text)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// quoteItem single-quotes s, switching to double quotes when s holds a
// single quote and no double quote.
func quoteItem(s string) string {
	q := "'"
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		q = `"`
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, q, `\`+q)
	return q + s + q
}

// Matches reports whether pattern is contained in text on word boundaries.
func Matches(pattern Phrase, text string) bool {
	return matches(pattern, normalizeText(text), 0)
}

func matches(pattern Phrase, text string, depth int) bool {
	if depth > maxPhraseDepth {
		return false
	}
	if !pattern.group {
		return matchesLiteral(normalizeText(pattern.text), text)
	}
	for _, item := range pattern.items {
		if !matches(item, text, depth+1) {
			return false
		}
	}
	return true
}

func matchesLiteral(phrase, text string) bool {
	if phrase == "" {
		return text == ""
	}
	if phrase == text {
		return true
	}
	return boundaryPattern(phrase).MatchString(text)
}

// firstMatch returns the first phrase in rules that matches the normalized text.
func firstMatch(rules []Phrase, text string) (Phrase, bool) {
	for _, rule := range rules {
		if matches(rule, text, 0) {
			return rule, true
		}
	}
	return Phrase{}, false
}

func anyMatch(rules []Phrase, text string) bool {
	_, ok := firstMatch(rules, text)
	return ok
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// nonWord is the complement of a Unicode-aware \w.
const nonWord = `[^\p{L}\p{N}\p{M}_]`

var boundaryCache sync.Map // phrase -> *regexp.Regexp

// boundaryPattern compiles: no word char before, optional "(", phrase,
// optional ")", no word char after.
func boundaryPattern(phrase string) *regexp.Regexp {
	if re, ok := boundaryCache.Load(phrase); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?:^|` + nonWord + `)\(?` + regexp.QuoteMeta(phrase) + `\)?(?:` + nonWord + `|$)`)
	actual, _ := boundaryCache.LoadOrStore(phrase, re)
	return actual.(*regexp.Regexp)
}
