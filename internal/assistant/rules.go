package assistant

import "strings"

// rule maps a set of keywords to a result. A rule matches when the text
// contains any of its keywords.
type rule[T any] struct {
	keywords []string
	result   T
}

func (r rule[T]) matches(text string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ruleTable is evaluated top to bottom; the first matching rule wins
type ruleTable[T any] struct {
	rules    []rule[T]
	fallback T
}

func (t ruleTable[T]) classify(text string) T {
	lower := strings.ToLower(text)
	for _, r := range t.rules {
		if r.matches(lower) {
			return r.result
		}
	}
	return t.fallback
}
