// internal/matching/keyword/keyword.go
package keyword

import "strings"

// Rule maps a label to the keywords that select it.
type Rule struct {
	Label    string
	Keywords []string
}

// Table is an ordered rule list. When several rules match, the first one
// declared wins.
type Table []Rule

// Classify returns the label of the first rule with a keyword contained in
// text, or def when nothing matches. text is expected to be lower-cased.
//
// Matching is plain substring containment, so "api" also matches "rapid".
func (t Table) Classify(text, def string) string {
	for _, rule := range t {
		if ContainsAny(text, rule.Keywords) {
			return rule.Label
		}
	}
	return def
}

// Matches returns every label whose rule matches text, in table order.
func (t Table) Matches(text string) []string {
	var labels []string
	for _, rule := range t {
		if ContainsAny(text, rule.Keywords) {
			labels = append(labels, rule.Label)
		}
	}
	return labels
}

// Labels returns all labels in declaration order.
func (t Table) Labels() []string {
	labels := make([]string, len(t))
	for i, rule := range t {
		labels[i] = rule.Label
	}
	return labels
}

// ContainsAny reports whether text contains any of the keywords.
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// CountMatches returns how many of the keywords occur in text. Each keyword
// counts at most once.
func CountMatches(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

// Normalize lower-cases text once so every pass can match against it.
func Normalize(text string) string {
	return strings.ToLower(text)
}
