// Package preprocess rewrites console shorthands into canonical statements.
package preprocess

import "regexp"

// Rule rewrites a line whose start matches Pattern.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// DefaultRules are the console aliases, tried in order.
var DefaultRules = []Rule{
	{Pattern: regexp.MustCompile(`^p\s(.*)`), Replacement: "print $1"},
	{Pattern: regexp.MustCompile(`^v\s(.*)`), Replacement: "view($1)"},
	{Pattern: regexp.MustCompile(`^w\s(.*)`), Replacement: "external_view($1)"},
}

// Preprocessor applies an ordered rule list.
type Preprocessor struct {
	rules []Rule
}

// New builds a preprocessor; with no rules it uses DefaultRules.
func New(rules ...Rule) *Preprocessor {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Preprocessor{rules: rules}
}

// Preprocess returns line rewritten by the first matching rule, or line
// unchanged.
func (p *Preprocessor) Preprocess(line string) string {
	for _, rule := range p.rules {
		if rule.Pattern.MatchString(line) {
			return rule.Pattern.ReplaceAllString(line, rule.Replacement)
		}
	}
	return line
}
