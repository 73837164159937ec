// Package completion resolves tab-completion candidates against the live
// evaluation namespace.
package completion

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/burst-go/burst/internal/domain"
	"github.com/burst-go/burst/internal/ports"
)

// attrPattern splits "expr.attr" where expr is an identifier/indexing chain.
var attrPattern = regexp.MustCompile(`^([\w\[\]\-]+(\.[\w\[\]]+)*)\.(\w*)$`)

// Engine produces completion candidates. Nothing is cached between calls.
type Engine struct {
	keywords []string
	globals  []ports.Namespace
	scopes   []ports.Namespace
}

// NewEngine builds an engine.
//
// globals are the scopes whose keys feed fresh-identifier completion.
// scopes is the explicit search order for attribute prefixes: the first
// scope that resolves the prefix wins.
func NewEngine(keywords []string, globals []ports.Namespace, scopes []ports.Namespace) *Engine {
	return &Engine{keywords: keywords, globals: globals, scopes: scopes}
}

// Complete returns the sorted candidates for text. ok is false when text is
// an attribute path that cannot be parsed; global completion is not tried
// in that case.
func (e *Engine) Complete(text string) (candidates []string, ok bool) {
	if strings.Contains(text, ".") {
		return e.attrMatches(text)
	}
	return e.globalMatches(text), true
}

func (e *Engine) globalMatches(text string) []string {
	seen := make(map[string]struct{})
	add := func(word string) {
		if word == domain.ReservedKey || !strings.HasPrefix(word, text) {
			return
		}
		seen[word] = struct{}{}
	}
	for _, word := range e.keywords {
		add(word)
	}
	for _, scope := range e.globals {
		for _, word := range scope.Keys() {
			add(word)
		}
	}
	return sortedSet(seen)
}

func (e *Engine) attrMatches(text string) ([]string, bool) {
	m := attrPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	expr, attr := m[1], m[3]

	scope, value, err := e.resolve(expr)
	if err != nil {
		return []string{}, true
	}

	seen := make(map[string]struct{})
	for _, word := range e.members(scope, value) {
		if word == domain.ReservedKey || !strings.HasPrefix(word, attr) {
			continue
		}
		seen[expr+"."+word] = struct{}{}
	}
	return sortedSet(seen), true
}

func (e *Engine) resolve(expr string) (scope ports.Namespace, value any, err error) {
	err = fmt.Errorf("%s: no scope to resolve in", expr)
	for _, s := range e.scopes {
		v, rerr := safeResolve(s, expr)
		if rerr == nil {
			return s, v, nil
		}
		err = rerr
	}
	return nil, nil, err
}

// safeResolve turns a panicking scope into an error.
func safeResolve(s ports.Namespace, expr string) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, fmt.Errorf("resolve %s: %v", expr, r)
		}
	}()
	return s.Resolve(expr)
}

func (e *Engine) members(s ports.Namespace, v any) (words []string) {
	defer func() {
		if r := recover(); r != nil {
			words = nil
		}
	}()
	return s.Members(v)
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
