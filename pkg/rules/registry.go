package rules

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownLanguage is returned when no rule set exists for a requested
// language code. Callers must treat this as fatal for the document rather
// than fall back to another language: running a document through the wrong
// pattern set corrupts structural detection without any signal.
var ErrUnknownLanguage = errors.New("no rule set registered for language")

// Registry manages the available rule sets, keyed by language code.
type Registry struct {
	sets map[string]RuleSet
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sets: make(map[string]RuleSet),
	}
}

// Register adds a rule set, replacing any existing one for the same language.
func (r *Registry) Register(rs RuleSet) {
	r.sets[strings.ToLower(rs.Language)] = rs
}

// Get retrieves the rule set for a language code.
func (r *Registry) Get(lang string) (RuleSet, error) {
	rs, exists := r.sets[strings.ToLower(lang)]
	if !exists {
		return RuleSet{}, fmt.Errorf("%w: %s", ErrUnknownLanguage, lang)
	}
	return rs, nil
}

// List returns all registered language codes, sorted.
func (r *Registry) List() []string {
	var langs []string
	for lang := range r.sets {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Has checks whether a language is registered.
func (r *Registry) Has(lang string) bool {
	_, exists := r.sets[strings.ToLower(lang)]
	return exists
}
