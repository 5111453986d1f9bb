// Package rules holds the per-language configuration driving OCR error
// correction and structure extraction: substitution rules, pattern sets,
// and abbreviation lists. Rule sets are plain data, loaded once and passed
// by value; nothing in this package keeps global state.
package rules

import (
	"fmt"
	"os"

	yaml "go.yaml.in/yaml/v3"
)

// Substitution is one ordered regex replacement fixing a systematic
// recognizer mistake. Patterns are expected to be anchored tightly enough
// (word boundaries, surrounding letter classes) that they never match
// inside already-correct words.
type Substitution struct {
	ID          string `yaml:"id" json:"id"`
	Pattern     string `yaml:"pattern" json:"pattern"`
	Replacement string `yaml:"replacement" json:"replacement"`
}

// HeaderPattern matches one kind of header line. Patterns within a rule set
// are evaluated in order; the first match wins. Group 1 captures the header
// number (if any), group 2 the title.
type HeaderPattern struct {
	ID       string   `yaml:"id" json:"id"`
	Kind     string   `yaml:"kind" json:"kind"`
	Pattern  string   `yaml:"pattern" json:"pattern"`
	Keywords []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
}

// FootnotePattern matches a footnote marker line. Group 1 captures the
// reference, group 2 the body text.
type FootnotePattern struct {
	ID      string `yaml:"id" json:"id"`
	Kind    string `yaml:"kind" json:"kind"`
	Pattern string `yaml:"pattern" json:"pattern"`
}

// DialoguePattern matches a dialogue turn. Group 1 captures the speaker;
// the optional middle group a speaker note; the last group the spoken text.
type DialoguePattern struct {
	ID      string `yaml:"id" json:"id"`
	Pattern string `yaml:"pattern" json:"pattern"`
}

// RuleSet is the complete rule configuration for one language.
type RuleSet struct {
	Language         string            `yaml:"language" json:"language"`
	Substitutions    []Substitution    `yaml:"substitutions,omitempty" json:"substitutions,omitempty"`
	HeaderPatterns   []HeaderPattern   `yaml:"header_patterns,omitempty" json:"header_patterns,omitempty"`
	FootnotePatterns []FootnotePattern `yaml:"footnote_patterns,omitempty" json:"footnote_patterns,omitempty"`
	DialoguePatterns []DialoguePattern `yaml:"dialogue_patterns,omitempty" json:"dialogue_patterns,omitempty"`
	// Abbreviations that end with a period but do not end a sentence,
	// e.g. "z.B." or "Dr."
	Abbreviations []string `yaml:"abbreviations,omitempty" json:"abbreviations,omitempty"`
}

// LoadFile reads rule sets from a YAML file and registers them into a copy
// of the given registry, overriding built-ins for the same language.
func LoadFile(path string, base *Registry) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var file struct {
		RuleSets []RuleSet `yaml:"rule_sets"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	reg := NewRegistry()
	if base != nil {
		for _, lang := range base.List() {
			rs, _ := base.Get(lang)
			reg.Register(rs)
		}
	}
	for _, rs := range file.RuleSets {
		if rs.Language == "" {
			return nil, fmt.Errorf("rule set without a language code in %s", path)
		}
		reg.Register(rs)
	}

	return reg, nil
}
