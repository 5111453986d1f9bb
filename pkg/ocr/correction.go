package ocr

import (
	"fmt"
	"regexp"

	"github.com/lehigh-university-libraries/bookstruct/pkg/rules"
)

// Corrector applies a language's ordered substitution rules to recognized
// text. All patterns are compiled once at construction.
type Corrector struct {
	rules []compiledSubstitution
}

type compiledSubstitution struct {
	id          string
	re          *regexp.Regexp
	replacement string
}

// NewCorrector compiles the given substitutions. A pattern that fails to
// compile is a configuration error, not a document error, so construction
// fails rather than skipping the rule silently.
func NewCorrector(subs []rules.Substitution) (*Corrector, error) {
	c := &Corrector{}
	for _, s := range subs {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return nil, fmt.Errorf("substitution %q has an invalid pattern: %w", s.ID, err)
		}
		c.rules = append(c.rules, compiledSubstitution{
			id:          s.ID,
			re:          re,
			replacement: s.Replacement,
		})
	}
	return c, nil
}

// Apply runs every substitution in order and returns the corrected text
// together with the number of replacements made. Rules only rewrite their
// matched spans; applying the result a second time changes nothing, which
// keeps re-runs of the pipeline safe.
func (c *Corrector) Apply(text string) (string, int) {
	corrections := 0
	for _, r := range c.rules {
		matches := r.re.FindAllStringIndex(text, -1)
		if len(matches) == 0 {
			continue
		}
		corrections += len(matches)
		text = r.re.ReplaceAllString(text, r.replacement)
	}
	return text, corrections
}

// RuleCount returns the number of compiled substitution rules.
func (c *Corrector) RuleCount() int {
	return len(c.rules)
}
