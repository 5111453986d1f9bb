package quality

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// EnhancementStats reports what an upstream enhancement pass actually did.
// Performed distinguishes a real pass from an absent one; an absent pass is
// never treated as a silent success, so its dependent issue rules and
// recommendations are skipped entirely.
type EnhancementStats struct {
	Performed           bool    `json:"performed" yaml:"performed"`
	Confidence          float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	ResolvedDefects     int     `json:"resolved_defects,omitempty" yaml:"resolved_defects,omitempty"`
	UnresolvedDefects   int     `json:"unresolved_defects,omitempty" yaml:"unresolved_defects,omitempty"`
	DebrisRemoved       int     `json:"debris_removed,omitempty" yaml:"debris_removed,omitempty"`
	SpellingCorrections int     `json:"spelling_corrections,omitempty" yaml:"spelling_corrections,omitempty"`
}

// Report is the quality assessment of one processed document. It is
// consumed once by the caller for a pass/fail decision and never mutated
// afterward.
type Report struct {
	Score      float64 `json:"score" yaml:"score"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Valid      bool    `json:"valid" yaml:"valid"`

	Readability  float64 `json:"readability" yaml:"readability"`
	Structure    float64 `json:"structure" yaml:"structure"`
	Cleanliness  float64 `json:"cleanliness" yaml:"cleanliness"`
	Completeness float64 `json:"completeness" yaml:"completeness"`
	Consistency  float64 `json:"consistency" yaml:"consistency"`

	WordCount      int `json:"word_count" yaml:"word_count"`
	SentenceCount  int `json:"sentence_count" yaml:"sentence_count"`
	ParagraphCount int `json:"paragraph_count" yaml:"paragraph_count"`

	// Similarity telemetry against the pre-enhancement text. Informational
	// only; not part of the score.
	CharacterSimilarity float64 `json:"character_similarity" yaml:"character_similarity"`
	WordErrorRate       float64 `json:"word_error_rate" yaml:"word_error_rate"`

	Issues          []Issue  `json:"issues" yaml:"issues"`
	Recommendations []string `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
}

// Validator scores processed text against its pre-enhancement original.
type Validator struct {
	weights       Weights
	abbreviations []string
	log           *slog.Logger
}

// NewValidator creates a validator. Abbreviations keep sentence counting
// honest for the document's language; nil weights fields fall back to the
// defaults.
func NewValidator(w Weights, abbreviations []string, log *slog.Logger) *Validator {
	if w.Penalties == nil {
		w = DefaultWeights()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Validator{
		weights:       w,
		abbreviations: abbreviations,
		log:           log,
	}
}

// Validate computes the full quality report for processed text, comparing
// against the original where a rule calls for it. All collection-size
// divisions are zero-guarded; Validate never fails.
func (v *Validator) Validate(processed, original string, enh EnhancementStats) Report {
	sentences := splitSentences(processed, v.abbreviations)

	report := Report{
		WordCount:      countWords(processed),
		SentenceCount:  len(sentences),
		ParagraphCount: countParagraphs(processed),
	}

	report.Readability = readabilityScore(report.WordCount, report.SentenceCount)
	report.Structure = structureScore(report.ParagraphCount)
	report.Cleanliness = cleanlinessScore(processed)

	missing := missingWordRatio(original, processed, 3)
	report.Completeness = 1 - missing

	sim := CompareTexts(original, processed)
	report.CharacterSimilarity = sim.CharacterSimilarity
	report.WordErrorRate = sim.WordErrorRate

	report.Issues = v.detectIssues(processed, original, sentences, report, missing, enh)

	formatting := 0
	for _, issue := range report.Issues {
		if issue.Type == IssueFormatting {
			formatting++
		}
	}
	report.Consistency = math.Max(0, 1-0.25*float64(formatting))

	report.Score = Score(report.Readability, report.Structure, report.Cleanliness, report.Issues, v.weights)
	report.Valid = report.Score >= v.weights.ValidThreshold && !HasCritical(report.Issues)
	report.Confidence = (report.Cleanliness + report.Completeness) / 2
	report.Recommendations = recommend(report.Issues, enh)

	v.log.Debug("quality validation completed",
		"score", report.Score,
		"valid", report.Valid,
		"issues", len(report.Issues))

	return report
}

func (v *Validator) detectIssues(processed, original string, sentences []string, r Report, missing float64, enh EnhancementStats) []Issue {
	var issues []Issue

	if utf8.RuneCountInString(processed) < 100 {
		issues = append(issues, Issue{
			Type:        IssueStructure,
			Severity:    SeverityHigh,
			Description: "text is shorter than 100 characters",
		})
	}

	if r.ParagraphCount <= 1 && strings.TrimSpace(processed) != "" {
		issues = append(issues, Issue{
			Type:        IssueStructure,
			Severity:    SeverityMedium,
			Description: "no paragraph breaks found",
		})
	}

	if origLen := utf8.RuneCountInString(original); origLen > 0 {
		delta := math.Abs(float64(utf8.RuneCountInString(processed)-origLen)) / float64(origLen)
		if delta > 0.3 {
			issues = append(issues, Issue{
				Type:        IssueStructure,
				Severity:    SeverityMedium,
				Description: fmt.Sprintf("length differs from original by %.0f%%", delta*100),
			})
		}
	}

	if longSentenceRatio(sentences, 50) > 0.2 {
		issues = append(issues, Issue{
			Type:        IssueReadability,
			Severity:    SeverityLow,
			Description: "more than 20% of sentences exceed 50 words",
		})
	}

	if hasResidualArtifacts(processed) {
		issues = append(issues, Issue{
			Type:        IssueCleanliness,
			Severity:    SeverityMedium,
			Description: "residual recognizer artifacts present",
		})
	}

	if enh.Performed && enh.UnresolvedDefects > enh.ResolvedDefects {
		issues = append(issues, Issue{
			Type:        IssueCleanliness,
			Severity:    SeverityHigh,
			Description: fmt.Sprintf("enhancement left %d of %d defects unresolved", enh.UnresolvedDefects, enh.UnresolvedDefects+enh.ResolvedDefects),
		})
	}

	if missing > 0.1 {
		issues = append(issues, Issue{
			Type:        IssueCompleteness,
			Severity:    SeverityHigh,
			Description: fmt.Sprintf("%.0f%% of the original's unique words are missing", missing*100),
		})
	}

	if origLines := countLines(original); origLines > 0 {
		if float64(countLines(processed)) < 0.8*float64(origLines) {
			issues = append(issues, Issue{
				Type:        IssueCompleteness,
				Severity:    SeverityMedium,
				Description: "output has fewer than 80% of the input's lines",
			})
		}
	}

	if len(spaceRun.FindAllString(processed, -1)) > 5 {
		issues = append(issues, Issue{
			Type:        IssueFormatting,
			Severity:    SeverityLow,
			Description: "more than 5 runs of repeated spaces",
		})
	}

	if lineEndingStyles(processed) > 1 {
		issues = append(issues, Issue{
			Type:        IssueFormatting,
			Severity:    SeverityLow,
			Description: "mixed line-ending styles present",
		})
	}

	return issues
}

func hasResidualArtifacts(text string) bool {
	if artifactRun.MatchString(text) {
		return true
	}
	for _, r := range text {
		if isGarbageRune(r) {
			return true
		}
	}
	return false
}

// recommend derives next-step directives from the issues and the upstream
// enhancement telemetry. The output is deterministic for a given input.
func recommend(issues []Issue, enh EnhancementStats) []string {
	var recs []string

	if HasCritical(issues) {
		recs = append(recs, "resolve critical issues before the document continues through the pipeline")
	}

	if enh.Performed && enh.Confidence < 0.7 {
		recs = append(recs, "enhancement confidence is low; re-run enhancement or improve the source scan")
	}

	if t, n := mostFrequentIssueType(issues); n > 2 {
		recs = append(recs, fmt.Sprintf("address recurring %s issues (%d found)", t, n))
	}

	if enh.Performed && enh.DebrisRemoved == 0 {
		recs = append(recs, "no debris removal was recorded; verify the cleanup pass ran")
	}
	if enh.Performed && enh.SpellingCorrections == 0 {
		recs = append(recs, "no spelling corrections were recorded; verify the correction pass ran")
	}

	return recs
}

func mostFrequentIssueType(issues []Issue) (IssueType, int) {
	counts := make(map[IssueType]int)
	for _, issue := range issues {
		counts[issue.Type]++
	}

	types := make([]IssueType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	// Stable winner when counts tie.
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	best := IssueType("")
	bestN := 0
	for _, t := range types {
		if counts[t] > bestN {
			best = t
			bestN = counts[t]
		}
	}
	return best, bestN
}
