package quality

// Severity ranks an issue's impact on the overall score.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// IssueType names the quality dimension an issue belongs to.
type IssueType string

const (
	IssueStructure    IssueType = "structure"
	IssueReadability  IssueType = "readability"
	IssueCleanliness  IssueType = "cleanliness"
	IssueCompleteness IssueType = "completeness"
	IssueFormatting   IssueType = "formatting"
)

// Issue is one detected quality problem.
type Issue struct {
	Type        IssueType `json:"type" yaml:"type"`
	Severity    Severity  `json:"severity" yaml:"severity"`
	Description string    `json:"description" yaml:"description"`
}

// Weights centralizes every scoring constant so the scoring function stays
// pure and independently testable.
type Weights struct {
	Readability float64
	Structure   float64
	Cleanliness float64

	Penalties map[Severity]float64

	// ValidThreshold is the minimum score for a passing document.
	ValidThreshold float64
}

// DefaultWeights returns the standard scoring configuration.
func DefaultWeights() Weights {
	return Weights{
		Readability: 0.3,
		Structure:   0.3,
		Cleanliness: 0.4,
		Penalties: map[Severity]float64{
			SeverityLow:      0.02,
			SeverityMedium:   0.05,
			SeverityHigh:     0.1,
			SeverityCritical: 0.2,
		},
		ValidThreshold: 0.7,
	}
}

// Score combines the component scores and subtracts a penalty per issue,
// clamping the result to [0, 1].
func Score(readability, structural, cleanliness float64, issues []Issue, w Weights) float64 {
	score := w.Readability*readability + w.Structure*structural + w.Cleanliness*cleanliness
	for _, issue := range issues {
		score -= w.Penalties[issue.Severity]
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// HasCritical reports whether any issue is critical.
func HasCritical(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
