package quality

import (
	"regexp"
	"strings"
)

// SimilarityMetrics compares processed text against the pre-enhancement
// original at character and word level.
type SimilarityMetrics struct {
	CharacterSimilarity float64 `json:"character_similarity" yaml:"character_similarity"`
	WordSimilarity      float64 `json:"word_similarity" yaml:"word_similarity"`
	WordAccuracy        float64 `json:"word_accuracy" yaml:"word_accuracy"`
	WordErrorRate       float64 `json:"word_error_rate" yaml:"word_error_rate"`
	TotalWordsOriginal  int     `json:"total_words_original" yaml:"total_words_original"`
	TotalWordsProcessed int     `json:"total_words_processed" yaml:"total_words_processed"`
	CorrectWords        int     `json:"correct_words" yaml:"correct_words"`
	Substitutions       int     `json:"substitutions" yaml:"substitutions"`
	Deletions           int     `json:"deletions" yaml:"deletions"`
	Insertions          int     `json:"insertions" yaml:"insertions"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

func normalizeForComparison(text string) string {
	text = whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " ")
	return strings.ToLower(text)
}

// CompareTexts computes similarity metrics between the original and the
// processed text.
func CompareTexts(original, processed string) SimilarityMetrics {
	origNorm := normalizeForComparison(original)
	procNorm := normalizeForComparison(processed)

	charSim := similarity(origNorm, procNorm)

	origWords := strings.Fields(origNorm)
	procWords := strings.Fields(procNorm)
	wordSim := similarity(strings.Join(origWords, " "), strings.Join(procWords, " "))

	accuracy, correct, subs, dels, ins := wordLevelMetrics(origWords, procWords)

	return SimilarityMetrics{
		CharacterSimilarity: charSim,
		WordSimilarity:      wordSim,
		WordAccuracy:        accuracy,
		WordErrorRate:       1.0 - accuracy,
		TotalWordsOriginal:  len(origWords),
		TotalWordsProcessed: len(procWords),
		CorrectWords:        correct,
		Substitutions:       subs,
		Deletions:           dels,
		Insertions:          ins,
	}
}

func levenshteinDistance(s1, s2 string) int {
	len1, len2 := len(s1), len(s2)
	if len1 == 0 {
		return len2
	}
	if len2 == 0 {
		return len1
	}

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			matrix[i][j] = min(
				min(matrix[i-1][j]+1, matrix[i][j-1]+1),
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[len1][len2]
}

func similarity(s1, s2 string) float64 {
	maxLen := max(len(s1), len(s2))
	if maxLen == 0 {
		return 1.0
	}
	distance := levenshteinDistance(s1, s2)
	return 1.0 - float64(distance)/float64(maxLen)
}

// wordLevelMetrics runs an edit-distance alignment over word sequences and
// backtracks to count matches, substitutions, deletions, and insertions.
func wordLevelMetrics(orig, proc []string) (float64, int, int, int, int) {
	m, n := len(orig), len(proc)
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}

	for i := 0; i <= m; i++ {
		dp[i][0] = i
	}
	for j := 0; j <= n; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if orig[i-1] == proc[j-1] {
				dp[i][j] = dp[i-1][j-1]
			} else {
				dp[i][j] = 1 + min(
					min(dp[i-1][j], dp[i][j-1]),
					dp[i-1][j-1],
				)
			}
		}
	}

	i, j := m, n
	substitutions, deletions, insertions, correct := 0, 0, 0, 0

	for i > 0 || j > 0 {
		if i > 0 && j > 0 && orig[i-1] == proc[j-1] {
			correct++
			i--
			j--
		} else if i > 0 && j > 0 && dp[i][j] == dp[i-1][j-1]+1 {
			substitutions++
			i--
			j--
		} else if i > 0 && dp[i][j] == dp[i-1][j]+1 {
			deletions++
			i--
		} else if j > 0 && dp[i][j] == dp[i][j-1]+1 {
			insertions++
			j--
		}
	}

	totalEdits := substitutions + deletions + insertions
	wer := 0.0
	if m > 0 {
		wer = float64(totalEdits) / float64(m)
	}

	return 1.0 - wer, correct, substitutions, deletions, insertions
}
