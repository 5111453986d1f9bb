package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	yaml "go.yaml.in/yaml/v3"

	"github.com/lehigh-university-libraries/bookstruct/pkg/pipeline"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Reconstruct document structure and score its quality",
	Long: `Reconstruct the structural model of an OCR-recognized document and produce
a quality report.

Input is either recognizer JSON (--input, per-page symbols with bounding
boxes and confidence) or a plain text file (--text, geometric annotation
skipped). The command exits non-zero when the report fails the quality
gate, so it can sit directly in a processing pipeline.`,
	RunE: runAnalyze,
}

var (
	analyzeInput    string
	analyzeText     string
	analyzeLang     string
	analyzeRules    string
	analyzeOutput   string
	analyzeFormat   string
	analyzeWorkers  int
	analyzeMinScore float64
)

func init() {
	RootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "Path to recognizer JSON output (per-page symbols)")
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "Path to a plain text file (no geometry)")
	analyzeCmd.Flags().StringVarP(&analyzeLang, "lang", "l", "de", "Language code selecting the rule set")
	analyzeCmd.Flags().StringVar(&analyzeRules, "rules", "", "YAML rule file overriding the built-in rule sets")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Output path for the structure and report (prints to stdout if not specified)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "yaml", "Output format: yaml or json")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "Concurrent page annotation workers (0 = default)")
	analyzeCmd.Flags().Float64Var(&analyzeMinScore, "min-score", 0, "Minimum passing quality score (0 = default threshold)")

	analyzeCmd.MarkFlagsMutuallyExclusive("input", "text")
	analyzeCmd.MarkFlagsOneRequired("input", "text")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	opts := pipeline.DefaultOptions()
	if analyzeWorkers > 0 {
		opts.Workers = analyzeWorkers
	}
	if analyzeMinScore > 0 {
		opts.Weights.ValidThreshold = analyzeMinScore
	}

	result, err := runPipeline(cmd.Context(), analyzeLang, analyzeRules, analyzeInput, analyzeText, opts)
	if err != nil {
		return err
	}

	content, err := marshalResult(result, analyzeFormat)
	if err != nil {
		return err
	}

	if err := outputResult(analyzeOutput, content); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	if analyzeOutput != "" {
		printSummary(result)
	}

	if !result.Report.Valid {
		return fmt.Errorf("document failed the quality gate: score %.2f, %d issues", result.Report.Score, len(result.Report.Issues))
	}
	return nil
}

func marshalResult(result *pipeline.Result, format string) (string, error) {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	}
	return "", fmt.Errorf("unsupported output format: %s", format)
}

func printSummary(result *pipeline.Result) {
	book := result.Book
	report := result.Report

	fmt.Printf("\n=== STRUCTURE ===\n")
	fmt.Printf("Headers: %d\n", len(book.FlatHeaders()))
	fmt.Printf("Paragraphs: %d\n", len(book.Paragraphs))
	fmt.Printf("Footnotes: %d\n", len(book.Footnotes))
	fmt.Printf("Dialogues: %d\n", len(book.Dialogues))
	fmt.Printf("Max Level: %d\n", book.Hierarchy.MaxLevel)
	fmt.Printf("Numbering: %s (consistent: %t)\n", book.Hierarchy.NumberingStyle, book.Hierarchy.ConsistentNumbering)

	fmt.Printf("\n=== QUALITY ===\n")
	fmt.Printf("Score: %.3f (valid: %t)\n", report.Score, report.Valid)
	fmt.Printf("Readability: %.3f\n", report.Readability)
	fmt.Printf("Structure: %.3f\n", report.Structure)
	fmt.Printf("Cleanliness: %.3f\n", report.Cleanliness)
	fmt.Printf("Completeness: %.3f\n", report.Completeness)
	fmt.Printf("Corrections applied: %d\n", result.Corrections)

	for _, issue := range report.Issues {
		fmt.Printf("  [%s/%s] %s\n", issue.Severity, issue.Type, issue.Description)
	}
	for _, rec := range report.Recommendations {
		fmt.Printf("  -> %s\n", rec)
	}
}
