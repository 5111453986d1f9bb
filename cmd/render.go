package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bookstruct/pkg/pipeline"
	"github.com/lehigh-university-libraries/bookstruct/pkg/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Reconstruct a document and emit it as Markdown",
	RunE:  runRender,
}

var (
	renderInput  string
	renderText   string
	renderLang   string
	renderRules  string
	renderOutput string
)

func init() {
	RootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderInput, "input", "i", "", "Path to recognizer JSON output (per-page symbols)")
	renderCmd.Flags().StringVar(&renderText, "text", "", "Path to a plain text file (no geometry)")
	renderCmd.Flags().StringVarP(&renderLang, "lang", "l", "de", "Language code selecting the rule set")
	renderCmd.Flags().StringVar(&renderRules, "rules", "", "YAML rule file overriding the built-in rule sets")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output path for the Markdown (prints to stdout if not specified)")

	renderCmd.MarkFlagsMutuallyExclusive("input", "text")
	renderCmd.MarkFlagsOneRequired("input", "text")
}

func runRender(cmd *cobra.Command, args []string) error {
	result, err := runPipeline(cmd.Context(), renderLang, renderRules, renderInput, renderText, pipeline.DefaultOptions())
	if err != nil {
		return err
	}

	return outputResult(renderOutput, render.Markdown(result.Book))
}
