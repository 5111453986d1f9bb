package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/bookstruct/internal/utils"
	"github.com/lehigh-university-libraries/bookstruct/pkg/ocr"
	"github.com/lehigh-university-libraries/bookstruct/pkg/pipeline"
	"github.com/lehigh-university-libraries/bookstruct/pkg/rules"
)

// loadRegistry returns the built-in rule sets, overlaid with a rule file
// when one is given.
func loadRegistry(rulesPath string) (*rules.Registry, error) {
	reg := rules.DefaultRegistry()
	if rulesPath == "" {
		return reg, nil
	}
	return rules.LoadFile(rulesPath, reg)
}

// loadPages reads recognizer output: a JSON array of pages carrying either
// per-symbol geometry or plain text.
func loadPages(path string) ([]ocr.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recognizer output: %w", err)
	}
	var pages []ocr.Page
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("failed to parse recognizer output: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("recognizer output %s contains no pages", path)
	}
	return pages, nil
}

// runPipeline builds a pipeline for the requested language and processes
// either recognizer pages or a plain text file.
func runPipeline(ctx context.Context, lang, rulesPath, inputPath, textPath string, opts pipeline.Options) (*pipeline.Result, error) {
	reg, err := loadRegistry(rulesPath)
	if err != nil {
		return nil, err
	}

	rs, err := reg.Get(lang)
	if err != nil {
		return nil, err
	}

	p, err := pipeline.New(rs, opts, slog.Default())
	if err != nil {
		return nil, err
	}

	if inputPath != "" {
		pages, err := loadPages(inputPath)
		if err != nil {
			return nil, err
		}
		slog.Info("Processing recognizer pages", "pages", len(pages), "language", lang)
		return p.ProcessPages(ctx, pages)
	}

	text, err := utils.ReadTextFile(textPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}
	slog.Info("Processing plain text", "chars", len(text), "language", lang)
	return p.ProcessText(ctx, text)
}

func outputResult(path, content string) error {
	if path != "" {
		return os.WriteFile(path, []byte(content), 0644)
	}
	fmt.Print(content)
	return nil
}
