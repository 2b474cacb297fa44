package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/extract"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring"
)

// readResume loads path and returns its plain text.
func readResume(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume: %w", err)
	}
	text, err := extract.ExtractTextFromBytes(ctx, data, "", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %s: %w", path, err)
	}
	return text, nil
}

// jobDescription prefers the inline flag over the file flag.
func jobDescription(inline, path string) (string, error) {
	if strings.TrimSpace(inline) != "" {
		return inline, nil
	}
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	return string(data), nil
}

func loadAnalyzer(weightsPath string) (*scoring.Analyzer, error) {
	if weightsPath == "" {
		return scoring.NewAnalyzer(scoring.DefaultWeights()), nil
	}
	data, err := os.ReadFile(weightsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read weights: %w", err)
	}
	w, err := scoring.ParseWeights(data)
	if err != nil {
		return nil, fmt.Errorf("invalid weights file %s: %w", weightsPath, err)
	}
	return scoring.NewAnalyzer(w), nil
}
