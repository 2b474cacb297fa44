package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring"
)

type analyzeOptions struct {
	jd      string
	jdFile  string
	weights string
	format  string
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Score a resume file",
		Long:  "Extract text from a resume and print its overall score, grade, sub-scores and ranked suggestions.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.jd, "jd", "", "Job description text to match against")
	cmd.Flags().StringVar(&opts.jdFile, "jd-file", "", "Path to a job description file")
	cmd.Flags().StringVar(&opts.weights, "weights", "", "Path to a YAML weights file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text or json")
	return cmd
}

func runAnalyze(cmd *cobra.Command, path string, opts *analyzeOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", opts.format)
	}
	analyzer, err := loadAnalyzer(opts.weights)
	if err != nil {
		return err
	}
	jd, err := jobDescription(opts.jd, opts.jdFile)
	if err != nil {
		return err
	}
	text, err := readResume(cmd.Context(), path)
	if err != nil {
		return err
	}
	result, err := analyzer.Analyze(text, scoring.Options{JobDescription: jd})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printResult(out, result)
	return nil
}

func printResult(w io.Writer, r scoring.AnalysisResult) {
	fmt.Fprintf(w, "Overall: %d (%s)\n", r.Overall, r.Grade)
	for _, s := range r.SubScores() {
		fmt.Fprintf(w, "  %-8s %3d\n", s.Kind, s.Value)
	}
	if r.Degraded {
		fmt.Fprintln(w, "Warning: no resume sections were recognized")
	}
	if len(r.ExtractedSkills) > 0 {
		fmt.Fprintf(w, "Skills: %s\n", strings.Join(r.ExtractedSkills, ", "))
	}
	if r.JobMatch != nil {
		fmt.Fprintf(w, "Job match: %d\n", r.JobMatch.MatchScore)
		if len(r.JobMatch.MissingSkills) > 0 {
			fmt.Fprintf(w, "  missing skills: %s\n", strings.Join(r.JobMatch.MissingSkills, ", "))
		}
	}
	if len(r.Suggestions) > 0 {
		fmt.Fprintln(w, "Suggestions:")
		for i, s := range r.Suggestions {
			fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, s.Priority, s.Message)
		}
	}
}
