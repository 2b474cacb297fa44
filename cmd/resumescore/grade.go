package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring"
)

func newGradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grade <score>",
		Short: "Print the letter grade for an overall score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("score must be an integer: %w", err)
			}
			if score < 0 || score > 100 {
				return fmt.Errorf("score %d out of range 0-100", score)
			}
			fmt.Fprintln(cmd.OutOrStdout(), scoring.Grade(score))
			return nil
		},
	}
}
