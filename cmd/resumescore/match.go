package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring"
)

func newMatchCmd() *cobra.Command {
	var jd, jdFile string
	cmd := &cobra.Command{
		Use:   "match <file> [jd-file]",
		Short: "Compare a resume against a job description",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				if jdFile != "" || jd != "" {
					return errors.New("give the job description as an argument or a flag, not both")
				}
				jdFile = args[1]
			}
			desc, err := jobDescription(jd, jdFile)
			if err != nil {
				return err
			}
			if strings.TrimSpace(desc) == "" {
				return errors.New("a job description is required (pass a file or use --jd/--jd-file)")
			}
			text, err := readResume(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			m, err := scoring.Match(text, desc)
			if err != nil {
				return fmt.Errorf("match failed: %w", err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(m)
		},
	}
	cmd.Flags().StringVar(&jd, "jd", "", "Job description text")
	cmd.Flags().StringVar(&jdFile, "jd-file", "", "Path to a job description file")
	return cmd
}
