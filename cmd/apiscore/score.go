package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	service "github.com/tashifkhan/faculty-appraisal-system/internal/app"
	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/model"
	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/types"
)

type scoreFlags struct {
	semester string
}

// scoreOutput is what score prints: the result plus the storage key the
// section would be written under.
type scoreOutput struct {
	Key string `json:"key"`
	types.ScoreResult
}

func newScoreCmd() *cobra.Command {
	f := &scoreFlags{}
	cmd := &cobra.Command{
		Use:   "score <section> <payload-file>",
		Short: "Score a JSON or YAML section payload without storing it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := model.ParseSection(args[0])
			if err != nil {
				return exitError(exitInput, "%v", err)
			}
			payload, err := readPayload(args[1], cmd.InOrStdin())
			if err != nil {
				return exitError(exitInput, "%v", err)
			}
			res, err := service.Evaluate(section, payload)
			if err != nil {
				return exitError(exitInput, "score section %s: %v", section, err)
			}
			return printJSON(cmd, scoreOutput{Key: section.Key(f.semester), ScoreResult: res})
		},
	}
	cmd.Flags().StringVar(&f.semester, "semester", "", "Semester of a 12.1 payload, e.g. odd or even")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
