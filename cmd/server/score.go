package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/impact-assessment/internal/chart"
	"github.com/BerylCAtieno/impact-assessment/internal/models"
	"github.com/BerylCAtieno/impact-assessment/internal/questionnaire"
	"github.com/BerylCAtieno/impact-assessment/internal/scoring"
)

func newScoreCmd() *cobra.Command {
	var (
		responses []int
		chartPath string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a response list without saving it",
		Example: "  isaq score --responses 3,4,2,5,5,1,4,4,3,6,5,2,4,5,3\n" +
			"  isaq score --responses 6,6,1,6,6,1,6,6,1,6,6,1,6,6,1 --chart result.svg",
		RunE: func(cmd *cobra.Command, args []string) error {
			vector, err := scoring.ValidateResponses(responses)
			if err != nil {
				return err
			}

			result := scoring.ComputeScores(questionnaire.Items(), vector)
			tier := scoring.Classify(result.Total)

			out := cmd.OutOrStdout()
			for _, d := range models.Dimensions {
				fmt.Fprintf(out, "%-14s %2d/%d\n", d, result.Score(d), chart.ScaleMax)
			}
			fmt.Fprintf(out, "%-14s %2d/%d\n", "Total", result.Total, models.ItemCount*questionnaire.MaxValue)
			fmt.Fprintln(out, tier.Message())

			if chartPath == "" {
				return nil
			}
			svg, err := chart.NewRadar().Render(result)
			if err != nil {
				return err
			}
			if err := os.WriteFile(chartPath, svg, 0o644); err != nil {
				return fmt.Errorf("failed to write chart: %w", err)
			}
			fmt.Fprintf(out, "chart written to %s\n", chartPath)
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&responses, "responses", nil, "15 comma-separated answers between 1 and 6")
	cmd.Flags().StringVar(&chartPath, "chart", "", "write the radar chart to this SVG file")
	_ = cmd.MarkFlagRequired("responses")
	return cmd
}
