package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/glycemic/internal/catalog"
	"github.com/lehigh-university-libraries/glycemic/internal/metrics"
	"github.com/lehigh-university-libraries/glycemic/internal/results"
	"github.com/lehigh-university-libraries/glycemic/internal/selection"
)

func newSummaryCmd(opts *options) *cobra.Command {
	var output string
	var saveDir string
	var saveJSON string
	var list bool

	cmd := &cobra.Command{
		Use:   "summary [FOOD...]",
		Short: "Total and average the glycemic values of selected foods",
		Long: `Selects the named foods and prints the sum and truncated average of their
glycemic index and glycemic load, each average rated Good (10 or less),
Bad (11 to 20) or Worse (above 20).

Names match exactly first, then ignoring case. Each name toggles its food,
so naming a food twice leaves it out. With --list the catalog is printed in
name order instead.`,
		Example: `  # Two foods
  glycemic summary Apple "Fried Rice"

  # Save a YAML report
  glycemic summary Apple Banana --save ./summaries

  # Every food, sorted by name
  glycemic summary --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			foods, source, err := opts.loadFoods(cmd.Context())
			if err != nil {
				return err
			}

			if list {
				return results.WriteFoods(cmd.OutOrStdout(), output, catalog.SortedByName(foods))
			}

			selected := selection.New()
			for _, name := range args {
				food, ok := catalog.Find(foods, name)
				if !ok {
					return fmt.Errorf("food %q not found in %s", name, source)
				}
				selected = selection.Toggle(selected, food)
			}

			summary := metrics.Summarize(selected)
			slog.Debug("Selection summarized", "selected", len(selected), "avg_index", summary.Stats.AvgIndex, "avg_load", summary.Stats.AvgLoad)

			if err := results.WriteSummary(cmd.OutOrStdout(), output, summary, source, len(foods)); err != nil {
				return err
			}

			if saveDir != "" {
				path, err := results.SaveToYAML(saveDir, source, len(foods), summary)
				if err != nil {
					return err
				}
				slog.Info("Summary saved", "path", path)
			}

			if saveJSON != "" {
				if err := summary.SaveToJSON(saveJSON); err != nil {
					return err
				}
				slog.Info("Summary saved", "path", saveJSON)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", results.FormatText, "Output format (text, json, csv, yaml)")
	cmd.Flags().StringVar(&saveDir, "save", "", "Directory to write a timestamped YAML report into")
	cmd.Flags().StringVar(&saveJSON, "save-json", "", "File to write the summary to as JSON")
	cmd.Flags().BoolVar(&list, "list", false, "List every food sorted by name instead of summarizing")

	return cmd
}
