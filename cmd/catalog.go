package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/glycemic/internal/catalog"
)

func newCatalogCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate and convert food catalog files",
	}

	cmd.AddCommand(newCatalogValidateCmd(opts))
	cmd.AddCommand(newCatalogConvertCmd())

	return cmd
}

func newCatalogValidateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Check that a catalog loads cleanly",
		Long: `Loads the catalog (FILE, or the configured catalog when omitted) and reports
the first malformed record with its position and field.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.catalogPath = args[0]
			}

			foods, source, err := opts.loadFoods(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d records OK\n", source, len(foods))
			for _, c := range catalog.CountByCategory(foods) {
				fmt.Fprintf(out, "  %-16s %d\n", c.Category, c.Count)
			}
			return nil
		},
	}

	return cmd
}

func newCatalogConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert SRC DST",
		Short: "Convert a catalog between JSON, JSONL, YAML, TOML and Parquet",
		Long: `Reads SRC, validating every record, and writes it to DST. Both formats are
taken from the file extensions. SRC may be an http(s) URL.`,
		Example: `  glycemic catalog convert foods.json foods.parquet
  glycemic catalog convert foods.yaml foods.toml
  glycemic catalog convert foods.parquet foods.jsonl`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			foods, err := catalog.LoadFrom(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if err := catalog.Save(args[1], foods); err != nil {
				return fmt.Errorf("failed to save catalog: %w", err)
			}

			slog.Info("Catalog converted", "from", args[0], "to", args[1], "records", len(foods))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s\n", len(foods), args[1])
			return nil
		},
	}

	return cmd
}
