package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/glycemic/internal/catalog"
	"github.com/lehigh-university-libraries/glycemic/internal/results"
)

func newRecipesCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "List recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recipes, err := opts.loadRecipes(cmd.Context())
			if err != nil {
				return err
			}
			return results.WriteRecipes(cmd.OutOrStdout(), output, recipes)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", results.FormatText, "Output format (text, json, csv, yaml)")

	cmd.AddCommand(newRecipesShowCmd(opts))

	return cmd
}

func newRecipesShowCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show a recipe with its ingredient ratings and averages",
		Example: `  glycemic recipes show "fried rice"
  glycemic recipes show Tacos --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipes, err := opts.loadRecipes(cmd.Context())
			if err != nil {
				return err
			}

			name := strings.Join(args, " ")
			recipe, ok := catalog.FindRecipe(recipes, name)
			if !ok {
				return fmt.Errorf("recipe %q not found", name)
			}

			return results.WriteRecipe(cmd.OutOrStdout(), output, results.NewRecipeDetail(recipe))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", results.FormatText, "Output format (text, json, yaml)")

	return cmd
}
