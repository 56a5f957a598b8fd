package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/glycemic/internal/catalog"
	"github.com/lehigh-university-libraries/glycemic/internal/config"
	"github.com/lehigh-university-libraries/glycemic/internal/models"
)

// options is shared by every subcommand. cfg is filled in before any
// subcommand runs.
type options struct {
	cfg         *config.Config
	catalogPath string
	recipesPath string
	verbose     bool
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "glycemic",
		Short: "Browse foods by glycemic index and load, and total up a selection",
		Long: `Glycemic loads a catalog of foods with their glycemic index and glycemic load,
filters it by cuisine category or name, and aggregates a selection into totals,
truncated averages and a Good / Bad / Worse rating.

The catalog defaults to the bundled data. Point --catalog (or catalog.path in
glycemic.yaml, or GLYCEMIC_CATALOG_PATH) at a JSON, JSONL, YAML, TOML or
Parquet file, or at an http(s) URL, to use your own.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if opts.verbose {
				cfg.Logging.Level = "debug"
			}
			opts.cfg = cfg

			slog.SetDefault(newLogger(cmd.ErrOrStderr(), cfg))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "Food catalog file or URL (overrides catalog.path)")
	cmd.PersistentFlags().StringVar(&opts.recipesPath, "recipes", "", "Recipe file or URL (overrides catalog.recipes_path)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	cmd.AddCommand(newFoodsCmd(opts))
	cmd.AddCommand(newCategoriesCmd(opts))
	cmd.AddCommand(newSummaryCmd(opts))
	cmd.AddCommand(newRecipesCmd(opts))
	cmd.AddCommand(newCatalogCmd(opts))
	cmd.AddCommand(newServeCmd(opts))

	return cmd
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.Logging.Format) == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

func (o *options) foodsSource() string {
	if o.catalogPath != "" {
		return o.catalogPath
	}
	return o.cfg.Catalog.Path
}

func (o *options) recipesSource() string {
	if o.recipesPath != "" {
		return o.recipesPath
	}
	return o.cfg.Catalog.RecipesPath
}

// loadFoods loads the configured catalog and returns it with a label for
// where it came from.
func (o *options) loadFoods(ctx context.Context) ([]models.Food, string, error) {
	source := o.foodsSource()
	foods, err := catalog.LoadFrom(ctx, source)
	if err != nil {
		return nil, "", err
	}
	if source == "" {
		source = "embedded foods.json"
	}
	slog.Debug("Catalog loaded", "source", source, "records", len(foods))
	return foods, source, nil
}

func (o *options) loadRecipes(ctx context.Context) ([]models.Recipe, error) {
	recipes, err := catalog.LoadRecipesFrom(ctx, o.recipesSource())
	if err != nil {
		return nil, err
	}
	slog.Debug("Recipes loaded", "records", len(recipes))
	return recipes, nil
}
