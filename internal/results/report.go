// Package results renders foods, recipes and summaries for the CLI.
package results

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/glycemic/internal/catalog"
	"github.com/lehigh-university-libraries/glycemic/internal/metrics"
	"github.com/lehigh-university-libraries/glycemic/internal/models"
)

// Output formats accepted by the writers
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatYAML = "yaml"
)

func unsupported(format string) error {
	return fmt.Errorf("unsupported format: %s", format)
}

// WriteFoods renders a food list
func WriteFoods(w io.Writer, format string, foods []models.Food) error {
	switch format {
	case FormatText:
		if len(foods) == 0 {
			_, err := fmt.Fprintln(w, "No foods found.")
			return err
		}
		for i, f := range foods {
			fmt.Fprintf(w, "[%d] %s (%s)\n", i+1, f.Name, f.Category)
			fmt.Fprintf(w, "    Glycemic Index: %d | Glycemic Load: %d | %s\n", f.GlycemicIndex, f.GlycemicLoad, f.Tier)
		}
		return nil
	case FormatJSON:
		return writeJSON(w, nonNil(foods))
	case FormatYAML:
		return writeYAML(w, nonNil(foods))
	case FormatCSV:
		writer := csv.NewWriter(w)
		if err := writer.Write([]string{"Name", "Category", "Glycemic Index", "Glycemic Load", "Tier"}); err != nil {
			return err
		}
		for _, f := range foods {
			row := []string{f.Name, string(f.Category), strconv.Itoa(f.GlycemicIndex), strconv.Itoa(f.GlycemicLoad), f.Tier.String()}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
		writer.Flush()
		return writer.Error()
	default:
		return unsupported(format)
	}
}

// WriteCategories renders the category list with food counts
func WriteCategories(w io.Writer, format string, counts []catalog.CategoryCount, active models.Category) error {
	switch format {
	case FormatText:
		for _, c := range counts {
			marker := " "
			if c.Category == active {
				marker = "*"
			}
			fmt.Fprintf(w, "%s %-16s %d\n", marker, c.Category, c.Count)
		}
		return nil
	case FormatJSON:
		return writeJSON(w, counts)
	case FormatYAML:
		return writeYAML(w, counts)
	case FormatCSV:
		writer := csv.NewWriter(w)
		if err := writer.Write([]string{"Category", "Count"}); err != nil {
			return err
		}
		for _, c := range counts {
			if err := writer.Write([]string{string(c.Category), strconv.Itoa(c.Count)}); err != nil {
				return err
			}
		}
		writer.Flush()
		return writer.Error()
	default:
		return unsupported(format)
	}
}

// WriteSummary renders a selection summary. catalogSource and records only
// appear in the YAML report header.
func WriteSummary(w io.Writer, format string, summary *metrics.Summary, catalogSource string, records int) error {
	switch format {
	case FormatText:
		summary.PrintSummary(w)
		return nil
	case FormatJSON:
		return writeJSON(w, summary)
	case FormatYAML:
		return WriteSummaryYAML(w, catalogSource, records, summary)
	case FormatCSV:
		writer := csv.NewWriter(w)
		rows := [][]string{
			{"Selected", "Sum Index", "Sum Load", "Avg Index", "Avg Load", "Index Tier", "Load Tier"},
			{
				strings.Join(summary.Selected, ";"),
				strconv.Itoa(summary.Stats.SumIndex),
				strconv.Itoa(summary.Stats.SumLoad),
				strconv.Itoa(summary.Stats.AvgIndex),
				strconv.Itoa(summary.Stats.AvgLoad),
				summary.IndexTier.String(),
				summary.LoadTier.String(),
			},
		}
		if err := writer.WriteAll(rows); err != nil {
			return err
		}
		return nil
	default:
		return unsupported(format)
	}
}

// RecipeDetail is a recipe together with the aggregate of its ingredients
type RecipeDetail struct {
	models.Recipe `yaml:",inline"`
	Stats         metrics.Stats `json:"stats" yaml:"stats"`
	IndexTier     models.Tier   `json:"index_tier" yaml:"index_tier"`
	LoadTier      models.Tier   `json:"load_tier" yaml:"load_tier"`
}

// NewRecipeDetail aggregates the recipe's ingredients
func NewRecipeDetail(recipe models.Recipe) RecipeDetail {
	stats := metrics.Aggregate(recipe.Ingredients)
	return RecipeDetail{
		Recipe:    recipe,
		Stats:     stats,
		IndexTier: stats.IndexTier(),
		LoadTier:  stats.LoadTier(),
	}
}

// WriteRecipes renders the recipe list
func WriteRecipes(w io.Writer, format string, recipes []models.Recipe) error {
	switch format {
	case FormatText:
		if len(recipes) == 0 {
			_, err := fmt.Fprintln(w, "No recipes found.")
			return err
		}
		for i, r := range recipes {
			fmt.Fprintf(w, "[%d] %s (%s)\n", i+1, r.Name, r.Cuisine)
		}
		return nil
	case FormatJSON:
		return writeJSON(w, recipes)
	case FormatYAML:
		return writeYAML(w, recipes)
	case FormatCSV:
		writer := csv.NewWriter(w)
		if err := writer.Write([]string{"Name", "Cuisine", "Ingredients"}); err != nil {
			return err
		}
		for _, r := range recipes {
			if err := writer.Write([]string{r.Name, r.Cuisine, strconv.Itoa(len(r.Ingredients))}); err != nil {
				return err
			}
		}
		writer.Flush()
		return writer.Error()
	default:
		return unsupported(format)
	}
}

// WriteRecipe renders one recipe in detail
func WriteRecipe(w io.Writer, format string, detail RecipeDetail) error {
	switch format {
	case FormatText:
		fmt.Fprintln(w, detail.Name)
		fmt.Fprintf(w, "Cuisine: %s\n\n", detail.Cuisine)
		fmt.Fprintln(w, "Ingredients:")
		for _, ing := range detail.Ingredients {
			fmt.Fprintf(w, "  %s: (GI: %d, GL: %d, Category: %s)\n", ing.Name, ing.GlycemicIndex, ing.GlycemicLoad, ing.Tier)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Instructions:")
		for i, step := range detail.Instructions {
			fmt.Fprintf(w, "  %d. %s\n", i+1, step)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Average Glycemic Index: %d (%s)\n", detail.Stats.AvgIndex, detail.IndexTier)
		fmt.Fprintf(w, "Average Glycemic Load:  %d (%s)\n", detail.Stats.AvgLoad, detail.LoadTier)
		return nil
	case FormatJSON:
		return writeJSON(w, detail)
	case FormatYAML:
		return writeYAML(w, detail)
	default:
		return unsupported(format)
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

func nonNil(foods []models.Food) []models.Food {
	if foods == nil {
		return []models.Food{}
	}
	return foods
}
