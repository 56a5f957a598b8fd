package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/glycemic/internal/models"
	"github.com/lehigh-university-libraries/glycemic/internal/selection"
)

// Tier boundaries applied to averaged glycemic values
const (
	GoodMax = 10
	BadMax  = 20
)

// Stats holds the running totals for a set of foods
type Stats struct {
	Count    int `json:"count" yaml:"count"`
	SumIndex int `json:"sum_index" yaml:"sum_index"`
	SumLoad  int `json:"sum_load" yaml:"sum_load"`
	AvgIndex int `json:"avg_index" yaml:"avg_index"`
	AvgLoad  int `json:"avg_load" yaml:"avg_load"`
}

// IndexTier rates the average glycemic index
func (s Stats) IndexTier() models.Tier {
	return TierOf(s.AvgIndex)
}

// LoadTier rates the average glycemic load
func (s Stats) LoadTier() models.Tier {
	return TierOf(s.AvgLoad)
}

// Aggregate sums glycemic index and load over items and computes their
// averages, truncated toward zero. An empty input yields all zeros.
func Aggregate[S ~[]E, E models.Glycemic](items S) Stats {
	stats := Stats{Count: len(items)}

	for _, item := range items {
		index, load := item.Glycemic()
		stats.SumIndex += index
		stats.SumLoad += load
	}

	if stats.Count > 0 {
		stats.AvgIndex = stats.SumIndex / stats.Count
		stats.AvgLoad = stats.SumLoad / stats.Count
	}

	return stats
}

// TierOf classifies a glycemic value. 20 itself falls in the Bad band.
func TierOf(value int) models.Tier {
	switch {
	case value > BadMax:
		return models.TierWorse
	case value > GoodMax:
		return models.TierBad
	default:
		return models.TierGood
	}
}

// Summary is a point-in-time report of a selection
type Summary struct {
	Selected    []string    `json:"selected" yaml:"selected"`
	Stats       Stats       `json:"stats" yaml:"stats"`
	IndexTier   models.Tier `json:"index_tier" yaml:"index_tier"`
	LoadTier    models.Tier `json:"load_tier" yaml:"load_tier"`
	GeneratedAt time.Time   `json:"generated_at" yaml:"generated_at"`
}

// Summarize builds a Summary for the given selection
func Summarize(selected []models.Food) *Summary {
	names := make([]string, 0, len(selected))
	for _, food := range selected {
		names = append(names, food.Name)
	}

	stats := Aggregate(selected)
	return &Summary{
		Selected:    names,
		Stats:       stats,
		IndexTier:   stats.IndexTier(),
		LoadTier:    stats.LoadTier(),
		GeneratedAt: time.Now(),
	}
}

// PrintSummary writes a human-readable summary
func (s *Summary) PrintSummary(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w, "GLYCEMIC SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 50))

	if len(s.Selected) == 0 {
		fmt.Fprintln(w, "Selected: none")
	} else {
		fmt.Fprintf(w, "Selected: %s\n", strings.Join(selection.LabelNames(s.Selected), ", "))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "TOTAL")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "Glycemic Index: %d\n", s.Stats.SumIndex)
	fmt.Fprintf(w, "Glycemic Load:  %d\n", s.Stats.SumLoad)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "AVERAGE")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "Glycemic Index: %d (%s)\n", s.Stats.AvgIndex, s.IndexTier)
	fmt.Fprintf(w, "Glycemic Load:  %d (%s)\n", s.Stats.AvgLoad, s.LoadTier)
	fmt.Fprintln(w, strings.Repeat("=", 50))
}

// SaveToJSON saves the summary to a JSON file
func (s *Summary) SaveToJSON(filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("failed to encode summary to JSON: %w", err)
	}

	return nil
}
