package results

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/glycemic/internal/metrics"
)

// SummaryReport is the YAML document written for a summary
type SummaryReport struct {
	Config  ReportConfig     `yaml:"config"`
	Summary *metrics.Summary `yaml:"summary"`
}

// ReportConfig records where the numbers came from
type ReportConfig struct {
	Catalog   string `yaml:"catalog"`
	Records   int    `yaml:"records"`
	Timestamp string `yaml:"timestamp"`
}

func newSummaryReport(catalogSource string, records int, summary *metrics.Summary) SummaryReport {
	return SummaryReport{
		Config: ReportConfig{
			Catalog:   catalogSource,
			Records:   records,
			Timestamp: summary.GeneratedAt.Format("2006-01-02_15-04-05"),
		},
		Summary: summary,
	}
}

// WriteSummaryYAML encodes the summary report to w
func WriteSummaryYAML(w io.Writer, catalogSource string, records int, summary *metrics.Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newSummaryReport(catalogSource, records, summary)); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return enc.Close()
}

// SaveToYAML writes the summary report into dir and returns the file path
func SaveToYAML(dir, catalogSource string, records int, summary *metrics.Summary) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create summaries directory: %w", err)
	}

	report := newSummaryReport(catalogSource, records, summary)
	filename := filepath.Join(dir, fmt.Sprintf("summary-%s.yaml", report.Config.Timestamp))

	data, err := yaml.Marshal(&report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	return filename, nil
}
