package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/glycemic/internal/models"
)

func rowFromFood(f models.Food) foodRow {
	name, typ := f.Name, string(f.Category)
	index, load, tier := f.GlycemicIndex, f.GlycemicLoad, int(f.Tier)
	return foodRow{
		Name:          &name,
		Type:          &typ,
		GlycemicIndex: &index,
		GlycemicLoad:  &load,
		Category:      &tier,
	}
}

func parquetRowFromFood(f models.Food) parquetRow {
	index, load, tier := int64(f.GlycemicIndex), int64(f.GlycemicLoad), int64(f.Tier)
	return parquetRow{
		FoodName:      f.Name,
		Type:          string(f.Category),
		GlycemicIndex: &index,
		GlycemicLoad:  &load,
		Category:      &tier,
	}
}

// Save writes foods to path in the format implied by its extension, using
// the same field names the loader reads.
func Save(path string, foods []models.Food) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	slog.Debug("Writing catalog", "path", path, "format", format, "records", len(foods))

	if format == FormatParquet {
		rows := make([]parquetRow, 0, len(foods))
		for _, f := range foods {
			rows = append(rows, parquetRowFromFood(f))
		}
		if err := parquet.WriteFile(path, rows); err != nil {
			return fmt.Errorf("failed to write parquet file: %w", err)
		}
		return nil
	}

	rows := make([]foodRow, 0, len(foods))
	for _, f := range foods {
		rows = append(rows, rowFromFood(f))
	}

	var out []byte
	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(rows, "", "  ")
		out = append(out, '\n')
	case FormatJSONL:
		for _, row := range rows {
			line, mErr := json.Marshal(row)
			if mErr != nil {
				err = mErr
				break
			}
			out = append(out, line...)
			out = append(out, '\n')
		}
	case FormatYAML:
		out, err = yaml.Marshal(rows)
	case FormatTOML:
		out, err = toml.Marshal(tomlFile{Foods: rows})
	}
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}

	return nil
}
