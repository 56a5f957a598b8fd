package catalog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/glycemic/data"
	"github.com/lehigh-university-libraries/glycemic/internal/metrics"
	"github.com/lehigh-university-libraries/glycemic/internal/models"
)

// Format identifies how a catalog file is encoded
type Format string

const (
	FormatJSON    Format = "json"
	FormatJSONL   Format = "jsonl"
	FormatYAML    Format = "yaml"
	FormatTOML    Format = "toml"
	FormatParquet Format = "parquet"
)

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: .json, .jsonl, .yaml, .toml, .parquet)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// foodRow is the on-disk shape of a food record. Pointers distinguish a
// missing field from a zero value.
type foodRow struct {
	Name          *string `json:"food_name" yaml:"food_name" toml:"food_name"`
	Type          *string `json:"type" yaml:"type" toml:"type"`
	GlycemicIndex *int    `json:"glycemic_index" yaml:"glycemic_index" toml:"glycemic_index"`
	GlycemicLoad  *int    `json:"glycemic_load" yaml:"glycemic_load" toml:"glycemic_load"`
	Category      *int    `json:"category" yaml:"category" toml:"category"`
}

// tomlFile is the TOML catalog layout: one [[foods]] table per record
type tomlFile struct {
	Foods []foodRow `toml:"foods"`
}

type parquetRow struct {
	FoodName      string `parquet:"food_name"`
	Type          string `parquet:"type"`
	GlycemicIndex *int64 `parquet:"glycemic_index,optional"`
	GlycemicLoad  *int64 `parquet:"glycemic_load,optional"`
	Category      *int64 `parquet:"category,optional"`
}

func (r parquetRow) foodRow() foodRow {
	row := foodRow{
		GlycemicIndex: intPtr(r.GlycemicIndex),
		GlycemicLoad:  intPtr(r.GlycemicLoad),
		Category:      intPtr(r.Category),
	}
	if r.FoodName != "" {
		name := r.FoodName
		row.Name = &name
	}
	if r.Type != "" {
		typ := r.Type
		row.Type = &typ
	}
	return row
}

func intPtr(v *int64) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}

// Loader reads a food catalog from a file
type Loader struct {
	path string
}

// NewLoader creates a new catalog loader
func NewLoader(path string) *Loader {
	return &Loader{
		path: path,
	}
}

// Load reads and validates every record. Any malformed record fails the
// whole load with a *LoadError; a partial catalog is never returned.
func (l *Loader) Load() ([]models.Food, error) {
	format, err := FormatFromPath(l.path)
	if err != nil {
		return nil, loadErr(l.path, 0, "", err)
	}

	slog.Debug("Loading catalog", "path", l.path, "format", format)

	if format == FormatParquet {
		return l.loadParquet()
	}

	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, loadErr(l.path, 0, "", err)
	}

	return Decode(bytes.NewReader(raw), format, l.path)
}

// LoadDefault loads the catalog bundled with the binary
func LoadDefault() ([]models.Food, error) {
	return Decode(bytes.NewReader(data.Foods), FormatJSON, "embedded foods.json")
}

// Decode reads a catalog in the given format. source names the input in
// errors. Parquet needs random access and is only read through Loader.
func Decode(r io.Reader, format Format, source string) ([]models.Food, error) {
	var (
		rows []foodRow
		err  error
	)

	switch format {
	case FormatJSON:
		rows, err = decodeJSON(r, source)
	case FormatJSONL:
		rows, err = decodeJSONL(r, source)
	case FormatYAML:
		rows, err = decodeYAML(r, source)
	case FormatTOML:
		rows, err = decodeTOML(r, source)
	default:
		return nil, loadErr(source, 0, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format))
	}
	if err != nil {
		return nil, err
	}

	return buildFoods(rows, source)
}

func decodeJSON(r io.Reader, source string) ([]foodRow, error) {
	var raws []json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raws); err != nil {
		return nil, loadErr(source, 0, "", fmt.Errorf("%w: %v", ErrMalformed, err))
	}
	if err := expectJSONEOF(dec); err != nil {
		return nil, loadErr(source, 0, "", err)
	}

	rows := make([]foodRow, 0, len(raws))
	for i, raw := range raws {
		row, err := unmarshalRow(raw, source, i+1)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func decodeJSONL(r io.Reader, source string) ([]foodRow, error) {
	var rows []foodRow
	scanner := bufio.NewScanner(r)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())

		if len(line) == 0 {
			continue
		}

		row, err := unmarshalRow(line, source, lineNum)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, loadErr(source, 0, "", fmt.Errorf("error reading catalog: %w", err))
	}

	return rows, nil
}

func unmarshalRow(raw []byte, source string, record int) (foodRow, error) {
	var row foodRow
	if err := json.Unmarshal(raw, &row); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return row, loadErr(source, record, typeErr.Field, fmt.Errorf("%w: expected %s, got %s", ErrInvalidValue, typeErr.Type, typeErr.Value))
		}
		return row, loadErr(source, record, "", fmt.Errorf("%w: %v", ErrMalformed, err))
	}
	return row, nil
}

func decodeYAML(r io.Reader, source string) ([]foodRow, error) {
	var nodes []yaml.Node
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&nodes); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, loadErr(source, 0, "", fmt.Errorf("%w: %v", ErrMalformed, err))
	}
	if err := expectYAMLEOF(dec); err != nil {
		return nil, loadErr(source, 0, "", err)
	}

	rows := make([]foodRow, 0, len(nodes))
	for i := range nodes {
		row, err := decodeYAMLRow(&nodes[i])
		if err != nil {
			return nil, loadErr(source, i+1, "", fmt.Errorf("%w: %v", ErrInvalidValue, err))
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func decodeTOML(r io.Reader, source string) ([]foodRow, error) {
	var file tomlFile
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return nil, loadErr(source, 0, "", fmt.Errorf("%w: unknown keys: %s", ErrMalformed, strictErr.String()))
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			line, col := decodeErr.Position()
			return nil, loadErr(source, 0, strings.Join(decodeErr.Key(), "."), fmt.Errorf("%w: line %d column %d: %v", ErrMalformed, line, col, err))
		}
		return nil, loadErr(source, 0, "", fmt.Errorf("%w: %v", ErrMalformed, err))
	}
	return file.Foods, nil
}

// expectJSONEOF fails when anything but whitespace follows the first value
func expectJSONEOF(dec *json.Decoder) error {
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after the record array", ErrMalformed)
	}
	return nil
}

// expectYAMLEOF fails when the file holds more than one document
func expectYAMLEOF(dec *yaml.Decoder) error {
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: only one YAML document is allowed", ErrMalformed)
	}
	return nil
}

// decodeYAMLRow decodes one record, rejecting keys the record does not have.
// Node.Decode has no strict mode, so the node is re-encoded and read back
// through a decoder with KnownFields set.
func decodeYAMLRow(node *yaml.Node) (foodRow, error) {
	var row foodRow
	raw, err := yaml.Marshal(node)
	if err != nil {
		return row, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&row); err != nil {
		return row, err
	}
	return row, nil
}

// loadParquet loads records from a Parquet file
func (l *Loader) loadParquet() ([]models.Food, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, loadErr(l.path, 0, "", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, loadErr(l.path, 0, "", fmt.Errorf("failed to stat file: %w", err))
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, loadErr(l.path, 0, "", fmt.Errorf("%w: %v", ErrMalformed, err))
	}

	slog.Debug("Parquet file opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[parquetRow](pf)
	defer reader.Close()

	var rows []foodRow
	batch := make([]parquetRow, 128)
	for {
		n, err := reader.Read(batch)
		for _, r := range batch[:n] {
			rows = append(rows, r.foodRow())
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, loadErr(l.path, len(rows)+1, "", fmt.Errorf("%w: %v", ErrMalformed, err))
		}
		if n == 0 {
			break
		}
	}

	return buildFoods(rows, l.path)
}

func buildFoods(rows []foodRow, source string) ([]models.Food, error) {
	foods := make([]models.Food, 0, len(rows))
	seen := make(map[string]int, len(rows))

	for i, row := range rows {
		record := i + 1

		food, err := row.validate(source, record)
		if err != nil {
			return nil, err
		}

		if first, ok := seen[food.Name]; ok {
			return nil, loadErr(source, record, "food_name", fmt.Errorf("%w: %q also at record %d", ErrDuplicateName, food.Name, first))
		}
		seen[food.Name] = record

		foods = append(foods, food)
	}

	slog.Debug("Catalog loaded", "source", source, "records", len(foods))

	return foods, nil
}

func (r foodRow) validate(source string, record int) (models.Food, error) {
	var food models.Food

	if r.Name == nil || strings.TrimSpace(*r.Name) == "" {
		return food, loadErr(source, record, "food_name", ErrMissingField)
	}
	food.Name = strings.TrimSpace(*r.Name)

	if r.Type == nil || strings.TrimSpace(*r.Type) == "" {
		return food, loadErr(source, record, "type", ErrMissingField)
	}
	category, ok := models.ParseCategory(*r.Type)
	if !ok {
		return food, loadErr(source, record, "type", fmt.Errorf("%w: %q", ErrUnknownCategory, *r.Type))
	}
	food.Category = category

	index, err := checkGlycemicIndex(r.GlycemicIndex, source, record)
	if err != nil {
		return food, err
	}
	food.GlycemicIndex = index

	load, err := checkGlycemicLoad(r.GlycemicLoad, source, record)
	if err != nil {
		return food, err
	}
	food.GlycemicLoad = load

	tier, err := checkTier(r.Category, load, source, record)
	if err != nil {
		return food, err
	}
	food.Tier = tier

	return food, nil
}

func checkGlycemicIndex(v *int, source string, record int) (int, error) {
	if v == nil {
		return 0, loadErr(source, record, "glycemic_index", ErrMissingField)
	}
	if *v < 0 || *v > 100 {
		return 0, loadErr(source, record, "glycemic_index", fmt.Errorf("%w: %d outside 0-100", ErrInvalidValue, *v))
	}
	return *v, nil
}

func checkGlycemicLoad(v *int, source string, record int) (int, error) {
	if v == nil {
		return 0, loadErr(source, record, "glycemic_load", ErrMissingField)
	}
	if *v < 0 {
		return 0, loadErr(source, record, "glycemic_load", fmt.Errorf("%w: %d is negative", ErrInvalidValue, *v))
	}
	return *v, nil
}

// checkTier accepts an explicit tier from the data or derives one from
// the glycemic load.
func checkTier(v *int, load int, source string, record int) (models.Tier, error) {
	if v == nil {
		return metrics.TierOf(load), nil
	}
	tier := models.Tier(*v)
	if !tier.Valid() {
		return 0, loadErr(source, record, "category", fmt.Errorf("%w: tier %d not in 1-3", ErrInvalidValue, *v))
	}
	return tier, nil
}
