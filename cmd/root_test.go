package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/glycemic/internal/catalog"
)

const testCatalog = `[
  {"food_name":"Apple","type":"Fruit","glycemic_index":36,"glycemic_load":5},
  {"food_name":"Banana","type":"Fruit","glycemic_index":51,"glycemic_load":13},
  {"food_name":"Fried Rice","type":"Chinese Cuisine","glycemic_index":70,"glycemic_load":28},
  {"food_name":"Basmati Rice","type":"Indian Cuisine","glycemic_index":58,"glycemic_load":22}
]`

// run executes the root command in an isolated HOME and working directory
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "foods.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0644))
	return path
}

func TestFoodsCommand(t *testing.T) {
	path := writeCatalog(t)

	out, err := run(t, "foods", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, "[1] Apple (Fruit)")
	assert.Contains(t, out, "[2] Banana (Fruit)")
	assert.NotContains(t, out, "Rice")

	out, err = run(t, "foods", "--catalog", path, "--category", "fruit", "--search", "RICE")
	require.NoError(t, err)
	assert.Contains(t, out, "Fried Rice")
	assert.Contains(t, out, "Basmati Rice")
	assert.NotContains(t, out, "Apple")

	_, err = run(t, "foods", "--catalog", path, "--category", "Dessert")
	assert.Error(t, err)
}

func TestFoodsCommandDefaultCategoryFromEnv(t *testing.T) {
	path := writeCatalog(t)
	t.Setenv("GLYCEMIC_CATALOG_DEFAULT_CATEGORY", "chinese cuisine")

	out, err := run(t, "foods", "--catalog", path, "--output", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "Fried Rice,Chinese Cuisine,70,28,Worse"))
}

func TestSummaryCommand(t *testing.T) {
	path := writeCatalog(t)

	out, err := run(t, "summary", "--catalog", path, "Apple", "fried rice")
	require.NoError(t, err)
	assert.Contains(t, out, "Selected: Apple, Fried Rice")
	assert.Contains(t, out, "Glycemic Index: 106")
	assert.Contains(t, out, "Glycemic Index: 53 (Worse)")
	assert.Contains(t, out, "Glycemic Load:  16 (Bad)")

	// naming a food twice toggles it back out
	out, err = run(t, "summary", "--catalog", path, "Apple", "Banana", "Apple")
	require.NoError(t, err)
	assert.Contains(t, out, "Selected: Banana")

	out, err = run(t, "summary", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Selected: none")
	assert.Contains(t, out, "Glycemic Index: 0 (Good)")

	_, err = run(t, "summary", "--catalog", path, "Pizza")
	assert.Error(t, err)
}

func TestSummaryCommandSave(t *testing.T) {
	path := writeCatalog(t)
	saveDir := filepath.Join(t.TempDir(), "summaries")
	jsonPath := filepath.Join(t.TempDir(), "summary.json")

	_, err := run(t, "summary", "--catalog", path, "--save", saveDir, "--save-json", jsonPath, "Banana")
	require.NoError(t, err)

	entries, err := os.ReadDir(saveDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "summary-"))

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"load_tier": "Bad"`)
}

func TestSummaryCommandList(t *testing.T) {
	path := writeCatalog(t)

	out, err := run(t, "summary", "--catalog", path, "--list")
	require.NoError(t, err)

	apple := strings.Index(out, "Apple")
	banana := strings.Index(out, "Banana")
	basmati := strings.Index(out, "Basmati Rice")
	fried := strings.Index(out, "Fried Rice")
	assert.True(t, apple < banana && banana < basmati && basmati < fried)
}

func TestCategoriesCommand(t *testing.T) {
	out, err := run(t, "categories")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "* Fruit"))
}

func TestRecipesCommands(t *testing.T) {
	out, err := run(t, "recipes")
	require.NoError(t, err)
	assert.Contains(t, out, "Fried Rice")

	out, err = run(t, "recipes", "show", "fried", "rice")
	require.NoError(t, err)
	assert.Contains(t, out, "Ingredients:")
	assert.Contains(t, out, "Average Glycemic Index:")

	_, err = run(t, "recipes", "show", "Pizza")
	assert.Error(t, err)
}

func TestCatalogCommands(t *testing.T) {
	src := writeCatalog(t)
	dst := filepath.Join(t.TempDir(), "foods.parquet")

	out, err := run(t, "catalog", "convert", src, dst)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 4 records")

	foods, err := catalog.NewLoader(dst).Load()
	require.NoError(t, err)
	assert.Len(t, foods, 4)

	out, err = run(t, "catalog", "validate", dst)
	require.NoError(t, err)
	assert.Contains(t, out, "4 records OK")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"food_name":"Apple","type":"Fruit"}]`), 0644))
	_, err = run(t, "catalog", "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `record 1: field "glycemic_index"`)
}

func TestHelpListsEveryCatalogFormat(t *testing.T) {
	root := NewRootCmd()
	convert, _, err := root.Find([]string{"catalog", "convert"})
	require.NoError(t, err)

	for _, format := range []catalog.Format{catalog.FormatJSON, catalog.FormatJSONL, catalog.FormatYAML, catalog.FormatTOML, catalog.FormatParquet} {
		name := strings.ToUpper(string(format))
		if format == catalog.FormatParquet {
			name = "Parquet"
		}
		assert.Contains(t, root.Long, name)
		assert.Contains(t, convert.Short, name)
	}
}

func TestCatalogConvertToTOML(t *testing.T) {
	src := writeCatalog(t)
	dst := filepath.Join(t.TempDir(), "foods.toml")

	_, err := run(t, "catalog", "convert", src, dst)
	require.NoError(t, err)

	foods, err := catalog.NewLoader(dst).Load()
	require.NoError(t, err)
	assert.Len(t, foods, 4)
}
