package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/glycemic/data"
	"github.com/lehigh-university-libraries/glycemic/internal/models"
)

type recipeFile struct {
	Recipes []recipeRow `json:"recipes" yaml:"recipes"`
}

type recipeRow struct {
	Name         *string         `json:"name" yaml:"name"`
	Cuisine      *string         `json:"cuisine" yaml:"cuisine"`
	Image        string          `json:"image" yaml:"image"`
	Ingredients  []ingredientRow `json:"ingredients" yaml:"ingredients"`
	Instructions []string        `json:"instructions" yaml:"instructions"`
}

type ingredientRow struct {
	Name          *string `json:"name" yaml:"name"`
	GlycemicIndex *int    `json:"glycemic_index" yaml:"glycemic_index"`
	GlycemicLoad  *int    `json:"glycemic_load" yaml:"glycemic_load"`
	Category      *int    `json:"category" yaml:"category"`
}

// LoadRecipes reads a recipe file ({"recipes": [...]}) as JSON or YAML
func LoadRecipes(path string) ([]models.Recipe, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, loadErr(path, 0, "", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, loadErr(path, 0, "", err)
	}

	return DecodeRecipes(bytes.NewReader(raw), format, path)
}

// LoadDefaultRecipes loads the recipes bundled with the binary
func LoadDefaultRecipes() ([]models.Recipe, error) {
	return DecodeRecipes(bytes.NewReader(data.Recipes), FormatJSON, "embedded recipes.json")
}

// DecodeRecipes reads and validates a recipe document
func DecodeRecipes(r io.Reader, format Format, source string) ([]models.Recipe, error) {
	var file recipeFile

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		if err := dec.Decode(&file); err != nil {
			return nil, loadErr(source, 0, "", fmt.Errorf("%w: %v", ErrMalformed, err))
		}
		if err := expectJSONEOF(dec); err != nil {
			return nil, loadErr(source, 0, "", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		if err := dec.Decode(&file); err != nil {
			if err != io.EOF {
				return nil, loadErr(source, 0, "", fmt.Errorf("%w: %v", ErrMalformed, err))
			}
		} else if err := expectYAMLEOF(dec); err != nil {
			return nil, loadErr(source, 0, "", err)
		}
	default:
		return nil, loadErr(source, 0, "", fmt.Errorf("%w: recipes must be json or yaml", ErrUnsupportedFormat))
	}

	recipes := make([]models.Recipe, 0, len(file.Recipes))
	seen := make(map[string]bool, len(file.Recipes))

	for i, row := range file.Recipes {
		recipe, err := row.validate(source, i+1)
		if err != nil {
			return nil, err
		}
		if seen[recipe.Name] {
			return nil, loadErr(source, i+1, "name", fmt.Errorf("%w: %q", ErrDuplicateName, recipe.Name))
		}
		seen[recipe.Name] = true
		recipes = append(recipes, recipe)
	}

	return recipes, nil
}

func (r recipeRow) validate(source string, record int) (models.Recipe, error) {
	var recipe models.Recipe

	if r.Name == nil || strings.TrimSpace(*r.Name) == "" {
		return recipe, loadErr(source, record, "name", ErrMissingField)
	}
	recipe.Name = strings.TrimSpace(*r.Name)

	if r.Cuisine == nil || strings.TrimSpace(*r.Cuisine) == "" {
		return recipe, loadErr(source, record, "cuisine", ErrMissingField)
	}
	recipe.Cuisine = strings.TrimSpace(*r.Cuisine)
	recipe.Image = r.Image

	recipe.Ingredients = make([]models.Ingredient, 0, len(r.Ingredients))
	for j, ing := range r.Ingredients {
		field := fmt.Sprintf("ingredients[%d]", j)

		if ing.Name == nil || strings.TrimSpace(*ing.Name) == "" {
			return recipe, loadErr(source, record, field+".name", ErrMissingField)
		}
		index, err := checkGlycemicIndex(ing.GlycemicIndex, source, record)
		if err != nil {
			return recipe, withField(err, field)
		}
		load, err := checkGlycemicLoad(ing.GlycemicLoad, source, record)
		if err != nil {
			return recipe, withField(err, field)
		}
		tier, err := checkTier(ing.Category, load, source, record)
		if err != nil {
			return recipe, withField(err, field)
		}

		recipe.Ingredients = append(recipe.Ingredients, models.Ingredient{
			Name:          strings.TrimSpace(*ing.Name),
			GlycemicIndex: index,
			GlycemicLoad:  load,
			Tier:          tier,
		})
	}

	recipe.Instructions = append([]string{}, r.Instructions...)

	return recipe, nil
}

func withField(err error, prefix string) error {
	if le, ok := err.(*LoadError); ok {
		le.Field = prefix + "." + le.Field
	}
	return err
}

// FindRecipe looks a recipe up by name, ignoring case
func FindRecipe(recipes []models.Recipe, name string) (models.Recipe, bool) {
	name = strings.TrimSpace(name)
	for _, r := range recipes {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return models.Recipe{}, false
}
