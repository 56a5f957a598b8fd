// Package data bundles the default food catalog and recipes.
package data

import _ "embed"

//go:embed foods.json
var Foods []byte

//go:embed recipes.json
var Recipes []byte
