// Package schemas holds the embedded JSON Schema documents used to
// validate catalog YAML files.
package schemas

import _ "embed"

// CatalogSchemaJSON is the JSON Schema for catalog YAML files.
//
//go:embed catalog.schema.json
var CatalogSchemaJSON string
