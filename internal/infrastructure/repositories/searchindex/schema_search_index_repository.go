package searchindex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/rios0rios0/notesync/internal/domain/entities"
	"github.com/rios0rios0/notesync/internal/domain/repositories"
)

const schemaURL = "notesync://search-index.schema.json"

const indexSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "tokens":   { "$ref": "#/$defs/listMap" },
    "tags":     { "$ref": "#/$defs/listMap" },
    "fileTags": { "$ref": "#/$defs/listMap" }
  },
  "$defs": {
    "listMap": {
      "type": "object",
      "additionalProperties": { "type": "array", "items": { "type": "string" } }
    }
  }
}`

// SchemaSearchIndexRepository validates the reverse index against a JSON
// schema before decoding it.
type SchemaSearchIndexRepository struct {
	schema *jsonschema.Schema
}

// NewSchemaSearchIndexRepository compiles the index schema.
func NewSchemaSearchIndexRepository() (*SchemaSearchIndexRepository, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(indexSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to parse search index schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err = compiler.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to load search index schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile search index schema: %w", err)
	}
	return &SchemaSearchIndexRepository{schema: schema}, nil
}

var _ repositories.SearchIndexRepository = (*SchemaSearchIndexRepository)(nil)

func (r *SchemaSearchIndexRepository) Decode(raw []byte) (*entities.SearchIndex, error) {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("search index is not JSON: %w", err)
	}
	if err = r.schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("search index does not match its schema: %w", err)
	}

	var index entities.SearchIndex
	if err = json.Unmarshal(raw, &index); err != nil {
		return nil, fmt.Errorf("failed to decode search index: %w", err)
	}
	return &index, nil
}
