package words

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// corpusSchema describes a corpus file: a JSON object with a "words" array.
const corpusSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["words"],
  "properties": {
    "words": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "text", "category", "difficulty"],
        "properties": {
          "id":         {"type": "string", "minLength": 1},
          "text":       {"type": "string", "minLength": 1, "pattern": "^[A-Za-z]+$"},
          "category":   {"type": "string", "minLength": 1},
          "difficulty": {"enum": ["easy", "medium", "hard"]}
        }
      }
    }
  }
}`

const corpusSchemaURL = "schema://wordiz/corpus.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// corpusFile is the on-disk corpus format.
type corpusFile struct {
	Words []Word `json:"words"`
}

// LoadFile reads and validates a JSON corpus file.
func LoadFile(path string) (*Corpus, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return Parse(raw)
}

// Parse validates raw corpus JSON against the corpus schema and builds a Corpus.
func Parse(raw []byte) (*Corpus, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}

	var f corpusFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}
	return NewCorpus(f.Words)
}

// Validate checks raw corpus JSON against the corpus schema.
func Validate(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := getSchema()
	if err != nil {
		return fmt.Errorf("compile corpus schema: %w", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("corpus validation failed: %w", err)
	}
	return nil
}

func getSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(corpusSchema), &def); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(corpusSchemaURL, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(corpusSchemaURL)
	})
	return compiledSchema, schemaErr
}
