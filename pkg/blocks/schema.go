package blocks

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed document.schema.json
var documentSchemaJSON []byte

const documentSchemaName = "document.schema.json"

var (
	documentSchemaOnce sync.Once
	documentSchema     *jsonschema.Schema
	documentSchemaErr  error
)

// DocumentSchema returns the raw JSON schema for serialized documents
func DocumentSchema() []byte {
	out := make([]byte, len(documentSchemaJSON))
	copy(out, documentSchemaJSON)
	return out
}

func compiledDocumentSchema() (*jsonschema.Schema, error) {
	documentSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(documentSchemaName, bytes.NewReader(documentSchemaJSON)); err != nil {
			documentSchemaErr = fmt.Errorf("load document schema: %w", err)
			return
		}
		documentSchema, documentSchemaErr = compiler.Compile(documentSchemaName)
		if documentSchemaErr != nil {
			documentSchemaErr = fmt.Errorf("compile document schema: %w", documentSchemaErr)
		}
	})
	return documentSchema, documentSchemaErr
}

// ValidateDocumentJSON checks a serialized document against the document
// schema. Failures wrap ErrInvalidDocument.
func ValidateDocumentJSON(data []byte) error {
	schema, err := compiledDocumentSchema()
	if err != nil {
		return err
	}

	var payload interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}
