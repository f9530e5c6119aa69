package payload

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed sale_created.schema.json
var saleCreatedSchema []byte

const schemaURL = "salehook://schema/sale_created.json"

// Contract checks composed events against the sale:created JSON Schema.
// A compiled Contract is read-only and safe for concurrent use.
type Contract struct {
	schema *jsonschema.Schema
}

// NewContract compiles the embedded sale:created schema.
func NewContract() (*Contract, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(saleCreatedSchema))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if addErr := c.AddResource(schemaURL, doc); addErr != nil {
		return nil, fmt.Errorf("add schema resource: %w", addErr)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Contract{schema: compiled}, nil
}

// Validate reports whether evt, as it would appear on the wire, satisfies
// the schema.
func (c *Contract) Validate(evt Event) error {
	raw, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}

	return c.schema.Validate(doc)
}
