package analyzer

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// extractSchema is the strict JSON contract the AI provider must satisfy.
// Anything that fails validation is treated as a provider failure and routed
// to the keyword fallback.
const extractSchema = `{
	"type": "object",
	"required": ["skills", "tools", "category", "work_mode"],
	"properties": {
		"skills": {"type": "array", "items": {"type": "string"}},
		"tools": {"type": "array", "items": {"type": "string"}},
		"category": {"type": "string", "enum": ["Tech", "Non-Tech", "Core"]},
		"work_mode": {"type": "string", "enum": ["Remote", "Onsite", "Hybrid", "Any"]}
	},
	"additionalProperties": true
}`

var extractSchemaLoader = gojsonschema.NewStringLoader(extractSchema)

func validateExtractJSON(raw []byte) error {
	res, err := gojsonschema.Validate(extractSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !res.Valid() {
		errs := res.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("analyzer response violates signals contract: %s", errs[0].String())
		}
		return fmt.Errorf("analyzer response violates signals contract")
	}
	return nil
}
