package workouts

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const snapshotSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "createdAt", "coordinates", "distance", "duration", "kind", "label"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"createdAt": {"type": "string", "format": "date-time"},
			"coordinates": {
				"type": "array",
				"items": {"type": "number"},
				"minItems": 2,
				"maxItems": 2
			},
			"distance": {"type": "number", "exclusiveMinimum": 0},
			"duration": {"type": "number", "exclusiveMinimum": 0},
			"kind": {"enum": ["running", "cycling"]},
			"label": {"type": "string", "minLength": 1},
			"cadence": {"type": "number", "exclusiveMinimum": 0},
			"pace": {"type": "number", "exclusiveMinimum": 0},
			"elevationGain": {"type": "number", "exclusiveMinimum": 0},
			"speed": {"type": "number", "exclusiveMinimum": 0}
		},
		"oneOf": [
			{
				"properties": {"kind": {"const": "running"}},
				"required": ["cadence", "pace"],
				"not": {"anyOf": [{"required": ["elevationGain"]}, {"required": ["speed"]}]}
			},
			{
				"properties": {"kind": {"const": "cycling"}},
				"required": ["elevationGain", "speed"],
				"not": {"anyOf": [{"required": ["cadence"]}, {"required": ["pace"]}]}
			}
		]
	}
}`

type snapshotValidator struct {
	schema *gojsonschema.Schema
}

func newSnapshotValidator() (*snapshotValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(snapshotSchema))
	if err != nil {
		return nil, fmt.Errorf("compile workouts snapshot schema: %w", err)
	}
	return &snapshotValidator{
		schema: schema,
	}, nil
}

// validate checks the raw snapshot shape before any of it is trusted.
// The returned reason lists the schema violations.
func (v *snapshotValidator) validate(raw []byte) (reason string, err error) {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		// not even JSON
		return "unreadable snapshot", err
	}
	if result.Valid() {
		return "", nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return "schema mismatch: " + strings.Join(violations, "; "), nil
}
