package pdf

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/wyawin/docaudit/internal/overlay"
)

// ErrInvalidPlan is returned when an annotation plan fails schema
// validation. The originating validation error is wrapped alongside it.
var ErrInvalidPlan = errors.New("annotation plan rejected")

// planSchema is the writer-side contract for incoming annotation plans.
// Geometry must be finite and non-negative, colors and opacity in [0, 1].
const planSchema = `{
	"type": "object",
	"required": ["annotations", "legend"],
	"properties": {
		"annotations": {
			"type": ["array", "null"],
			"items": {
				"type": "object",
				"required": ["pageIndex", "rect", "color", "opacity"],
				"properties": {
					"pageIndex": {"type": "integer", "minimum": 0},
					"rect": {
						"type": "object",
						"required": ["x", "y", "w", "h"],
						"properties": {
							"x": {"type": "number"},
							"y": {"type": "number"},
							"w": {"type": "number", "minimum": 0},
							"h": {"type": "number", "minimum": 0}
						}
					},
					"color": {"$ref": "#/$defs/color"},
					"opacity": {"type": "number", "minimum": 0, "maximum": 1}
				}
			}
		},
		"legend": {
			"type": "object",
			"required": ["x", "y", "entries"],
			"properties": {
				"x": {"type": "number"},
				"y": {"type": "number"},
				"entries": {
					"type": ["array", "null"],
					"items": {
						"type": "object",
						"required": ["label", "color"],
						"properties": {
							"label": {"type": "string"},
							"color": {"$ref": "#/$defs/color"}
						}
					}
				}
			}
		}
	},
	"$defs": {
		"color": {
			"type": "object",
			"required": ["r", "g", "b"],
			"properties": {
				"r": {"type": "number", "minimum": 0, "maximum": 1},
				"g": {"type": "number", "minimum": 0, "maximum": 1},
				"b": {"type": "number", "minimum": 0, "maximum": 1}
			}
		}
	}
}`

var compiledPlanSchema = jsonschema.MustCompileString("plan.json", planSchema)

// ValidatePlan checks a plan against the writer contract before any page
// content is touched.
func ValidatePlan(plan overlay.Plan) error {
	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}
	if err := compiledPlanSchema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}
	return nil
}
