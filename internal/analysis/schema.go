package analysis

import "github.com/santhosh-tekuri/jsonschema/v5"

// resultSchema is the canonical shape of a Result. Enum values are lowercase;
// Validate normalizes tone/confidence before checking. Null is rejected
// everywhere because every value carries a concrete type.
const resultSchema = `{
  "type": "object",
  "required": [
    "management_tone",
    "confidence_level",
    "key_positives",
    "key_concerns",
    "forward_guidance",
    "capacity_utilization_trends",
    "growth_initiatives"
  ],
  "properties": {
    "management_tone": {
      "type": "string",
      "enum": ["optimistic", "cautious", "neutral", "pessimistic"]
    },
    "confidence_level": {
      "type": "string",
      "enum": ["high", "medium", "low"]
    },
    "key_positives": {
      "type": "array",
      "items": {"type": "string"},
      "maxItems": 5
    },
    "key_concerns": {
      "type": "array",
      "items": {"type": "string"},
      "maxItems": 5
    },
    "forward_guidance": {
      "type": "object",
      "required": ["revenue", "margin", "capex"],
      "properties": {
        "revenue": {"type": "string"},
        "margin": {"type": "string"},
        "capex": {"type": "string"}
      },
      "additionalProperties": false
    },
    "capacity_utilization_trends": {"type": "string"},
    "growth_initiatives": {
      "type": "array",
      "items": {"type": "string"},
      "maxItems": 5
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("analysis.schema.json", resultSchema)
