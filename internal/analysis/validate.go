package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationError reports a single schema violation. Field is a dotted path
// into the candidate object ("" for the root), Constraint describes what was
// expected.
type ValidationError struct {
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid analysis result: %s", e.Constraint)
	}
	return fmt.Sprintf("invalid analysis result: field %q: %s", e.Field, e.Constraint)
}

// Validate checks a raw candidate object from the model against the analysis
// schema and decodes it. Tone and confidence are matched case-insensitively
// and normalized to lowercase. Nothing else is coerced: an overlong list, a
// null value or a missing key rejects the candidate outright rather than
// hiding model misbehavior behind a silent fix.
func Validate(raw json.RawMessage) (*Result, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ValidationError{Constraint: "not valid JSON: " + err.Error()}
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, &ValidationError{Constraint: "expected a JSON object"}
	}

	for _, key := range []string{"management_tone", "confidence_level"} {
		if s, ok := obj[key].(string); ok {
			obj[key] = strings.ToLower(strings.TrimSpace(s))
		}
	}

	if err := compiledSchema.Validate(obj); err != nil {
		return nil, asValidationError(err)
	}

	// The schema guarantees the shape, so this round-trip cannot fail on
	// anything but exotic encoder states.
	normalized, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("re-encode candidate: %w", err)
	}
	var res Result
	if err := json.Unmarshal(normalized, &res); err != nil {
		return nil, fmt.Errorf("decode candidate: %w", err)
	}
	if res.KeyPositives == nil {
		res.KeyPositives = []string{}
	}
	if res.KeyConcerns == nil {
		res.KeyConcerns = []string{}
	}
	if res.GrowthInitiatives == nil {
		res.GrowthInitiatives = []string{}
	}
	return &res, nil
}

// CheckResult re-validates an already-typed Result. The pipeline runs this on
// the merged result as a defense against merge-introduced inconsistency.
func CheckResult(r Result) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return asValidationError(err)
	}
	return nil
}

// asValidationError converts a jsonschema error into a ValidationError naming
// the deepest offending location.
func asValidationError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &ValidationError{Constraint: err.Error()}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	field := strings.TrimPrefix(ve.InstanceLocation, "/")
	field = strings.ReplaceAll(field, "/", ".")
	return &ValidationError{Field: field, Constraint: ve.Message}
}
