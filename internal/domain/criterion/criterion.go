// Package criterion defines the search criterion model: a closed operator
// enum and the field+operator+value unit of a search request.
package criterion

import (
	"encoding/json"
	"fmt"
)

// Operator enumerates the supported search operators.
type Operator int

const (
	// OpUnknown is the zero value; it never classifies as executable.
	OpUnknown Operator = iota
	// OpContains is a case-insensitive substring test.
	OpContains
	// OpEquals is a strict equality test.
	OpEquals
	// OpNotEquals is a strict inequality test.
	OpNotEquals
	// OpBetween is an inclusive range test.
	OpBetween
	// OpInList is a list membership test.
	OpInList
	// OpStartsWith is a case-insensitive prefix test.
	OpStartsWith
	// OpEndsWith is a case-insensitive suffix test.
	OpEndsWith
	// OpIsEmpty matches null, absent, or empty-string values.
	OpIsEmpty
	// OpGreaterThan is a strict greater-than test.
	OpGreaterThan
	// OpLessThan is a strict less-than test.
	OpLessThan
)

var operatorNames = map[Operator]string{
	OpContains:    "contains",
	OpEquals:      "equals",
	OpNotEquals:   "not_equals",
	OpBetween:     "between",
	OpInList:      "in_list",
	OpStartsWith:  "starts_with",
	OpEndsWith:    "ends_with",
	OpIsEmpty:     "is_empty",
	OpGreaterThan: "greater_than",
	OpLessThan:    "less_than",
}

var operatorValues = func() map[string]Operator {
	m := make(map[string]Operator, len(operatorNames))
	for op, name := range operatorNames {
		m[name] = op
	}
	return m
}()

// String returns the wire name of the operator.
func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return "unknown"
}

// ParseOperator resolves a wire name into an Operator.
func ParseOperator(s string) (Operator, error) {
	if op, ok := operatorValues[s]; ok {
		return op, nil
	}
	return OpUnknown, fmt.Errorf("unsupported operator %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Operator) MarshalText() ([]byte, error) {
	name, ok := operatorNames[o]
	if !ok {
		return nil, fmt.Errorf("unsupported operator %d", int(o))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Operator) UnmarshalText(text []byte) error {
	op, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// Criterion is one field+operator+value unit of a search request.
// Exactly one of Value, Min/Max, or List is populated, depending on the
// operator: scalar operators use Value, OpBetween uses Min/Max (either may
// be nil for an open bound), OpInList uses List. OpIsEmpty carries no value.
type Criterion struct {
	Field string
	Op    Operator
	Value any
	Min   any
	Max   any
	List  []any
	Label string
}

// Constructors for the common operator shapes.

// Contains builds a case-insensitive substring criterion.
func Contains(field string, search any) Criterion {
	return Criterion{Field: field, Op: OpContains, Value: search}
}

// Equals builds a strict equality criterion.
func Equals(field string, value any) Criterion {
	return Criterion{Field: field, Op: OpEquals, Value: value}
}

// NotEquals builds a strict inequality criterion.
func NotEquals(field string, value any) Criterion {
	return Criterion{Field: field, Op: OpNotEquals, Value: value}
}

// Between builds an inclusive range criterion. A nil bound is open.
func Between(field string, minVal, maxVal any) Criterion {
	return Criterion{Field: field, Op: OpBetween, Min: minVal, Max: maxVal}
}

// In builds a list membership criterion.
func In(field string, values ...any) Criterion {
	return Criterion{Field: field, Op: OpInList, List: values}
}

// StartsWith builds a case-insensitive prefix criterion.
func StartsWith(field string, prefix any) Criterion {
	return Criterion{Field: field, Op: OpStartsWith, Value: prefix}
}

// EndsWith builds a case-insensitive suffix criterion.
func EndsWith(field string, suffix any) Criterion {
	return Criterion{Field: field, Op: OpEndsWith, Value: suffix}
}

// IsEmpty builds a criterion matching null, absent, or empty values.
func IsEmpty(field string) Criterion {
	return Criterion{Field: field, Op: OpIsEmpty}
}

// GreaterThan builds a strict greater-than criterion.
func GreaterThan(field string, value any) Criterion {
	return Criterion{Field: field, Op: OpGreaterThan, Value: value}
}

// LessThan builds a strict less-than criterion.
func LessThan(field string, value any) Criterion {
	return Criterion{Field: field, Op: OpLessThan, Value: value}
}

// wireCriterion is the JSON wire shape. The value field is a union:
// scalar, {"min":..,"max":..} object, or array.
type wireCriterion struct {
	Field    string          `json:"field"`
	Operator Operator        `json:"operator"`
	Value    json.RawMessage `json:"value,omitempty"`
	Label    string          `json:"label,omitempty"`
}

// MarshalJSON encodes the criterion with its value union.
func (c Criterion) MarshalJSON() ([]byte, error) {
	w := wireCriterion{Field: c.Field, Operator: c.Op, Label: c.Label}

	var payload any
	switch c.Op {
	case OpBetween:
		bounds := map[string]any{}
		if c.Min != nil {
			bounds["min"] = c.Min
		}
		if c.Max != nil {
			bounds["max"] = c.Max
		}
		payload = bounds
	case OpInList:
		payload = c.List
	case OpIsEmpty:
		payload = nil
	default:
		payload = c.Value
	}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal criterion value: %w", err)
		}
		w.Value = raw
	}

	return json.Marshal(w)
}

// UnmarshalJSON decodes the criterion, interpreting the value union by
// operator: between expects {"min":..,"max":..}, in_list expects an array,
// everything else a scalar.
func (c *Criterion) UnmarshalJSON(data []byte) error {
	var w wireCriterion
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	out := Criterion{Field: w.Field, Op: w.Operator, Label: w.Label}

	if len(w.Value) > 0 {
		switch w.Operator {
		case OpBetween:
			var bounds struct {
				Min any `json:"min"`
				Max any `json:"max"`
			}
			if err := json.Unmarshal(w.Value, &bounds); err != nil {
				return fmt.Errorf("between value must be a {min,max} object: %w", err)
			}
			out.Min, out.Max = bounds.Min, bounds.Max
		case OpInList:
			var list []any
			if err := json.Unmarshal(w.Value, &list); err != nil {
				return fmt.Errorf("in_list value must be an array: %w", err)
			}
			out.List = list
		default:
			if err := json.Unmarshal(w.Value, &out.Value); err != nil {
				return fmt.Errorf("unmarshal criterion value: %w", err)
			}
		}
	}

	*c = out
	return nil
}
