package search

import (
	"fmt"
	"strconv"
	"time"

	"github.com/troismondes/gigdex/internal/db"
	"github.com/troismondes/gigdex/internal/domain"
	"github.com/troismondes/gigdex/internal/domain/criterion"
	"github.com/troismondes/gigdex/internal/domain/schema"
	domsearch "github.com/troismondes/gigdex/internal/domain/search"
)

// buildConstraints renders the native criteria into store constraints. The
// tenant filter always occupies the first slot. It returns the list of fields
// whose in_list values were truncated to the store maximum.
func buildConstraints(tenantID string, native []domsearch.Classified) ([]db.Constraint, []string, error) {
	constraints := make([]db.Constraint, 0, len(native)+1)
	constraints = append(constraints, db.TagEq("entrepriseId", tenantID))

	var truncated []string
	for _, c := range native {
		attr := db.AttrName(c.FieldPath)

		switch c.Op {
		case criterion.OpEquals, criterion.OpNotEquals:
			cons, err := equalityConstraint(attr, c)
			if err != nil {
				return nil, nil, err
			}
			constraints = append(constraints, cons)

		case criterion.OpIsEmpty:
			constraints = append(constraints, db.Missing(attr))

		case criterion.OpBetween:
			cons, ok, err := rangeConstraint(attr, c)
			if err != nil {
				return nil, nil, err
			}
			// An open bound cannot be pushed down reliably; the criterion
			// still runs locally on the fetched page.
			if ok {
				constraints = append(constraints, cons)
			}

		case criterion.OpGreaterThan:
			v, err := toEpochOrNumber(c.Value, c.FieldType)
			if err != nil {
				return nil, nil, fmt.Errorf("field %s: %w", c.Field, err)
			}
			constraints = append(constraints, db.Gt(attr, v))

		case criterion.OpLessThan:
			v, err := toEpochOrNumber(c.Value, c.FieldType)
			if err != nil {
				return nil, nil, fmt.Errorf("field %s: %w", c.Field, err)
			}
			constraints = append(constraints, db.Lt(attr, v))

		case criterion.OpInList:
			values := make([]string, 0, len(c.List))
			for _, v := range c.List {
				values = append(values, toTagValue(v))
			}
			if len(values) > db.MaxInListSize {
				values = values[:db.MaxInListSize]
				truncated = append(truncated, c.Field)
			}
			constraints = append(constraints, db.InSet(attr, values))

		default:
			return nil, nil, fmt.Errorf("operator %s is not native: %w", c.Op, domain.ErrInvalidInput)
		}
	}

	return constraints, truncated, nil
}

func equalityConstraint(attr string, c domsearch.Classified) (db.Constraint, error) {
	switch c.FieldType {
	case schema.TypeNumber, schema.TypeDate:
		v, err := toEpochOrNumber(c.Value, c.FieldType)
		if err != nil {
			return db.Constraint{}, fmt.Errorf("field %s: %w", c.Field, err)
		}
		if c.Op == criterion.OpNotEquals {
			return db.NumNeq(attr, v), nil
		}
		return db.NumEq(attr, v), nil
	default:
		if c.Op == criterion.OpNotEquals {
			return db.TagNeq(attr, toTagValue(c.Value)), nil
		}
		return db.TagEq(attr, toTagValue(c.Value)), nil
	}
}

// rangeConstraint builds an inclusive range when both bounds are present.
func rangeConstraint(attr string, c domsearch.Classified) (db.Constraint, bool, error) {
	if c.Min == nil || c.Max == nil {
		return db.Constraint{}, false, nil
	}
	minV, err := toEpochOrNumber(c.Min, c.FieldType)
	if err != nil {
		return db.Constraint{}, false, fmt.Errorf("field %s min: %w", c.Field, err)
	}
	maxV, err := toEpochOrNumber(c.Max, c.FieldType)
	if err != nil {
		return db.Constraint{}, false, fmt.Errorf("field %s max: %w", c.Field, err)
	}
	return db.BetweenRange(attr, minV, maxV), true, nil
}

// toEpochOrNumber normalizes a criterion value into the numeric form stored
// in the index: plain numbers for number fields, epoch seconds for dates.
func toEpochOrNumber(v any, t schema.ValueType) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case string:
		if t == schema.TypeDate {
			if ts, err := time.Parse(time.RFC3339, val); err == nil {
				return float64(ts.Unix()), nil
			}
			if ts, err := time.Parse("2006-01-02", val); err == nil {
				return float64(ts.Unix()), nil
			}
		}
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f, nil
		}
		return 0, fmt.Errorf("value %q is not numeric: %w", val, domain.ErrInvalidInput)
	default:
		return 0, fmt.Errorf("value %v is not numeric: %w", v, domain.ErrInvalidInput)
	}
}

// toTagValue renders a scalar as its tag form. Booleans become true/false.
func toTagValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// buildSort resolves the requested ordering against the collection's
// mappings. Only sortable numeric fields may order results; the default is
// most recently updated first.
func buildSort(collection string, page domsearch.Page) (*db.Sort, error) {
	if page.OrderBy == "" {
		return &db.Sort{Field: "updatedAt", Desc: true}, nil
	}

	m, ok := schema.Lookup(collection, page.OrderBy)
	if !ok {
		return nil, fmt.Errorf("unknown sort field %q: %w", page.OrderBy, domain.ErrInvalidInput)
	}
	if m.Virtual || (m.Type != schema.TypeNumber && m.Type != schema.TypeDate) {
		return nil, fmt.Errorf("field %q is not sortable: %w", page.OrderBy, domain.ErrInvalidInput)
	}

	return &db.Sort{Field: db.AttrName(m.Path), Desc: !page.Ascending}, nil
}
