package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/troismondes/gigdex/internal/db"
)

// Search executes a native query via FT.SEARCH.
func (s *Store) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	args := []string{q.Index, buildQuery(q.Constraints)}

	if len(q.ReturnPaths) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnPaths)))
		args = append(args, q.ReturnPaths...)
	}

	if q.Sort != nil {
		dir := "ASC"
		if q.Sort.Desc {
			dir = "DESC"
		}
		args = append(args, "SORTBY", q.Sort.Field, dir)
	}

	args = append(args,
		"LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit),
		"DIALECT", "2",
	)

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parseSearchResult(raw)
}

// Count returns the number of documents matching the constraints via
// FT.SEARCH with LIMIT 0 0.
func (s *Store) Count(ctx context.Context, index string, constraints []db.Constraint) (int, error) {
	cmd := s.b().Arbitrary("FT.SEARCH").
		Args(index, buildQuery(constraints), "LIMIT", "0", "0", "DIALECT", "2").
		Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return 0, &db.Error{Op: db.OpSearch, Err: err}
	}
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return int(total), nil
}

// --- Result parsing ---

// parseSearchResult decodes the RESP2 FT.SEARCH reply:
// [total, key1, [name1, value1, ...], key2, [...], ...].
func parseSearchResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}

	result := &db.SearchResult{Total: int(total)}

	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			return nil, fmt.Errorf("parse entry key: %w", err)
		}

		fieldsArr, err := raw[i+1].ToArray()
		if err != nil {
			return nil, fmt.Errorf("parse entry fields for %s: %w", key, err)
		}

		fields := make(map[string]string, len(fieldsArr)/2)
		for j := 0; j+1 < len(fieldsArr); j += 2 {
			name, err := fieldsArr[j].ToString()
			if err != nil {
				continue
			}
			value, err := fieldsArr[j+1].ToString()
			if err != nil {
				continue
			}
			fields[name] = value
		}

		result.Entries = append(result.Entries, db.SearchEntry{Key: key, Fields: fields})
	}

	return result, nil
}

// --- Query building ---

// buildQuery renders constraints into an FT.SEARCH query string. An empty
// constraint list matches everything.
func buildQuery(constraints []db.Constraint) string {
	if len(constraints) == 0 {
		return "*"
	}

	parts := make([]string, 0, len(constraints))
	for i := range constraints {
		parts = append(parts, buildClause(&constraints[i]))
	}
	return strings.Join(parts, " ")
}

func buildClause(c *db.Constraint) string {
	var clause string

	switch c.Kind {
	case db.KindTag:
		clause = fmt.Sprintf("@%s:{%s}", c.Field, escapeTag(c.Value))
	case db.KindIn:
		escaped := make([]string, 0, len(c.Values))
		for _, v := range c.Values {
			escaped = append(escaped, escapeTag(v))
		}
		clause = fmt.Sprintf("@%s:{%s}", c.Field, strings.Join(escaped, "|"))
	case db.KindRange:
		clause = fmt.Sprintf("@%s:[%s %s]", c.Field, rangeBound(c.Min, c.MinExcl, "-inf"), rangeBound(c.Max, c.MaxExcl, "+inf"))
	case db.KindMissing:
		clause = fmt.Sprintf("ismissing(@%s)", c.Field)
	}

	if c.Negate {
		return "-" + clause
	}
	return clause
}

func rangeBound(v *float64, exclusive bool, open string) string {
	if v == nil {
		return open
	}
	if exclusive {
		return fmt.Sprintf("(%g", *v)
	}
	return fmt.Sprintf("%g", *v)
}

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	"/", "\\/",
	" ", "\\ ",
)

func escapeTag(v string) string {
	return tagEscaper.Replace(v)
}
