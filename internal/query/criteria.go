package query

import (
	"net/url"
	"strconv"
	"strings"

	"abarto-backend/internal/domain"
)

type Op string

const (
	OpContains Op = "contains" // case-insensitive substring
	OpGTE      Op = "gte"
	OpLTE      Op = "lte"
)

type Condition struct {
	Column string
	Op     Op
	Value  any
}

// Criteria is the filter predicate handed to the repository. With Any set
// the conditions are OR-combined (cross-resource search), otherwise AND.
type Criteria struct {
	Conds []Condition
	Any   bool
}

func (c Criteria) Empty() bool { return len(c.Conds) == 0 }

// BuildCriteria walks the resource's configured filter surface against the
// raw query. Parameters outside the allow-list contribute nothing; an empty
// query yields a match-all predicate. Malformed range values are skipped the
// same way malformed pagination values degrade to defaults.
func BuildCriteria(values url.Values, res domain.Resource) Criteria {
	crit := Criteria{}

	for _, name := range res.Searchable {
		raw := strings.TrimSpace(values.Get(name))
		if raw == "" {
			continue
		}
		col, ok := res.ColumnFor(name)
		if !ok {
			continue
		}
		crit.Conds = append(crit.Conds, Condition{Column: col, Op: OpContains, Value: raw})
	}

	for _, rf := range res.Ranges {
		col, ok := res.ColumnFor(rf.Field)
		if !ok {
			continue
		}
		f, _ := res.Field(rf.Field)
		if v, ok := parseRangeValue(values.Get(rf.MinParam), f.Type); ok {
			crit.Conds = append(crit.Conds, Condition{Column: col, Op: OpGTE, Value: v})
		}
		if v, ok := parseRangeValue(values.Get(rf.MaxParam), f.Type); ok {
			crit.Conds = append(crit.Conds, Condition{Column: col, Op: OpLTE, Value: v})
		}
	}

	return crit
}

// GlobalCriteria builds the OR-of-substrings predicate used by the
// cross-resource search fan-out.
func GlobalCriteria(q string, res domain.Resource) Criteria {
	crit := Criteria{Any: true}
	q = strings.TrimSpace(q)
	if q == "" {
		return crit
	}
	for _, name := range res.Searchable {
		col, ok := res.ColumnFor(name)
		if !ok {
			continue
		}
		crit.Conds = append(crit.Conds, Condition{Column: col, Op: OpContains, Value: q})
	}
	return crit
}

func parseRangeValue(raw string, t domain.FieldType) (any, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	switch t {
	case domain.FieldInt, domain.FieldFloat:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, false
		}
		return n, true
	case domain.FieldTime:
		ts, err := domain.ParseTimeValue(raw)
		if err != nil {
			return nil, false
		}
		return ts, true
	default:
		return raw, true
	}
}
