package domain

import (
	"fmt"
	"strings"
	"time"
)

// Record is one persisted instance of a resource, keyed by field name.
type Record map[string]any

type FieldType string

const (
	FieldString FieldType = "string"
	FieldInt    FieldType = "int"
	FieldFloat  FieldType = "float"
	FieldTime   FieldType = "time"
	FieldJSON   FieldType = "json"
)

type Field struct {
	Name     string
	Column   string // defaults to Name
	Type     FieldType
	Required bool
	Unique   bool
	// Secret fields (credential hashes) are writable but never read back.
	Secret bool
}

func (f Field) column() string {
	if f.Column != "" {
		return f.Column
	}
	return f.Name
}

// RangeField exposes one numeric/date field as a closed-range filter via
// MinParam/MaxParam query parameters (minPrice/maxPrice, startDate/endDate).
type RangeField struct {
	Field    string
	MinParam string
	MaxParam string
}

const (
	DefaultLimit    = 10
	DefaultMaxLimit = 100
)

// Resource describes one collection: its table, field schema, default sort
// and the filter surface of its search endpoint. Services, repositories,
// handlers and routes are all generic over this descriptor.
type Resource struct {
	Name         string // plural, kebab-case URL segment
	Singular     string // for error messages
	Table        string
	Fields       []Field
	DefaultSort  string
	DefaultOrder string // "asc" or "desc"
	Searchable   []string
	Ranges       []RangeField
	MaxLimit     int // page-size ceiling, DefaultMaxLimit when zero
	Timestamps   bool
	// AppendOnly resources expose no mutating verbs beyond create.
	AppendOnly bool
}

func (r Resource) LimitCeiling() int {
	if r.MaxLimit > 0 {
		return r.MaxLimit
	}
	return DefaultMaxLimit
}

func (r Resource) Field(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// ColumnFor maps a client-supplied sort/filter field to its column, refusing
// anything outside the schema. Secret fields are never addressable.
func (r Resource) ColumnFor(name string) (string, bool) {
	f, ok := r.Field(name)
	if !ok || f.Secret {
		return "", false
	}
	return f.column(), true
}

// PublicFields returns the schema minus secret fields, in declaration order.
func (r Resource) PublicFields() []Field {
	out := make([]Field, 0, len(r.Fields))
	for _, f := range r.Fields {
		if f.Secret {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (r Resource) SecretFields() []Field {
	out := []Field{}
	for _, f := range r.Fields {
		if f.Secret {
			out = append(out, f)
		}
	}
	return out
}

func (r Resource) FieldByUnique(name string) (Field, bool) {
	f, ok := r.Field(name)
	if !ok || !f.Unique {
		return Field{}, false
	}
	return f, true
}

// FieldByColumn resolves a duplicate-key index name back to a field.
func (r Resource) FieldByColumn(column string) (Field, bool) {
	for _, f := range r.Fields {
		if f.column() == column {
			return f, true
		}
	}
	return Field{}, false
}

type WriteMode int

const (
	ModeCreate WriteMode = iota
	ModeReplace
	ModePatch
)

// Validate checks a candidate record against the schema. Patch mode checks
// only the named fields; replace mode enforces required fields except
// secrets, whose stored hash survives a replace that does not resend them.
// All failures are collected so the caller sees the full list at once.
func (r Resource) Validate(rec Record, mode WriteMode) error {
	msgs := []string{}

	if mode != ModePatch {
		for _, f := range r.Fields {
			if !f.Required {
				continue
			}
			if f.Secret && mode == ModeReplace {
				continue
			}
			v, ok := rec[f.Name]
			if !ok || v == nil || isEmptyValue(v) {
				msgs = append(msgs, fmt.Sprintf("%s is required", f.Name))
			}
		}
	}

	for name, v := range rec {
		f, ok := r.Field(name)
		if !ok {
			// fields outside the schema are dropped, not rejected
			continue
		}
		if v == nil {
			// an explicit null clears the column; required fields may not be
			// cleared that way (create and replace already catch this above)
			if mode == ModePatch && f.Required {
				msgs = append(msgs, fmt.Sprintf("%s is required", f.Name))
			}
			continue
		}
		if msg := checkType(f, v); msg != "" {
			msgs = append(msgs, msg)
		}
	}

	if len(msgs) > 0 {
		return ValidationError{Messages: msgs}
	}
	return nil
}

// Prune drops every key that is not a schema field, so arbitrary client
// input never reaches the store.
func (r Resource) Prune(rec Record) Record {
	out := Record{}
	for name, v := range rec {
		if _, ok := r.Field(name); ok {
			out[name] = v
		}
	}
	return out
}

func isEmptyValue(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func checkType(f Field, v any) string {
	switch f.Type {
	case FieldString:
		if _, ok := v.(string); !ok {
			return fmt.Sprintf("%s must be a string", f.Name)
		}
	case FieldInt:
		switch n := v.(type) {
		case float64:
			if n != float64(int64(n)) {
				return fmt.Sprintf("%s must be an integer", f.Name)
			}
		case int, int64:
		default:
			return fmt.Sprintf("%s must be an integer", f.Name)
		}
	case FieldFloat:
		switch v.(type) {
		case float64, int, int64:
		default:
			return fmt.Sprintf("%s must be a number", f.Name)
		}
	case FieldTime:
		s, ok := v.(string)
		if !ok {
			if _, isTime := v.(time.Time); isTime {
				return ""
			}
			return fmt.Sprintf("%s must be a date string", f.Name)
		}
		if _, err := ParseTimeValue(s); err != nil {
			return fmt.Sprintf("%s must be a valid date", f.Name)
		}
	case FieldJSON:
		switch v.(type) {
		case map[string]any, []any:
		default:
			return fmt.Sprintf("%s must be an object or array", f.Name)
		}
	}
	return ""
}

// ParseTimeValue accepts RFC3339, date-time and date-only forms.
func ParseTimeValue(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time value %q", s)
}
