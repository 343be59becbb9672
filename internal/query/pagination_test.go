package query

import (
	"net/url"
	"testing"

	"abarto-backend/internal/domain"
)

var testResource = domain.Resource{
	Name:     "products",
	Singular: "product",
	Table:    "products",
	Fields: []domain.Field{
		{Name: "name", Type: domain.FieldString, Required: true},
		{Name: "category", Type: domain.FieldString},
		{Name: "price", Type: domain.FieldFloat},
		{Name: "secret_note", Type: domain.FieldString, Secret: true},
	},
	DefaultSort:  "name",
	DefaultOrder: "asc",
	Searchable:   []string{"name", "category"},
	Ranges: []domain.RangeField{
		{Field: "price", MinParam: "minPrice", MaxParam: "maxPrice"},
	},
	Timestamps: true,
}

func TestResolvePaginationDefaults(t *testing.T) {
	p := ResolvePagination(url.Values{}, testResource)

	if p.Page != 1 || p.Limit != 10 || p.Offset != 0 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	if p.SortField != "name" || p.SortOrder != "ASC" {
		t.Fatalf("unexpected sort defaults: %+v", p)
	}
}

func TestResolvePaginationMalformedNumbersDegrade(t *testing.T) {
	v := url.Values{"page": {"abc"}, "limit": {"-3"}}
	p := ResolvePagination(v, testResource)

	if p.Page != 1 || p.Limit != 10 {
		t.Fatalf("malformed input should fall back to defaults, got %+v", p)
	}
}

func TestResolvePaginationClampsLimit(t *testing.T) {
	v := url.Values{"limit": {"500"}}
	p := ResolvePagination(v, testResource)

	if p.Limit != 100 {
		t.Fatalf("limit=500 should clamp to 100, got %d", p.Limit)
	}

	logs := testResource
	logs.MaxLimit = 200
	p = ResolvePagination(v, logs)
	if p.Limit != 200 {
		t.Fatalf("high-volume ceiling should be 200, got %d", p.Limit)
	}
}

func TestResolvePaginationOffset(t *testing.T) {
	v := url.Values{"page": {"3"}, "limit": {"25"}}
	p := ResolvePagination(v, testResource)

	if p.Offset != 50 {
		t.Fatalf("offset should be (page-1)*limit = 50, got %d", p.Offset)
	}
}

func TestResolvePaginationOrder(t *testing.T) {
	cases := []struct {
		order string
		want  string
	}{
		{"desc", "DESC"},
		{"DESC", "ASC"}, // exact match only
		{"asc", "ASC"},
		{"sideways", "ASC"},
	}
	for _, tc := range cases {
		p := ResolvePagination(url.Values{"order": {tc.order}}, testResource)
		if p.SortOrder != tc.want {
			t.Fatalf("order=%q: got %s want %s", tc.order, p.SortOrder, tc.want)
		}
	}
}

func TestResolvePaginationDefaultOrderPerResource(t *testing.T) {
	logs := testResource
	logs.DefaultOrder = "desc"
	p := ResolvePagination(url.Values{}, logs)
	if p.SortOrder != "DESC" {
		t.Fatalf("resource default order should apply when order omitted, got %s", p.SortOrder)
	}
}

func TestResolvePaginationRejectsUnknownSortField(t *testing.T) {
	v := url.Values{"sort": {"; DROP TABLE products"}}
	p := ResolvePagination(v, testResource)

	if p.SortField != "name" {
		t.Fatalf("unknown sort field should fall back to default, got %q", p.SortField)
	}
}

func TestResolvePaginationSecretFieldNotSortable(t *testing.T) {
	p := ResolvePagination(url.Values{"sort": {"secret_note"}}, testResource)
	if p.SortField != "name" {
		t.Fatalf("secret field must not be sortable, got %q", p.SortField)
	}
}

func TestSortColumnFallsBackToID(t *testing.T) {
	res := testResource
	res.DefaultSort = "nope"
	p := Pagination{SortField: "also-nope"}
	if col := p.SortColumn(res); col != "id" {
		t.Fatalf("expected id fallback, got %q", col)
	}
}
