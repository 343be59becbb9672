package repositories

import (
	"context"
	"testing"
	"time"

	"abarto-backend/internal/domain"
	"abarto-backend/internal/query"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
)

var productsRes = domain.Resource{
	Name:     "products",
	Singular: "product",
	Table:    "products",
	Fields: []domain.Field{
		{Name: "name", Type: domain.FieldString, Required: true, Unique: true},
		{Name: "category", Type: domain.FieldString},
		{Name: "price", Type: domain.FieldFloat, Required: true},
		{Name: "quantity", Type: domain.FieldInt, Required: true},
	},
	DefaultSort:  "name",
	DefaultOrder: "asc",
	Searchable:   []string{"name", "category"},
	Ranges: []domain.RangeField{
		{Field: "price", MinParam: "minPrice", MaxParam: "maxPrice"},
	},
	Timestamps: true,
}

var ordersRes = domain.Resource{
	Name:     "wholesale-orders",
	Singular: "wholesale order",
	Table:    "wholesale_orders",
	Fields: []domain.Field{
		{Name: "customer_name", Type: domain.FieldString, Required: true},
		{Name: "shipping_address", Type: domain.FieldJSON},
	},
	DefaultSort:  "customer_name",
	DefaultOrder: "asc",
	Timestamps:   true,
}

func newMockRepo(t *testing.T, res domain.Resource) (ResourceRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewResourceRepository(db, res), mock
}

func productRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{"id", "name", "category", "price", "quantity", "created_at", "updated_at"}).
		AddRow(int64(1), "Widget", "Widgets", 9.99, int64(5), now, now)
}

func TestListReturnsPageAndTotal(t *testing.T) {
	repo, mock := newMockRepo(t, productsRes)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
	mock.ExpectQuery(`SELECT id, name, category, price, quantity, created_at, updated_at FROM products ORDER BY name ASC, id ASC LIMIT \? OFFSET \?`).
		WithArgs(10, 0).
		WillReturnRows(productRows(t))

	p := query.ResolvePagination(nil, productsRes)
	records, total, err := repo.List(context.Background(), p)
	require.NoError(t, err)
	require.EqualValues(t, 42, total)
	require.Len(t, records, 1)
	require.Equal(t, "Widget", records[0]["name"])
	require.EqualValues(t, 5, records[0]["quantity"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchAppliesCriteria(t *testing.T) {
	repo, mock := newMockRepo(t, productsRes)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE \(LOWER\(category\) LIKE \? AND price >= \?\)`).
		WithArgs("%widgets%", 10.0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`FROM products WHERE \(LOWER\(category\) LIKE \? AND price >= \?\) ORDER BY`).
		WithArgs("%widgets%", 10.0, 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "price", "quantity", "created_at", "updated_at"}))

	crit := query.Criteria{Conds: []query.Condition{
		{Column: "category", Op: query.OpContains, Value: "Widgets"},
		{Column: "price", Op: query.OpGTE, Value: 10.0},
	}}
	p := query.ResolvePagination(nil, productsRes)

	records, total, err := repo.Search(context.Background(), crit, p)
	require.NoError(t, err)
	require.EqualValues(t, 0, total)
	require.Empty(t, records)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchEscapesLikeWildcards(t *testing.T) {
	repo, mock := newMockRepo(t, productsRes)

	// "100%" must match the literal string, not act as a wildcard
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE \(LOWER\(category\) LIKE \?\)`).
		WithArgs(`%100\%%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`FROM products WHERE \(LOWER\(category\) LIKE \?\) ORDER BY`).
		WithArgs(`%100\%%`, 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "price", "quantity", "created_at", "updated_at"}))

	crit := query.Criteria{Conds: []query.Condition{
		{Column: "category", Op: query.OpContains, Value: "100%"},
	}}
	p := query.ResolvePagination(nil, productsRes)

	_, _, err := repo.Search(context.Background(), crit, p)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDAbsent(t *testing.T) {
	repo, mock := newMockRepo(t, productsRes)

	mock.ExpectQuery(`FROM products WHERE id = \? LIMIT 1`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "price", "quantity", "created_at", "updated_at"}))

	_, err := repo.GetByID(context.Background(), 99)
	require.True(t, domain.IsNotFound(err), "absent record must surface as NotFound, got %v", err)
}

func TestInsertReturnsPersistedRecord(t *testing.T) {
	repo, mock := newMockRepo(t, productsRes)

	mock.ExpectExec(`INSERT INTO products \(name, price, quantity, created_at, updated_at\) VALUES \(\?, \?, \?, NOW\(\), NOW\(\)\)`).
		WithArgs("Widget", 9.99, int64(5)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`FROM products WHERE id = \? LIMIT 1`).
		WithArgs(int64(1)).
		WillReturnRows(productRows(t))

	rec, err := repo.Insert(context.Background(), domain.Record{
		"name":     "Widget",
		"price":    9.99,
		"quantity": float64(5),
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, rec["id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertDuplicateKeyBecomesConflict(t *testing.T) {
	repo, mock := newMockRepo(t, productsRes)

	mock.ExpectExec(`INSERT INTO products`).
		WillReturnError(&mysql.MySQLError{
			Number:  1062,
			Message: "Duplicate entry 'Widget' for key 'products.name'",
		})

	_, err := repo.Insert(context.Background(), domain.Record{"name": "Widget"})
	require.True(t, domain.IsConflict(err), "1062 must map to Conflict, got %v", err)

	var ce domain.ConflictError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "name", ce.Field)
}

func TestPatchMergesJSONShallowly(t *testing.T) {
	repo, mock := newMockRepo(t, ordersRes)

	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	orderRow := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "customer_name", "shipping_address", "created_at", "updated_at"}).
			AddRow(int64(7), "ACME", `{"city":"Gary","zip":"46402"}`, now, now)
	}

	mock.ExpectQuery(`FROM wholesale_orders WHERE id = \? LIMIT 1`).
		WithArgs(int64(7)).WillReturnRows(orderRow())
	mock.ExpectExec(`UPDATE wholesale_orders SET shipping_address = \?, updated_at = NOW\(\) WHERE id = \?`).
		WithArgs(`{"city":"Hammond","zip":"46402"}`, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM wholesale_orders WHERE id = \? LIMIT 1`).
		WithArgs(int64(7)).WillReturnRows(orderRow())

	_, err := repo.Patch(context.Background(), 7, domain.Record{
		"shipping_address": map[string]any{"city": "Hammond"},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAbsentIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t, productsRes)

	mock.ExpectQuery(`FROM products WHERE id = \? LIMIT 1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "price", "quantity", "created_at", "updated_at"}))

	_, err := repo.Delete(context.Background(), 5)
	require.True(t, domain.IsNotFound(err))
}

func TestDeleteReturnsRemovedRecord(t *testing.T) {
	repo, mock := newMockRepo(t, productsRes)

	mock.ExpectQuery(`FROM products WHERE id = \? LIMIT 1`).
		WithArgs(int64(1)).WillReturnRows(productRows(t))
	mock.ExpectExec(`DELETE FROM products WHERE id = \?`).
		WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))

	rec, err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Widget", rec["name"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentials(t *testing.T) {
	admins := domain.Resource{
		Name: "admins", Singular: "admin", Table: "admins",
		Fields: []domain.Field{
			{Name: "email", Type: domain.FieldString, Required: true, Unique: true},
			{Name: "password", Column: "password_hash", Type: domain.FieldString, Required: true, Secret: true},
		},
		DefaultSort: "email", Timestamps: true,
	}
	repo, mock := newMockRepo(t, admins)

	mock.ExpectQuery(`SELECT id, password_hash FROM admins WHERE email = \? LIMIT 1`).
		WithArgs("ada@abarto.example").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}).AddRow(int64(3), "$2a$10$hash"))

	id, hash, err := repo.Credentials(context.Background(), "email", "ada@abarto.example")
	require.NoError(t, err)
	require.EqualValues(t, 3, id)
	require.Equal(t, "$2a$10$hash", hash)
}

func TestMetadataLastModified(t *testing.T) {
	repo, mock := newMockRepo(t, productsRes)

	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, created_at, updated_at FROM products WHERE id = \? LIMIT 1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), created, updated))

	meta, err := repo.Metadata(context.Background(), 1)
	require.NoError(t, err)
	lm, ok := meta.LastModified()
	require.True(t, ok)
	require.Equal(t, updated, lm.Time)
}
