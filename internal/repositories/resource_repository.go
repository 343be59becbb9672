// Package repositories adapts resource descriptors to the MySQL store. One
// generic repository serves every resource; queries are built from the
// descriptor's column list, never from client input.
package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"abarto-backend/internal/domain"
	"abarto-backend/internal/query"

	"github.com/go-sql-driver/mysql"
)

type ResourceRepository struct {
	DB  *sql.DB
	Res domain.Resource
}

func NewResourceRepository(db *sql.DB, res domain.Resource) ResourceRepository {
	return ResourceRepository{DB: db, Res: res}
}

// Metadata is the minimal projection backing HEAD requests.
type Metadata struct {
	ID        int64
	CreatedAt sql.NullTime
	UpdatedAt sql.NullTime
}

// LastModified picks updated_at with created_at as fallback.
func (m Metadata) LastModified() (sql.NullTime, bool) {
	if m.UpdatedAt.Valid {
		return m.UpdatedAt, true
	}
	if m.CreatedAt.Valid {
		return m.CreatedAt, true
	}
	return sql.NullTime{}, false
}

func (r ResourceRepository) selectColumns() []string {
	cols := []string{"id"}
	for _, f := range r.Res.PublicFields() {
		cols = append(cols, r.columnOf(f))
	}
	if r.Res.Timestamps {
		cols = append(cols, "created_at", "updated_at")
	}
	return cols
}

func (r ResourceRepository) columnOf(f domain.Field) string {
	if f.Column != "" {
		return f.Column
	}
	return f.Name
}

func (r ResourceRepository) baseSelect() string {
	return "SELECT " + strings.Join(r.selectColumns(), ", ") + " FROM " + r.Res.Table
}

// List returns one page plus the unfiltered total.
func (r ResourceRepository) List(ctx context.Context, p query.Pagination) ([]domain.Record, int64, error) {
	return r.page(ctx, query.Criteria{}, p)
}

// Search returns one page of matching records plus the matching total.
func (r ResourceRepository) Search(ctx context.Context, crit query.Criteria, p query.Pagination) ([]domain.Record, int64, error) {
	return r.page(ctx, crit, p)
}

func (r ResourceRepository) page(ctx context.Context, crit query.Criteria, p query.Pagination) ([]domain.Record, int64, error) {
	where, args := whereClause(crit)

	total, err := r.Count(ctx, crit)
	if err != nil {
		return nil, 0, err
	}

	orderBy := fmt.Sprintf(" ORDER BY %s %s, id ASC", p.SortColumn(r.Res), p.SortOrder)
	q := r.baseSelect() + where + orderBy + " LIMIT ? OFFSET ?"
	args = append(args, p.Limit, p.Offset)

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, domain.InternalError{Msg: "query " + r.Res.Name, Err: err}
	}
	defer rows.Close()

	records := []domain.Record{}
	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return nil, 0, domain.InternalError{Msg: "scan " + r.Res.Singular, Err: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.InternalError{Msg: "iterate " + r.Res.Name, Err: err}
	}
	return records, total, nil
}

func (r ResourceRepository) Count(ctx context.Context, crit query.Criteria) (int64, error) {
	where, args := whereClause(crit)
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+r.Res.Table+where, args...).Scan(&n)
	if err != nil {
		return 0, domain.InternalError{Msg: "count " + r.Res.Name, Err: err}
	}
	return n, nil
}

func (r ResourceRepository) GetByID(ctx context.Context, id int64) (domain.Record, error) {
	row, err := r.DB.QueryContext(ctx, r.baseSelect()+" WHERE id = ? LIMIT 1", id)
	if err != nil {
		return nil, domain.InternalError{Msg: "get " + r.Res.Singular, Err: err}
	}
	defer row.Close()

	if !row.Next() {
		if err := row.Err(); err != nil {
			return nil, domain.InternalError{Msg: "get " + r.Res.Singular, Err: err}
		}
		return nil, domain.NotFoundError{Resource: r.Res.Singular}
	}
	rec, err := r.scanRecord(row)
	if err != nil {
		return nil, domain.InternalError{Msg: "scan " + r.Res.Singular, Err: err}
	}
	return rec, nil
}

func (r ResourceRepository) Metadata(ctx context.Context, id int64) (Metadata, error) {
	cols := "id"
	if r.Res.Timestamps {
		cols = "id, created_at, updated_at"
	}
	var m Metadata
	var err error
	if r.Res.Timestamps {
		err = r.DB.QueryRowContext(ctx, "SELECT "+cols+" FROM "+r.Res.Table+" WHERE id = ? LIMIT 1", id).
			Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	} else {
		err = r.DB.QueryRowContext(ctx, "SELECT "+cols+" FROM "+r.Res.Table+" WHERE id = ? LIMIT 1", id).
			Scan(&m.ID)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Metadata{}, domain.NotFoundError{Resource: r.Res.Singular}
		}
		return Metadata{}, domain.InternalError{Msg: "metadata " + r.Res.Singular, Err: err}
	}
	return m, nil
}

// Insert persists a validated candidate and returns the stored record with
// its assigned id and timestamps.
func (r ResourceRepository) Insert(ctx context.Context, rec domain.Record) (domain.Record, error) {
	cols := []string{}
	args := []any{}
	for _, f := range r.Res.Fields {
		v, ok := rec[f.Name]
		if !ok {
			continue
		}
		sv, err := r.storeValue(f, v)
		if err != nil {
			return nil, err
		}
		cols = append(cols, r.columnOf(f))
		args = append(args, sv)
	}
	if len(cols) == 0 {
		return nil, domain.ValidationError{Messages: []string{"empty record"}}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	q := "INSERT INTO " + r.Res.Table + " (" + strings.Join(cols, ", ")
	if r.Res.Timestamps {
		q += ", created_at, updated_at) VALUES (" + placeholders + ", NOW(), NOW())"
	} else {
		q += ") VALUES (" + placeholders + ")"
	}

	res, err := r.DB.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, r.storeError("insert", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, domain.InternalError{Msg: "insert " + r.Res.Singular, Err: err}
	}
	return r.GetByID(ctx, id)
}

// Replace overwrites every field: fields absent from the candidate are
// cleared, not preserved.
func (r ResourceRepository) Replace(ctx context.Context, id int64, rec domain.Record) (domain.Record, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}

	sets := []string{}
	args := []any{}
	for _, f := range r.Res.Fields {
		v, present := rec[f.Name]
		if f.Secret && !present {
			// credential hashes survive a replace that does not resend them
			continue
		}
		sv := any(nil)
		if present {
			var err error
			if sv, err = r.storeValue(f, v); err != nil {
				return nil, err
			}
		}
		sets = append(sets, r.columnOf(f)+" = ?")
		args = append(args, sv)
	}
	return r.applyUpdate(ctx, id, sets, args)
}

// Patch changes only the named fields. JSON fields merge shallowly with the
// stored value instead of replacing it wholesale.
func (r ResourceRepository) Patch(ctx context.Context, id int64, rec domain.Record) (domain.Record, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sets := []string{}
	args := []any{}
	for _, f := range r.Res.Fields {
		v, present := rec[f.Name]
		if !present {
			continue
		}
		if f.Type == domain.FieldJSON {
			v = mergeShallow(existing[f.Name], v)
		}
		sv, err := r.storeValue(f, v)
		if err != nil {
			return nil, err
		}
		sets = append(sets, r.columnOf(f)+" = ?")
		args = append(args, sv)
	}
	if len(sets) == 0 {
		return existing, nil
	}
	return r.applyUpdate(ctx, id, sets, args)
}

func (r ResourceRepository) applyUpdate(ctx context.Context, id int64, sets []string, args []any) (domain.Record, error) {
	if r.Res.Timestamps {
		sets = append(sets, "updated_at = NOW()")
	}
	q := "UPDATE " + r.Res.Table + " SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)
	if _, err := r.DB.ExecContext(ctx, q, args...); err != nil {
		return nil, r.storeError("update", err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes the record and returns its last stored state.
func (r ResourceRepository) Delete(ctx context.Context, id int64) (domain.Record, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM "+r.Res.Table+" WHERE id = ?", id); err != nil {
		return nil, domain.InternalError{Msg: "delete " + r.Res.Singular, Err: err}
	}
	return existing, nil
}

// Credentials fetches the id and secret hash for one login identifier. This
// is the only read path that touches a secret column.
func (r ResourceRepository) Credentials(ctx context.Context, column, value string) (int64, string, error) {
	secrets := r.Res.SecretFields()
	if len(secrets) == 0 {
		return 0, "", domain.InternalError{Msg: r.Res.Name + " carries no credential field"}
	}
	var (
		id   int64
		hash string
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, "+r.columnOf(secrets[0])+" FROM "+r.Res.Table+" WHERE "+column+" = ? LIMIT 1",
		value,
	).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", domain.NotFoundError{Resource: r.Res.Singular}
		}
		return 0, "", domain.InternalError{Msg: "credentials " + r.Res.Singular, Err: err}
	}
	return id, hash, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r ResourceRepository) scanRecord(row rowScanner) (domain.Record, error) {
	fields := r.Res.PublicFields()

	targets := []any{new(int64)}
	for _, f := range fields {
		switch f.Type {
		case domain.FieldInt:
			targets = append(targets, new(sql.NullInt64))
		case domain.FieldFloat:
			targets = append(targets, new(sql.NullFloat64))
		case domain.FieldTime:
			targets = append(targets, new(sql.NullTime))
		default:
			targets = append(targets, new(sql.NullString))
		}
	}
	var createdAt, updatedAt sql.NullTime
	if r.Res.Timestamps {
		targets = append(targets, &createdAt, &updatedAt)
	}

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}

	rec := domain.Record{"id": *targets[0].(*int64)}
	for i, f := range fields {
		switch t := targets[i+1].(type) {
		case *sql.NullInt64:
			if t.Valid {
				rec[f.Name] = t.Int64
			}
		case *sql.NullFloat64:
			if t.Valid {
				rec[f.Name] = t.Float64
			}
		case *sql.NullTime:
			if t.Valid {
				rec[f.Name] = t.Time
			}
		case *sql.NullString:
			if !t.Valid {
				continue
			}
			if f.Type == domain.FieldJSON {
				var v any
				if err := json.Unmarshal([]byte(t.String), &v); err == nil {
					rec[f.Name] = v
				}
				continue
			}
			rec[f.Name] = t.String
		}
	}
	if createdAt.Valid {
		rec["created_at"] = createdAt.Time
	}
	if updatedAt.Valid {
		rec["updated_at"] = updatedAt.Time
	}
	return rec, nil
}

// storeValue converts a validated record value into a driver argument.
func (r ResourceRepository) storeValue(f domain.Field, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch f.Type {
	case domain.FieldInt:
		if n, ok := v.(float64); ok {
			return int64(n), nil
		}
		return v, nil
	case domain.FieldTime:
		if s, ok := v.(string); ok {
			t, err := domain.ParseTimeValue(s)
			if err != nil {
				return nil, domain.ValidationError{Messages: []string{f.Name + " must be a valid date"}}
			}
			return t, nil
		}
		return v, nil
	case domain.FieldJSON:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, domain.ValidationError{Messages: []string{f.Name + " is not serializable"}}
		}
		return string(raw), nil
	default:
		return v, nil
	}
}

// storeError classifies driver failures into tagged variants so nothing
// upstream has to inspect MySQL error numbers.
func (r ResourceRepository) storeError(op string, err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return domain.ConflictError{
			Resource: r.Res.Singular,
			Field:    r.duplicateField(me.Message),
			Err:      err,
		}
	}
	return domain.InternalError{Msg: op + " " + r.Res.Singular, Err: err}
}

// duplicateField extracts the index name from a 1062 message, e.g.
// "Duplicate entry 'a@b.c' for key 'admins.email'".
func (r ResourceRepository) duplicateField(msg string) string {
	i := strings.LastIndex(msg, "for key '")
	if i < 0 {
		return ""
	}
	key := strings.TrimSuffix(msg[i+len("for key '"):], "'")
	if j := strings.LastIndex(key, "."); j >= 0 {
		key = key[j+1:]
	}
	if f, ok := r.Res.FieldByColumn(key); ok {
		return f.Name
	}
	return key
}

func mergeShallow(existing, patch any) any {
	base, okBase := existing.(map[string]any)
	over, okOver := patch.(map[string]any)
	if !okBase || !okOver {
		return patch
	}
	merged := map[string]any{}
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range over {
		merged[k] = v
	}
	return merged
}

// likeEscaper neutralizes LIKE metacharacters so a search value is always a
// literal substring.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func whereClause(crit query.Criteria) (string, []any) {
	if crit.Empty() {
		return "", nil
	}
	parts := []string{}
	args := []any{}
	for _, c := range crit.Conds {
		switch c.Op {
		case query.OpContains:
			parts = append(parts, "LOWER("+c.Column+") LIKE ?")
			args = append(args, "%"+likeEscaper.Replace(strings.ToLower(fmt.Sprint(c.Value)))+"%")
		case query.OpGTE:
			parts = append(parts, c.Column+" >= ?")
			args = append(args, c.Value)
		case query.OpLTE:
			parts = append(parts, c.Column+" <= ?")
			args = append(args, c.Value)
		}
	}
	joiner := " AND "
	if crit.Any {
		joiner = " OR "
	}
	return " WHERE (" + strings.Join(parts, joiner) + ")", args
}
