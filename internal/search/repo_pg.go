package search

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinsearch/clinsearch/internal/platform/db"
	"github.com/clinsearch/clinsearch/internal/platform/errs"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repo {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(context.Context) queryable { return r.pool }

func (r *repoPG) Search(ctx context.Context, p Params) ([]Result, error) {
	sql, args := BuildHybridQuery(p)
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, &errs.StorageError{Table: db.TablePatient, Err: err}
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var res Result
		err := rows.Scan(&res.SurrogateID, &res.PatientID, &res.FullName, &res.Gender,
			&res.BirthDate, &res.Age, &res.Deceased,
			&res.Address, &res.City, &res.State, &res.Country,
			&res.SSN, &res.MRN, &res.Description, &res.Similarity)
		if err != nil {
			return nil, &errs.StorageError{Table: db.TablePatient, Err: err}
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, &errs.StorageError{Table: db.TablePatient, Err: err}
	}
	return results, nil
}

// childTable resolves a caller-supplied table name against the child-table
// allowlist, case-insensitively. Anything else never reaches the database.
func childTable(name string) (string, bool) {
	for _, t := range db.ChildTables {
		if strings.EqualFold(t, name) {
			return t, true
		}
	}
	return "", false
}

func (r *repoPG) PatientRecords(ctx context.Context, table string, surrogateID int64) ([]Record, error) {
	t, ok := childTable(table)
	if !ok {
		return nil, &errs.ValidationError{Field: "table", Reason: "unknown record type " + table}
	}

	rows, err := r.conn(ctx).Query(ctx, `SELECT * FROM "`+t+`" WHERE patient_id = $1 ORDER BY id`, surrogateID)
	if err != nil {
		return nil, &errs.StorageError{Table: t, Err: err}
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var records []Record
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, &errs.StorageError{Table: t, Err: err}
		}
		rec := make(Record, len(fields))
		for i, f := range fields {
			rec[string(f.Name)] = values[i]
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &errs.StorageError{Table: t, Err: err}
	}
	return records, nil
}
