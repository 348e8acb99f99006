package archive

import (
	"context"
	"errors"

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

type storePG struct{ pool *pgxpool.Pool }

func NewStorePG(pool *pgxpool.Pool) Store {
	return &storePG{pool: pool}
}

func (s *storePG) conn(context.Context) queryable { return s.pool }

func (s *storePG) Put(ctx context.Context, patientID string, bundle []byte) error {
	_, err := s.conn(ctx).Exec(ctx, `
		INSERT INTO "FHIRrepository" (patient_id, fhir_bundle)
		VALUES ($1, $2)
		ON CONFLICT (patient_id) DO UPDATE
		SET fhir_bundle = EXCLUDED.fhir_bundle, imported_at = NOW()`,
		patientID, string(bundle))
	if err != nil {
		return &errs.StorageError{Table: db.TableRepository, Err: err}
	}
	return nil
}

func (s *storePG) Get(ctx context.Context, patientID string) (*RawDocument, error) {
	var doc RawDocument
	var payload string
	err := s.conn(ctx).QueryRow(ctx, `
		SELECT patient_id, fhir_bundle, imported_at
		FROM "FHIRrepository" WHERE patient_id = $1`, patientID).
		Scan(&doc.PatientID, &payload, &doc.ImportedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &errs.StorageError{Table: db.TableRepository, Err: err}
	}
	doc.Bundle = []byte(payload)
	return &doc, nil
}

// Each streams every archived document to fn in import order. A non-nil
// error from fn stops the iteration.
func (s *storePG) Each(ctx context.Context, fn func(doc RawDocument) error) error {
	rows, err := s.conn(ctx).Query(ctx, `
		SELECT patient_id, fhir_bundle, imported_at
		FROM "FHIRrepository" ORDER BY imported_at, patient_id`)
	if err != nil {
		return &errs.StorageError{Table: db.TableRepository, Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var doc RawDocument
		var payload string
		if err := rows.Scan(&doc.PatientID, &payload, &doc.ImportedAt); err != nil {
			return &errs.StorageError{Table: db.TableRepository, Err: err}
		}
		doc.Bundle = []byte(payload)
		if err := fn(doc); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return &errs.StorageError{Table: db.TableRepository, Err: err}
	}
	return nil
}

func (s *storePG) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM "FHIRrepository"`).Scan(&n); err != nil {
		return 0, &errs.StorageError{Table: db.TableRepository, Err: err}
	}
	return n, nil
}
