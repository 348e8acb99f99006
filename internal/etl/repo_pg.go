package etl

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinsearch/clinsearch/internal/platform/db"
	"github.com/clinsearch/clinsearch/internal/platform/errs"
	"github.com/clinsearch/clinsearch/internal/summary"
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

const patientCols = `patient_id, full_name, gender, birth_date, age,
	deceased, deceased_datetime, phone, email,
	address, city, state, country,
	ssn, mrn, drivers_license, passport,
	description, description_vector`

// UpsertPatient writes the Patient row, replacing the previous extraction of
// the same business identifier.
func (r *repoPG) UpsertPatient(ctx context.Context, row PatientRow) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO "Patient" (`+patientCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		ON CONFLICT (patient_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			gender = EXCLUDED.gender,
			birth_date = EXCLUDED.birth_date,
			age = EXCLUDED.age,
			deceased = EXCLUDED.deceased,
			deceased_datetime = EXCLUDED.deceased_datetime,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			country = EXCLUDED.country,
			ssn = EXCLUDED.ssn,
			mrn = EXCLUDED.mrn,
			drivers_license = EXCLUDED.drivers_license,
			passport = EXCLUDED.passport,
			description = EXCLUDED.description,
			description_vector = EXCLUDED.description_vector`,
		row.BusinessID, row.FullName, row.Gender, row.BirthDate, row.Age,
		row.Deceased, row.DeceasedDateTime, row.Phone, row.Email,
		row.Address, row.City, row.State, row.Country,
		row.SSN, row.MRN, row.DriversLicense, row.Passport,
		row.Description, row.Vector)
	if err != nil {
		return &errs.StorageError{Table: db.TablePatient, Err: err}
	}
	return nil
}

// ResolveSurrogate looks up the surrogate key assigned to a business
// identifier. A missing row is a storage error: the caller must have
// inserted the Patient first.
func (r *repoPG) ResolveSurrogate(ctx context.Context, businessID string) (int64, error) {
	var id int64
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT patient_row_id FROM "Patient" WHERE patient_id = $1`, businessID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, &errs.StorageError{Table: db.TablePatient, Err: errors.New("no row for business id " + businessID)}
	}
	if err != nil {
		return 0, &errs.StorageError{Table: db.TablePatient, Err: err}
	}
	return id, nil
}

// ReplaceChildren deletes any child rows of a previous extraction and writes
// the current element lists under the resolved surrogate key.
func (r *repoPG) ReplaceChildren(ctx context.Context, surrogateID int64, el summary.Elements) error {
	conn := r.conn(ctx)

	for _, table := range db.ChildTables {
		if _, err := conn.Exec(ctx, `DELETE FROM "`+table+`" WHERE patient_id = $1`, surrogateID); err != nil {
			return &errs.StorageError{Table: table, Err: err}
		}
	}

	for _, a := range el.Allergies {
		_, err := conn.Exec(ctx, `
			INSERT INTO "AllergyIntolerance" (patient_id, type, category, criticality, code, asserted_date, clinical_status, verification_status)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			surrogateID, a.Type, a.Category, a.Criticality, a.Code, a.AssertedDate, a.ClinicalStatus, a.VerificationStatus)
		if err != nil {
			return &errs.StorageError{Table: db.TableAllergyIntolerance, Err: err}
		}
	}

	for _, im := range el.Immunizations {
		_, err := conn.Exec(ctx, `
			INSERT INTO "Immunization" (patient_id, vaccine_code, imm_date, status)
			VALUES ($1,$2,$3,$4)`,
			surrogateID, im.VaccineCode, im.Date, im.Status)
		if err != nil {
			return &errs.StorageError{Table: db.TableImmunization, Err: err}
		}
	}

	for _, o := range el.Observations {
		_, err := conn.Exec(ctx, `
			INSERT INTO "Observation" (patient_id, code, obs_date, value, unit)
			VALUES ($1,$2,$3,$4,$5)`,
			surrogateID, o.Code, o.Date, o.Value, o.Unit)
		if err != nil {
			return &errs.StorageError{Table: db.TableObservation, Err: err}
		}
	}

	for _, c := range el.Conditions {
		_, err := conn.Exec(ctx, `
			INSERT INTO "Condition" (patient_id, code, onset, asserted_date, clinical_status, verification_status)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			surrogateID, c.Code, c.Onset, c.AssertedDate, c.ClinicalStatus, c.VerificationStatus)
		if err != nil {
			return &errs.StorageError{Table: db.TableCondition, Err: err}
		}
	}

	for _, p := range el.Procedures {
		_, err := conn.Exec(ctx, `
			INSERT INTO "Procedures" (patient_id, code, proc_date)
			VALUES ($1,$2,$3)`,
			surrogateID, p.Code, p.Date)
		if err != nil {
			return &errs.StorageError{Table: db.TableProcedures, Err: err}
		}
	}

	for _, cp := range el.CarePlans {
		_, err := conn.Exec(ctx, `
			INSERT INTO "CarePlan" (patient_id, category, cp_start, cp_end, status, activities)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			surrogateID, cp.Category, cp.Start, cp.End, cp.Status, cp.Activities)
		if err != nil {
			return &errs.StorageError{Table: db.TableCarePlan, Err: err}
		}
	}

	return nil
}
