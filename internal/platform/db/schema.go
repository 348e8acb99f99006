package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinsearch/clinsearch/internal/platform/errs"
)

// Table names of the fixed schema. The Patient table holds one row per
// ingested bundle; the child tables reference its surrogate key.
const (
	TableRepository         = "FHIRrepository"
	TablePatient            = "Patient"
	TableAllergyIntolerance = "AllergyIntolerance"
	TableImmunization       = "Immunization"
	TableObservation        = "Observation"
	TableCondition          = "Condition"
	TableProcedures         = "Procedures"
	TableCarePlan           = "CarePlan"
)

// ChildTables lists every table carrying a patient_id foreign key.
var ChildTables = []string{
	TableAllergyIntolerance,
	TableImmunization,
	TableObservation,
	TableCondition,
	TableProcedures,
	TableCarePlan,
}

// SchemaConfig parameterizes the embedding column and its ANN index.
type SchemaConfig struct {
	VectorDim int
	// Metric selects the HNSW operator class: "cosine" or "dot".
	Metric          string
	HNSWM           int
	HNSWEfConstruct int
}

// SchemaManager provisions and verifies the fixed relational schema.
// Provisioning is declarative: every statement is CREATE ... IF NOT EXISTS,
// so re-running against an existing schema is a no-op.
type SchemaManager struct {
	pool *pgxpool.Pool
	cfg  SchemaConfig
}

func NewSchemaManager(pool *pgxpool.Pool, cfg SchemaConfig) *SchemaManager {
	return &SchemaManager{pool: pool, cfg: cfg}
}

// operatorClass maps the configured metric to a pgvector operator class.
// Stored vectors are unit-normalized, so cosine and inner product rank
// identically; cosine is the default.
func (c SchemaConfig) operatorClass() string {
	if strings.EqualFold(c.Metric, "dot") {
		return "vector_ip_ops"
	}
	return "vector_cosine_ops"
}

// Statements returns the full DDL of the schema in execution order.
func (m *SchemaManager) Statements() []string {
	c := m.cfg
	return []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,

		`CREATE TABLE IF NOT EXISTS "FHIRrepository" (
	patient_id TEXT PRIMARY KEY,
	fhir_bundle TEXT NOT NULL,
	imported_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS "Patient" (
	patient_row_id INTEGER GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	patient_id TEXT NOT NULL,
	full_name TEXT,
	gender TEXT,
	birth_date TEXT,
	age INTEGER,
	deceased BOOLEAN NOT NULL DEFAULT FALSE,
	deceased_datetime TEXT,
	phone TEXT,
	email TEXT,
	address TEXT,
	city TEXT,
	state TEXT,
	country TEXT,
	ssn TEXT,
	mrn TEXT,
	drivers_license TEXT,
	passport TEXT,
	description TEXT,
	description_vector vector(%d)
)`, c.VectorDim),

		`CREATE TABLE IF NOT EXISTS "AllergyIntolerance" (
	id INTEGER GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	patient_id INTEGER NOT NULL REFERENCES "Patient"(patient_row_id),
	type TEXT,
	category TEXT,
	criticality TEXT,
	code TEXT,
	asserted_date TEXT,
	clinical_status TEXT,
	verification_status TEXT
)`,

		`CREATE TABLE IF NOT EXISTS "Immunization" (
	id INTEGER GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	patient_id INTEGER NOT NULL REFERENCES "Patient"(patient_row_id),
	vaccine_code TEXT,
	imm_date TEXT,
	status TEXT
)`,

		`CREATE TABLE IF NOT EXISTS "Observation" (
	id INTEGER GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	patient_id INTEGER NOT NULL REFERENCES "Patient"(patient_row_id),
	code TEXT,
	obs_date TEXT,
	value TEXT,
	unit TEXT
)`,

		`CREATE TABLE IF NOT EXISTS "Condition" (
	id INTEGER GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	patient_id INTEGER NOT NULL REFERENCES "Patient"(patient_row_id),
	code TEXT,
	onset TEXT,
	asserted_date TEXT,
	clinical_status TEXT,
	verification_status TEXT
)`,

		`CREATE TABLE IF NOT EXISTS "Procedures" (
	id INTEGER GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	patient_id INTEGER NOT NULL REFERENCES "Patient"(patient_row_id),
	code TEXT,
	proc_date TEXT
)`,

		`CREATE TABLE IF NOT EXISTS "CarePlan" (
	id INTEGER GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	patient_id INTEGER NOT NULL REFERENCES "Patient"(patient_row_id),
	category TEXT,
	cp_start TEXT,
	cp_end TEXT,
	status TEXT,
	activities TEXT
)`,

		// one Patient row per business identifier; extraction upserts on it
		`CREATE UNIQUE INDEX IF NOT EXISTS patient_id_idx ON "Patient" (patient_id)`,
		`CREATE INDEX IF NOT EXISTS age_idx ON "Patient" (age)`,
		`CREATE INDEX IF NOT EXISTS gender_idx ON "Patient" (gender)`,

		`CREATE INDEX IF NOT EXISTS allergyintolerance_patient_id_idx ON "AllergyIntolerance" (patient_id)`,
		`CREATE INDEX IF NOT EXISTS immunization_patient_id_idx ON "Immunization" (patient_id)`,
		`CREATE INDEX IF NOT EXISTS observation_patient_id_idx ON "Observation" (patient_id)`,
		`CREATE INDEX IF NOT EXISTS condition_patient_id_idx ON "Condition" (patient_id)`,
		`CREATE INDEX IF NOT EXISTS procedures_patient_id_idx ON "Procedures" (patient_id)`,
		`CREATE INDEX IF NOT EXISTS careplan_patient_id_idx ON "CarePlan" (patient_id)`,

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS description_vector_idx ON "Patient" USING hnsw (description_vector %s) WITH (m = %d, ef_construction = %d)`,
			c.operatorClass(), c.HNSWM, c.HNSWEfConstruct),
	}
}

// Provision applies the schema DDL.
func (m *SchemaManager) Provision(ctx context.Context) error {
	for _, stmt := range m.Statements() {
		if _, err := m.pool.Exec(ctx, stmt); err != nil {
			return &errs.StorageError{Table: firstIdentifier(stmt), Err: err}
		}
	}
	return nil
}

// Verify checks that every table of the schema exists. Extraction and search
// refuse to start against an unprovisioned database.
func (m *SchemaManager) Verify(ctx context.Context) error {
	tables := append([]string{TableRepository, TablePatient}, ChildTables...)
	for _, table := range tables {
		var oid *uint32
		err := m.pool.QueryRow(ctx, `SELECT to_regclass($1)::oid`, fmt.Sprintf("%q", table)).Scan(&oid)
		if err != nil {
			return &errs.SchemaError{Object: table, Err: err}
		}
		if oid == nil {
			return &errs.SchemaError{Object: table}
		}
	}
	return nil
}

// firstIdentifier pulls the quoted object name out of a DDL statement for
// error reporting; falls back to the statement head.
func firstIdentifier(stmt string) string {
	if i := strings.Index(stmt, `"`); i >= 0 {
		if j := strings.Index(stmt[i+1:], `"`); j >= 0 {
			return stmt[i+1 : i+1+j]
		}
	}
	head := strings.Fields(stmt)
	if len(head) > 2 {
		return strings.Join(head[:3], " ")
	}
	return stmt
}
