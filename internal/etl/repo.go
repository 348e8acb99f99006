// Package etl drives raw archived bundles through normalization, embedding
// and storage into the relational schema.
package etl

import (
	"context"

	"github.com/pgvector/pgvector-go"

	"github.com/clinsearch/clinsearch/internal/summary"
)

// PatientRow is the storage shape of one Patient record, embedding included.
type PatientRow struct {
	BusinessID       string
	FullName         string
	Gender           string
	BirthDate        string
	Age              int
	Deceased         bool
	DeceasedDateTime string
	Phone            string
	Email            string
	Address          string
	City             string
	State            string
	Country          string
	SSN              string
	MRN              string
	DriversLicense   string
	Passport         string
	Description      string
	Vector           pgvector.Vector
}

// Repo writes normalized records. The write protocol is two-phase: the
// Patient row goes in first, its surrogate key is resolved by business
// identifier, and only then are child rows written with that key.
type Repo interface {
	UpsertPatient(ctx context.Context, row PatientRow) error
	ResolveSurrogate(ctx context.Context, businessID string) (int64, error)
	ReplaceChildren(ctx context.Context, surrogateID int64, el summary.Elements) error
}
