// Package archive is the raw document store. Bundles are kept verbatim,
// keyed by the patient's business identifier, so the normalized tables can
// be rebuilt at any time without re-ingesting source files.
package archive

import (
	"context"
	"time"
)

// RawDocument is one archived bundle.
type RawDocument struct {
	PatientID  string
	Bundle     []byte
	ImportedAt time.Time
}

// Store persists raw documents. Put is an upsert on the business identifier:
// re-importing the same patient's bundle replaces the stored payload instead
// of duplicating it.
type Store interface {
	Put(ctx context.Context, patientID string, bundle []byte) error
	Get(ctx context.Context, patientID string) (*RawDocument, error)
	Each(ctx context.Context, fn func(doc RawDocument) error) error
	Count(ctx context.Context) (int, error)
}
