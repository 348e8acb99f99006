// Package errs defines the error taxonomy shared by the ingestion pipeline
// and the search service. Callers distinguish categories with errors.As.
package errs

import "fmt"

// ValidationError reports a required field missing from a document, e.g. a
// bundle without a Patient resource or a Patient without a birth date.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Reason)
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// DecodeError reports a malformed structure in a single resource or document.
type DecodeError struct {
	ResourceType string
	Reason       string
	Err          error
}

func (e *DecodeError) Error() string {
	if e.ResourceType == "" {
		return fmt.Sprintf("decode: %s", e.Reason)
	}
	return fmt.Sprintf("decode %s: %s", e.ResourceType, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// SchemaError reports that an expected table or index is absent. It is fatal
// for the run that detects it: no document can be processed without the
// target schema.
type SchemaError struct {
	Object string
	Err    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: %s missing or unusable", e.Object)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// StorageError reports a failed insert or DDL statement.
type StorageError struct {
	Table string
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Table, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// EmbeddingError reports an unavailable embedding service or a malformed
// embedding response. At query time it degrades search to filter-only; at
// ETL time it fails the document being processed.
type EmbeddingError struct {
	Reason string
	Err    error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding: %s", e.Reason)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }
