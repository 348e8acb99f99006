package etl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/clinsearch/clinsearch/internal/archive"
	"github.com/clinsearch/clinsearch/internal/bundle"
	"github.com/clinsearch/clinsearch/internal/platform/embedding"
	"github.com/clinsearch/clinsearch/internal/summary"
)

// schemaVerifier gates an extraction run on the target schema being present.
type schemaVerifier interface {
	Verify(ctx context.Context) error
}

// Orchestrator extracts every archived document into the normalized tables.
// Documents are independent units of work: extraction runs in parallel across
// patients but stays strictly sequential within one patient.
type Orchestrator struct {
	store    archive.Store
	repo     Repo
	embedder embedding.Embedder
	schema   schemaVerifier
	log      zerolog.Logger
	workers  int
	now      func() time.Time
}

// DocumentFailure records why one document's extraction failed.
type DocumentFailure struct {
	PatientID string
	Err       error
}

// RunReport is the end-of-run summary of one extraction batch.
type RunReport struct {
	Documents int
	Extracted int
	Failed    int
	Failures  []DocumentFailure
	Elapsed   time.Duration
}

func NewOrchestrator(store archive.Store, repo Repo, embedder embedding.Embedder, schema schemaVerifier, log zerolog.Logger, workers int) *Orchestrator {
	if workers < 1 {
		workers = 1
	}
	return &Orchestrator{
		store:    store,
		repo:     repo,
		embedder: embedder,
		schema:   schema,
		log:      log,
		workers:  workers,
		now:      time.Now,
	}
}

// Run extracts the whole archive. A missing schema aborts the run before any
// document is touched; a single document's failure is recorded in the report
// and does not stop its siblings. Cancelling the context stops the run from
// picking up further documents, leaving already-committed ones intact.
func (o *Orchestrator) Run(ctx context.Context) (*RunReport, error) {
	if err := o.schema.Verify(ctx); err != nil {
		return nil, err
	}

	var docs []archive.RawDocument
	if err := o.store.Each(ctx, func(doc archive.RawDocument) error {
		docs = append(docs, doc)
		return nil
	}); err != nil {
		return nil, err
	}

	started := o.now()
	report := &RunReport{Documents: len(docs)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for _, doc := range docs {
		doc := doc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			err := o.extractDocument(gctx, doc)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed++
				report.Failures = append(report.Failures, DocumentFailure{PatientID: doc.PatientID, Err: err})
				o.log.Warn().Err(err).Str("patient_id", doc.PatientID).Msg("document extraction failed")
				return nil
			}
			report.Extracted++
			return nil
		})
	}
	err := g.Wait()
	report.Elapsed = o.now().Sub(started)

	o.log.Info().
		Int("documents", report.Documents).
		Int("extracted", report.Extracted).
		Int("failed", report.Failed).
		Dur("elapsed", report.Elapsed).
		Msg("extraction run finished")

	if err != nil {
		return report, err
	}
	return report, nil
}

// extractDocument is the per-patient critical section: normalize, embed,
// insert the Patient row, resolve its surrogate key, then write children
// under that key.
func (o *Orchestrator) extractDocument(ctx context.Context, doc archive.RawDocument) error {
	cat, procReport, err := bundle.Process(doc.Bundle, doc.PatientID)
	if err != nil {
		return err
	}
	for _, entryErr := range procReport.Errors {
		o.log.Debug().Err(entryErr).Str("patient_id", doc.PatientID).Msg("entry skipped")
	}

	s, err := summary.Build(cat, o.now())
	if err != nil {
		return err
	}

	// No vector means no complete Patient row: fail the document instead of
	// storing a partial record.
	vec, err := o.embedder.Embed(ctx, s.Description)
	if err != nil {
		return err
	}

	row := patientRow(doc.PatientID, s, vec)
	if err := o.repo.UpsertPatient(ctx, row); err != nil {
		return err
	}

	surrogate, err := o.repo.ResolveSurrogate(ctx, doc.PatientID)
	if err != nil {
		return err
	}

	if err := o.repo.ReplaceChildren(ctx, surrogate, s.Elements); err != nil {
		return fmt.Errorf("children of patient %d: %w", surrogate, err)
	}

	o.log.Debug().
		Str("patient_id", doc.PatientID).
		Int64("surrogate_id", surrogate).
		Int("entries", procReport.Entries).
		Msg("document extracted")
	return nil
}

func patientRow(businessID string, s *summary.Summary, vec []float32) PatientRow {
	p := s.Patient
	return PatientRow{
		BusinessID:       businessID,
		FullName:         p.FullName,
		Gender:           p.Gender,
		BirthDate:        p.BirthDate,
		Age:              s.Age,
		Deceased:         s.Deceased,
		DeceasedDateTime: p.DeceasedDateTime,
		Phone:            p.Phone,
		Email:            p.Email,
		Address:          p.AddressFull,
		City:             p.AddressCity,
		State:            p.AddressState,
		Country:          p.AddressCountry,
		SSN:              p.SSN,
		MRN:              p.MRN,
		DriversLicense:   p.DriverLicense,
		Passport:         p.Passport,
		Description:      s.Description,
		Vector:           pgvector.NewVector(vec),
	}
}
