package search

import (
	"context"
	"strings"

	"github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog"

	"github.com/clinsearch/clinsearch/internal/platform/embedding"
	"github.com/clinsearch/clinsearch/internal/platform/errs"
)

// Request is one search invocation. An empty Query means filter-only.
type Request struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
	Filters
}

// Response carries the ranked rows. Ranked is false when no vector target
// was applied, either because the query was empty or because the embedding
// service was unavailable and the search degraded to filter-only.
type Response struct {
	Results []Result `json:"results"`
	Count   int      `json:"count"`
	Ranked  bool     `json:"ranked"`
}

type Service struct {
	repo       Repo
	embedder   embedding.Embedder
	log        zerolog.Logger
	maxResults int
}

func NewService(repo Repo, embedder embedding.Embedder, log zerolog.Logger, maxResults int) *Service {
	if maxResults < 1 {
		maxResults = 10
	}
	return &Service{repo: repo, embedder: embedder, log: log, maxResults: maxResults}
}

var validVitalStatuses = map[string]bool{
	"": true, VitalAny: true, VitalAlive: true, VitalDeceased: true,
}

// Search plans and runs one hybrid query. An embedding failure is not fatal:
// the query degrades to filter-only instead of blocking search on an
// auxiliary service.
func (s *Service) Search(ctx context.Context, req Request) (*Response, error) {
	if !validVitalStatuses[strings.ToLower(req.VitalStatus)] {
		return nil, &errs.ValidationError{Field: "vital_status", Reason: "must be any, alive or deceased"}
	}
	if req.AgeMin != nil && req.AgeMax != nil && *req.AgeMin > *req.AgeMax {
		return nil, &errs.ValidationError{Field: "age_range", Reason: "min exceeds max"}
	}

	limit := req.Limit
	if limit < 1 || limit > s.maxResults {
		limit = s.maxResults
	}

	p := Params{Limit: limit, Filters: req.Filters}
	ranked := false
	if q := strings.TrimSpace(req.Query); q != "" {
		vec, err := s.embedder.Embed(ctx, q)
		if err != nil {
			s.log.Warn().Err(err).Msg("embedding unavailable, degrading to filter-only search")
		} else {
			v := pgvector.NewVector(vec)
			p.Vector = &v
			ranked = true
		}
	}

	results, err := s.repo.Search(ctx, p)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []Result{}
	}
	return &Response{Results: results, Count: len(results), Ranked: ranked}, nil
}

// Records fetches one child table's rows for a selected patient.
func (s *Service) Records(ctx context.Context, table string, surrogateID int64) ([]Record, error) {
	return s.repo.PatientRecords(ctx, table, surrogateID)
}
