// Package search implements hybrid retrieval over the Patient table: an
// optional vector-similarity ranking combined with exact relational filters
// in a single query.
package search

import (
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
)

// Filter sentinels. A filter set to its sentinel is omitted from the query.
const (
	GenderAny     = "any"
	VitalAny      = "any"
	VitalAlive    = "alive"
	VitalDeceased = "deceased"
)

// Filters are the exact predicates of a hybrid query. Age bounds are
// inclusive; a nil bound is open.
type Filters struct {
	Gender      string `json:"gender"`
	VitalStatus string `json:"vital_status"`
	AgeMin      *int   `json:"age_min"`
	AgeMax      *int   `json:"age_max"`
}

// Params is one planned query: an optional similarity target plus filters
// and a result cap.
type Params struct {
	Vector *pgvector.Vector
	Limit  int
	Filters
}

// resultCols is the fixed projection of every hybrid query.
const resultCols = `patient_row_id, patient_id, full_name, gender, birth_date, age,
	deceased, address, city, state, country, ssn, mrn, description`

// BuildHybridQuery renders the SQL and argument list for one search. With a
// similarity target the ranking term is the dot product against the stored
// unit vector (equal to cosine similarity) and rows come back ordered by it
// descending; without one, every row scores a constant 0 and the order is
// left to the database.
func BuildHybridQuery(p Params) (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}

	sb.WriteString("SELECT " + resultCols)
	vectorArg := 0
	if p.Vector != nil {
		args = append(args, *p.Vector)
		vectorArg = len(args)
		// <#> is negative inner product
		fmt.Fprintf(&sb, ",\n\t(description_vector <#> $%d) * -1 AS similarity", vectorArg)
	} else {
		sb.WriteString(",\n\t0::float8 AS similarity")
	}
	sb.WriteString("\nFROM \"Patient\"")

	var conds []string
	if p.Gender != "" && !strings.EqualFold(p.Gender, GenderAny) {
		args = append(args, p.Gender)
		conds = append(conds, fmt.Sprintf("gender = $%d", len(args)))
	}
	switch strings.ToLower(p.VitalStatus) {
	case VitalAlive:
		conds = append(conds, "(deceased = FALSE OR deceased IS NULL)")
	case VitalDeceased:
		conds = append(conds, "deceased = TRUE")
	}
	switch {
	case p.AgeMin != nil && p.AgeMax != nil:
		args = append(args, *p.AgeMin, *p.AgeMax)
		conds = append(conds, fmt.Sprintf("age BETWEEN $%d AND $%d", len(args)-1, len(args)))
	case p.AgeMin != nil:
		args = append(args, *p.AgeMin)
		conds = append(conds, fmt.Sprintf("age >= $%d", len(args)))
	case p.AgeMax != nil:
		args = append(args, *p.AgeMax)
		conds = append(conds, fmt.Sprintf("age <= $%d", len(args)))
	}
	if len(conds) > 0 {
		sb.WriteString("\nWHERE " + strings.Join(conds, " AND "))
	}

	// Ordering must be the bare operator on the column, ascending, for the
	// HNSW index to serve the scan. Smallest negative inner product first is
	// highest similarity first.
	if p.Vector != nil {
		fmt.Fprintf(&sb, "\nORDER BY description_vector <#> $%d", vectorArg)
	}

	args = append(args, p.Limit)
	fmt.Fprintf(&sb, "\nLIMIT $%d", len(args))

	return sb.String(), args
}
