package search

import "context"

// Result is one ranked Patient row. Similarity is 0 when the query carried
// no vector target.
type Result struct {
	SurrogateID int64   `json:"patient_row_id"`
	PatientID   string  `json:"patient_id"`
	FullName    string  `json:"full_name"`
	Gender      string  `json:"gender"`
	BirthDate   string  `json:"birth_date"`
	Age         int     `json:"age"`
	Deceased    bool    `json:"deceased"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	SSN         string  `json:"ssn"`
	MRN         string  `json:"mrn"`
	Description string  `json:"description"`
	Similarity  float64 `json:"similarity"`
}

// Record is one child-table row for a selected patient, keyed by column name.
type Record map[string]interface{}

// Repo reads the normalized tables.
type Repo interface {
	Search(ctx context.Context, p Params) ([]Result, error)
	PatientRecords(ctx context.Context, table string, surrogateID int64) ([]Record, error)
}
