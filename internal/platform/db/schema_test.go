package db

import (
	"strings"
	"testing"
)

func testManager(metric string) *SchemaManager {
	return NewSchemaManager(nil, SchemaConfig{
		VectorDim:       768,
		Metric:          metric,
		HNSWM:           16,
		HNSWEfConstruct: 64,
	})
}

func TestStatements_CoverAllTables(t *testing.T) {
	ddl := strings.Join(testManager("cosine").Statements(), "\n")

	for _, table := range append([]string{TableRepository, TablePatient}, ChildTables...) {
		if !strings.Contains(ddl, `CREATE TABLE IF NOT EXISTS "`+table+`"`) {
			t.Errorf("missing table %s", table)
		}
	}
	if !strings.Contains(ddl, "CREATE EXTENSION IF NOT EXISTS vector") {
		t.Error("vector extension must be provisioned first")
	}
	if !strings.Contains(ddl, "vector(768)") {
		t.Error("embedding column must carry the configured dimension")
	}
}

func TestStatements_Idempotent(t *testing.T) {
	for _, stmt := range testManager("cosine").Statements() {
		if !strings.Contains(stmt, "IF NOT EXISTS") {
			t.Errorf("statement is not re-entrant: %s", stmt)
		}
	}
}

func TestStatements_VectorIndex(t *testing.T) {
	tests := []struct {
		metric string
		ops    string
	}{
		{"cosine", "vector_cosine_ops"},
		{"dot", "vector_ip_ops"},
		{"", "vector_cosine_ops"},
	}
	for _, tt := range tests {
		ddl := strings.Join(testManager(tt.metric).Statements(), "\n")
		idx := "CREATE INDEX IF NOT EXISTS description_vector_idx"
		if !strings.Contains(ddl, idx) {
			t.Fatalf("metric %q: vector index missing", tt.metric)
		}
		if !strings.Contains(ddl, tt.ops) {
			t.Errorf("metric %q: want operator class %s", tt.metric, tt.ops)
		}
	}
	ddl := strings.Join(testManager("cosine").Statements(), "\n")
	if !strings.Contains(ddl, "m = 16, ef_construction = 64") {
		t.Error("hnsw build parameters must be applied")
	}
}

func TestStatements_FilterIndices(t *testing.T) {
	ddl := strings.Join(testManager("cosine").Statements(), "\n")
	for _, idx := range []string{"patient_id_idx", "age_idx", "gender_idx"} {
		if !strings.Contains(ddl, idx) {
			t.Errorf("missing index %s", idx)
		}
	}
	if !strings.Contains(ddl, `CREATE UNIQUE INDEX IF NOT EXISTS patient_id_idx`) {
		t.Error("business identifier index must be unique")
	}
}

func TestFirstIdentifier(t *testing.T) {
	if got := firstIdentifier(`CREATE TABLE IF NOT EXISTS "Patient" (x INT)`); got != "Patient" {
		t.Errorf("got %q", got)
	}
	if got := firstIdentifier(`CREATE EXTENSION IF NOT EXISTS vector`); got != "CREATE EXTENSION IF" {
		t.Errorf("got %q", got)
	}
}
