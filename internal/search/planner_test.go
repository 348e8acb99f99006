package search

import (
	"strings"
	"testing"

	"github.com/pgvector/pgvector-go"
)

func iptr(v int) *int { return &v }

func TestBuildHybridQuery_FilterOnly(t *testing.T) {
	sql, args := BuildHybridQuery(Params{Limit: 10})

	if !strings.Contains(sql, "0::float8 AS similarity") {
		t.Errorf("no vector target must score constant 0:\n%s", sql)
	}
	if strings.Contains(sql, "WHERE") {
		t.Errorf("default filters must produce no predicates:\n%s", sql)
	}
	if strings.Contains(sql, "ORDER BY") {
		t.Errorf("no vector target means no ranking order:\n%s", sql)
	}
	if !strings.Contains(sql, "LIMIT $1") {
		t.Errorf("cap must always apply:\n%s", sql)
	}
	if len(args) != 1 || args[0] != 10 {
		t.Errorf("args: %v", args)
	}
}

func TestBuildHybridQuery_WithVector(t *testing.T) {
	vec := pgvector.NewVector([]float32{1, 0, 0})
	sql, args := BuildHybridQuery(Params{Vector: &vec, Limit: 5})

	if !strings.Contains(sql, "(description_vector <#> $1) * -1 AS similarity") {
		t.Errorf("ranking term missing:\n%s", sql)
	}
	if !strings.Contains(sql, "ORDER BY description_vector <#> $1") {
		t.Errorf("ranked query must order by the bare distance operator:\n%s", sql)
	}
	if strings.Contains(sql, "ORDER BY similarity") || strings.Contains(sql, "DESC") {
		t.Errorf("ordering by the derived alias cannot use the ANN index:\n%s", sql)
	}
	if len(args) != 2 {
		t.Fatalf("args: %v", args)
	}
	if args[1] != 5 {
		t.Errorf("limit arg: %v", args[1])
	}
}

func TestBuildHybridQuery_Filters(t *testing.T) {
	sql, args := BuildHybridQuery(Params{
		Limit: 20,
		Filters: Filters{
			Gender:      "female",
			VitalStatus: VitalAlive,
			AgeMin:      iptr(30),
			AgeMax:      iptr(40),
		},
	})

	if !strings.Contains(sql, "gender = $1") {
		t.Errorf("gender filter missing:\n%s", sql)
	}
	if !strings.Contains(sql, "(deceased = FALSE OR deceased IS NULL)") {
		t.Errorf("alive filter must match unset deceased flags:\n%s", sql)
	}
	if !strings.Contains(sql, "age BETWEEN $2 AND $3") {
		t.Errorf("age range must be inclusive BETWEEN:\n%s", sql)
	}
	want := []interface{}{"female", 30, 40, 20}
	if len(args) != len(want) {
		t.Fatalf("args: %v", args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("arg %d: got %v, want %v", i, args[i], want[i])
		}
	}
}

func TestBuildHybridQuery_Sentinels(t *testing.T) {
	sql, _ := BuildHybridQuery(Params{
		Limit:   10,
		Filters: Filters{Gender: GenderAny, VitalStatus: VitalAny},
	})
	if strings.Contains(sql, "WHERE") {
		t.Errorf("sentinel filters must be skipped:\n%s", sql)
	}
}

func TestBuildHybridQuery_Deceased(t *testing.T) {
	sql, _ := BuildHybridQuery(Params{Limit: 10, Filters: Filters{VitalStatus: VitalDeceased}})
	if !strings.Contains(sql, "deceased = TRUE") {
		t.Errorf("deceased filter missing:\n%s", sql)
	}
}

func TestBuildHybridQuery_OpenAgeBounds(t *testing.T) {
	sql, args := BuildHybridQuery(Params{Limit: 10, Filters: Filters{AgeMin: iptr(65)}})
	if !strings.Contains(sql, "age >= $1") {
		t.Errorf("open upper bound:\n%s", sql)
	}
	if args[0] != 65 {
		t.Errorf("args: %v", args)
	}

	sql, _ = BuildHybridQuery(Params{Limit: 10, Filters: Filters{AgeMax: iptr(17)}})
	if !strings.Contains(sql, "age <= $1") {
		t.Errorf("open lower bound:\n%s", sql)
	}
}

func TestBuildHybridQuery_VectorAndFilters(t *testing.T) {
	vec := pgvector.NewVector([]float32{0, 1})
	sql, args := BuildHybridQuery(Params{
		Vector:  &vec,
		Limit:   3,
		Filters: Filters{Gender: "male", AgeMin: iptr(30), AgeMax: iptr(40)},
	})
	// vector is $1, filters follow, limit is last
	if !strings.Contains(sql, "gender = $2") || !strings.Contains(sql, "age BETWEEN $3 AND $4") {
		t.Errorf("placeholder numbering:\n%s", sql)
	}
	if !strings.Contains(sql, "LIMIT $5") {
		t.Errorf("limit placeholder:\n%s", sql)
	}
	if len(args) != 5 {
		t.Errorf("args: %v", args)
	}
}
