package summary

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/clinsearch/clinsearch/internal/bundle"
	"github.com/clinsearch/clinsearch/internal/platform/errs"
)

func refDate(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func onePatient(birthDate string) *bundle.Categorized {
	return &bundle.Categorized{
		Patients: []bundle.PatientRecord{{ID: "p1", UUID: "uuid-1", BirthDate: birthDate}},
	}
}

func TestBuild_AgeBirthdayPassed(t *testing.T) {
	s, err := Build(onePatient("1950-06-15"), refDate(t, "2024-07-01"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Age != 74 {
		t.Errorf("age: got %d, want 74", s.Age)
	}
}

func TestBuild_AgeBirthdayPending(t *testing.T) {
	s, err := Build(onePatient("1950-06-15"), refDate(t, "2024-05-01"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Age != 73 {
		t.Errorf("age: got %d, want 73", s.Age)
	}
}

func TestBuild_RequiresExactlyOnePatient(t *testing.T) {
	cases := []*bundle.Categorized{
		{},
		{Patients: []bundle.PatientRecord{{ID: "a"}, {ID: "b"}}},
	}
	for _, cat := range cases {
		_, err := Build(cat, time.Now())
		var ve *errs.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%d patients: expected ValidationError, got %v", len(cat.Patients), err)
		}
	}
}

func TestBuild_RequiresParsableBirthDate(t *testing.T) {
	for _, bd := range []string{"", "not-a-date", "1990"} {
		_, err := Build(onePatient(bd), time.Now())
		var ve *errs.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("birthDate %q: expected ValidationError, got %v", bd, err)
		}
	}
}

func TestBuild_Description(t *testing.T) {
	cat := onePatient("1950-06-15")
	cat.Patients[0].AddressFull = "12 Oak St, Quincy, MA, 02169, US"
	cat.Conditions = []bundle.ConditionRecord{
		{Code: "Diabetes"},
		{Code: "Hypertension"},
	}
	cat.AllergyIntolerances = []bundle.AllergyIntoleranceRecord{
		{Code: "Penicillin allergy", Criticality: "high"},
	}

	s, err := Build(cat, refDate(t, "2024-07-01"))
	if err != nil {
		t.Fatal(err)
	}
	want := "Patient has: Diabetes, Hypertension. " +
		"Allergic to: Penicillin (severity: high). " +
		"Age: 74. " +
		"Address: 12 Oak St, Quincy, MA, 02169, US"
	if s.Description != want {
		t.Errorf("description:\n got %q\nwant %q", s.Description, want)
	}
}

func TestAllergyName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Allergy to peanuts", "peanuts"},
		{"Shellfish allergy", "Shellfish"},
		{"Penicillin allergy", "Penicillin"},
		{"Latex", "Latex"},
	}
	for _, tt := range tests {
		if got := allergyName(tt.in); got != tt.want {
			t.Errorf("allergyName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuild_DescriptionOmitsAbsentFragments(t *testing.T) {
	s, err := Build(onePatient("1950-06-15"), refDate(t, "2024-07-01"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Description != "Age: 74" {
		t.Errorf("description: %q", s.Description)
	}
	if strings.Contains(s.Description, "Patient has") || strings.Contains(s.Description, "Allergic") {
		t.Errorf("empty sources must not produce fragments: %q", s.Description)
	}
}

func TestBuild_DeceasedFlag(t *testing.T) {
	cat := onePatient("1950-06-15")
	cat.Patients[0].DeceasedDateTime = "2023-11-02T00:00:00Z"
	s, err := Build(cat, refDate(t, "2024-07-01"))
	if err != nil {
		t.Fatal(err)
	}
	if !s.Deceased {
		t.Error("deceased flag must follow the deceased datetime")
	}
}

func TestBuild_ProjectsElements(t *testing.T) {
	v := 72.5
	cat := onePatient("1950-06-15")
	cat.Observations = []bundle.ObservationRecord{
		{Code: "Body Weight", EffectiveDateTime: "2024-01-10", ValueQuantity: &v, ValueUnit: "kg"},
	}
	cat.Conditions = []bundle.ConditionRecord{
		{Code: "Diabetes", OnsetPeriodStart: "2011-06-01", ClinicalStatus: "active"},
	}
	cat.Procedures = []bundle.ProcedureRecord{
		{Code: "Appendectomy", PerformedPeriodStart: "2018-03-01"},
	}
	cat.CarePlans = []bundle.CarePlanRecord{
		{Category: "Diabetes self management plan", PeriodStart: "2015-01-01", Status: "active", Activities: "Diabetic diet; in-progress"},
	}
	// skip-listed types must never surface as elements
	cat.Encounters = []bundle.EncounterRecord{{ID: "e1"}}
	cat.DiagnosticReports = []bundle.DiagnosticReportRecord{{ID: "d1"}}

	s, err := Build(cat, refDate(t, "2024-07-01"))
	if err != nil {
		t.Fatal(err)
	}

	if len(s.Elements.Observations) != 1 {
		t.Fatalf("observations: %d", len(s.Elements.Observations))
	}
	obs := s.Elements.Observations[0]
	if obs.Value != "72.5" || obs.Unit != "kg" || obs.Date != "2024-01-10" {
		t.Errorf("observation element: %+v", obs)
	}

	if len(s.Elements.Conditions) != 1 || s.Elements.Conditions[0].Onset != "2011-06-01" {
		t.Errorf("condition element: %+v", s.Elements.Conditions)
	}
	if len(s.Elements.Procedures) != 1 || s.Elements.Procedures[0].Date != "2018-03-01" {
		t.Errorf("procedure element: %+v", s.Elements.Procedures)
	}
	if len(s.Elements.CarePlans) != 1 || s.Elements.CarePlans[0].Start != "2015-01-01" {
		t.Errorf("care plan element: %+v", s.Elements.CarePlans)
	}
}

func TestTableFor(t *testing.T) {
	tests := []struct {
		resourceType string
		table        string
		ok           bool
	}{
		{bundle.TypeProcedure, "Procedures", true},
		{bundle.TypeCondition, "Condition", true},
		{bundle.TypeCarePlan, "CarePlan", true},
		{bundle.TypeEncounter, "", false},
		{bundle.TypeMedicationRequest, "", false},
	}
	for _, tt := range tests {
		table, ok := TableFor(tt.resourceType)
		if table != tt.table || ok != tt.ok {
			t.Errorf("%s: got (%q, %t)", tt.resourceType, table, ok)
		}
	}
	if !Skipped(bundle.TypeEncounter) || !Skipped(bundle.TypeDiagnosticReport) {
		t.Error("encounters and diagnostic reports belong on the skip list")
	}
	if Skipped(bundle.TypeObservation) {
		t.Error("observations are stored, not skipped")
	}
}
