package bundle

import (
	"errors"
	"testing"

	"github.com/clinsearch/clinsearch/internal/platform/errs"
)

const sampleBundle = `{
  "resourceType": "Bundle",
  "type": "transaction",
  "entry": [
    {"resource": {
      "resourceType": "Patient",
      "id": "p1",
      "gender": "female",
      "birthDate": "1959-03-12",
      "name": [{"use": "official", "family": "Waters", "given": ["Norma"]}],
      "telecom": [{"system": "phone", "value": "555-0100"}],
      "address": [{"use": "home", "line": ["12 Oak St"], "city": "Quincy", "state": "MA", "postalCode": "02169", "country": "US"}],
      "maritalStatus": {"text": "Married"},
      "identifier": [
        {"system": "https://github.com/synthetichealth/synthea", "value": "b9c6a2f0-1111-2222-3333-444455556666"},
        {"type": {"coding": [{"code": "MR"}]}, "value": "MRN-778"},
        {"system": "http://hl7.org/fhir/sid/us-ssn", "value": "999-10-9999"}
      ]
    }},
    {"resource": {
      "resourceType": "Condition",
      "id": "c1",
      "clinicalStatus": {"coding": [{"code": "active"}]},
      "code": {"coding": [{"system": "http://snomed.info/sct", "code": "44054006", "display": "Diabetes"}]},
      "subject": {"reference": "Patient/p1"},
      "onsetDateTime": "2011-06-01T00:00:00Z"
    }},
    {"resource": {
      "resourceType": "Observation",
      "id": "o1",
      "status": "final",
      "code": {"text": "Body Weight"},
      "valueQuantity": {"value": 72.5, "unit": "kg"}
    }},
    {"resource": {"resourceType": "Goal", "id": "g1"}},
    {"resource": {
      "resourceType": "Immunization",
      "id": "i1",
      "status": "completed",
      "vaccineCode": {"coding": [{"system": "http://hl7.org/fhir/sid/cvx", "code": "140", "display": "Influenza, seasonal"}]},
      "occurrenceDateTime": "2019-10-02T10:00:00Z"
    }}
  ]
}`

func TestProcess_CategorizesSupportedTypes(t *testing.T) {
	cat, report, err := Process([]byte(sampleBundle), "norma_waters.json")
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if len(cat.Patients) != 1 || len(cat.Conditions) != 1 || len(cat.Observations) != 1 || len(cat.Immunizations) != 1 {
		t.Fatalf("unexpected grouping: %d patients, %d conditions, %d observations, %d immunizations",
			len(cat.Patients), len(cat.Conditions), len(cat.Observations), len(cat.Immunizations))
	}
	if cat.Total() != 4 {
		t.Errorf("total: got %d, want 4", cat.Total())
	}

	if report.Entries != 5 || report.Mapped != 4 || report.Skipped != 1 {
		t.Errorf("report: %+v", report)
	}
	if len(report.Errors) != 0 {
		t.Errorf("unexpected entry errors: %v", report.Errors)
	}

	p := cat.Patients[0]
	if p.FullName != "Norma Waters" {
		t.Errorf("full name: %q", p.FullName)
	}
	if p.UUID != "b9c6a2f0-1111-2222-3333-444455556666" {
		t.Errorf("business uuid: %q", p.UUID)
	}
	if p.MRN != "MRN-778" || p.SSN != "999-10-9999" {
		t.Errorf("identifiers: mrn=%q ssn=%q", p.MRN, p.SSN)
	}
	if p.SourceFile != "norma_waters.json" {
		t.Errorf("provenance: %q", p.SourceFile)
	}
	if p.ProcessedAt.IsZero() {
		t.Error("processed-at must be stamped")
	}

	c := cat.Conditions[0]
	if c.Code != "Diabetes" || c.CodeCode != "44054006" {
		t.Errorf("condition code: %q / %q", c.Code, c.CodeCode)
	}
	if c.OnsetDateTime != "2011-06-01T00:00:00Z" {
		t.Errorf("onset: %q", c.OnsetDateTime)
	}

	o := cat.Observations[0]
	if o.ValueQuantity == nil || *o.ValueQuantity != 72.5 || o.ValueUnit != "kg" {
		t.Errorf("observation value: %v %q", o.ValueQuantity, o.ValueUnit)
	}
}

func TestProcess_RejectsNonBundleRoot(t *testing.T) {
	_, _, err := Process([]byte(`{"resourceType": "Patient", "id": "p1"}`), "loose.json")
	if err == nil {
		t.Fatal("expected an error for a non-Bundle root")
	}
	var de *errs.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %T", err)
	}
}

func TestProcess_RejectsInvalidJSON(t *testing.T) {
	_, _, err := Process([]byte(`{"resourceType": `), "broken.json")
	var de *errs.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestProcess_CollectsEntryErrors(t *testing.T) {
	raw := `{
	  "resourceType": "Bundle",
	  "entry": [
	    {"resource": {"resourceType": "Patient", "id": "ok"}},
	    {"resource": {"resourceType": "Observation", "id": "bad", "valueQuantity": {"value": "not-a-number"}}},
	    {"nothing": true}
	  ]
	}`
	cat, report, err := Process([]byte(raw), "mixed.json")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(cat.Patients) != 1 {
		t.Errorf("healthy entries must survive, got %d patients", len(cat.Patients))
	}
	if len(report.Errors) != 2 {
		t.Fatalf("expected 2 entry errors, got %d: %v", len(report.Errors), report.Errors)
	}
	if report.Mapped != 1 {
		t.Errorf("mapped: got %d", report.Mapped)
	}
	var de *errs.DecodeError
	if !errors.As(report.Errors[0], &de) {
		t.Errorf("entry errors must be DecodeError, got %T", report.Errors[0])
	}
}

func TestProcess_EmptyBundle(t *testing.T) {
	cat, report, err := Process([]byte(`{"resourceType": "Bundle"}`), "empty.json")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if cat.Total() != 0 || report.Entries != 0 {
		t.Errorf("empty bundle: total=%d entries=%d", cat.Total(), report.Entries)
	}
}
