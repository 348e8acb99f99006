// Package bundle turns raw FHIR bundle documents into flat, typed records
// grouped by resource type. Unsupported resource types are skipped; malformed
// entries are reported per entry without aborting the document.
package bundle

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/clinsearch/clinsearch/internal/platform/errs"
)

// ResourceType names understood by the processor.
const (
	TypePatient            = "Patient"
	TypeObservation        = "Observation"
	TypeCondition          = "Condition"
	TypeEncounter          = "Encounter"
	TypeProcedure          = "Procedure"
	TypeMedicationRequest  = "MedicationRequest"
	TypeDiagnosticReport   = "DiagnosticReport"
	TypePractitioner       = "Practitioner"
	TypeOrganization       = "Organization"
	TypeLocation           = "Location"
	TypeMedication         = "Medication"
	TypeAllergyIntolerance = "AllergyIntolerance"
	TypeImmunization       = "Immunization"
	TypeCarePlan           = "CarePlan"
)

type envelope struct {
	ResourceType string            `json:"resourceType"`
	Type         string            `json:"type"`
	Entry        []json.RawMessage `json:"entry"`
}

type entry struct {
	Resource json.RawMessage `json:"resource"`
}

type resourceProbe struct {
	ResourceType string `json:"resourceType"`
	ID           string `json:"id"`
}

// Categorized holds the flattened records of one bundle, grouped by resource
// type. Slices are nil for types the bundle did not contain.
type Categorized struct {
	Patients            []PatientRecord
	Observations        []ObservationRecord
	Conditions          []ConditionRecord
	Encounters          []EncounterRecord
	Procedures          []ProcedureRecord
	MedicationRequests  []MedicationRequestRecord
	DiagnosticReports   []DiagnosticReportRecord
	Practitioners       []PractitionerRecord
	Organizations       []OrganizationRecord
	Locations           []LocationRecord
	Medications         []MedicationRecord
	AllergyIntolerances []AllergyIntoleranceRecord
	Immunizations       []ImmunizationRecord
	CarePlans           []CarePlanRecord
}

// Total counts the records across all groups.
func (c *Categorized) Total() int {
	return len(c.Patients) + len(c.Observations) + len(c.Conditions) +
		len(c.Encounters) + len(c.Procedures) + len(c.MedicationRequests) +
		len(c.DiagnosticReports) + len(c.Practitioners) + len(c.Organizations) +
		len(c.Locations) + len(c.Medications) + len(c.AllergyIntolerances) +
		len(c.Immunizations) + len(c.CarePlans)
}

// Report summarizes one Process run.
type Report struct {
	SourceFile string
	Entries    int
	Mapped     int
	Skipped    int
	Errors     []error
}

// Process decodes a raw bundle document. The root must be a Bundle resource;
// anything else fails the whole document. Within the bundle, entries of
// unknown resource types count as skipped, and entries that fail to decode
// are collected into the report's error list while the rest of the document
// is still mapped.
func Process(raw []byte, sourceFile string) (*Categorized, *Report, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, nil, &errs.DecodeError{
			ResourceType: "Bundle",
			Reason:       fmt.Sprintf("%s: not valid JSON", sourceFile),
			Err:          err,
		}
	}
	if env.ResourceType != "Bundle" {
		return nil, nil, &errs.DecodeError{
			ResourceType: "Bundle",
			Reason:       fmt.Sprintf("%s: root resource is %q, want Bundle", sourceFile, env.ResourceType),
		}
	}

	prov := Provenance{SourceFile: sourceFile, ProcessedAt: time.Now().UTC()}
	out := &Categorized{}
	report := &Report{SourceFile: sourceFile, Entries: len(env.Entry)}

	for i, rawEntry := range env.Entry {
		var ent entry
		if err := json.Unmarshal(rawEntry, &ent); err != nil || len(ent.Resource) == 0 {
			report.Errors = append(report.Errors, &errs.DecodeError{
				Reason: fmt.Sprintf("entry %d: missing resource", i),
				Err:    err,
			})
			continue
		}

		var probe resourceProbe
		if err := json.Unmarshal(ent.Resource, &probe); err != nil {
			report.Errors = append(report.Errors, &errs.DecodeError{
				Reason: fmt.Sprintf("entry %d: unreadable resource", i),
				Err:    err,
			})
			continue
		}

		mapped, err := mapEntry(out, probe.ResourceType, ent.Resource, prov)
		switch {
		case err != nil:
			report.Errors = append(report.Errors, &errs.DecodeError{
				ResourceType: probe.ResourceType,
				Reason:       fmt.Sprintf("entry %d (id %s)", i, probe.ID),
				Err:          err,
			})
		case mapped:
			report.Mapped++
		default:
			report.Skipped++
		}
	}
	return out, report, nil
}

// mapEntry dispatches one resource payload to its mapper. It reports whether
// the resource type was recognized.
func mapEntry(out *Categorized, resourceType string, raw json.RawMessage, prov Provenance) (bool, error) {
	switch resourceType {
	case TypePatient:
		var res patientResource
		if err := json.Unmarshal(raw, &res); err != nil {
			return true, err
		}
		out.Patients = append(out.Patients, mapPatient(res, prov))
	case TypeObservation:
		var res observationResource
		if err := json.Unmarshal(raw, &res); err != nil {
			return true, err
		}
		out.Observations = append(out.Observations, mapObservation(res, prov))
	case TypeCondition:
		var res conditionResource
		if err := json.Unmarshal(raw, &res); err != nil {
			return true, err
		}
		out.Conditions = append(out.Conditions, mapCondition(res, prov))
	case TypeEncounter:
		var res encounterResource
		if err := json.Unmarshal(raw, &res); err != nil {
			return true, err
		}
		out.Encounters = append(out.Encounters, mapEncounter(res, prov))
	case TypeProcedure:
		var res procedureResource
		if err := json.Unmarshal(raw, &res); err != nil {
			return true, err
		}
		out.Procedures = append(out.Procedures, mapProcedure(res, prov))
	case TypeMedicationRequest:
		var res medicationRequestResource
		if err := json.Unmarshal(raw, &res); err != nil {
			return true, err
		}
		out.MedicationRequests = append(out.MedicationRequests, mapMedicationRequest(res, prov))
	case TypeDiagnosticReport:
		var res diagnosticReportResource
		if err := json.Unmarshal(raw, &res); err != nil {
			return true, err
		}
		out.DiagnosticReports = append(out.DiagnosticReports, mapDiagnosticReport(res, prov))
	case TypePractitioner:
		var res practitionerResource
		if err := json.Unmarshal(raw, &res); err != nil {
			return true, err
		}
		out.Practitioners = append(out.Practitioners, mapPractitioner(res, prov))
	case TypeOrganization:
		var res organizationResource
		if err := json.Unmarshal(raw, &res); err != nil {
			return true, err
		}
		out.Organizations = append(out.Organizations, mapOrganization(res, prov))
	case TypeLocation:
		var res locationResource
		if err := json.Unmarshal(raw, &res); err != nil {
			return true, err
		}
		out.Locations = append(out.Locations, mapLocation(res, prov))
	case TypeMedication:
		var res medicationResource
		if err := json.Unmarshal(raw, &res); err != nil {
			return true, err
		}
		out.Medications = append(out.Medications, mapMedication(res, prov))
	case TypeAllergyIntolerance:
		var res allergyIntoleranceResource
		if err := json.Unmarshal(raw, &res); err != nil {
			return true, err
		}
		out.AllergyIntolerances = append(out.AllergyIntolerances, mapAllergyIntolerance(res, prov))
	case TypeImmunization:
		var res immunizationResource
		if err := json.Unmarshal(raw, &res); err != nil {
			return true, err
		}
		out.Immunizations = append(out.Immunizations, mapImmunization(res, prov))
	case TypeCarePlan:
		var res carePlanResource
		if err := json.Unmarshal(raw, &res); err != nil {
			return true, err
		}
		out.CarePlans = append(out.CarePlans, mapCarePlan(res, prov))
	default:
		return false, nil
	}
	return true, nil
}
