// Package summary derives the per-patient artifacts stored by the extraction
// pipeline: the computed age, the natural-language description that feeds the
// embedding model, and the storage-ready element projections of each clinical
// resource list.
package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/clinsearch/clinsearch/internal/bundle"
	"github.com/clinsearch/clinsearch/internal/fhir"
	"github.com/clinsearch/clinsearch/internal/platform/errs"
)

// tableByType is the static resource-type to child-table mapping. Types
// absent from both this map and the skip set are ignored.
var tableByType = map[string]string{
	bundle.TypeAllergyIntolerance: "AllergyIntolerance",
	bundle.TypeImmunization:       "Immunization",
	bundle.TypeObservation:        "Observation",
	bundle.TypeCondition:          "Condition",
	bundle.TypeProcedure:          "Procedures",
	bundle.TypeCarePlan:           "CarePlan",
}

// skipTypes never produce child rows. Encounters are administrative and
// diagnostic reports are free text; neither carries filterable clinical
// attributes.
var skipTypes = map[string]struct{}{
	bundle.TypeEncounter:        {},
	bundle.TypeDiagnosticReport: {},
}

// TableFor resolves a resource type to its child table name.
func TableFor(resourceType string) (string, bool) {
	t, ok := tableByType[resourceType]
	return t, ok
}

// Skipped reports whether a resource type is on the skip list.
func Skipped(resourceType string) bool {
	_, ok := skipTypes[resourceType]
	return ok
}

// AllergyElement is one AllergyIntolerance child row.
type AllergyElement struct {
	Type               string
	Category           string
	Criticality        string
	Code               string
	AssertedDate       string
	ClinicalStatus     string
	VerificationStatus string
}

// ImmunizationElement is one Immunization child row.
type ImmunizationElement struct {
	VaccineCode string
	Date        string
	Status      string
}

// ObservationElement is one Observation child row. Value is rendered to text
// regardless of the source value form.
type ObservationElement struct {
	Code  string
	Date  string
	Value string
	Unit  string
}

// ConditionElement is one Condition child row.
type ConditionElement struct {
	Code               string
	Onset              string
	AssertedDate       string
	ClinicalStatus     string
	VerificationStatus string
}

// ProcedureElement is one Procedures child row.
type ProcedureElement struct {
	Code string
	Date string
}

// CarePlanElement is one CarePlan child row.
type CarePlanElement struct {
	Category   string
	Start      string
	End        string
	Status     string
	Activities string
}

// Elements groups the projected child rows of one patient by target table.
type Elements struct {
	Allergies     []AllergyElement
	Immunizations []ImmunizationElement
	Observations  []ObservationElement
	Conditions    []ConditionElement
	Procedures    []ProcedureElement
	CarePlans     []CarePlanElement
}

// Summary is the storage-ready view of one processed bundle.
type Summary struct {
	Patient     bundle.PatientRecord
	Age         int
	Deceased    bool
	Description string
	Elements    Elements
}

// Build derives the summary for one categorized bundle. The bundle must hold
// exactly one Patient resource with a parsable birth date; now supplies the
// reference date for the age computation.
func Build(cat *bundle.Categorized, now time.Time) (*Summary, error) {
	if len(cat.Patients) != 1 {
		return nil, &errs.ValidationError{
			Field:  "Patient",
			Reason: fmt.Sprintf("bundle holds %d Patient resources, want exactly 1", len(cat.Patients)),
		}
	}
	patient := cat.Patients[0]

	age, err := ageAt(patient.BirthDate, now)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		Patient:  patient,
		Age:      age,
		Deceased: patient.DeceasedDateTime != "",
		Elements: projectElements(cat),
	}
	s.Description = describe(patient, cat, age)
	return s, nil
}

// ageAt computes whole years between the birth date and the reference date,
// subtracting one when the birthday has not yet occurred this year.
func ageAt(birthDate string, now time.Time) (int, error) {
	if birthDate == "" {
		return 0, &errs.ValidationError{Field: "birthDate", Reason: "missing"}
	}
	born, err := time.Parse("2006-01-02", birthDate)
	if err != nil {
		return 0, &errs.ValidationError{Field: "birthDate", Reason: fmt.Sprintf("unparsable value %q", birthDate)}
	}
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	return age, nil
}

// describe builds the deterministic description string embedded for
// similarity search. Fragment order is fixed; absent fragments are omitted.
func describe(patient bundle.PatientRecord, cat *bundle.Categorized, age int) string {
	var fragments []string

	if len(cat.Conditions) > 0 {
		var codes []string
		for _, c := range cat.Conditions {
			if c.Code != "" {
				codes = append(codes, c.Code)
			}
		}
		if len(codes) > 0 {
			fragments = append(fragments, "Patient has: "+strings.Join(codes, ", "))
		}
	}

	if len(cat.AllergyIntolerances) > 0 {
		var allergies []string
		for _, a := range cat.AllergyIntolerances {
			if a.Code == "" {
				continue
			}
			item := allergyName(a.Code)
			if item == "" {
				continue
			}
			if a.Criticality != "" {
				item += " (severity: " + a.Criticality + ")"
			}
			allergies = append(allergies, item)
		}
		if len(allergies) > 0 {
			fragments = append(fragments, "Allergic to: "+strings.Join(allergies, ", "))
		}
	}

	fragments = append(fragments, fmt.Sprintf("Age: %d", age))

	if patient.AddressFull != "" {
		fragments = append(fragments, "Address: "+patient.AddressFull)
	}

	return strings.Join(fragments, ". ")
}

// allergyName reduces a coded allergy display like "Allergy to peanuts" or
// "Shellfish allergy" to the allergen itself.
func allergyName(code string) string {
	name := strings.ReplaceAll(code, "Allergy to ", " ")
	name = strings.ReplaceAll(name, "allergy", " ")
	return strings.TrimSpace(name)
}

func projectElements(cat *bundle.Categorized) Elements {
	var el Elements

	for _, a := range cat.AllergyIntolerances {
		el.Allergies = append(el.Allergies, AllergyElement{
			Type:               a.Type,
			Category:           a.Category,
			Criticality:        a.Criticality,
			Code:               a.Code,
			AssertedDate:       firstOf(a.AssertedDate, a.RecordedDate),
			ClinicalStatus:     a.ClinicalStatus,
			VerificationStatus: a.VerificationStatus,
		})
	}

	for _, i := range cat.Immunizations {
		el.Immunizations = append(el.Immunizations, ImmunizationElement{
			VaccineCode: i.VaccineCode,
			Date:        firstOf(i.OccurrenceDateTime, i.Date, i.OccurrenceString),
			Status:      i.Status,
		})
	}

	for _, o := range cat.Observations {
		el.Observations = append(el.Observations, ObservationElement{
			Code:  o.Code,
			Date:  firstOf(o.EffectiveDateTime, o.EffectivePeriodStart, o.Issued),
			Value: observationValue(o),
			Unit:  o.ValueUnit,
		})
	}

	for _, c := range cat.Conditions {
		el.Conditions = append(el.Conditions, ConditionElement{
			Code:               c.Code,
			Onset:              firstOf(c.OnsetDateTime, c.OnsetPeriodStart, c.OnsetAge, c.OnsetString),
			AssertedDate:       firstOf(c.AssertedDate, c.RecordedDate),
			ClinicalStatus:     c.ClinicalStatus,
			VerificationStatus: c.VerificationStatus,
		})
	}

	for _, p := range cat.Procedures {
		el.Procedures = append(el.Procedures, ProcedureElement{
			Code: p.Code,
			Date: firstOf(p.PerformedDateTime, p.PerformedPeriodStart, p.PerformedAge, p.PerformedString),
		})
	}

	for _, cp := range cat.CarePlans {
		el.CarePlans = append(el.CarePlans, CarePlanElement{
			Category:   cp.Category,
			Start:      cp.PeriodStart,
			End:        cp.PeriodEnd,
			Status:     cp.Status,
			Activities: cp.Activities,
		})
	}

	return el
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// observationValue renders whichever value form the observation carried.
func observationValue(o bundle.ObservationRecord) string {
	switch {
	case o.ValueQuantity != nil:
		return fhir.FormatFloat(*o.ValueQuantity)
	case o.ValueConcept != "":
		return o.ValueConcept
	case o.ValueString != "":
		return o.ValueString
	case o.ValueBoolean != nil:
		return fmt.Sprintf("%t", *o.ValueBoolean)
	case o.ValueInteger != nil:
		return fmt.Sprintf("%d", *o.ValueInteger)
	}
	return ""
}
