package bundle

import (
	"testing"

	"github.com/clinsearch/clinsearch/internal/fhir"
)

func fptr(v float64) *float64 { return &v }
func bptr(v bool) *bool       { return &v }

func TestMapObservation_ValuePriority(t *testing.T) {
	// quantity beats concept, concept beats string, and so on down the chain
	res := observationResource{
		ID:                   "o1",
		ValueQuantity:        &fhir.Quantity{Value: fptr(120), Unit: "mm[Hg]"},
		ValueCodeableConcept: &fhir.CodeableConcept{Text: "High"},
		ValueString:          "raw",
		ValueBoolean:         bptr(true),
	}
	rec := mapObservation(res, Provenance{})
	if rec.ValueQuantity == nil || *rec.ValueQuantity != 120 {
		t.Errorf("quantity: %v", rec.ValueQuantity)
	}
	if rec.ValueConcept != "" || rec.ValueString != "" || rec.ValueBoolean != nil {
		t.Error("lower-priority value forms must stay empty")
	}

	res.ValueQuantity = nil
	rec = mapObservation(res, Provenance{})
	if rec.ValueConcept != "High" || rec.ValueString != "" {
		t.Errorf("concept should win next: %+v", rec)
	}

	res.ValueCodeableConcept = nil
	rec = mapObservation(res, Provenance{})
	if rec.ValueString != "raw" || rec.ValueBoolean != nil {
		t.Errorf("string should win next: %+v", rec)
	}
}

func TestMapObservation_Components(t *testing.T) {
	res := observationResource{
		Component: []observationComponent{
			{Code: &fhir.CodeableConcept{Text: "Systolic"}, ValueQuantity: &fhir.Quantity{Value: fptr(120), Unit: "mm[Hg]"}},
			{Code: &fhir.CodeableConcept{Text: "Diastolic"}, ValueQuantity: &fhir.Quantity{Value: fptr(80), Unit: "mm[Hg]"}},
		},
	}
	rec := mapObservation(res, Provenance{})
	want := "Systolic; 120 mm[Hg] | Diastolic; 80 mm[Hg]"
	if rec.Components != want {
		t.Errorf("components: got %q, want %q", rec.Components, want)
	}
}

func TestMapCondition_OnsetPriority(t *testing.T) {
	tests := []struct {
		name  string
		res   conditionResource
		check func(t *testing.T, rec ConditionRecord)
	}{
		{
			"datetime wins over period",
			conditionResource{OnsetDateTime: "2020-01-01", OnsetPeriod: &fhir.Period{Start: "2019"}},
			func(t *testing.T, rec ConditionRecord) {
				if rec.OnsetDateTime != "2020-01-01" || rec.OnsetPeriodStart != "" {
					t.Errorf("%+v", rec)
				}
			},
		},
		{
			"period wins over age",
			conditionResource{OnsetPeriod: &fhir.Period{Start: "2019-05", End: "2019-06"}, OnsetAge: &fhir.Quantity{Value: fptr(40), Unit: "a"}},
			func(t *testing.T, rec ConditionRecord) {
				if rec.OnsetPeriodStart != "2019-05" || rec.OnsetAge != "" {
					t.Errorf("%+v", rec)
				}
			},
		},
		{
			"age wins over string",
			conditionResource{OnsetAge: &fhir.Quantity{Value: fptr(40), Unit: "a"}, OnsetString: "in childhood"},
			func(t *testing.T, rec ConditionRecord) {
				if rec.OnsetAge != "40 a" || rec.OnsetString != "" {
					t.Errorf("%+v", rec)
				}
			},
		},
		{
			"string as last resort",
			conditionResource{OnsetString: "in childhood"},
			func(t *testing.T, rec ConditionRecord) {
				if rec.OnsetString != "in childhood" {
					t.Errorf("%+v", rec)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, mapCondition(tt.res, Provenance{}))
		})
	}
}

func TestMapProcedure_PerformedPeriod(t *testing.T) {
	res := procedureResource{
		Code:            &fhir.CodeableConcept{Text: "Appendectomy"},
		PerformedPeriod: &fhir.Period{Start: "2018-03-01T08:00:00Z", End: "2018-03-01T09:30:00Z"},
	}
	rec := mapProcedure(res, Provenance{})
	if rec.PerformedPeriodStart != "2018-03-01T08:00:00Z" || rec.PerformedDateTime != "" {
		t.Errorf("%+v", rec)
	}
}

func TestMapEncounter(t *testing.T) {
	res := encounterResource{
		ID:     "e1",
		Status: "finished",
		Class:  &fhir.Coding{Code: "AMB", Display: "ambulatory"},
		StatusHistory: []encounterStatusEntry{
			{Status: "arrived"}, {Status: "in-progress"}, {Status: "finished"},
		},
		Participant: []encounterParticipant{
			{Type: []fhir.CodeableConcept{{Text: "primary performer"}}, Individual: &fhir.Reference{Display: "Dr. Gomez"}},
		},
		Diagnosis: []encounterDiagnosis{{Condition: &fhir.Reference{Reference: "Condition/c1"}}},
	}
	rec := mapEncounter(res, Provenance{})
	if rec.ClassCode != "AMB" || rec.LastStatusHistory != "finished" {
		t.Errorf("%+v", rec)
	}
	if rec.Participants != "primary performer; Dr. Gomez" {
		t.Errorf("participants: %q", rec.Participants)
	}
	if rec.Diagnosis != "Condition/c1" {
		t.Errorf("diagnosis: %q", rec.Diagnosis)
	}
}

func TestMapMedicationRequest_Dosage(t *testing.T) {
	res := medicationRequestResource{
		Status: "active",
		MedicationCodeableConcept: &fhir.CodeableConcept{
			Text:   "Lisinopril 10 MG Oral Tablet",
			Coding: []fhir.Coding{{System: "http://www.nlm.nih.gov/research/umls/rxnorm", Code: "314076"}},
		},
		DosageInstruction: []fhir.Dosage{{
			Text:  "Take once daily",
			Route: &fhir.CodeableConcept{Text: "oral"},
			DoseAndRate: []fhir.DoseAndRate{{
				DoseQuantity: &fhir.Quantity{Value: fptr(1), Unit: "tablet"},
			}},
		}},
		DispenseRequest: &dispenseRequest{
			Quantity:               &fhir.Quantity{Value: fptr(30)},
			ExpectedSupplyDuration: &fhir.Quantity{Value: fptr(30), Unit: "d"},
		},
	}
	rec := mapMedicationRequest(res, Provenance{})
	if rec.MedicationConcept != "Lisinopril 10 MG Oral Tablet" || rec.MedicationCode != "314076" {
		t.Errorf("medication: %q / %q", rec.MedicationConcept, rec.MedicationCode)
	}
	if rec.DosageText != "Take once daily" || rec.DosageRoute != "oral" || rec.DosageDoseQuantity != "1 tablet" {
		t.Errorf("dosage: %+v", rec)
	}
	if rec.DispenseQuantity == nil || *rec.DispenseQuantity != 30 {
		t.Errorf("dispense: %v", rec.DispenseQuantity)
	}
}

func TestMapAllergyIntolerance_Reactions(t *testing.T) {
	res := allergyIntoleranceResource{
		Code:        &fhir.CodeableConcept{Text: "Penicillin allergy"},
		Category:    []string{"medication"},
		Criticality: "high",
		Reaction: []allergyReaction{{
			Manifestation: []fhir.CodeableConcept{{Text: "Hives"}, {Text: "Wheezing"}},
			Severity:      "severe",
		}},
	}
	rec := mapAllergyIntolerance(res, Provenance{})
	if rec.Code != "Penicillin allergy" || rec.Category != "medication" {
		t.Errorf("%+v", rec)
	}
	if rec.Reactions != "Hives | Wheezing; severe" {
		t.Errorf("reactions: %q", rec.Reactions)
	}
}

func TestMapImmunization(t *testing.T) {
	res := immunizationResource{
		Status:             "completed",
		VaccineCode:        &fhir.CodeableConcept{Coding: []fhir.Coding{{System: "http://hl7.org/fhir/sid/cvx", Code: "08", Display: "Hep B, adolescent or pediatric"}}},
		OccurrenceDateTime: "2020-02-02",
		DoseQuantity:       &fhir.Quantity{Value: fptr(0.5), Unit: "mL"},
	}
	rec := mapImmunization(res, Provenance{})
	if rec.VaccineCode != "Hep B, adolescent or pediatric" || rec.VaccineCodeCode != "08" {
		t.Errorf("vaccine: %q / %q", rec.VaccineCode, rec.VaccineCodeCode)
	}
	if rec.DoseQuantityValue == nil || *rec.DoseQuantityValue != 0.5 || rec.DoseQuantityUnit != "mL" {
		t.Errorf("dose: %v %q", rec.DoseQuantityValue, rec.DoseQuantityUnit)
	}
}

func TestMapCarePlan_Activities(t *testing.T) {
	res := carePlanResource{
		Status:   "active",
		Category: []fhir.CodeableConcept{{Text: "Diabetes self management plan"}},
		Period:   &fhir.Period{Start: "2015-01-01", End: ""},
		Activity: []carePlanActivity{
			{Detail: &carePlanDetail{Code: &fhir.CodeableConcept{Text: "Diabetic diet"}, Status: "in-progress"}},
			{Detail: &carePlanDetail{Code: &fhir.CodeableConcept{Text: "Exercise therapy"}, Status: "in-progress"}},
		},
	}
	rec := mapCarePlan(res, Provenance{})
	if rec.Category != "Diabetes self management plan" || rec.PeriodStart != "2015-01-01" {
		t.Errorf("%+v", rec)
	}
	if rec.Activities != "Diabetic diet; in-progress | Exercise therapy; in-progress" {
		t.Errorf("activities: %q", rec.Activities)
	}
}

func TestMapMedication_Ingredients(t *testing.T) {
	res := medicationResource{
		Code: &fhir.CodeableConcept{Text: "Amoxicillin 250mg capsule"},
		Ingredient: []medicationIngredient{{
			ItemCodeableConcept: &fhir.CodeableConcept{Text: "Amoxicillin"},
			Strength: &fhir.Ratio{
				Numerator:   &fhir.Quantity{Value: fptr(250), Unit: "mg"},
				Denominator: &fhir.Quantity{Value: fptr(1), Unit: "capsule"},
			},
		}},
	}
	rec := mapMedication(res, Provenance{})
	if rec.Ingredients != "Amoxicillin; 250 mg / 1 capsule" {
		t.Errorf("ingredients: %q", rec.Ingredients)
	}
}

func TestMapLocation_Position(t *testing.T) {
	res := locationResource{
		Name:     "East Wing Lab",
		Position: &locationPosition{Longitude: fptr(-71.06), Latitude: fptr(42.36)},
	}
	rec := mapLocation(res, Provenance{})
	if rec.Longitude == nil || *rec.Longitude != -71.06 || rec.Latitude == nil {
		t.Errorf("%+v", rec)
	}
}
