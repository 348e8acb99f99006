package bundle

import (
	"strings"

	"github.com/clinsearch/clinsearch/internal/fhir"
)

// Composite list fields join items with " | " and the parts inside one item
// with "; ".
const (
	itemSep = " | "
	partSep = "; "
)

func refText(r *fhir.Reference) string {
	if r == nil {
		return ""
	}
	if r.Display != "" {
		return r.Display
	}
	return r.Reference
}

func refID(r *fhir.Reference) string {
	if r == nil {
		return ""
	}
	return r.Reference
}

func joinRefs(refs []fhir.Reference) string {
	var parts []string
	for i := range refs {
		if t := refText(&refs[i]); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, itemSep)
}

func joinConcepts(list []fhir.CodeableConcept) string {
	var parts []string
	for i := range list {
		if t := fhir.ConceptText(&list[i]); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, itemSep)
}

func joinNotes(notes []fhir.Annotation) string {
	var parts []string
	for _, n := range notes {
		if n.Text != "" {
			parts = append(parts, n.Text)
		}
	}
	return strings.Join(parts, itemSep)
}

func joinParts(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, partSep)
}

func ratioText(r *fhir.Ratio) string {
	if r == nil {
		return ""
	}
	num := fhir.QuantityText(r.Numerator)
	den := fhir.QuantityText(r.Denominator)
	switch {
	case num != "" && den != "":
		return num + " / " + den
	case num != "":
		return num
	default:
		return den
	}
}

func mapPatient(res patientResource, prov Provenance) PatientRecord {
	name := fhir.DecodeHumanName(res.Name)
	addr := fhir.DecodeAddress(res.Address)
	ids := fhir.DecodeIdentifiers(res.Identifier)

	var language string
	for _, c := range res.Communication {
		if language = fhir.ConceptText(c.Language); language != "" {
			break
		}
	}

	return PatientRecord{
		ID:                   res.ID,
		Active:               res.Active,
		FamilyName:           name.Family,
		GivenNames:           strings.Join(name.Given, " "),
		FullName:             name.FullName,
		NameUse:              name.Use,
		Gender:               res.Gender,
		BirthDate:            res.BirthDate,
		DeceasedDateTime:     res.DeceasedDateTime,
		MaritalStatus:        fhir.ConceptText(res.MaritalStatus),
		Phone:                fhir.TelecomValue(res.Telecom, "phone"),
		Email:                fhir.TelecomValue(res.Telecom, "email"),
		AddressFull:          addr.Full,
		AddressCity:          addr.City,
		AddressState:         addr.State,
		AddressPostalCode:    addr.PostalCode,
		AddressCountry:       addr.Country,
		Language:             language,
		ManagingOrganization: refText(res.ManagingOrganization),
		SSN:                  ids.SSN,
		MRN:                  ids.MRN,
		UUID:                 ids.UUID,
		DriverLicense:        ids.DriverLicense,
		Passport:             ids.Passport,
		Provenance:           prov,
	}
}

func mapObservation(res observationResource, prov Provenance) ObservationRecord {
	code := fhir.CodingDetails(res.Code)
	period := fhir.DecodePeriod(res.EffectivePeriod)

	rec := ObservationRecord{
		ID:                   res.ID,
		Status:               res.Status,
		Category:             joinConcepts(res.Category),
		Code:                 fhir.ConceptText(res.Code),
		CodeSystem:           code.System,
		CodeCode:             code.Code,
		SubjectRef:           refID(res.Subject),
		EncounterRef:         refID(res.Encounter),
		EffectiveDateTime:    res.EffectiveDateTime,
		EffectivePeriodStart: period.Start,
		EffectivePeriodEnd:   period.End,
		Issued:               res.Issued,
		PerformerRef:         joinRefs(res.Performer),
		Interpretation:       joinConcepts(res.Interpretation),
		Note:                 joinNotes(res.Note),
		BodySite:             fhir.ConceptText(res.BodySite),
		Method:               fhir.ConceptText(res.Method),
		Provenance:           prov,
	}

	// First present value form wins; the others stay empty.
	switch {
	case res.ValueQuantity != nil:
		rec.ValueQuantity = res.ValueQuantity.Value
		rec.ValueUnit = res.ValueQuantity.Unit
		rec.ValueComparator = res.ValueQuantity.Comparator
	case res.ValueCodeableConcept != nil:
		rec.ValueConcept = fhir.ConceptText(res.ValueCodeableConcept)
	case res.ValueString != "":
		rec.ValueString = res.ValueString
	case res.ValueBoolean != nil:
		rec.ValueBoolean = res.ValueBoolean
	case res.ValueInteger != nil:
		rec.ValueInteger = res.ValueInteger
	}

	var comps []string
	for i := range res.Component {
		c := res.Component[i]
		var value string
		switch {
		case c.ValueQuantity != nil:
			value = fhir.QuantityText(c.ValueQuantity)
		case c.ValueCodeableConcept != nil:
			value = fhir.ConceptText(c.ValueCodeableConcept)
		default:
			value = c.ValueString
		}
		if item := joinParts(fhir.ConceptText(c.Code), value); item != "" {
			comps = append(comps, item)
		}
	}
	rec.Components = strings.Join(comps, itemSep)

	if len(res.ReferenceRange) > 0 {
		rr := res.ReferenceRange[0]
		if rr.Low != nil {
			rec.ReferenceRangeLow = rr.Low.Value
		}
		if rr.High != nil {
			rec.ReferenceRangeHigh = rr.High.Value
		}
		rec.ReferenceRangeText = rr.Text
	}
	return rec
}

func mapCondition(res conditionResource, prov Provenance) ConditionRecord {
	code := fhir.CodingDetails(res.Code)
	onset := fhir.DecodePeriod(res.OnsetPeriod)

	rec := ConditionRecord{
		ID:                 res.ID,
		ClinicalStatus:     fhir.ConceptText(res.ClinicalStatus),
		VerificationStatus: fhir.ConceptText(res.VerificationStatus),
		AssertedDate:       res.AssertedDate,
		Category:           joinConcepts(res.Category),
		Severity:           fhir.ConceptText(res.Severity),
		Code:               fhir.ConceptText(res.Code),
		CodeSystem:         code.System,
		CodeCode:           code.Code,
		BodySite:           joinConcepts(res.BodySite),
		SubjectRef:         refID(res.Subject),
		EncounterRef:       refID(res.Encounter),
		AbatementDateTime:  res.AbatementDateTime,
		RecordedDate:       res.RecordedDate,
		RecorderRef:        refID(res.Recorder),
		AsserterRef:        refID(res.Asserter),
		Note:               joinNotes(res.Note),
		Provenance:         prov,
	}

	switch {
	case res.OnsetDateTime != "":
		rec.OnsetDateTime = res.OnsetDateTime
	case res.OnsetPeriod != nil:
		rec.OnsetPeriodStart = onset.Start
		rec.OnsetPeriodEnd = onset.End
	case res.OnsetAge != nil:
		rec.OnsetAge = fhir.QuantityText(res.OnsetAge)
	case res.OnsetString != "":
		rec.OnsetString = res.OnsetString
	}

	if res.Stage != nil {
		rec.StageSummary = fhir.ConceptText(res.Stage.Summary)
	}
	var evidence []string
	for _, e := range res.Evidence {
		if t := joinConcepts(e.Code); t != "" {
			evidence = append(evidence, t)
		}
	}
	rec.Evidence = strings.Join(evidence, itemSep)
	return rec
}

func mapEncounter(res encounterResource, prov Provenance) EncounterRecord {
	period := fhir.DecodePeriod(res.Period)

	rec := EncounterRecord{
		ID:                 res.ID,
		Status:             res.Status,
		Type:               joinConcepts(res.Type),
		ServiceType:        fhir.ConceptText(res.ServiceType),
		Priority:           fhir.ConceptText(res.Priority),
		SubjectRef:         refID(res.Subject),
		EpisodeOfCareRef:   joinRefs(res.EpisodeOfCare),
		PeriodStart:        period.Start,
		PeriodEnd:          period.End,
		ReasonCode:         joinConcepts(res.ReasonCode),
		ReasonRef:          joinRefs(res.ReasonReference),
		LocationRef:        "",
		ServiceProviderRef: refText(res.ServiceProvider),
		Provenance:         prov,
	}

	if res.Class != nil {
		rec.ClassCode = res.Class.Code
		rec.ClassDisplay = res.Class.Display
	}
	if n := len(res.StatusHistory); n > 0 {
		rec.LastStatusHistory = res.StatusHistory[n-1].Status
	}
	if res.Length != nil {
		rec.LengthValue = res.Length.Value
		rec.LengthUnit = res.Length.Unit
	}
	if res.Hospitalization != nil {
		rec.AdmitSource = fhir.ConceptText(res.Hospitalization.AdmitSource)
		rec.DischargeDisposition = fhir.ConceptText(res.Hospitalization.DischargeDisposition)
	}

	var diags []string
	for _, d := range res.Diagnosis {
		if t := refText(d.Condition); t != "" {
			diags = append(diags, t)
		}
	}
	rec.Diagnosis = strings.Join(diags, itemSep)

	var locs []string
	for _, l := range res.Location {
		if t := refText(l.Location); t != "" {
			locs = append(locs, t)
		}
	}
	rec.LocationRef = strings.Join(locs, itemSep)

	var parts []string
	for _, p := range res.Participant {
		if item := joinParts(joinConcepts(p.Type), refText(p.Individual)); item != "" {
			parts = append(parts, item)
		}
	}
	rec.Participants = strings.Join(parts, itemSep)
	return rec
}

func mapProcedure(res procedureResource, prov Provenance) ProcedureRecord {
	code := fhir.CodingDetails(res.Code)
	period := fhir.DecodePeriod(res.PerformedPeriod)

	rec := ProcedureRecord{
		ID:           res.ID,
		Status:       res.Status,
		StatusReason: fhir.ConceptText(res.StatusReason),
		Category:     fhir.ConceptText(res.Category),
		Code:         fhir.ConceptText(res.Code),
		CodeSystem:   code.System,
		CodeCode:     code.Code,
		SubjectRef:   refID(res.Subject),
		EncounterRef: refID(res.Encounter),
		RecorderRef:  refID(res.Recorder),
		AsserterRef:  refID(res.Asserter),
		ReasonCode:   joinConcepts(res.ReasonCode),
		Note:         joinNotes(res.Note),
		Provenance:   prov,
	}

	switch {
	case res.PerformedDateTime != "":
		rec.PerformedDateTime = res.PerformedDateTime
	case res.PerformedPeriod != nil:
		rec.PerformedPeriodStart = period.Start
		rec.PerformedPeriodEnd = period.End
	case res.PerformedAge != nil:
		rec.PerformedAge = fhir.QuantityText(res.PerformedAge)
	case res.PerformedString != "":
		rec.PerformedString = res.PerformedString
	}

	var perf []string
	for _, p := range res.Performer {
		if item := joinParts(fhir.ConceptText(p.Function), refText(p.Actor)); item != "" {
			perf = append(perf, item)
		}
	}
	rec.Performers = strings.Join(perf, itemSep)
	return rec
}

func mapMedicationRequest(res medicationRequestResource, prov Provenance) MedicationRequestRecord {
	med := fhir.CodingDetails(res.MedicationCodeableConcept)
	dosage := fhir.DecodeDosage(res.DosageInstruction)

	rec := MedicationRequestRecord{
		ID:                  res.ID,
		Status:              res.Status,
		StatusReason:        fhir.ConceptText(res.StatusReason),
		Intent:              res.Intent,
		Category:            joinConcepts(res.Category),
		Priority:            res.Priority,
		MedicationConcept:   fhir.ConceptText(res.MedicationCodeableConcept),
		MedicationSystem:    med.System,
		MedicationCode:      med.Code,
		MedicationRef:       refText(res.MedicationReference),
		SubjectRef:          refID(res.Subject),
		EncounterRef:        refID(res.Encounter),
		AuthoredOn:          res.AuthoredOn,
		RequesterRef:        refText(res.Requester),
		PerformerRef:        refText(res.Performer),
		PerformerType:       fhir.ConceptText(res.PerformerType),
		RecorderRef:         refID(res.Recorder),
		ReasonCode:          joinConcepts(res.ReasonCode),
		ReasonRef:           joinRefs(res.ReasonReference),
		CourseOfTherapy:     fhir.ConceptText(res.CourseOfTherapyType),
		DosageText:          dosage.Text,
		DosageTiming:        dosage.Timing,
		DosageRoute:         dosage.Route,
		DosageMethod:        dosage.Method,
		DosageDoseQuantity:  dosage.DoseQuantity,
		DosageDoseRangeLow:  dosage.DoseRangeLow,
		DosageDoseRangeHigh: dosage.DoseRangeHigh,
		Note:                joinNotes(res.Note),
		Provenance:          prov,
	}

	if res.DispenseRequest != nil {
		if res.DispenseRequest.Quantity != nil {
			rec.DispenseQuantity = res.DispenseRequest.Quantity.Value
		}
		if res.DispenseRequest.ExpectedSupplyDuration != nil {
			rec.DispenseDaysSupply = res.DispenseRequest.ExpectedSupplyDuration.Value
		}
		rec.DispenseRepeats = res.DispenseRequest.NumberOfRepeatsAllowed
	}
	if res.Substitution != nil {
		rec.SubstitutionAllowed = res.Substitution.AllowedBoolean
	}
	return rec
}

func mapDiagnosticReport(res diagnosticReportResource, prov Provenance) DiagnosticReportRecord {
	code := fhir.CodingDetails(res.Code)
	period := fhir.DecodePeriod(res.EffectivePeriod)

	rec := DiagnosticReportRecord{
		ID:                    res.ID,
		Status:                res.Status,
		Category:              joinConcepts(res.Category),
		Code:                  fhir.ConceptText(res.Code),
		CodeSystem:            code.System,
		CodeCode:              code.Code,
		SubjectRef:            refID(res.Subject),
		EncounterRef:          refID(res.Encounter),
		EffectiveDateTime:     res.EffectiveDateTime,
		EffectivePeriodStart:  period.Start,
		EffectivePeriodEnd:    period.End,
		Issued:                res.Issued,
		PerformerRef:          joinRefs(res.Performer),
		ResultsInterpreterRef: joinRefs(res.ResultsInterpreter),
		SpecimenRef:           joinRefs(res.Specimen),
		ResultRefs:            joinRefs(res.Result),
		ImagingStudyRef:       joinRefs(res.ImagingStudy),
		Conclusion:            res.Conclusion,
		ConclusionCode:        joinConcepts(res.ConclusionCode),
		Provenance:            prov,
	}

	var media []string
	for _, m := range res.Media {
		if item := joinParts(m.Comment, refText(m.Link)); item != "" {
			media = append(media, item)
		}
	}
	rec.Media = strings.Join(media, itemSep)

	if len(res.PresentedForm) > 0 {
		rec.PresentedFormTitle = res.PresentedForm[0].Title
		rec.PresentedFormCreation = res.PresentedForm[0].Creation
	}
	return rec
}

func mapPractitioner(res practitionerResource, prov Provenance) PractitionerRecord {
	name := fhir.DecodeHumanName(res.Name)
	addr := fhir.DecodeAddress(res.Address)

	var quals []string
	for _, q := range res.Qualification {
		if t := fhir.ConceptText(q.Code); t != "" {
			quals = append(quals, t)
		}
	}

	return PractitionerRecord{
		ID:                res.ID,
		Active:            res.Active,
		FamilyName:        name.Family,
		GivenNames:        strings.Join(name.Given, " "),
		FullName:          name.FullName,
		Prefix:            strings.Join(name.Prefix, " "),
		Suffix:            strings.Join(name.Suffix, " "),
		NameUse:           name.Use,
		Gender:            res.Gender,
		BirthDate:         res.BirthDate,
		Phone:             fhir.TelecomValue(res.Telecom, "phone"),
		Email:             fhir.TelecomValue(res.Telecom, "email"),
		AddressFull:       addr.Full,
		AddressCity:       addr.City,
		AddressState:      addr.State,
		AddressPostalCode: addr.PostalCode,
		AddressCountry:    addr.Country,
		Qualifications:    strings.Join(quals, itemSep),
		Communication:     joinConcepts(res.Communication),
		Provenance:        prov,
	}
}

func mapOrganization(res organizationResource, prov Provenance) OrganizationRecord {
	addr := fhir.DecodeAddress(res.Address)

	var contacts []string
	for _, c := range res.Contact {
		var contactName string
		if c.Name != nil {
			contactName = fhir.DecodeHumanName([]fhir.HumanName{*c.Name}).FullName
		}
		item := joinParts(fhir.ConceptText(c.Purpose), contactName, fhir.TelecomValue(c.Telecom, "phone"))
		if item != "" {
			contacts = append(contacts, item)
		}
	}

	return OrganizationRecord{
		ID:                res.ID,
		Active:            res.Active,
		Name:              res.Name,
		Alias:             strings.Join(res.Alias, itemSep),
		Type:              joinConcepts(res.Type),
		Phone:             fhir.TelecomValue(res.Telecom, "phone"),
		Email:             fhir.TelecomValue(res.Telecom, "email"),
		Website:           fhir.TelecomValue(res.Telecom, "url"),
		Fax:               fhir.TelecomValue(res.Telecom, "fax"),
		AddressFull:       addr.Full,
		AddressCity:       addr.City,
		AddressState:      addr.State,
		AddressPostalCode: addr.PostalCode,
		AddressCountry:    addr.Country,
		PartOfRef:         refText(res.PartOf),
		Contacts:          strings.Join(contacts, itemSep),
		EndpointRef:       joinRefs(res.Endpoint),
		Provenance:        prov,
	}
}

func mapLocation(res locationResource, prov Provenance) LocationRecord {
	addr := fhir.DecodeAddress(res.Address)

	rec := LocationRecord{
		ID:                      res.ID,
		Status:                  res.Status,
		OperationalStatus:       fhir.ConceptText(res.OperationalStatus),
		Name:                    res.Name,
		Alias:                   strings.Join(res.Alias, itemSep),
		Description:             res.Description,
		Mode:                    res.Mode,
		Type:                    joinConcepts(res.Type),
		Phone:                   fhir.TelecomValue(res.Telecom, "phone"),
		Email:                   fhir.TelecomValue(res.Telecom, "email"),
		Website:                 fhir.TelecomValue(res.Telecom, "url"),
		AddressFull:             addr.Full,
		AddressCity:             addr.City,
		AddressState:            addr.State,
		AddressPostalCode:       addr.PostalCode,
		AddressCountry:          addr.Country,
		PhysicalType:            fhir.ConceptText(res.PhysicalType),
		ManagingOrganizationRef: refText(res.ManagingOrganization),
		PartOfRef:               refText(res.PartOf),
		AvailabilityExceptions:  res.AvailabilityExceptions,
		Provenance:              prov,
	}

	if res.Position != nil {
		rec.Longitude = res.Position.Longitude
		rec.Latitude = res.Position.Latitude
		rec.Altitude = res.Position.Altitude
	}
	return rec
}

func mapMedication(res medicationResource, prov Provenance) MedicationRecord {
	code := fhir.CodingDetails(res.Code)

	rec := MedicationRecord{
		ID:              res.ID,
		Status:          res.Status,
		Code:            fhir.ConceptText(res.Code),
		CodeSystem:      code.System,
		CodeCode:        code.Code,
		ManufacturerRef: refText(res.Manufacturer),
		Form:            fhir.ConceptText(res.Form),
		Provenance:      prov,
	}

	if res.Amount != nil {
		if res.Amount.Numerator != nil {
			rec.AmountNumeratorValue = res.Amount.Numerator.Value
			rec.AmountNumeratorUnit = res.Amount.Numerator.Unit
		}
		if res.Amount.Denominator != nil {
			rec.AmountDenominatorValue = res.Amount.Denominator.Value
			rec.AmountDenominatorUnit = res.Amount.Denominator.Unit
		}
	}

	var ingredients []string
	for _, ing := range res.Ingredient {
		item := fhir.ConceptText(ing.ItemCodeableConcept)
		if item == "" {
			item = refText(ing.ItemReference)
		}
		if entry := joinParts(item, ratioText(ing.Strength)); entry != "" {
			ingredients = append(ingredients, entry)
		}
	}
	rec.Ingredients = strings.Join(ingredients, itemSep)

	if res.Batch != nil {
		rec.BatchLotNumber = res.Batch.LotNumber
		rec.BatchExpirationDate = res.Batch.ExpirationDate
	}
	return rec
}

func mapAllergyIntolerance(res allergyIntoleranceResource, prov Provenance) AllergyIntoleranceRecord {
	code := fhir.CodingDetails(res.Code)
	onset := fhir.DecodePeriod(res.OnsetPeriod)

	rec := AllergyIntoleranceRecord{
		ID:                 res.ID,
		ClinicalStatus:     fhir.ConceptText(res.ClinicalStatus),
		VerificationStatus: fhir.ConceptText(res.VerificationStatus),
		AssertedDate:       res.AssertedDate,
		Type:               res.Type,
		Category:           strings.Join(res.Category, itemSep),
		Criticality:        res.Criticality,
		Code:               fhir.ConceptText(res.Code),
		CodeSystem:         code.System,
		CodeCode:           code.Code,
		PatientRef:         refID(res.Patient),
		EncounterRef:       refID(res.Encounter),
		RecordedDate:       res.RecordedDate,
		RecorderRef:        refID(res.Recorder),
		AsserterRef:        refID(res.Asserter),
		LastOccurrence:     res.LastOccurrence,
		Note:               joinNotes(res.Note),
		Provenance:         prov,
	}

	switch {
	case res.OnsetDateTime != "":
		rec.OnsetDateTime = res.OnsetDateTime
	case res.OnsetPeriod != nil:
		rec.OnsetPeriodStart = onset.Start
		rec.OnsetPeriodEnd = onset.End
	case res.OnsetAge != nil:
		rec.OnsetAge = fhir.QuantityText(res.OnsetAge)
	case res.OnsetRange != nil:
		if res.OnsetRange.Low != nil {
			rec.OnsetRangeLow = res.OnsetRange.Low.Value
		}
		if res.OnsetRange.High != nil {
			rec.OnsetRangeHigh = res.OnsetRange.High.Value
		}
	case res.OnsetString != "":
		rec.OnsetString = res.OnsetString
	}

	var reactions []string
	for _, r := range res.Reaction {
		item := joinParts(fhir.ConceptText(r.Substance), joinConcepts(r.Manifestation), r.Severity)
		if item != "" {
			reactions = append(reactions, item)
		}
	}
	rec.Reactions = strings.Join(reactions, itemSep)
	return rec
}

func mapImmunization(res immunizationResource, prov Provenance) ImmunizationRecord {
	vaccine := fhir.CodingDetails(res.VaccineCode)

	rec := ImmunizationRecord{
		ID:                 res.ID,
		Date:               res.Date,
		Status:             res.Status,
		StatusReason:       fhir.ConceptText(res.StatusReason),
		VaccineCode:        fhir.ConceptText(res.VaccineCode),
		VaccineCodeSystem:  vaccine.System,
		VaccineCodeCode:    vaccine.Code,
		PatientRef:         refID(res.Patient),
		EncounterRef:       refID(res.Encounter),
		OccurrenceDateTime: res.OccurrenceDateTime,
		OccurrenceString:   res.OccurrenceString,
		Recorded:           res.Recorded,
		PrimarySource:      res.PrimarySource,
		ReportOrigin:       fhir.ConceptText(res.ReportOrigin),
		LocationRef:        refText(res.Location),
		ManufacturerRef:    refText(res.Manufacturer),
		LotNumber:          res.LotNumber,
		ExpirationDate:     res.ExpirationDate,
		Site:               fhir.ConceptText(res.Site),
		Route:              fhir.ConceptText(res.Route),
		ReasonCode:         joinConcepts(res.ReasonCode),
		ReasonRef:          joinRefs(res.ReasonReference),
		IsSubpotent:        res.IsSubpotent,
		SubpotentReason:    joinConcepts(res.SubpotentReason),
		ProgramEligibility: joinConcepts(res.ProgramEligibility),
		FundingSource:      fhir.ConceptText(res.FundingSource),
		Note:               joinNotes(res.Note),
		Provenance:         prov,
	}

	if res.DoseQuantity != nil {
		rec.DoseQuantityValue = res.DoseQuantity.Value
		rec.DoseQuantityUnit = res.DoseQuantity.Unit
	}

	var perf []string
	for _, p := range res.Performer {
		if item := joinParts(fhir.ConceptText(p.Function), refText(p.Actor)); item != "" {
			perf = append(perf, item)
		}
	}
	rec.Performers = strings.Join(perf, itemSep)

	var reactions []string
	for _, r := range res.Reaction {
		if item := joinParts(r.Date, refText(r.Detail)); item != "" {
			reactions = append(reactions, item)
		}
	}
	rec.Reactions = strings.Join(reactions, itemSep)

	var protocols []string
	for _, p := range res.ProtocolApplied {
		dose := p.DoseNumberString
		if dose == "" && p.DoseNumberPositiveInt != nil {
			dose = fhir.FormatFloat(float64(*p.DoseNumberPositiveInt))
		}
		if item := joinParts(p.Series, joinConcepts(p.TargetDisease), dose); item != "" {
			protocols = append(protocols, item)
		}
	}
	rec.Protocols = strings.Join(protocols, itemSep)
	return rec
}

func mapCarePlan(res carePlanResource, prov Provenance) CarePlanRecord {
	period := fhir.DecodePeriod(res.Period)

	var activities []string
	for _, a := range res.Activity {
		var item string
		if a.Detail != nil {
			item = joinParts(fhir.ConceptText(a.Detail.Code), a.Detail.Status)
			if item == "" {
				item = a.Detail.Description
			}
		}
		if item == "" {
			item = refText(a.Reference)
		}
		if item == "" {
			item = joinConcepts(a.OutcomeCodeableConcept)
		}
		if item != "" {
			activities = append(activities, item)
		}
	}

	return CarePlanRecord{
		ID:             res.ID,
		Status:         res.Status,
		Intent:         res.Intent,
		Category:       joinConcepts(res.Category),
		Title:          res.Title,
		Description:    res.Description,
		SubjectRef:     refID(res.Subject),
		EncounterRef:   refID(res.Encounter),
		PeriodStart:    period.Start,
		PeriodEnd:      period.End,
		Created:        res.Created,
		AuthorRef:      refText(res.Author),
		ContributorRef: joinRefs(res.Contributor),
		CareTeam:       joinRefs(res.CareTeam),
		Addresses:      joinRefs(res.Addresses),
		SupportingInfo: joinRefs(res.SupportingInfo),
		Goals:          joinRefs(res.Goal),
		Activities:     strings.Join(activities, itemSep),
		Provenance:     prov,
	}
}
