package bundle

import (
	"github.com/clinsearch/clinsearch/internal/fhir"
)

// Wire shapes of the supported resource types. Polymorphic choice fields
// (onset[x], performed[x], effective[x], value[x], occurrence[x]) appear as
// sibling fields; the mappers pick the first present one in a fixed order.

type patientResource struct {
	ID                   string                 `json:"id"`
	Active               *bool                  `json:"active"`
	Name                 []fhir.HumanName       `json:"name"`
	Telecom              []fhir.ContactPoint    `json:"telecom"`
	Gender               string                 `json:"gender"`
	BirthDate            string                 `json:"birthDate"`
	DeceasedDateTime     string                 `json:"deceasedDateTime"`
	Address              []fhir.Address         `json:"address"`
	MaritalStatus        *fhir.CodeableConcept  `json:"maritalStatus"`
	Communication        []patientCommunication `json:"communication"`
	ManagingOrganization *fhir.Reference        `json:"managingOrganization"`
	Identifier           []fhir.Identifier      `json:"identifier"`
}

type patientCommunication struct {
	Language *fhir.CodeableConcept `json:"language"`
}

type observationResource struct {
	ID                   string                 `json:"id"`
	Status               string                 `json:"status"`
	Category             []fhir.CodeableConcept `json:"category"`
	Code                 *fhir.CodeableConcept  `json:"code"`
	Subject              *fhir.Reference        `json:"subject"`
	Encounter            *fhir.Reference        `json:"encounter"`
	EffectiveDateTime    string                 `json:"effectiveDateTime"`
	EffectivePeriod      *fhir.Period           `json:"effectivePeriod"`
	Issued               string                 `json:"issued"`
	Performer            []fhir.Reference       `json:"performer"`
	ValueQuantity        *fhir.Quantity         `json:"valueQuantity"`
	ValueCodeableConcept *fhir.CodeableConcept  `json:"valueCodeableConcept"`
	ValueString          string                 `json:"valueString"`
	ValueBoolean         *bool                  `json:"valueBoolean"`
	ValueInteger         *int                   `json:"valueInteger"`
	Interpretation       []fhir.CodeableConcept `json:"interpretation"`
	Note                 []fhir.Annotation      `json:"note"`
	BodySite             *fhir.CodeableConcept  `json:"bodySite"`
	Method               *fhir.CodeableConcept  `json:"method"`
	Component            []observationComponent `json:"component"`
	ReferenceRange       []observationRefRange  `json:"referenceRange"`
}

type observationComponent struct {
	Code                 *fhir.CodeableConcept `json:"code"`
	ValueQuantity        *fhir.Quantity        `json:"valueQuantity"`
	ValueCodeableConcept *fhir.CodeableConcept `json:"valueCodeableConcept"`
	ValueString          string                `json:"valueString"`
}

type observationRefRange struct {
	Low  *fhir.Quantity `json:"low"`
	High *fhir.Quantity `json:"high"`
	Text string         `json:"text"`
}

type conditionResource struct {
	ID                 string                 `json:"id"`
	ClinicalStatus     *fhir.CodeableConcept  `json:"clinicalStatus"`
	VerificationStatus *fhir.CodeableConcept  `json:"verificationStatus"`
	AssertedDate       string                 `json:"assertedDate"`
	Category           []fhir.CodeableConcept `json:"category"`
	Severity           *fhir.CodeableConcept  `json:"severity"`
	Code               *fhir.CodeableConcept  `json:"code"`
	BodySite           []fhir.CodeableConcept `json:"bodySite"`
	Subject            *fhir.Reference        `json:"subject"`
	Encounter          *fhir.Reference        `json:"encounter"`
	OnsetDateTime      string                 `json:"onsetDateTime"`
	OnsetPeriod        *fhir.Period           `json:"onsetPeriod"`
	OnsetAge           *fhir.Quantity         `json:"onsetAge"`
	OnsetString        string                 `json:"onsetString"`
	AbatementDateTime  string                 `json:"abatementDateTime"`
	RecordedDate       string                 `json:"recordedDate"`
	Recorder           *fhir.Reference        `json:"recorder"`
	Asserter           *fhir.Reference        `json:"asserter"`
	Stage              *conditionStage        `json:"stage"`
	Evidence           []conditionEvidence    `json:"evidence"`
	Note               []fhir.Annotation      `json:"note"`
}

type conditionStage struct {
	Summary *fhir.CodeableConcept `json:"summary"`
}

type conditionEvidence struct {
	Code []fhir.CodeableConcept `json:"code"`
}

type encounterResource struct {
	Class           *fhir.Coding           `json:"class"`
	ID              string                 `json:"id"`
	Status          string                 `json:"status"`
	StatusHistory   []encounterStatusEntry `json:"statusHistory"`
	Type            []fhir.CodeableConcept `json:"type"`
	ServiceType     *fhir.CodeableConcept  `json:"serviceType"`
	Priority        *fhir.CodeableConcept  `json:"priority"`
	Subject         *fhir.Reference        `json:"subject"`
	EpisodeOfCare   []fhir.Reference       `json:"episodeOfCare"`
	Participant     []encounterParticipant `json:"participant"`
	Period          *fhir.Period           `json:"period"`
	Length          *fhir.Quantity         `json:"length"`
	ReasonCode      []fhir.CodeableConcept `json:"reasonCode"`
	ReasonReference []fhir.Reference       `json:"reasonReference"`
	Diagnosis       []encounterDiagnosis   `json:"diagnosis"`
	Hospitalization *hospitalization       `json:"hospitalization"`
	Location        []encounterLocation    `json:"location"`
	ServiceProvider *fhir.Reference        `json:"serviceProvider"`
}

type encounterStatusEntry struct {
	Status string `json:"status"`
}

type encounterParticipant struct {
	Type       []fhir.CodeableConcept `json:"type"`
	Individual *fhir.Reference        `json:"individual"`
}

type encounterDiagnosis struct {
	Condition *fhir.Reference `json:"condition"`
}

type hospitalization struct {
	AdmitSource          *fhir.CodeableConcept `json:"admitSource"`
	DischargeDisposition *fhir.CodeableConcept `json:"dischargeDisposition"`
}

type encounterLocation struct {
	Location *fhir.Reference `json:"location"`
}

type procedureResource struct {
	ID                string                 `json:"id"`
	Status            string                 `json:"status"`
	StatusReason      *fhir.CodeableConcept  `json:"statusReason"`
	Category          *fhir.CodeableConcept  `json:"category"`
	Code              *fhir.CodeableConcept  `json:"code"`
	Subject           *fhir.Reference        `json:"subject"`
	Encounter         *fhir.Reference        `json:"encounter"`
	PerformedDateTime string                 `json:"performedDateTime"`
	PerformedPeriod   *fhir.Period           `json:"performedPeriod"`
	PerformedAge      *fhir.Quantity         `json:"performedAge"`
	PerformedString   string                 `json:"performedString"`
	Recorder          *fhir.Reference        `json:"recorder"`
	Asserter          *fhir.Reference        `json:"asserter"`
	Performer         []performerEntry       `json:"performer"`
	ReasonCode        []fhir.CodeableConcept `json:"reasonCode"`
	Note              []fhir.Annotation      `json:"note"`
}

type performerEntry struct {
	Function *fhir.CodeableConcept `json:"function"`
	Actor    *fhir.Reference       `json:"actor"`
}

type medicationRequestResource struct {
	ID                        string                 `json:"id"`
	Status                    string                 `json:"status"`
	StatusReason              *fhir.CodeableConcept  `json:"statusReason"`
	Intent                    string                 `json:"intent"`
	Category                  []fhir.CodeableConcept `json:"category"`
	Priority                  string                 `json:"priority"`
	MedicationCodeableConcept *fhir.CodeableConcept  `json:"medicationCodeableConcept"`
	MedicationReference       *fhir.Reference        `json:"medicationReference"`
	Subject                   *fhir.Reference        `json:"subject"`
	Encounter                 *fhir.Reference        `json:"encounter"`
	AuthoredOn                string                 `json:"authoredOn"`
	Requester                 *fhir.Reference        `json:"requester"`
	Performer                 *fhir.Reference        `json:"performer"`
	PerformerType             *fhir.CodeableConcept  `json:"performerType"`
	Recorder                  *fhir.Reference        `json:"recorder"`
	ReasonCode                []fhir.CodeableConcept `json:"reasonCode"`
	ReasonReference           []fhir.Reference       `json:"reasonReference"`
	CourseOfTherapyType       *fhir.CodeableConcept  `json:"courseOfTherapyType"`
	DosageInstruction         []fhir.Dosage          `json:"dosageInstruction"`
	DispenseRequest           *dispenseRequest       `json:"dispenseRequest"`
	Substitution              *substitution          `json:"substitution"`
	Note                      []fhir.Annotation      `json:"note"`
}

type dispenseRequest struct {
	Quantity               *fhir.Quantity `json:"quantity"`
	ExpectedSupplyDuration *fhir.Quantity `json:"expectedSupplyDuration"`
	NumberOfRepeatsAllowed *int           `json:"numberOfRepeatsAllowed"`
}

type substitution struct {
	AllowedBoolean *bool `json:"allowedBoolean"`
}

type diagnosticReportResource struct {
	ID                 string                 `json:"id"`
	Status             string                 `json:"status"`
	Category           []fhir.CodeableConcept `json:"category"`
	Code               *fhir.CodeableConcept  `json:"code"`
	Subject            *fhir.Reference        `json:"subject"`
	Encounter          *fhir.Reference        `json:"encounter"`
	EffectiveDateTime  string                 `json:"effectiveDateTime"`
	EffectivePeriod    *fhir.Period           `json:"effectivePeriod"`
	Issued             string                 `json:"issued"`
	Performer          []fhir.Reference       `json:"performer"`
	ResultsInterpreter []fhir.Reference       `json:"resultsInterpreter"`
	Specimen           []fhir.Reference       `json:"specimen"`
	Result             []fhir.Reference       `json:"result"`
	ImagingStudy       []fhir.Reference       `json:"imagingStudy"`
	Media              []reportMedia          `json:"media"`
	Conclusion         string                 `json:"conclusion"`
	ConclusionCode     []fhir.CodeableConcept `json:"conclusionCode"`
	PresentedForm      []attachment           `json:"presentedForm"`
}

type reportMedia struct {
	Comment string          `json:"comment"`
	Link    *fhir.Reference `json:"link"`
}

type attachment struct {
	Title    string `json:"title"`
	Creation string `json:"creation"`
}

type practitionerResource struct {
	ID            string                      `json:"id"`
	Active        *bool                       `json:"active"`
	Name          []fhir.HumanName            `json:"name"`
	Telecom       []fhir.ContactPoint         `json:"telecom"`
	Address       []fhir.Address              `json:"address"`
	Gender        string                      `json:"gender"`
	BirthDate     string                      `json:"birthDate"`
	Qualification []practitionerQualification `json:"qualification"`
	Communication []fhir.CodeableConcept      `json:"communication"`
}

type practitionerQualification struct {
	Code   *fhir.CodeableConcept `json:"code"`
	Issuer *fhir.Reference       `json:"issuer"`
	Period *fhir.Period          `json:"period"`
}

type organizationResource struct {
	ID       string                 `json:"id"`
	Active   *bool                  `json:"active"`
	Name     string                 `json:"name"`
	Alias    []string               `json:"alias"`
	Type     []fhir.CodeableConcept `json:"type"`
	Telecom  []fhir.ContactPoint    `json:"telecom"`
	Address  []fhir.Address         `json:"address"`
	PartOf   *fhir.Reference        `json:"partOf"`
	Contact  []organizationContact  `json:"contact"`
	Endpoint []fhir.Reference       `json:"endpoint"`
}

type organizationContact struct {
	Purpose *fhir.CodeableConcept `json:"purpose"`
	Name    *fhir.HumanName       `json:"name"`
	Telecom []fhir.ContactPoint   `json:"telecom"`
}

type locationResource struct {
	ID                     string                 `json:"id"`
	Status                 string                 `json:"status"`
	OperationalStatus      *fhir.CodeableConcept  `json:"operationalStatus"`
	Name                   string                 `json:"name"`
	Alias                  []string               `json:"alias"`
	Description            string                 `json:"description"`
	Mode                   string                 `json:"mode"`
	Type                   []fhir.CodeableConcept `json:"type"`
	Telecom                []fhir.ContactPoint    `json:"telecom"`
	Address                []fhir.Address         `json:"address"`
	PhysicalType           *fhir.CodeableConcept  `json:"physicalType"`
	Position               *locationPosition      `json:"position"`
	ManagingOrganization   *fhir.Reference        `json:"managingOrganization"`
	PartOf                 *fhir.Reference        `json:"partOf"`
	AvailabilityExceptions string                 `json:"availabilityExceptions"`
}

type locationPosition struct {
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`
	Altitude  *float64 `json:"altitude"`
}

type medicationResource struct {
	ID           string                 `json:"id"`
	Status       string                 `json:"status"`
	Code         *fhir.CodeableConcept  `json:"code"`
	Manufacturer *fhir.Reference        `json:"manufacturer"`
	Form         *fhir.CodeableConcept  `json:"form"`
	Amount       *fhir.Ratio            `json:"amount"`
	Ingredient   []medicationIngredient `json:"ingredient"`
	Batch        *medicationBatch       `json:"batch"`
}

type medicationIngredient struct {
	ItemCodeableConcept *fhir.CodeableConcept `json:"itemCodeableConcept"`
	ItemReference       *fhir.Reference       `json:"itemReference"`
	Strength            *fhir.Ratio           `json:"strength"`
}

type medicationBatch struct {
	LotNumber      string `json:"lotNumber"`
	ExpirationDate string `json:"expirationDate"`
}

type allergyIntoleranceResource struct {
	ID                 string                `json:"id"`
	ClinicalStatus     *fhir.CodeableConcept `json:"clinicalStatus"`
	VerificationStatus *fhir.CodeableConcept `json:"verificationStatus"`
	AssertedDate       string                `json:"assertedDate"`
	Type               string                `json:"type"`
	Category           []string              `json:"category"`
	Criticality        string                `json:"criticality"`
	Code               *fhir.CodeableConcept `json:"code"`
	Patient            *fhir.Reference       `json:"patient"`
	Encounter          *fhir.Reference       `json:"encounter"`
	OnsetDateTime      string                `json:"onsetDateTime"`
	OnsetPeriod        *fhir.Period          `json:"onsetPeriod"`
	OnsetAge           *fhir.Quantity        `json:"onsetAge"`
	OnsetRange         *fhir.Range           `json:"onsetRange"`
	OnsetString        string                `json:"onsetString"`
	RecordedDate       string                `json:"recordedDate"`
	Recorder           *fhir.Reference       `json:"recorder"`
	Asserter           *fhir.Reference       `json:"asserter"`
	LastOccurrence     string                `json:"lastOccurrence"`
	Note               []fhir.Annotation     `json:"note"`
	Reaction           []allergyReaction     `json:"reaction"`
}

type allergyReaction struct {
	Substance     *fhir.CodeableConcept  `json:"substance"`
	Manifestation []fhir.CodeableConcept `json:"manifestation"`
	Severity      string                 `json:"severity"`
	ExposureRoute *fhir.CodeableConcept  `json:"exposureRoute"`
}

type immunizationResource struct {
	ID                 string                 `json:"id"`
	Date               string                 `json:"date"`
	Status             string                 `json:"status"`
	StatusReason       *fhir.CodeableConcept  `json:"statusReason"`
	VaccineCode        *fhir.CodeableConcept  `json:"vaccineCode"`
	Patient            *fhir.Reference        `json:"patient"`
	Encounter          *fhir.Reference        `json:"encounter"`
	OccurrenceDateTime string                 `json:"occurrenceDateTime"`
	OccurrenceString   string                 `json:"occurrenceString"`
	Recorded           string                 `json:"recorded"`
	PrimarySource      *bool                  `json:"primarySource"`
	ReportOrigin       *fhir.CodeableConcept  `json:"reportOrigin"`
	Location           *fhir.Reference        `json:"location"`
	Manufacturer       *fhir.Reference        `json:"manufacturer"`
	LotNumber          string                 `json:"lotNumber"`
	ExpirationDate     string                 `json:"expirationDate"`
	Site               *fhir.CodeableConcept  `json:"site"`
	Route              *fhir.CodeableConcept  `json:"route"`
	DoseQuantity       *fhir.Quantity         `json:"doseQuantity"`
	Performer          []performerEntry       `json:"performer"`
	ReasonCode         []fhir.CodeableConcept `json:"reasonCode"`
	ReasonReference    []fhir.Reference       `json:"reasonReference"`
	IsSubpotent        *bool                  `json:"isSubpotent"`
	SubpotentReason    []fhir.CodeableConcept `json:"subpotentReason"`
	ProgramEligibility []fhir.CodeableConcept `json:"programEligibility"`
	FundingSource      *fhir.CodeableConcept  `json:"fundingSource"`
	Reaction           []immunizationReaction `json:"reaction"`
	ProtocolApplied    []immunizationProtocol `json:"protocolApplied"`
	Note               []fhir.Annotation      `json:"note"`
}

type immunizationReaction struct {
	Date     string          `json:"date"`
	Detail   *fhir.Reference `json:"detail"`
	Reported *bool           `json:"reported"`
}

type immunizationProtocol struct {
	Series                 string                 `json:"series"`
	Authority              *fhir.Reference        `json:"authority"`
	TargetDisease          []fhir.CodeableConcept `json:"targetDisease"`
	DoseNumberPositiveInt  *int                   `json:"doseNumberPositiveInt"`
	DoseNumberString       string                 `json:"doseNumberString"`
	SeriesDosesPositiveInt *int                   `json:"seriesDosesPositiveInt"`
	SeriesDosesString      string                 `json:"seriesDosesString"`
}

type carePlanResource struct {
	ID             string                 `json:"id"`
	Status         string                 `json:"status"`
	Intent         string                 `json:"intent"`
	Category       []fhir.CodeableConcept `json:"category"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	Subject        *fhir.Reference        `json:"subject"`
	Encounter      *fhir.Reference        `json:"encounter"`
	Period         *fhir.Period           `json:"period"`
	Created        string                 `json:"created"`
	Author         *fhir.Reference        `json:"author"`
	Contributor    []fhir.Reference       `json:"contributor"`
	CareTeam       []fhir.Reference       `json:"careTeam"`
	Addresses      []fhir.Reference       `json:"addresses"`
	SupportingInfo []fhir.Reference       `json:"supportingInfo"`
	Goal           []fhir.Reference       `json:"goal"`
	Activity       []carePlanActivity     `json:"activity"`
	Note           []fhir.Annotation      `json:"note"`
}

type carePlanActivity struct {
	OutcomeCodeableConcept []fhir.CodeableConcept `json:"outcomeCodeableConcept"`
	OutcomeReference       []fhir.Reference       `json:"outcomeReference"`
	Progress               []fhir.Annotation      `json:"progress"`
	Reference              *fhir.Reference        `json:"reference"`
	Detail                 *carePlanDetail        `json:"detail"`
}

type carePlanDetail struct {
	Kind        string                `json:"kind"`
	Code        *fhir.CodeableConcept `json:"code"`
	Status      string                `json:"status"`
	Description string                `json:"description"`
}
