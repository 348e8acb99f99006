package bundle

import "time"

// Provenance is attached to every flat record produced by a mapper.
type Provenance struct {
	SourceFile  string    `json:"source_file,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}

// PatientRecord is the flattened Patient resource.
type PatientRecord struct {
	ID                   string
	Active               *bool
	FamilyName           string
	GivenNames           string
	FullName             string
	NameUse              string
	Gender               string
	BirthDate            string
	DeceasedDateTime     string
	MaritalStatus        string
	Phone                string
	Email                string
	AddressFull          string
	AddressCity          string
	AddressState         string
	AddressPostalCode    string
	AddressCountry       string
	Language             string
	ManagingOrganization string
	SSN                  string
	MRN                  string
	UUID                 string
	DriverLicense        string
	Passport             string
	Provenance
}

// ObservationRecord is the flattened Observation resource. Exactly one of the
// Value* groups is populated, chosen by first-present priority.
type ObservationRecord struct {
	ID                   string
	Status               string
	Category             string
	Code                 string
	CodeSystem           string
	CodeCode             string
	SubjectRef           string
	EncounterRef         string
	EffectiveDateTime    string
	EffectivePeriodStart string
	EffectivePeriodEnd   string
	Issued               string
	PerformerRef         string
	ValueQuantity        *float64
	ValueUnit            string
	ValueComparator      string
	ValueConcept         string
	ValueString          string
	ValueBoolean         *bool
	ValueInteger         *int
	Interpretation       string
	Note                 string
	BodySite             string
	Method               string
	Components           string
	ReferenceRangeLow    *float64
	ReferenceRangeHigh   *float64
	ReferenceRangeText   string
	Provenance
}

// ConditionRecord is the flattened Condition resource.
type ConditionRecord struct {
	ID                 string
	ClinicalStatus     string
	VerificationStatus string
	AssertedDate       string
	Category           string
	Severity           string
	Code               string
	CodeSystem         string
	CodeCode           string
	BodySite           string
	SubjectRef         string
	EncounterRef       string
	OnsetDateTime      string
	OnsetPeriodStart   string
	OnsetPeriodEnd     string
	OnsetAge           string
	OnsetString        string
	AbatementDateTime  string
	RecordedDate       string
	RecorderRef        string
	AsserterRef        string
	StageSummary       string
	Evidence           string
	Note               string
	Provenance
}

// EncounterRecord is the flattened Encounter resource.
type EncounterRecord struct {
	ID                   string
	Status               string
	LastStatusHistory    string
	ClassCode            string
	ClassDisplay         string
	Type                 string
	ServiceType          string
	Priority             string
	SubjectRef           string
	EpisodeOfCareRef     string
	PeriodStart          string
	PeriodEnd            string
	LengthValue          *float64
	LengthUnit           string
	ReasonCode           string
	ReasonRef            string
	Diagnosis            string
	AdmitSource          string
	DischargeDisposition string
	LocationRef          string
	ServiceProviderRef   string
	Participants         string
	Provenance
}

// ProcedureRecord is the flattened Procedure resource.
type ProcedureRecord struct {
	ID                   string
	Status               string
	StatusReason         string
	Category             string
	Code                 string
	CodeSystem           string
	CodeCode             string
	SubjectRef           string
	EncounterRef         string
	PerformedDateTime    string
	PerformedPeriodStart string
	PerformedPeriodEnd   string
	PerformedAge         string
	PerformedString      string
	RecorderRef          string
	AsserterRef          string
	Performers           string
	ReasonCode           string
	Note                 string
	Provenance
}

// MedicationRequestRecord is the flattened MedicationRequest resource.
type MedicationRequestRecord struct {
	ID                  string
	Status              string
	StatusReason        string
	Intent              string
	Category            string
	Priority            string
	MedicationConcept   string
	MedicationSystem    string
	MedicationCode      string
	MedicationRef       string
	SubjectRef          string
	EncounterRef        string
	AuthoredOn          string
	RequesterRef        string
	PerformerRef        string
	PerformerType       string
	RecorderRef         string
	ReasonCode          string
	ReasonRef           string
	CourseOfTherapy     string
	DosageText          string
	DosageTiming        string
	DosageRoute         string
	DosageMethod        string
	DosageDoseQuantity  string
	DosageDoseRangeLow  *float64
	DosageDoseRangeHigh *float64
	DispenseQuantity    *float64
	DispenseDaysSupply  *float64
	DispenseRepeats     *int
	SubstitutionAllowed *bool
	Note                string
	Provenance
}

// DiagnosticReportRecord is the flattened DiagnosticReport resource.
type DiagnosticReportRecord struct {
	ID                    string
	Status                string
	Category              string
	Code                  string
	CodeSystem            string
	CodeCode              string
	SubjectRef            string
	EncounterRef          string
	EffectiveDateTime     string
	EffectivePeriodStart  string
	EffectivePeriodEnd    string
	Issued                string
	PerformerRef          string
	ResultsInterpreterRef string
	SpecimenRef           string
	ResultRefs            string
	ImagingStudyRef       string
	Media                 string
	Conclusion            string
	ConclusionCode        string
	PresentedFormTitle    string
	PresentedFormCreation string
	Provenance
}

// PractitionerRecord is the flattened Practitioner resource.
type PractitionerRecord struct {
	ID                string
	Active            *bool
	FamilyName        string
	GivenNames        string
	FullName          string
	Prefix            string
	Suffix            string
	NameUse           string
	Gender            string
	BirthDate         string
	Phone             string
	Email             string
	AddressFull       string
	AddressCity       string
	AddressState      string
	AddressPostalCode string
	AddressCountry    string
	Qualifications    string
	Communication     string
	Provenance
}

// OrganizationRecord is the flattened Organization resource.
type OrganizationRecord struct {
	ID                string
	Active            *bool
	Name              string
	Alias             string
	Type              string
	Phone             string
	Email             string
	Website           string
	Fax               string
	AddressFull       string
	AddressCity       string
	AddressState      string
	AddressPostalCode string
	AddressCountry    string
	PartOfRef         string
	Contacts          string
	EndpointRef       string
	Provenance
}

// LocationRecord is the flattened Location resource.
type LocationRecord struct {
	ID                      string
	Status                  string
	OperationalStatus       string
	Name                    string
	Alias                   string
	Description             string
	Mode                    string
	Type                    string
	Phone                   string
	Email                   string
	Website                 string
	AddressFull             string
	AddressCity             string
	AddressState            string
	AddressPostalCode       string
	AddressCountry          string
	PhysicalType            string
	Longitude               *float64
	Latitude                *float64
	Altitude                *float64
	ManagingOrganizationRef string
	PartOfRef               string
	AvailabilityExceptions  string
	Provenance
}

// MedicationRecord is the flattened Medication resource.
type MedicationRecord struct {
	ID                     string
	Status                 string
	Code                   string
	CodeSystem             string
	CodeCode               string
	ManufacturerRef        string
	Form                   string
	AmountNumeratorValue   *float64
	AmountNumeratorUnit    string
	AmountDenominatorValue *float64
	AmountDenominatorUnit  string
	Ingredients            string
	BatchLotNumber         string
	BatchExpirationDate    string
	Provenance
}

// AllergyIntoleranceRecord is the flattened AllergyIntolerance resource.
type AllergyIntoleranceRecord struct {
	ID                 string
	ClinicalStatus     string
	VerificationStatus string
	AssertedDate       string
	Type               string
	Category           string
	Criticality        string
	Code               string
	CodeSystem         string
	CodeCode           string
	PatientRef         string
	EncounterRef       string
	OnsetDateTime      string
	OnsetPeriodStart   string
	OnsetPeriodEnd     string
	OnsetAge           string
	OnsetRangeLow      *float64
	OnsetRangeHigh     *float64
	OnsetString        string
	RecordedDate       string
	RecorderRef        string
	AsserterRef        string
	LastOccurrence     string
	Note               string
	Reactions          string
	Provenance
}

// ImmunizationRecord is the flattened Immunization resource.
type ImmunizationRecord struct {
	ID                 string
	Date               string
	Status             string
	StatusReason       string
	VaccineCode        string
	VaccineCodeSystem  string
	VaccineCodeCode    string
	PatientRef         string
	EncounterRef       string
	OccurrenceDateTime string
	OccurrenceString   string
	Recorded           string
	PrimarySource      *bool
	ReportOrigin       string
	LocationRef        string
	ManufacturerRef    string
	LotNumber          string
	ExpirationDate     string
	Site               string
	Route              string
	DoseQuantityValue  *float64
	DoseQuantityUnit   string
	Performers         string
	ReasonCode         string
	ReasonRef          string
	IsSubpotent        *bool
	SubpotentReason    string
	ProgramEligibility string
	FundingSource      string
	Reactions          string
	Protocols          string
	Note               string
	Provenance
}

// CarePlanRecord is the flattened CarePlan resource.
type CarePlanRecord struct {
	ID             string
	Status         string
	Intent         string
	Category       string
	Title          string
	Description    string
	SubjectRef     string
	EncounterRef   string
	PeriodStart    string
	PeriodEnd      string
	Created        string
	AuthorRef      string
	ContributorRef string
	CareTeam       string
	Addresses      string
	SupportingInfo string
	Goals          string
	Activities     string
	Note           string
	Provenance
}
