package fhir

import (
	"strconv"
	"strings"
)

// SyntheaSystem is the identifier authority URI that marks a patient's
// source-system business UUID.
const SyntheaSystem = "https://github.com/synthetichealth/synthea"

// ssnMarker appears in the system URI of US social security identifiers.
const ssnMarker = "us-ssn"

// ConceptText extracts a display string from a CodeableConcept. Preference
// order: the concept's free text, the first coding's display, the first
// coding's code. Returns "" when nothing usable is present.
func ConceptText(cc *CodeableConcept) string {
	if cc == nil {
		return ""
	}
	if cc.Text != "" {
		return cc.Text
	}
	for _, coding := range cc.Coding {
		if coding.Display != "" {
			return coding.Display
		}
		if coding.Code != "" {
			return coding.Code
		}
	}
	return ""
}

// CodingDetail carries the first coding of a concept plus its free text.
// All fields are independently optional.
type CodingDetail struct {
	System  string
	Code    string
	Display string
	Text    string
}

// CodingDetails extracts the first coding entry of a CodeableConcept.
func CodingDetails(cc *CodeableConcept) CodingDetail {
	var d CodingDetail
	if cc == nil {
		return d
	}
	d.Text = cc.Text
	if len(cc.Coding) > 0 {
		d.System = cc.Coding[0].System
		d.Code = cc.Coding[0].Code
		d.Display = cc.Coding[0].Display
	}
	return d
}

// Name is a flattened HumanName.
type Name struct {
	Family   string
	Given    []string
	Prefix   []string
	Suffix   []string
	Use      string
	FullName string
}

// DecodeHumanName selects the first name whose use is "official" or "usual",
// falling back to the first entry. The full name joins prefix, given, family
// and suffix tokens with spaces, skipping absent groups.
func DecodeHumanName(names []HumanName) Name {
	var out Name
	if len(names) == 0 {
		return out
	}

	selected := names[0]
	for _, n := range names {
		use := strings.ToLower(n.Use)
		if use == "official" || use == "usual" {
			selected = n
			break
		}
	}

	out.Family = selected.Family
	out.Given = selected.Given
	out.Prefix = selected.Prefix
	out.Suffix = selected.Suffix
	out.Use = selected.Use

	var parts []string
	parts = append(parts, selected.Prefix...)
	parts = append(parts, selected.Given...)
	if selected.Family != "" {
		parts = append(parts, selected.Family)
	}
	parts = append(parts, selected.Suffix...)
	out.FullName = strings.Join(parts, " ")
	return out
}

// OtherContact is a telecom entry whose system is not one of the recognized
// buckets; it keeps the original system tag.
type OtherContact struct {
	System string
	Value  string
}

// Telecom groups contact points by their declared system.
type Telecom struct {
	Phone []string
	Email []string
	Fax   []string
	URL   []string
	Other []OtherContact
}

// DecodeTelecom groups a telecom list by system. Entries without a value are
// dropped; unrecognized systems land in the Other bucket.
func DecodeTelecom(points []ContactPoint) Telecom {
	var t Telecom
	for _, p := range points {
		if p.Value == "" {
			continue
		}
		switch strings.ToLower(p.System) {
		case "phone":
			t.Phone = append(t.Phone, p.Value)
		case "email":
			t.Email = append(t.Email, p.Value)
		case "fax":
			t.Fax = append(t.Fax, p.Value)
		case "url":
			t.URL = append(t.URL, p.Value)
		default:
			t.Other = append(t.Other, OtherContact{System: p.System, Value: p.Value})
		}
	}
	return t
}

// TelecomValue returns the first value for the requested system, or "".
func TelecomValue(points []ContactPoint, system string) string {
	t := DecodeTelecom(points)
	var bucket []string
	switch strings.ToLower(system) {
	case "phone":
		bucket = t.Phone
	case "email":
		bucket = t.Email
	case "fax":
		bucket = t.Fax
	case "url":
		bucket = t.URL
	}
	if len(bucket) == 0 {
		return ""
	}
	return bucket[0]
}

// AddressDetail is a flattened Address.
type AddressDetail struct {
	Line       []string
	City       string
	District   string
	State      string
	PostalCode string
	Country    string
	Use        string
	Full       string
}

// DecodeAddress selects the first address tagged "home" or "work", falling
// back to the first entry. The full address joins line(s), city, district,
// state, postal code and country with commas, omitting absent parts.
func DecodeAddress(addrs []Address) AddressDetail {
	var out AddressDetail
	if len(addrs) == 0 {
		return out
	}

	selected := addrs[0]
	for _, a := range addrs {
		use := strings.ToLower(a.Use)
		if use == "home" || use == "work" {
			selected = a
			break
		}
	}

	out.Line = selected.Line
	out.City = selected.City
	out.District = selected.District
	out.State = selected.State
	out.PostalCode = selected.PostalCode
	out.Country = selected.Country
	out.Use = selected.Use

	var parts []string
	parts = append(parts, selected.Line...)
	for _, p := range []string{selected.City, selected.District, selected.State, selected.PostalCode, selected.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	out.Full = strings.Join(parts, ", ")
	return out
}

// IdentifierDetail is one raw identifier entry with its classified type code.
type IdentifierDetail struct {
	System   string
	TypeCode string
	Value    string
}

// Identifiers carries the classified identifiers of a resource. Every entry,
// classified or not, also appears in All.
type Identifiers struct {
	MRN           string
	UUID          string
	SSN           string
	DriverLicense string
	Passport      string
	All           []IdentifierDetail
}

// DecodeIdentifiers classifies an identifier list. Type code "MR" maps to the
// medical record number, the synthea authority system to the business UUID,
// type "SB" or a system containing the us-ssn marker to the SSN, "DL" to the
// driver license and "PPN" to the passport number.
func DecodeIdentifiers(ids []Identifier) Identifiers {
	var out Identifiers
	for _, ident := range ids {
		var typeCode string
		if ident.Type != nil && len(ident.Type.Coding) > 0 {
			typeCode = ident.Type.Coding[0].Code
		}

		switch {
		case typeCode == "MR":
			out.MRN = ident.Value
		case ident.System == SyntheaSystem:
			out.UUID = ident.Value
		case typeCode == "SB" || strings.Contains(ident.System, ssnMarker):
			out.SSN = ident.Value
		case typeCode == "DL":
			out.DriverLicense = ident.Value
		case typeCode == "PPN":
			out.Passport = ident.Value
		}

		out.All = append(out.All, IdentifierDetail{
			System:   ident.System,
			TypeCode: typeCode,
			Value:    ident.Value,
		})
	}
	return out
}

// ReferenceDetail is a flattened Reference.
type ReferenceDetail struct {
	Reference  string
	Display    string
	Type       string
	Identifier string
}

// DecodeReference is a null-safe passthrough of a Reference.
func DecodeReference(r *Reference) ReferenceDetail {
	var out ReferenceDetail
	if r == nil {
		return out
	}
	out.Reference = r.Reference
	out.Display = r.Display
	out.Type = r.Type
	if r.Identifier != nil {
		out.Identifier = r.Identifier.Value
	}
	return out
}

// DecodePeriod is a null-safe passthrough of a Period.
func DecodePeriod(p *Period) Period {
	if p == nil {
		return Period{}
	}
	return *p
}

// DecodeQuantity is a null-safe passthrough of a Quantity.
func DecodeQuantity(q *Quantity) Quantity {
	if q == nil {
		return Quantity{}
	}
	return *q
}

// QuantityText renders a quantity as "value unit", value-only when the unit
// is absent, "" when the value is absent.
func QuantityText(q *Quantity) string {
	if q == nil || q.Value == nil {
		return ""
	}
	v := FormatFloat(*q.Value)
	if q.Unit == "" {
		return v
	}
	return v + " " + q.Unit
}

// FormatFloat renders a float without trailing zeros.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// DosageDetail is the flattened first dosage instruction of a medication
// request.
type DosageDetail struct {
	Text          string
	Timing        string
	Route         string
	Method        string
	DoseQuantity  string
	DoseRangeLow  *float64
	DoseRangeHigh *float64
}

// DecodeDosage uses only the first dosage-instruction entry. The dose comes
// from the first dose-and-rate entry's quantity when present, otherwise from
// its range, never both.
func DecodeDosage(list []Dosage) DosageDetail {
	var out DosageDetail
	if len(list) == 0 {
		return out
	}
	d := list[0]

	out.Text = d.Text
	if d.Timing != nil {
		out.Timing = ConceptText(d.Timing.Code)
	}
	out.Route = ConceptText(d.Route)
	out.Method = ConceptText(d.Method)

	if len(d.DoseAndRate) == 0 {
		return out
	}
	dr := d.DoseAndRate[0]
	switch {
	case dr.DoseQuantity != nil:
		out.DoseQuantity = QuantityText(dr.DoseQuantity)
	case dr.DoseRange != nil:
		if dr.DoseRange.Low != nil {
			out.DoseRangeLow = dr.DoseRange.Low.Value
		}
		if dr.DoseRange.High != nil {
			out.DoseRangeHigh = dr.DoseRange.High.Value
		}
	}
	return out
}
