package domain

import "regexp"

// Tracked passport field names. Shared by the MRZ decoder, the reconciler
// and the completeness checklist.
const (
	FieldDocumentNumber   = "document_number"
	FieldDateOfBirth      = "date_of_birth"
	FieldDateOfExpiry     = "date_of_expiry"
	FieldSex              = "sex"
	FieldNationality      = "nationality"
	FieldSurname          = "surname"
	FieldGivenNames       = "given_names"
	FieldPlaceOfBirth     = "place_of_birth"
	FieldPlaceOfIssue     = "place_of_issue"
	FieldDateOfIssue      = "date_of_issue"
	FieldIssuingAuthority = "issuing_authority"
)

// Reconciliation sources, recorded per field for audit.
const (
	SourceMRZChecksumValid  = "mrz_checksum_valid"
	SourceMRZChecksumFailed = "mrz_checksum_failed"
	SourceVIZSelfHealing    = "viz_self_healing"
	SourceVIZPriority       = "viz_priority"
	SourceVIZExclusive      = "viz_exclusive"
	SourceMRZFallback       = "mrz_fallback"
	SourceVIZFallback       = "viz_fallback"
)

// FieldPriority selects which extraction zone wins for a field.
type FieldPriority string

const (
	PriorityMRZ     FieldPriority = "mrz"      // MRZ wins while its checksum holds
	PriorityVIZ     FieldPriority = "viz"      // VIZ wins (names keep their accents)
	PriorityVIZOnly FieldPriority = "viz_only" // field never appears in the MRZ
)

// FieldRule is one row of the reconciliation decision table: which zone is
// trusted for the field, which checksum guards the MRZ value, and what a VIZ
// replacement must look like before it may heal a failed checksum.
type FieldRule struct {
	Name          string
	Priority      FieldPriority
	ChecksumField string         // empty when no check digit guards the field
	Plausible     *regexp.Regexp // nil accepts any non-empty value
	Kind          FieldKind
}

// FieldKind drives value normalization when comparing MRZ against VIZ.
type FieldKind string

const (
	KindText           FieldKind = "text"
	KindName           FieldKind = "name"
	KindDate           FieldKind = "date"
	KindSex            FieldKind = "sex"
	KindDocumentNumber FieldKind = "document_number"
)

var (
	plausibleDocumentNumber = regexp.MustCompile(`^[A-Za-z0-9]{6,12}$`)
	plausibleDate           = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{4})$`)
	plausibleNationality    = regexp.MustCompile(`^[A-Za-z]{3}$`)
	plausibleSex            = regexp.MustCompile(`^[MFmf<]$`)
)

// DefaultFieldRules builds the reconciliation table: MRZ-priority for the
// machine-verified identity fields, VIZ-priority for names, VIZ-only for
// fields absent from the TD3 layout. The returned slice is owned by the
// caller and treated as read-only by the reconciler.
func DefaultFieldRules() []FieldRule {
	return []FieldRule{
		{Name: FieldDocumentNumber, Priority: PriorityMRZ, ChecksumField: FieldDocumentNumber, Plausible: plausibleDocumentNumber, Kind: KindDocumentNumber},
		{Name: FieldDateOfBirth, Priority: PriorityMRZ, ChecksumField: FieldDateOfBirth, Plausible: plausibleDate, Kind: KindDate},
		{Name: FieldDateOfExpiry, Priority: PriorityMRZ, ChecksumField: FieldDateOfExpiry, Plausible: plausibleDate, Kind: KindDate},
		{Name: FieldSex, Priority: PriorityMRZ, Plausible: plausibleSex, Kind: KindSex},
		{Name: FieldNationality, Priority: PriorityMRZ, Plausible: plausibleNationality, Kind: KindText},
		{Name: FieldSurname, Priority: PriorityVIZ, Kind: KindName},
		{Name: FieldGivenNames, Priority: PriorityVIZ, Kind: KindName},
		{Name: FieldPlaceOfBirth, Priority: PriorityVIZOnly, Kind: KindText},
		{Name: FieldPlaceOfIssue, Priority: PriorityVIZOnly, Kind: KindText},
		{Name: FieldDateOfIssue, Priority: PriorityVIZOnly, Kind: KindDate},
		{Name: FieldIssuingAuthority, Priority: PriorityVIZOnly, Kind: KindText},
	}
}

// ReconciledField is the merged value for one tracked field.
type ReconciledField struct {
	Value         string  `json:"value"`
	Confidence    float64 `json:"confidence"`
	Source        string  `json:"source"`
	ChecksumValid bool    `json:"checksum_valid"`
	SelfHealing   bool    `json:"self_healing"`
}

// ReconciledFields maps tracked field names to their merged values.
type ReconciledFields map[string]ReconciledField

// Value returns the merged value for a field, or "" when absent.
func (f ReconciledFields) Value(name string) string {
	return f[name].Value
}

// Discrepancy records a field whose MRZ and VIZ values disagree after
// normalization.
type Discrepancy struct {
	Field string `json:"field"`
	MRZ   string `json:"mrz"`
	VIZ   string `json:"viz"`
}

// ReconciliationResult is the full outcome of merging one passport's MRZ
// and VIZ extractions.
type ReconciliationResult struct {
	Fields        ReconciledFields `json:"fields"`
	Discrepancies []Discrepancy    `json:"discrepancies,omitempty"`
	SelfHealed    []string         `json:"self_healed,omitempty"`
	MRZAvailable  bool             `json:"mrz_available"`
	Checksums     ChecksumResult   `json:"checksums"`
	MRZ           *MRZ             `json:"mrz,omitempty"`
}

// FullName joins the reconciled surname and given names.
func (r *ReconciliationResult) FullName() string {
	surname := r.Fields.Value(FieldSurname)
	given := r.Fields.Value(FieldGivenNames)
	switch {
	case surname == "":
		return given
	case given == "":
		return surname
	default:
		return surname + " " + given
	}
}
