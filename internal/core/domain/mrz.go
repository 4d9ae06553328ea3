package domain

import (
	"fmt"
	"strings"
)

// TD3LineLength is the fixed width of each machine-readable zone line on a
// passport-format (TD3) travel document per ICAO 9303.
const TD3LineLength = 44

// MRZ is the decoded machine-readable zone of a TD3 travel document.
// Immutable once parsed; checksum validation reads the raw lines.
type MRZ struct {
	DocumentTypeCode string `json:"document_type_code"` // 2 chars, e.g. "P<", "PD"
	IssuingStateCode string `json:"issuing_state_code"`
	Surname          string `json:"surname"`
	GivenNames       string `json:"given_names"`
	DocumentNumber   string `json:"document_number"`
	NationalityCode  string `json:"nationality_code"`
	DateOfBirth      string `json:"date_of_birth"` // ISO YYYY-MM-DD, empty if unparseable
	Sex              string `json:"sex"`           // M, F or <
	DateOfExpiry     string `json:"date_of_expiry"`
	OptionalData     string `json:"optional_data"`

	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
}

// ChecksumResult reports the validity of the embedded MRZ check digits.
type ChecksumResult struct {
	Available bool            `json:"available"`
	Valid     map[string]bool `json:"valid,omitempty"`
	AllValid  bool            `json:"all_valid"`
}

// Checksum field keys. FieldDocumentNumber and friends double as reconciled
// field names; the optional-data and composite digits have no VIZ
// counterpart.
const (
	ChecksumOptionalData = "optional_data"
	ChecksumComposite    = "composite"
)

// ParseTD3 decodes a two-line TD3 MRZ. It returns ErrMalformedMRZ when a
// line has the wrong length or the name field lacks the "<<" separator;
// it never returns a partially filled record.
func ParseTD3(line1, line2 string) (*MRZ, error) {
	line1 = strings.ToUpper(strings.TrimSpace(line1))
	line2 = strings.ToUpper(strings.TrimSpace(line2))

	if len(line1) != TD3LineLength || len(line2) != TD3LineLength {
		return nil, fmt.Errorf("%w: expected two %d-character lines, got %d and %d",
			ErrMalformedMRZ, TD3LineLength, len(line1), len(line2))
	}

	nameField := line1[5:]
	sep := strings.Index(nameField, "<<")
	if sep < 0 {
		return nil, fmt.Errorf("%w: name field missing surname separator", ErrMalformedMRZ)
	}

	m := &MRZ{
		DocumentTypeCode: line1[0:2],
		IssuingStateCode: strings.Trim(line1[2:5], "<"),
		Surname:          fillerToSpace(nameField[:sep]),
		GivenNames:       fillerToSpace(nameField[sep+2:]),
		DocumentNumber:   strings.TrimRight(line2[0:9], "<"),
		NationalityCode:  strings.Trim(line2[10:13], "<"),
		Sex:              line2[20:21],
		OptionalData:     strings.TrimRight(line2[28:42], "<"),
		Line1:            line1,
		Line2:            line2,
	}
	m.DateOfBirth, _ = MRZDateToISO(line2[13:19])
	m.DateOfExpiry, _ = MRZDateToISO(line2[21:27])

	return m, nil
}

// Checksums recomputes the check digits over the raw second line and
// compares them with the embedded ones. The composite digit covers the
// document number, birth date and expiry date fields including their own
// check digits, plus the optional data field.
func (m *MRZ) Checksums() ChecksumResult {
	if m == nil || len(m.Line2) != TD3LineLength {
		return ChecksumResult{Available: false}
	}

	line2 := m.Line2
	composite := line2[0:10] + line2[13:20] + line2[21:43]

	valid := map[string]bool{
		FieldDocumentNumber:  checkDigitMatches(line2[0:9], line2[9]),
		FieldDateOfBirth:     checkDigitMatches(line2[13:19], line2[19]),
		FieldDateOfExpiry:    checkDigitMatches(line2[21:27], line2[27]),
		ChecksumOptionalData: checkDigitMatches(line2[28:42], line2[42]),
		ChecksumComposite:    checkDigitMatches(composite, line2[43]),
	}

	result := ChecksumResult{Available: true, Valid: valid, AllValid: true}
	for _, ok := range valid {
		if !ok {
			result.AllValid = false
		}
	}
	return result
}

// CheckDigit computes the ICAO 9303 check digit for a field: character
// values (0-9 as-is, A-Z as 10-35, filler as 0) weighted by the repeating
// 7-3-1 cycle, summed modulo 10.
func CheckDigit(field string) int {
	weights := [3]int{7, 3, 1}
	sum := 0
	for i := 0; i < len(field); i++ {
		sum += charValue(field[i]) * weights[i%3]
	}
	return sum % 10
}

// MRZDateToISO converts a YYMMDD date to ISO YYYY-MM-DD. Two-digit years at
// or below 30 map to 2000+, all others to 1900+. The cutoff misreads birth
// years before 1931; it is kept as a tunable policy decision, not corrected
// here.
func MRZDateToISO(yymmdd string) (string, bool) {
	if len(yymmdd) != 6 {
		return "", false
	}
	for i := 0; i < 6; i++ {
		if yymmdd[i] < '0' || yymmdd[i] > '9' {
			return "", false
		}
	}

	yy := int(yymmdd[0]-'0')*10 + int(yymmdd[1]-'0')
	month := int(yymmdd[2]-'0')*10 + int(yymmdd[3]-'0')
	day := int(yymmdd[4]-'0')*10 + int(yymmdd[5]-'0')
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}

	century := 1900
	if yy <= 30 {
		century = 2000
	}
	return fmt.Sprintf("%04d-%s-%s", century+yy, yymmdd[2:4], yymmdd[4:6]), true
}

func checkDigitMatches(field string, declared byte) bool {
	expected := 0
	switch {
	case declared >= '0' && declared <= '9':
		expected = int(declared - '0')
	case declared == '<':
		expected = 0
	default:
		return false
	}
	return CheckDigit(field) == expected
}

func charValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default: // filler and OCR noise
		return 0
	}
}

func fillerToSpace(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "<", " "))
}
