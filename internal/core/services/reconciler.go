package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/consular-labs/dossier-core/internal/core/domain"
	"github.com/consular-labs/dossier-core/internal/core/ports/driving"
	"github.com/consular-labs/dossier-core/internal/names"
)

// Ensure passportService implements PassportService
var _ driving.PassportService = (*passportService)(nil)

// passportService decodes the MRZ and merges it with VIZ fields by
// walking the per-field decision table.
type passportService struct {
	rules []domain.FieldRule
}

// NewPassportService creates a new PassportService using the default
// field-priority table.
func NewPassportService() driving.PassportService {
	return &passportService{rules: domain.DefaultFieldRules()}
}

// DecodeMRZ parses the two TD3 lines and verifies their check digits
func (s *passportService) DecodeMRZ(line1, line2 string) (*domain.MRZ, domain.ChecksumResult, error) {
	mrz, err := domain.ParseTD3(line1, line2)
	if err != nil {
		return nil, domain.ChecksumResult{}, err
	}
	return mrz, mrz.Checksums(), nil
}

// Reconcile merges MRZ and VIZ values field by field. A malformed MRZ is
// not an error here: the result degrades to VIZ-only values.
func (s *passportService) Reconcile(extraction domain.PassportExtraction) *domain.ReconciliationResult {
	result := &domain.ReconciliationResult{Fields: domain.ReconciledFields{}}

	if extraction.HasMRZ() {
		if mrz, err := domain.ParseTD3(extraction.MRZLine1, extraction.MRZLine2); err == nil {
			result.MRZ = mrz
			result.MRZAvailable = true
			result.Checksums = mrz.Checksums()
		}
	}

	for _, rule := range s.rules {
		mrzValue := mrzFieldValue(result.MRZ, rule.Name)
		vizValue := extraction.VIZValue(rule.Name)

		field, ok := s.resolve(rule, mrzValue, vizValue, result)
		if !ok {
			continue
		}
		result.Fields[rule.Name] = field

		if field.SelfHealing {
			result.SelfHealed = append(result.SelfHealed, rule.Name)
		}
		if mrzValue != "" && vizValue != "" &&
			normalizeForKind(rule.Kind, mrzValue) != normalizeForKind(rule.Kind, vizValue) {
			result.Discrepancies = append(result.Discrepancies, domain.Discrepancy{
				Field: rule.Name, MRZ: mrzValue, VIZ: vizValue,
			})
		}
	}

	return result
}

// resolve applies one decision-table row. The second return value is false
// when neither zone has a value for the field.
func (s *passportService) resolve(rule domain.FieldRule, mrzValue, vizValue string, r *domain.ReconciliationResult) (domain.ReconciledField, bool) {
	switch rule.Priority {
	case domain.PriorityMRZ:
		if mrzValue != "" {
			checksumOK := rule.ChecksumField == "" || r.Checksums.Valid[rule.ChecksumField]
			if checksumOK {
				return domain.ReconciledField{
					Value:         storageValue(rule.Kind, mrzValue),
					Confidence:    0.99,
					Source:        domain.SourceMRZChecksumValid,
					ChecksumValid: true,
				}, true
			}
			if vizValue != "" && plausible(rule, vizValue) {
				return domain.ReconciledField{
					Value:       storageValue(rule.Kind, vizValue),
					Confidence:  0.85,
					Source:      domain.SourceVIZSelfHealing,
					SelfHealing: true,
				}, true
			}
			return domain.ReconciledField{
				Value:      storageValue(rule.Kind, mrzValue),
				Confidence: 0.70,
				Source:     domain.SourceMRZChecksumFailed,
			}, true
		}
		if vizValue != "" {
			return domain.ReconciledField{
				Value:      storageValue(rule.Kind, vizValue),
				Confidence: 0.75,
				Source:     domain.SourceVIZFallback,
			}, true
		}

	case domain.PriorityVIZ:
		if vizValue != "" {
			confidence := 0.90
			if mrzValue != "" &&
				normalizeForKind(rule.Kind, mrzValue) == normalizeForKind(rule.Kind, vizValue) {
				confidence = 0.97
			}
			return domain.ReconciledField{
				Value:      storageValue(rule.Kind, vizValue),
				Confidence: confidence,
				Source:     domain.SourceVIZPriority,
			}, true
		}
		if mrzValue != "" {
			return domain.ReconciledField{
				Value:      storageValue(rule.Kind, mrzValue),
				Confidence: 0.80,
				Source:     domain.SourceMRZFallback,
			}, true
		}

	case domain.PriorityVIZOnly:
		if vizValue != "" {
			return domain.ReconciledField{
				Value:      storageValue(rule.Kind, vizValue),
				Confidence: 0.85,
				Source:     domain.SourceVIZExclusive,
			}, true
		}
	}

	return domain.ReconciledField{}, false
}

// plausible checks a VIZ replacement value against the rule's pattern
// before it may replace a checksum-failed MRZ value.
func plausible(rule domain.FieldRule, value string) bool {
	if rule.Plausible == nil {
		return value != ""
	}
	return rule.Plausible.MatchString(strings.TrimSpace(value))
}

func mrzFieldValue(m *domain.MRZ, field string) string {
	if m == nil {
		return ""
	}
	switch field {
	case domain.FieldDocumentNumber:
		return m.DocumentNumber
	case domain.FieldDateOfBirth:
		return m.DateOfBirth
	case domain.FieldDateOfExpiry:
		return m.DateOfExpiry
	case domain.FieldSex:
		return m.Sex
	case domain.FieldNationality:
		return m.NationalityCode
	case domain.FieldSurname:
		return m.Surname
	case domain.FieldGivenNames:
		return m.GivenNames
	default:
		return ""
	}
}

// normalizeForKind folds a value into a comparable form for discrepancy
// detection and VIZ-priority corroboration.
func normalizeForKind(kind domain.FieldKind, value string) string {
	value = strings.TrimSpace(value)
	switch kind {
	case domain.KindName:
		return names.Normalize(value)
	case domain.KindDate:
		if iso, ok := toISODate(value); ok {
			return iso
		}
		return value
	case domain.KindSex:
		if value == "" {
			return ""
		}
		return strings.ToUpper(value[:1])
	case domain.KindDocumentNumber:
		// VIZ extractions often carry grouping spaces or dashes that the
		// MRZ never has.
		value = strings.Map(func(r rune) rune {
			if r == '-' || unicode.IsSpace(r) {
				return -1
			}
			return r
		}, value)
		return strings.ToUpper(value)
	default:
		return strings.ToUpper(value)
	}
}

// storageValue is the value written into the reconciled field: dates fold
// to ISO, everything else keeps the extracted form.
func storageValue(kind domain.FieldKind, value string) string {
	value = strings.TrimSpace(value)
	if kind == domain.KindDate {
		if iso, ok := toISODate(value); ok {
			return iso
		}
	}
	return value
}

// toISODate accepts ISO YYYY-MM-DD as-is and converts DD/MM/YYYY.
func toISODate(value string) (string, bool) {
	if len(value) == 10 && value[4] == '-' && value[7] == '-' {
		return value, true
	}
	if len(value) == 10 && value[2] == '/' && value[5] == '/' {
		return fmt.Sprintf("%s-%s-%s", value[6:10], value[3:5], value[0:2]), true
	}
	return "", false
}
