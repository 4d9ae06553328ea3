package services

import (
	"testing"

	"github.com/consular-labs/dossier-core/internal/core/domain"
)

func passportRecord(typeCode string, fields map[string]string) *domain.PassportRecord {
	record := &domain.PassportRecord{TypeCode: typeCode, Fields: domain.ReconciledFields{}}
	for name, value := range fields {
		record.Fields[name] = domain.ReconciledField{Value: value, Confidence: 0.99}
	}
	return record
}

func TestClassifyByTypeCode(t *testing.T) {
	svc := NewClassifierService()

	tests := []struct {
		name        string
		typeCode    string
		category    domain.Category
		subcategory domain.Subcategory
		workflow    string
		valid       bool
	}{
		{"ordinary", "P<", domain.CategoryPassport, domain.SubcategoryOrdinary, domain.WorkflowStandard, true},
		{"diplomatic", "PD", domain.CategoryPassport, domain.SubcategoryDiplomatic, domain.WorkflowPriority, true},
		{"service", "PS", domain.CategoryPassport, domain.SubcategoryService, domain.WorkflowPriority, true},
		{"official", "PO", domain.CategoryPassport, domain.SubcategoryOfficial, domain.WorkflowStandard, true},
		{"laissez-passer", "PL", domain.CategoryLaissezPasser, domain.SubcategoryInternational, domain.WorkflowNotEligible, false},
		{"visa-type code", "V<", domain.CategoryLaissezPasser, domain.SubcategoryInternational, domain.WorkflowNotEligible, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := svc.Classify(passportRecord(tt.typeCode, map[string]string{
				domain.FieldNationality:    "FRA",
				domain.FieldDocumentNumber: "12AB34567",
			}))

			if c.Category != tt.category || c.Subcategory != tt.subcategory {
				t.Errorf("expected %s/%s, got %s/%s", tt.category, tt.subcategory, c.Category, c.Subcategory)
			}
			if c.Workflow != tt.workflow {
				t.Errorf("expected workflow %s, got %s", tt.workflow, c.Workflow)
			}
			if c.IsValidForVisa != tt.valid {
				t.Errorf("expected is_valid_for_visa = %v", tt.valid)
			}
			if c.Confidence != 0.99 {
				t.Errorf("expected deterministic confidence 0.99, got %v", c.Confidence)
			}
			if !c.HasStateNationality || c.DetectedNationalityCode != "FRA" {
				t.Error("expected the state nationality to be recorded")
			}
		})
	}
}

func TestClassifyNumberPatternUpgrade(t *testing.T) {
	svc := NewClassifierService()

	tests := []struct {
		name        string
		number      string
		subcategory domain.Subcategory
	}{
		{"diplomatic series", "21DD12345", domain.SubcategoryDiplomatic},
		{"diplomatic prefix", "D0123456", domain.SubcategoryDiplomatic},
		{"service series", "21SV12345", domain.SubcategoryService},
		{"service prefix", "SA123456", domain.SubcategoryService},
		{"plain series", "21AB12345", domain.SubcategoryOrdinary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := svc.Classify(passportRecord("P<", map[string]string{
				domain.FieldNationality:    "CIV",
				domain.FieldDocumentNumber: tt.number,
			}))
			if c.Subcategory != tt.subcategory {
				t.Errorf("expected subcategory %s, got %s", tt.subcategory, c.Subcategory)
			}
		})
	}
}

func TestClassifyNumberPatternNeverDowngrades(t *testing.T) {
	svc := NewClassifierService()

	// A diplomatic type code wins over a service-looking number.
	c := svc.Classify(passportRecord("PD", map[string]string{
		domain.FieldNationality:    "CIV",
		domain.FieldDocumentNumber: "21SV12345",
	}))
	if c.Subcategory != domain.SubcategoryDiplomatic {
		t.Errorf("expected the type code to stand, got %s", c.Subcategory)
	}
}

func TestClassifyOrganizationCodes(t *testing.T) {
	svc := NewClassifierService()

	tests := []struct {
		name        string
		nationality string
		category    domain.Category
		subcategory domain.Subcategory
		workflow    string
	}{
		{"united nations", "UNO", domain.CategoryLaissezPasser, domain.SubcategoryInternational, domain.WorkflowNotEligible},
		{"african union", "XAU", domain.CategoryLaissezPasser, domain.SubcategoryInternational, domain.WorkflowNotEligible},
		{"stateless", "XXA", domain.CategoryTravelDocument, domain.SubcategoryStateless, domain.WorkflowManualReview},
		{"refugee", "XXB", domain.CategoryTravelDocument, domain.SubcategoryRefugee, domain.WorkflowManualReview},
		{"refugee convention", "XXC", domain.CategoryTravelDocument, domain.SubcategoryRefugee, domain.WorkflowManualReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := svc.Classify(passportRecord("P<", map[string]string{
				domain.FieldNationality: tt.nationality,
			}))

			if c.Category != tt.category || c.Subcategory != tt.subcategory {
				t.Errorf("expected %s/%s, got %s/%s", tt.category, tt.subcategory, c.Category, c.Subcategory)
			}
			if c.Workflow != tt.workflow {
				t.Errorf("expected workflow %s, got %s", tt.workflow, c.Workflow)
			}
			if c.HasStateNationality {
				t.Error("expected has_state_nationality to be false")
			}
			if c.IssuingOrganizationCode != tt.nationality {
				t.Errorf("expected the organization code recorded, got %q", c.IssuingOrganizationCode)
			}
		})
	}
}

func TestClassifyOrganizationIssuer(t *testing.T) {
	svc := NewClassifierService()

	t.Run("organization issuer with state nationality", func(t *testing.T) {
		record := passportRecord("P<", map[string]string{
			domain.FieldNationality:    "FRA",
			domain.FieldDocumentNumber: "UN1234567",
		})
		record.IssuingStateCode = "UNO"

		c := svc.Classify(record)
		if c.Category != domain.CategoryLaissezPasser || c.Subcategory != domain.SubcategoryInternational {
			t.Errorf("expected laissez-passer/international, got %s/%s", c.Category, c.Subcategory)
		}
		if c.IsValidForVisa {
			t.Error("expected the document to be ineligible for a visa sticker")
		}
		if c.IssuingOrganizationCode != "UNO" || c.IssuingOrganization == "" {
			t.Errorf("expected the issuing organization recorded, got %q (%q)", c.IssuingOrganizationCode, c.IssuingOrganization)
		}
		if !c.HasStateNationality || c.DetectedNationalityCode != "FRA" {
			t.Error("expected the holder's state nationality to be kept")
		}
	})

	t.Run("stateless issuing code", func(t *testing.T) {
		record := passportRecord("P<", map[string]string{domain.FieldNationality: "XXA"})
		record.IssuingStateCode = "XXA"

		c := svc.Classify(record)
		if c.Category != domain.CategoryTravelDocument || c.Subcategory != domain.SubcategoryStateless {
			t.Errorf("expected travel document/stateless, got %s/%s", c.Category, c.Subcategory)
		}
	})

	t.Run("state issuer is left alone", func(t *testing.T) {
		record := passportRecord("P<", map[string]string{
			domain.FieldNationality:    "FRA",
			domain.FieldDocumentNumber: "12AB34567",
		})
		record.IssuingStateCode = "FRA"

		c := svc.Classify(record)
		if c.Category != domain.CategoryPassport || c.Subcategory != domain.SubcategoryOrdinary {
			t.Errorf("expected passport/ordinary, got %s/%s", c.Category, c.Subcategory)
		}
		if c.IssuingOrganizationCode != "" {
			t.Errorf("expected no organization code, got %q", c.IssuingOrganizationCode)
		}
	})
}

func TestClassifyKeywordFallback(t *testing.T) {
	svc := NewClassifierService()

	c := svc.Classify(passportRecord("", map[string]string{
		domain.FieldIssuingAuthority: "Ministère des Affaires Étrangères - Passeport Diplomatique",
		domain.FieldNationality:      "CIV",
	}))

	if c.Subcategory != domain.SubcategoryDiplomatic {
		t.Errorf("expected the diplomatic keyword to be detected, got %s", c.Subcategory)
	}
	if c.Confidence >= 0.99 {
		t.Errorf("expected degraded confidence without MRZ, got %v", c.Confidence)
	}
}

func TestClassifyUnknown(t *testing.T) {
	svc := NewClassifierService()

	c := svc.Classify(nil)
	if c.Category != domain.CategoryUnknown || c.Subcategory != domain.SubcategoryUnknown {
		t.Errorf("expected unknown/unknown, got %s/%s", c.Category, c.Subcategory)
	}
	if c.Workflow != domain.WorkflowManualReview {
		t.Errorf("expected manual review, got %s", c.Workflow)
	}
	if c.Confidence >= 0.5 {
		t.Errorf("expected low confidence, got %v", c.Confidence)
	}
}
