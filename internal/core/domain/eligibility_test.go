package domain

import "testing"

func TestDefaultEligibilityMatrix(t *testing.T) {
	matrix := DefaultEligibilityMatrix()

	tests := []struct {
		name        string
		category    Category
		subcategory Subcategory
		decision    Decision
		workflow    string
		verbalNote  bool
	}{
		{"ordinary passport", CategoryPassport, SubcategoryOrdinary, DecisionEligible, WorkflowStandard, false},
		{"diplomatic passport", CategoryPassport, SubcategoryDiplomatic, DecisionEligible, WorkflowPriority, true},
		{"service passport", CategoryPassport, SubcategoryService, DecisionEligible, WorkflowPriority, true},
		{"laissez-passer", CategoryLaissezPasser, SubcategoryInternational, DecisionIneligible, WorkflowNotEligible, false},
		{"refugee document", CategoryTravelDocument, SubcategoryRefugee, DecisionManualReview, WorkflowManualReview, false},
		{"stateless document", CategoryTravelDocument, SubcategoryStateless, DecisionManualReview, WorkflowManualReview, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := matrix[EligibilityKey{tt.category, tt.subcategory}]
			if !ok {
				t.Fatal("expected a matrix entry")
			}
			if rule.Decision != tt.decision {
				t.Errorf("expected decision %s, got %s", tt.decision, rule.Decision)
			}
			if rule.Workflow != tt.workflow {
				t.Errorf("expected workflow %s, got %s", tt.workflow, rule.Workflow)
			}
			if rule.RequiresVerbalNote != tt.verbalNote {
				t.Errorf("expected requires_verbal_note = %v", tt.verbalNote)
			}
			if rule.Reason.Fr == "" || rule.Reason.En == "" {
				t.Error("expected both localized reasons to be set")
			}
		})
	}
}

func TestDefaultChecklist(t *testing.T) {
	checklist := DefaultChecklist()
	if len(checklist) != 10 {
		t.Fatalf("expected 10 checklist fields, got %d", len(checklist))
	}

	critical := map[string]bool{}
	for _, item := range checklist {
		critical[item.Name] = item.Critical
	}
	for _, name := range []string{FieldNationality, FieldDateOfBirth, FieldSurname, FieldGivenNames, FieldDocumentNumber, FieldDateOfExpiry} {
		if !critical[name] {
			t.Errorf("expected %s to be critical", name)
		}
	}
	for _, name := range []string{FieldPlaceOfBirth, FieldDateOfIssue, FieldIssuingAuthority, FieldSex} {
		if critical[name] {
			t.Errorf("expected %s to be non-critical", name)
		}
	}
}

func TestDefaultOrganizations(t *testing.T) {
	orgs := DefaultOrganizations()

	if name, ok := orgs.Lookup("UNO"); !ok || name != "United Nations" {
		t.Errorf("expected UNO to resolve to United Nations, got %q", name)
	}
	if _, ok := orgs.Lookup("FRA"); ok {
		t.Error("expected a state code to be absent from the organization table")
	}
}
