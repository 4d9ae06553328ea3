package services

import (
	"github.com/consular-labs/dossier-core/internal/core/domain"
	"github.com/consular-labs/dossier-core/internal/core/ports/driving"
)

// Ensure eligibilityService implements EligibilityService
var _ driving.EligibilityService = (*eligibilityService)(nil)

// eligibilityService decides visa eligibility from the static matrix and
// scores field completeness for documents that cannot proceed.
type eligibilityService struct {
	matrix       domain.EligibilityMatrix
	checklist    []domain.ChecklistField
	alternatives []domain.Alternative
}

// NewEligibilityService creates a new EligibilityService using the default
// matrix, checklist and alternative-document tables.
func NewEligibilityService() driving.EligibilityService {
	return &eligibilityService{
		matrix:       domain.DefaultEligibilityMatrix(),
		checklist:    domain.DefaultChecklist(),
		alternatives: domain.DefaultAlternatives(),
	}
}

// Evaluate looks the classification up in the eligibility matrix. Classes
// absent from the matrix go to manual review rather than being rejected.
func (s *eligibilityService) Evaluate(classification *domain.Classification, fields domain.ReconciledFields) *domain.Eligibility {
	if classification == nil {
		classification = &domain.Classification{
			Category:    domain.CategoryUnknown,
			Subcategory: domain.SubcategoryUnknown,
		}
	}

	rule, found := s.matrix[domain.EligibilityKey{
		Category:    classification.Category,
		Subcategory: classification.Subcategory,
	}]
	if !found {
		rule = domain.EligibilityRule{
			Decision: domain.DecisionManualReview,
			Workflow: domain.WorkflowManualReview,
			Reason: domain.Localized{
				Fr: "Type de document non reconnu - Une évaluation manuelle est nécessaire.",
				En: "Unrecognized document type - Manual review required.",
			},
		}
	}

	e := &domain.Eligibility{
		Decision:           rule.Decision,
		IsValid:            rule.Decision == domain.DecisionEligible,
		Reason:             rule.Reason,
		Workflow:           rule.Workflow,
		Fees:               rule.Fees,
		ProcessingTime:     rule.ProcessingTime,
		RequiresVerbalNote: rule.RequiresVerbalNote,
	}

	if !e.IsValid {
		e.Completeness = s.completeness(classification, fields)
		if rule.Decision == domain.DecisionIneligible {
			e.Alternatives = s.alternatives
		}
	}

	return e
}

// completeness scores the checklist fields and explains the refusal in
// terms of what the document does and does not establish.
func (s *eligibilityService) completeness(classification *domain.Classification, fields domain.ReconciledFields) *domain.CompletenessReport {
	report := &domain.CompletenessReport{TotalFields: len(s.checklist)}

	for _, item := range s.checklist {
		if fields.Value(item.Name) != "" {
			report.PresentCount++
			continue
		}
		report.Missing = append(report.Missing, domain.MissingField{
			Field:       item.Name,
			Label:       item.Label,
			Critical:    item.Critical,
			Explanation: item.Explanation,
		})
		if item.Critical {
			report.CriticalMissing = append(report.CriticalMissing, item.Name)
		}
	}

	if report.TotalFields > 0 {
		report.Score = report.PresentCount * 100 / report.TotalFields
	}
	report.Summary = completenessSummary(classification)
	return report
}

// completenessSummary picks the refusal explanation by scenario: an
// identifiable state nationality, an organization-only identity, or the
// general case.
func completenessSummary(c *domain.Classification) domain.Localized {
	switch {
	case c.HasStateNationality:
		return domain.Localized{
			Fr: "Votre nationalité (" + c.DetectedNationalityCode + ") est identifiable, mais ce document ne remplace pas un passeport national. Un passeport de votre pays de nationalité reste requis.",
			En: "Your nationality (" + c.DetectedNationalityCode + ") is identifiable, but this document does not replace a national passport. A passport from your country of nationality is still required.",
		}
	case c.IssuingOrganizationCode != "":
		return domain.Localized{
			Fr: "Ce document est émis par " + c.IssuingOrganization + " et ne porte aucune identité étatique. Il ne peut pas servir de base à une demande de visa.",
			En: "This document is issued by " + c.IssuingOrganization + " and carries no state identity. It cannot support a visa application.",
		}
	default:
		return domain.Localized{
			Fr: "Les laissez-passer et titres de voyage ne sont pas acceptés pour une demande de visa, quel que soit leur degré de complétude.",
			En: "Laissez-passer and travel documents are not accepted for visa applications, regardless of how complete they are.",
		}
	}
}
