package services

import (
	"fmt"
	"log/slog"

	"github.com/consular-labs/dossier-core/internal/core/domain"
	"github.com/consular-labs/dossier-core/internal/core/ports/driving"
)

// Ensure dossierService implements DossierService
var _ driving.DossierService = (*dossierService)(nil)

// dossierService runs the full analysis pipeline: reconcile, classify,
// evaluate, then cross-validate the document set.
type dossierService struct {
	passports   driving.PassportService
	classifier  driving.ClassifierService
	eligibility driving.EligibilityService
	coherence   driving.CoherenceService
	logger      *slog.Logger
}

// NewDossierService creates a new DossierService
func NewDossierService(
	passports driving.PassportService,
	classifier driving.ClassifierService,
	eligibility driving.EligibilityService,
	coherence driving.CoherenceService,
	logger *slog.Logger,
) driving.DossierService {
	return &dossierService{
		passports:   passports,
		classifier:  classifier,
		eligibility: eligibility,
		coherence:   coherence,
		logger:      logger,
	}
}

// Analyze processes one application file end to end.
func (s *dossierService) Analyze(set driving.ExtractionSet) (*driving.DossierReport, error) {
	docSet := &domain.DocumentSet{
		Ticket:      set.Ticket,
		Hotel:       set.Hotel,
		Vaccination: set.Vaccination,
		Invitation:  set.Invitation,
		VerbalNote:  set.VerbalNote,
	}

	report := &driving.DossierReport{}

	if set.Passport != nil {
		reconciliation := s.passports.Reconcile(*set.Passport)
		report.Reconciliation = reconciliation

		record := &domain.PassportRecord{Fields: reconciliation.Fields}
		if reconciliation.MRZ != nil {
			record.TypeCode = reconciliation.MRZ.DocumentTypeCode
			record.IssuingStateCode = reconciliation.MRZ.IssuingStateCode
		}
		report.Passport = record
		docSet.Passport = record

		report.Classification = s.classifier.Classify(record)
		report.Eligibility = s.eligibility.Evaluate(report.Classification, record.Fields)

		s.logger.Info("passport analyzed",
			"mrz_available", reconciliation.MRZAvailable,
			"self_healed", len(reconciliation.SelfHealed),
			"category", report.Classification.Category,
			"subcategory", report.Classification.Subcategory,
			"decision", report.Eligibility.Decision,
		)
	}

	if docSet.Count() == 0 {
		return nil, fmt.Errorf("%w: extraction set contains no document", domain.ErrMissingDocument)
	}

	report.Coherence = s.coherence.Validate(docSet)
	s.logger.Info("dossier validated",
		"documents", docSet.Count(),
		"issues", report.Coherence.Summary.Total,
		"score", report.Coherence.Score,
		"ready_for_submission", report.Coherence.Summary.ReadyForSubmission,
	)

	return report, nil
}
