package driving

import (
	"github.com/consular-labs/dossier-core/internal/core/domain"
)

// ExtractionSet is the raw per-document extraction output for one
// application file, as produced by the upstream OCR pipeline.
type ExtractionSet struct {
	Passport    *domain.PassportExtraction `json:"passport,omitempty"`
	Ticket      *domain.TicketRecord       `json:"ticket,omitempty"`
	Hotel       *domain.HotelRecord        `json:"hotel,omitempty"`
	Vaccination *domain.VaccinationRecord  `json:"vaccination,omitempty"`
	Invitation  *domain.InvitationRecord   `json:"invitation,omitempty"`
	VerbalNote  *domain.VerbalNoteRecord   `json:"verbal_note,omitempty"`
}

// DossierReport is the full analysis of one application file.
type DossierReport struct {
	Passport       *domain.PassportRecord       `json:"passport,omitempty"`
	Reconciliation *domain.ReconciliationResult `json:"reconciliation,omitempty"`
	Classification *domain.Classification       `json:"classification,omitempty"`
	Eligibility    *domain.Eligibility          `json:"eligibility,omitempty"`
	Coherence      *domain.CoherenceReport      `json:"coherence"`
}

// DossierService runs the full analysis pipeline over an application file.
type DossierService interface {
	// Analyze reconciles, classifies and evaluates the passport when one
	// is present, then cross-validates the whole document set.
	// Returns ErrMissingDocument when the set contains no document at all.
	Analyze(set ExtractionSet) (*DossierReport, error)
}
