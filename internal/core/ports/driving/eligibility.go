package driving

import (
	"github.com/consular-labs/dossier-core/internal/core/domain"
)

// EligibilityService decides whether a classified document can back an
// e-Visa application.
type EligibilityService interface {
	// Evaluate looks the classification up in the eligibility matrix and
	// attaches a completeness report and alternative document types when
	// the document is not directly eligible.
	Evaluate(classification *domain.Classification, fields domain.ReconciledFields) *domain.Eligibility
}
