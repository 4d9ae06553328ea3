package driving

import (
	"github.com/consular-labs/dossier-core/internal/core/domain"
)

// PassportService decodes the machine-readable zone of a passport and
// reconciles it against the visually-extracted fields.
type PassportService interface {
	// DecodeMRZ parses the two TD3 lines and verifies their check digits.
	// Returns ErrMalformedMRZ when a line does not fit the TD3 format.
	DecodeMRZ(line1, line2 string) (*domain.MRZ, domain.ChecksumResult, error)

	// Reconcile merges MRZ and VIZ values into per-field consolidated
	// values with confidence and provenance. It never fails: with no
	// usable MRZ it degrades to VIZ values at reduced confidence.
	Reconcile(extraction domain.PassportExtraction) *domain.ReconciliationResult
}
