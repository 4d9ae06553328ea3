package driving

import (
	"github.com/consular-labs/dossier-core/internal/core/domain"
)

// CoherenceService cross-checks the documents of one application file
// against each other.
type CoherenceService interface {
	// Validate runs every applicable pairwise check over the document
	// set and scores the file. With fewer than two documents present the
	// report is neutral: no issues, score 1.0.
	Validate(set *domain.DocumentSet) *domain.CoherenceReport
}
