package driving

import (
	"github.com/consular-labs/dossier-core/internal/core/domain"
)

// ClassifierService determines the category and subcategory of a travel
// document from its reconciled fields.
type ClassifierService interface {
	// Classify runs the classification cascade: MRZ type code first,
	// then document-number patterns, then the issuing-organization table,
	// then plain nationality presence. Without MRZ it falls back to
	// keyword detection over the VIZ fields at reduced confidence.
	Classify(passport *domain.PassportRecord) *domain.Classification
}
