package domain

// Localized is a bilingual user-facing string. The embassy serves both
// French and English speakers, so every explanation carries both.
type Localized struct {
	Fr string `json:"fr"`
	En string `json:"en"`
}

// Decision is the three-valued visa-eligibility outcome. Refugee and
// stateless travel documents are neither accepted nor rejected outright;
// they go to manual review.
type Decision string

const (
	DecisionEligible     Decision = "eligible"
	DecisionIneligible   Decision = "ineligible"
	DecisionManualReview Decision = "manual_review"
)

// EligibilityRule is one entry of the eligibility matrix.
type EligibilityRule struct {
	Decision           Decision  `json:"decision"`
	Workflow           string    `json:"workflow"`
	Reason             Localized `json:"reason"`
	Fees               bool      `json:"fees"`
	ProcessingTime     string    `json:"processing_time"`
	RequiresVerbalNote bool      `json:"requires_verbal_note"`
}

// EligibilityKey addresses the matrix by document class.
type EligibilityKey struct {
	Category    Category
	Subcategory Subcategory
}

// EligibilityMatrix maps document classes to their visa-eligibility rule.
type EligibilityMatrix map[EligibilityKey]EligibilityRule

// DefaultEligibilityMatrix builds the embassy's eligibility matrix.
// Constructed once and shared read-only.
func DefaultEligibilityMatrix() EligibilityMatrix {
	return EligibilityMatrix{
		{CategoryPassport, SubcategoryOrdinary}: {
			Decision: DecisionEligible, Workflow: WorkflowStandard,
			Reason: Localized{
				Fr: "Document valide pour e-Visa",
				En: "Document valid for e-Visa",
			},
			Fees: true, ProcessingTime: "5-10 jours ouvrés",
		},
		{CategoryPassport, SubcategoryOfficial}: {
			Decision: DecisionEligible, Workflow: WorkflowStandard,
			Reason: Localized{
				Fr: "Passeport officiel valide",
				En: "Valid official passport",
			},
			Fees: true, ProcessingTime: "5-10 jours ouvrés",
		},
		{CategoryPassport, SubcategoryDiplomatic}: {
			Decision: DecisionEligible, Workflow: WorkflowPriority,
			Reason: Localized{
				Fr: "Passeport diplomatique valide - Traitement prioritaire",
				En: "Valid diplomatic passport - Priority processing",
			},
			ProcessingTime: "24-48h", RequiresVerbalNote: true,
		},
		{CategoryPassport, SubcategoryService}: {
			Decision: DecisionEligible, Workflow: WorkflowPriority,
			Reason: Localized{
				Fr: "Passeport de service valide - Traitement prioritaire",
				En: "Valid service passport - Priority processing",
			},
			ProcessingTime: "24-48h", RequiresVerbalNote: true,
		},
		{CategoryLaissezPasser, SubcategoryInternational}: {
			Decision: DecisionIneligible, Workflow: WorkflowNotEligible,
			Reason: Localized{
				Fr: "Les Laissez-Passer ne sont pas acceptés pour une demande de visa.",
				En: "Laissez-Passer documents cannot be used for visa applications.",
			},
		},
		{CategoryTravelDocument, SubcategoryEmergency}: {
			Decision: DecisionIneligible, Workflow: WorkflowNotEligible,
			Reason: Localized{
				Fr: "Les titres de voyage d'urgence ne sont pas acceptés pour une demande de visa.",
				En: "Emergency travel documents cannot be used for visa applications.",
			},
		},
		{CategoryTravelDocument, SubcategoryRefugee}: {
			Decision: DecisionManualReview, Workflow: WorkflowManualReview,
			Reason: Localized{
				Fr: "Les documents de voyage pour réfugiés nécessitent une évaluation manuelle.",
				En: "Refugee travel documents require manual review.",
			},
			Fees: true, ProcessingTime: "Variable",
		},
		{CategoryTravelDocument, SubcategoryStateless}: {
			Decision: DecisionManualReview, Workflow: WorkflowManualReview,
			Reason: Localized{
				Fr: "Les documents de voyage pour apatrides nécessitent une évaluation manuelle.",
				En: "Stateless travel documents require manual review.",
			},
			Fees: true, ProcessingTime: "Variable",
		},
	}
}

// ChecklistField is one entry of the identity-field completeness checklist.
type ChecklistField struct {
	Name        string    `json:"name"`
	Label       Localized `json:"label"`
	Critical    bool      `json:"critical"`
	Explanation Localized `json:"explanation"`
}

// DefaultChecklist builds the ten-field identity checklist used for
// completeness scoring on ineligible documents.
func DefaultChecklist() []ChecklistField {
	return []ChecklistField{
		{
			Name:     FieldNationality,
			Label:    Localized{Fr: "Nationalité du titulaire", En: "Holder's nationality"},
			Critical: true,
			Explanation: Localized{
				Fr: "Nécessaire pour déterminer les conditions de visa applicables",
				En: "Required to determine applicable visa conditions",
			},
		},
		{
			Name:     FieldPlaceOfBirth,
			Label:    Localized{Fr: "Lieu de naissance", En: "Place of birth"},
			Critical: false,
			Explanation: Localized{
				Fr: "Information de vérification d'identité",
				En: "Identity verification information",
			},
		},
		{
			Name:     FieldDateOfBirth,
			Label:    Localized{Fr: "Date de naissance", En: "Date of birth"},
			Critical: true,
			Explanation: Localized{
				Fr: "Requis pour la vérification d'identité",
				En: "Required for identity verification",
			},
		},
		{
			Name:     FieldSurname,
			Label:    Localized{Fr: "Nom de famille", En: "Surname"},
			Critical: true,
			Explanation: Localized{
				Fr: "Identification du demandeur",
				En: "Applicant identification",
			},
		},
		{
			Name:     FieldGivenNames,
			Label:    Localized{Fr: "Prénoms", En: "Given names"},
			Critical: true,
			Explanation: Localized{
				Fr: "Identification complète du demandeur",
				En: "Complete applicant identification",
			},
		},
		{
			Name:     FieldDocumentNumber,
			Label:    Localized{Fr: "Numéro du document", En: "Document number"},
			Critical: true,
			Explanation: Localized{
				Fr: "Référence unique du document de voyage",
				En: "Unique travel document reference",
			},
		},
		{
			Name:     FieldDateOfExpiry,
			Label:    Localized{Fr: "Date d'expiration", En: "Expiry date"},
			Critical: true,
			Explanation: Localized{
				Fr: "Le document doit être valide 6 mois après le voyage",
				En: "Document must be valid 6 months after travel",
			},
		},
		{
			Name:     FieldDateOfIssue,
			Label:    Localized{Fr: "Date de délivrance", En: "Date of issue"},
			Critical: false,
			Explanation: Localized{
				Fr: "Information de traçabilité du document",
				En: "Document traceability information",
			},
		},
		{
			Name:     FieldIssuingAuthority,
			Label:    Localized{Fr: "Autorité de délivrance", En: "Issuing authority"},
			Critical: false,
			Explanation: Localized{
				Fr: "Permet de vérifier l'authenticité du document",
				En: "Allows document authenticity verification",
			},
		},
		{
			Name:     FieldSex,
			Label:    Localized{Fr: "Sexe", En: "Sex"},
			Critical: false,
			Explanation: Localized{
				Fr: "Information de vérification d'identité",
				En: "Identity verification information",
			},
		},
	}
}

// Alternative describes an accepted replacement document type proposed to
// holders of ineligible documents.
type Alternative struct {
	Type               string    `json:"type"`
	Label              Localized `json:"label"`
	Description        Localized `json:"description"`
	RequiresVerbalNote bool      `json:"requires_verbal_note"`
	Workflow           string    `json:"workflow"`
	Fees               bool      `json:"fees"`
	ProcessingTime     string    `json:"processing_time"`
}

// DefaultAlternatives builds the list of document types accepted in place
// of a laissez-passer or travel document.
func DefaultAlternatives() []Alternative {
	return []Alternative{
		{
			Type:  "ORDINARY",
			Label: Localized{Fr: "Passeport ordinaire", En: "Ordinary passport"},
			Description: Localized{
				Fr: "Passeport biométrique ou ordinaire de votre pays de nationalité",
				En: "Biometric or ordinary passport from your country of nationality",
			},
			Workflow: WorkflowStandard, Fees: true, ProcessingTime: "5-10 jours",
		},
		{
			Type:  "DIPLOMATIC",
			Label: Localized{Fr: "Passeport diplomatique", En: "Diplomatic passport"},
			Description: Localized{
				Fr: "Nécessite une note verbale de votre ministère des affaires étrangères",
				En: "Requires a verbal note from your Ministry of Foreign Affairs",
			},
			RequiresVerbalNote: true, Workflow: WorkflowPriority, ProcessingTime: "24-48h",
		},
		{
			Type:  "SERVICE",
			Label: Localized{Fr: "Passeport de service", En: "Service passport"},
			Description: Localized{
				Fr: "Nécessite une note verbale de votre ministère",
				En: "Requires a verbal note from your ministry",
			},
			RequiresVerbalNote: true, Workflow: WorkflowPriority, ProcessingTime: "24-48h",
		},
	}
}

// MissingField is a checklist entry absent from the reconciled fields.
type MissingField struct {
	Field       string    `json:"field"`
	Label       Localized `json:"label"`
	Critical    bool      `json:"critical"`
	Explanation Localized `json:"explanation"`
}

// CompletenessReport scores the identity fields of a document that cannot
// back a visa application on its own.
type CompletenessReport struct {
	Score           int            `json:"score"` // present/total * 100
	PresentCount    int            `json:"present_count"`
	TotalFields     int            `json:"total_fields"`
	Missing         []MissingField `json:"missing,omitempty"`
	CriticalMissing []string       `json:"critical_missing,omitempty"`
	Summary         Localized      `json:"summary"`
}

// Eligibility is the visa-eligibility verdict for one classified document.
type Eligibility struct {
	Decision           Decision            `json:"decision"`
	IsValid            bool                `json:"is_valid"`
	Reason             Localized           `json:"reason"`
	Workflow           string              `json:"workflow"`
	Fees               bool                `json:"fees"`
	ProcessingTime     string              `json:"processing_time,omitempty"`
	RequiresVerbalNote bool                `json:"requires_verbal_note"`
	Completeness       *CompletenessReport `json:"completeness,omitempty"`
	Alternatives       []Alternative       `json:"alternatives,omitempty"`
}
