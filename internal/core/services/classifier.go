package services

import (
	"regexp"
	"strings"

	"github.com/consular-labs/dossier-core/internal/core/domain"
	"github.com/consular-labs/dossier-core/internal/core/ports/driving"
)

// Ensure classifierService implements ClassifierService
var _ driving.ClassifierService = (*classifierService)(nil)

// Document-number conventions of diplomatic and service series. Applied
// only while the subcategory is still ORDINARY.
var (
	diplomaticNumber = regexp.MustCompile(`^(\d{2}DD|D[A-Z]?\d)`)
	serviceNumber    = regexp.MustCompile(`^(\d{2}SV|S[A-Z]?\d)`)
)

// Textual cues used when no MRZ type code is available. Checked in order;
// French first since most of the corpus documents are francophone.
var keywordRules = []struct {
	pattern     *regexp.Regexp
	category    domain.Category
	subcategory domain.Subcategory
}{
	{regexp.MustCompile(`(?i)laissez[- ]passer`), domain.CategoryLaissezPasser, domain.SubcategoryInternational},
	{regexp.MustCompile(`(?i)nations unies|united nations`), domain.CategoryLaissezPasser, domain.SubcategoryInternational},
	{regexp.MustCompile(`(?i)r[eé]fugi[eé]|refugee`), domain.CategoryTravelDocument, domain.SubcategoryRefugee},
	{regexp.MustCompile(`(?i)apatride|stateless`), domain.CategoryTravelDocument, domain.SubcategoryStateless},
	{regexp.MustCompile(`(?i)diplomat`), domain.CategoryPassport, domain.SubcategoryDiplomatic},
	{regexp.MustCompile(`(?i)\bservice\b`), domain.CategoryPassport, domain.SubcategoryService},
	{regexp.MustCompile(`(?i)officiel|official`), domain.CategoryPassport, domain.SubcategoryOfficial},
	{regexp.MustCompile(`(?i)titre de voyage|travel document`), domain.CategoryTravelDocument, domain.SubcategoryEmergency},
}

// classifierService derives the legal category of a travel document from
// its reconciled fields.
type classifierService struct {
	organizations domain.OrganizationTable
}

// NewClassifierService creates a new ClassifierService using the default
// ICAO organization table.
func NewClassifierService() driving.ClassifierService {
	return &classifierService{organizations: domain.DefaultOrganizations()}
}

// Classify runs the rule cascade over the passport record. Each rule may
// only refine the previous result, never weaken it.
func (s *classifierService) Classify(passport *domain.PassportRecord) *domain.Classification {
	if passport == nil || len(passport.Fields) == 0 {
		return &domain.Classification{
			Category:    domain.CategoryUnknown,
			Subcategory: domain.SubcategoryUnknown,
			Workflow:    domain.WorkflowManualReview,
			Confidence:  0.10,
		}
	}

	c := &domain.Classification{
		Category:    domain.CategoryPassport,
		Subcategory: domain.SubcategoryOrdinary,
		Confidence:  0.99,
	}

	if passport.TypeCode != "" {
		s.applyTypeCode(c, passport.TypeCode)
	} else {
		s.applyKeywords(c, passport.Fields)
	}

	s.applyNumberPattern(c, passport.Fields.Value(domain.FieldDocumentNumber))
	s.applyIssuingState(c, passport.IssuingStateCode)
	s.applyNationality(c, passport.Fields.Value(domain.FieldNationality))

	s.finalize(c)
	return c
}

// applyTypeCode maps the two-character MRZ document type code.
func (s *classifierService) applyTypeCode(c *domain.Classification, code string) {
	code = strings.ToUpper(code)
	c.Indicators = append(c.Indicators, "mrz_type_code:"+code)

	switch {
	case code == "PD":
		c.Subcategory = domain.SubcategoryDiplomatic
	case code == "PS":
		c.Subcategory = domain.SubcategoryService
	case code == "PO":
		c.Subcategory = domain.SubcategoryOfficial
	case code == "PL", strings.HasPrefix(code, "V"), strings.HasPrefix(code, "I"):
		c.Category = domain.CategoryLaissezPasser
		c.Subcategory = domain.SubcategoryInternational
	}
	// "P<" and any other P* code stay PASSPORT/ORDINARY.
}

// applyKeywords is the degraded path when no MRZ type code exists: scan
// the reconciled field values for textual cues.
func (s *classifierService) applyKeywords(c *domain.Classification, fields domain.ReconciledFields) {
	c.Confidence = 0.60

	var text strings.Builder
	for _, field := range fields {
		text.WriteString(field.Value)
		text.WriteByte(' ')
	}
	haystack := text.String()

	for _, rule := range keywordRules {
		if rule.pattern.MatchString(haystack) {
			c.Category = rule.category
			c.Subcategory = rule.subcategory
			c.Confidence = 0.75
			c.Indicators = append(c.Indicators, "keyword:"+rule.pattern.String())
			return
		}
	}
}

// applyNumberPattern upgrades ORDINARY passports whose document number
// follows a diplomatic or service numbering convention.
func (s *classifierService) applyNumberPattern(c *domain.Classification, number string) {
	if c.Category != domain.CategoryPassport || c.Subcategory != domain.SubcategoryOrdinary {
		return
	}
	number = strings.ToUpper(strings.TrimSpace(number))
	switch {
	case diplomaticNumber.MatchString(number):
		c.Subcategory = domain.SubcategoryDiplomatic
		c.Indicators = append(c.Indicators, "document_number_pattern:diplomatic")
	case serviceNumber.MatchString(number):
		c.Subcategory = domain.SubcategoryService
		c.Indicators = append(c.Indicators, "document_number_pattern:service")
	}
}

// applyIssuingState forces the category when the MRZ issuing-state slot
// carries an organization code instead of a state: a document issued by an
// organization is never an ordinary passport, whatever the holder's
// nationality says.
func (s *classifierService) applyIssuingState(c *domain.Classification, code string) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return
	}

	name, isOrg := s.organizations.Lookup(code)
	if !isOrg {
		return
	}

	c.IssuingOrganizationCode = code
	c.IssuingOrganization = name
	c.Indicators = append(c.Indicators, "issuing_state_code:"+code)
	s.applySpecialStatus(c, code)
}

// applyNationality resolves the nationality code against the organization
// and special-status table.
func (s *classifierService) applyNationality(c *domain.Classification, code string) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		c.HasStateNationality = false
		return
	}

	name, isOrg := s.organizations.Lookup(code)
	if !isOrg {
		c.HasStateNationality = true
		c.DetectedNationalityCode = code
		return
	}

	c.HasStateNationality = false
	if c.IssuingOrganizationCode == "" {
		c.IssuingOrganizationCode = code
		c.IssuingOrganization = name
	}
	c.Indicators = append(c.Indicators, "organization_code:"+code)
	s.applySpecialStatus(c, code)
}

// applySpecialStatus maps ICAO special codes to their document category.
func (s *classifierService) applySpecialStatus(c *domain.Classification, code string) {
	switch code {
	case "XXA":
		c.Category = domain.CategoryTravelDocument
		c.Subcategory = domain.SubcategoryStateless
	case "XXB", "XXC":
		c.Category = domain.CategoryTravelDocument
		c.Subcategory = domain.SubcategoryRefugee
	case "XXX":
		// unspecified nationality, category unchanged
	default:
		c.Category = domain.CategoryLaissezPasser
		c.Subcategory = domain.SubcategoryInternational
	}
}

// finalize derives the visa-validity hint and workflow from the settled
// category and subcategory.
func (s *classifierService) finalize(c *domain.Classification) {
	switch c.Category {
	case domain.CategoryPassport:
		c.IsValidForVisa = true
		if c.Subcategory == domain.SubcategoryDiplomatic || c.Subcategory == domain.SubcategoryService {
			c.Workflow = domain.WorkflowPriority
		} else {
			c.Workflow = domain.WorkflowStandard
		}
	case domain.CategoryTravelDocument:
		switch c.Subcategory {
		case domain.SubcategoryRefugee, domain.SubcategoryStateless:
			c.Workflow = domain.WorkflowManualReview
		default:
			c.Workflow = domain.WorkflowNotEligible
		}
	case domain.CategoryLaissezPasser:
		c.Workflow = domain.WorkflowNotEligible
	default:
		c.Workflow = domain.WorkflowManualReview
	}
}
