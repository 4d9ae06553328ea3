package domain

// Category is the top-level legal class of a travel document.
type Category string

const (
	CategoryPassport       Category = "PASSPORT"
	CategoryLaissezPasser  Category = "LAISSEZ_PASSER"
	CategoryTravelDocument Category = "TRAVEL_DOCUMENT"
	CategoryUnknown        Category = "UNKNOWN"
)

// Subcategory refines a Category.
type Subcategory string

const (
	SubcategoryOrdinary      Subcategory = "ORDINARY"
	SubcategoryDiplomatic    Subcategory = "DIPLOMATIC"
	SubcategoryService       Subcategory = "SERVICE"
	SubcategoryOfficial      Subcategory = "OFFICIAL"
	SubcategoryInternational Subcategory = "INTERNATIONAL_ORGANIZATION"
	SubcategoryRefugee       Subcategory = "REFUGEE"
	SubcategoryStateless     Subcategory = "STATELESS"
	SubcategoryEmergency     Subcategory = "EMERGENCY"
	SubcategoryUnknown       Subcategory = "UNKNOWN"
)

// Workflow hints attached to a classification.
const (
	WorkflowStandard     = "STANDARD"
	WorkflowPriority     = "PRIORITY"
	WorkflowManualReview = "MANUAL_REVIEW"
	WorkflowNotEligible  = "NOT_ELIGIBLE"
)

// Classification is the derived legal category of a passport-type document.
type Classification struct {
	Category                Category    `json:"category"`
	Subcategory             Subcategory `json:"subcategory"`
	IssuingOrganizationCode string      `json:"issuing_organization_code,omitempty"`
	IssuingOrganization     string      `json:"issuing_organization,omitempty"`
	HasStateNationality     bool        `json:"has_state_nationality"`
	DetectedNationalityCode string      `json:"detected_nationality_code,omitempty"`
	IsValidForVisa          bool        `json:"is_valid_for_visa"`
	Workflow                string      `json:"workflow,omitempty"`
	Confidence              float64     `json:"confidence"`
	Indicators              []string    `json:"indicators,omitempty"`
}

// OrganizationTable maps ICAO issuer/nationality codes that designate an
// international organization or a special status rather than a state.
type OrganizationTable map[string]string

// DefaultOrganizations builds the ICAO organization and special-status code
// table. Treated as read-only shared data once constructed.
func DefaultOrganizations() OrganizationTable {
	return OrganizationTable{
		"UNO":  "United Nations",
		"UNA":  "United Nations Agency",
		"UNK":  "United Nations Kosovo",
		"XXA":  "Stateless",
		"XXB":  "Refugee",
		"XXC":  "Refugee (Convention)",
		"XXX":  "Unspecified Nationality",
		"XAU":  "African Union",
		"AUE":  "African Union",
		"EUE":  "European Union",
		"EUR":  "European Union",
		"XBA":  "African Development Bank",
		"XCC":  "Caribbean Community",
		"XCO":  "Common Market Eastern/Southern Africa",
		"XEC":  "ECOWAS",
		"XPO":  "Interpol",
		"XOM":  "Sovereign Military Order of Malta",
		"NATO": "NATO",
		"NTO":  "NATO",
	}
}

// Lookup returns the organization name for a code, if any.
func (t OrganizationTable) Lookup(code string) (string, bool) {
	name, ok := t[code]
	return name, ok
}
