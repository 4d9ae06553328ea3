package domain

import "math"

// Severity grades a cross-document coherence finding.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Weight converts a severity into its scoring contribution.
func (s Severity) Weight() float64 {
	switch s {
	case SeveritySuccess:
		return 1.0
	case SeverityWarning:
		return 0.5
	default:
		return 0.0
	}
}

// Coherence check keys. Each check that runs contributes exactly one
// issue under its key.
const (
	CheckNameMatch            = "name_match"
	CheckFlightHotelArrival   = "flight_hotel_arrival"
	CheckFlightHotelDeparture = "flight_hotel_departure"
	CheckPassportValidity     = "passport_validity"
	CheckYellowFever          = "yellow_fever"
	CheckVaccinationName      = "vaccination_name"
	CheckArrivalDestination   = "arrival_destination"
	CheckHotelLocation        = "hotel_location"
	CheckVerbalNote           = "verbal_note"
)

// Issue is one coherence finding.
type Issue struct {
	Key      string            `json:"key"`
	Severity Severity          `json:"severity"`
	Message  Localized         `json:"message"`
	Details  map[string]string `json:"details,omitempty"`
}

// CoherenceSummary counts findings by severity.
type CoherenceSummary struct {
	Total              int  `json:"total"`
	Success            int  `json:"success"`
	Warnings           int  `json:"warnings"`
	Errors             int  `json:"errors"`
	ReadyForSubmission bool `json:"ready_for_submission"`
}

// NameCompletion records a partial name in a supporting document that was
// replaced by the passport holder name before matching.
type NameCompletion struct {
	Document string `json:"document"`
	Original string `json:"original"`
	Replaced string `json:"replaced"`
}

// CoherenceReport is the outcome of cross-document validation.
type CoherenceReport struct {
	Issues         []Issue          `json:"issues"`
	Score          float64          `json:"score"`
	Summary        CoherenceSummary `json:"summary"`
	CompletedNames []NameCompletion `json:"completed_names,omitempty"`
}

// Finalize computes the score and summary from the collected issues.
// Score is the mean severity weight rounded to two decimals; a report
// with no issues scores a neutral 1.0.
func (r *CoherenceReport) Finalize() {
	r.Summary = CoherenceSummary{Total: len(r.Issues)}
	if len(r.Issues) == 0 {
		r.Score = 1.0
		r.Summary.ReadyForSubmission = true
		return
	}
	var sum float64
	for _, issue := range r.Issues {
		sum += issue.Severity.Weight()
		switch issue.Severity {
		case SeveritySuccess:
			r.Summary.Success++
		case SeverityWarning:
			r.Summary.Warnings++
		case SeverityError:
			r.Summary.Errors++
		}
	}
	r.Score = math.Round(sum/float64(len(r.Issues))*100) / 100
	r.Summary.ReadyForSubmission = r.Summary.Errors == 0
}
