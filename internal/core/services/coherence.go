package services

import (
	"fmt"
	"regexp"
	"time"

	"github.com/consular-labs/dossier-core/internal/core/domain"
	"github.com/consular-labs/dossier-core/internal/core/ports/driving"
	"github.com/consular-labs/dossier-core/internal/names"
)

// Ensure coherenceService implements CoherenceService
var _ driving.CoherenceService = (*coherenceService)(nil)

// Côte d'Ivoire international airports accepted as a visa entry point.
var destinationAirports = map[string]bool{
	"ABJ": true, // Abidjan Félix-Houphouët-Boigny
	"BYK": true, // Bouaké
	"DJO": true, // Daloa
	"HGO": true, // Korhogo
	"MJC": true, // Man
	"SPY": true, // San-Pédro
}

// Accepted spellings of the destination country on hotel bookings.
var destinationCountry = regexp.MustCompile(`(?i)c[oô]te\s*d['\s]?ivoire|ivory\s*coast`)

// validityMarginMonths is how long a passport must remain valid beyond
// the return date.
const validityMarginMonths = 6

// coherenceService cross-checks the documents of a dossier against each
// other, anchored on the passport identity. The service itself is
// stateless; everything per-call lives in the report and the resolved
// name set, so concurrent Validate calls are safe.
type coherenceService struct {
	matcher *names.Matcher
	now     func() time.Time
}

// NewCoherenceService creates a new CoherenceService with the default
// name-matching thresholds and the system clock.
func NewCoherenceService() driving.CoherenceService {
	return NewCoherenceServiceAt(time.Now)
}

// NewCoherenceServiceAt creates a CoherenceService with an injected clock,
// used by tests and replay tooling.
func NewCoherenceServiceAt(now func() time.Time) driving.CoherenceService {
	return &coherenceService{matcher: names.NewMatcher(), now: now}
}

// effectiveNames holds the per-document holder names after the completion
// pre-pass.
type effectiveNames struct {
	anchor      string
	ticket      string
	hotel       string
	vaccination string
}

// Validate runs every applicable check over the document set. Checks are
// independent: one that cannot run for lack of fields is skipped and the
// rest still execute.
func (s *coherenceService) Validate(set *domain.DocumentSet) *domain.CoherenceReport {
	report := &domain.CoherenceReport{}
	if set.Count() < 2 {
		report.Finalize()
		return report
	}

	resolved := s.completeNames(set, report)

	s.checkNames(set, resolved, report)
	s.checkTravelDates(set, report)
	s.checkPassportValidity(set, report)
	s.checkVaccination(set, resolved, report)
	s.checkDestination(set, report)
	s.checkVerbalNote(set, report)

	report.Finalize()
	return report
}

// completeNames is the pre-pass: a partial name on a supporting document
// whose tokens overlap the passport name enough is replaced by the full
// passport name before matching. The passport is the trust anchor.
func (s *coherenceService) completeNames(set *domain.DocumentSet, report *domain.CoherenceReport) effectiveNames {
	resolved := effectiveNames{anchor: set.Passport.FullName()}

	complete := func(doc domain.DocumentType, name string) string {
		if name == "" || resolved.anchor == "" {
			return name
		}
		full, ok := s.matcher.Complete(name, resolved.anchor)
		if !ok || names.Normalize(name) == full {
			return name
		}
		report.CompletedNames = append(report.CompletedNames, domain.NameCompletion{
			Document: string(doc),
			Original: name,
			Replaced: full,
		})
		return full
	}

	if set.Ticket != nil {
		resolved.ticket = complete(domain.DocumentTicket, set.Ticket.PassengerName())
	}
	if set.Hotel != nil {
		resolved.hotel = complete(domain.DocumentHotel, set.Hotel.GuestName())
	}
	if set.Vaccination != nil {
		resolved.vaccination = complete(domain.DocumentVaccination, set.Vaccination.HolderName())
	}
	return resolved
}

// checkNames compares the passport name against each supporting document
// holder name. A single issue summarizes all comparisons.
func (s *coherenceService) checkNames(set *domain.DocumentSet, resolved effectiveNames, report *domain.CoherenceReport) {
	if resolved.anchor == "" {
		return
	}

	type comparison struct {
		doc  domain.DocumentType
		name string
	}
	compared := []comparison{
		{domain.DocumentTicket, resolved.ticket},
		{domain.DocumentHotel, resolved.hotel},
		{domain.DocumentVaccination, resolved.vaccination},
	}

	details := map[string]string{}
	var mismatched []string
	ran := false
	for _, c := range compared {
		if c.name == "" {
			continue
		}
		ran = true
		match, score := s.matcher.Match(resolved.anchor, c.name)
		details[string(c.doc)+"_similarity"] = fmt.Sprintf("%.2f", score)
		if !match {
			mismatched = append(mismatched, string(c.doc))
		}
	}
	if !ran {
		return
	}

	issue := domain.Issue{
		Key:      domain.CheckNameMatch,
		Severity: domain.SeveritySuccess,
		Message: domain.Localized{
			Fr: "Le nom du titulaire correspond sur tous les documents",
			En: "Holder name matches across all documents",
		},
		Details: details,
	}
	if len(mismatched) > 0 {
		// Extraction noise makes name divergence common; a mismatch flags
		// the dossier for a human eye instead of blocking it.
		issue.Severity = domain.SeverityWarning
		issue.Message = domain.Localized{
			Fr: "Le nom sur certains documents ne correspond pas au passeport",
			En: "Name on some documents does not match the passport",
		}
		for i, doc := range mismatched {
			issue.Details[fmt.Sprintf("mismatch_%d", i+1)] = doc
		}
	}
	report.Issues = append(report.Issues, issue)
}

// checkTravelDates aligns the flight with the hotel stay: arrival against
// check-in and return against check-out. A one-day gap is tolerated with
// a warning; more is an error.
func (s *coherenceService) checkTravelDates(set *domain.DocumentSet, report *domain.CoherenceReport) {
	if set.Ticket == nil || set.Hotel == nil {
		return
	}

	s.checkDatePair(report, domain.CheckFlightHotelArrival,
		set.Ticket.ArrivalDate, set.Hotel.CheckInDate,
		domain.Localized{Fr: "Date d'arrivée du vol et date de check-in", En: "Flight arrival date and hotel check-in date"})
	s.checkDatePair(report, domain.CheckFlightHotelDeparture,
		set.Ticket.ReturnDate, set.Hotel.CheckOutDate,
		domain.Localized{Fr: "Date de retour du vol et date de check-out", En: "Return flight date and hotel check-out date"})
}

func (s *coherenceService) checkDatePair(report *domain.CoherenceReport, key, a, b string, subject domain.Localized) {
	da, okA := parseDate(a)
	db, okB := parseDate(b)
	if !okA || !okB {
		return
	}

	diff := daysBetween(da, db)
	issue := domain.Issue{
		Key: key,
		Details: map[string]string{
			"flight_date": da.Format(time.DateOnly),
			"hotel_date":  db.Format(time.DateOnly),
			"gap_days":    fmt.Sprintf("%d", diff),
		},
	}
	switch {
	case diff == 0:
		issue.Severity = domain.SeveritySuccess
		issue.Message = domain.Localized{
			Fr: subject.Fr + " concordent",
			En: subject.En + " are aligned",
		}
	case diff == 1:
		issue.Severity = domain.SeverityWarning
		issue.Message = domain.Localized{
			Fr: subject.Fr + " diffèrent d'un jour",
			En: subject.En + " differ by one day",
		}
	default:
		issue.Severity = domain.SeverityError
		issue.Message = domain.Localized{
			Fr: subject.Fr + " diffèrent de plusieurs jours",
			En: subject.En + " differ by several days",
		}
	}
	report.Issues = append(report.Issues, issue)
}

// checkPassportValidity verifies the passport remains valid six months
// beyond the resolved return date.
func (s *coherenceService) checkPassportValidity(set *domain.DocumentSet, report *domain.CoherenceReport) {
	if set.Passport == nil {
		return
	}
	expiry, ok := parseDate(set.Passport.Fields.Value(domain.FieldDateOfExpiry))
	if !ok {
		return
	}
	returnDate := s.resolveReturnDate(set)

	issue := domain.Issue{
		Key: domain.CheckPassportValidity,
		Details: map[string]string{
			"expiry_date": expiry.Format(time.DateOnly),
			"return_date": returnDate.Format(time.DateOnly),
		},
	}
	required := returnDate.AddDate(0, validityMarginMonths, 0)
	switch {
	case expiry.After(required):
		issue.Severity = domain.SeveritySuccess
		issue.Message = domain.Localized{
			Fr: "Le passeport est valide plus de 6 mois après la date de retour",
			En: "Passport is valid more than 6 months past the return date",
		}
	case expiry.After(returnDate):
		issue.Severity = domain.SeverityWarning
		issue.Message = domain.Localized{
			Fr: "Le passeport expire moins de 6 mois après la date de retour",
			En: "Passport expires less than 6 months past the return date",
		}
	default:
		issue.Severity = domain.SeverityError
		issue.Message = domain.Localized{
			Fr: "Le passeport expire avant la date de retour",
			En: "Passport expires before the return date",
		}
	}
	report.Issues = append(report.Issues, issue)
}

// resolveReturnDate picks the best available end-of-stay date: return
// flight first, hotel check-out second, a 30-day default stay last.
func (s *coherenceService) resolveReturnDate(set *domain.DocumentSet) time.Time {
	if set.Ticket != nil {
		if d, ok := parseDate(set.Ticket.ReturnDate); ok {
			return d
		}
	}
	if set.Hotel != nil {
		if d, ok := parseDate(set.Hotel.CheckOutDate); ok {
			return d
		}
	}
	return s.now().AddDate(0, 0, 30)
}

// checkVaccination applies the yellow fever certificate rules. A missing
// certificate is only a warning; an invalid one blocks submission.
func (s *coherenceService) checkVaccination(set *domain.DocumentSet, resolved effectiveNames, report *domain.CoherenceReport) {
	if set.Vaccination == nil {
		report.Issues = append(report.Issues, domain.Issue{
			Key:      domain.CheckYellowFever,
			Severity: domain.SeverityWarning,
			Message: domain.Localized{
				Fr: "Certificat de vaccination fièvre jaune absent du dossier",
				En: "Yellow fever vaccination certificate missing from the file",
			},
		})
		return
	}

	vac := set.Vaccination
	issue := domain.Issue{Key: domain.CheckYellowFever, Severity: domain.SeveritySuccess,
		Message: domain.Localized{
			Fr: "Certificat de vaccination fièvre jaune valide",
			En: "Valid yellow fever vaccination certificate",
		},
	}
	switch {
	case !vac.Vaccinated:
		issue.Severity = domain.SeverityError
		issue.Message = domain.Localized{
			Fr: "Le certificat n'atteste pas d'une vaccination fièvre jaune",
			En: "Certificate does not attest a yellow fever vaccination",
		}
	case !vac.Lifetime && vac.ValidUntil != "":
		if until, ok := parseDate(vac.ValidUntil); ok && !until.After(s.now()) {
			issue.Severity = domain.SeverityError
			issue.Message = domain.Localized{
				Fr: "Le certificat de vaccination a expiré",
				En: "Vaccination certificate has expired",
			}
			issue.Details = map[string]string{"valid_until": until.Format(time.DateOnly)}
		}
	}
	report.Issues = append(report.Issues, issue)

	if resolved.anchor != "" && resolved.vaccination != "" {
		match, score := s.matcher.Match(resolved.anchor, resolved.vaccination)
		nameIssue := domain.Issue{
			Key:      domain.CheckVaccinationName,
			Severity: domain.SeveritySuccess,
			Message: domain.Localized{
				Fr: "Le nom sur le certificat correspond au passeport",
				En: "Name on the certificate matches the passport",
			},
			Details: map[string]string{"similarity": fmt.Sprintf("%.2f", score)},
		}
		if !match {
			nameIssue.Severity = domain.SeverityWarning
			nameIssue.Message = domain.Localized{
				Fr: "Le nom sur le certificat diffère du passeport",
				En: "Name on the certificate differs from the passport",
			}
		}
		report.Issues = append(report.Issues, nameIssue)
	}
}

// checkDestination sanity-checks the geography: the arrival airport must
// be a known entry point and the hotel must be in the country.
func (s *coherenceService) checkDestination(set *domain.DocumentSet, report *domain.CoherenceReport) {
	if set.Ticket != nil && set.Ticket.ArrivalAirportCode != "" {
		code := set.Ticket.ArrivalAirportCode
		issue := domain.Issue{
			Key:      domain.CheckArrivalDestination,
			Severity: domain.SeveritySuccess,
			Message: domain.Localized{
				Fr: "L'aéroport d'arrivée est un point d'entrée reconnu",
				En: "Arrival airport is a recognized entry point",
			},
			Details: map[string]string{"airport_code": code},
		}
		if !destinationAirports[code] {
			issue.Severity = domain.SeverityWarning
			issue.Message = domain.Localized{
				Fr: "L'aéroport d'arrivée n'est pas un point d'entrée reconnu en Côte d'Ivoire",
				En: "Arrival airport is not a recognized entry point in Côte d'Ivoire",
			}
		}
		report.Issues = append(report.Issues, issue)
	}

	if set.Hotel != nil && set.Hotel.Country != "" {
		issue := domain.Issue{
			Key:      domain.CheckHotelLocation,
			Severity: domain.SeveritySuccess,
			Message: domain.Localized{
				Fr: "L'hébergement est situé en Côte d'Ivoire",
				En: "Accommodation is located in Côte d'Ivoire",
			},
			Details: map[string]string{"country": set.Hotel.Country},
		}
		if !destinationCountry.MatchString(set.Hotel.Country) {
			issue.Severity = domain.SeverityWarning
			issue.Message = domain.Localized{
				Fr: "L'hébergement ne semble pas situé en Côte d'Ivoire",
				En: "Accommodation does not appear to be in Côte d'Ivoire",
			}
		}
		report.Issues = append(report.Issues, issue)
	}
}

// checkVerbalNote enforces the note-verbale requirement for diplomatic
// and service passports, identified by the MRZ type code.
func (s *coherenceService) checkVerbalNote(set *domain.DocumentSet, report *domain.CoherenceReport) {
	if set.Passport == nil {
		return
	}
	typeCode := set.Passport.TypeCode
	if typeCode != "PD" && typeCode != "PS" {
		return
	}

	issue := domain.Issue{
		Key:     domain.CheckVerbalNote,
		Details: map[string]string{"passport_type_code": typeCode},
	}
	if set.VerbalNote != nil {
		issue.Severity = domain.SeveritySuccess
		issue.Message = domain.Localized{
			Fr: "Note verbale présente au dossier",
			En: "Verbal note present in the file",
		}
	} else {
		issue.Severity = domain.SeverityError
		issue.Message = domain.Localized{
			Fr: "Une note verbale est requise pour un passeport diplomatique ou de service",
			En: "A verbal note is required for a diplomatic or service passport",
		}
	}
	report.Issues = append(report.Issues, issue)
}

// parseDate accepts ISO YYYY-MM-DD and DD/MM/YYYY.
func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if d, err := time.Parse(time.DateOnly, value); err == nil {
		return d, true
	}
	if d, err := time.Parse("02/01/2006", value); err == nil {
		return d, true
	}
	return time.Time{}, false
}

func daysBetween(a, b time.Time) int {
	diff := int(b.Sub(a).Hours() / 24)
	if diff < 0 {
		diff = -diff
	}
	return diff
}
