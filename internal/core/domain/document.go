package domain

// DocumentType identifies one document of a visa dossier.
type DocumentType string

const (
	DocumentPassport    DocumentType = "passport"
	DocumentTicket      DocumentType = "ticket"
	DocumentHotel       DocumentType = "hotel"
	DocumentVaccination DocumentType = "vaccination"
	DocumentInvitation  DocumentType = "invitation"
	DocumentVerbalNote  DocumentType = "verbal_note"
)

// VIZField is one visually-extracted field with the OCR pipeline's
// confidence in it.
type VIZField struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// PassportExtraction is the raw per-passport output of the external
// OCR+LLM collaborator: the optional MRZ line pair plus the VIZ field map.
type PassportExtraction struct {
	MRZLine1 string              `json:"mrz_line1,omitempty"`
	MRZLine2 string              `json:"mrz_line2,omitempty"`
	VIZ      map[string]VIZField `json:"viz,omitempty"`
}

// HasMRZ reports whether a raw MRZ line pair was supplied.
func (p *PassportExtraction) HasMRZ() bool {
	return p != nil && p.MRZLine1 != "" && p.MRZLine2 != ""
}

// VIZValue returns the visually extracted value for a field, or "".
func (p *PassportExtraction) VIZValue(name string) string {
	if p == nil {
		return ""
	}
	return p.VIZ[name].Value
}

// TicketRecord holds the extracted fields of a flight ticket.
type TicketRecord struct {
	PassengerSurname    string `json:"passenger_surname,omitempty"`
	PassengerGivenNames string `json:"passenger_given_names,omitempty"`
	DepartureDate       string `json:"departure_date,omitempty"`
	ArrivalDate         string `json:"arrival_date,omitempty"`
	ArrivalAirportCode  string `json:"arrival_airport_code,omitempty"`
	ArrivalCity         string `json:"arrival_city,omitempty"`
	ReturnDate          string `json:"return_date,omitempty"`
	ReturnFlightNumber  string `json:"return_flight_number,omitempty"`
}

// PassengerName joins the passenger surname and given names.
func (t *TicketRecord) PassengerName() string {
	return joinName(t.PassengerSurname, t.PassengerGivenNames)
}

// HotelRecord holds the extracted fields of a hotel booking.
type HotelRecord struct {
	GuestSurname    string `json:"guest_surname,omitempty"`
	GuestGivenNames string `json:"guest_given_names,omitempty"`
	CheckInDate     string `json:"check_in_date,omitempty"`
	CheckOutDate    string `json:"check_out_date,omitempty"`
	City            string `json:"city,omitempty"`
	Country         string `json:"country,omitempty"`
}

// GuestName joins the guest surname and given names.
func (h *HotelRecord) GuestName() string {
	return joinName(h.GuestSurname, h.GuestGivenNames)
}

// VaccinationRecord holds the extracted fields of a yellow fever
// vaccination certificate.
type VaccinationRecord struct {
	HolderSurname     string `json:"holder_surname,omitempty"`
	HolderGivenNames  string `json:"holder_given_names,omitempty"`
	Vaccinated        bool   `json:"vaccinated"`
	VaccinationDate   string `json:"vaccination_date,omitempty"`
	ValidUntil        string `json:"valid_until,omitempty"` // empty for lifetime certificates
	Lifetime          bool   `json:"lifetime,omitempty"`
	CertificateNumber string `json:"certificate_number,omitempty"`
}

// HolderName joins the certificate holder surname and given names.
func (v *VaccinationRecord) HolderName() string {
	return joinName(v.HolderSurname, v.HolderGivenNames)
}

// InvitationRecord holds the extracted fields of an invitation letter.
type InvitationRecord struct {
	InviteeName           string `json:"invitee_name,omitempty"`
	InviterName           string `json:"inviter_name,omitempty"`
	InviterAddress        string `json:"inviter_address,omitempty"`
	FromDate              string `json:"from_date,omitempty"`
	ToDate                string `json:"to_date,omitempty"`
	Purpose               string `json:"purpose,omitempty"`
	AccommodationProvided bool   `json:"accommodation_provided,omitempty"`
}

// VerbalNoteRecord holds the extracted fields of a diplomatic note.
type VerbalNoteRecord struct {
	Reference string `json:"reference,omitempty"`
	Ministry  string `json:"ministry,omitempty"`
	IssueDate string `json:"issue_date,omitempty"`
}

// PassportRecord is the reconciled passport entry of a document set: the
// merged fields plus the MRZ type and issuing-state codes needed for
// diplomatic and organization-issuer detection.
type PassportRecord struct {
	Fields           ReconciledFields `json:"fields"`
	TypeCode         string           `json:"type_code,omitempty"`
	IssuingStateCode string           `json:"issuing_state_code,omitempty"`
}

// FullName joins the reconciled surname and given names.
func (p *PassportRecord) FullName() string {
	if p == nil {
		return ""
	}
	return joinName(p.Fields.Value(FieldSurname), p.Fields.Value(FieldGivenNames))
}

// DocumentSet is one applicant's dossier, supplied wholesale per validation
// call. The passport entry, when present, anchors identity checks across
// the other documents.
type DocumentSet struct {
	Passport    *PassportRecord    `json:"passport,omitempty"`
	Ticket      *TicketRecord      `json:"ticket,omitempty"`
	Hotel       *HotelRecord       `json:"hotel,omitempty"`
	Vaccination *VaccinationRecord `json:"vaccination,omitempty"`
	Invitation  *InvitationRecord  `json:"invitation,omitempty"`
	VerbalNote  *VerbalNoteRecord  `json:"verbal_note,omitempty"`
}

// Count returns the number of usable documents in the set.
func (s *DocumentSet) Count() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, present := range []bool{
		s.Passport != nil,
		s.Ticket != nil,
		s.Hotel != nil,
		s.Vaccination != nil,
		s.Invitation != nil,
		s.VerbalNote != nil,
	} {
		if present {
			n++
		}
	}
	return n
}

func joinName(surname, given string) string {
	switch {
	case surname == "":
		return given
	case given == "":
		return surname
	default:
		return surname + " " + given
	}
}
