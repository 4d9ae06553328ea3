package e2e

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/cucumber/godog"

	"github.com/consular-labs/dossier-core/internal/core/domain"
	"github.com/consular-labs/dossier-core/internal/core/ports/driving"
	"github.com/consular-labs/dossier-core/internal/core/services"
)

// Specimen MRZ with a far-future expiry so validity checks do not depend
// on the wall clock.
const (
	ordinaryLine1   = "P<UTOERIKSSON<<ANNA<MARIA<<<<<<<<<<<<<<<<<<<"
	diplomaticLine1 = "PDUTOERIKSSON<<ANNA<MARIA<<<<<<<<<<<<<<<<<<<"
	validLine2      = "L898902C36UTO7408122F3012316ZE184226B<<<<<18"
)

type dossierFeature struct {
	set    driving.ExtractionSet
	report *driving.DossierReport
}

func (f *dossierFeature) reset() {
	f.set = driving.ExtractionSet{}
	f.report = nil
}

func (f *dossierFeature) coherentDocuments() {
	f.set.Ticket = &domain.TicketRecord{
		PassengerSurname:    "ERIKSSON",
		PassengerGivenNames: "ANNA MARIA",
		ArrivalDate:         "2024-12-01",
		ArrivalAirportCode:  "ABJ",
		ReturnDate:          "2024-12-15",
	}
	f.set.Hotel = &domain.HotelRecord{
		GuestSurname:    "ERIKSSON",
		GuestGivenNames: "ANNA MARIA",
		CheckInDate:     "2024-12-01",
		CheckOutDate:    "2024-12-15",
		City:            "Abidjan",
		Country:         "Côte d'Ivoire",
	}
	f.set.Vaccination = &domain.VaccinationRecord{
		HolderSurname:    "ERIKSSON",
		HolderGivenNames: "ANNA MARIA",
		Vaccinated:       true,
		Lifetime:         true,
	}
}

func (f *dossierFeature) corruptedPassport() error {
	// Flip the document number check digit so that field fails while the
	// rest of the line stays intact.
	corrupted := validLine2[:9] + "5" + validLine2[10:]
	f.set.Passport = &domain.PassportExtraction{MRZLine1: ordinaryLine1, MRZLine2: corrupted}
	f.set.Ticket = &domain.TicketRecord{ArrivalDate: "2024-12-01"}
	return nil
}

func (f *dossierFeature) vizDocumentNumber(value string) error {
	if f.set.Passport == nil {
		return fmt.Errorf("no passport in the extraction set")
	}
	f.set.Passport.VIZ = map[string]domain.VIZField{
		domain.FieldDocumentNumber: {Value: value, Confidence: 0.9},
	}
	return nil
}

func (f *dossierFeature) diplomaticDossier() error {
	f.set.Passport = &domain.PassportExtraction{MRZLine1: diplomaticLine1, MRZLine2: validLine2}
	f.coherentDocuments()
	return nil
}

func (f *dossierFeature) noVerbalNote() error {
	f.set.VerbalNote = nil
	return nil
}

func (f *dossierFeature) ordinaryDossier() error {
	f.set.Passport = &domain.PassportExtraction{MRZLine1: ordinaryLine1, MRZLine2: validLine2}
	f.coherentDocuments()
	return nil
}

func (f *dossierFeature) bookingGap(arrival, checkIn string) error {
	if f.set.Ticket == nil || f.set.Hotel == nil {
		return fmt.Errorf("dossier has no ticket or hotel")
	}
	f.set.Ticket.ArrivalDate = arrival
	f.set.Hotel.CheckInDate = checkIn
	return nil
}

func (f *dossierFeature) analyze() error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := services.NewDossierService(
		services.NewPassportService(),
		services.NewClassifierService(),
		services.NewEligibilityService(),
		services.NewCoherenceService(),
		logger,
	)

	report, err := svc.Analyze(f.set)
	if err != nil {
		return err
	}
	f.report = report
	return nil
}

func (f *dossierFeature) reconciledDocumentNumber(expected string) error {
	if f.report == nil || f.report.Reconciliation == nil {
		return fmt.Errorf("no reconciliation in the report")
	}
	got := f.report.Reconciliation.Fields.Value(domain.FieldDocumentNumber)
	if got != expected {
		return fmt.Errorf("expected document number %q, got %q", expected, got)
	}
	return nil
}

func (f *dossierFeature) documentNumberSource(expected string) error {
	field := f.report.Reconciliation.Fields[domain.FieldDocumentNumber]
	if field.Source != expected {
		return fmt.Errorf("expected source %q, got %q", expected, field.Source)
	}
	return nil
}

func (f *dossierFeature) checkReports(key, severity string) error {
	if f.report == nil || f.report.Coherence == nil {
		return fmt.Errorf("no coherence report")
	}
	for _, issue := range f.report.Coherence.Issues {
		if issue.Key == key {
			if string(issue.Severity) != severity {
				return fmt.Errorf("expected %s to report %q, got %q", key, severity, issue.Severity)
			}
			return nil
		}
	}
	return fmt.Errorf("check %s did not run", key)
}

func (f *dossierFeature) notReadyForSubmission() error {
	if f.report.Coherence.Summary.ReadyForSubmission {
		return fmt.Errorf("expected the dossier to be blocked")
	}
	return nil
}

func (f *dossierFeature) readyForSubmission() error {
	if !f.report.Coherence.Summary.ReadyForSubmission {
		return fmt.Errorf("expected the dossier to be submittable, issues: %+v", f.report.Coherence.Issues)
	}
	return nil
}

func InitializeScenario(sc *godog.ScenarioContext) {
	feature := &dossierFeature{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		feature.reset()
		return ctx, nil
	})

	sc.Step(`^a passport whose document number check digit is corrupted$`, feature.corruptedPassport)
	sc.Step(`^the visual zone reads document number "([^"]*)"$`, feature.vizDocumentNumber)
	sc.Step(`^a coherent dossier with a diplomatic passport$`, feature.diplomaticDossier)
	sc.Step(`^no verbal note$`, feature.noVerbalNote)
	sc.Step(`^a coherent dossier with an ordinary passport$`, feature.ordinaryDossier)
	sc.Step(`^the flight arrives on "([^"]*)" but the hotel check-in is "([^"]*)"$`, feature.bookingGap)
	sc.Step(`^the dossier is analyzed$`, feature.analyze)
	sc.Step(`^the reconciled document number is "([^"]*)"$`, feature.reconciledDocumentNumber)
	sc.Step(`^its source is "([^"]*)"$`, feature.documentNumberSource)
	sc.Step(`^the coherence check "([^"]*)" reports "([^"]*)"$`, feature.checkReports)
	sc.Step(`^the dossier is not ready for submission$`, feature.notReadyForSubmission)
	sc.Step(`^the dossier is ready for submission$`, feature.readyForSubmission)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
