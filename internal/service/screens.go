package service

import (
	"errors"
	"fmt"

	"github.com/safarhub/backoffice/internal/models"
	"github.com/safarhub/backoffice/internal/platform"
	"github.com/safarhub/backoffice/internal/utils"
)

// Screens bundles one ResourceScreen per managed entity. All screens
// share the single platform client and the notification surface.
type Screens struct {
	Flights        *ResourceScreen[models.Flight]
	Hotels         *ResourceScreen[models.Hotel]
	Packages       *ResourceScreen[models.Package]
	Tours          *ResourceScreen[models.Tour]
	Visas          *ResourceScreen[models.Visa]
	GroupTicketing *ResourceScreen[models.GroupTicketing]
	Content        *ResourceScreen[models.Content]
	Payments       *ResourceScreen[models.PaymentVoucher]
	AgencyUsers    *ResourceScreen[models.AgencyUser]
}

// NewScreens wires every resource screen with its platform path,
// collection field, search fields and required-field validation.
func NewScreens(client *platform.Client, notifier utils.Notifier) *Screens {
	return &Screens{
		Flights: NewResourceScreen(client, notifier, "Flight", "/flights", "flights",
			func(f models.Flight) []string {
				return []string{f.FlightNumber, f.Airline, f.Sector, f.Status}
			},
			validateFlight, nil),

		Hotels: NewResourceScreen(client, notifier, "Hotel", "/hotels", "hotels",
			func(h models.Hotel) []string {
				return []string{h.Name, h.City, h.Address, h.Status}
			},
			validateHotel, nil),

		Packages: NewResourceScreen(client, notifier, "Package", "/packages", "packages",
			func(p models.Package) []string {
				return []string{p.Name, p.Category, p.Status}
			},
			validatePackage, normalizePackage),

		Tours: NewResourceScreen(client, notifier, "Tour", "/tours", "tours",
			func(t models.Tour) []string {
				return []string{t.Name, t.City, t.Status}
			},
			validateTour, normalizeTour),

		Visas: NewResourceScreen(client, notifier, "Visa", "/visas", "visas",
			func(v models.Visa) []string {
				return []string{v.ApplicantName, v.PassportNumber, v.Country, v.VisaType, v.Status}
			},
			validateVisa, nil),

		GroupTicketing: NewResourceScreen(client, notifier, "Group booking", "/group-ticketing", "bookings",
			func(g models.GroupTicketing) []string {
				return []string{g.GroupName, g.Airline, g.Sector, g.Status}
			},
			validateGroupTicketing, nil),

		Content: NewResourceScreen(client, notifier, "Content page", "/content", "content",
			func(c models.Content) []string {
				return []string{c.Title, c.Slug}
			},
			validateContent, nil),

		Payments: NewResourceScreen(client, notifier, "Payment voucher", "/payment", "payments",
			func(p models.PaymentVoucher) []string {
				return []string{p.VoucherNumber, p.AgencyID, p.Method, p.Description, p.Status}
			},
			validatePayment, nil),

		AgencyUsers: NewResourceScreen(client, notifier, "Agency user", "/auth/users", "users",
			func(u models.AgencyUser) []string {
				return []string{u.Name, u.Email, u.Phone, u.AgencyName}
			},
			validateAgencyUser, nil),
	}
}

// Required-field checks. Each set is fixed per resource and re-run in
// full on every submit attempt.

func validateFlight(f models.Flight) error {
	if f.FlightNumber == "" {
		return errors.New("flight number is required")
	}
	if f.Airline == "" {
		return errors.New("airline is required")
	}
	if f.Sector == "" {
		return errors.New("sector is required")
	}
	if f.DepartureDate == "" {
		return errors.New("departure date is required")
	}
	if f.SeatsTotal <= 0 {
		return errors.New("total seats must be greater than zero")
	}
	return nil
}

func validateHotel(h models.Hotel) error {
	if h.Name == "" {
		return errors.New("hotel name is required")
	}
	if h.City == "" {
		return errors.New("city is required")
	}
	if h.Category <= 0 {
		return errors.New("hotel category is required")
	}
	return nil
}

func validatePackage(p models.Package) error {
	if p.Name == "" {
		return errors.New("package name is required")
	}
	if p.DurationDays <= 0 {
		return errors.New("duration must be at least one day")
	}
	if len(p.PriceTiers) == 0 {
		return errors.New("at least one price tier is required")
	}
	for i, tier := range p.PriceTiers {
		if tier.Price <= 0 {
			return fmt.Errorf("price tier %d must have a price", i+1)
		}
	}
	return nil
}

func validateTour(t models.Tour) error {
	if t.Name == "" {
		return errors.New("tour name is required")
	}
	if t.City == "" {
		return errors.New("city is required")
	}
	if t.DurationDays <= 0 {
		return errors.New("duration must be at least one day")
	}
	return nil
}

func validateVisa(v models.Visa) error {
	if v.ApplicantName == "" {
		return errors.New("applicant name is required")
	}
	if v.PassportNumber == "" {
		return errors.New("passport number is required")
	}
	if v.Country == "" {
		return errors.New("country is required")
	}
	if v.VisaType == "" {
		return errors.New("visa type is required")
	}
	return nil
}

func validateGroupTicketing(g models.GroupTicketing) error {
	if g.GroupName == "" {
		return errors.New("group name is required")
	}
	if g.Airline == "" {
		return errors.New("airline is required")
	}
	if g.Sector == "" {
		return errors.New("sector is required")
	}
	if g.TravelDate == "" {
		return errors.New("travel date is required")
	}
	if g.SeatsBooked <= 0 {
		return errors.New("booked seats must be greater than zero")
	}
	return nil
}

func validateContent(c models.Content) error {
	if c.Title == "" {
		return errors.New("title is required")
	}
	if c.Slug == "" {
		return errors.New("slug is required")
	}
	return nil
}

func validatePayment(p models.PaymentVoucher) error {
	if p.VoucherNumber == "" {
		return errors.New("voucher number is required")
	}
	if p.AgencyID == "" {
		return errors.New("agency is required")
	}
	if p.Amount <= 0 {
		return errors.New("amount must be greater than zero")
	}
	return nil
}

func validateAgencyUser(u models.AgencyUser) error {
	if u.Name == "" {
		return errors.New("name is required")
	}
	if u.Email == "" {
		return errors.New("email is required")
	}
	return nil
}

// normalizePackage keeps itinerary day numbers contiguous before the
// draft is submitted
func normalizePackage(p models.Package) models.Package {
	p.Itinerary = RenumberDays(p.Itinerary)
	return p
}

func normalizeTour(t models.Tour) models.Tour {
	t.Itinerary = RenumberDays(t.Itinerary)
	return t
}
