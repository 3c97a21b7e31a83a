package models

import (
	"time"
)

// Flight represents a chartered flight offered on the platform.
// Airline and Sector hold foreign identifiers resolved against the
// lookup lists; the flight never embeds the full lookup record.
type Flight struct {
	ID            string      `json:"id"`
	FlightNumber  string      `json:"flightNumber"`
	Airline       string      `json:"airline"`
	Sector        string      `json:"sector"`
	DepartureDate string      `json:"departureDate"`
	ReturnDate    string      `json:"returnDate"`
	SeatsTotal    int         `json:"seatsTotal"`
	SeatsBooked   int         `json:"seatsBooked"`
	Price         float64     `json:"price"`
	Legs          []FlightLeg `json:"legs"`
	Status        string      `json:"status"`
}

// FlightLeg is one segment of a multi-leg flight. Legs keep their
// position when siblings are removed; they are never renumbered.
type FlightLeg struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	FlightNumber  string `json:"flightNumber"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
}

// Hotel represents an accommodation property in Makkah or Madinah
type Hotel struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	City     string     `json:"city"`
	Category int        `json:"category"` // star rating
	Address  string     `json:"address"`
	Distance string     `json:"distance"` // walking distance from the Haram
	Rooms    []RoomTier `json:"rooms"`
	Status   string     `json:"status"`
}

// RoomTier is one room type with its nightly price
type RoomTier struct {
	Type          string  `json:"type"`
	Beds          int     `json:"beds"`
	PricePerNight float64 `json:"pricePerNight"`
}

// Package represents a complete Hajj/Umrah package
type Package struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	DurationDays   int             `json:"durationDays"`
	PriceTiers     []PriceTier     `json:"priceTiers"`
	Itinerary      []ItineraryDay  `json:"itinerary"`
	Accommodations []Accommodation `json:"accommodations"`
	FlightID       string          `json:"flightId"`
	Status         string          `json:"status"`
}

// PriceTier is one occupancy-based price option of a package
type PriceTier struct {
	Label     string  `json:"label"`
	Occupancy int     `json:"occupancy"`
	Price     float64 `json:"price"`
}

// ItineraryDay is one day of a package or tour itinerary. Day numbers
// are kept contiguous: removing a day renumbers the remainder.
type ItineraryDay struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Accommodation is one hotel stay inside a package
type Accommodation struct {
	City      string `json:"city"`
	HotelName string `json:"hotelName"`
	Nights    int    `json:"nights"`
}

// Tour represents a guided ziyarat tour
type Tour struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	City         string         `json:"city"`
	DurationDays int            `json:"durationDays"`
	Price        float64        `json:"price"`
	Itinerary    []ItineraryDay `json:"itinerary"`
	Highlights   []string       `json:"highlights"`
	Status       string         `json:"status"`
}

// Visa represents one visa application handled by the back office
type Visa struct {
	ID             string  `json:"id"`
	ApplicantName  string  `json:"applicantName"`
	PassportNumber string  `json:"passportNumber"`
	Country        string  `json:"country"`
	VisaType       string  `json:"visaType"`
	Fee            float64 `json:"fee"`
	SubmittedAt    string  `json:"submittedAt"`
	Notes          string  `json:"notes"`
	Status         string  `json:"status"`
}

// GroupTicketing represents a group seat booking on a chartered flight
type GroupTicketing struct {
	ID           string      `json:"id"`
	GroupName    string      `json:"groupName"`
	Airline      string      `json:"airline"`
	Sector       string      `json:"sector"`
	TravelDate   string      `json:"travelDate"`
	ReturnDate   string      `json:"returnDate"`
	SeatsBooked  int         `json:"seatsBooked"`
	PricePerSeat float64     `json:"pricePerSeat"`
	Passengers   []Passenger `json:"passengers"`
	ReceiptURL   string      `json:"receiptUrl"`
	Status       string      `json:"status"`
}

// Passenger is one traveller in a group booking
type Passenger struct {
	Name           string `json:"name"`
	PassportNumber string `json:"passportNumber"`
}

// Content represents a managed content page (landing copy, FAQs, ...)
type Content struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
	UpdatedAt string `json:"updatedAt"`
}

// PaymentVoucher represents a payment received from an agency
type PaymentVoucher struct {
	ID            string  `json:"id"`
	VoucherNumber string  `json:"voucherNumber"`
	AgencyID      string  `json:"agencyId"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Date          string  `json:"date"`
	Description   string  `json:"description"`
	ReceiptURL    string  `json:"receiptUrl"`
	Status        string  `json:"status"`
}

// AgencyUser represents a partner agency account on the platform
type AgencyUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	AgencyName string `json:"agencyName"`
	Role       string `json:"role"`
	Active     bool   `json:"active"`
}

// Airline is a lookup record resolved from flight/booking airline ids
type Airline struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Sector is a lookup record for a route, e.g. "JED-KHI"
type Sector struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Bank is a lookup record for payment voucher bank accounts
type Bank struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
}

// AdminUser represents a back-office operator (stored locally)
type AdminUser struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	Password  string    `db:"password" json:"-"` // Password hash, not returned in JSON
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// AuditEvent records one admin mutation against a platform resource
type AuditEvent struct {
	ID         string    `db:"id" json:"id"`
	Actor      string    `db:"actor" json:"actor"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID string    `db:"resource_id" json:"resourceId"`
	Payload    string    `db:"payload" json:"payload,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
