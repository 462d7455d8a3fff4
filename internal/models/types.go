package models

import "strings"

// RentalType distinguishes nightly rentals from leases.
type RentalType string

const (
	ShortTerm RentalType = "short_term"
	LongTerm  RentalType = "long_term"
)

func (t RentalType) Valid() bool {
	return t == ShortTerm || t == LongTerm
}

// String returns the display name of a RentalType
func (t RentalType) String() string {
	switch t {
	case ShortTerm:
		return "Short-term"
	case LongTerm:
		return "Long-term"
	default:
		return "Unknown"
	}
}

// BookingSource is where a property is primarily listed.
type BookingSource string

const (
	SourceAirbnb BookingSource = "airbnb"
	SourceDirect BookingSource = "direct"
	SourceVRBO   BookingSource = "vrbo"
)

// Platform is the channel an income transaction was booked through.
type Platform string

const (
	PlatformAirbnb  Platform = "airbnb"
	PlatformBooking Platform = "booking"
	PlatformVRBO    Platform = "vrbo"
	PlatformDirect  Platform = "direct"
	PlatformOther   Platform = "other"
)

// Platforms lists every known platform in display order.
var Platforms = []Platform{PlatformAirbnb, PlatformBooking, PlatformVRBO, PlatformDirect, PlatformOther}

// ParsePlatform maps a free-text label onto the closed platform set.
// An empty label is a direct booking; anything unrecognised is PlatformOther.
func ParsePlatform(label string) Platform {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "":
		return PlatformDirect
	case "airbnb":
		return PlatformAirbnb
	case "booking", "booking.com":
		return PlatformBooking
	case "vrbo":
		return PlatformVRBO
	case "direct":
		return PlatformDirect
	default:
		return PlatformOther
	}
}

// Label returns the display label of the platform.
func (p Platform) Label() string {
	switch p {
	case PlatformAirbnb:
		return "Airbnb"
	case PlatformBooking:
		return "Booking"
	case PlatformVRBO:
		return "VRBO"
	case PlatformDirect, "":
		return "Direct"
	default:
		return "Other"
	}
}
