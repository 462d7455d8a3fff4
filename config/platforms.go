package config

import "rentaltrack/server/internal/models"

// PlatformStyle is how a booking platform is drawn on the calendar
type PlatformStyle struct {
	Platform models.Platform `json:"platform"`
	Label    string          `json:"label"`
	Color    string          `json:"color"`
}

// PlatformPalette lists the display style of every supported platform
var PlatformPalette = []PlatformStyle{
	{Platform: models.PlatformAirbnb, Label: "Airbnb", Color: "#FF5A5F"},
	{Platform: models.PlatformBooking, Label: "Booking", Color: "#003580"},
	{Platform: models.PlatformVRBO, Label: "VRBO", Color: "#245ABC"},
	{Platform: models.PlatformDirect, Label: "Direct", Color: "#2E7D32"},
	{Platform: models.PlatformOther, Label: "Other", Color: "#757575"},
}

// GetPlatformLabels returns the labels of the supported platforms
func GetPlatformLabels() []string {
	labels := make([]string, len(PlatformPalette))
	for i, style := range PlatformPalette {
		labels[i] = style.Label
	}
	return labels
}

// GetPlatformStyle returns the style for a platform, falling back to Other
func GetPlatformStyle(platform models.Platform) PlatformStyle {
	for _, style := range PlatformPalette {
		if style.Platform == platform {
			return style
		}
	}
	if platform == "" {
		return GetPlatformStyle(models.PlatformDirect)
	}
	return GetPlatformStyle(models.PlatformOther)
}
