package app

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

var titleTemplates = []func(dest string) string{
	func(d string) string { return "Week-end à " + d },
	func(d string) string { return "Escapade à " + d },
	func(d string) string { return "Séjour à " + d },
	func(d string) string { return d + " en liberté" },
}

var descriptionTemplates = []func(city string, nights, stars int) string{
	func(city string, nights, stars int) string {
		return fmt.Sprintf("Vol depuis %s, %d nuits en hôtel %d★ en centre-ville.", city, nights, stars)
	},
	func(_ string, nights, stars int) string {
		return fmt.Sprintf("Escapade %d jours — vol A/R et hébergement %d★ au cœur de la ville.", nights+1, stars)
	},
	func(city string, nights, stars int) string {
		return fmt.Sprintf("Vol A/R depuis %s, %d nuits en hôtel %d★ avec petit-déjeuner.", city, nights, stars)
	},
	func(city string, nights, stars int) string {
		return fmt.Sprintf("Depuis %s — vol direct et %d nuits dans un %d★ idéalement situé.", city, nights, stars)
	},
}

// stableHash is the classic h*31+c rolling hash over UTF-16 code units,
// wrapped to 32 bits. Copy selection depends on it staying stable.
func stableHash(s string) int64 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(u)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}

// GenerateTitle picks a title template from the destination name.
func GenerateTitle(destination string) string {
	i := stableHash(destination) % int64(len(titleTemplates))
	return titleTemplates[i](destination)
}

// GenerateDescription picks a description template from the destination name
// and fills it with the departure city and stay details.
func GenerateDescription(destination, departureCity string, nights, stars int) string {
	i := stableHash(destination) % int64(len(descriptionTemplates))
	return descriptionTemplates[i](departureCity, nights, stars)
}

// CountryFlag converts an ISO 3166-1 alpha-2 code to its emoji flag.
func CountryFlag(code string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(code) {
		if r < 'A' || r > 'Z' {
			continue
		}
		b.WriteRune(0x1F1E6 + r - 'A')
	}
	return b.String()
}

// SkyscannerLink is the outbound search link for a route.
func SkyscannerLink(origin, destination string) string {
	return fmt.Sprintf("https://www.skyscanner.fr/transport/vols/%s/%s/",
		strings.ToLower(origin), strings.ToLower(destination))
}
