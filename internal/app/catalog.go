package app

import "bonsplans/internal/domain"

type country struct{ Name, Code string }

// IATA code -> French city name.
var iataToCity = map[string]string{
	// French origins
	"CDG": "Paris",
	"ORY": "Paris",
	"TLS": "Toulouse",
	"LYS": "Lyon",
	"MRS": "Marseille",
	"NCE": "Nice",
	"BOD": "Bordeaux",
	// destinations
	"RAK": "Marrakech",
	"LIS": "Lisbonne",
	"SVQ": "Séville",
	"BCN": "Barcelone",
	"NAP": "Naples",
	"IST": "Istanbul",
	"FCO": "Rome",
	"OPO": "Porto",
	"ATH": "Athènes",
	"PRG": "Prague",
	"BUD": "Budapest",
	"AMS": "Amsterdam",
	"DUB": "Dublin",
	"BER": "Berlin",
	"CPH": "Copenhague",
	"VIE": "Vienne",
	"MXP": "Milan",
	"KRK": "Cracovie",
	"TUN": "Tunis",
	"DBV": "Dubrovnik",
}

var iataToCountry = map[string]country{
	"RAK": {"Maroc", "MA"},
	"CMN": {"Maroc", "MA"},
	"LIS": {"Portugal", "PT"},
	"OPO": {"Portugal", "PT"},
	"SVQ": {"Espagne", "ES"},
	"BCN": {"Espagne", "ES"},
	"MAD": {"Espagne", "ES"},
	"NAP": {"Italie", "IT"},
	"FCO": {"Italie", "IT"},
	"MXP": {"Italie", "IT"},
	"IST": {"Turquie", "TR"},
	"ATH": {"Grèce", "GR"},
	"PRG": {"Tchéquie", "CZ"},
	"BUD": {"Hongrie", "HU"},
	"AMS": {"Pays-Bas", "NL"},
	"DUB": {"Irlande", "IE"},
	"BER": {"Allemagne", "DE"},
	"CPH": {"Danemark", "DK"},
	"VIE": {"Autriche", "AT"},
	"KRK": {"Pologne", "PL"},
	"TUN": {"Tunisie", "TN"},
	"DBV": {"Croatie", "HR"},
}

// Country code -> French name, for providers that answer in English.
var countryNameFR = map[string]string{
	"MA": "Maroc", "PT": "Portugal", "ES": "Espagne", "IT": "Italie",
	"TR": "Turquie", "GR": "Grèce", "CZ": "Tchéquie", "HU": "Hongrie",
	"NL": "Pays-Bas", "IE": "Irlande", "DE": "Allemagne", "DK": "Danemark",
	"AT": "Autriche", "PL": "Pologne", "TN": "Tunisie", "HR": "Croatie",
	"GB": "Royaume-Uni", "BE": "Belgique", "CH": "Suisse", "RO": "Roumanie",
	"BG": "Bulgarie", "ME": "Monténégro", "RS": "Serbie", "AL": "Albanie",
}

// English city name -> French city name.
var cityNameFR = map[string]string{
	"Marrakesh": "Marrakech", "Lisbon": "Lisbonne", "Seville": "Séville",
	"Barcelona": "Barcelone", "Naples": "Naples", "Istanbul": "Istanbul",
	"Rome": "Rome", "Porto": "Porto", "Athens": "Athènes", "Prague": "Prague",
	"Budapest": "Budapest", "Amsterdam": "Amsterdam", "Dublin": "Dublin",
	"Berlin": "Berlin", "Copenhagen": "Copenhague", "Vienna": "Vienne",
	"Milan": "Milan", "Krakow": "Cracovie", "Tunis": "Tunis",
	"Dubrovnik": "Dubrovnik", "London": "Londres", "Brussels": "Bruxelles",
	"Munich": "Munich", "Venice": "Venise", "Florence": "Florence",
	"Malaga": "Malaga", "Split": "Split", "Palermo": "Palerme",
}

const unsplash = "https://images.unsplash.com/"

var destinationImages = map[string]string{
	"Marrakech":  unsplash + "photo-1597212618440-806262de4f6b?w=600&h=400&fit=crop",
	"Lisbonne":   unsplash + "photo-1585208798174-6cedd86e019a?w=600&h=400&fit=crop",
	"Séville":    unsplash + "photo-1515443961218-a51367888e4b?w=600&h=400&fit=crop",
	"Barcelone":  unsplash + "photo-1583422409516-2895a77efded?w=600&h=400&fit=crop",
	"Naples":     unsplash + "photo-1516483638261-f4dbaf036963?w=600&h=400&fit=crop",
	"Istanbul":   unsplash + "photo-1524231757912-21f4fe3a7200?w=600&h=400&fit=crop",
	"Rome":       unsplash + "photo-1552832230-c0197dd311b5?w=600&h=400&fit=crop",
	"Porto":      unsplash + "photo-1555881400-74d7acaacd8b?w=600&h=400&fit=crop",
	"Athènes":    unsplash + "photo-1555993539-1732b0258235?w=600&h=400&fit=crop",
	"Prague":     unsplash + "photo-1519677100203-a0e668c92439?w=600&h=400&fit=crop",
	"Budapest":   unsplash + "photo-1549213783-8284d0336c4f?w=600&h=400&fit=crop",
	"Amsterdam":  unsplash + "photo-1534351590666-13e3e96b5017?w=600&h=400&fit=crop",
	"Dublin":     unsplash + "photo-1549918864-48ac978761a4?w=600&h=400&fit=crop",
	"Berlin":     unsplash + "photo-1560969184-10fe8719e047?w=600&h=400&fit=crop",
	"Copenhague": unsplash + "photo-1513622470522-26c3c8a854bc?w=600&h=400&fit=crop",
	"Vienne":     unsplash + "photo-1516550893923-42d28e5677af?w=600&h=400&fit=crop",
	"Milan":      unsplash + "photo-1520440229-6469a149ac59?w=600&h=400&fit=crop",
	"Cracovie":   unsplash + "photo-1558489580-faa74691fdc5?w=600&h=400&fit=crop",
	"Tunis":      unsplash + "photo-1572204097183-e1ab140342ed?w=600&h=400&fit=crop",
	"Dubrovnik":  unsplash + "photo-1555990538-1e8c8402d7ac?w=600&h=400&fit=crop",
}

const defaultImage = unsplash + "photo-1488646953014-85cb44e25828?w=600&h=400&fit=crop"

// popularDestinations are priced directly when the inspiration search is empty.
var popularDestinations = []string{"RAK", "LIS", "SVQ", "BCN", "NAP", "IST", "FCO", "OPO", "ATH"}

// DestinationImage returns the curated photo for a city, or a generic travel photo.
func DestinationImage(city string) string {
	if u, ok := destinationImages[city]; ok {
		return u
	}
	return defaultImage
}

// CityName resolves an IATA code to its French city name.
func CityName(iata string) (string, bool) {
	c, ok := iataToCity[iata]
	return c, ok
}

// Country resolves an IATA code to a French country name and ISO code,
// falling back to Europe/EU.
func Country(iata string) (name, code string) {
	if c, ok := iataToCountry[iata]; ok {
		return c.Name, c.Code
	}
	return "Europe", "EU"
}

var fallbackDeals = []domain.Deal{
	{
		Destination:   "Marrakech",
		Country:       "Maroc",
		CountryCode:   "MA",
		Title:         "Escapade à Marrakech",
		Description:   "Vol A/R depuis Paris, 4 nuits en hôtel 4★ avec petit-déjeuner.",
		Price:         249,
		OriginalPrice: 399,
		Category:      domain.CategoryFlightHotel,
		Href:          "https://www.skyscanner.fr/transport/vols/pari/raka?adultsv2=1",
		Image:         destinationImages["Marrakech"],
		DepartureCity: "Paris",
		Nights:        4,
		HotelStars:    4,
	},
	{
		Destination:   "Lisbonne",
		Country:       "Portugal",
		CountryCode:   "PT",
		Title:         "Séjour à Lisbonne",
		Description:   "Vol depuis Paris, 3 nuits en hôtel 3★ en centre-ville.",
		Price:         189,
		OriginalPrice: 329,
		Category:      domain.CategoryFlightHotel,
		Href:          "https://www.skyscanner.fr/transport/vols/pari/lisb?adultsv2=1",
		Image:         destinationImages["Lisbonne"],
		DepartureCity: "Paris",
		Nights:        3,
		HotelStars:    3,
	},
	{
		Destination:   "Séville",
		Country:       "Espagne",
		CountryCode:   "ES",
		Title:         "Week-end à Séville",
		Description:   "Escapade 3 jours — vol A/R et hébergement 3★ au cœur de la ville.",
		Price:         175,
		OriginalPrice: 299,
		Category:      domain.CategoryFlightHotel,
		Href:          "https://www.skyscanner.fr/transport/vols/pari/sevq?adultsv2=1",
		Image:         destinationImages["Séville"],
		DepartureCity: "Paris",
		Nights:        2,
		HotelStars:    3,
	},
	{
		Destination:   "Barcelone",
		Country:       "Espagne",
		CountryCode:   "ES",
		Title:         "Barcelone en liberté",
		Description:   "Depuis Paris — vol direct et 3 nuits dans un 4★ idéalement situé.",
		Price:         199,
		OriginalPrice: 349,
		Category:      domain.CategoryFlightHotel,
		Href:          "https://www.skyscanner.fr/transport/vols/pari/bcn?adultsv2=1",
		Image:         destinationImages["Barcelone"],
		DepartureCity: "Paris",
		Nights:        3,
		HotelStars:    4,
	},
	{
		Destination:   "Naples",
		Country:       "Italie",
		CountryCode:   "IT",
		Title:         "Escapade à Naples",
		Description:   "Vol A/R depuis Lyon, 3 nuits en hôtel 3★ avec petit-déjeuner.",
		Price:         169,
		OriginalPrice: 289,
		Category:      domain.CategoryFlightHotel,
		Href:          "https://www.skyscanner.fr/transport/vols/lys/nap?adultsv2=1",
		Image:         destinationImages["Naples"],
		DepartureCity: "Lyon",
		Nights:        3,
		HotelStars:    3,
	},
	{
		Destination:   "Istanbul",
		Country:       "Turquie",
		CountryCode:   "TR",
		Title:         "Séjour à Istanbul",
		Description:   "Vol depuis Paris, 4 nuits en hôtel 4★ en centre-ville.",
		Price:         279,
		OriginalPrice: 449,
		Category:      domain.CategoryFlightHotel,
		Href:          "https://www.skyscanner.fr/transport/vols/pari/ista?adultsv2=1",
		Image:         destinationImages["Istanbul"],
		DepartureCity: "Paris",
		Nights:        4,
		HotelStars:    4,
	},
}

// FallbackDeals returns a copy of the hand-curated catalog shown whenever
// live data is unavailable.
func FallbackDeals() []domain.Deal {
	out := make([]domain.Deal, len(fallbackDeals))
	copy(out, fallbackDeals)
	return out
}
