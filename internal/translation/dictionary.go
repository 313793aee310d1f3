package translation

import "strings"

// dictionary is the hand-authored table of known UI strings and menu
// terms, keyed by target language then by trim-normalized Turkish source
// text. It is compiled in; changes ship with a deployment.
var dictionary = map[string]map[string]string{
	"en": {
		"Duyurular":        "Announcements",
		"Hoş Geldiniz":     "Welcome",
		"Günün Menüsü":     "Menu of the Day",
		"Oda Servisi":      "Room Service",
		"Resepsiyon":       "Reception",
		"Kahvaltı":         "Breakfast",
		"Havuz":            "Pool",
		"Ücretsiz":         "Free",
		"Kapat":            "Close",
		"Detaylar":         "Details",
		"Menüye göz atın":  "See the menu",
		"Havuz Bakımı":     "Pool Maintenance",
		"İyi günler":       "Have a nice day",
		"Teşekkür ederiz":  "Thank you",
		"Açık":             "Open",
		"Kapalı":           "Closed",
		"Günaydın":         "Good morning",
		"Hoş geldiniz":     "Welcome",
		"Özel indirim":     "Special discount",
		"Çay":              "Tea",
		"Türk Kahvesi":     "Turkish Coffee",
	},
	"de": {
		"Duyurular":       "Ankündigungen",
		"Hoş Geldiniz":    "Willkommen",
		"Günün Menüsü":    "Tagesmenü",
		"Oda Servisi":     "Zimmerservice",
		"Resepsiyon":      "Rezeption",
		"Kahvaltı":        "Frühstück",
		"Havuz":           "Pool",
		"Ücretsiz":        "Kostenlos",
		"Kapat":           "Schließen",
		"Detaylar":        "Details",
		"Havuz Bakımı":    "Poolwartung",
		"Teşekkür ederiz": "Vielen Dank",
	},
	"ru": {
		"Duyurular":       "Объявления",
		"Hoş Geldiniz":    "Добро пожаловать",
		"Günün Menüsü":    "Меню дня",
		"Oda Servisi":     "Обслуживание номеров",
		"Resepsiyon":      "Ресепшн",
		"Kahvaltı":        "Завтрак",
		"Havuz":           "Бассейн",
		"Ücretsiz":        "Бесплатно",
		"Kapat":           "Закрыть",
		"Teşekkür ederiz": "Спасибо",
	},
	"fr": {
		"Duyurular":    "Annonces",
		"Hoş Geldiniz": "Bienvenue",
		"Günün Menüsü": "Menu du jour",
		"Oda Servisi":  "Service en chambre",
		"Kahvaltı":     "Petit-déjeuner",
		"Ücretsiz":     "Gratuit",
	},
}

// normalize trims surrounding whitespace. Case and punctuation are kept
// as-is so dictionary keys stay exact matches.
func normalize(text string) string {
	return strings.TrimSpace(text)
}

// lookupDictionary returns the static translation for the normalized text,
// if one is authored for the target language.
func lookupDictionary(target, normalized string) (string, bool) {
	entries, ok := dictionary[target]
	if !ok {
		return "", false
	}
	value, ok := entries[normalized]
	return value, ok
}
