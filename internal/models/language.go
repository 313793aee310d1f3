package models

// SourceLanguage is the language announcements are authored in.
const SourceLanguage = "tr"

// DefaultLocale is used for any language missing from the locale table.
const DefaultLocale = "en-US"

// locales maps supported display languages onto BCP 47 locales used for
// date formatting.
var locales = map[string]string{
	"tr": "tr-TR",
	"en": "en-US",
	"de": "de-DE",
	"ru": "ru-RU",
	"fr": "fr-FR",
	"ar": "ar-SA",
}

// LocaleFor resolves the date-formatting locale for a display language.
func LocaleFor(language string) string {
	if locale, ok := locales[language]; ok {
		return locale
	}
	return DefaultLocale
}
