package banner

import "time"

// dateLayouts maps locales onto their conventional short date layout.
// Unmapped locales use the en-US layout.
var dateLayouts = map[string]string{
	"tr-TR": "02.01.2006",
	"de-DE": "02.01.2006",
	"ru-RU": "02.01.2006",
	"fr-FR": "02/01/2006",
	"en-US": "01/02/2006",
	"ar-SA": "02/01/2006",
}

func formatDate(t time.Time, locale string) string {
	layout, ok := dateLayouts[locale]
	if !ok {
		layout = dateLayouts["en-US"]
	}
	return t.Format(layout)
}
