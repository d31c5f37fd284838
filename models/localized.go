package models

import "github.com/octabyte/emaar-web/enums"

// Localized holds a bilingual text field as sent by the API.
type Localized struct {
	Ar string `json:"ar"`
	En string `json:"en"`
}

// In returns the text for the locale, falling back to the other language
// when the requested one is empty.
func (l Localized) In(locale enums.Locale) string {
	if locale == enums.LocaleEnglish {
		if l.En != "" {
			return l.En
		}
		return l.Ar
	}
	if l.Ar != "" {
		return l.Ar
	}
	return l.En
}
