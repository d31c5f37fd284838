package enums

type Locale string

const (
	LocaleArabic  Locale = "ar"
	LocaleEnglish Locale = "en"

	DefaultLocale = LocaleArabic
)

var Locales = []Locale{LocaleArabic, LocaleEnglish}

func ParseLocale(s string) (Locale, bool) {
	switch Locale(s) {
	case LocaleArabic, LocaleEnglish:
		return Locale(s), true
	default:
		return "", false
	}
}

// RTL reports whether the locale is written right to left.
func (l Locale) RTL() bool {
	return l == LocaleArabic
}
