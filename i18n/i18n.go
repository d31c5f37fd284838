package i18n

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/ar"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/language"

	"github.com/octabyte/emaar-web/enums"
	"github.com/octabyte/emaar-web/utils/logger"
)

// Bundle is the bilingual string catalog plus locale aware number
// formatting.
type Bundle struct {
	uni     *ut.UniversalTranslator
	matcher language.Matcher
}

var supportedTags = []language.Tag{language.Arabic, language.English}

func New() (*Bundle, error) {
	arLocale := ar.New()
	enLocale := en.New()
	uni := ut.New(arLocale, arLocale, enLocale)

	for code, messages := range catalog {
		trans, found := uni.GetTranslator(code)
		if !found {
			return nil, fmt.Errorf("no translator for locale %q", code)
		}
		for key, text := range messages {
			if err := trans.Add(key, text, false); err != nil {
				return nil, fmt.Errorf("add %s/%s: %w", code, key, err)
			}
		}
	}

	return &Bundle{
		uni:     uni,
		matcher: language.NewMatcher(supportedTags),
	}, nil
}

// MustNew panics when the embedded catalog is broken.
func MustNew() *Bundle {
	b, err := New()
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Bundle) translator(locale enums.Locale) ut.Translator {
	trans, found := b.uni.GetTranslator(string(locale))
	if !found {
		trans, _ = b.uni.GetTranslator(string(enums.DefaultLocale))
	}
	return trans
}

// T translates key. Unknown keys come back unchanged so a missing string is
// visible on the page instead of blank.
func (b *Bundle) T(locale enums.Locale, key string, params ...string) string {
	text, err := b.translator(locale).T(key, params...)
	if err != nil {
		if !errors.Is(err, ut.ErrUnknowTranslation) {
			logger.LogWarnf("translate %s/%s: %v", locale, key, err)
		}
		return key
	}
	return text
}

// Translator returns a closure bound to locale, handy for templates.
func (b *Bundle) Translator(locale enums.Locale) func(key string, params ...string) string {
	return func(key string, params ...string) string {
		return b.T(locale, key, params...)
	}
}

func (b *Bundle) Locale(locale enums.Locale) locales.Translator {
	return b.translator(locale)
}

func (b *Bundle) FormatNumber(locale enums.Locale, n float64, decimals uint64) string {
	return b.translator(locale).FmtNumber(n, decimals)
}

func (b *Bundle) FormatPercent(locale enums.Locale, n float64, decimals uint64) string {
	return b.translator(locale).FmtPercent(n, decimals)
}

// Negotiate picks the best supported locale for an Accept-Language header,
// falling back to the default locale.
func (b *Bundle) Negotiate(acceptLanguage string) enums.Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return enums.DefaultLocale
	}
	_, idx, confidence := b.matcher.Match(tags...)
	if confidence == language.No {
		return enums.DefaultLocale
	}
	base, _ := supportedTags[idx].Base()
	if locale, ok := enums.ParseLocale(base.String()); ok {
		return locale
	}
	return enums.DefaultLocale
}

// Dir returns the html dir attribute value.
func Dir(locale enums.Locale) string {
	if locale.RTL() {
		return "rtl"
	}
	return "ltr"
}

// Other returns the locale the language switcher points to.
func Other(locale enums.Locale) enums.Locale {
	if locale == enums.LocaleEnglish {
		return enums.LocaleArabic
	}
	return enums.LocaleEnglish
}

// SwitchPath rewrites a locale prefixed path to the other locale.
func SwitchPath(path string, to enums.Locale) string {
	trimmed := strings.TrimPrefix(path, "/")
	parts := strings.SplitN(trimmed, "/", 2)
	if _, ok := enums.ParseLocale(parts[0]); ok {
		if len(parts) == 1 {
			return "/" + string(to)
		}
		return "/" + string(to) + "/" + parts[1]
	}
	return "/" + string(to) + "/" + trimmed
}
