package i18n

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/octabyte/emaar-web/enums"
)

var arabicValidation = map[string]string{
	"required": "الحقل {0} مطلوب",
	"email":    "الحقل {0} يجب أن يكون بريداً إلكترونياً صالحاً",
	"max":      "الحقل {0} يجب ألا يتجاوز {1}",
	"min":      "الحقل {0} يجب ألا يقل عن {1}",
	"len":      "الحقل {0} يجب أن يكون بطول {1}",
	"gt":       "الحقل {0} يجب أن يكون أكبر من {1}",
	"oneof":    "الحقل {0} يجب أن يكون إحدى القيم: {1}",
}

// NewValidator returns a validator whose errors can be rendered in both
// locales through ValidationMessages. Field names come from the `form` tag.
func (b *Bundle) NewValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	if err := en_translations.RegisterDefaultTranslations(v, b.translator(enums.LocaleEnglish)); err != nil {
		return nil, fmt.Errorf("register english validation messages: %w", err)
	}

	arTrans := b.translator(enums.LocaleArabic)
	for tag, text := range arabicValidation {
		tag, text := tag, text
		err := v.RegisterTranslation(tag, arTrans,
			func(trans ut.Translator) error {
				return trans.Add(tag, text, true)
			},
			func(trans ut.Translator, fe validator.FieldError) string {
				msg, err := trans.T(fe.Tag(), fe.Field(), fe.Param())
				if err != nil {
					return fe.Error()
				}
				return msg
			})
		if err != nil {
			return nil, fmt.Errorf("register arabic %s message: %w", tag, err)
		}
	}

	return v, nil
}

// ValidationMessages maps each failing field to a localized message. Errors
// that are not validator errors yield nil.
func (b *Bundle) ValidationMessages(locale enums.Locale, err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	trans := b.translator(locale)
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Translate(trans)
	}
	return out
}
