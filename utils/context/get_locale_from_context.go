package context

import (
	"context"

	"github.com/octabyte/emaar-web/enums"
)

// GetLocaleFromContext falls back to the default locale.
func GetLocaleFromContext(ctx context.Context) enums.Locale {
	if l, ok := ctx.Value(localeKey).(enums.Locale); ok && l != "" {
		return l
	}
	return enums.DefaultLocale
}

func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
