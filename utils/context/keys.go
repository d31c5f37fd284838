package context

import (
	"context"

	"github.com/octabyte/emaar-web/enums"
	"github.com/octabyte/emaar-web/models"
)

type ctxKey string

const (
	sessionKey   ctxKey = "requestSession"
	sessionIDKey ctxKey = "requestSessionID"
	localeKey    ctxKey = "requestLocale"
	requestIDKey ctxKey = "requestID"
)

// WithSession stores the browser session id and its loaded session.
func WithSession(ctx context.Context, sid string, s models.Session) context.Context {
	ctx = context.WithValue(ctx, sessionIDKey, sid)
	return context.WithValue(ctx, sessionKey, s)
}

func WithLocale(ctx context.Context, locale enums.Locale) context.Context {
	return context.WithValue(ctx, localeKey, locale)
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}
