package context

import (
	"context"

	"github.com/octabyte/emaar-web/models"
)

// GetSessionFromContext returns the loaded session, or the zero session when
// the session middleware did not run.
func GetSessionFromContext(ctx context.Context) models.Session {
	s, _ := ctx.Value(sessionKey).(models.Session)
	return s
}

func GetSessionIDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(sessionIDKey).(string)
	return sid
}
