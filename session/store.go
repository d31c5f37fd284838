// Package session keeps the authentication token and user profile the
// upstream API returned at login, keyed by an opaque browser session id.
package session

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/octabyte/emaar-web/models"
	"github.com/octabyte/emaar-web/utils/logger"
)

// Store persists sessions. Get never fails: anything it cannot read is an
// empty, logged-out session.
type Store interface {
	Get(ctx context.Context, id string) models.Session
	Set(ctx context.Context, id string, s models.Session) error
	Clear(ctx context.Context, id string) error
}

const DefaultTTL = 24 * time.Hour

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID rejects ids this package did not mint, so a forged cookie never
// reaches the backing store as an arbitrary key.
func ValidID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

func encode(s models.Session) ([]byte, error) {
	return json.Marshal(s)
}

// decode turns stored bytes into a Session. Malformed data, a missing token
// or an expired JWT all produce the zero Session.
func decode(id string, data []byte, now time.Time) models.Session {
	if len(data) == 0 {
		return models.Session{}
	}
	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		logger.LogWarn("discarding malformed session", zap.String("session_id", id), zap.Error(err))
		return models.Session{}
	}
	if s.Token == "" {
		return models.Session{}
	}
	if exp, ok := TokenExpiry(s.Token); ok && !exp.After(now) {
		logger.LogDebug("stored token expired", zap.String("session_id", id), zap.Time("exp", exp))
		return models.Session{}
	}
	return s
}

// ttlFor bounds the configured ttl by the token's own expiry.
func ttlFor(s models.Session, ttl time.Duration, now time.Time) time.Duration {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if exp, ok := TokenExpiry(s.Token); ok {
		if until := exp.Sub(now); until < ttl {
			return until
		}
	}
	return ttl
}
