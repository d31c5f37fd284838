package middleware

const (
	SessionHeader     = "Session"
	RequestSessionKey = "requestSession"
	SessionIDKey      = "requestSessionID"
	TokenKey          = "requestToken"
	LocaleKey         = "requestLocale"
	Authorization     = "Authorization"
	RequestIDHeader   = "X-Request-ID"

	DefaultCookieName       = "emaar_session"
	DefaultLoginPath        = "/login"
	DefaultUnauthorizedPath = "/unauthorized"
)
