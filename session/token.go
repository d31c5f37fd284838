package session

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// TokenExpiry reads the exp claim of a JWT without verifying it. The API
// owns token validity; this only lets the session cache expire alongside
// the token. Opaque tokens report false.
func TokenExpiry(token string) (time.Time, bool) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return time.Time{}, false
	}

	exp := gjson.GetBytes(payload, "exp")
	if !exp.Exists() || exp.Type != gjson.Number {
		return time.Time{}, false
	}
	return time.Unix(exp.Int(), 0), true
}
