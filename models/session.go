package models

import "time"

type Session struct {
	Token     string    `json:"token"`
	User      *User     `json:"user"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// IsAuthenticated is true only when both a token and a user are present.
// A cached user without a token does not count.
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

func (s Session) Role() string {
	if s.User == nil {
		return ""
	}
	return string(s.User.Role.RoleName)
}
