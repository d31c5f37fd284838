package models

import "github.com/octabyte/emaar-web/enums"

// User is the profile returned by the upstream API on login. It is cached,
// never edited locally.
type User struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  Role   `json:"role"`
}

type Role struct {
	ID       uint64     `json:"id,omitempty"`
	RoleName enums.Role `json:"role_name"`
}

// HasRole reports whether the user's role is in the allow-list.
func (u *User) HasRole(roles []enums.Role) bool {
	if u == nil {
		return false
	}
	return u.Role.RoleName.In(roles)
}
