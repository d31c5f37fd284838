package session

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/octabyte/emaar-web/enums"
	"github.com/octabyte/emaar-web/models"
)

func fakeJWT(exp time.Time) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf(`{"sub":"7","exp":%d}`, exp.Unix())))
	return header + "." + payload + ".signature"
}

func staffSession(token string) models.Session {
	return models.Session{
		Token: token,
		User: &models.User{
			ID:   7,
			Name: "Khaled",
			Role: models.Role{RoleName: enums.RoleAdmin},
		},
	}
}
