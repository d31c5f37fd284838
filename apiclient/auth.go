package apiclient

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/octabyte/emaar-web/models"
)

// LoginResult is what the API hands back for valid credentials.
type LoginResult struct {
	Token string
	User  models.User
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body, err := c.do(ctx, call{
		op:     "Login",
		method: http.MethodPost,
		path:   "/login",
		build: func(r *resty.Request) {
			r.SetBody(loginRequest{Email: email, Password: password})
		},
	})
	if err != nil {
		return LoginResult{}, err
	}

	token := gjson.GetBytes(body, "token").String()
	if token == "" {
		token = gjson.GetBytes(body, "data.token").String()
	}
	userRaw := gjson.GetBytes(body, "user")
	if !userRaw.Exists() {
		userRaw = gjson.GetBytes(body, "data.user")
	}
	if token == "" || !userRaw.IsObject() {
		return LoginResult{}, malformed("login", nil)
	}

	var user models.User
	if err := json.Unmarshal([]byte(userRaw.Raw), &user); err != nil {
		return LoginResult{}, malformed("login", err)
	}
	return LoginResult{Token: token, User: user}, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, call{
		op:     "Logout",
		method: http.MethodPost,
		path:   "/logout",
		token:  token,
	})
	return err
}
