package auth

import (
	"errors"
	"net/http"
	"strings"

	"storefront-be/internal/user"
)

const CookieName = "access_token"

var ErrNoToken = errors.New("no access token")

// Identity is the authenticated caller carried through a request.
type Identity struct {
	UserID string
	Email  string
	Role   user.Role
	Name   string
}

func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// FromRequest resolves the caller of r. Websocket clients that cannot set
// headers may pass the token as the access_token query parameter.
func FromRequest(r *http.Request) (*Identity, error) {
	token := ExtractAccessToken(r)
	if token == "" {
		token = r.URL.Query().Get(CookieName)
	}
	if token == "" {
		return nil, ErrNoToken
	}

	claims, err := user.ParseJWT(token)
	if err != nil {
		return nil, err
	}

	return &Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   user.Role(claims.Role),
		Name:   claims.Name,
	}, nil
}
