package graph

import (
	"context"
	"net/http"
	"time"

	"storefront-be/internal/auth"
	"storefront-be/internal/utils"
)

const tokenTTL = 24 * time.Hour

type responseWriterKey struct{}

// withResponseWriter exposes w to resolvers so auth mutations can set the
// token cookie before the response body is written.
func withResponseWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), responseWriterKey{}, w)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// setTokenCookie stores the access token; a negative maxAge deletes it.
// Outside an HTTP request it does nothing.
func setTokenCookie(ctx context.Context, token string, maxAge int, secure bool) {
	w, ok := ctx.Value(responseWriterKey{}).(http.ResponseWriter)
	if !ok {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func currentUserID(ctx context.Context) (string, error) {
	id, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return "", ErrUnauthenticated
	}
	return id, nil
}
