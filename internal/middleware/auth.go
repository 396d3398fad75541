package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/filedrive/filedrive/internal/ctxkeys"
)

// Auth verifies the session JWT issued by the external identity provider and
// attaches the caller identity to the request context. Requests without a
// valid token continue unauthenticated; each operation decides whether that
// is an error or an empty result.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifyJWT(token, jwtSecret)
			if err != nil {
				// Invalid token, continue without auth
				next.ServeHTTP(w, r)
				return
			}

			subject, _ := claims["sub"].(string)
			tokenIdentifier, _ := claims["token_identifier"].(string)
			if tokenIdentifier == "" {
				// Fall back to issuer|subject, the common provider convention
				issuer, _ := claims["iss"].(string)
				if issuer != "" && subject != "" {
					tokenIdentifier = issuer + "|" + subject
				}
			}
			if tokenIdentifier == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithIdentity(r.Context(), &ctxkeys.Identity{
				TokenIdentifier: tokenIdentifier,
				Subject:         subject,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func verifyJWT(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
