package middlewares

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// parseUserFromRequest validates the bearer token and returns the subject and
// username claims. Both middlewares strip any client-supplied userID header
// first so identity can only come from the token.
func parseUserFromRequest(r *http.Request) (string, string, error) {
	jwtSecret := []byte(os.Getenv("JWT_SECRET_KEY"))

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "", fmt.Errorf("authorization header is required")
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("could not parse token claims")
	}

	return formatSubject(claims["sub"]), fmt.Sprintf("%v", claims["name"]), nil
}

// formatSubject renders the numeric sub claim as a plain integer. JSON
// numbers decode as float64, and %v would print ids of a million and up in
// exponent notation ("1e+06"), which downstream ParseInt rejects.
func formatSubject(claim any) string {
	if f, ok := claim.(float64); ok {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprintf("%v", claim)
}

// AuthMiddleware requires a valid access token and attaches the caller's
// identity to the request headers for downstream handlers.
func AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Header.Del("userID")
		r.Header.Del("username")

		userID, username, err := parseUserFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		r.Header.Set("userID", userID)
		r.Header.Set("username", username)
		next.ServeHTTP(w, r)
	}
}

// OptionalAuthMiddleware attaches identity when a valid token is present but
// lets the request through either way. Identity-dependent queries behind it
// return empty results for anonymous callers instead of 401.
func OptionalAuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Header.Del("userID")
		r.Header.Del("username")

		if userID, username, err := parseUserFromRequest(r); err == nil {
			r.Header.Set("userID", userID)
			r.Header.Set("username", username)
		}
		next.ServeHTTP(w, r)
	}
}
