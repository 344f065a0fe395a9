package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/teacherspet/roster/internal/config"
)

type contextKey string

const teacherIDKey contextKey = "teacherID"

// TeacherID returns the authenticated teacher's ID from the context,
// or zero when the request did not pass through Auth.
func TeacherID(ctx context.Context) int64 {
	id, _ := ctx.Value(teacherIDKey).(int64)
	return id
}

// Auth returns middleware that verifies the caller's JWT and injects
// the teacher ID into the request context.
//
// The token is read from the x-auth-token header, falling back to
// Authorization: Bearer. It must be signed with HS256 and carry the
// teacher's ID in the "id" claim. The service never issues tokens; it
// only verifies them.
func Auth(cfg *config.AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				slog.Warn("auth: missing token",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				unauthorized(w, "missing authentication token", "AUTH_MISSING_TOKEN")
				return
			}

			claims := jwt.MapClaims{}
			_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil {
				slog.Warn("auth: invalid token",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
					"error", err,
				)
				unauthorized(w, "invalid or expired token", "AUTH_INVALID_TOKEN")
				return
			}

			id, ok := teacherIDClaim(claims)
			if !ok {
				slog.Warn("auth: token missing teacher id claim", "path", r.URL.Path)
				unauthorized(w, "invalid or expired token", "AUTH_INVALID_TOKEN")
				return
			}

			ctx := context.WithValue(r.Context(), teacherIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken reads the JWT from x-auth-token or a Bearer header.
func extractToken(r *http.Request) string {
	if token := r.Header.Get("x-auth-token"); token != "" {
		return token
	}
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// teacherIDClaim pulls the numeric teacher ID out of the "id" claim.
// JSON numbers decode as float64.
func teacherIDClaim(claims jwt.MapClaims) (int64, bool) {
	switch v := claims["id"].(type) {
	case float64:
		if v <= 0 {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}

func unauthorized(w http.ResponseWriter, msg, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + msg + `","code":"` + code + `"}`))
}
