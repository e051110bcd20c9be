package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/topicboard/engine/internal/api/types"
	"github.com/topicboard/engine/internal/models"
	"github.com/topicboard/engine/internal/repository"
)

type ctxKey string

const currentUserKey ctxKey = "current_user"

// Auth validates a Bearer JWT and resolves the subject to a stored user,
// which it places in the request context. Every failure mode — missing
// header, bad signature, expired token, unparseable subject, or a subject
// that no longer maps to a user row — yields the same 401, so a token for a
// deleted account is indistinguishable from a forged one.
func Auth(hmacSecret []byte, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := r.Header.Get("Authorization")
			if !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
				unauthorized(w)
				return
			}
			tokenStr := strings.TrimSpace(ah[len("Bearer "):])
			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return hmacSecret, nil
			})
			if err != nil || !token.Valid {
				unauthorized(w)
				return
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				unauthorized(w)
				return
			}
			sub, _ := claims["sub"].(string)
			id, err := strconv.ParseUint(sub, 10, 64)
			if err != nil {
				unauthorized(w)
				return
			}

			var user models.User
			if err := users.GetByID(r.Context(), uint(id), &user); err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), currentUserKey, &user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects authenticated users without the admin role. It must
// run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r.Context())
		if user == nil {
			unauthorized(w)
			return
		}
		if !user.IsAdmin() {
			writeAuthError(w, http.StatusForbidden, "forbidden", "admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser returns the authenticated user from the context, or nil.
func CurrentUser(ctx context.Context) *models.User {
	if v := ctx.Value(currentUserKey); v != nil {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

func unauthorized(w http.ResponseWriter) {
	writeAuthError(w, http.StatusUnauthorized, "unauthorized", "could not validate credentials")
}

func writeAuthError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.APIResponse{
		Success: false,
		Error:   &types.APIError{Code: code, Message: msg},
	})
}
