package jwtmiddleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/linemk/shop-api/internal/domain/models"
	"github.com/linemk/shop-api/internal/lib/api/response"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
	TokenKey  contextKey = "token"
)

const unauthenticated = "Unauthenticated."

// Authenticator разрешает токен в пользователя: подпись, срок, отзыв.
type Authenticator interface {
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// NewJWTMiddleware создаёт middleware для проверки bearer-токена.
// Проверка выполняется до обработчика; при успехе в контекст кладутся userID и сам токен.
func NewJWTMiddleware(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Извлекаем токен из заголовка Authorization (формат: "Bearer <token>", схема без учета регистра)
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Error(w, http.StatusUnauthorized, unauthenticated)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				response.Error(w, http.StatusUnauthorized, unauthenticated)
				return
			}
			tokenStr := parts[1]

			user, err := auth.CurrentUser(r.Context(), tokenStr)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, unauthenticated)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			ctx = context.WithValue(ctx, TokenKey, tokenStr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext извлекает userID из контекста.
func FromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok
}

// TokenFromContext извлекает предъявленный токен, нужен для logout.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok && token != ""
}
