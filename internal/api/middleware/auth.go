// Package middleware HTTP middleware сервиса
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-InventoryService/internal/api/handlers"
)

// UserIDHeader заголовок с идентификатором вызывающего (пользователь или сервис)
const UserIDHeader = "X-User-ID"

const maxUserIDLength = 128

const msgMissingUserID = "отсутствует заголовок X-User-ID"

type contextKey string

const userIDKey contextKey = "user_id"

// Auth требует заголовок X-User-ID и кладет его значение в context.
// Значение записывается в updated_by изменяемых слотов.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" || len(userID) > maxUserIDLength {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает идентификатор вызывающего из context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
