package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	staffKey  contextKey = "staff"

	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"
)

// Роли, которым доступны блокировки, расписание и чужие резервации
var staffRoles = map[string]bool{
	"staff": true,
	"admin": true,
}

// Auth извлекает пользователя из X-User-ID и роль из X-User-Role
// Аутентификация выполняется шлюзом, сервис доверяет заголовкам
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		staff := staffRoles[strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole)))]

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, staffKey, staff)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя, установленный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// IsStaff true для сотрудников спа
func IsStaff(ctx context.Context) bool {
	staff, _ := ctx.Value(staffKey).(bool)
	return staff
}
