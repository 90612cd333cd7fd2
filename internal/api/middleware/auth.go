package middleware

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SFC-ReservaService/internal/api/handlers"
)

// UserIDHeader заголовок с идентификатором пользователя, проставляется API gateway
const UserIDHeader = "X-User-ID"

// Auth проверяет наличие корректного X-User-ID у защищенных маршрутов
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-User-ID")
			return
		}

		if _, err := strconv.ParseInt(userID, 10, 64); err != nil {
			handlers.RespondError(w, http.StatusUnauthorized, "некорректный заголовок X-User-ID")
			return
		}

		next.ServeHTTP(w, r)
	})
}
