package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/reservations/models"
)

const (
	msgForbidden            = "доступ запрещен"
	msgInvalidReservationID = "некорректный ID резервации"
	msgReservationNotFound  = "резервация не найдена"
	msgStaffOnly            = "требуется роль персонала"
)

// ReservationAuthorizer проверка прав на резервацию
type ReservationAuthorizer interface {
	Authorize(ctx context.Context, id int64, actor models.Actor) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ActorFromContext пользователь запроса для сервисного слоя
func ActorFromContext(ctx context.Context) (models.Actor, bool) {
	userID, ok := GetUserID(ctx)
	if !ok {
		return models.Actor{}, false
	}
	return models.Actor{UserID: userID, Staff: IsStaff(ctx)}, true
}

// StaffOnly пропускает только персонал. Ставится после Auth
func StaffOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsStaff(r.Context()) {
			handlers.RespondForbidden(w, msgStaffOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ReservationAccess пропускает владельца резервации {reservationId} и персонал. Ставится после Auth
func ReservationAccess(authorizer ReservationAuthorizer, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reservationID, err := handlers.PathID(r, "reservationId")
			if err != nil {
				handlers.RespondBadRequest(w, msgInvalidReservationID)
				return
			}

			actor, ok := ActorFromContext(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			if err := authorizer.Authorize(r.Context(), reservationID, actor); err != nil {
				switch {
				case errors.Is(err, reservations.ErrReservationNotFound):
					handlers.RespondNotFound(w, msgReservationNotFound)
				case errors.Is(err, reservations.ErrAccessDenied):
					logger.Warn("%s %s - Access denied: reservation_id=%d, user_id=%d, request_id=%s",
						r.Method, r.URL.Path, reservationID, actor.UserID, GetRequestID(r.Context()))
					handlers.RespondForbidden(w, msgForbidden)
				default:
					logger.Error("%s %s - Failed to authorize: reservation_id=%d, request_id=%s, error=%v",
						r.Method, r.URL.Path, reservationID, GetRequestID(r.Context()), err)
					handlers.RespondInternalError(w)
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
