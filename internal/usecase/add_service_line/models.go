package add_service_line

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Request модель запроса на добавление строки услуги
type Request struct {
	ReservationID int64            // ID резервации (корзины)
	ServiceID     int64            // ID услуги каталога
	Date          time.Time        // Дата слота (без времени)
	StartTime     types.TimeString // Время слота из недельного шаблона
	Persons       int              // Количество персон
}

// Response модель ответа с созданной строкой и новым итогом резервации
type Response struct {
	Line      *domain.ReservationLine
	Total     decimal.Decimal
	Discounts []*domain.AppliedDiscount
}
