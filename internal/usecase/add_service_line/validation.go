package add_service_line

import (
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Persons <= 0 || req.Persons > domain.MaxPersonsPerLine {
		return fmt.Errorf("%w: persons must be between 1 and %d", ErrInvalidInput, domain.MaxPersonsPerLine)
	}

	return nil
}

// validateCapacity проверяет границы capacity_min/capacity_max услуги
func validateCapacity(service *domain.Service, persons int) error {
	if !service.AcceptsPersons(persons) {
		return fmt.Errorf("%w: persons=%d, service %q accepts %d..%d",
			domain.ErrCapacity, persons, service.Name, service.CapacityMin, service.CapacityMax)
	}
	return nil
}

// freeOrdinal возвращает наименьший свободный номер места в [1, maxSimultaneous]
// ok = false, если все места заняты
func freeOrdinal(taken []int, maxSimultaneous int) (int, bool) {
	used := make(map[int]bool, len(taken))
	for _, o := range taken {
		used[o] = true
	}
	for o := 1; o <= maxSimultaneous; o++ {
		if !used[o] {
			return o, true
		}
	}
	return 0, false
}
