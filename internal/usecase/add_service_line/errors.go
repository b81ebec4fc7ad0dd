package add_service_line

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("add_service_line: reservation not found")

	// ErrReservationClosed возвращается, когда резервация оплачена или отменена
	ErrReservationClosed = errors.New("add_service_line: reservation is paid or cancelled")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("add_service_line: service not found")

	// ErrInvalidDate возвращается при попытке бронирования на прошедшую дату
	ErrInvalidDate = errors.New("add_service_line: date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("add_service_line: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("add_service_line: internal error")
)
