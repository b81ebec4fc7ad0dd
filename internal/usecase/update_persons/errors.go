package update_persons

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("update_persons: reservation not found")

	// ErrLineNotFound возвращается, когда строка не найдена, отменена или принадлежит другой резервации
	ErrLineNotFound = errors.New("update_persons: line not found")

	// ErrReservationClosed возвращается, когда резервация оплачена или отменена
	ErrReservationClosed = errors.New("update_persons: reservation is paid or cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_persons: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_persons: internal error")
)
