package remove_line

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("remove_line: reservation not found")

	// ErrLineNotFound возвращается, когда строка не найдена или принадлежит другой резервации
	ErrLineNotFound = errors.New("remove_line: line not found")

	// ErrReservationClosed возвращается, когда резервация оплачена или отменена
	ErrReservationClosed = errors.New("remove_line: reservation is paid or cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("remove_line: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("remove_line: internal error")
)
