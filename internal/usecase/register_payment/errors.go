package register_payment

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("register_payment: reservation not found")

	// ErrInvalidTransition возвращается, когда резервация уже оплачена или отменена
	ErrInvalidTransition = errors.New("register_payment: payment state transition is not allowed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("register_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("register_payment: internal error")
)
