package add_product_line

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("add_product_line: reservation not found")

	// ErrReservationClosed возвращается, когда резервация оплачена или отменена
	ErrReservationClosed = errors.New("add_product_line: reservation is paid or cancelled")

	// ErrProductNotFound возвращается, когда товар не найден или снят с продажи
	ErrProductNotFound = errors.New("add_product_line: product not found")

	// ErrOutOfStock возвращается, когда склад отказал в списании
	ErrOutOfStock = errors.New("add_product_line: product is out of stock")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("add_product_line: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("add_product_line: internal error")
)
