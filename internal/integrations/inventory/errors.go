package inventory

import "errors"

var (
	// ErrProductNotFound возвращается, когда склад не знает товар
	ErrProductNotFound = errors.New("inventory client: product not found")

	// ErrInsufficientStock возвращается, когда на складе не хватает товара
	ErrInsufficientStock = errors.New("inventory client: insufficient stock")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("inventory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("inventory client: invalid response")
)
