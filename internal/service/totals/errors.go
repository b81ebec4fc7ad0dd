package totals

import "errors"

var (
	// ErrInternal возвращается при ошибках чтения или сохранения итогов
	ErrInternal = errors.New("totals: internal error")
)
