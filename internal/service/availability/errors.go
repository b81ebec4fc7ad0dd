package availability

import "errors"

var (
	// ErrInternal возвращается при ошибках чтения блокировок или занятости
	ErrInternal = errors.New("availability: internal error")
)
