package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrLineNotFound возвращается, когда строка резервации не найдена
	ErrLineNotFound = errors.New("reservation.repository: line not found")

	// ErrSlotTaken возвращается, когда место слота уже занято активной строкой
	// (нарушение уникального индекса по service_id, line_date, start_time, slot_ordinal)
	ErrSlotTaken = errors.New("reservation.repository: slot ordinal already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
