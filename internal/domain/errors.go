package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSlotUnavailable слот закрыт на день, заблокирован или заполнен
	// Исправляется пользователем (выбрать другой слот), автоматически не повторяется
	ErrSlotUnavailable = errors.New("slot is unavailable")

	// ErrCapacity количество персон вне [capacity_min, capacity_max] услуги
	ErrCapacity = errors.New("persons count is outside of service capacity")

	// ErrInvalidSlot время отсутствует в недельном шаблоне услуги
	ErrInvalidSlot = errors.New("time is not present in the service weekly template")

	// ErrPackMatchInconsistency нарушение инварианта при подборе пакетов скидок
	ErrPackMatchInconsistency = errors.New("discount pack match is inconsistent")

	// ErrInvalidWeeklySlots некорректный недельный шаблон слотов
	ErrInvalidWeeklySlots = errors.New("invalid weekly slot template")

	// ErrInvalidPaymentTransition недопустимый переход состояния оплаты
	ErrInvalidPaymentTransition = errors.New("invalid payment state transition")
)

// UnavailableReason причина недоступности слота
type UnavailableReason string

const (
	ReasonNone              UnavailableReason = ""
	ReasonDayBlocked        UnavailableReason = "day_blocked"
	ReasonSlotBlocked       UnavailableReason = "slot_blocked"
	ReasonCapacityExhausted UnavailableReason = "capacity_exhausted"
	ReasonNotOffered        UnavailableReason = "not_offered"
	ReasonPastDate          UnavailableReason = "past_date"
)

// SlotUnavailableError ошибка недоступности слота с причиной
// errors.Is(err, ErrSlotUnavailable) == true
type SlotUnavailableError struct {
	Reason UnavailableReason
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSlotUnavailable.Error(), e.Reason)
}

func (e *SlotUnavailableError) Unwrap() error {
	return ErrSlotUnavailable
}

// NewSlotUnavailable создает ошибку недоступности слота
func NewSlotUnavailable(reason UnavailableReason) error {
	return &SlotUnavailableError{Reason: reason}
}

// UnavailableReasonOf достает причину из ошибки (ReasonNone, если это не SlotUnavailableError)
func UnavailableReasonOf(err error) UnavailableReason {
	var slotErr *SlotUnavailableError
	if errors.As(err, &slotErr) {
		return slotErr.Reason
	}
	return ReasonNone
}
