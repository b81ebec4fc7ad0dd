package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// PaymentState состояние оплаты резервации
type PaymentState string

const (
	PaymentPending   PaymentState = "pending"
	PaymentPartial   PaymentState = "partial"
	PaymentPaid      PaymentState = "paid"
	PaymentCancelled PaymentState = "cancelled"
)

// LineStatus статус строки услуги
type LineStatus string

const (
	LineActive    LineStatus = "active"
	LineCancelled LineStatus = "cancelled"
)

// Reservation корзина/заказ клиента
type Reservation struct {
	ID           int64
	ClientID     int64
	Total        decimal.Decimal
	AmountPaid   decimal.Decimal
	PaymentState PaymentState

	ServiceLines  []*ReservationLine
	ProductLines  []*ProductLine
	GiftCardLines []*GiftCardLine
	Discounts     []*AppliedDiscount

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen строки можно менять только пока резервация не оплачена и не отменена
func (r *Reservation) IsOpen() bool {
	return r.PaymentState == PaymentPending || r.PaymentState == PaymentPartial
}

// IsTerminal paid и cancelled - конечные состояния
func (r *Reservation) IsTerminal() bool {
	return r.PaymentState == PaymentPaid || r.PaymentState == PaymentCancelled
}

// ReservationLine строка услуги: один забронированный слот
type ReservationLine struct {
	ID               int64
	ReservationID    int64
	ServiceID        int64
	ServiceName      string       // Денормализовано для истории и классификации
	ServiceKind      *ServiceKind // nil у legacy строк
	Date             time.Time
	StartTime        types.TimeString
	Persons          int
	UnitPriceFrozen  decimal.Decimal // Цена услуги на момент создания, не пересчитывается
	SlotOrdinal      int             // Номер места в слоте, 1..max_simultaneous
	Status           LineStatus
	AssignedProvider *int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsActive строка учитывается в занятости и сумме
func (l *ReservationLine) IsActive() bool {
	return l.Status == LineActive
}

// Subtotal unit_price_frozen * persons
func (l *ReservationLine) Subtotal() decimal.Decimal {
	return l.UnitPriceFrozen.Mul(decimal.NewFromInt(int64(l.Persons)))
}

// ProductLine строка товара, цена также заморожена при создании
type ProductLine struct {
	ID              int64
	ReservationID   int64
	ProductID       int64
	ProductName     string
	Quantity        int
	UnitPriceFrozen decimal.Decimal
	CreatedAt       time.Time
}

// Subtotal unit_price_frozen * quantity
func (l *ProductLine) Subtotal() decimal.Decimal {
	return l.UnitPriceFrozen.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// GiftCardLine подарочная карта в резервации (создается вне движка)
type GiftCardLine struct {
	ID            int64
	ReservationID int64
	Code          string
	Amount        decimal.Decimal
	CreatedAt     time.Time
}

// AppliedDiscount синтетическая строка скидки найденного пакета
// Пересчитывается целиком (replace), а не накапливается
type AppliedDiscount struct {
	ID            int64
	ReservationID int64
	PackID        int64
	PackName      string
	Amount        decimal.Decimal
	LineIDs       []int64 // Строки услуг, вошедшие в пакет
	CreatedAt     time.Time
}
