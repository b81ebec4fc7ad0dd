package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// Actor пользователь, выполняющий запрос
type Actor struct {
	UserID int64
	Staff  bool
}

// Request модели

// CreateReservationRequest запрос на создание резервации
type CreateReservationRequest struct {
	ClientID int64 `json:"clientId"`
}

// Response модели

// ServiceLineResponse строка услуги
type ServiceLineResponse struct {
	ID              int64  `json:"id"`
	ServiceID       int64  `json:"serviceId"`
	ServiceName     string `json:"serviceName"`
	ServiceKind     string `json:"serviceKind"`
	Date            string `json:"date"`      // "2025-10-15"
	StartTime       string `json:"startTime"` // "10:00"
	Persons         int    `json:"persons"`
	UnitPriceFrozen string `json:"unitPriceFrozen"`
	Subtotal        string `json:"subtotal"`
	SlotOrdinal     int    `json:"slotOrdinal"`
	Status          string `json:"status"`
}

// ProductLineResponse строка товара
type ProductLineResponse struct {
	ID              int64  `json:"id"`
	ProductID       int64  `json:"productId"`
	ProductName     string `json:"productName"`
	Quantity        int    `json:"quantity"`
	UnitPriceFrozen string `json:"unitPriceFrozen"`
	Subtotal        string `json:"subtotal"`
}

// GiftCardResponse подарочная карта
type GiftCardResponse struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Amount string `json:"amount"`
}

// DiscountResponse примененный пакет скидок
type DiscountResponse struct {
	PackID   int64   `json:"packId"`
	PackName string  `json:"packName"`
	Amount   string  `json:"amount"`
	LineIDs  []int64 `json:"lineIds"`
}

// ReservationResponse ответ с данными резервации
type ReservationResponse struct {
	ID           int64                 `json:"id"`
	ClientID     int64                 `json:"clientId"`
	Total        string                `json:"total"`
	AmountPaid   string                `json:"amountPaid"`
	PaymentState string                `json:"paymentState"`
	ServiceLines []ServiceLineResponse `json:"serviceLines"`
	ProductLines []ProductLineResponse `json:"productLines"`
	GiftCards    []GiftCardResponse    `json:"giftCards"`
	Discounts    []DiscountResponse    `json:"discounts"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// ScheduleSlot слот календаря персонала
type ScheduleSlot struct {
	StartTime  string                `json:"startTime"`
	Occupancy  int                   `json:"occupancy"`
	TotalSpots int                   `json:"totalSpots"`
	Blocked    bool                  `json:"blocked"`
	Lines      []ServiceLineResponse `json:"lines"`
}

// ScheduleResponse занятость услуги на дату
type ScheduleResponse struct {
	ServiceID   int64          `json:"serviceId"`
	ServiceName string         `json:"serviceName"`
	Date        string         `json:"date"`
	DayBlocked  bool           `json:"dayBlocked"`
	BlockReason *string        `json:"blockReason,omitempty"`
	Slots       []ScheduleSlot `json:"slots"`
}

// Методы конвертации

// Money форматирует сумму с двумя знаками
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FromDomainServiceLine конвертирует строку услуги в DTO
func FromDomainServiceLine(l *domain.ReservationLine) ServiceLineResponse {
	return ServiceLineResponse{
		ID:              l.ID,
		ServiceID:       l.ServiceID,
		ServiceName:     l.ServiceName,
		ServiceKind:     string(domain.ResolveKind(l.ServiceKind, l.ServiceName)),
		Date:            l.Date.Format(domain.DateFormat),
		StartTime:       l.StartTime.String(),
		Persons:         l.Persons,
		UnitPriceFrozen: Money(l.UnitPriceFrozen),
		Subtotal:        Money(l.Subtotal()),
		SlotOrdinal:     l.SlotOrdinal,
		Status:          string(l.Status),
	}
}

// FromDomainDiscounts конвертирует примененные скидки в DTO
func FromDomainDiscounts(discounts []*domain.AppliedDiscount) []DiscountResponse {
	resp := make([]DiscountResponse, 0, len(discounts))
	for _, d := range discounts {
		lineIDs := d.LineIDs
		if lineIDs == nil {
			lineIDs = []int64{}
		}
		resp = append(resp, DiscountResponse{
			PackID:   d.PackID,
			PackName: d.PackName,
			Amount:   Money(d.Amount),
			LineIDs:  lineIDs,
		})
	}
	return resp
}

// FromDomainReservation конвертирует domain модель с загруженными строками в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:           r.ID,
		ClientID:     r.ClientID,
		Total:        Money(r.Total),
		AmountPaid:   Money(r.AmountPaid),
		PaymentState: string(r.PaymentState),
		ServiceLines: make([]ServiceLineResponse, 0, len(r.ServiceLines)),
		ProductLines: make([]ProductLineResponse, 0, len(r.ProductLines)),
		GiftCards:    make([]GiftCardResponse, 0, len(r.GiftCardLines)),
		Discounts:    FromDomainDiscounts(r.Discounts),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}

	for _, l := range r.ServiceLines {
		resp.ServiceLines = append(resp.ServiceLines, FromDomainServiceLine(l))
	}
	for _, l := range r.ProductLines {
		resp.ProductLines = append(resp.ProductLines, ProductLineResponse{
			ID:              l.ID,
			ProductID:       l.ProductID,
			ProductName:     l.ProductName,
			Quantity:        l.Quantity,
			UnitPriceFrozen: Money(l.UnitPriceFrozen),
			Subtotal:        Money(l.Subtotal()),
		})
	}
	for _, g := range r.GiftCardLines {
		resp.GiftCards = append(resp.GiftCards, GiftCardResponse{ID: g.ID, Code: g.Code, Amount: Money(g.Amount)})
	}

	return resp
}
