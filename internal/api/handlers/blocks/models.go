package blocks

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// CreateDayBlockRequest HTTP request model
type CreateDayBlockRequest struct {
	Date   string  `json:"date"` // "2025-10-15"
	Reason *string `json:"reason,omitempty"`
}

// CreateSlotBlockRequest HTTP request model
type CreateSlotBlockRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"` // "10:00"
}

// DayBlockResponse HTTP response model
type DayBlockResponse struct {
	ID        int64   `json:"id"`
	ServiceID int64   `json:"serviceId"`
	Date      string  `json:"date"`
	Reason    *string `json:"reason,omitempty"`
	CreatedBy int64   `json:"createdBy"`
}

// SlotBlockResponse HTTP response model
type SlotBlockResponse struct {
	ID        int64  `json:"id"`
	ServiceID int64  `json:"serviceId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	CreatedBy int64  `json:"createdBy"`
}

// BlocksResponse блокировки услуги на дату
type BlocksResponse struct {
	ServiceID  int64               `json:"serviceId"`
	Date       string              `json:"date"`
	DayBlock   *DayBlockResponse   `json:"dayBlock"`
	SlotBlocks []SlotBlockResponse `json:"slotBlocks"`
}

func FromDomainDayBlock(b *domain.DayBlock) *DayBlockResponse {
	if b == nil {
		return nil
	}
	return &DayBlockResponse{
		ID:        b.ID,
		ServiceID: b.ServiceID,
		Date:      b.Date.Format(domain.DateFormat),
		Reason:    b.Reason,
		CreatedBy: b.CreatedBy,
	}
}

func FromDomainSlotBlock(b *domain.SlotBlock) SlotBlockResponse {
	return SlotBlockResponse{
		ID:        b.ID,
		ServiceID: b.ServiceID,
		Date:      b.Date.Format(domain.DateFormat),
		StartTime: b.StartTime.String(),
		CreatedBy: b.CreatedBy,
	}
}
