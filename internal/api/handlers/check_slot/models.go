package check_slot

// CheckSlotResponse HTTP response model
type CheckSlotResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"` // day_blocked, slot_blocked, capacity_exhausted, not_offered, past_date
}
