package memstore

import (
	"maps"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// snapshot копия состояния хранилища для отката транзакции
// nextID не откатывается, как и последовательности в PostgreSQL
type snapshot struct {
	services     map[int64]domain.Service
	products     map[int64]domain.Product
	dayBlocks    map[dayKey]domain.DayBlock
	slotBlocks   map[slotKey]domain.SlotBlock
	reservations map[int64]domain.Reservation
	lines        map[int64]domain.ReservationLine
	productLines map[int64]domain.ProductLine
	giftCards    map[int64][]domain.GiftCardLine
	discounts    map[int64][]domain.AppliedDiscount
	packs        []*domain.DiscountPack
}

func (s *Store) snapshot() *snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	giftCards := make(map[int64][]domain.GiftCardLine, len(s.giftCards))
	for id, cards := range s.giftCards {
		giftCards[id] = append([]domain.GiftCardLine(nil), cards...)
	}
	discounts := make(map[int64][]domain.AppliedDiscount, len(s.discounts))
	for id, list := range s.discounts {
		discounts[id] = append([]domain.AppliedDiscount(nil), list...)
	}

	return &snapshot{
		services:     maps.Clone(s.services),
		products:     maps.Clone(s.products),
		dayBlocks:    maps.Clone(s.dayBlocks),
		slotBlocks:   maps.Clone(s.slotBlocks),
		reservations: maps.Clone(s.reservations),
		lines:        maps.Clone(s.lines),
		productLines: maps.Clone(s.productLines),
		giftCards:    giftCards,
		discounts:    discounts,
		packs:        append([]*domain.DiscountPack(nil), s.packs...),
	}
}

func (s *Store) restore(snap *snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.services = snap.services
	s.products = snap.products
	s.dayBlocks = snap.dayBlocks
	s.slotBlocks = snap.slotBlocks
	s.reservations = snap.reservations
	s.lines = snap.lines
	s.productLines = snap.productLines
	s.giftCards = snap.giftCards
	s.discounts = snap.discounts
	s.packs = snap.packs
}
