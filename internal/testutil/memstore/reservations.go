package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

func (s *Store) Create(_ context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservation.ID = s.id()
	reservation.CreatedAt = time.Now()
	reservation.UpdatedAt = reservation.CreatedAt

	header := *reservation
	header.ServiceLines, header.ProductLines, header.GiftCardLines, header.Discounts = nil, nil, nil, nil
	s.reservations[reservation.ID] = header
	return reservation, nil
}

func (s *Store) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservation, ok := s.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return &reservation, nil
}

func (s *Store) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.GetByID(ctx, id)
}

func (s *Store) LoadLines(ctx context.Context, reservation *domain.Reservation) error {
	serviceLines, err := s.ListServiceLines(ctx, reservation.ID)
	if err != nil {
		return err
	}
	productLines, err := s.ListProductLines(ctx, reservation.ID)
	if err != nil {
		return err
	}
	giftCards, err := s.ListGiftCardLines(ctx, reservation.ID)
	if err != nil {
		return err
	}
	discounts, err := s.ListDiscounts(ctx, reservation.ID)
	if err != nil {
		return err
	}

	reservation.ServiceLines = serviceLines
	reservation.ProductLines = productLines
	reservation.GiftCardLines = giftCards
	reservation.Discounts = discounts
	return nil
}

func (s *Store) UpdateTotals(_ context.Context, id int64, total, amountPaid decimal.Decimal, state domain.PaymentState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("UpdateTotals"); err != nil {
		return err
	}

	reservation, ok := s.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	reservation.Total = total
	reservation.AmountPaid = amountPaid
	reservation.PaymentState = state
	reservation.UpdatedAt = time.Now()
	s.reservations[id] = reservation
	return nil
}

// AddGiftCard добавляет подарочную карту к резервации
func (s *Store) AddGiftCard(reservationID int64, code string, amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.giftCards[reservationID] = append(s.giftCards[reservationID], domain.GiftCardLine{
		ID:            s.id(),
		ReservationID: reservationID,
		Code:          code,
		Amount:        amount,
	})
}

// ---- Строки услуг ----

func (s *Store) CreateServiceLine(_ context.Context, line *domain.ReservationLine) (*domain.ReservationLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("CreateServiceLine"); err != nil {
		return nil, err
	}

	// Аналог частичного уникального индекса по месту слота
	d := dateKey(line.Date)
	for _, existing := range s.lines {
		if existing.IsActive() && existing.ServiceID == line.ServiceID && dateKey(existing.Date) == d &&
			existing.StartTime == line.StartTime && existing.SlotOrdinal == line.SlotOrdinal {
			return nil, reservationRepo.ErrSlotTaken
		}
	}

	line.ID = s.id()
	line.Date = domain.DateOnly(line.Date)
	line.CreatedAt = time.Now()
	line.UpdatedAt = line.CreatedAt
	s.lines[line.ID] = *line
	return line, nil
}

func (s *Store) GetServiceLine(_ context.Context, lineID int64) (*domain.ReservationLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, ok := s.lines[lineID]
	if !ok {
		return nil, reservationRepo.ErrLineNotFound
	}
	return &line, nil
}

func (s *Store) ListServiceLines(_ context.Context, reservationID int64) ([]*domain.ReservationLine, error) {
	return s.filterLines(func(l domain.ReservationLine) bool { return l.ReservationID == reservationID }), nil
}

func (s *Store) ListActiveLinesByServiceDate(_ context.Context, serviceID int64, date time.Time) ([]*domain.ReservationLine, error) {
	d := dateKey(date)
	return s.filterLines(func(l domain.ReservationLine) bool {
		return l.IsActive() && l.ServiceID == serviceID && dateKey(l.Date) == d
	}), nil
}

func (s *Store) filterLines(match func(domain.ReservationLine) bool) []*domain.ReservationLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]*domain.ReservationLine, 0)
	for _, line := range s.lines {
		if match(line) {
			l := line
			lines = append(lines, &l)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines
}

func (s *Store) CountActiveAtSlot(_ context.Context, serviceID int64, date time.Time, startTime types.TimeString) (int, error) {
	return len(s.activeAt(serviceID, date, startTime)), nil
}

func (s *Store) CountActiveByTime(_ context.Context, serviceID int64, date time.Time) (map[types.TimeString]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := dateKey(date)
	counts := make(map[types.TimeString]int)
	for _, line := range s.lines {
		if line.IsActive() && line.ServiceID == serviceID && dateKey(line.Date) == d {
			counts[line.StartTime]++
		}
	}
	return counts, nil
}

func (s *Store) ActiveSlotOrdinals(_ context.Context, serviceID int64, date time.Time, startTime types.TimeString) ([]int, error) {
	lines := s.activeAt(serviceID, date, startTime)
	ordinals := make([]int, 0, len(lines))
	for _, line := range lines {
		ordinals = append(ordinals, line.SlotOrdinal)
	}
	sort.Ints(ordinals)
	return ordinals, nil
}

func (s *Store) activeAt(serviceID int64, date time.Time, startTime types.TimeString) []domain.ReservationLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := dateKey(date)
	lines := make([]domain.ReservationLine, 0)
	for _, line := range s.lines {
		if line.IsActive() && line.ServiceID == serviceID && dateKey(line.Date) == d && line.StartTime == startTime {
			lines = append(lines, line)
		}
	}
	return lines
}

func (s *Store) UpdateLinePersons(_ context.Context, lineID int64, persons int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, ok := s.lines[lineID]
	if !ok {
		return reservationRepo.ErrLineNotFound
	}
	line.Persons = persons
	s.lines[lineID] = line
	return nil
}

func (s *Store) DeleteServiceLine(_ context.Context, lineID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lines[lineID]; !ok {
		return reservationRepo.ErrLineNotFound
	}
	delete(s.lines, lineID)
	return nil
}

func (s *Store) CancelServiceLines(_ context.Context, reservationID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cancelled int64
	for id, line := range s.lines {
		if line.ReservationID == reservationID && line.IsActive() {
			line.Status = domain.LineCancelled
			s.lines[id] = line
			cancelled++
		}
	}
	return cancelled, nil
}

// ---- Строки товаров ----

func (s *Store) CreateProductLine(_ context.Context, line *domain.ProductLine) (*domain.ProductLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("CreateProductLine"); err != nil {
		return nil, err
	}

	line.ID = s.id()
	line.CreatedAt = time.Now()
	s.productLines[line.ID] = *line
	return line, nil
}

func (s *Store) GetProductLine(_ context.Context, lineID int64) (*domain.ProductLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, ok := s.productLines[lineID]
	if !ok {
		return nil, reservationRepo.ErrLineNotFound
	}
	return &line, nil
}

func (s *Store) ListProductLines(_ context.Context, reservationID int64) ([]*domain.ProductLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]*domain.ProductLine, 0)
	for _, line := range s.productLines {
		if line.ReservationID == reservationID {
			l := line
			lines = append(lines, &l)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines, nil
}

func (s *Store) DeleteProductLine(_ context.Context, lineID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.productLines[lineID]; !ok {
		return reservationRepo.ErrLineNotFound
	}
	delete(s.productLines, lineID)
	return nil
}

// ---- Подарочные карты и скидки ----

func (s *Store) ListGiftCardLines(_ context.Context, reservationID int64) ([]*domain.GiftCardLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]*domain.GiftCardLine, 0, len(s.giftCards[reservationID]))
	for _, line := range s.giftCards[reservationID] {
		l := line
		lines = append(lines, &l)
	}
	return lines, nil
}

func (s *Store) ListDiscounts(_ context.Context, reservationID int64) ([]*domain.AppliedDiscount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	discounts := make([]*domain.AppliedDiscount, 0, len(s.discounts[reservationID]))
	for _, d := range s.discounts[reservationID] {
		discount := d
		discounts = append(discounts, &discount)
	}
	return discounts, nil
}

func (s *Store) ReplaceDiscounts(_ context.Context, reservationID int64, discounts []*domain.AppliedDiscount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("ReplaceDiscounts"); err != nil {
		return err
	}

	stored := make([]domain.AppliedDiscount, 0, len(discounts))
	for _, d := range discounts {
		d.ID = s.id()
		d.ReservationID = reservationID
		d.CreatedAt = time.Now()
		stored = append(stored, *d)
	}
	s.discounts[reservationID] = stored
	return nil
}
