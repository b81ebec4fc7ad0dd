// Package memstore in-memory реализация репозиториев для тестов сервисов и use case
// Возвращает те же sentinel-ошибки, что и PostgreSQL репозитории
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	blockRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/block"
	catalogRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

type slotKey struct {
	serviceID int64
	date      string
	time      types.TimeString
}

type dayKey struct {
	serviceID int64
	date      string
}

// Store хранилище всех сущностей движка в памяти
type Store struct {
	mu sync.Mutex

	nextID int64

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

	// FailNext ошибка, которую вернет следующий вызов указанного метода
	FailNext map[string]error
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		services:     make(map[int64]domain.Service),
		products:     make(map[int64]domain.Product),
		dayBlocks:    make(map[dayKey]domain.DayBlock),
		slotBlocks:   make(map[slotKey]domain.SlotBlock),
		reservations: make(map[int64]domain.Reservation),
		lines:        make(map[int64]domain.ReservationLine),
		productLines: make(map[int64]domain.ProductLine),
		giftCards:    make(map[int64][]domain.GiftCardLine),
		discounts:    make(map[int64][]domain.AppliedDiscount),
		FailNext:     make(map[string]error),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) fail(op string) error {
	if err, ok := s.FailNext[op]; ok {
		delete(s.FailNext, op)
		return err
	}
	return nil
}

func dateKey(t time.Time) string {
	return domain.DateOnly(t).Format(domain.DateFormat)
}

// ---- Каталог ----

// AddService добавляет услугу; нулевой ID назначается автоматически
func (s *Store) AddService(service domain.Service) *domain.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	if service.ID == 0 {
		service.ID = s.id()
	} else if service.ID > s.nextID {
		s.nextID = service.ID
	}
	s.services[service.ID] = service
	return &service
}

// SetServicePrice меняет базовую цену услуги в каталоге
func (s *Store) SetServicePrice(id int64, price decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	service := s.services[id]
	service.PriceBase = price
	s.services[id] = service
}

// AddProduct добавляет товар
func (s *Store) AddProduct(product domain.Product) *domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID == 0 {
		product.ID = s.id()
	}
	s.products[product.ID] = product
	return &product
}

func (s *Store) GetServiceByID(_ context.Context, id int64) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("GetServiceByID"); err != nil {
		return nil, err
	}
	service, ok := s.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return &service, nil
}

func (s *Store) GetServiceForUpdate(ctx context.Context, id int64) (*domain.Service, error) {
	return s.GetServiceByID(ctx, id)
}

func (s *Store) GetProductByID(_ context.Context, id int64) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, catalogRepo.ErrProductNotFound
	}
	return &product, nil
}

// ---- Блокировки ----

func (s *Store) CreateDayBlock(_ context.Context, block *domain.DayBlock) (*domain.DayBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dayKey{block.ServiceID, dateKey(block.Date)}
	if existing, ok := s.dayBlocks[key]; ok {
		existing.Reason = block.Reason
		s.dayBlocks[key] = existing
		return &existing, nil
	}

	block.ID = s.id()
	block.Date = domain.DateOnly(block.Date)
	block.CreatedAt = time.Now()
	s.dayBlocks[key] = *block
	return block, nil
}

func (s *Store) DeleteDayBlock(_ context.Context, serviceID int64, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dayKey{serviceID, dateKey(date)}
	if _, ok := s.dayBlocks[key]; !ok {
		return blockRepo.ErrBlockNotFound
	}
	delete(s.dayBlocks, key)
	return nil
}

func (s *Store) GetDayBlock(_ context.Context, serviceID int64, date time.Time) (*domain.DayBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	block, ok := s.dayBlocks[dayKey{serviceID, dateKey(date)}]
	if !ok {
		return nil, blockRepo.ErrBlockNotFound
	}
	return &block, nil
}

func (s *Store) IsDayBlocked(_ context.Context, serviceID int64, date time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("IsDayBlocked"); err != nil {
		return false, err
	}
	_, ok := s.dayBlocks[dayKey{serviceID, dateKey(date)}]
	return ok, nil
}

func (s *Store) CreateSlotBlock(_ context.Context, block *domain.SlotBlock) (*domain.SlotBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := slotKey{block.ServiceID, dateKey(block.Date), block.StartTime}
	if existing, ok := s.slotBlocks[key]; ok {
		existing.Active = true
		existing.CreatedBy = block.CreatedBy
		s.slotBlocks[key] = existing
		return &existing, nil
	}

	block.ID = s.id()
	block.Date = domain.DateOnly(block.Date)
	block.Active = true
	s.slotBlocks[key] = *block
	return block, nil
}

func (s *Store) DeactivateSlotBlock(_ context.Context, serviceID int64, date time.Time, startTime types.TimeString) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := slotKey{serviceID, dateKey(date), startTime}
	block, ok := s.slotBlocks[key]
	if !ok || !block.Active {
		return blockRepo.ErrBlockNotFound
	}
	block.Active = false
	s.slotBlocks[key] = block
	return nil
}

func (s *Store) IsSlotBlocked(_ context.Context, serviceID int64, date time.Time, startTime types.TimeString) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	block, ok := s.slotBlocks[slotKey{serviceID, dateKey(date), startTime}]
	return ok && block.Active, nil
}

func (s *Store) ListActiveSlotBlocks(_ context.Context, serviceID int64, date time.Time) ([]*domain.SlotBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := dateKey(date)
	blocks := make([]*domain.SlotBlock, 0)
	for key, block := range s.slotBlocks {
		if key.serviceID == serviceID && key.date == d && block.Active {
			b := block
			blocks = append(blocks, &b)
		}
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].StartTime.IsBefore(blocks[j].StartTime) })
	return blocks, nil
}

func (s *Store) DeleteOlderThan(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("DeleteOlderThan"); err != nil {
		return 0, err
	}

	cutoff := domain.DateOnly(before)
	var removed int64
	for key, block := range s.dayBlocks {
		if block.Date.Before(cutoff) {
			delete(s.dayBlocks, key)
			removed++
		}
	}
	for key, block := range s.slotBlocks {
		if block.Date.Before(cutoff) {
			delete(s.slotBlocks, key)
			removed++
		}
	}
	return removed, nil
}

// ---- Пакеты ----

// AddPack добавляет пакет скидок
func (s *Store) AddPack(pack *domain.DiscountPack) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pack.ID == 0 {
		pack.ID = s.id()
	}
	s.packs = append(s.packs, pack)
}

func (s *Store) ListActive(_ context.Context) ([]*domain.DiscountPack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("ListActive"); err != nil {
		return nil, err
	}

	packs := make([]*domain.DiscountPack, 0, len(s.packs))
	for _, p := range s.packs {
		if p.Active {
			packs = append(packs, p)
		}
	}
	return packs, nil
}
