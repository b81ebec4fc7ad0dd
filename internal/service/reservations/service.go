package reservations

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	blockRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/block"
	catalogRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/catalog"
	reservationRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Service сервис чтения и создания резерваций
type Service struct {
	reservationRepo ReservationRepository
	catalogRepo     CatalogRepository
	blockRepo       BlockRepository
	occupancy       OccupancyCounter
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса резерваций
func NewService(
	reservationRepo ReservationRepository,
	catalogRepo CatalogRepository,
	blockRepo BlockRepository,
	occupancy OccupancyCounter,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		catalogRepo:     catalogRepo,
		blockRepo:       blockRepo,
		occupancy:       occupancy,
		txManager:       txManager,
		logger:          logger,
	}
}

// Create создает пустую резервацию в состоянии pending
// Клиент создает резервацию для себя, персонал - для любого клиента
func (s *Service) Create(ctx context.Context, req *models.CreateReservationRequest, actor models.Actor) (*models.ReservationResponse, error) {
	clientID := req.ClientID
	if clientID == 0 {
		clientID = actor.UserID
	}
	s.logger.Info("Create: creating reservation for client=%d by user=%d", clientID, actor.UserID)

	if clientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}
	if clientID != actor.UserID && !actor.Staff {
		s.logger.Warn("Create: user=%d cannot create reservation for client=%d", actor.UserID, clientID)
		return nil, ErrAccessDenied
	}

	reservation, err := s.reservationRepo.Create(ctx, &domain.Reservation{
		ClientID:     clientID,
		PaymentState: domain.PaymentPending,
	})
	if err != nil {
		s.logger.Error("Create: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: reservation id=%d created", reservation.ID)
	return models.FromDomainReservation(reservation), nil
}

// GetByID возвращает резервацию со строками, скидками и итогом
// Клиент видит только свою резервацию, персонал - любую
func (s *Service) GetByID(ctx context.Context, id int64, actor models.Actor) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, actor.UserID)

	var reservation *domain.Reservation

	// Заголовок и строки читаются из одного снимка
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		reservation, err = s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
		}

		if err := s.checkAccess(reservation, actor); err != nil {
			return err
		}

		if err := s.reservationRepo.LoadLines(txCtx, reservation); err != nil {
			return fmt.Errorf("%w: GetByID - load lines: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			s.logger.Warn("GetByID: reservation id=%d not found", id)
		case errors.Is(err, ErrAccessDenied):
			s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", actor.UserID, id)
		default:
			s.logger.Error("GetByID: failed to fetch reservation id=%d: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// Authorize проверяет, что пользователь может изменять резервацию
func (s *Service) Authorize(ctx context.Context, id int64, actor models.Actor) error {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Authorize: failed to get reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Authorize - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(reservation, actor); err != nil {
		s.logger.Warn("Authorize: access denied for user=%d to reservation id=%d", actor.UserID, id)
		return err
	}
	return nil
}

// GetSchedule календарь услуги на дату: слоты шаблона, занятость, строки и блокировки
// Доступно только персоналу
func (s *Service) GetSchedule(ctx context.Context, serviceID int64, date time.Time, actor models.Actor) (*models.ScheduleResponse, error) {
	date = domain.DateOnly(date)
	s.logger.Info("GetSchedule: service=%d, date=%s, user=%d", serviceID, date.Format(domain.DateFormat), actor.UserID)

	if !actor.Staff {
		s.logger.Warn("GetSchedule: user=%d is not staff", actor.UserID)
		return nil, ErrAccessDenied
	}

	service, err := s.catalogRepo.GetServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetSchedule: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: GetSchedule - catalog error: %v", ErrInternal, err)
	}

	resp := &models.ScheduleResponse{
		ServiceID:   service.ID,
		ServiceName: service.Name,
		Date:        date.Format(domain.DateFormat),
		Slots:       []models.ScheduleSlot{},
	}

	dayBlock, err := s.blockRepo.GetDayBlock(ctx, service.ID, date)
	switch {
	case err == nil:
		resp.DayBlocked = true
		resp.BlockReason = dayBlock.Reason
	case !errors.Is(err, blockRepo.ErrBlockNotFound):
		s.logger.Error("GetSchedule: failed to get day block: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - day block: %v", ErrInternal, err)
	}

	lines, err := s.reservationRepo.ListActiveLinesByServiceDate(ctx, service.ID, date)
	if err != nil {
		s.logger.Error("GetSchedule: failed to list lines: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - lines: %v", ErrInternal, err)
	}

	counts, err := s.occupancy.CountActiveByTime(ctx, service.ID, date)
	if err != nil {
		s.logger.Error("GetSchedule: failed to count occupancy: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - occupancy: %v", ErrInternal, err)
	}

	slotBlocks, err := s.blockRepo.ListActiveSlotBlocks(ctx, service.ID, date)
	if err != nil {
		s.logger.Error("GetSchedule: failed to list slot blocks: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - slot blocks: %v", ErrInternal, err)
	}

	resp.Slots = buildSchedule(service, date, lines, counts, slotBlocks)

	s.logger.Info("GetSchedule: service=%d has %d active lines on %s", service.ID, len(lines), resp.Date)
	return resp, nil
}

// Вспомогательные методы

// checkAccess владелец резервации или персонал
func (s *Service) checkAccess(reservation *domain.Reservation, actor models.Actor) error {
	if actor.Staff || reservation.ClientID == actor.UserID {
		return nil
	}
	return ErrAccessDenied
}

// buildSchedule раскладывает строки по слотам шаблона
// Строки на время вне текущего шаблона (шаблон изменили после бронирования) тоже показываются
func buildSchedule(
	service *domain.Service,
	date time.Time,
	lines []*domain.ReservationLine,
	counts map[types.TimeString]int,
	slotBlocks []*domain.SlotBlock,
) []models.ScheduleSlot {
	blocked := make(map[types.TimeString]bool, len(slotBlocks))
	for _, b := range slotBlocks {
		blocked[b.StartTime] = true
	}

	byTime := make(map[types.TimeString][]models.ServiceLineResponse)
	for _, l := range lines {
		byTime[l.StartTime] = append(byTime[l.StartTime], models.FromDomainServiceLine(l))
	}

	times := append([]types.TimeString{}, service.SlotsFor(date)...)
	for t := range byTime {
		if !service.OffersSlot(date, t) {
			times = append(times, t)
		}
	}
	sort.Slice(times, func(i, j int) bool { return times[i].IsBefore(times[j]) })

	slots := make([]models.ScheduleSlot, 0, len(times))
	for _, t := range times {
		slotLines := byTime[t]
		if slotLines == nil {
			slotLines = []models.ServiceLineResponse{}
		}
		slots = append(slots, models.ScheduleSlot{
			StartTime:  t.String(),
			Occupancy:  counts[t],
			TotalSpots: service.EffectiveMaxSimultaneous(),
			Blocked:    blocked[t],
			Lines:      slotLines,
		})
	}
	return slots
}
