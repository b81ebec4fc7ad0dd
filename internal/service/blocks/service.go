package blocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	blockRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/block"
	catalogRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Service реестр блокировок дней и слотов
type Service struct {
	repo    BlockRepository
	catalog CatalogReader
	logger  Logger
}

// NewService создает новый экземпляр реестра блокировок
func NewService(repo BlockRepository, catalog CatalogReader, logger Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		logger:  logger,
	}
}

// CreateDayBlock блокирует услугу на всю дату
// Повторный вызов для той же даты идемпотентен
func (s *Service) CreateDayBlock(ctx context.Context, req *CreateDayBlockRequest) (*domain.DayBlock, error) {
	s.logger.Info("CreateDayBlock: service=%d, date=%s, actor=%d",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.ActorID)

	if err := validateActor(req.ServiceID, req.ActorID, req.Date); err != nil {
		return nil, err
	}

	var reason *string
	if req.Reason != nil {
		trimmed := strings.TrimSpace(*req.Reason)
		if len(trimmed) > domain.MaxBlockReasonLength {
			return nil, fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxBlockReasonLength)
		}
		if trimmed != "" {
			reason = &trimmed
		}
	}

	if _, err := s.getService(ctx, "CreateDayBlock", req.ServiceID); err != nil {
		return nil, err
	}

	block, err := s.repo.CreateDayBlock(ctx, &domain.DayBlock{
		ServiceID: req.ServiceID,
		Date:      domain.DateOnly(req.Date),
		Reason:    reason,
		CreatedBy: req.ActorID,
	})
	if err != nil {
		s.logger.Error("CreateDayBlock: repository error for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: CreateDayBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateDayBlock: service=%d blocked on %s, block id=%d",
		req.ServiceID, block.Date.Format(domain.DateFormat), block.ID)
	return block, nil
}

// DeleteDayBlock снимает блокировку дня
func (s *Service) DeleteDayBlock(ctx context.Context, serviceID int64, date time.Time, actorID int64) error {
	s.logger.Info("DeleteDayBlock: service=%d, date=%s, actor=%d", serviceID, date.Format(domain.DateFormat), actorID)

	if err := validateActor(serviceID, actorID, date); err != nil {
		return err
	}

	if err := s.repo.DeleteDayBlock(ctx, serviceID, date); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("DeleteDayBlock: no block for service=%d on %s", serviceID, date.Format(domain.DateFormat))
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteDayBlock: repository error for service=%d: %v", serviceID, err)
		return fmt.Errorf("%w: DeleteDayBlock - repository error: %v", ErrInternal, err)
	}

	return nil
}

// CreateSlotBlock блокирует один слот
// Время должно присутствовать в недельном шаблоне услуги на день недели даты, иначе ErrInvalidSlot
func (s *Service) CreateSlotBlock(ctx context.Context, req *CreateSlotBlockRequest) (*domain.SlotBlock, error) {
	s.logger.Info("CreateSlotBlock: service=%d, date=%s, time=%s, actor=%d",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.ActorID)

	if err := validateActor(req.ServiceID, req.ActorID, req.Date); err != nil {
		return nil, err
	}
	if err := req.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	service, err := s.getService(ctx, "CreateSlotBlock", req.ServiceID)
	if err != nil {
		return nil, err
	}

	if !service.OffersSlot(req.Date, req.StartTime) {
		s.logger.Warn("CreateSlotBlock: time %s is not in template of service=%d for %s",
			req.StartTime, req.ServiceID, req.Date.Weekday())
		return nil, fmt.Errorf("%w: %s on %s", domain.ErrInvalidSlot, req.StartTime, req.Date.Weekday())
	}

	block, err := s.repo.CreateSlotBlock(ctx, &domain.SlotBlock{
		ServiceID: req.ServiceID,
		Date:      domain.DateOnly(req.Date),
		StartTime: req.StartTime,
		CreatedBy: req.ActorID,
	})
	if err != nil {
		s.logger.Error("CreateSlotBlock: repository error for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: CreateSlotBlock - repository error: %v", ErrInternal, err)
	}

	return block, nil
}

// DeleteSlotBlock снимает блокировку слота
func (s *Service) DeleteSlotBlock(ctx context.Context, serviceID int64, date time.Time, startTime types.TimeString, actorID int64) error {
	s.logger.Info("DeleteSlotBlock: service=%d, date=%s, time=%s, actor=%d",
		serviceID, date.Format(domain.DateFormat), startTime, actorID)

	if err := validateActor(serviceID, actorID, date); err != nil {
		return err
	}

	if err := s.repo.DeactivateSlotBlock(ctx, serviceID, date, startTime); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteSlotBlock: repository error for service=%d: %v", serviceID, err)
		return fmt.Errorf("%w: DeleteSlotBlock - repository error: %v", ErrInternal, err)
	}

	return nil
}

// ServiceBlockedOn проверяет, заблокирована ли услуга на дату
func (s *Service) ServiceBlockedOn(ctx context.Context, serviceID int64, date time.Time) (bool, error) {
	blocked, err := s.repo.IsDayBlocked(ctx, serviceID, date)
	if err != nil {
		return false, fmt.Errorf("%w: ServiceBlockedOn - repository error: %v", ErrInternal, err)
	}
	return blocked, nil
}

// SlotBlocked проверяет, заблокирован ли слот
func (s *Service) SlotBlocked(ctx context.Context, serviceID int64, date time.Time, startTime types.TimeString) (bool, error) {
	blocked, err := s.repo.IsSlotBlocked(ctx, serviceID, date, startTime)
	if err != nil {
		return false, fmt.Errorf("%w: SlotBlocked - repository error: %v", ErrInternal, err)
	}
	return blocked, nil
}

// DayBlock возвращает блокировку дня или nil, если день открыт
func (s *Service) DayBlock(ctx context.Context, serviceID int64, date time.Time) (*domain.DayBlock, error) {
	block, err := s.repo.GetDayBlock(ctx, serviceID, date)
	if err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: DayBlock - repository error: %v", ErrInternal, err)
	}
	return block, nil
}

// ListSlotBlocks возвращает активные блокировки слотов на дату
func (s *Service) ListSlotBlocks(ctx context.Context, serviceID int64, date time.Time) ([]*domain.SlotBlock, error) {
	blocks, err := s.repo.ListActiveSlotBlocks(ctx, serviceID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSlotBlocks - repository error: %v", ErrInternal, err)
	}
	return blocks, nil
}

func (s *Service) getService(ctx context.Context, op string, serviceID int64) (*domain.Service, error) {
	service, err := s.catalog.GetServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%d not found", op, serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: failed to get service id=%d: %v", op, serviceID, err)
		return nil, fmt.Errorf("%w: %s - catalog error: %v", ErrInternal, op, err)
	}
	return service, nil
}

func validateActor(serviceID, actorID int64, date time.Time) error {
	if serviceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if actorID <= 0 {
		return fmt.Errorf("%w: acting user is required", ErrInvalidInput)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
