package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/catalog/models"
)

// Service чтение каталога услуг
type Service struct {
	reader ServiceReader
	logger Logger
}

// NewService создает сервис каталога поверх репозитория или кеша
func NewService(reader ServiceReader, logger Logger) *Service {
	return &Service{
		reader: reader,
		logger: logger,
	}
}

// GetService возвращает определение услуги
func (s *Service) GetService(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	service, err := s.reader.GetServiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetService: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: failed to get service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetService - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(service), nil
}
