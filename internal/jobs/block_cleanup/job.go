package block_cleanup

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Job удаляет блокировки дней и слотов, дата которых старше срока хранения
type Job struct {
	repo         BlockRepository
	retention    time.Duration
	timeout      time.Duration
	logger       Logger
	timeProvider TimeProvider
}

// NewJob создает задачу очистки; retentionDays отсчитывается от начала текущего дня
func NewJob(repo BlockRepository, retentionDays int, logger Logger) *Job {
	return &Job{
		repo:         repo,
		retention:    time.Duration(retentionDays) * 24 * time.Hour,
		timeout:      time.Minute,
		logger:       logger,
		timeProvider: &RealTimeProvider{},
	}
}

// Run одна итерация очистки
func (j *Job) Run(ctx context.Context) (int64, error) {
	now := j.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	before := today.Add(-j.retention)

	deleted, err := j.repo.DeleteOlderThan(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("block cleanup: delete blocks before %s: %w", before.Format("2006-01-02"), err)
	}

	if deleted > 0 {
		j.logger.Info("BlockCleanup: removed %d blocks dated before %s", deleted, before.Format("2006-01-02"))
	}
	return deleted, nil
}

// Schedule регистрирует задачу в планировщике по cron выражению
func (j *Job) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		if _, err := j.Run(ctx); err != nil {
			j.logger.Error("BlockCleanup: %v", err)
		}
	})
}
