package totals

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// Result результат пересчета резервации
type Result struct {
	Total     decimal.Decimal
	Discounts []*domain.AppliedDiscount
}

// Aggregator пересчитывает итог резервации и набор скидок
type Aggregator struct {
	reservations ReservationRepository
	packs        PackRepository
	matcher      PackMatcher
	metrics      Metrics
	logger       Logger
}

// NewAggregator создает новый экземпляр агрегатора итогов
func NewAggregator(
	reservations ReservationRepository,
	packs PackRepository,
	matcher PackMatcher,
	metrics Metrics,
	logger Logger,
) *Aggregator {
	return &Aggregator{
		reservations: reservations,
		packs:        packs,
		matcher:      matcher,
		metrics:      metrics,
		logger:       logger,
	}
}

// Recompute пересчитывает итог резервации и заменяет примененные скидки
// Вызывается внутри транзакции, изменившей строки: итог и скидки сохраняются атомарно с изменением.
// Заголовок резервации должен быть уже заблокирован вызывающим кодом
func (a *Aggregator) Recompute(ctx context.Context, reservation *domain.Reservation) (*Result, error) {
	// 1. Текущие строки (внутри транзакции видны и только что измененные)
	if err := a.reservations.LoadLines(ctx, reservation); err != nil {
		a.logger.Error("RecomputeTotal: failed to load lines of reservation=%d: %v", reservation.ID, err)
		return nil, fmt.Errorf("%w: load lines: %v", ErrInternal, err)
	}
	previous := reservation.Discounts

	// 2. Подбор пакетов заново по текущему набору строк
	packs, err := a.packs.ListActive(ctx)
	if err != nil {
		a.logger.Error("RecomputeTotal: failed to list packs: %v", err)
		return nil, fmt.Errorf("%w: list packs: %v", ErrInternal, err)
	}

	discounts := a.matchDiscounts(reservation, packs)

	// 3. Итог по формуле: услуги + товары + подарочные карты - скидки
	reservation.Discounts = discounts
	total := ComputeTotal(reservation)

	// 4. Замена скидок (не накопление) и сохранение итога
	if err := a.reservations.ReplaceDiscounts(ctx, reservation.ID, discounts); err != nil {
		a.logger.Error("RecomputeTotal: failed to replace discounts of reservation=%d: %v", reservation.ID, err)
		return nil, fmt.Errorf("%w: replace discounts: %v", ErrInternal, err)
	}

	if err := a.reservations.UpdateTotals(ctx, reservation.ID, total, reservation.AmountPaid, reservation.PaymentState); err != nil {
		a.logger.Error("RecomputeTotal: failed to update total of reservation=%d: %v", reservation.ID, err)
		return nil, fmt.Errorf("%w: update totals: %v", ErrInternal, err)
	}

	reservation.Total = total
	a.recordNewDiscounts(previous, discounts)

	a.logger.Info("RecomputeTotal: reservation=%d total=%s, discounts=%d",
		reservation.ID, total.StringFixed(2), len(discounts))

	return &Result{Total: total, Discounts: discounts}, nil
}

// matchDiscounts строит синтетические строки скидок из найденных пакетов
func (a *Aggregator) matchDiscounts(reservation *domain.Reservation, packs []*domain.DiscountPack) []*domain.AppliedDiscount {
	active := make([]*domain.ReservationLine, 0, len(reservation.ServiceLines))
	items := make([]domain.PackLineItem, 0, len(reservation.ServiceLines))

	for _, line := range reservation.ServiceLines {
		if !line.IsActive() {
			continue
		}
		active = append(active, line)
		items = append(items, domain.PackLineItem{
			LineID:      line.ID,
			Kind:        line.ServiceKind,
			ServiceName: line.ServiceName,
			Date:        line.Date,
			StartTime:   line.StartTime,
			Persons:     line.Persons,
		})
	}

	matches := a.matcher.Match(packs, items)

	discounts := make([]*domain.AppliedDiscount, 0, len(matches))
	for _, m := range matches {
		lineIDs := make([]int64, 0, len(m.IncludedLineIndices))
		for _, idx := range m.IncludedLineIndices {
			lineIDs = append(lineIDs, active[idx].ID)
		}

		discounts = append(discounts, &domain.AppliedDiscount{
			ReservationID: reservation.ID,
			PackID:        m.Pack.ID,
			PackName:      m.Pack.Name,
			Amount:        m.DiscountAmount,
			LineIDs:       lineIDs,
		})
	}

	return discounts
}

func (a *Aggregator) recordNewDiscounts(previous, current []*domain.AppliedDiscount) {
	seen := make(map[int64]int, len(previous))
	for _, d := range previous {
		seen[d.PackID]++
	}
	for _, d := range current {
		if seen[d.PackID] > 0 {
			seen[d.PackID]--
			continue
		}
		a.metrics.RecordDiscountApplied(d.PackName)
	}
}

// ComputeTotal сумма резервации по ее строкам
// Σ(услуги: цена * персоны) + Σ(товары: цена * количество) + Σ(подарочные карты) - Σ(скидки)
// Отмененные строки услуг не учитываются
func ComputeTotal(reservation *domain.Reservation) decimal.Decimal {
	total := decimal.Zero

	for _, line := range reservation.ServiceLines {
		if line.IsActive() {
			total = total.Add(line.Subtotal())
		}
	}
	for _, line := range reservation.ProductLines {
		total = total.Add(line.Subtotal())
	}
	for _, card := range reservation.GiftCardLines {
		total = total.Add(card.Amount)
	}
	for _, discount := range reservation.Discounts {
		total = total.Sub(discount.Amount)
	}

	return total
}
