package packs

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// Matcher подбирает пакеты скидок для строк корзины
// Не имеет состояния и не обращается к хранилищу
type Matcher struct {
	logger Logger
}

// NewMatcher создает новый экземпляр подбора пакетов
func NewMatcher(logger Logger) *Matcher {
	return &Matcher{logger: logger}
}

// candidate пакет, подошедший одной группе строк
type candidate struct {
	pack     *domain.DiscountPack
	included []int
}

// Match возвращает непересекающийся набор примененных пакетов
//
// Алгоритм:
// 1. Активные пакеты сортируются по (priority desc, discount_amount desc)
// 2. Для пакета с same_date_required строки делятся на группы по дате, иначе вся корзина - одна группа
// 3. Пакет подходит группе, если среди еще не занятых строк есть все обязательные типы
//    (и набрано min_nights для lodging)
// 4. Пакеты обходятся жадно в порядке приоритета: строки принятого пакета занимаются
//    и недоступны пакетам с меньшим приоритетом. Частичное применение не допускается
func (m *Matcher) Match(packs []*domain.DiscountPack, items []domain.PackLineItem) []domain.PackMatch {
	ordered := activeByPriority(packs)
	if len(ordered) == 0 || len(items) == 0 {
		return []domain.PackMatch{}
	}

	kinds := make([]domain.ServiceKind, len(items))
	for i, item := range items {
		kinds[i] = item.ResolvedKind()
	}

	claimed := make(map[int]bool)
	accepted := make([]domain.PackMatch, 0)

	for _, pack := range ordered {
		if len(pack.RequiredKinds) == 0 {
			m.logger.Warn("MatchPacks: pack id=%d (%s) has no required kinds, skipped", pack.ID, pack.Name)
			continue
		}

		for _, group := range groupsFor(pack, items) {
			included, ok := matchGroup(pack, kinds, group, claimed)
			if !ok {
				continue
			}

			c := candidate{pack: pack, included: included}
			if err := validateCandidate(c, len(items), claimed); err != nil {
				m.logger.Error("MatchPacks: %v, pack id=%d dropped", err, pack.ID)
				continue
			}

			for _, idx := range included {
				claimed[idx] = true
			}

			accepted = append(accepted, domain.PackMatch{
				Pack:                pack,
				DiscountAmount:      pack.DiscountAmount,
				IncludedLineIndices: included,
			})
		}
	}

	return accepted
}

// activeByPriority оставляет активные пакеты и сортирует их по (priority desc, discount desc, id asc)
func activeByPriority(packs []*domain.DiscountPack) []*domain.DiscountPack {
	out := make([]*domain.DiscountPack, 0, len(packs))
	for _, p := range packs {
		if p != nil && p.Active {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		if cmp := out[i].DiscountAmount.Cmp(out[j].DiscountAmount); cmp != 0 {
			return cmp > 0
		}
		return out[i].ID < out[j].ID
	})

	return out
}

// groupsFor разбивает строки на группы-кандидаты для пакета (индексы в исходном списке)
func groupsFor(pack *domain.DiscountPack, items []domain.PackLineItem) [][]int {
	if !pack.SameDateRequired {
		group := make([]int, 0, len(items))
		for i, item := range items {
			if pack.CoversDate(item.Date) && pack.AllowsWeekday(item.Date.Weekday()) {
				group = append(group, i)
			}
		}
		if len(group) == 0 {
			return nil
		}
		return [][]int{group}
	}

	byDate := make(map[time.Time][]int)
	dates := make([]time.Time, 0)
	for i, item := range items {
		if !pack.CoversDate(item.Date) {
			continue
		}
		d := domain.DateOnly(item.Date)
		if _, ok := byDate[d]; !ok {
			dates = append(dates, d)
		}
		byDate[d] = append(byDate[d], i)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	groups := make([][]int, 0, len(dates))
	for _, d := range dates {
		// День недели группы должен входить в valid_weekdays пакета
		if !pack.AllowsWeekday(d.Weekday()) {
			continue
		}
		groups = append(groups, byDate[d])
	}
	return groups
}

// matchGroup проверяет, что группа содержит все обязательные типы пакета.
// Для каждого типа берутся первые незанятые строки этого типа: одна, либо min_nights для lodging
func matchGroup(pack *domain.DiscountPack, kinds []domain.ServiceKind, group []int, claimed map[int]bool) ([]int, bool) {
	seen := make(map[domain.ServiceKind]bool, len(pack.RequiredKinds))
	included := make([]int, 0, len(pack.RequiredKinds))

	for _, required := range pack.RequiredKinds {
		if seen[required] {
			continue
		}
		seen[required] = true

		need := 1
		if required == domain.KindLodging {
			need = pack.RequiredNights()
		}

		taken := 0
		for _, idx := range group {
			if taken == need {
				break
			}
			if kinds[idx] == required && !claimed[idx] {
				included = append(included, idx)
				taken++
			}
		}

		if taken < need {
			return nil, false
		}
	}

	sort.Ints(included)
	return included, true
}

func validateCandidate(c candidate, itemsCount int, claimed map[int]bool) error {
	if len(c.included) == 0 {
		return fmt.Errorf("%w: no lines included", domain.ErrPackMatchInconsistency)
	}
	if c.pack.DiscountAmount.IsNegative() {
		return fmt.Errorf("%w: negative discount %s", domain.ErrPackMatchInconsistency, c.pack.DiscountAmount)
	}

	seen := make(map[int]bool, len(c.included))
	for _, idx := range c.included {
		if idx < 0 || idx >= itemsCount {
			return fmt.Errorf("%w: line index %d out of range", domain.ErrPackMatchInconsistency, idx)
		}
		if seen[idx] || claimed[idx] {
			return fmt.Errorf("%w: line index %d claimed twice", domain.ErrPackMatchInconsistency, idx)
		}
		seen[idx] = true
	}
	return nil
}
