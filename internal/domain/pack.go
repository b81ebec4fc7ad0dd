package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// DiscountPack правило скидки за комбинацию типов услуг (только чтение)
type DiscountPack struct {
	ID               int64
	Name             string
	DiscountAmount   decimal.Decimal
	RequiredKinds    []ServiceKind
	ValidWeekdays    []time.Weekday // Пусто = любой день
	SameDateRequired bool
	MinNights        int // Для lodging: минимум строк проживания в группе
	Priority         int
	Active           bool
	ValidFrom        *time.Time
	ValidTo          *time.Time
}

// RequiresKind проверяет, входит ли тип в обязательные
func (p *DiscountPack) RequiresKind(kind ServiceKind) bool {
	for _, k := range p.RequiredKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// AllowsWeekday пустой список дней означает "любой день"
func (p *DiscountPack) AllowsWeekday(day time.Weekday) bool {
	if len(p.ValidWeekdays) == 0 {
		return true
	}
	for _, d := range p.ValidWeekdays {
		if d == day {
			return true
		}
	}
	return false
}

// CoversDate проверяет date_range (границы включительно, nil = без ограничения)
func (p *DiscountPack) CoversDate(date time.Time) bool {
	d := DateOnly(date)
	if p.ValidFrom != nil && d.Before(DateOnly(*p.ValidFrom)) {
		return false
	}
	if p.ValidTo != nil && d.After(DateOnly(*p.ValidTo)) {
		return false
	}
	return true
}

// RequiredNights минимальное количество строк проживания (не меньше 1, если lodging обязателен)
func (p *DiscountPack) RequiredNights() int {
	if !p.RequiresKind(KindLodging) {
		return 0
	}
	if p.MinNights < 1 {
		return 1
	}
	return p.MinNights
}

// PackLineItem строка корзины в том виде, в котором её видит подбор пакетов
type PackLineItem struct {
	LineID      int64
	Kind        *ServiceKind // Явный тип, если известен
	ServiceName string       // Для классификации legacy строк
	Date        time.Time
	StartTime   types.TimeString
	Persons     int
}

// ResolvedKind тип строки: явный или по ключевым словам названия
func (i PackLineItem) ResolvedKind() ServiceKind {
	return ResolveKind(i.Kind, i.ServiceName)
}

// PackMatch примененный пакет
type PackMatch struct {
	Pack                *DiscountPack
	DiscountAmount      decimal.Decimal
	IncludedLineIndices []int
}
