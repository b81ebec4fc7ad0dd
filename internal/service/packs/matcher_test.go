package packs

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
)

var (
	friday    = time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	saturday  = time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)
	wednesday = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
)

func kind(k domain.ServiceKind) *domain.ServiceKind {
	return &k
}

func item(id int64, k domain.ServiceKind, date time.Time) domain.PackLineItem {
	return domain.PackLineItem{LineID: id, Kind: kind(k), Date: date, StartTime: "10:00", Persons: 2}
}

func romanticFriday() *domain.DiscountPack {
	return &domain.DiscountPack{
		ID:               1,
		Name:             "Viernes romántico",
		DiscountAmount:   decimal.NewFromInt(10000),
		RequiredKinds:    []domain.ServiceKind{domain.KindTina, domain.KindMassage},
		ValidWeekdays:    []time.Weekday{time.Friday},
		SameDateRequired: true,
		Priority:         1,
		Active:           true,
	}
}

func TestMatcher_FridayPackMatchesOnce(t *testing.T) {
	m := NewMatcher(logger.Nop{})

	items := []domain.PackLineItem{
		item(10, domain.KindTina, friday),
		item(11, domain.KindMassage, friday),
	}

	matches := m.Match([]*domain.DiscountPack{romanticFriday()}, items)

	require.Len(t, matches, 1)
	assert.Equal(t, int64(1), matches[0].Pack.ID)
	assert.True(t, matches[0].DiscountAmount.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, []int{0, 1}, matches[0].IncludedLineIndices)
}

func TestMatcher_WrongWeekdayNoDiscount(t *testing.T) {
	m := NewMatcher(logger.Nop{})

	items := []domain.PackLineItem{
		item(10, domain.KindTina, wednesday),
		item(11, domain.KindMassage, wednesday),
	}

	assert.Empty(t, m.Match([]*domain.DiscountPack{romanticFriday()}, items))
}

func TestMatcher_SameDateRequiredSplitsByDate(t *testing.T) {
	m := NewMatcher(logger.Nop{})

	pack := romanticFriday()
	pack.ValidWeekdays = nil

	items := []domain.PackLineItem{
		item(10, domain.KindTina, friday),
		item(11, domain.KindMassage, saturday),
	}
	assert.Empty(t, m.Match([]*domain.DiscountPack{pack}, items))

	// Две пары в разные дни: пакет применяется к каждой группе
	items = append(items, item(12, domain.KindMassage, friday), item(13, domain.KindTina, saturday))
	matches := m.Match([]*domain.DiscountPack{pack}, items)
	require.Len(t, matches, 2)
	assert.Equal(t, []int{0, 2}, matches[0].IncludedLineIndices)
	assert.Equal(t, []int{1, 3}, matches[1].IncludedLineIndices)
}

func TestMatcher_HigherPriorityWinsConflict(t *testing.T) {
	m := NewMatcher(logger.Nop{})

	low := &domain.DiscountPack{
		ID: 1, Name: "Tina simple", DiscountAmount: decimal.NewFromInt(50000),
		RequiredKinds: []domain.ServiceKind{domain.KindTina}, Priority: 1, Active: true,
	}
	high := &domain.DiscountPack{
		ID: 2, Name: "Tina premium", DiscountAmount: decimal.NewFromInt(5000),
		RequiredKinds: []domain.ServiceKind{domain.KindTina}, Priority: 5, Active: true,
	}

	items := []domain.PackLineItem{item(10, domain.KindTina, friday)}
	matches := m.Match([]*domain.DiscountPack{low, high}, items)

	require.Len(t, matches, 1)
	assert.Equal(t, int64(2), matches[0].Pack.ID)
}

func TestMatcher_LowerPriorityTakesFreeLineOfSameKind(t *testing.T) {
	m := NewMatcher(logger.Nop{})

	combo := &domain.DiscountPack{
		ID: 1, Name: "Tina y masaje", DiscountAmount: decimal.NewFromInt(8000),
		RequiredKinds: []domain.ServiceKind{domain.KindTina, domain.KindMassage}, Priority: 5, Active: true,
	}
	tinaOnly := &domain.DiscountPack{
		ID: 2, Name: "Tina simple", DiscountAmount: decimal.NewFromInt(3000),
		RequiredKinds: []domain.ServiceKind{domain.KindTina}, Priority: 1, Active: true,
	}

	items := []domain.PackLineItem{
		item(10, domain.KindTina, friday),
		item(11, domain.KindMassage, friday),
		item(12, domain.KindTina, saturday),
	}

	matches := m.Match([]*domain.DiscountPack{tinaOnly, combo}, items)

	require.Len(t, matches, 2)
	assert.Equal(t, int64(1), matches[0].Pack.ID)
	assert.Equal(t, []int{0, 1}, matches[0].IncludedLineIndices)
	assert.Equal(t, int64(2), matches[1].Pack.ID)
	assert.Equal(t, []int{2}, matches[1].IncludedLineIndices)
}

func TestMatcher_EqualPriorityPrefersLargerDiscount(t *testing.T) {
	m := NewMatcher(logger.Nop{})

	small := &domain.DiscountPack{
		ID: 1, DiscountAmount: decimal.NewFromInt(1000),
		RequiredKinds: []domain.ServiceKind{domain.KindMassage}, Priority: 3, Active: true,
	}
	big := &domain.DiscountPack{
		ID: 2, DiscountAmount: decimal.NewFromInt(3000),
		RequiredKinds: []domain.ServiceKind{domain.KindMassage}, Priority: 3, Active: true,
	}

	matches := m.Match([]*domain.DiscountPack{small, big}, []domain.PackLineItem{item(10, domain.KindMassage, friday)})

	require.Len(t, matches, 1)
	assert.Equal(t, int64(2), matches[0].Pack.ID)
}

func TestMatcher_LodgingMinNights(t *testing.T) {
	m := NewMatcher(logger.Nop{})

	pack := &domain.DiscountPack{
		ID: 1, DiscountAmount: decimal.NewFromInt(20000),
		RequiredKinds: []domain.ServiceKind{domain.KindLodging, domain.KindTina},
		MinNights:     2, Priority: 1, Active: true,
	}

	oneNight := []domain.PackLineItem{
		item(10, domain.KindLodging, friday),
		item(11, domain.KindTina, friday),
	}
	assert.Empty(t, m.Match([]*domain.DiscountPack{pack}, oneNight))

	twoNights := append(oneNight, item(12, domain.KindLodging, saturday))
	matches := m.Match([]*domain.DiscountPack{pack}, twoNights)
	require.Len(t, matches, 1)
	assert.Equal(t, []int{0, 1, 2}, matches[0].IncludedLineIndices)
}

func TestMatcher_LegacyLinesClassifiedByName(t *testing.T) {
	m := NewMatcher(logger.Nop{})

	items := []domain.PackLineItem{
		{LineID: 1, ServiceName: "Tina caliente al aire libre", Date: friday},
		{LineID: 2, ServiceName: "Masaje descontracturante", Date: friday},
	}

	matches := m.Match([]*domain.DiscountPack{romanticFriday()}, items)
	require.Len(t, matches, 1)
}

func TestMatcher_DisjointLinesAcrossPacks(t *testing.T) {
	m := NewMatcher(logger.Nop{})

	tinaPack := &domain.DiscountPack{
		ID: 1, DiscountAmount: decimal.NewFromInt(100),
		RequiredKinds: []domain.ServiceKind{domain.KindTina}, Priority: 2, Active: true,
	}
	comboPack := &domain.DiscountPack{
		ID: 2, DiscountAmount: decimal.NewFromInt(500),
		RequiredKinds: []domain.ServiceKind{domain.KindTina, domain.KindMassage}, Priority: 1, Active: true,
	}
	decorPack := &domain.DiscountPack{
		ID: 3, DiscountAmount: decimal.NewFromInt(50),
		RequiredKinds: []domain.ServiceKind{domain.KindDecor}, Priority: 0, Active: true,
	}

	items := []domain.PackLineItem{
		item(10, domain.KindTina, friday),
		item(11, domain.KindMassage, friday),
		item(12, domain.KindDecor, friday),
	}

	matches := m.Match([]*domain.DiscountPack{comboPack, decorPack, tinaPack}, items)
	require.Len(t, matches, 2)

	seen := make(map[int]bool)
	for _, match := range matches {
		for _, idx := range match.IncludedLineIndices {
			assert.False(t, seen[idx], "line %d claimed twice", idx)
			seen[idx] = true
		}
	}
	assert.Equal(t, int64(1), matches[0].Pack.ID)
	assert.Equal(t, int64(3), matches[1].Pack.ID)
}

func TestMatcher_SkipsInactiveAndOutOfRange(t *testing.T) {
	m := NewMatcher(logger.Nop{})

	inactive := romanticFriday()
	inactive.Active = false

	expired := romanticFriday()
	expired.ID = 2
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	expired.ValidTo = &to

	items := []domain.PackLineItem{
		item(10, domain.KindTina, friday),
		item(11, domain.KindMassage, friday),
	}

	assert.Empty(t, m.Match([]*domain.DiscountPack{inactive, expired}, items))
}

func TestMatcher_EmptyInputs(t *testing.T) {
	m := NewMatcher(logger.Nop{})

	assert.Empty(t, m.Match(nil, []domain.PackLineItem{item(1, domain.KindTina, friday)}))
	assert.Empty(t, m.Match([]*domain.DiscountPack{romanticFriday()}, nil))
}
