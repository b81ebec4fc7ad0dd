package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// WeeklySlots недельный шаблон слотов: день недели -> упорядоченный список времени
// Создается только через ParseWeeklySlots / NewWeeklySlots, поэтому всегда валиден
type WeeklySlots map[time.Weekday][]types.TimeString

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,

	"lunes":     time.Monday,
	"martes":    time.Tuesday,
	"miercoles": time.Wednesday,
	"miércoles": time.Wednesday,
	"jueves":    time.Thursday,
	"viernes":   time.Friday,
	"sabado":    time.Saturday,
	"sábado":    time.Saturday,
	"domingo":   time.Sunday,
}

// ParseWeekday разбирает название дня недели (английское или испанское)
func ParseWeekday(name string) (time.Weekday, error) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidWeeklySlots, name)
	}
	return wd, nil
}

// ParseWeeklySlots валидирует сырой шаблон из хранилища
// Каждый элемент должен быть корректным HH:MM; дубликаты удаляются, время сортируется
func ParseWeeklySlots(raw map[string][]string) (WeeklySlots, error) {
	result := make(WeeklySlots, len(raw))

	for name, times := range raw {
		wd, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}

		for _, s := range times {
			ts, err := types.NewTimeStringFromString(s)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidWeeklySlots, name, err)
			}
			result[wd] = append(result[wd], ts)
		}
	}

	for wd, times := range result {
		result[wd] = normalizeTimes(times)
	}

	return result, nil
}

// NewWeeklySlots собирает шаблон из типизированных значений
func NewWeeklySlots(days map[time.Weekday][]string) (WeeklySlots, error) {
	raw := make(map[string][]string, len(days))
	for wd, times := range days {
		raw[strings.ToLower(wd.String())] = append(raw[strings.ToLower(wd.String())], times...)
	}
	return ParseWeeklySlots(raw)
}

// For возвращает копию слотов на день недели
func (w WeeklySlots) For(day time.Weekday) []types.TimeString {
	slots := w[day]
	out := make([]types.TimeString, len(slots))
	copy(out, slots)
	return out
}

// IsEmpty возвращает true, если шаблон не содержит ни одного слота
func (w WeeklySlots) IsEmpty() bool {
	for _, times := range w {
		if len(times) > 0 {
			return false
		}
	}
	return true
}

// MarshalJSON сериализует шаблон с английскими названиями дней
func (w WeeklySlots) MarshalJSON() ([]byte, error) {
	raw := make(map[string][]string, len(w))
	for wd, times := range w {
		key := strings.ToLower(wd.String())
		list := make([]string, len(times))
		for i, t := range times {
			list[i] = t.String()
		}
		raw[key] = list
	}
	return json.Marshal(raw)
}

// UnmarshalJSON разбирает и валидирует шаблон
func (w *WeeklySlots) UnmarshalJSON(data []byte) error {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWeeklySlots, err)
	}

	parsed, err := ParseWeeklySlots(raw)
	if err != nil {
		return err
	}

	*w = parsed
	return nil
}

func normalizeTimes(times []types.TimeString) []types.TimeString {
	sort.Slice(times, func(i, j int) bool { return times[i].IsBefore(times[j]) })

	out := make([]types.TimeString, 0, len(times))
	for _, t := range times {
		if len(out) > 0 && out[len(out)-1] == t {
			continue
		}
		out = append(out, t)
	}
	return out
}
