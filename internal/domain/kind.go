package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ServiceKind тип услуги, по которому подбираются пакеты скидок
type ServiceKind string

const (
	KindTina    ServiceKind = "tina"
	KindMassage ServiceKind = "massage"
	KindCabin   ServiceKind = "cabin"
	KindLodging ServiceKind = "lodging"
	KindDecor   ServiceKind = "decor"
	KindOther   ServiceKind = "other"
)

// ServiceKinds все известные типы
var ServiceKinds = []ServiceKind{KindTina, KindMassage, KindCabin, KindLodging, KindDecor, KindOther}

// Valid проверяет, что тип известен
func (k ServiceKind) Valid() bool {
	for _, known := range ServiceKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ParseServiceKind разбирает тип из строки; пустая/неизвестная строка -> false
func ParseServiceKind(s string) (ServiceKind, bool) {
	k := ServiceKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", false
	}
	return k, true
}

// kindKeywords таблица ключевых слов для legacy записей без явного типа.
// Порядок важен: первое совпадение выигрывает ("cabaña tina" -> lodging).
// Новые записи обязаны хранить явный тип и эту таблицу не используют.
// "desayuno" сюда намеренно не входит и классифицируется как other.
var kindKeywords = []struct {
	kind     ServiceKind
	keywords []string
}{
	{kind: KindLodging, keywords: []string{"cabaña", "cabin", "lodge"}},
	{kind: KindTina, keywords: []string{"tina", "hot tub"}},
	{kind: KindMassage, keywords: []string{"masaje", "spa"}},
	{kind: KindDecor, keywords: []string{"decoración", "decor"}},
}

// ClassifyByName определяет тип по названию услуги через таблицу ключевых слов
// Сравнение без учета регистра и диакритики
func ClassifyByName(name string) ServiceKind {
	folded := foldName(name)
	for _, entry := range kindKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(folded, foldName(kw)) {
				return entry.kind
			}
		}
	}
	return KindOther
}

// ResolveKind возвращает явный тип, если он задан и корректен, иначе классифицирует по названию
func ResolveKind(explicit *ServiceKind, name string) ServiceKind {
	if explicit != nil && explicit.Valid() {
		return *explicit
	}
	return ClassifyByName(name)
}

func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
