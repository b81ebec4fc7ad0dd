package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyByName(t *testing.T) {
	tests := []struct {
		name string
		want ServiceKind
	}{
		{name: "Cabaña Familiar", want: KindLodging},
		{name: "CABANA del bosque", want: KindLodging},
		{name: "Forest Lodge", want: KindLodging},
		{name: "Tina caliente 2 horas", want: KindTina},
		{name: "Hot Tub privado", want: KindTina},
		{name: "Masaje descontracturante", want: KindMassage},
		{name: "Day Spa", want: KindMassage},
		{name: "Decoración romántica", want: KindDecor},
		{name: "Desayuno continental", want: KindOther},
		{name: "", want: KindOther},
		// Первое совпадение в таблице выигрывает
		{name: "Cabaña con tina", want: KindLodging},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyByName(tt.name))
		})
	}
}

func TestResolveKind_ExplicitKindBypassesKeywords(t *testing.T) {
	massage := KindMassage
	assert.Equal(t, KindMassage, ResolveKind(&massage, "Tina caliente"))

	invalid := ServiceKind("sauna")
	assert.Equal(t, KindTina, ResolveKind(&invalid, "Tina caliente"))
	assert.Equal(t, KindTina, ResolveKind(nil, "Tina caliente"))
}

func TestParseServiceKind(t *testing.T) {
	k, ok := ParseServiceKind(" Massage ")
	assert.True(t, ok)
	assert.Equal(t, KindMassage, k)

	_, ok = ParseServiceKind("breakfast")
	assert.False(t, ok)
}
