package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"Zero", 0, 0},
		{"Arredonda para cima", 0.876, 0.88},
		{"Arredonda para baixo", 0.874, 0.87},
		{"Negativo", -1.255, -1.25},
		{"NaN vira zero", math.NaN(), 0},
		{"Infinito vira zero", math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RoundWithTwoDecimalPlace(tt.in), 1e-9)
		})
	}
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, idLength)
	assert.Regexp(t, `^[A-Za-z0-9]+$`, id)
}
