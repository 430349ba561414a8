package scoring

import (
	"testing"

	"github.com/pymer/churninsight-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProbabilityMode(t *testing.T) {
	mode, err := ParseProbabilityMode("")
	require.NoError(t, err)
	assert.Equal(t, ProbabilityModeScore, mode)

	mode, err = ParseProbabilityMode("band-random")
	require.NoError(t, err)
	assert.Equal(t, ProbabilityModeBandRandom, mode)

	_, err = ParseProbabilityMode("gaussian")
	assert.Error(t, err)
}

func TestProbabilityFromScore(t *testing.T) {
	assert.Equal(t, 0.46, ProbabilityFromScore(0.456))
	assert.Equal(t, 1.0, ProbabilityFromScore(1))
	assert.Equal(t, 0.0, ProbabilityFromScore(0))
}

func TestBandRandomProbability(t *testing.T) {
	tests := []struct {
		band     domain.RiskBand
		min, max float64
	}{
		{band: domain.RiskBandHigh, min: 0.6, max: 1.0},
		{band: domain.RiskBandMedium, min: 0.3, max: 0.7},
		{band: domain.RiskBandLow, min: 0, max: 0.3},
	}

	for _, tt := range tests {
		for _, u := range []float64{0, 0.25, 0.5, 0.75, 0.99} {
			p := BandRandomProbability(tt.band, u)
			assert.GreaterOrEqualf(t, p, tt.min, "faixa %s u=%.2f", tt.band, u)
			assert.LessOrEqualf(t, p, tt.max, "faixa %s u=%.2f", tt.band, u)
		}
	}

	assert.Equal(t, 0.6, BandRandomProbability(domain.RiskBandHigh, 0))
	assert.Equal(t, 0.5, BandRandomProbability(domain.RiskBandMedium, 0.5))
}
