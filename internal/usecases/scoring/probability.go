package scoring

import (
	"fmt"

	"github.com/pymer/churninsight-api/internal/domain"
)

// ProbabilityMode define como a probabilidade exibida é derivada
type ProbabilityMode string

const (
	// ProbabilityModeScore usa o próprio score arredondado (determinístico)
	ProbabilityModeScore ProbabilityMode = "score"
	// ProbabilityModeBandRandom sorteia dentro do intervalo da faixa, como o mock original do front-end
	ProbabilityModeBandRandom ProbabilityMode = "band-random"
)

// ParseProbabilityMode valida o modo configurado. Vazio equivale a "score".
func ParseProbabilityMode(value string) (ProbabilityMode, error) {
	switch ProbabilityMode(value) {
	case "", ProbabilityModeScore:
		return ProbabilityModeScore, nil
	case ProbabilityModeBandRandom:
		return ProbabilityModeBandRandom, nil
	}
	return "", fmt.Errorf("modo de probabilidade inválido: %q", value)
}

// ProbabilityFromScore é o mapeamento determinístico: probabilidade = score com duas casas
func ProbabilityFromScore(score float64) float64 {
	return round(score)
}

type probabilityRange struct {
	min, width float64
}

var bandProbabilityRanges = map[domain.RiskBand]probabilityRange{
	domain.RiskBandHigh:   {min: 0.6, width: 0.4}, // [0.6, 1.0)
	domain.RiskBandMedium: {min: 0.3, width: 0.4}, // [0.3, 0.7)
	domain.RiskBandLow:    {min: 0, width: 0.3},   // [0, 0.3)
}

// BandRandomProbability projeta u em [0,1) no intervalo da faixa e arredonda para duas casas
func BandRandomProbability(band domain.RiskBand, u float64) float64 {
	r, ok := bandProbabilityRanges[band]
	if !ok {
		r = bandProbabilityRanges[domain.RiskBandMedium]
	}
	return round(r.min + u*r.width)
}
