package lote

import (
	"github.com/shopspring/decimal"
	"github.com/itamind/descongela-api/internal/domain"
)

// PercentualPerdaBase é a perda padrão por descongelamento quando o chamador não informa outra.
var PercentualPerdaBase = decimal.NewFromInt(15)

var cem = decimal.NewFromInt(100)

// PercentualPerda calcula o percentual de perda esperado conforme a idade do lote.
// A perda aumenta com o tempo: +5 pontos no terceiro dia, +10 depois.
func PercentualPerda(idadeDias int, percentualBase decimal.Decimal) decimal.Decimal {
	switch {
	case idadeDias <= DiasCicloVenda:
		return percentualBase
	case idadeDias == DiasCicloVenda+1:
		return percentualBase.Add(decimal.NewFromInt(5))
	default:
		return percentualBase.Add(decimal.NewFromInt(10))
	}
}

// QuantidadeLiquida converte quantidade bruta retirada em quantidade líquida
// vendável, descontando a perda da idade atual. Piso em zero.
func QuantidadeLiquida(bruta decimal.Decimal, idadeDias int, percentualBase decimal.Decimal) decimal.Decimal {
	perda := PercentualPerda(idadeDias, percentualBase)
	liquida := bruta.Mul(cem.Sub(perda)).Div(cem)
	if liquida.IsNegative() {
		return decimal.Zero
	}
	return liquida
}

// QuantidadeBruta resolve quanto retirar do freezer para obter a quantidade
// líquida desejada. Usada no planejamento, antes de existir lote, por isso
// sempre aplica o percentual base. Resultado com duas casas decimais.
// Percentual >= 100 é entrada inválida (divisão por zero ou sinal invertido).
func QuantidadeBruta(liquida decimal.Decimal, percentualBase decimal.Decimal) (decimal.Decimal, error) {
	if percentualBase.GreaterThanOrEqual(cem) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	bruta := liquida.Mul(cem).Div(cem.Sub(percentualBase))
	return bruta.Round(2), nil
}
