package lote_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itamind/descongela-api/internal/domain"
	"github.com/itamind/descongela-api/internal/domain/lote"
)

func kg(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ──────────────────────────────────────────────────────────────────────────────
// Percentual de perda por idade
// ──────────────────────────────────────────────────────────────────────────────

func TestPercentualPerda_Faixas(t *testing.T) {
	base := kg("15")

	casos := []struct {
		idade    int
		esperado string
	}{
		{0, "15"},
		{1, "15"},
		{2, "15"},
		{3, "20"},
		{4, "25"},
		{10, "25"},
	}
	for _, c := range casos {
		got := lote.PercentualPerda(c.idade, base)
		assert.True(t, kg(c.esperado).Equal(got),
			"idade %d: esperado %s, obtido %s", c.idade, c.esperado, got)
	}
}

func TestPercentualPerda_NuncaDiminuiComAIdade(t *testing.T) {
	base := kg("15")
	anterior := lote.PercentualPerda(0, base)
	for idade := 1; idade <= 15; idade++ {
		atual := lote.PercentualPerda(idade, base)
		require.True(t, atual.GreaterThanOrEqual(anterior),
			"perda na idade %d (%s) não pode ser menor que na idade %d (%s)",
			idade, atual, idade-1, anterior)
		anterior = atual
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Conversões bruto ↔ líquido
// ──────────────────────────────────────────────────────────────────────────────

func TestQuantidadeLiquida(t *testing.T) {
	base := kg("15")

	assert.True(t, kg("85").Equal(lote.QuantidadeLiquida(kg("100"), 2, base)),
		"100kg com 15%% de perda devem render 85kg")
	assert.True(t, kg("80").Equal(lote.QuantidadeLiquida(kg("100"), 3, base)),
		"no terceiro dia a perda sobe para 20%%")
	assert.True(t, lote.QuantidadeLiquida(decimal.Zero, 2, base).IsZero())
}

func TestQuantidadeBruta_CompensaAPerda(t *testing.T) {
	bruta, err := lote.QuantidadeBruta(kg("85"), kg("15"))
	require.NoError(t, err)
	assert.True(t, kg("100").Equal(bruta), "esperado 100, obtido %s", bruta)

	bruta, err = lote.QuantidadeBruta(kg("50"), kg("15"))
	require.NoError(t, err)
	assert.True(t, kg("58.82").Equal(bruta), "resultado deve vir com duas casas: obtido %s", bruta)
}

func TestQuantidadeBruta_RoundTripComLiquida(t *testing.T) {
	base := kg("15")

	// bruto → líquido → bruto fecha o ciclo dentro do ciclo de venda
	liquida := lote.QuantidadeLiquida(kg("100"), lote.DiasCicloVenda, base)
	bruta, err := lote.QuantidadeBruta(liquida, base)
	require.NoError(t, err)
	assert.True(t, kg("100").Equal(bruta), "round-trip 100→%s→%s", liquida, bruta)
}

func TestQuantidadeBruta_PercentualImpossivel(t *testing.T) {
	_, err := lote.QuantidadeBruta(kg("85"), kg("100"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "perda de 100%% não tem bruto finito")

	_, err = lote.QuantidadeBruta(kg("85"), kg("120"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
