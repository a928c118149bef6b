package lote_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itamind/descongela-api/internal/domain/entity"
	"github.com/itamind/descongela-api/internal/domain/lote"
)

func dia(ano int, mes time.Month, d int) time.Time {
	return time.Date(ano, mes, d, 0, 0, 0, 0, time.UTC)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estágio por idade do lote
// ──────────────────────────────────────────────────────────────────────────────

func TestEstagio_TabelaDoCiclo(t *testing.T) {
	retirada := dia(2024, time.June, 1)

	casos := []struct {
		nome       string
		referencia time.Time
		esperado   string
	}{
		{"referência antes da retirada", dia(2024, time.May, 31), entity.StageToWithdraw},
		{"dia da retirada", dia(2024, time.June, 1), entity.StageThawingDay1},
		{"um dia depois", dia(2024, time.June, 2), entity.StageThawingDay2},
		{"dois dias depois", dia(2024, time.June, 3), entity.StageSellable},
		{"três dias depois", dia(2024, time.June, 4), entity.StageExpired},
		{"uma semana depois", dia(2024, time.June, 8), entity.StageExpired},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			assert.Equal(t, c.esperado, lote.Estagio(retirada, c.referencia))
		})
	}
}

func TestEstagio_IgnoraHoraDoDia(t *testing.T) {
	// Retirada às 23h e consulta às 6h do dia seguinte ainda é um dia corrido.
	retirada := time.Date(2024, time.June, 1, 23, 30, 0, 0, time.UTC)
	referencia := time.Date(2024, time.June, 2, 6, 0, 0, 0, time.UTC)

	assert.Equal(t, entity.StageThawingDay2, lote.Estagio(retirada, referencia),
		"a diferença deve contar dias de calendário, não períodos de 24h")
}

func TestIdadeDias_NuncaNegativa(t *testing.T) {
	retirada := dia(2024, time.June, 10)

	assert.Equal(t, 0, lote.IdadeDias(retirada, dia(2024, time.June, 5)),
		"lote retirado no futuro deve ter idade zero")
	assert.Equal(t, 0, lote.IdadeDias(retirada, dia(2024, time.June, 10)))
	assert.Equal(t, 3, lote.IdadeDias(retirada, dia(2024, time.June, 13)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Rótulos humanos
// ──────────────────────────────────────────────────────────────────────────────

func TestRotuloEstagio(t *testing.T) {
	retirada := dia(2024, time.June, 1)

	assert.Equal(t, "A retirar", lote.RotuloEstagio(retirada, dia(2024, time.May, 30)))
	assert.Equal(t, "Descongelando (Dia 1)", lote.RotuloEstagio(retirada, dia(2024, time.June, 1)))
	assert.Equal(t, "Descongelando (Dia 2)", lote.RotuloEstagio(retirada, dia(2024, time.June, 2)))
	assert.Equal(t, "Disponível para a venda", lote.RotuloEstagio(retirada, dia(2024, time.June, 3)))
	assert.Equal(t, "Fora do ciclo", lote.RotuloEstagio(retirada, dia(2024, time.June, 7)))
}

func TestRotuloCiclo(t *testing.T) {
	retirada := dia(2024, time.June, 1)

	assert.Equal(t, "Dia 1 (Esquerda)", lote.RotuloCiclo(retirada, dia(2024, time.June, 1)))
	assert.Equal(t, "Dia 2 (Central)", lote.RotuloCiclo(retirada, dia(2024, time.June, 2)))
	assert.Equal(t, "Dia 3 (Venda)", lote.RotuloCiclo(retirada, dia(2024, time.June, 3)))
	assert.Equal(t, "Fora do ciclo (5 dias)", lote.RotuloCiclo(retirada, dia(2024, time.June, 6)))
	assert.Equal(t, "Fora do ciclo (-1 dias)", lote.RotuloCiclo(retirada, dia(2024, time.May, 31)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Datas derivadas e geração de lote
// ──────────────────────────────────────────────────────────────────────────────

func TestDataVendaPrevista_DoisDiasDepois(t *testing.T) {
	retirada := time.Date(2024, time.June, 1, 14, 45, 0, 0, time.UTC)
	assert.Equal(t, dia(2024, time.June, 3), lote.DataVendaPrevista(retirada),
		"a venda prevista deve cair dois dias depois da retirada, à meia-noite")
}

func TestNoPrazoVenda(t *testing.T) {
	retirada := dia(2024, time.June, 1)

	assert.True(t, lote.NoPrazoVenda(retirada, dia(2024, time.June, 3)),
		"no dia da venda o lote ainda está no prazo")
	assert.False(t, lote.NoPrazoVenda(retirada, dia(2024, time.June, 4)),
		"no dia seguinte o lote já saiu do ciclo")
}

func TestGerarLote_FormatoEUnicidade(t *testing.T) {
	retirada := dia(2024, time.June, 1)

	a := lote.GerarLote(7, retirada)
	b := lote.GerarLote(7, retirada)

	require.True(t, strings.HasPrefix(a, "7_20240601_"), "lote: %s", a)
	partes := strings.Split(a, "_")
	require.Len(t, partes, 3)
	assert.Len(t, partes[2], 4, "sufixo aleatório deve ter 4 caracteres")
	assert.NotEqual(t, a, b, "duas retiradas do mesmo produto no mesmo dia devem gerar lotes distintos")
}
