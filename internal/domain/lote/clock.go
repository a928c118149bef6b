// Package lote concentra as regras puras do ciclo de descongelamento:
// idade do lote em dias corridos, estágio derivado da idade e conversões
// de quantidade considerando a perda por descongelamento.
package lote

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/itamind/descongela-api/internal/domain/entity"
)

// DiasCicloVenda é quantos dias após a retirada o lote fica disponível para venda.
const DiasCicloVenda = 2

// diffDias devolve a diferença em dias corridos entre retirada e referência,
// ignorando hora do dia (ambas as datas normalizadas para meia-noite).
// Negativo quando a referência antecede a retirada.
func diffDias(dataRetirada, referencia time.Time) int {
	r := meiaNoite(dataRetirada)
	ref := meiaNoite(referencia)

	diff := ref.Sub(r)
	dias := int(diff / (24 * time.Hour))
	// ceil para diferenças fracionárias (troca de fuso/horário de verão)
	if diff%(24*time.Hour) > 0 {
		dias++
	}
	return dias
}

func meiaNoite(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IdadeDias calcula a idade de um lote em dias desde a retirada.
// Nunca devolve valor negativo: lote retirado "no futuro" tem idade zero.
func IdadeDias(dataRetirada, referencia time.Time) int {
	dias := diffDias(dataRetirada, referencia)
	if dias < 0 {
		return 0
	}
	return dias
}

// Estagio determina o estágio atual de um lote a partir das datas.
//
//	referência < retirada -> to_withdraw
//	0 dias               -> thawing_day1 (dia da retirada)
//	1 dia                -> thawing_day2
//	2 dias               -> sellable
//	3+ dias              -> expired
func Estagio(dataRetirada, referencia time.Time) string {
	dias := diffDias(dataRetirada, referencia)

	switch {
	case dias < 0:
		return entity.StageToWithdraw
	case dias == 0:
		return entity.StageThawingDay1
	case dias == 1:
		return entity.StageThawingDay2
	case dias == 2:
		return entity.StageSellable
	default:
		return entity.StageExpired
	}
}

// RotuloEstagio devolve o rótulo humano do estágio para exibição.
func RotuloEstagio(dataRetirada, referencia time.Time) string {
	switch Estagio(dataRetirada, referencia) {
	case entity.StageToWithdraw:
		return "A retirar"
	case entity.StageThawingDay1:
		return "Descongelando (Dia 1)"
	case entity.StageThawingDay2:
		return "Descongelando (Dia 2)"
	case entity.StageSellable:
		return "Disponível para a venda"
	default:
		return "Fora do ciclo"
	}
}

// RotuloCiclo classifica o intervalo retirada→venda dentro do ciclo de três dias.
// Mesma aritmética de diffDias, rótulos diferentes.
func RotuloCiclo(dataRetirada, dataVenda time.Time) string {
	dias := diffDias(dataRetirada, dataVenda)

	switch dias {
	case 0:
		return "Dia 1 (Esquerda)"
	case 1:
		return "Dia 2 (Central)"
	case 2:
		return "Dia 3 (Venda)"
	default:
		return fmt.Sprintf("Fora do ciclo (%d dias)", dias)
	}
}

// DataVendaPrevista calcula quando um lote estará pronto para venda.
func DataVendaPrevista(dataRetirada time.Time) time.Time {
	return meiaNoite(dataRetirada).AddDate(0, 0, DiasCicloVenda)
}

// NoPrazoVenda informa se o lote ainda está dentro do ciclo de venda.
func NoPrazoVenda(dataRetirada, referencia time.Time) bool {
	return Estagio(dataRetirada, referencia) != entity.StageExpired
}

// GerarLote gera o identificador do lote: {produto}_{YYYYMMDD}_{sufixo}.
// O sufixo aleatório evita colisão entre retiradas do mesmo produto no mesmo dia.
func GerarLote(produtoID int, dataRetirada time.Time) string {
	return fmt.Sprintf("%d_%s_%s", produtoID, dataRetirada.Format("20060102"), uuid.NewString()[:4])
}
