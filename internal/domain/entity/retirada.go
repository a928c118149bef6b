package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estágios do ciclo de descongelamento. Valor derivado de (data_retirada, data de
// avaliação); um override manual vale só até a próxima recomputação automática.
const (
	StageToWithdraw  = "to_withdraw"  // retirada ainda no futuro
	StageThawingDay1 = "thawing_day1" // dia da retirada
	StageThawingDay2 = "thawing_day2" // segundo dia de descongelamento
	StageSellable    = "sellable"     // pronto para venda
	StageExpired     = "expired"      // passou do ciclo ideal
)

// Status da retirada, independente do estágio.
const (
	StatusActive    = "active"
	StatusSold      = "sold"
	StatusDiscarded = "discarded"
)

// ValidStage informa se s é um estágio conhecido.
func ValidStage(s string) bool {
	switch s {
	case StageToWithdraw, StageThawingDay1, StageThawingDay2, StageSellable, StageExpired:
		return true
	}
	return false
}

// ValidStatus informa se s é um status conhecido.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusSold, StatusDiscarded:
		return true
	}
	return false
}

// Retirada representa um lote retirado do freezer, acompanhado da retirada até a
// venda ou o vencimento. QuantidadeVendida nunca excede QuantidadeKg.
type Retirada struct {
	ID                string
	ProdutoID         int
	DataDecisao       time.Time
	DataRetirada      time.Time // autoritativa para o envelhecimento do lote
	QuantidadeKg      decimal.Decimal
	Lote              string // {produto}_{YYYYMMDD}_{sufixo}; gerado se ausente
	DataVendaPrevista time.Time
	Estagio           string
	IdadeDias         int // espelho da computação do relógio de lote; recalculado a cada leitura
	Status            string
	QuantidadeVendida decimal.Decimal
	DataVendaReal     *time.Time
	UsuarioID         string
	Observacoes       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
