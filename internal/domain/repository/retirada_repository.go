package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/itamind/descongela-api/internal/domain/entity"
)

// RetiradaFiltro filtros conjuntivos para consulta de retiradas.
// Ponteiro nil / string vazia = filtro ausente.
type RetiradaFiltro struct {
	ProdutoID  *int
	Estagio    string
	Status     string
	Lote       string // substring, case-insensitive
	DataInicio *time.Time
	DataFim    *time.Time
}

// ResumoProduto linha do relatório por período, agrupada por produto.
type ResumoProduto struct {
	ProdutoID          int
	TotalRetiradas     int64
	QuantidadeRetirada decimal.Decimal
	QuantidadeVendida  decimal.Decimal
	QuantidadeEstoque  decimal.Decimal // retirada - vendida, piso em zero
}

// TotaisPeriodo totais gerais do período, todos os produtos.
type TotaisPeriodo struct {
	TotalRetiradas     int64
	QuantidadeRetirada decimal.Decimal
	QuantidadeVendida  decimal.Decimal
}

// RetiradaRepository define o porte de persistência das retiradas.
// Toda leitura e escrita é escopada pelo usuário dono do registro.
type RetiradaRepository interface {
	Create(ctx context.Context, r *entity.Retirada) error
	GetByID(ctx context.Context, id, usuarioID string) (*entity.Retirada, error)
	Update(ctx context.Context, r *entity.Retirada) error
	// List devolve a página pedida ordenada por data de retirada descendente,
	// mais o total de registros que casam com o filtro.
	List(ctx context.Context, usuarioID string, f RetiradaFiltro, limit, offset int) ([]*entity.Retirada, int64, error)
	// SomaBrutaPorDataRetirada soma a quantidade bruta dos lotes ativos de um
	// produto retirados exatamente na data informada.
	SomaBrutaPorDataRetirada(ctx context.Context, usuarioID string, produtoID int, dataRetirada time.Time) (decimal.Decimal, error)
	// AgruparPorProduto agrega o período por produto (somas) e devolve também os totais gerais.
	AgruparPorProduto(ctx context.Context, usuarioID string, inicio, fim time.Time, produtoID *int) ([]ResumoProduto, TotaisPeriodo, error)
}
