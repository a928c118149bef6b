// Package memory traz implementações em memória dos portes de persistência,
// guardadas por RWMutex. Servem aos testes de caso de uso e ao modo de
// desenvolvimento sem banco.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/itamind/descongela-api/internal/domain"
	"github.com/itamind/descongela-api/internal/domain/entity"
	"github.com/itamind/descongela-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.RetiradaRepository = (*RetiradaRepository)(nil)

// RetiradaRepository armazena retiradas em memória.
type RetiradaRepository struct {
	mu        sync.RWMutex
	retiradas map[string]*entity.Retirada
}

// NewRetiradaRepository constrói o repositório vazio.
func NewRetiradaRepository() *RetiradaRepository {
	return &RetiradaRepository{retiradas: make(map[string]*entity.Retirada)}
}

// Create persiste uma retirada.
func (r *RetiradaRepository) Create(_ context.Context, ret *entity.Retirada) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copia := *ret
	r.retiradas[ret.ID] = &copia
	return nil
}

// GetByID busca uma retirada do usuário.
func (r *RetiradaRepository) GetByID(_ context.Context, id, usuarioID string) (*entity.Retirada, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret, ok := r.retiradas[id]
	if !ok || ret.UsuarioID != usuarioID {
		return nil, domain.ErrNotFound
	}
	copia := *ret
	return &copia, nil
}

// Update grava os campos mutáveis de uma retirada existente.
func (r *RetiradaRepository) Update(_ context.Context, ret *entity.Retirada) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	atual, ok := r.retiradas[ret.ID]
	if !ok || atual.UsuarioID != ret.UsuarioID {
		return domain.ErrNotFound
	}
	copia := *ret
	r.retiradas[ret.ID] = &copia
	return nil
}

// List aplica os filtros conjuntivos, ordena por data de retirada descendente
// e pagina.
func (r *RetiradaRepository) List(_ context.Context, usuarioID string, f repository.RetiradaFiltro, limit, offset int) ([]*entity.Retirada, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var casam []*entity.Retirada
	for _, ret := range r.retiradas {
		if ret.UsuarioID != usuarioID || !casaFiltro(ret, f) {
			continue
		}
		copia := *ret
		casam = append(casam, &copia)
	}
	sort.Slice(casam, func(i, j int) bool {
		return casam[i].DataRetirada.After(casam[j].DataRetirada)
	})

	total := int64(len(casam))
	if offset >= len(casam) {
		return nil, total, nil
	}
	fim := offset + limit
	if fim > len(casam) {
		fim = len(casam)
	}
	return casam[offset:fim], total, nil
}

// SomaBrutaPorDataRetirada soma a quantidade bruta dos lotes ativos de um
// produto retirados no dia informado.
func (r *RetiradaRepository) SomaBrutaPorDataRetirada(_ context.Context, usuarioID string, produtoID int, dataRetirada time.Time) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	soma := decimal.Zero
	for _, ret := range r.retiradas {
		if ret.UsuarioID != usuarioID || ret.ProdutoID != produtoID || ret.Status != entity.StatusActive {
			continue
		}
		if !mesmoDia(ret.DataRetirada, dataRetirada) {
			continue
		}
		soma = soma.Add(ret.QuantidadeKg)
	}
	return soma, nil
}

// AgruparPorProduto agrega o período por produto, com totais gerais.
func (r *RetiradaRepository) AgruparPorProduto(_ context.Context, usuarioID string, inicio, fim time.Time, produtoID *int) ([]repository.ResumoProduto, repository.TotaisPeriodo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	porProduto := make(map[int]*repository.ResumoProduto)
	totais := repository.TotaisPeriodo{
		QuantidadeRetirada: decimal.Zero,
		QuantidadeVendida:  decimal.Zero,
	}
	limite := fim.AddDate(0, 0, 1)

	for _, ret := range r.retiradas {
		if ret.UsuarioID != usuarioID {
			continue
		}
		if produtoID != nil && ret.ProdutoID != *produtoID {
			continue
		}
		if ret.DataRetirada.Before(inicio) || !ret.DataRetirada.Before(limite) {
			continue
		}
		res, ok := porProduto[ret.ProdutoID]
		if !ok {
			res = &repository.ResumoProduto{
				ProdutoID:          ret.ProdutoID,
				QuantidadeRetirada: decimal.Zero,
				QuantidadeVendida:  decimal.Zero,
			}
			porProduto[ret.ProdutoID] = res
		}
		res.TotalRetiradas++
		res.QuantidadeRetirada = res.QuantidadeRetirada.Add(ret.QuantidadeKg)
		res.QuantidadeVendida = res.QuantidadeVendida.Add(ret.QuantidadeVendida)

		totais.TotalRetiradas++
		totais.QuantidadeRetirada = totais.QuantidadeRetirada.Add(ret.QuantidadeKg)
		totais.QuantidadeVendida = totais.QuantidadeVendida.Add(ret.QuantidadeVendida)
	}

	resumos := make([]repository.ResumoProduto, 0, len(porProduto))
	for _, res := range porProduto {
		estoque := res.QuantidadeRetirada.Sub(res.QuantidadeVendida)
		if estoque.IsNegative() {
			estoque = decimal.Zero
		}
		res.QuantidadeEstoque = estoque
		resumos = append(resumos, *res)
	}
	sort.Slice(resumos, func(i, j int) bool { return resumos[i].ProdutoID < resumos[j].ProdutoID })
	return resumos, totais, nil
}

func casaFiltro(ret *entity.Retirada, f repository.RetiradaFiltro) bool {
	if f.ProdutoID != nil && ret.ProdutoID != *f.ProdutoID {
		return false
	}
	if f.Estagio != "" && ret.Estagio != f.Estagio {
		return false
	}
	if f.Status != "" && ret.Status != f.Status {
		return false
	}
	if f.Lote != "" && !strings.Contains(strings.ToLower(ret.Lote), strings.ToLower(f.Lote)) {
		return false
	}
	if f.DataInicio != nil && ret.DataRetirada.Before(*f.DataInicio) {
		return false
	}
	if f.DataFim != nil && !ret.DataRetirada.Before(f.DataFim.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

func mesmoDia(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
