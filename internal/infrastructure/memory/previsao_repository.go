package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/itamind/descongela-api/internal/domain"
	"github.com/itamind/descongela-api/internal/domain/entity"
	"github.com/itamind/descongela-api/internal/domain/repository"
)

var _ repository.PrevisaoRepository = (*PrevisaoRepository)(nil)

// PrevisaoRepository armazena previsões geradas em memória.
type PrevisaoRepository struct {
	mu        sync.RWMutex
	previsoes map[string]*entity.Previsao
}

// NewPrevisaoRepository constrói o repositório vazio.
func NewPrevisaoRepository() *PrevisaoRepository {
	return &PrevisaoRepository{previsoes: make(map[string]*entity.Previsao)}
}

// Create persiste uma previsão.
func (r *PrevisaoRepository) Create(_ context.Context, p *entity.Previsao) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copia := *p
	r.previsoes[p.ID] = &copia
	return nil
}

// GetByID busca uma previsão do usuário.
func (r *PrevisaoRepository) GetByID(_ context.Context, id, usuarioID string) (*entity.Previsao, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.previsoes[id]
	if !ok || p.UsuarioID != usuarioID {
		return nil, domain.ErrNotFound
	}
	copia := *p
	return &copia, nil
}

// List lista previsões do usuário, mais recentes primeiro.
func (r *PrevisaoRepository) List(_ context.Context, usuarioID string, f repository.PrevisaoFiltro, limit, offset int) ([]*entity.Previsao, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var casam []*entity.Previsao
	for _, p := range r.previsoes {
		if p.UsuarioID != usuarioID {
			continue
		}
		if f.SKU != nil && !contemSKU(p, *f.SKU) {
			continue
		}
		if f.Inicio != nil && p.GeradaEm.Before(*f.Inicio) {
			continue
		}
		if f.Fim != nil && !p.GeradaEm.Before(f.Fim.AddDate(0, 0, 1)) {
			continue
		}
		copia := *p
		casam = append(casam, &copia)
	}
	sort.Slice(casam, func(i, j int) bool { return casam[i].GeradaEm.After(casam[j].GeradaEm) })

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

// Delete remove uma previsão do usuário.
func (r *PrevisaoRepository) Delete(_ context.Context, id, usuarioID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.previsoes[id]
	if !ok || p.UsuarioID != usuarioID {
		return domain.ErrNotFound
	}
	delete(r.previsoes, id)
	return nil
}

func contemSKU(p *entity.Previsao, sku int) bool {
	for _, prod := range p.Produtos {
		if prod.SKU == sku {
			return true
		}
	}
	return false
}
