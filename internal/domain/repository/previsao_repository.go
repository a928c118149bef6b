package repository

import (
	"context"
	"time"

	"github.com/itamind/descongela-api/internal/domain/entity"
)

// PrevisaoFiltro filtros para listar previsões salvas.
type PrevisaoFiltro struct {
	SKU    *int
	Inicio *time.Time
	Fim    *time.Time
}

// PrevisaoRepository define o porte de persistência das previsões geradas.
type PrevisaoRepository interface {
	Create(ctx context.Context, p *entity.Previsao) error
	GetByID(ctx context.Context, id, usuarioID string) (*entity.Previsao, error)
	List(ctx context.Context, usuarioID string, f PrevisaoFiltro, limit, offset int) ([]*entity.Previsao, int64, error)
	Delete(ctx context.Context, id, usuarioID string) error
}
