package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/itamind/descongela-api/internal/domain"
	"github.com/itamind/descongela-api/internal/domain/entity"
	"github.com/itamind/descongela-api/internal/domain/repository"
)

var _ repository.PrevisaoRepository = (*PrevisaoRepo)(nil)

// PrevisaoRepo implementação do porte PrevisaoRepository sobre PostgreSQL.
// A série por produto e os parâmetros do modelo ficam em colunas JSONB.
type PrevisaoRepo struct {
	pool *pgxpool.Pool
}

// NewPrevisaoRepository constrói o adaptador de persistência de previsões.
func NewPrevisaoRepository(pool *pgxpool.Pool) *PrevisaoRepo {
	return &PrevisaoRepo{pool: pool}
}

// Create persiste uma geração de previsão.
func (r *PrevisaoRepo) Create(ctx context.Context, p *entity.Previsao) error {
	produtos, err := json.Marshal(p.Produtos)
	if err != nil {
		return fmt.Errorf("marshal produtos: %w", err)
	}
	params, err := json.Marshal(p.Parametros)
	if err != nil {
		return fmt.Errorf("marshal parametros: %w", err)
	}
	query := `
		INSERT INTO previsoes (id, usuario_id, gerada_em, versao_modelo, parametros, produtos, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.pool.Exec(ctx, query,
		p.ID, p.UsuarioID, p.GeradaEm, p.VersaoModelo, params, produtos, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert previsao: %w", err)
	}
	return nil
}

// GetByID busca uma previsão do usuário; ErrNotFound se não existir ou for de outro dono.
func (r *PrevisaoRepo) GetByID(ctx context.Context, id, usuarioID string) (*entity.Previsao, error) {
	query := `
		SELECT id, usuario_id, gerada_em, versao_modelo, parametros, produtos, created_at
		FROM previsoes WHERE id = $1 AND usuario_id = $2`
	p, err := scanPrevisao(r.pool.QueryRow(ctx, query, id, usuarioID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get previsao: %w", err)
	}
	return p, nil
}

// List lista previsões do usuário, mais recentes primeiro, com total para paginação.
// O filtro por SKU usa o operador de contenção do JSONB.
func (r *PrevisaoRepo) List(ctx context.Context, usuarioID string, f repository.PrevisaoFiltro, limit, offset int) ([]*entity.Previsao, int64, error) {
	where := "WHERE usuario_id = $1"
	args := []any{usuarioID}

	if f.SKU != nil {
		args = append(args, fmt.Sprintf(`[{"sku": %d}]`, *f.SKU))
		where += fmt.Sprintf(" AND produtos @> $%d::jsonb", len(args))
	}
	if f.Inicio != nil {
		args = append(args, *f.Inicio)
		where += fmt.Sprintf(" AND gerada_em >= $%d", len(args))
	}
	if f.Fim != nil {
		args = append(args, f.Fim.AddDate(0, 0, 1))
		where += fmt.Sprintf(" AND gerada_em < $%d", len(args))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM previsoes "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count previsoes: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, usuario_id, gerada_em, versao_modelo, parametros, produtos, created_at
		FROM previsoes %s ORDER BY gerada_em DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list previsoes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Previsao
	for rows.Next() {
		p, err := scanPrevisao(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan previsao: %w", err)
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

// Delete remove uma previsão do usuário.
func (r *PrevisaoRepo) Delete(ctx context.Context, id, usuarioID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM previsoes WHERE id = $1 AND usuario_id = $2`, id, usuarioID)
	if err != nil {
		return fmt.Errorf("delete previsao: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPrevisao(row pgx.Row) (*entity.Previsao, error) {
	var p entity.Previsao
	var params, produtos []byte
	err := row.Scan(&p.ID, &p.UsuarioID, &p.GeradaEm, &p.VersaoModelo, &params, &produtos, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p.Parametros); err != nil {
			return nil, fmt.Errorf("unmarshal parametros: %w", err)
		}
	}
	if len(produtos) > 0 {
		if err := json.Unmarshal(produtos, &p.Produtos); err != nil {
			return nil, fmt.Errorf("unmarshal produtos: %w", err)
		}
	}
	return &p, nil
}
