package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/itamind/descongela-api/internal/domain"
	"github.com/itamind/descongela-api/internal/domain/entity"
	"github.com/itamind/descongela-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.RetiradaRepository = (*RetiradaRepo)(nil)

// RetiradaRepo implementação do porte RetiradaRepository sobre PostgreSQL.
type RetiradaRepo struct {
	pool *pgxpool.Pool
}

// NewRetiradaRepository constrói o adaptador de persistência de retiradas.
func NewRetiradaRepository(pool *pgxpool.Pool) *RetiradaRepo {
	return &RetiradaRepo{pool: pool}
}

const retiradaColunas = `
	id, produto_id, data_decisao, data_retirada, quantidade_kg, lote,
	data_venda_prevista, estagio, idade_dias, status, quantidade_vendida,
	data_venda_real, usuario_id, observacoes, created_at, updated_at`

// Create persiste uma nova retirada.
func (r *RetiradaRepo) Create(ctx context.Context, ret *entity.Retirada) error {
	query := `
		INSERT INTO retiradas (` + retiradaColunas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.pool.Exec(ctx, query,
		ret.ID, ret.ProdutoID, ret.DataDecisao, ret.DataRetirada, ret.QuantidadeKg, ret.Lote,
		ret.DataVendaPrevista, ret.Estagio, ret.IdadeDias, ret.Status, ret.QuantidadeVendida,
		ret.DataVendaReal, ret.UsuarioID, ret.Observacoes, ret.CreatedAt, ret.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert retirada: %w", err)
	}
	return nil
}

// GetByID busca uma retirada do usuário; ErrNotFound se não existir ou for de outro dono.
func (r *RetiradaRepo) GetByID(ctx context.Context, id, usuarioID string) (*entity.Retirada, error) {
	query := `SELECT ` + retiradaColunas + ` FROM retiradas WHERE id = $1 AND usuario_id = $2`
	ret, err := scanRetirada(r.pool.QueryRow(ctx, query, id, usuarioID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get retirada: %w", err)
	}
	return ret, nil
}

// Update grava todos os campos mutáveis de uma retirada numa única instrução
// (atomicidade por registro).
func (r *RetiradaRepo) Update(ctx context.Context, ret *entity.Retirada) error {
	query := `
		UPDATE retiradas
		SET estagio = $1, idade_dias = $2, status = $3, quantidade_vendida = $4,
		    data_venda_real = $5, data_venda_prevista = $6, observacoes = $7, updated_at = $8
		WHERE id = $9 AND usuario_id = $10`
	tag, err := r.pool.Exec(ctx, query,
		ret.Estagio, ret.IdadeDias, ret.Status, ret.QuantidadeVendida,
		ret.DataVendaReal, ret.DataVendaPrevista, ret.Observacoes, ret.UpdatedAt,
		ret.ID, ret.UsuarioID,
	)
	if err != nil {
		return fmt.Errorf("update retirada: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List consulta retiradas do usuário com filtros conjuntivos, ordenadas por
// data de retirada descendente, devolvendo também o total para paginação.
func (r *RetiradaRepo) List(ctx context.Context, usuarioID string, f repository.RetiradaFiltro, limit, offset int) ([]*entity.Retirada, int64, error) {
	where := "WHERE usuario_id = $1"
	args := []any{usuarioID}

	add := func(cond string, val any) {
		args = append(args, val)
		where += fmt.Sprintf(" AND "+cond, len(args))
	}

	if f.ProdutoID != nil {
		add("produto_id = $%d", *f.ProdutoID)
	}
	if f.Estagio != "" {
		add("estagio = $%d", f.Estagio)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.Lote != "" {
		add("lote ILIKE $%d", "%"+f.Lote+"%")
	}
	if f.DataInicio != nil {
		add("data_retirada >= $%d", *f.DataInicio)
	}
	if f.DataFim != nil {
		add("data_retirada < $%d", f.DataFim.AddDate(0, 0, 1))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM retiradas "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count retiradas: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT "+retiradaColunas+" FROM retiradas %s ORDER BY data_retirada DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list retiradas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Retirada
	for rows.Next() {
		ret, err := scanRetirada(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan retirada: %w", err)
		}
		out = append(out, ret)
	}
	return out, total, rows.Err()
}

// SomaBrutaPorDataRetirada soma a quantidade bruta dos lotes ativos de um
// produto retirados exatamente na data informada (dia calendário).
func (r *RetiradaRepo) SomaBrutaPorDataRetirada(ctx context.Context, usuarioID string, produtoID int, dataRetirada time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantidade_kg), 0)
		FROM retiradas
		WHERE usuario_id = $1 AND produto_id = $2 AND status = $3
		  AND data_retirada >= $4 AND data_retirada < $5`
	dia := dataRetirada.Truncate(24 * time.Hour)
	var soma decimal.Decimal
	err := r.pool.QueryRow(ctx, query,
		usuarioID, produtoID, entity.StatusActive, dia, dia.AddDate(0, 0, 1),
	).Scan(&soma)
	if err != nil {
		return decimal.Zero, fmt.Errorf("soma bruta por data: %w", err)
	}
	return soma, nil
}

// AgruparPorProduto agrega o período por produto mais os totais gerais.
// O estoque por produto é retirada - vendida com piso em zero.
func (r *RetiradaRepo) AgruparPorProduto(ctx context.Context, usuarioID string, inicio, fim time.Time, produtoID *int) ([]repository.ResumoProduto, repository.TotaisPeriodo, error) {
	where := "WHERE usuario_id = $1 AND data_retirada >= $2 AND data_retirada < $3"
	args := []any{usuarioID, inicio, fim.AddDate(0, 0, 1)}
	if produtoID != nil {
		args = append(args, *produtoID)
		where += fmt.Sprintf(" AND produto_id = $%d", len(args))
	}

	query := `
		SELECT produto_id,
		       COUNT(*)                                             AS total_retiradas,
		       COALESCE(SUM(quantidade_kg), 0)                      AS quantidade_retirada,
		       COALESCE(SUM(quantidade_vendida), 0)                 AS quantidade_vendida,
		       GREATEST(COALESCE(SUM(quantidade_kg - quantidade_vendida), 0), 0) AS quantidade_em_estoque
		FROM retiradas ` + where + `
		GROUP BY produto_id
		ORDER BY produto_id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, repository.TotaisPeriodo{}, fmt.Errorf("agrupar retiradas: %w", err)
	}
	defer rows.Close()

	var resumos []repository.ResumoProduto
	var totais repository.TotaisPeriodo
	totais.QuantidadeRetirada = decimal.Zero
	totais.QuantidadeVendida = decimal.Zero
	for rows.Next() {
		var res repository.ResumoProduto
		if err := rows.Scan(
			&res.ProdutoID, &res.TotalRetiradas, &res.QuantidadeRetirada,
			&res.QuantidadeVendida, &res.QuantidadeEstoque,
		); err != nil {
			return nil, repository.TotaisPeriodo{}, fmt.Errorf("scan resumo: %w", err)
		}
		resumos = append(resumos, res)
		totais.TotalRetiradas += res.TotalRetiradas
		totais.QuantidadeRetirada = totais.QuantidadeRetirada.Add(res.QuantidadeRetirada)
		totais.QuantidadeVendida = totais.QuantidadeVendida.Add(res.QuantidadeVendida)
	}
	return resumos, totais, rows.Err()
}

// scanRetirada lê uma linha de retiradas (row ou rows).
func scanRetirada(row pgx.Row) (*entity.Retirada, error) {
	var ret entity.Retirada
	err := row.Scan(
		&ret.ID, &ret.ProdutoID, &ret.DataDecisao, &ret.DataRetirada, &ret.QuantidadeKg, &ret.Lote,
		&ret.DataVendaPrevista, &ret.Estagio, &ret.IdadeDias, &ret.Status, &ret.QuantidadeVendida,
		&ret.DataVendaReal, &ret.UsuarioID, &ret.Observacoes, &ret.CreatedAt, &ret.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ret, nil
}
