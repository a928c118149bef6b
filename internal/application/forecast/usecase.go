package forecast

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/itamind/descongela-api/internal/application/dto"
	"github.com/itamind/descongela-api/internal/domain"
	"github.com/itamind/descongela-api/internal/domain/entity"
	"github.com/itamind/descongela-api/internal/domain/repository"
	"github.com/itamind/descongela-api/pkg/logger"
)

// UseCase previsões: default via cache single-flight, custom sob demanda e
// gerenciamento das previsões salvas.
type UseCase struct {
	cache  *Cache
	runner Runner
	repo   repository.PrevisaoRepository
	log    *logger.Logger
	agora  func() time.Time
}

// NewUseCase constrói o caso de uso.
func NewUseCase(cache *Cache, runner Runner, repo repository.PrevisaoRepository, log *logger.Logger) *UseCase {
	return &UseCase{cache: cache, runner: runner, repo: repo, log: log, agora: time.Now}
}

// Default devolve a previsão padrão via cache. Quando a resposta vem de uma
// geração nova, ela é persistida em nome do usuário que a disparou.
func (uc *UseCase) Default(ctx context.Context, usuarioID string) (*Resultado, error) {
	res, err := uc.cache.GetOrRefresh(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if res.Fonte == FonteFresh {
		uc.salvar(ctx, usuarioID, res.Produtos, map[string]any{"origem": "default"})
	}
	return res, nil
}

// Custom executa o modelo com o histórico fornecido pelo chamador. Não passa
// pelo cache: o single-flight protege apenas a previsão default.
func (uc *UseCase) Custom(ctx context.Context, usuarioID, csvData string) (*Resultado, error) {
	if usuarioID == "" {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(csvData) == "" {
		return nil, domain.ErrInvalidInput
	}
	produtos, err := uc.runner.Run(ctx, csvData)
	if err != nil {
		uc.log.Error().Err(err).Msg("previsão custom falhou")
		return nil, domain.ErrPrevisaoIndisponivel
	}
	uc.salvar(ctx, usuarioID, produtos, map[string]any{"origem": "custom"})
	return &Resultado{Produtos: produtos, Fonte: FonteFresh, GeradaEm: uc.agora()}, nil
}

// salvar persiste a geração; falha de persistência não derruba a resposta.
func (uc *UseCase) salvar(ctx context.Context, usuarioID string, produtos []entity.PrevisaoProduto, params map[string]any) {
	p := &entity.Previsao{
		ID:           uuid.NewString(),
		UsuarioID:    usuarioID,
		GeradaEm:     uc.agora(),
		VersaoModelo: uc.runner.Versao(),
		Parametros:   params,
		Produtos:     produtos,
		CreatedAt:    uc.agora(),
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		uc.log.Warn().Err(err).Msg("não foi possível salvar a previsão gerada")
	}
}

// ListarSalvas lista previsões persistidas do usuário com filtros e paginação.
func (uc *UseCase) ListarSalvas(ctx context.Context, usuarioID string, in dto.ListarPrevisoesRequest) ([]*entity.Previsao, int64, error) {
	if usuarioID == "" {
		return nil, 0, domain.ErrUnauthorized
	}
	in.DefaultPage()

	f := repository.PrevisaoFiltro{}
	if in.SKU > 0 {
		f.SKU = &in.SKU
	}
	if in.DataInicio != "" {
		t, err := dto.ParseData(in.DataInicio)
		if err != nil {
			return nil, 0, domain.ErrInvalidInput
		}
		f.Inicio = &t
	}
	if in.DataFim != "" {
		t, err := dto.ParseData(in.DataFim)
		if err != nil {
			return nil, 0, domain.ErrInvalidInput
		}
		f.Fim = &t
	}
	return uc.repo.List(ctx, usuarioID, f, in.Limit, in.Offset())
}

// ObterSalva busca uma previsão persistida do usuário.
func (uc *UseCase) ObterSalva(ctx context.Context, usuarioID, id string) (*entity.Previsao, error) {
	if usuarioID == "" {
		return nil, domain.ErrUnauthorized
	}
	return uc.repo.GetByID(ctx, id, usuarioID)
}

// RemoverSalva remove uma previsão persistida do usuário.
func (uc *UseCase) RemoverSalva(ctx context.Context, usuarioID, id string) error {
	if usuarioID == "" {
		return domain.ErrUnauthorized
	}
	return uc.repo.Delete(ctx, id, usuarioID)
}
