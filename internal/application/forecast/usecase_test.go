package forecast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itamind/descongela-api/internal/application/dto"
	"github.com/itamind/descongela-api/internal/domain"
	"github.com/itamind/descongela-api/internal/domain/repository"
	"github.com/itamind/descongela-api/internal/infrastructure/memory"
	"github.com/itamind/descongela-api/pkg/logger"
)

func novoUseCaseTeste(t *testing.T, runner *runnerFake) (*UseCase, *memory.PrevisaoRepository) {
	t.Helper()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	repo := memory.NewPrevisaoRepository()
	cache := NewCache(runner, &historicoFake{}, time.Hour, log)
	return NewUseCase(cache, runner, repo, log), repo
}

func TestDefault_PersisteApenasGeracoesNovas(t *testing.T) {
	runner := &runnerFake{produtos: produtosFake()}
	uc, repo := novoUseCaseTeste(t, runner)
	ctx := context.Background()

	res, err := uc.Default(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, FonteFresh, res.Fonte)

	salvas, total, err := repo.List(ctx, "user-1", repository.PrevisaoFiltro{}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, salvas, 1)
	assert.Equal(t, "fake_v1", salvas[0].VersaoModelo)
	assert.Equal(t, "default", salvas[0].Parametros["origem"])

	// hit de cache não gera registro novo
	res, err = uc.Default(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, FonteCache, res.Fonte)

	_, total, err = repo.List(ctx, "user-1", repository.PrevisaoFiltro{}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total, "servir do cache não pode persistir de novo")
}

func TestCustom_NaoPassaPeloCache(t *testing.T) {
	runner := &runnerFake{produtos: produtosFake()}
	uc, repo := novoUseCaseTeste(t, runner)
	ctx := context.Background()

	res, err := uc.Custom(ctx, "user-1", "ds,y,sku\n2024-06-01,10,7\n")
	require.NoError(t, err)
	assert.Equal(t, FonteFresh, res.Fonte)

	res, err = uc.Custom(ctx, "user-1", "ds,y,sku\n2024-06-02,12,7\n")
	require.NoError(t, err)
	assert.Equal(t, FonteFresh, res.Fonte, "cada chamada custom roda o modelo de novo")
	assert.EqualValues(t, 2, runner.execucoes.Load())

	_, total, err := repo.List(ctx, "user-1", repository.PrevisaoFiltro{}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	salvas, _, err := repo.List(ctx, "user-1", repository.PrevisaoFiltro{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, "custom", salvas[0].Parametros["origem"])
}

func TestCustom_ValidaEntrada(t *testing.T) {
	uc, _ := novoUseCaseTeste(t, &runnerFake{produtos: produtosFake()})
	ctx := context.Background()

	_, err := uc.Custom(ctx, "", "ds,y,sku\n")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Custom(ctx, "user-1", "   \n  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "CSV em branco não roda o modelo")
}

func TestSalvas_CicloCompleto(t *testing.T) {
	runner := &runnerFake{produtos: produtosFake()}
	uc, _ := novoUseCaseTeste(t, runner)
	ctx := context.Background()

	_, err := uc.Custom(ctx, "user-1", "ds,y,sku\n2024-06-01,10,7\n")
	require.NoError(t, err)

	salvas, total, err := uc.ListarSalvas(ctx, "user-1", dto.ListarPrevisoesRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	obtida, err := uc.ObterSalva(ctx, "user-1", salvas[0].ID)
	require.NoError(t, err)
	assert.Equal(t, salvas[0].ID, obtida.ID)

	// previsões salvas são do dono
	_, err = uc.ObterSalva(ctx, "outro-usuario", salvas[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.RemoverSalva(ctx, "user-1", salvas[0].ID))
	_, total, err = uc.ListarSalvas(ctx, "user-1", dto.ListarPrevisoesRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}
