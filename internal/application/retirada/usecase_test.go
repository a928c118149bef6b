package retirada

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itamind/descongela-api/internal/application/dto"
	"github.com/itamind/descongela-api/internal/domain"
	"github.com/itamind/descongela-api/internal/domain/entity"
	"github.com/itamind/descongela-api/internal/infrastructure/memory"
	"github.com/itamind/descongela-api/pkg/logger"
)

const usuarioTeste = "00000000-0000-0000-0000-000000000001"

func novoUseCaseTeste(t *testing.T, agora time.Time) (*UseCase, *memory.RetiradaRepository) {
	t.Helper()
	repo := memory.NewRetiradaRepository()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := NewUseCase(repo, log)
	uc.agora = func() time.Time { return agora }
	return uc, repo
}

func kg(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ──────────────────────────────────────────────────────────────────────────────
// Criar
// ──────────────────────────────────────────────────────────────────────────────

func TestCriar_DerivaCamposDoCiclo(t *testing.T) {
	hoje := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	uc, _ := novoUseCaseTeste(t, hoje)

	r, err := uc.Criar(context.Background(), usuarioTeste, dto.CriarRetiradaRequest{
		ProdutoID:    7,
		DataRetirada: "2024-06-01",
		QuantidadeKg: kg("10"),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StageThawingDay1, r.Estagio, "retirada de hoje começa no primeiro dia de descongelamento")
	assert.Equal(t, 0, r.IdadeDias)
	assert.Equal(t, entity.StatusActive, r.Status)
	assert.Equal(t, "2024-06-03", r.DataVendaPrevista.Format(dto.LayoutData), "venda prevista dois dias depois")
	assert.NotEmpty(t, r.Lote, "lote deve ser gerado quando não informado")
	assert.True(t, r.QuantidadeVendida.IsZero())
}

func TestCriar_RespeitaLoteEDataInformados(t *testing.T) {
	hoje := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	uc, _ := novoUseCaseTeste(t, hoje)

	r, err := uc.Criar(context.Background(), usuarioTeste, dto.CriarRetiradaRequest{
		ProdutoID:         7,
		DataRetirada:      "2024-06-01",
		QuantidadeKg:      kg("10"),
		Lote:              "7_20240601_abcd",
		DataVendaPrevista: "2024-06-04",
	})
	require.NoError(t, err)
	assert.Equal(t, "7_20240601_abcd", r.Lote)
	assert.Equal(t, "2024-06-04", r.DataVendaPrevista.Format(dto.LayoutData))
}

func TestCriar_ValidaEntrada(t *testing.T) {
	hoje := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	uc, _ := novoUseCaseTeste(t, hoje)
	ctx := context.Background()

	_, err := uc.Criar(ctx, "", dto.CriarRetiradaRequest{ProdutoID: 7, DataRetirada: "2024-06-01", QuantidadeKg: kg("10")})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "sem identidade não há retirada")

	_, err = uc.Criar(ctx, usuarioTeste, dto.CriarRetiradaRequest{DataRetirada: "2024-06-01", QuantidadeKg: kg("10")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "produto é obrigatório")

	_, err = uc.Criar(ctx, usuarioTeste, dto.CriarRetiradaRequest{ProdutoID: 7, QuantidadeKg: kg("10")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "data de retirada é obrigatória")

	_, err = uc.Criar(ctx, usuarioTeste, dto.CriarRetiradaRequest{ProdutoID: 7, DataRetirada: "2024-06-01", QuantidadeKg: kg("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantidade deve ser positiva")

	_, err = uc.Criar(ctx, usuarioTeste, dto.CriarRetiradaRequest{ProdutoID: 7, DataRetirada: "01/06/2024", QuantidadeKg: kg("10")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "data fora do formato YYYY-MM-DD")
}

// ──────────────────────────────────────────────────────────────────────────────
// AtualizarEstagio
// ──────────────────────────────────────────────────────────────────────────────

func TestAtualizarEstagio_RecalculaAutomaticamente(t *testing.T) {
	hoje := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	uc, _ := novoUseCaseTeste(t, hoje)
	ctx := context.Background()

	r, err := uc.Criar(ctx, usuarioTeste, dto.CriarRetiradaRequest{
		ProdutoID: 7, DataRetirada: "2024-06-01", QuantidadeKg: kg("10"),
	})
	require.NoError(t, err)

	// dois dias depois o lote vira vendável
	uc.agora = func() time.Time { return hoje.AddDate(0, 0, 2) }
	atualizado, err := uc.AtualizarEstagio(ctx, usuarioTeste, r.ID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.StageSellable, atualizado.Estagio)
	assert.Equal(t, 2, atualizado.IdadeDias)
}

func TestAtualizarEstagio_OverrideManualNaoSobreviveARecomputacao(t *testing.T) {
	hoje := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	uc, _ := novoUseCaseTeste(t, hoje)
	ctx := context.Background()

	r, err := uc.Criar(ctx, usuarioTeste, dto.CriarRetiradaRequest{
		ProdutoID: 7, DataRetirada: "2024-06-01", QuantidadeKg: kg("10"),
	})
	require.NoError(t, err)

	forcado, err := uc.AtualizarEstagio(ctx, usuarioTeste, r.ID, entity.StageExpired)
	require.NoError(t, err)
	assert.Equal(t, entity.StageExpired, forcado.Estagio, "o override vale nesta atualização")

	// a leitura recalcula a partir das datas e o override cai
	registros, _, err := uc.Listar(ctx, usuarioTeste, dto.ListarRetiradasRequest{})
	require.NoError(t, err)
	require.Len(t, registros, 1)
	assert.Equal(t, entity.StageThawingDay1, registros[0].Estagio,
		"um estágio forçado não é autoritativo frente ao relógio")
}

func TestAtualizarEstagio_RejeitaEstagioDesconhecido(t *testing.T) {
	hoje := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	uc, _ := novoUseCaseTeste(t, hoje)

	_, err := uc.AtualizarEstagio(context.Background(), usuarioTeste, "qualquer", "congelado_demais")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// RegistrarVenda
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarVenda_MarcaComoVendido(t *testing.T) {
	hoje := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	uc, _ := novoUseCaseTeste(t, hoje)
	ctx := context.Background()

	r, err := uc.Criar(ctx, usuarioTeste, dto.CriarRetiradaRequest{
		ProdutoID: 7, DataRetirada: "2024-06-01", QuantidadeKg: kg("10"),
	})
	require.NoError(t, err)

	vendido, err := uc.RegistrarVenda(ctx, usuarioTeste, r.ID, dto.RegistrarVendaRequest{
		QuantidadeVendida: kg("8.5"),
		DataVendaReal:     "2024-06-03",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusSold, vendido.Status)
	assert.True(t, kg("8.5").Equal(vendido.QuantidadeVendida))
	require.NotNil(t, vendido.DataVendaReal)
	assert.Equal(t, "2024-06-03", vendido.DataVendaReal.Format(dto.LayoutData))
}

func TestRegistrarVenda_NaoPodeExcederORetirado(t *testing.T) {
	hoje := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	uc, _ := novoUseCaseTeste(t, hoje)
	ctx := context.Background()

	r, err := uc.Criar(ctx, usuarioTeste, dto.CriarRetiradaRequest{
		ProdutoID: 7, DataRetirada: "2024-06-01", QuantidadeKg: kg("10"),
	})
	require.NoError(t, err)

	_, err = uc.RegistrarVenda(ctx, usuarioTeste, r.ID, dto.RegistrarVendaRequest{
		QuantidadeVendida: kg("12"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "venda de 12kg sobre lote de 10kg deve ser recusada")
}

func TestRegistrarVenda_RepetidaSobrescreve(t *testing.T) {
	hoje := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	uc, _ := novoUseCaseTeste(t, hoje)
	ctx := context.Background()

	r, err := uc.Criar(ctx, usuarioTeste, dto.CriarRetiradaRequest{
		ProdutoID: 7, DataRetirada: "2024-06-01", QuantidadeKg: kg("10"),
	})
	require.NoError(t, err)

	_, err = uc.RegistrarVenda(ctx, usuarioTeste, r.ID, dto.RegistrarVendaRequest{QuantidadeVendida: kg("5")})
	require.NoError(t, err)

	vendido, err := uc.RegistrarVenda(ctx, usuarioTeste, r.ID, dto.RegistrarVendaRequest{QuantidadeVendida: kg("7")})
	require.NoError(t, err)
	assert.True(t, kg("7").Equal(vendido.QuantidadeVendida),
		"venda repetida substitui a anterior, não acumula")
}

func TestRegistrarVenda_EscopadaAoDono(t *testing.T) {
	hoje := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	uc, _ := novoUseCaseTeste(t, hoje)
	ctx := context.Background()

	r, err := uc.Criar(ctx, usuarioTeste, dto.CriarRetiradaRequest{
		ProdutoID: 7, DataRetirada: "2024-06-01", QuantidadeKg: kg("10"),
	})
	require.NoError(t, err)

	_, err = uc.RegistrarVenda(ctx, "outro-usuario", r.ID, dto.RegistrarVendaRequest{QuantidadeVendida: kg("5")})
	assert.ErrorIs(t, err, domain.ErrNotFound, "retirada de outro usuário não deve ser visível")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listar e Obter
// ──────────────────────────────────────────────────────────────────────────────

func TestListar_FiltrosConjuntivos(t *testing.T) {
	hoje := time.Date(2024, time.June, 5, 10, 0, 0, 0, time.UTC)
	uc, _ := novoUseCaseTeste(t, hoje)
	ctx := context.Background()

	for _, c := range []struct {
		produto int
		data    string
	}{
		{7, "2024-06-01"},
		{7, "2024-06-05"},
		{9, "2024-06-05"},
	} {
		_, err := uc.Criar(ctx, usuarioTeste, dto.CriarRetiradaRequest{
			ProdutoID: c.produto, DataRetirada: c.data, QuantidadeKg: kg("10"),
		})
		require.NoError(t, err)
	}

	registros, total, err := uc.Listar(ctx, usuarioTeste, dto.ListarRetiradasRequest{ProdutoID: 7})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, registros, 2)

	// produto e estágio combinados: só a retirada de hoje do produto 7 está no dia 1
	registros, total, err = uc.Listar(ctx, usuarioTeste, dto.ListarRetiradasRequest{
		ProdutoID: 7, Estagio: entity.StageThawingDay1,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, registros, 1)
	assert.Equal(t, "2024-06-05", registros[0].DataRetirada.Format(dto.LayoutData))
}

func TestListar_RecalculaEstagioNaLeitura(t *testing.T) {
	hoje := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	uc, _ := novoUseCaseTeste(t, hoje)
	ctx := context.Background()

	_, err := uc.Criar(ctx, usuarioTeste, dto.CriarRetiradaRequest{
		ProdutoID: 7, DataRetirada: "2024-06-01", QuantidadeKg: kg("10"),
	})
	require.NoError(t, err)

	uc.agora = func() time.Time { return hoje.AddDate(0, 0, 4) }
	registros, _, err := uc.Listar(ctx, usuarioTeste, dto.ListarRetiradasRequest{})
	require.NoError(t, err)
	require.Len(t, registros, 1)
	assert.Equal(t, entity.StageExpired, registros[0].Estagio,
		"estágio gravado na criação não vale mais: a leitura olha o relógio")
	assert.Equal(t, 4, registros[0].IdadeDias)
}

func TestObter_InfoAtual(t *testing.T) {
	hoje := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	uc, _ := novoUseCaseTeste(t, hoje)
	ctx := context.Background()

	r, err := uc.Criar(ctx, usuarioTeste, dto.CriarRetiradaRequest{
		ProdutoID: 7, DataRetirada: "2024-06-01", QuantidadeKg: kg("100"),
	})
	require.NoError(t, err)

	uc.agora = func() time.Time { return hoje.AddDate(0, 0, 2) }
	_, info, err := uc.Obter(ctx, usuarioTeste, r.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.StageSellable, info.EstagioAtual)
	assert.Equal(t, 2, info.IdadeAtual)
	assert.True(t, info.NoPrazo)
	assert.True(t, kg("85").Equal(info.QuantidadeLiquidaEstimada),
		"100kg no balcão rendem 85kg líquidos com a perda base")
}

// ──────────────────────────────────────────────────────────────────────────────
// Relatório por período
// ──────────────────────────────────────────────────────────────────────────────

func TestRelatorio_AgregaPorProduto(t *testing.T) {
	hoje := time.Date(2024, time.June, 10, 10, 0, 0, 0, time.UTC)
	uc, _ := novoUseCaseTeste(t, hoje)
	ctx := context.Background()

	r1, err := uc.Criar(ctx, usuarioTeste, dto.CriarRetiradaRequest{
		ProdutoID: 7, DataRetirada: "2024-06-01", QuantidadeKg: kg("10"),
	})
	require.NoError(t, err)
	_, err = uc.Criar(ctx, usuarioTeste, dto.CriarRetiradaRequest{
		ProdutoID: 7, DataRetirada: "2024-06-02", QuantidadeKg: kg("20"),
	})
	require.NoError(t, err)
	_, err = uc.Criar(ctx, usuarioTeste, dto.CriarRetiradaRequest{
		ProdutoID: 9, DataRetirada: "2024-06-03", QuantidadeKg: kg("5"),
	})
	require.NoError(t, err)
	// fora do período, não deve aparecer
	_, err = uc.Criar(ctx, usuarioTeste, dto.CriarRetiradaRequest{
		ProdutoID: 7, DataRetirada: "2024-07-01", QuantidadeKg: kg("99"),
	})
	require.NoError(t, err)

	_, err = uc.RegistrarVenda(ctx, usuarioTeste, r1.ID, dto.RegistrarVendaRequest{QuantidadeVendida: kg("8")})
	require.NoError(t, err)

	rel, err := uc.Relatorio(ctx, usuarioTeste, "2024-06-01", "2024-06-30", 0)
	require.NoError(t, err)

	require.Len(t, rel.Detalhes, 2)
	assert.EqualValues(t, 3, rel.TotalGeralRetiradas)
	assert.True(t, kg("35").Equal(rel.QuantidadeGeralRetirada))
	assert.True(t, kg("8").Equal(rel.QuantidadeGeralVendida))

	p7 := rel.Detalhes[0]
	assert.Equal(t, 7, p7.ProdutoID)
	assert.EqualValues(t, 2, p7.TotalRetiradas)
	assert.True(t, kg("30").Equal(p7.QuantidadeRetirada))
	assert.True(t, kg("22").Equal(p7.QuantidadeEstoque), "estoque é o retirado menos o vendido")
}

func TestRelatorio_ExigeAsDuasDatas(t *testing.T) {
	hoje := time.Date(2024, time.June, 10, 10, 0, 0, 0, time.UTC)
	uc, _ := novoUseCaseTeste(t, hoje)

	_, err := uc.Relatorio(context.Background(), usuarioTeste, "2024-06-01", "", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Relatorio(context.Background(), usuarioTeste, "", "2024-06-30", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
