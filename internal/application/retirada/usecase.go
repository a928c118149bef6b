package retirada

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/itamind/descongela-api/internal/application/dto"
	"github.com/itamind/descongela-api/internal/domain"
	"github.com/itamind/descongela-api/internal/domain/entity"
	"github.com/itamind/descongela-api/internal/domain/lote"
	"github.com/itamind/descongela-api/internal/domain/repository"
	"github.com/itamind/descongela-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// UseCase ciclo de vida das retiradas: criação, atualização de estágio,
// registro de venda, consulta e relatório por período.
type UseCase struct {
	repo  repository.RetiradaRepository
	log   *logger.Logger
	agora func() time.Time
}

// NewUseCase constrói o caso de uso.
func NewUseCase(repo repository.RetiradaRepository, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, log: log, agora: time.Now}
}

// Criar valida e persiste uma nova retirada. Lote, data de venda prevista,
// estágio e idade são derivados quando não informados.
func (uc *UseCase) Criar(ctx context.Context, usuarioID string, in dto.CriarRetiradaRequest) (*entity.Retirada, error) {
	if usuarioID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.ProdutoID <= 0 || in.DataRetirada == "" || !in.QuantidadeKg.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	dataRetirada, err := dto.ParseData(in.DataRetirada)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := uc.agora()

	dataDecisao := now
	if in.DataDecisao != "" {
		if dataDecisao, err = dto.ParseData(in.DataDecisao); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	dataVendaPrevista := lote.DataVendaPrevista(dataRetirada)
	if in.DataVendaPrevista != "" {
		if dataVendaPrevista, err = dto.ParseData(in.DataVendaPrevista); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	loteID := in.Lote
	if loteID == "" {
		loteID = lote.GerarLote(in.ProdutoID, dataRetirada)
	}

	r := &entity.Retirada{
		ID:                uuid.NewString(),
		ProdutoID:         in.ProdutoID,
		DataDecisao:       dataDecisao,
		DataRetirada:      dataRetirada,
		QuantidadeKg:      in.QuantidadeKg,
		Lote:              loteID,
		DataVendaPrevista: dataVendaPrevista,
		Estagio:           lote.Estagio(dataRetirada, now),
		IdadeDias:         lote.IdadeDias(dataRetirada, now),
		Status:            entity.StatusActive,
		QuantidadeVendida: decimal.Zero,
		UsuarioID:         usuarioID,
		Observacoes:       in.Observacoes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("lote", r.Lote).
		Int("produto", r.ProdutoID).
		Str("quantidade_kg", r.QuantidadeKg.String()).
		Msg("retirada registrada")
	return r, nil
}

// AtualizarEstagio recalcula a idade e o estágio de um lote. Se estagioManual
// for informado, ele prevalece nesta atualização; a próxima recomputação
// automática volta a valer (o override não é autoritativo).
func (uc *UseCase) AtualizarEstagio(ctx context.Context, usuarioID, id, estagioManual string) (*entity.Retirada, error) {
	if usuarioID == "" {
		return nil, domain.ErrUnauthorized
	}
	if estagioManual != "" && !entity.ValidStage(estagioManual) {
		return nil, domain.ErrInvalidInput
	}
	r, err := uc.repo.GetByID(ctx, id, usuarioID)
	if err != nil {
		return nil, err
	}

	now := uc.agora()
	r.IdadeDias = lote.IdadeDias(r.DataRetirada, now)
	if estagioManual != "" {
		r.Estagio = estagioManual
	} else {
		r.Estagio = lote.Estagio(r.DataRetirada, now)
	}
	r.UpdatedAt = now

	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// RegistrarVenda marca o lote como vendido. A quantidade vendida nunca pode
// exceder a quantidade retirada. Registrar de novo sobre um lote já vendido
// sobrescreve a venda anterior (decisão registrada: idempotente, não aditiva).
func (uc *UseCase) RegistrarVenda(ctx context.Context, usuarioID, id string, in dto.RegistrarVendaRequest) (*entity.Retirada, error) {
	if usuarioID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.QuantidadeVendida.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	r, err := uc.repo.GetByID(ctx, id, usuarioID)
	if err != nil {
		return nil, err
	}
	if in.QuantidadeVendida.GreaterThan(r.QuantidadeKg) {
		return nil, domain.ErrInvalidInput
	}

	now := uc.agora()
	dataVenda := now
	if in.DataVendaReal != "" {
		if dataVenda, err = dto.ParseData(in.DataVendaReal); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	if r.Status == entity.StatusSold {
		uc.log.Warn().
			Str("lote", r.Lote).
			Str("quantidade_anterior", r.QuantidadeVendida.String()).
			Str("quantidade_nova", in.QuantidadeVendida.String()).
			Msg("venda já registrada; sobrescrevendo")
	}

	r.QuantidadeVendida = in.QuantidadeVendida
	r.DataVendaReal = &dataVenda
	r.Status = entity.StatusSold
	r.IdadeDias = lote.IdadeDias(r.DataRetirada, now)
	r.Estagio = lote.Estagio(r.DataRetirada, now)
	r.UpdatedAt = now

	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Listar consulta retiradas com filtros conjuntivos, sempre escopadas ao dono,
// ordenadas por data de retirada descendente. Idade e estágio são recalculados
// na leitura; um override manual antigo não sobrevive a esta recomputação.
func (uc *UseCase) Listar(ctx context.Context, usuarioID string, in dto.ListarRetiradasRequest) ([]*entity.Retirada, int64, error) {
	if usuarioID == "" {
		return nil, 0, domain.ErrUnauthorized
	}
	in.DefaultPage()

	f := repository.RetiradaFiltro{
		Estagio: in.Estagio,
		Status:  in.Status,
		Lote:    in.Lote,
	}
	if in.ProdutoID > 0 {
		f.ProdutoID = &in.ProdutoID
	}
	var err error
	if f.DataInicio, err = parseDataOpcional(in.DataInicio); err != nil {
		return nil, 0, domain.ErrInvalidInput
	}
	if f.DataFim, err = parseDataOpcional(in.DataFim); err != nil {
		return nil, 0, domain.ErrInvalidInput
	}

	registros, total, err := uc.repo.List(ctx, usuarioID, f, in.Limit, in.Offset())
	if err != nil {
		return nil, 0, err
	}

	now := uc.agora()
	for _, r := range registros {
		r.IdadeDias = lote.IdadeDias(r.DataRetirada, now)
		r.Estagio = lote.Estagio(r.DataRetirada, now)
	}
	return registros, total, nil
}

// Obter devolve uma retirada do dono com idade e estágio recalculados.
func (uc *UseCase) Obter(ctx context.Context, usuarioID, id string) (*entity.Retirada, *dto.InfoAtualResponse, error) {
	if usuarioID == "" {
		return nil, nil, domain.ErrUnauthorized
	}
	r, err := uc.repo.GetByID(ctx, id, usuarioID)
	if err != nil {
		return nil, nil, err
	}

	now := uc.agora()
	r.IdadeDias = lote.IdadeDias(r.DataRetirada, now)
	r.Estagio = lote.Estagio(r.DataRetirada, now)

	info := &dto.InfoAtualResponse{
		IdadeAtual:   r.IdadeDias,
		EstagioAtual: r.Estagio,
		NoPrazo:      lote.NoPrazoVenda(r.DataRetirada, now),
		QuantidadeLiquidaEstimada: lote.QuantidadeLiquida(
			r.QuantidadeKg, r.IdadeDias, lote.PercentualPerdaBase,
		),
	}
	return r, info, nil
}

// Relatorio agrega o período por produto, com totais gerais.
func (uc *UseCase) Relatorio(ctx context.Context, usuarioID string, dataInicio, dataFim string, produtoID int) (*dto.RelatorioPeriodoResponse, error) {
	if usuarioID == "" {
		return nil, domain.ErrUnauthorized
	}
	if dataInicio == "" || dataFim == "" {
		return nil, domain.ErrInvalidInput
	}
	inicio, err := dto.ParseData(dataInicio)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	fim, err := dto.ParseData(dataFim)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	var produto *int
	if produtoID > 0 {
		produto = &produtoID
	}
	resumos, totais, err := uc.repo.AgruparPorProduto(ctx, usuarioID, inicio, fim, produto)
	if err != nil {
		return nil, err
	}

	resp := &dto.RelatorioPeriodoResponse{
		DataInicio:              dataInicio,
		DataFim:                 dataFim,
		Detalhes:                make([]dto.ResumoProdutoResponse, 0, len(resumos)),
		TotalGeralRetiradas:     totais.TotalRetiradas,
		QuantidadeGeralRetirada: totais.QuantidadeRetirada,
		QuantidadeGeralVendida:  totais.QuantidadeVendida,
	}
	for _, res := range resumos {
		resp.Detalhes = append(resp.Detalhes, dto.ResumoProdutoResponse{
			ProdutoID:          res.ProdutoID,
			TotalRetiradas:     res.TotalRetiradas,
			QuantidadeRetirada: res.QuantidadeRetirada,
			QuantidadeVendida:  res.QuantidadeVendida,
			QuantidadeEstoque:  res.QuantidadeEstoque,
		})
	}
	return resp, nil
}

func parseDataOpcional(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := dto.ParseData(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
