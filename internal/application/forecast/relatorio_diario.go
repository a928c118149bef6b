package forecast

import (
	"context"
	"time"

	"github.com/itamind/descongela-api/internal/application/dto"
	"github.com/itamind/descongela-api/internal/domain"
	"github.com/itamind/descongela-api/internal/domain/lote"
	"github.com/itamind/descongela-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// RelatorioDiarioUseCase monta a visão operacional do dia para um produto:
// quanto retirar hoje, quanto está descongelando e quanto chega ao balcão.
// Compõe o snapshot de previsão (via cache), o registro de retiradas e as
// conversões de perda. Previsão ausente para uma data vira campo nulo; o
// relatório parcial sempre sai.
type RelatorioDiarioUseCase struct {
	cache *Cache
	repo  repository.RetiradaRepository
	agora func() time.Time
}

// NewRelatorioDiarioUseCase constrói o caso de uso.
func NewRelatorioDiarioUseCase(cache *Cache, repo repository.RetiradaRepository) *RelatorioDiarioUseCase {
	return &RelatorioDiarioUseCase{cache: cache, repo: repo, agora: time.Now}
}

// Montar calcula o relatório para (produto, data alvo).
//
//   - kg_a_retirar_hoje: previsão de venda para alvo+2 dias (o que se retira
//     hoje fica vendável na data alvo), convertida líquido→bruto com a perda base.
//   - kg_descongelando: previsões de alvo+1 e alvo+2 (lotes retirados ontem e
//     hoje ainda em descongelamento), também convertidas para bruto.
//   - kg_disponivel_bruto: soma dos lotes ativos retirados em alvo−2 (chegam ao
//     estágio vendável na data alvo), antes da perda.
//   - kg_disponivel_liquido: o bruto acima descontada a perda da idade real.
func (uc *RelatorioDiarioUseCase) Montar(ctx context.Context, usuarioID string, produtoID int, dataAlvo time.Time) (*dto.RelatorioDiarioResponse, error) {
	if usuarioID == "" {
		return nil, domain.ErrUnauthorized
	}
	if produtoID <= 0 {
		return nil, domain.ErrInvalidInput
	}

	resp := &dto.RelatorioDiarioResponse{
		ProdutoID: produtoID,
		DataAlvo:  dataAlvo.Format(dto.LayoutData),
	}

	previstos := uc.previsoesPorData(produtoID)

	// retirada de hoje para vender na data alvo
	if liquida, ok := previstos[chaveData(dataAlvo.AddDate(0, 0, 2))]; ok {
		if bruta, err := lote.QuantidadeBruta(liquida, lote.PercentualPerdaBase); err == nil {
			resp.KgARetirarHoje = &bruta
		}
	}

	// lotes em descongelamento: retirados ontem (vendem alvo+1) e hoje (vendem alvo+2)
	descongelando := decimal.Zero
	temDescongelando := false
	for _, delta := range []int{1, 2} {
		liquida, ok := previstos[chaveData(dataAlvo.AddDate(0, 0, delta))]
		if !ok {
			continue
		}
		bruta, err := lote.QuantidadeBruta(liquida, lote.PercentualPerdaBase)
		if err != nil {
			continue
		}
		descongelando = descongelando.Add(bruta)
		temDescongelando = true
	}
	if temDescongelando {
		resp.KgDescongelando = &descongelando
	}

	// lotes reais que completam o ciclo na data alvo (retirados há dois dias)
	bruto, err := uc.repo.SomaBrutaPorDataRetirada(ctx, usuarioID, produtoID, dataAlvo.AddDate(0, 0, -lote.DiasCicloVenda))
	if err != nil {
		return nil, err
	}
	resp.KgDisponivelBruto = bruto
	resp.KgDisponivelLiquido = lote.QuantidadeLiquida(bruto, lote.DiasCicloVenda, lote.PercentualPerdaBase)

	return resp, nil
}

// previsoesPorData indexa o snapshot do produto por dia (quantidade líquida prevista).
func (uc *RelatorioDiarioUseCase) previsoesPorData(produtoID int) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	produtos, _, ok := uc.cache.Snapshot()
	if !ok {
		return out
	}
	for _, p := range produtos {
		if p.SKU != produtoID {
			continue
		}
		for _, ponto := range p.Previsoes {
			out[chaveData(ponto.Data.Time)] = decimal.NewFromFloat(ponto.ValorPrevisto)
		}
	}
	return out
}

func chaveData(t time.Time) string {
	return t.Format(dto.LayoutData)
}
