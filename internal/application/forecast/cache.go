package forecast

import (
	"context"
	"sync"
	"time"

	"github.com/itamind/descongela-api/internal/domain"
	"github.com/itamind/descongela-api/internal/domain/entity"
	"github.com/itamind/descongela-api/pkg/logger"
)

// Fontes possíveis de um resultado.
const (
	FonteCache = "cache"
	FonteFresh = "fresh"
)

// Resultado de uma consulta ao cache: a previsão e de onde ela veio.
type Resultado struct {
	Produtos []entity.PrevisaoProduto
	Fonte    string
	GeradaEm time.Time
}

// Cache guarda o último resultado da previsão default e serializa as gerações:
// no máximo uma execução do modelo em voo no processo inteiro. Chamadas que
// chegam durante uma geração recebem ErrGeracaoEmAndamento na hora, sem
// bloquear. Um resultado dentro da validade é servido direto; vencido, o
// primeiro chamador gera inline e os demais recebem o sinal de "tente depois"
// (frescor estrito, sem stale-while-revalidate).
//
// Uma instância por processo, construída no arranque e injetada em todos os
// caminhos de request.
type Cache struct {
	runner    Runner
	historico HistoricoProvider
	ttl       time.Duration
	log       *logger.Logger
	agora     func() time.Time

	mu       sync.Mutex
	produtos []entity.PrevisaoProduto // nil = nunca gerado com sucesso
	geradaEm time.Time
	emVoo    bool
}

// NewCache constrói o cache. ttl <= 0 usa uma hora.
func NewCache(runner Runner, historico HistoricoProvider, ttl time.Duration, log *logger.Logger) *Cache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{
		runner:    runner,
		historico: historico,
		ttl:       ttl,
		log:       log,
		agora:     time.Now,
	}
}

// GetOrRefresh devolve a previsão default. Exige identidade autenticada.
//
//	fresco           -> resultado do cache, sem tocar o modelo
//	geração em voo   -> domain.ErrGeracaoEmAndamento (202 para o chamador)
//	vazio ou vencido -> este chamador executa o modelo inline
func (c *Cache) GetOrRefresh(ctx context.Context, usuarioID string) (*Resultado, error) {
	if usuarioID == "" {
		return nil, domain.ErrUnauthorized
	}

	c.mu.Lock()
	now := c.agora()
	if c.produtos != nil && now.Sub(c.geradaEm) < c.ttl {
		res := &Resultado{Produtos: c.produtos, Fonte: FonteCache, GeradaEm: c.geradaEm}
		c.mu.Unlock()
		return res, nil
	}
	if c.emVoo {
		c.mu.Unlock()
		return nil, domain.ErrGeracaoEmAndamento
	}
	c.emVoo = true
	c.mu.Unlock()

	// A porta única foi adquirida: liberá-la em qualquer saída, inclusive pânico,
	// senão nenhuma geração futura acontece.
	defer func() {
		c.mu.Lock()
		c.emVoo = false
		c.mu.Unlock()
	}()

	csvData, err := c.historico.HistoricoPadrao()
	if err != nil {
		c.log.Error().Err(err).Msg("histórico padrão indisponível")
		return nil, domain.ErrPrevisaoIndisponivel
	}

	produtos, err := c.runner.Run(ctx, csvData)
	if err != nil {
		// Falha não derruba o processo: o cache fica vazio/vencido para a
		// próxima tentativa. Detalhe fica no log para o operador.
		c.log.Error().Err(err).Msg("geração de previsão falhou")
		return nil, domain.ErrPrevisaoIndisponivel
	}

	c.mu.Lock()
	c.produtos = produtos
	c.geradaEm = c.agora()
	geradaEm := c.geradaEm
	c.mu.Unlock()

	c.log.Info().Int("produtos", len(produtos)).Msg("previsão default regenerada")
	return &Resultado{Produtos: produtos, Fonte: FonteFresh, GeradaEm: geradaEm}, nil
}

// Snapshot devolve o último resultado bem-sucedido, mesmo vencido, sem nunca
// disparar geração. Usado pelo relatório diário, que prefere dado degradado a
// relatório nenhum.
func (c *Cache) Snapshot() ([]entity.PrevisaoProduto, time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.produtos == nil {
		return nil, time.Time{}, false
	}
	return c.produtos, c.geradaEm, true
}
