// Package prophet adapta o modelo de previsão (script Python com Prophet)
// como colaborador externo: o histórico de vendas entra por stdin em CSV e a
// previsão por produto sai em JSON por stdout. Saída de erro e exit code não
// zero viram diagnóstico para o operador.
package prophet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/itamind/descongela-api/internal/application/forecast"
	"github.com/itamind/descongela-api/internal/domain/entity"
	"github.com/itamind/descongela-api/pkg/config"
)

// Verificação em tempo de compilação de que Runner implementa os portes.
var (
	_ forecast.Runner            = (*Runner)(nil)
	_ forecast.HistoricoProvider = (*Runner)(nil)
)

const versaoModelo = "prophet_v1"

// Runner executa o script de previsão como processo filho.
type Runner struct {
	cfg config.ForecastConfig
}

// NewRunner constrói o adaptador.
func NewRunner(cfg config.ForecastConfig) *Runner {
	return &Runner{cfg: cfg}
}

// Versao identifica o modelo para persistência.
func (r *Runner) Versao() string { return versaoModelo }

// HistoricoPadrao lê o CSV de vendas padrão do disco.
func (r *Runner) HistoricoPadrao() (string, error) {
	data, err := os.ReadFile(r.cfg.DefaultCSVPath)
	if err != nil {
		return "", fmt.Errorf("ler histórico padrão: %w", err)
	}
	return string(data), nil
}

// Run executa o modelo e interpreta a saída. É síncrono: roda até completar
// (sucesso ou falha) dentro do timeout configurado; o chamador aguarda.
func (r *Runner) Run(ctx context.Context, csvData string) ([]entity.PrevisaoProduto, error) {
	runCtx := ctx
	if r.cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.cfg.Timeout())
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, r.cfg.PythonBin, r.cfg.ScriptPath)
	cmd.Stdin = strings.NewReader(csvData)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("modelo excedeu o timeout de %s", r.cfg.Timeout())
		}
		return nil, fmt.Errorf("modelo falhou após %s: %w: %s",
			time.Since(start).Round(time.Millisecond), err, resumo(stderr.String()))
	}

	var produtos []entity.PrevisaoProduto
	if err := json.Unmarshal(stdout.Bytes(), &produtos); err != nil {
		return nil, fmt.Errorf("saída do modelo ininteligível: %w: %s", err, resumo(stdout.String()))
	}
	return produtos, nil
}

// resumo corta diagnósticos longos para caber num log.
func resumo(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 500 {
		return s[:500] + "..."
	}
	return s
}
