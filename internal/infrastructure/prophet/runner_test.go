package prophet_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itamind/descongela-api/internal/infrastructure/prophet"
	"github.com/itamind/descongela-api/pkg/config"
)

// escreveScript grava um shell script que faz as vezes do modelo Python.
func escreveScript(t *testing.T, corpo string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modelo.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+corpo+"\n"), 0o755))
	return path
}

func novoRunner(script string) *prophet.Runner {
	return prophet.NewRunner(config.ForecastConfig{
		PythonBin:      "/bin/sh",
		ScriptPath:     script,
		TimeoutSeconds: 30,
	})
}

func TestRun_InterpretaASaidaDoModelo(t *testing.T) {
	script := escreveScript(t, `cat > /dev/null
echo '[{"sku":7,"rmse":1.5,"mape":0.12,"previsoes":[{"ds":"2024-06-10","yhat":17.3,"yhat_lower":12.0,"yhat_upper":22.1}]}]'`)

	produtos, err := novoRunner(script).Run(context.Background(), "ds,y,sku\n2024-06-01,10,7\n")
	require.NoError(t, err)

	require.Len(t, produtos, 1)
	assert.Equal(t, 7, produtos[0].SKU)
	assert.InDelta(t, 1.5, produtos[0].RMSE, 1e-9)
	require.Len(t, produtos[0].Previsoes, 1)
	ponto := produtos[0].Previsoes[0]
	assert.Equal(t, "2024-06-10", ponto.Data.Format("2006-01-02"), "a data ds vem como dia de calendário")
	assert.InDelta(t, 17.3, ponto.ValorPrevisto, 1e-9)
}

func TestRun_RecebeOHistoricoPorStdin(t *testing.T) {
	// o script ecoa o que leu por stdin dentro de um campo do JSON
	script := escreveScript(t, `linhas=$(wc -l)
echo "[{\"sku\":$linhas,\"rmse\":0,\"mape\":0,\"previsoes\":[]}]"`)

	produtos, err := novoRunner(script).Run(context.Background(), "ds,y,sku\n2024-06-01,10,7\n2024-06-02,12,7\n")
	require.NoError(t, err)
	require.Len(t, produtos, 1)
	assert.Equal(t, 3, produtos[0].SKU, "o CSV completo deve chegar ao processo filho")
}

func TestRun_FalhaDoProcessoViraErroComDiagnostico(t *testing.T) {
	script := escreveScript(t, `cat > /dev/null
echo "Traceback: coluna y ausente" >&2
exit 3`)

	_, err := novoRunner(script).Run(context.Background(), "ds,sku\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coluna y ausente", "o stderr do modelo deve aparecer no erro")
}

func TestRun_SaidaIninteligivel(t *testing.T) {
	script := escreveScript(t, `cat > /dev/null
echo "isto não é json"`)

	_, err := novoRunner(script).Run(context.Background(), "ds,y,sku\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ininteligível")
}

func TestRun_RespeitaOTimeout(t *testing.T) {
	script := escreveScript(t, `cat > /dev/null
sleep 30`)

	r := prophet.NewRunner(config.ForecastConfig{
		PythonBin:      "/bin/sh",
		ScriptPath:     script,
		TimeoutSeconds: 1,
	})
	_, err := r.Run(context.Background(), "ds,y,sku\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestHistoricoPadrao(t *testing.T) {
	csv := filepath.Join(t.TempDir(), "dados_vendas.csv")
	require.NoError(t, os.WriteFile(csv, []byte("ds,y,sku\n2024-06-01,10,7\n"), 0o644))

	r := prophet.NewRunner(config.ForecastConfig{DefaultCSVPath: csv})
	data, err := r.HistoricoPadrao()
	require.NoError(t, err)
	assert.Contains(t, data, "2024-06-01")

	r = prophet.NewRunner(config.ForecastConfig{DefaultCSVPath: filepath.Join(t.TempDir(), "nao-existe.csv")})
	_, err = r.HistoricoPadrao()
	assert.Error(t, err)
}
