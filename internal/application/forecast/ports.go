package forecast

import (
	"context"

	"github.com/itamind/descongela-api/internal/domain/entity"
)

// Runner é o colaborador externo de previsão (modelo Prophet executado como
// processo Python). Recebe o histórico de vendas em CSV e devolve a previsão
// por produto, ou erro se o processo falhar ou a saída for ininteligível.
type Runner interface {
	Run(ctx context.Context, csvData string) ([]entity.PrevisaoProduto, error)
	// Versao identifica o modelo para persistência (ex.: "prophet_v1").
	Versao() string
}

// HistoricoProvider fornece o histórico de vendas padrão (CSV) usado pela
// previsão default.
type HistoricoProvider interface {
	HistoricoPadrao() (string, error)
}
