package entity

import (
	"encoding/json"
	"time"
)

// Dia é uma data de calendário serializada como YYYY-MM-DD, o formato que o
// modelo de previsão emite e que a API expõe.
type Dia struct {
	time.Time
}

// MarshalJSON serializa como "YYYY-MM-DD".
func (d Dia) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format("2006-01-02"))
}

// UnmarshalJSON aceita "YYYY-MM-DD".
func (d *Dia) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// PontoPrevisao é a previsão de venda de um dia futuro com intervalo de confiança.
// Os valores chegam do modelo como números JSON; ficam em float64.
type PontoPrevisao struct {
	Data          Dia     `json:"ds"`
	ValorPrevisto float64 `json:"yhat"`
	LimiteInf     float64 `json:"yhat_lower"`
	LimiteSup     float64 `json:"yhat_upper"`
}

// PrevisaoProduto é o resultado do modelo para um SKU: métricas de erro e a
// série de pontos previstos.
type PrevisaoProduto struct {
	SKU       int             `json:"sku"`
	RMSE      float64         `json:"rmse"`
	MAPE      float64         `json:"mape"`
	Previsoes []PontoPrevisao `json:"previsoes"`
}

// Previsao é uma geração persistida (uma execução bem-sucedida do modelo),
// pertencente ao usuário que a disparou.
type Previsao struct {
	ID           string
	UsuarioID    string
	GeradaEm     time.Time
	VersaoModelo string
	Parametros   map[string]any
	Produtos     []PrevisaoProduto
	CreatedAt    time.Time
}
