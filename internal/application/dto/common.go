package dto

import "time"

// LayoutData formato de data aceito nos requests (YYYY-MM-DD).
const LayoutData = "2006-01-02"

// ParseData converte uma data YYYY-MM-DD do request.
func ParseData(s string) (time.Time, error) {
	return time.Parse(LayoutData, s)
}

// PageRequest paginação para listagens (baseada em página).
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// MaxLimit teto de registros por página.
const MaxLimit = 100

// DefaultPage aplica valores padrão e o teto de limite.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Offset devolve o deslocamento correspondente à página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
