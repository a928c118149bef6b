package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o email já está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrInvalidCredentials = errors.New("credenciais inválidas")

	// ErrPrevisaoIndisponivel: o colaborador externo de previsão falhou ou
	// devolveu saída que não pôde ser interpretada.
	ErrPrevisaoIndisponivel = errors.New("serviço de previsão indisponível")

	// ErrGeracaoEmAndamento: já existe uma geração de previsão em voo.
	// Não é uma falha: o chamador deve tentar de novo mais tarde.
	ErrGeracaoEmAndamento = errors.New("geração de previsão em andamento")
)
