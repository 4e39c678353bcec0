package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound     = errors.New("recurso não encontrado")
	ErrUserNotFound = errors.New("usuário não encontrado")
	ErrEmailExists  = errors.New("o e-mail já está cadastrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("não autorizado")
	ErrForbidden    = errors.New("acesso negado")
	ErrConflict     = errors.New("conflito com o estado atual")

	// ErrUnclassified: nenhuma alias nem regra CFOP casou com a linha do documento.
	// O movimento fica registrado mas fora do custeio e do DRE até existir regra.
	ErrUnclassified = errors.New("movimento não classificado")

	// ErrOutOfOrder: a data do movimento é anterior à última aplicada no saldo.
	// A atualização individual é rejeitada; a recuperação é o replay desde a abertura.
	ErrOutOfOrder = errors.New("movimento fora de ordem")

	// ErrAmbiguousAlias: mais de uma alias para a mesma tupla única. Falha de
	// integridade de configuração; a escrita é rejeitada, nunca se escolhe uma.
	ErrAmbiguousAlias = errors.New("alias de natureza de operação ambígua")
)
