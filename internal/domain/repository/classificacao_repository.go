package repository

import (
	"context"

	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
)

// NaturezaOperacaoRepository define o port das categorias internas de operação.
type NaturezaOperacaoRepository interface {
	Create(ctx context.Context, nat *entity.NaturezaOperacao) error
	GetByID(ctx context.Context, id string) (*entity.NaturezaOperacao, error)
	Update(ctx context.Context, nat *entity.NaturezaOperacao) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.NaturezaOperacao, error)
}

// CfopRuleRepository define o port das regras CFOP -> natureza.
// Unicidade em (companyID, cfopCode, direction); ErrDuplicate na violação.
type CfopRuleRepository interface {
	Create(ctx context.Context, rule *entity.CfopRule) error
	Find(ctx context.Context, companyID, cfopCode, direction string) (*entity.CfopRule, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.CfopRule, error)
	Delete(ctx context.Context, companyID, id string) error
}

// NaturezaOperacaoAliasRepository define o port das aliases de natureza.
// Unicidade na tupla completa; mais de uma linha para a mesma tupla é falha
// de integridade (ErrAmbiguousAlias) e nunca deve ser resolvida por palpite.
type NaturezaOperacaoAliasRepository interface {
	Create(ctx context.Context, alias *entity.NaturezaOperacaoAlias) error
	Find(ctx context.Context, companyID, natOp, cfopCode, direction string, selfIssuedEntrada bool) (*entity.NaturezaOperacaoAlias, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.NaturezaOperacaoAlias, error)
	Delete(ctx context.Context, companyID, id string) error
}
