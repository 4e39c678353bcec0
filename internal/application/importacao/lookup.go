package importacao

import (
	"context"

	"github.com/cafeplanalto/fiscal-api/internal/domain/classificacao"
	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
	"github.com/cafeplanalto/fiscal-api/internal/domain/repository"
)

// repoLookups adapta os ports de persistência às interfaces de consulta do
// resolver de classificação.
type repoLookups struct {
	aliases   repository.NaturezaOperacaoAliasRepository
	rules     repository.CfopRuleRepository
	naturezas repository.NaturezaOperacaoRepository
}

var (
	_ classificacao.AliasLookup    = repoLookups{}
	_ classificacao.RuleLookup     = repoLookups{}
	_ classificacao.NaturezaLookup = repoLookups{}
)

func (l repoLookups) FindAlias(ctx context.Context, companyID, natOp, cfopCode, direction string, selfIssuedEntrada bool) (*entity.NaturezaOperacaoAlias, error) {
	return l.aliases.Find(ctx, companyID, natOp, cfopCode, direction, selfIssuedEntrada)
}

func (l repoLookups) FindRule(ctx context.Context, companyID, cfopCode, direction string) (*entity.CfopRule, error) {
	return l.rules.Find(ctx, companyID, cfopCode, direction)
}

func (l repoLookups) GetNatureza(ctx context.Context, id string) (*entity.NaturezaOperacao, error) {
	return l.naturezas.GetByID(ctx, id)
}

// NewResolver monta o resolver de classificação sobre os repositórios.
func NewResolver(
	aliases repository.NaturezaOperacaoAliasRepository,
	rules repository.CfopRuleRepository,
	naturezas repository.NaturezaOperacaoRepository,
) *classificacao.Resolver {
	l := repoLookups{aliases: aliases, rules: rules, naturezas: naturezas}
	return classificacao.NewResolver(l, l, l)
}
