package classificacao

import (
	"context"
	"fmt"

	"github.com/cafeplanalto/fiscal-api/internal/domain"
	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
)

// Descriptor é o movimento normalizado produzido pela resolução: o que a
// linha do documento significa para custeio e DRE.
type Descriptor struct {
	NaturezaOperacaoID string
	DREInclude         bool
	DRECategory        string
	DRELabel           string
	DRESign            int
	Direction          string
}

// Query identifica uma linha a classificar. NatOp pode vir cru; o resolver
// normaliza antes das consultas.
type Query struct {
	CompanyID         string
	CfopCode          string
	Direction         string
	NatOp             string
	SelfIssuedEntrada bool
}

// AliasLookup busca a alias pela tupla exata (empresa, natOp normalizado,
// CFOP, direção, auto-emissão). Devolve nil sem erro quando não há alias.
type AliasLookup interface {
	FindAlias(ctx context.Context, companyID, natOp, cfopCode, direction string, selfIssuedEntrada bool) (*entity.NaturezaOperacaoAlias, error)
}

// RuleLookup busca a regra CFOP por (empresa, CFOP, direção). Devolve nil sem
// erro quando não há regra.
type RuleLookup interface {
	FindRule(ctx context.Context, companyID, cfopCode, direction string) (*entity.CfopRule, error)
}

// NaturezaLookup carrega a natureza de operação alvo.
type NaturezaLookup interface {
	GetNatureza(ctx context.Context, id string) (*entity.NaturezaOperacao, error)
}

// Resolver encadeia as estratégias de resolução em ordem fixa: alias exata,
// depois regra CFOP genérica, depois falha ErrUnclassified. Somente leituras;
// seguro para uso concorrente.
type Resolver struct {
	aliases   AliasLookup
	rules     RuleLookup
	naturezas NaturezaLookup
}

// NewResolver constrói o resolver com os ports de consulta.
func NewResolver(aliases AliasLookup, rules RuleLookup, naturezas NaturezaLookup) *Resolver {
	return &Resolver{aliases: aliases, rules: rules, naturezas: naturezas}
}

// Resolve aplica a cadeia de resolução e devolve o descritor do movimento.
// Nunca escolhe categoria padrão: sem casamento, devolve domain.ErrUnclassified.
func (r *Resolver) Resolve(ctx context.Context, q Query) (*Descriptor, error) {
	if q.CompanyID == "" || q.CfopCode == "" {
		return nil, domain.ErrInvalidInput
	}
	if q.Direction != entity.DirectionIN && q.Direction != entity.DirectionOUT {
		return nil, domain.ErrInvalidInput
	}

	natOp := NormalizeNatOp(q.NatOp)

	// 1. Alias exata ganha da regra genérica.
	if natOp != "" {
		alias, err := r.aliases.FindAlias(ctx, q.CompanyID, natOp, q.CfopCode, q.Direction, q.SelfIssuedEntrada)
		if err != nil {
			return nil, fmt.Errorf("buscar alias: %w", err)
		}
		if alias != nil {
			return r.describe(ctx, alias.NaturezaOperacaoID, q.Direction)
		}
	}

	// 2. Regra CFOP por (empresa, código, direção).
	rule, err := r.rules.FindRule(ctx, q.CompanyID, q.CfopCode, q.Direction)
	if err != nil {
		return nil, fmt.Errorf("buscar regra cfop: %w", err)
	}
	if rule != nil {
		return r.describe(ctx, rule.NaturezaOperacaoID, q.Direction)
	}

	// 3. Sem casamento: o movimento fica registrado mas não classificado.
	return nil, domain.ErrUnclassified
}

func (r *Resolver) describe(ctx context.Context, naturezaID, direction string) (*Descriptor, error) {
	nat, err := r.naturezas.GetNatureza(ctx, naturezaID)
	if err != nil {
		return nil, fmt.Errorf("carregar natureza %s: %w", naturezaID, err)
	}
	if nat == nil {
		// Regra/alias apontando para natureza inexistente é falha de configuração.
		return nil, fmt.Errorf("natureza %s: %w", naturezaID, domain.ErrNotFound)
	}
	return &Descriptor{
		NaturezaOperacaoID: nat.ID,
		DREInclude:         nat.DREInclude,
		DRECategory:        nat.DRECategory,
		DRELabel:           nat.DRELabel,
		DRESign:            nat.DRESign,
		Direction:          direction,
	}, nil
}
