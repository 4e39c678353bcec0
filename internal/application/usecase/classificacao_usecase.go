package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cafeplanalto/fiscal-api/internal/application/dto"
	"github.com/cafeplanalto/fiscal-api/internal/domain"
	"github.com/cafeplanalto/fiscal-api/internal/domain/classificacao"
	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
	"github.com/cafeplanalto/fiscal-api/internal/domain/repository"
)

// ClassificacaoUseCase administra a configuração de classificação da empresa:
// naturezas de operação, regras CFOP e aliases de texto livre.
type ClassificacaoUseCase struct {
	naturezas repository.NaturezaOperacaoRepository
	rules     repository.CfopRuleRepository
	aliases   repository.NaturezaOperacaoAliasRepository
}

// NewClassificacaoUseCase constrói o caso de uso.
func NewClassificacaoUseCase(
	naturezas repository.NaturezaOperacaoRepository,
	rules repository.CfopRuleRepository,
	aliases repository.NaturezaOperacaoAliasRepository,
) *ClassificacaoUseCase {
	return &ClassificacaoUseCase{naturezas: naturezas, rules: rules, aliases: aliases}
}

// CreateNatureza cria uma categoria interna de operação. Quando incluída no
// DRE, exige categoria e sinal explícitos (+1 receita, -1 custo/despesa).
func (uc *ClassificacaoUseCase) CreateNatureza(ctx context.Context, companyID string, in dto.CreateNaturezaRequest) (*dto.NaturezaResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.DREInclude {
		if in.DRECategory == "" {
			return nil, domain.ErrInvalidInput
		}
		if in.DRESign != entity.DRESignCredit && in.DRESign != entity.DRESignDebit {
			return nil, domain.ErrInvalidInput
		}
	}
	now := time.Now()
	nat := &entity.NaturezaOperacao{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        in.Name,
		DREInclude:  in.DREInclude,
		DRECategory: in.DRECategory,
		DRELabel:    in.DRELabel,
		DRESign:     in.DRESign,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if nat.DREInclude && nat.DRELabel == "" {
		nat.DRELabel = nat.Name
	}
	if err := uc.naturezas.Create(ctx, nat); err != nil {
		return nil, err
	}
	return toNaturezaResponse(nat), nil
}

// ListNaturezas lista as naturezas da empresa.
func (uc *ClassificacaoUseCase) ListNaturezas(ctx context.Context, companyID string) ([]dto.NaturezaResponse, error) {
	list, err := uc.naturezas.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NaturezaResponse, 0, len(list))
	for _, n := range list {
		out = append(out, *toNaturezaResponse(n))
	}
	return out, nil
}

// CreateRule cria uma regra CFOP -> natureza. Única por (CFOP, direção).
func (uc *ClassificacaoUseCase) CreateRule(ctx context.Context, companyID string, in dto.CreateCfopRuleRequest) (*dto.CfopRuleResponse, error) {
	if in.CfopCode == "" || in.NaturezaOperacaoID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Direction != entity.DirectionIN && in.Direction != entity.DirectionOUT {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.requireNatureza(ctx, companyID, in.NaturezaOperacaoID); err != nil {
		return nil, err
	}
	now := time.Now()
	rule := &entity.CfopRule{
		ID:                 uuid.New().String(),
		CompanyID:          companyID,
		CfopCode:           in.CfopCode,
		Direction:          in.Direction,
		NaturezaOperacaoID: in.NaturezaOperacaoID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.rules.Create(ctx, rule); err != nil {
		return nil, err
	}
	return toRuleResponse(rule), nil
}

// ListRules lista as regras CFOP da empresa.
func (uc *ClassificacaoUseCase) ListRules(ctx context.Context, companyID string) ([]dto.CfopRuleResponse, error) {
	list, err := uc.rules.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CfopRuleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRuleResponse(r))
	}
	return out, nil
}

// DeleteRule remove uma regra CFOP da empresa.
func (uc *ClassificacaoUseCase) DeleteRule(ctx context.Context, companyID, id string) error {
	return uc.rules.Delete(ctx, companyID, id)
}

// CreateAlias cadastra uma alias de natureza. O texto é normalizado antes de
// persistir (parte da identidade da tupla única). Se já existir alias para a
// tupla é falha de integridade: a escrita é rejeitada, nunca sobrescrita.
func (uc *ClassificacaoUseCase) CreateAlias(ctx context.Context, companyID string, in dto.CreateAliasRequest) (*dto.AliasResponse, error) {
	if in.CfopCode == "" || in.NaturezaOperacaoID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Direction != entity.DirectionIN && in.Direction != entity.DirectionOUT {
		return nil, domain.ErrInvalidInput
	}
	natOp := classificacao.NormalizeNatOp(in.NatOp)
	if natOp == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.requireNatureza(ctx, companyID, in.NaturezaOperacaoID); err != nil {
		return nil, err
	}
	existing, err := uc.aliases.Find(ctx, companyID, natOp, in.CfopCode, in.Direction, in.SelfIssuedEntrada)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAmbiguousAlias
	}
	now := time.Now()
	alias := &entity.NaturezaOperacaoAlias{
		ID:                 uuid.New().String(),
		CompanyID:          companyID,
		NatOp:              natOp,
		CfopCode:           in.CfopCode,
		Direction:          in.Direction,
		SelfIssuedEntrada:  in.SelfIssuedEntrada,
		NaturezaOperacaoID: in.NaturezaOperacaoID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.aliases.Create(ctx, alias); err != nil {
		return nil, err
	}
	return toAliasResponse(alias), nil
}

// ListAliases lista as aliases da empresa.
func (uc *ClassificacaoUseCase) ListAliases(ctx context.Context, companyID string) ([]dto.AliasResponse, error) {
	list, err := uc.aliases.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AliasResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAliasResponse(a))
	}
	return out, nil
}

// DeleteAlias remove uma alias da empresa.
func (uc *ClassificacaoUseCase) DeleteAlias(ctx context.Context, companyID, id string) error {
	return uc.aliases.Delete(ctx, companyID, id)
}

func (uc *ClassificacaoUseCase) requireNatureza(ctx context.Context, companyID, id string) error {
	nat, err := uc.naturezas.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if nat == nil || nat.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return nil
}

func toNaturezaResponse(n *entity.NaturezaOperacao) *dto.NaturezaResponse {
	return &dto.NaturezaResponse{
		ID:          n.ID,
		Name:        n.Name,
		DREInclude:  n.DREInclude,
		DRECategory: n.DRECategory,
		DRELabel:    n.DRELabel,
		DRESign:     n.DRESign,
		CreatedAt:   n.CreatedAt,
	}
}

func toRuleResponse(r *entity.CfopRule) *dto.CfopRuleResponse {
	return &dto.CfopRuleResponse{
		ID:                 r.ID,
		CfopCode:           r.CfopCode,
		Direction:          r.Direction,
		NaturezaOperacaoID: r.NaturezaOperacaoID,
		CreatedAt:          r.CreatedAt,
	}
}

func toAliasResponse(a *entity.NaturezaOperacaoAlias) *dto.AliasResponse {
	return &dto.AliasResponse{
		ID:                 a.ID,
		NatOp:              a.NatOp,
		CfopCode:           a.CfopCode,
		Direction:          a.Direction,
		SelfIssuedEntrada:  a.SelfIssuedEntrada,
		NaturezaOperacaoID: a.NaturezaOperacaoID,
		CreatedAt:          a.CreatedAt,
	}
}
