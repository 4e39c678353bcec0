package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafeplanalto/fiscal-api/internal/application/dto"
	"github.com/cafeplanalto/fiscal-api/internal/domain"
	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
)

// Fakes em memória para a configuração de classificação.

type fakeNaturezaRepo struct {
	naturezas map[string]*entity.NaturezaOperacao
}

func (f *fakeNaturezaRepo) Create(_ context.Context, nat *entity.NaturezaOperacao) error {
	f.naturezas[nat.ID] = nat
	return nil
}
func (f *fakeNaturezaRepo) GetByID(_ context.Context, id string) (*entity.NaturezaOperacao, error) {
	return f.naturezas[id], nil
}
func (f *fakeNaturezaRepo) Update(_ context.Context, _ *entity.NaturezaOperacao) error { return nil }
func (f *fakeNaturezaRepo) ListByCompany(_ context.Context, _ string) ([]*entity.NaturezaOperacao, error) {
	return nil, nil
}

type fakeRuleRepo struct {
	rules map[string]*entity.CfopRule
}

func (f *fakeRuleRepo) Create(_ context.Context, rule *entity.CfopRule) error {
	key := rule.CfopCode + "|" + rule.Direction
	if _, ok := f.rules[key]; ok {
		return domain.ErrDuplicate
	}
	f.rules[key] = rule
	return nil
}
func (f *fakeRuleRepo) Find(_ context.Context, _, cfopCode, direction string) (*entity.CfopRule, error) {
	return f.rules[cfopCode+"|"+direction], nil
}
func (f *fakeRuleRepo) ListByCompany(_ context.Context, _ string) ([]*entity.CfopRule, error) {
	return nil, nil
}
func (f *fakeRuleRepo) Delete(_ context.Context, _, _ string) error { return nil }

type fakeAliasRepo struct {
	aliases map[string]*entity.NaturezaOperacaoAlias
}

func aliasKey(natOp, cfopCode, direction string, self bool) string {
	k := natOp + "|" + cfopCode + "|" + direction
	if self {
		k += "|self"
	}
	return k
}

func (f *fakeAliasRepo) Create(_ context.Context, alias *entity.NaturezaOperacaoAlias) error {
	key := aliasKey(alias.NatOp, alias.CfopCode, alias.Direction, alias.SelfIssuedEntrada)
	if _, ok := f.aliases[key]; ok {
		return domain.ErrAmbiguousAlias
	}
	f.aliases[key] = alias
	return nil
}
func (f *fakeAliasRepo) Find(_ context.Context, _, natOp, cfopCode, direction string, selfIssuedEntrada bool) (*entity.NaturezaOperacaoAlias, error) {
	return f.aliases[aliasKey(natOp, cfopCode, direction, selfIssuedEntrada)], nil
}
func (f *fakeAliasRepo) ListByCompany(_ context.Context, _ string) ([]*entity.NaturezaOperacaoAlias, error) {
	return nil, nil
}
func (f *fakeAliasRepo) Delete(_ context.Context, _, _ string) error { return nil }

const classifCompanyID = "co-1"

func buildClassificacaoUseCase() *ClassificacaoUseCase {
	naturezas := &fakeNaturezaRepo{naturezas: map[string]*entity.NaturezaOperacao{
		"nat-compra": {ID: "nat-compra", CompanyID: classifCompanyID, Name: "Compra de café",
			DREInclude: true, DRECategory: "custo_materia_prima", DRESign: entity.DRESignDebit},
	}}
	rules := &fakeRuleRepo{rules: map[string]*entity.CfopRule{}}
	aliases := &fakeAliasRepo{aliases: map[string]*entity.NaturezaOperacaoAlias{}}
	return NewClassificacaoUseCase(naturezas, rules, aliases)
}

func aliasRequest(natOp string) dto.CreateAliasRequest {
	return dto.CreateAliasRequest{
		NatOp:              natOp,
		CfopCode:           "1102",
		Direction:          entity.DirectionIN,
		NaturezaOperacaoID: "nat-compra",
	}
}

func TestCreateAlias_NormalizaTextoAntesDePersistir(t *testing.T) {
	uc := buildClassificacaoUseCase()

	out, err := uc.CreateAlias(context.Background(), classifCompanyID,
		aliasRequest("  COMPRA   para Industrialização "))
	require.NoError(t, err)
	assert.Equal(t, "compra para industrializacao", out.NatOp,
		"o texto livre é normalizado e vira parte da identidade da tupla")
}

func TestCreateAlias_TuplaRepetidaRejeitaComoAmbigua(t *testing.T) {
	uc := buildClassificacaoUseCase()

	_, err := uc.CreateAlias(context.Background(), classifCompanyID,
		aliasRequest("Compra para industrialização"))
	require.NoError(t, err)

	// Variação só de caixa e acento normaliza para a mesma tupla: duas
	// aliases para ela seriam ambíguas, então a escrita é rejeitada.
	_, err = uc.CreateAlias(context.Background(), classifCompanyID,
		aliasRequest("COMPRA PARA INDUSTRIALIZACAO"))
	assert.ErrorIs(t, err, domain.ErrAmbiguousAlias)
}

func TestCreateAlias_DirecaoDiferenteNaoConflita(t *testing.T) {
	uc := buildClassificacaoUseCase()

	_, err := uc.CreateAlias(context.Background(), classifCompanyID,
		aliasRequest("Compra para industrialização"))
	require.NoError(t, err)

	req := aliasRequest("Compra para industrialização")
	req.Direction = entity.DirectionOUT
	_, err = uc.CreateAlias(context.Background(), classifCompanyID, req)
	assert.NoError(t, err, "a tupla inclui a direção; OUT não conflita com IN")
}

func TestCreateAlias_NaturezaDeOutraEmpresaRejeita(t *testing.T) {
	uc := buildClassificacaoUseCase()
	_, err := uc.CreateAlias(context.Background(), "outra-empresa",
		aliasRequest("Compra para industrialização"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateNatureza_SinalObrigatorioQuandoEntraNoDRE(t *testing.T) {
	uc := buildClassificacaoUseCase()
	_, err := uc.CreateNatureza(context.Background(), classifCompanyID, dto.CreateNaturezaRequest{
		Name:        "Venda de café",
		DREInclude:  true,
		DRECategory: "receita_bruta",
		DRESign:     0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
