package classificacao_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafeplanalto/fiscal-api/internal/domain"
	"github.com/cafeplanalto/fiscal-api/internal/domain/classificacao"
	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
)

// fakes em memória para os ports de consulta

type aliasKey struct {
	natOp, cfop, dir string
	selfIssued       bool
}

type fakeLookups struct {
	aliases   map[aliasKey]*entity.NaturezaOperacaoAlias
	rules     map[string]*entity.CfopRule // chave: cfop|dir
	naturezas map[string]*entity.NaturezaOperacao
}

func (f *fakeLookups) FindAlias(_ context.Context, _, natOp, cfop, dir string, selfIssued bool) (*entity.NaturezaOperacaoAlias, error) {
	return f.aliases[aliasKey{natOp, cfop, dir, selfIssued}], nil
}

func (f *fakeLookups) FindRule(_ context.Context, _, cfop, dir string) (*entity.CfopRule, error) {
	return f.rules[cfop+"|"+dir], nil
}

func (f *fakeLookups) GetNatureza(_ context.Context, id string) (*entity.NaturezaOperacao, error) {
	return f.naturezas[id], nil
}

func newFixture() *fakeLookups {
	return &fakeLookups{
		aliases: map[aliasKey]*entity.NaturezaOperacaoAlias{},
		rules:   map[string]*entity.CfopRule{},
		naturezas: map[string]*entity.NaturezaOperacao{
			"nat-compra": {ID: "nat-compra", Name: "Compra de café cru", DREInclude: true,
				DRECategory: "custo_materia_prima", DRELabel: "Compra de café cru", DRESign: entity.DRESignDebit},
			"nat-venda": {ID: "nat-venda", Name: "Venda de torrado", DREInclude: true,
				DRECategory: "receita_bruta", DRELabel: "Venda de café torrado", DRESign: entity.DRESignCredit},
			"nat-transfer": {ID: "nat-transfer", Name: "Transferência interna", DREInclude: false, DRESign: entity.DRESignDebit},
		},
	}
}

func TestNormalizeNatOp(t *testing.T) {
	cases := map[string]string{
		"  VENDA DE MERCADORIA  ":      "venda de mercadoria",
		"Venda   de\tMercadoria":       "venda de mercadoria",
		"TRANSFERÊNCIA DE PRODUÇÃO":    "transferencia de producao",
		"Remessa p/ Industrialização":  "remessa p/ industrializacao",
		"":                             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, classificacao.NormalizeNatOp(in), "in=%q", in)
	}
}

// Quando alias e regra CFOP se aplicam à mesma linha, a alias ganha.
func TestResolve_AliasGanhaDaRegra(t *testing.T) {
	f := newFixture()
	f.rules["5102|OUT"] = &entity.CfopRule{CfopCode: "5102", Direction: "OUT", NaturezaOperacaoID: "nat-venda"}
	f.aliases[aliasKey{"venda de mercadoria", "5102", "OUT", false}] = &entity.NaturezaOperacaoAlias{
		NatOp: "venda de mercadoria", CfopCode: "5102", Direction: "OUT", NaturezaOperacaoID: "nat-transfer",
	}
	r := classificacao.NewResolver(f, f, f)

	got, err := r.Resolve(context.Background(), classificacao.Query{
		CompanyID: "emp-1", CfopCode: "5102", Direction: "OUT", NatOp: " VENDA DE MERCADORIA ",
	})
	require.NoError(t, err)
	assert.Equal(t, "nat-transfer", got.NaturezaOperacaoID)
	assert.False(t, got.DREInclude)
}

func TestResolve_CaiNaRegraSemAlias(t *testing.T) {
	f := newFixture()
	f.rules["1102|IN"] = &entity.CfopRule{CfopCode: "1102", Direction: "IN", NaturezaOperacaoID: "nat-compra"}
	r := classificacao.NewResolver(f, f, f)

	got, err := r.Resolve(context.Background(), classificacao.Query{
		CompanyID: "emp-1", CfopCode: "1102", Direction: "IN", NatOp: "Compra p/ comercialização",
	})
	require.NoError(t, err)
	assert.Equal(t, "nat-compra", got.NaturezaOperacaoID)
	assert.True(t, got.DREInclude)
	assert.Equal(t, "custo_materia_prima", got.DRECategory)
	assert.Equal(t, entity.DRESignDebit, got.DRESign)
	assert.Equal(t, "IN", got.Direction)
}

// A flag de auto-emissão participa da identidade da alias.
func TestResolve_AliasDistinguePorAutoEmissao(t *testing.T) {
	f := newFixture()
	f.rules["5152|OUT"] = &entity.CfopRule{CfopCode: "5152", Direction: "OUT", NaturezaOperacaoID: "nat-venda"}
	f.aliases[aliasKey{"transferencia de producao", "5152", "OUT", true}] = &entity.NaturezaOperacaoAlias{
		NaturezaOperacaoID: "nat-transfer", SelfIssuedEntrada: true,
	}
	r := classificacao.NewResolver(f, f, f)

	q := classificacao.Query{CompanyID: "emp-1", CfopCode: "5152", Direction: "OUT", NatOp: "Transferência de Produção"}

	q.SelfIssuedEntrada = true
	got, err := r.Resolve(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, "nat-transfer", got.NaturezaOperacaoID)

	// Sem a flag não casa a alias e cai na regra genérica.
	q.SelfIssuedEntrada = false
	got, err = r.Resolve(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, "nat-venda", got.NaturezaOperacaoID)
}

// Sem alias nem regra: ErrUnclassified, jamais categoria padrão.
func TestResolve_SemCasamentoFalha(t *testing.T) {
	r := classificacao.NewResolver(newFixture(), newFixture(), newFixture())
	_, err := r.Resolve(context.Background(), classificacao.Query{
		CompanyID: "emp-1", CfopCode: "9999", Direction: "IN", NatOp: "Operação desconhecida",
	})
	assert.ErrorIs(t, err, domain.ErrUnclassified)
}

func TestResolve_EntradaInvalida(t *testing.T) {
	r := classificacao.NewResolver(newFixture(), newFixture(), newFixture())
	_, err := r.Resolve(context.Background(), classificacao.Query{CompanyID: "emp-1", CfopCode: "5102", Direction: "LATERAL"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = r.Resolve(context.Background(), classificacao.Query{CfopCode: "5102", Direction: "IN"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
