package conversao_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafeplanalto/fiscal-api/internal/domain/conversao"
)

const tol = 1e-9

// Ida e volta: converter SC -> KG -> fardos deve bater com SC -> fardos.
func TestRoundTrip_SCParaKgParaFardos(t *testing.T) {
	for _, sc := range []float64{0.5, 1, 7.25, 30, 1250.75, 1e6} {
		viaKg := conversao.FardosFromKg(conversao.KgFromSC(sc))
		direto := conversao.FardosFromSC(sc)
		assert.InDelta(t, direto, viaKg, tol, "sc=%v", sc)
	}
}

func TestRoundTrip_FardosParaSCInverso(t *testing.T) {
	for _, f := range []float64{1, 9.6, 48, 3333.33} {
		sc := conversao.SCFromFardos(f)
		assert.InDelta(t, f, conversao.FardosFromSC(sc), tol, "fardos=%v", f)
	}
}

// Entradas zero ou não finitas devolvem exatamente 0 em todas as funções.
func TestEntradasInvalidasValemZero(t *testing.T) {
	fns := map[string]func(float64) float64{
		"SCFromFardos": conversao.SCFromFardos,
		"SCFromKg":     conversao.SCFromKg,
		"FardosFromSC": conversao.FardosFromSC,
		"KgFromSC":     conversao.KgFromSC,
		"FardosFromKg": conversao.FardosFromKg,
		"CostPerFardo": conversao.CostPerFardo,
	}
	for name, fn := range fns {
		assert.Zero(t, fn(0), "%s(0)", name)
		assert.Zero(t, fn(math.NaN()), "%s(NaN)", name)
		assert.Zero(t, fn(math.Inf(1)), "%s(+Inf)", name)
		assert.Zero(t, fn(math.Inf(-1)), "%s(-Inf)", name)
	}
}

func TestCostPerFardo(t *testing.T) {
	// custo médio de 96 por saca -> 96 * 5 / 48 = 10 por fardo
	assert.InDelta(t, 10, conversao.CostPerFardo(96), tol)
}

func TestSCEquivalentPorUnidade(t *testing.T) {
	cases := []struct {
		unit string
		qty  string
		want string
	}{
		{conversao.UnitSC, "10", "10"},
		{conversao.UnitKG, "96", "2"},
		{conversao.UnitFardo, "9.6", "1"},
		{"CX", "50", "0"}, // unidade desconhecida: sem contribuição
	}
	for _, c := range cases {
		qty := decimal.RequireFromString(c.qty)
		want := decimal.RequireFromString(c.want)
		got := conversao.SCEquivalent(c.unit, qty)
		assert.True(t, want.Equal(got), "unit=%s qty=%s got=%s", c.unit, c.qty, got)
	}
}

// NativeFromSC desfaz SCEquivalent para as unidades válidas.
func TestNativeFromSCInverso(t *testing.T) {
	for _, unit := range []string{conversao.UnitSC, conversao.UnitKG, conversao.UnitFardo} {
		qty := decimal.RequireFromString("14.4")
		sc := conversao.SCEquivalent(unit, qty)
		back := conversao.NativeFromSC(unit, sc)
		diff := back.Sub(qty).Abs()
		require.True(t, diff.LessThan(decimal.New(1, -9)), "unit=%s back=%s", unit, back)
	}
}

func TestCostPerFardoDec(t *testing.T) {
	got := conversao.CostPerFardoDec(decimal.RequireFromString("96"))
	assert.True(t, decimal.RequireFromString("10").Equal(got), "got=%s", got)
}

func TestValidUnit(t *testing.T) {
	assert.True(t, conversao.ValidUnit("SC"))
	assert.True(t, conversao.ValidUnit("KG"))
	assert.True(t, conversao.ValidUnit("FARDO"))
	assert.False(t, conversao.ValidUnit("UN"))
	assert.False(t, conversao.ValidUnit(""))
}
