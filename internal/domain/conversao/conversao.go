package conversao

import (
	"math"

	"github.com/shopspring/decimal"
)

// Constantes de conversão entre unidades físicas do negócio. São a única
// fonte dessas razões no sistema; nenhum outro pacote as rederiva.
const (
	// RawSCToTorradoKG: uma saca (SC) de café cru rende 48 KG de torrado.
	RawSCToTorradoKG = 48.0
	// FardoKG: um fardo embala 5 KG de produto acabado.
	FardoKG = 5.0
	// RawSCToFardos: fardos produzidos por saca de cru (48 / 5).
	RawSCToFardos = 9.6
)

// Códigos de unidade aceitos em Product.Unit e nas linhas de documento.
const (
	UnitSC    = "SC"
	UnitKG    = "KG"
	UnitFardo = "FARDO"
)

// valid devolve x quando é finito e diferente de zero; caso contrário 0.
// Entradas não finitas degradam para zero por contrato: o chamador trata
// zero como "sem contribuição", nunca como NaN propagado.
func valid(x float64) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// SCFromFardos converte fardos em sacas equivalentes.
func SCFromFardos(fardos float64) float64 {
	if f := valid(fardos); f != 0 {
		return f * FardoKG / RawSCToTorradoKG
	}
	return 0
}

// SCFromKg converte quilogramas de torrado em sacas equivalentes.
func SCFromKg(kg float64) float64 {
	if k := valid(kg); k != 0 {
		return k / RawSCToTorradoKG
	}
	return 0
}

// FardosFromSC converte sacas em fardos.
func FardosFromSC(sc float64) float64 {
	if s := valid(sc); s != 0 {
		return s * RawSCToFardos
	}
	return 0
}

// KgFromSC converte sacas em quilogramas de torrado.
func KgFromSC(sc float64) float64 {
	if s := valid(sc); s != 0 {
		return s * RawSCToTorradoKG
	}
	return 0
}

// FardosFromKg converte quilogramas em fardos.
func FardosFromKg(kg float64) float64 {
	if k := valid(kg); k != 0 {
		return k / FardoKG
	}
	return 0
}

// CostPerFardo deriva o custo de um fardo a partir do custo médio por saca.
func CostPerFardo(avgCostPerSC float64) float64 {
	if c := valid(avgCostPerSC); c != 0 {
		return c * FardoKG / RawSCToTorradoKG
	}
	return 0
}

// Razões em decimal para a contabilidade do ledger (mesmas constantes acima).
var (
	decSCToKG   = decimal.NewFromInt(48)
	decFardoKG  = decimal.NewFromInt(5)
	decSCFardos = decimal.NewFromFloat(9.6)
)

// SCEquivalent converte uma quantidade na unidade nativa do produto para
// sacas equivalentes, em aritmética decimal. Unidade desconhecida vale zero
// (sem contribuição), coerente com o contrato das funções float.
func SCEquivalent(unit string, qty decimal.Decimal) decimal.Decimal {
	switch unit {
	case UnitSC:
		return qty
	case UnitKG:
		return qty.Div(decSCToKG)
	case UnitFardo:
		return qty.Mul(decFardoKG).Div(decSCToKG)
	default:
		return decimal.Zero
	}
}

// NativeFromSC faz a conversão inversa de SCEquivalent, para exibição de
// saldos na unidade declarada do produto.
func NativeFromSC(unit string, sc decimal.Decimal) decimal.Decimal {
	switch unit {
	case UnitSC:
		return sc
	case UnitKG:
		return sc.Mul(decSCToKG)
	case UnitFardo:
		return sc.Mul(decSCFardos)
	default:
		return decimal.Zero
	}
}

// CostPerFardoDec deriva o custo decimal por fardo a partir do custo médio por saca.
func CostPerFardoDec(avgCostPerSC decimal.Decimal) decimal.Decimal {
	return avgCostPerSC.Mul(decFardoKG).Div(decSCToKG)
}

// ValidUnit informa se o código de unidade é um dos aceitos pelo sistema.
func ValidUnit(unit string) bool {
	switch unit {
	case UnitSC, UnitKG, UnitFardo:
		return true
	}
	return false
}
