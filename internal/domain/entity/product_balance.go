package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductBalance é o checkpoint do fold do ledger para um produto: saldo
// corrente derivável por replay (abertura + movimentos em ordem de data).
// Nunca é editado fora do fold.
type ProductBalance struct {
	CompanyID    string
	ProductID    string
	QtyNative    decimal.Decimal
	SCEquivalent decimal.Decimal
	TotalValue   decimal.Decimal
	LastDate     time.Time // data do último movimento aplicado (zero se só abertura)
	UpdatedAt    time.Time
}

// UnitCost é o custo médio ponderado por saca equivalente; zero quando não há saldo.
func (b ProductBalance) UnitCost() decimal.Decimal {
	if b.SCEquivalent.IsZero() {
		return decimal.Zero
	}
	return b.TotalValue.Div(b.SCEquivalent)
}
