package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryOpening é o saldo inicial manual de um produto: semeia o ledger
// antes de qualquer histórico de movimentos. No máximo uma por produto.
type InventoryOpening struct {
	ID           string
	CompanyID    string
	ProductID    string
	Date         time.Time
	QtyNative    decimal.Decimal // quantidade na unidade do produto
	SCEquivalent decimal.Decimal
	TotalValue   decimal.Decimal
	UnitCost     decimal.Decimal // TotalValue / SCEquivalent, informativo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
