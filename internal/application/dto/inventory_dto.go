package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOpeningRequest entrada para registrar a abertura manual de estoque de
// um produto. QtyNative na unidade do produto; SCEquivalent e UnitCost são
// derivados no servidor.
type CreateOpeningRequest struct {
	ProductID  string          `json:"product_id"`
	Date       time.Time       `json:"date"`
	QtyNative  decimal.Decimal `json:"qty_native"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// OpeningResponse saída de uma abertura.
type OpeningResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Date         time.Time       `json:"date"`
	QtyNative    decimal.Decimal `json:"qty_native"`
	SCEquivalent decimal.Decimal `json:"sc_equivalent"`
	TotalValue   decimal.Decimal `json:"total_value"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
}

// BalanceResponse saldo corrente de um produto.
type BalanceResponse struct {
	ProductID    string          `json:"product_id"`
	QtyNative    decimal.Decimal `json:"qty_native"`
	SCEquivalent decimal.Decimal `json:"sc_equivalent"`
	TotalValue   decimal.Decimal `json:"total_value"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	CostPerFardo decimal.Decimal `json:"cost_per_fardo"`
	LastDate     *time.Time      `json:"last_date,omitempty"`
}

// BalanceListResponse listagem paginada de saldos.
type BalanceListResponse struct {
	Items []BalanceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ReplayResponse resultado do reprocessamento do ledger de um produto.
type ReplayResponse struct {
	ProductID      string          `json:"product_id"`
	MovementsCount int             `json:"movements_count"`
	Flags          []string        `json:"flags,omitempty"`
	SCEquivalent   decimal.Decimal `json:"sc_equivalent"`
	TotalValue     decimal.Decimal `json:"total_value"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
}
