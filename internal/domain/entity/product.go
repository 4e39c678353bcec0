package entity

import "time"

// Product representa um produto (café cru, torrado ou embalado) de uma empresa.
// Name é único por empresa; Unit define a unidade nativa dos saldos (SC, KG ou
// FARDO) e dirige a conversão para sacas equivalentes no ledger. Não é apagado
// enquanto referenciado por saldos (cascata só com a empresa).
type Product struct {
	ID        string
	CompanyID string
	SKU       string // opcional
	Name      string
	Unit      string // conversao.UnitSC | UnitKG | UnitFardo
	NCM       string // classificação fiscal, opcional
	CreatedAt time.Time
	UpdatedAt time.Time
}
