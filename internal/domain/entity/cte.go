package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cte é um conhecimento de transporte ingerido (CTe). Participa do DRE via
// classificação por CFOP como qualquer documento; não movimenta estoque.
type Cte struct {
	ID            string
	CompanyID     string
	AccessKey     string
	Number        string
	IssuerCNPJ    string
	RecipientCNPJ string
	CfopCode      string
	NatOp         string
	Date          time.Time
	TotalValue    decimal.Decimal
	CreatedAt     time.Time
}
