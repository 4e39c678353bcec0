package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice é a cabeça de uma nota fiscal ingerida (NFe já emitida; o parse do
// XML acontece fora deste sistema). Guardada como fato, nunca reemitida aqui.
type Invoice struct {
	ID                string
	CompanyID         string
	AccessKey         string // chave de acesso de 44 dígitos
	Number            string
	Series            string
	IssuerCNPJ        string
	RecipientCNPJ     string
	NatOp             string // natureza de operação como veio no documento
	Date              time.Time
	TotalValue        decimal.Decimal
	SelfIssuedEntrada bool // emitida pela própria empresa contra si (transferência)
	CreatedAt         time.Time
}

// InvoiceItem é uma linha da nota, com quantidade e valor na unidade do documento.
type InvoiceItem struct {
	ID         string
	InvoiceID  string
	LineNumber int
	CfopCode   string
	NCM        string
	Descricao  string
	Unit       string
	Qty        decimal.Decimal
	TotalValue decimal.Decimal
	CreatedAt  time.Time
}

// InvoiceItemProductMapping liga um item de nota a um Product interno para
// fins de custeio. Única por item; sem mapeamento a linha não atualiza ledger.
type InvoiceItemProductMapping struct {
	ID            string
	CompanyID     string
	InvoiceItemID string
	ProductID     string
	CreatedAt     time.Time
}
