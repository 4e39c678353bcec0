package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLine é o registro normalizado que a ingestão entrega ao núcleo:
// uma linha de documento fiscal pronta para classificação e custeio.
// ProductID vem resolvido via InvoiceItemProductMapping; vazio significa
// linha sem mapeamento (vira movimento não classificado para custeio).
type DocumentLine struct {
	CompanyID         string
	ProductID         string
	SourceDocumentID  string // Invoice.ID ou Cte.ID
	SourceItemID      string // InvoiceItem.ID quando aplicável
	CfopCode          string
	Direction         string // DirectionIN | DirectionOUT
	NatOp             string // texto livre, ainda não normalizado
	SelfIssuedEntrada bool
	Date              time.Time
	QtyNative         decimal.Decimal
	Unit              string
	TotalValue        decimal.Decimal
}
