package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportInvoiceRequest nota fiscal normalizada entregue pela ingestão
// (o parse do XML acontece fora deste sistema).
type ImportInvoiceRequest struct {
	AccessKey         string                     `json:"access_key"`
	Number            string                     `json:"number"`
	Series            string                     `json:"series"`
	IssuerCNPJ        string                     `json:"issuer_cnpj"`
	RecipientCNPJ     string                     `json:"recipient_cnpj"`
	NatOp             string                     `json:"nat_op"`
	Date              time.Time                  `json:"date"`
	Direction         string                     `json:"direction"` // IN | OUT
	SelfIssuedEntrada bool                       `json:"self_issued_entrada"`
	TotalValue        decimal.Decimal            `json:"total_value"`
	Items             []ImportInvoiceItemRequest `json:"items"`
}

// ImportInvoiceItemRequest linha da nota. ProductID é o mapeamento para o
// produto interno; vazio deixa a linha sem custeio (não classificada).
type ImportInvoiceItemRequest struct {
	LineNumber int             `json:"line_number"`
	CfopCode   string          `json:"cfop_code"`
	NCM        string          `json:"ncm"`
	Descricao  string          `json:"descricao"`
	Unit       string          `json:"unit"`
	Qty        decimal.Decimal `json:"qty"`
	TotalValue decimal.Decimal `json:"total_value"`
	ProductID  string          `json:"product_id,omitempty"`
}

// ImportCteRequest conhecimento de transporte normalizado.
type ImportCteRequest struct {
	AccessKey     string          `json:"access_key"`
	Number        string          `json:"number"`
	IssuerCNPJ    string          `json:"issuer_cnpj"`
	RecipientCNPJ string          `json:"recipient_cnpj"`
	CfopCode      string          `json:"cfop_code"`
	NatOp         string          `json:"nat_op"`
	Date          time.Time       `json:"date"`
	Direction     string          `json:"direction"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// Desfechos possíveis de uma linha importada. Cada linha é independente:
// uma linha ruim nunca aborta o lote.
const (
	LineOutcomeApplied      = "applied"
	LineOutcomeUnclassified = "unclassified"
	LineOutcomeNegative     = "negative_inventory"
	LineOutcomeOutOfOrder   = "out_of_order"
	LineOutcomeError        = "error"
)

// LineOutcome desfecho individual de uma linha do lote.
type LineOutcome struct {
	LineNumber int    `json:"line_number"`
	MovementID string `json:"movement_id,omitempty"`
	Outcome    string `json:"outcome"`
	Detail     string `json:"detail,omitempty"`
}

// ImportResultResponse relatório do lote: desfecho por linha.
type ImportResultResponse struct {
	DocumentID string        `json:"document_id"`
	Lines      []LineOutcome `json:"lines"`
}

// ReclassifyResponse resumo da reclassificação dos movimentos pendentes.
type ReclassifyResponse struct {
	Processed  int `json:"processed"`
	Applied    int `json:"applied"`
	OutOfOrder int `json:"out_of_order"`
	Remaining  int `json:"remaining"`
}
