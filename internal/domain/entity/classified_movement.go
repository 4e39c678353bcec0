package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de um movimento classificado.
const (
	MovementStatusApplied      = "APPLIED"      // classificado e aplicado ao ledger
	MovementStatusUnclassified = "UNCLASSIFIED" // sem regra/alias ou sem produto mapeado
	MovementStatusNegative     = "NEGATIVE"     // aplicado, mas deixou o saldo SC negativo
	MovementStatusOutOfOrder   = "OUT_OF_ORDER" // classificado, aguardando replay para entrar no custeio
)

// ClassifiedMovement é o resultado persistido da classificação de uma linha
// de documento: guarda o descritor resolvido (snapshot de categoria, rótulo e
// sinal) junto à origem, para auditoria. Movimentos UNCLASSIFIED ficam fora
// do custeio e do DRE até que uma regra seja cadastrada e a reclassificação
// rode; OUT_OF_ORDER ficam fora do checkpoint até o replay do produto, que os
// integra pela ordenação por data e promove o status.
type ClassifiedMovement struct {
	ID                 string
	CompanyID          string
	ProductID          string // vazio quando a linha não tem produto mapeado
	SourceDocumentID   string
	SourceItemID       string
	CfopCode           string
	Direction          string
	NatOp              string // texto normalizado usado na resolução
	SelfIssuedEntrada  bool
	NaturezaOperacaoID string // vazio quando UNCLASSIFIED
	DREInclude         bool
	DRECategory        string
	DRELabel           string
	DRESign            int
	Date               time.Time
	QtyNative          decimal.Decimal
	Unit               string
	SCEquivalent       decimal.Decimal
	TotalValue         decimal.Decimal
	Status             string // MovementStatus*
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
