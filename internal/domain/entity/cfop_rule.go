package entity

import "time"

// Direções de movimento de um documento fiscal, inferidas de quem emite:
// IN quando a empresa é destinatária, OUT quando é emitente.
const (
	DirectionIN  = "IN"
	DirectionOUT = "OUT"
)

// CfopRule mapeia (código CFOP, direção) para uma NaturezaOperacao da empresa.
// Unicidade em (CompanyID, CfopCode, Direction).
type CfopRule struct {
	ID                 string
	CompanyID          string
	CfopCode           string
	Direction          string // DirectionIN | DirectionOUT
	NaturezaOperacaoID string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
