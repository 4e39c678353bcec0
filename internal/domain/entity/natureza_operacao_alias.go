package entity

import "time"

// NaturezaOperacaoAlias resolve o texto livre "natureza de operação" (que
// varia por emitente) para uma NaturezaOperacao canônica, sobrepondo o
// mapeamento genérico por CFOP quando a combinação exata é conhecida.
// NatOp é armazenado já normalizado (classificacao.NormalizeNatOp); a
// normalização faz parte da identidade da alias. Unicidade na tupla completa
// (CompanyID, NatOp, CfopCode, Direction, SelfIssuedEntrada).
type NaturezaOperacaoAlias struct {
	ID                 string
	CompanyID          string
	NatOp              string // texto normalizado
	CfopCode           string
	Direction          string // DirectionIN | DirectionOUT
	SelfIssuedEntrada  bool   // documento emitido pela própria empresa contra si (ex.: transferência)
	NaturezaOperacaoID string // alvo canônico
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
