package dto

import "time"

// CreateNaturezaRequest entrada para criar uma natureza de operação interna.
// DRESign é +1 (receita) ou -1 (custo/despesa); obrigatório quando DREInclude.
type CreateNaturezaRequest struct {
	Name        string `json:"name"`
	DREInclude  bool   `json:"dre_include"`
	DRECategory string `json:"dre_category"`
	DRELabel    string `json:"dre_label"`
	DRESign     int    `json:"dre_sign"`
}

// NaturezaResponse saída de uma natureza de operação.
type NaturezaResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DREInclude  bool      `json:"dre_include"`
	DRECategory string    `json:"dre_category,omitempty"`
	DRELabel    string    `json:"dre_label,omitempty"`
	DRESign     int       `json:"dre_sign"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCfopRuleRequest entrada para criar uma regra CFOP -> natureza.
type CreateCfopRuleRequest struct {
	CfopCode           string `json:"cfop_code"`
	Direction          string `json:"direction"` // IN | OUT
	NaturezaOperacaoID string `json:"natureza_operacao_id"`
}

// CfopRuleResponse saída de uma regra CFOP.
type CfopRuleResponse struct {
	ID                 string    `json:"id"`
	CfopCode           string    `json:"cfop_code"`
	Direction          string    `json:"direction"`
	NaturezaOperacaoID string    `json:"natureza_operacao_id"`
	CreatedAt          time.Time `json:"created_at"`
}

// CreateAliasRequest entrada para criar uma alias de natureza de operação.
// NatOp pode vir cru; é normalizado antes de persistir (parte da identidade).
type CreateAliasRequest struct {
	NatOp              string `json:"nat_op"`
	CfopCode           string `json:"cfop_code"`
	Direction          string `json:"direction"`
	SelfIssuedEntrada  bool   `json:"self_issued_entrada"`
	NaturezaOperacaoID string `json:"natureza_operacao_id"`
}

// AliasResponse saída de uma alias.
type AliasResponse struct {
	ID                 string    `json:"id"`
	NatOp              string    `json:"nat_op"`
	CfopCode           string    `json:"cfop_code"`
	Direction          string    `json:"direction"`
	SelfIssuedEntrada  bool      `json:"self_issued_entrada"`
	NaturezaOperacaoID string    `json:"natureza_operacao_id"`
	CreatedAt          time.Time `json:"created_at"`
}
