package entity

import "time"

// Sinais de contribuição no DRE. O sinal é configurado por categoria na
// natureza, nunca derivado da direção do movimento na agregação: devoluções
// de compra e de venda precisam de sinal não padrão.
const (
	DRESignCredit = 1  // soma no resultado (receita)
	DRESignDebit  = -1 // subtrai do resultado (custo/despesa)
)

// NaturezaOperacao é a categoria interna de operação: o que o movimento
// significa economicamente (compra, venda, devolução, transferência...).
type NaturezaOperacao struct {
	ID          string
	CompanyID   string
	Name        string
	DREInclude  bool   // entra no DRE?
	DRECategory string // agrupador do DRE (ex.: "receita_bruta", "custo_materia_prima")
	DRELabel    string // rótulo exibido no relatório
	DRESign     int    // DRESignCredit | DRESignDebit
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
