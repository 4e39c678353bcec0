package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DRECategoryTotal é o resultado cru da soma assinada por categoria/rótulo.
// O sinal vem gravado no movimento classificado; a consulta só agrega.
type DRECategoryTotal struct {
	Category string
	Label    string
	Total    decimal.Decimal
}

// DREReportRepository define as consultas de leitura do agregador de DRE.
// Implementações são read-only e leem um snapshot consistente.
type DREReportRepository interface {
	// SumByCategory agrega sign × total_value dos movimentos com dre_include
	// no período, agrupando por (categoria, rótulo).
	SumByCategory(ctx context.Context, companyID string, start, end time.Time) ([]DRECategoryTotal, error)
	// CountUnclassified conta os movimentos sem classificação no período
	// (diagnóstico de lacuna de dados do relatório).
	CountUnclassified(ctx context.Context, companyID string, start, end time.Time) (int, error)
}
