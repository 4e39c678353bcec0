package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDeductionRequest entrada para cadastrar uma dedução manual do DRE.
type CreateDeductionRequest struct {
	Title     string          `json:"title"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	Amount    decimal.Decimal `json:"amount"`
}

// DeductionResponse saída de uma dedução.
type DeductionResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	Amount    decimal.Decimal `json:"amount"`
}

// DRECategoryResponse total assinado de uma categoria do DRE no período.
type DRECategoryResponse struct {
	Category string          `json:"category"`
	Label    string          `json:"label"`
	Total    decimal.Decimal `json:"total"`
}

// DREReportResponse demonstração do resultado do período.
// UnclassifiedCount expõe lacunas de classificação em vez de subnotificar.
type DREReportResponse struct {
	StartDate         time.Time             `json:"start_date"`
	EndDate           time.Time             `json:"end_date"`
	Categories        []DRECategoryResponse `json:"categories"`
	Deductions        []DeductionResponse   `json:"deductions"`
	Net               decimal.Decimal       `json:"net"`
	UnclassifiedCount int                   `json:"unclassified_count"`
}
