package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DREDeduction é uma dedução manual do resultado, com vigência por intervalo
// de datas. Entra integralmente em qualquer período do DRE que sobreponha o
// intervalo (sobreposição, não contenção; nunca rateada).
type DREDeduction struct {
	ID        string
	CompanyID string
	Title     string
	StartDate time.Time
	EndDate   time.Time
	Amount    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps informa se a vigência da dedução cruza o período [start, end].
func (d DREDeduction) Overlaps(start, end time.Time) bool {
	return !d.StartDate.After(end) && !d.EndDate.Before(start)
}
