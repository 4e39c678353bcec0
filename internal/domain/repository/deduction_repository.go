package repository

import (
	"context"
	"time"

	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
)

// DREDeductionRepository define o port das deduções manuais do DRE.
type DREDeductionRepository interface {
	Create(ctx context.Context, deduction *entity.DREDeduction) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.DREDeduction, error)
	// ListOverlapping devolve as deduções cuja vigência sobrepõe [start, end]
	// (sobreposição, não contenção).
	ListOverlapping(ctx context.Context, companyID string, start, end time.Time) ([]*entity.DREDeduction, error)
	Delete(ctx context.Context, companyID, id string) error
}
