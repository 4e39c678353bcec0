package repository

import (
	"context"

	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
)

// InventoryOpeningRepository define o port das aberturas manuais de estoque.
// No máximo uma por produto (ErrDuplicate na segunda).
type InventoryOpeningRepository interface {
	Create(ctx context.Context, opening *entity.InventoryOpening) error
	GetByProduct(ctx context.Context, companyID, productID string) (*entity.InventoryOpening, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.InventoryOpening, error)
	Delete(ctx context.Context, companyID, id string) error
}
