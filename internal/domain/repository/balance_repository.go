package repository

import (
	"context"

	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
)

// ProductBalanceRepository define o port do checkpoint do fold (saldo corrente
// por produto). A escrita é sempre serializada por produto: GetForUpdate
// bloqueia a linha (SELECT FOR UPDATE) dentro da transação do caso de uso.
type ProductBalanceRepository interface {
	Get(ctx context.Context, companyID, productID string) (*entity.ProductBalance, error)
	GetForUpdate(ctx context.Context, companyID, productID string) (*entity.ProductBalance, error)
	Upsert(ctx context.Context, balance *entity.ProductBalance) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.ProductBalance, error)
}
