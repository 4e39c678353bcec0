package repository

import (
	"context"

	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
)

// CompanyRepository define o port de persistência para Company.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
}
