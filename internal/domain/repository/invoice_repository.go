package repository

import (
	"context"

	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
)

// InvoiceRepository define o port das notas fiscais ingeridas.
// Chave de acesso única por empresa (ErrDuplicate na reimportação).
type InvoiceRepository interface {
	CreateWithItems(ctx context.Context, invoice *entity.Invoice, items []*entity.InvoiceItem) error
	GetByAccessKey(ctx context.Context, companyID, accessKey string) (*entity.Invoice, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error)
}

// CteRepository define o port dos conhecimentos de transporte ingeridos.
type CteRepository interface {
	Create(ctx context.Context, cte *entity.Cte) error
	GetByAccessKey(ctx context.Context, companyID, accessKey string) (*entity.Cte, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Cte, error)
}

// InvoiceItemProductMappingRepository define o port do vínculo item de nota ->
// produto interno. Um mapeamento por item (upsert substitui).
type InvoiceItemProductMappingRepository interface {
	Upsert(ctx context.Context, mapping *entity.InvoiceItemProductMapping) error
	GetByItem(ctx context.Context, companyID, invoiceItemID string) (*entity.InvoiceItemProductMapping, error)
}
