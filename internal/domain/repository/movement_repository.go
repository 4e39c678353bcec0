package repository

import (
	"context"
	"time"

	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
)

// ClassifiedMovementRepository define o port dos movimentos classificados
// (resultado da resolução persistido junto à origem, para auditoria).
type ClassifiedMovementRepository interface {
	Create(ctx context.Context, mov *entity.ClassifiedMovement) error
	UpdateStatus(ctx context.Context, id, status string) error
	// UpdateClassification regrava o snapshot da resolução de um movimento
	// existente, junto com unidade, equivalência em sacas e status
	// (reclassificação de pendentes).
	UpdateClassification(ctx context.Context, mov *entity.ClassifiedMovement) error
	// ListByProductOrdered devolve os movimentos aplicáveis de um produto
	// (aplicados, negativos e fora de ordem) em ordem crescente de data
	// (insumo do replay do ledger).
	ListByProductOrdered(ctx context.Context, companyID, productID string) ([]*entity.ClassifiedMovement, error)
	ListByCompany(ctx context.Context, companyID string, from, to *time.Time, limit, offset int) ([]*entity.ClassifiedMovement, error)
	ListUnclassified(ctx context.Context, companyID string, limit, offset int) ([]*entity.ClassifiedMovement, error)
}
