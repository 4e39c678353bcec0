package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cafeplanalto/fiscal-api/internal/application/dto"
	"github.com/cafeplanalto/fiscal-api/internal/domain"
	"github.com/cafeplanalto/fiscal-api/internal/domain/conversao"
	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
	"github.com/cafeplanalto/fiscal-api/internal/domain/repository"
)

// LedgerSeeder grava abertura e checkpoint na mesma transação, refazendo o
// fold quando o produto já tem movimentos aplicados.
type LedgerSeeder interface {
	SeedOpening(ctx context.Context, opening *entity.InventoryOpening) error
}

// OpeningUseCase administra as aberturas manuais de estoque (baseline do ledger).
type OpeningUseCase struct {
	openings repository.InventoryOpeningRepository
	products repository.ProductRepository
	ledger   LedgerSeeder
}

// NewOpeningUseCase constrói o caso de uso.
func NewOpeningUseCase(
	openings repository.InventoryOpeningRepository,
	products repository.ProductRepository,
	ledger LedgerSeeder,
) *OpeningUseCase {
	return &OpeningUseCase{openings: openings, products: products, ledger: ledger}
}

// Create registra a abertura de um produto (no máximo uma) e semeia o saldo
// corrente na mesma transação; movimentos já aplicados são refoldados sobre a
// abertura. SCEquivalent e UnitCost derivam da unidade declarada do produto.
func (uc *OpeningUseCase) Create(ctx context.Context, companyID string, in dto.CreateOpeningRequest) (*dto.OpeningResponse, error) {
	if in.ProductID == "" || in.Date.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.QtyNative.IsNegative() || in.TotalValue.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.openings.GetByProduct(ctx, companyID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	scEq := conversao.SCEquivalent(product.Unit, in.QtyNative)
	unitCost := decimal.Zero
	if !scEq.IsZero() {
		unitCost = in.TotalValue.Div(scEq)
	}
	now := time.Now()
	opening := &entity.InventoryOpening{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		ProductID:    in.ProductID,
		Date:         in.Date,
		QtyNative:    in.QtyNative,
		SCEquivalent: scEq,
		TotalValue:   in.TotalValue,
		UnitCost:     unitCost,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.ledger.SeedOpening(ctx, opening); err != nil {
		return nil, err
	}
	return toOpeningResponse(opening), nil
}

// ListByCompany lista as aberturas da empresa.
func (uc *OpeningUseCase) ListByCompany(ctx context.Context, companyID string) ([]dto.OpeningResponse, error) {
	list, err := uc.openings.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OpeningResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOpeningResponse(o))
	}
	return out, nil
}

func toOpeningResponse(o *entity.InventoryOpening) *dto.OpeningResponse {
	return &dto.OpeningResponse{
		ID:           o.ID,
		ProductID:    o.ProductID,
		Date:         o.Date,
		QtyNative:    o.QtyNative,
		SCEquivalent: o.SCEquivalent,
		TotalValue:   o.TotalValue,
		UnitCost:     o.UnitCost,
	}
}
