package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafeplanalto/fiscal-api/internal/application/dto"
	"github.com/cafeplanalto/fiscal-api/internal/domain"
	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
)

type fakeOpeningRepo struct {
	openings map[string]*entity.InventoryOpening
}

func (f *fakeOpeningRepo) Create(_ context.Context, o *entity.InventoryOpening) error {
	f.openings[o.ProductID] = o
	return nil
}
func (f *fakeOpeningRepo) GetByProduct(_ context.Context, _, productID string) (*entity.InventoryOpening, error) {
	return f.openings[productID], nil
}
func (f *fakeOpeningRepo) ListByCompany(_ context.Context, _ string) ([]*entity.InventoryOpening, error) {
	return nil, nil
}
func (f *fakeOpeningRepo) Delete(_ context.Context, _, _ string) error { return nil }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(_ context.Context, _ *entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProductRepo) GetByCompanyAndName(_ context.Context, _, _ string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Update(_ context.Context, _ *entity.Product) error { return nil }
func (f *fakeProductRepo) ListByCompany(_ context.Context, _ string, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

// fakeSeeder captura a abertura entregue ao ledger, que é quem grava abertura
// e checkpoint na mesma transação.
type fakeSeeder struct {
	seeded *entity.InventoryOpening
}

func (f *fakeSeeder) SeedOpening(_ context.Context, opening *entity.InventoryOpening) error {
	f.seeded = opening
	return nil
}

func openingDec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buildOpeningUseCase(unit string) (*OpeningUseCase, *fakeOpeningRepo, *fakeSeeder) {
	openings := &fakeOpeningRepo{openings: map[string]*entity.InventoryOpening{}}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", CompanyID: "co-1", Name: "Café Torrado", Unit: unit},
	}}
	seeder := &fakeSeeder{}
	return NewOpeningUseCase(openings, products, seeder), openings, seeder
}

func TestCreateOpening_DerivaEquivalenciaEDelegaAoLedger(t *testing.T) {
	uc, _, seeder := buildOpeningUseCase("SC")

	out, err := uc.Create(context.Background(), "co-1", dto.CreateOpeningRequest{
		ProductID:  "prod-1",
		Date:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		QtyNative:  openingDec("10"),
		TotalValue: openingDec("1000"),
	})
	require.NoError(t, err)
	assert.True(t, out.SCEquivalent.Equal(openingDec("10")))
	assert.True(t, out.UnitCost.Equal(openingDec("100")))

	// A escrita de abertura + checkpoint acontece no ledger, numa transação só.
	require.NotNil(t, seeder.seeded)
	assert.Equal(t, "prod-1", seeder.seeded.ProductID)
	assert.True(t, seeder.seeded.TotalValue.Equal(openingDec("1000")))
}

func TestCreateOpening_SegundaAberturaRejeita(t *testing.T) {
	uc, openings, _ := buildOpeningUseCase("SC")
	openings.openings["prod-1"] = &entity.InventoryOpening{ID: "open-1", ProductID: "prod-1"}

	_, err := uc.Create(context.Background(), "co-1", dto.CreateOpeningRequest{
		ProductID:  "prod-1",
		Date:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		QtyNative:  openingDec("5"),
		TotalValue: openingDec("500"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateOpening_ProdutoDeOutraEmpresaRejeita(t *testing.T) {
	uc, _, _ := buildOpeningUseCase("SC")
	_, err := uc.Create(context.Background(), "outra-empresa", dto.CreateOpeningRequest{
		ProductID:  "prod-1",
		Date:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		QtyNative:  openingDec("5"),
		TotalValue: openingDec("500"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOpening_QuantidadeNegativaRejeita(t *testing.T) {
	uc, _, _ := buildOpeningUseCase("SC")
	_, err := uc.Create(context.Background(), "co-1", dto.CreateOpeningRequest{
		ProductID:  "prod-1",
		Date:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		QtyNative:  openingDec("-1"),
		TotalValue: openingDec("100"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
