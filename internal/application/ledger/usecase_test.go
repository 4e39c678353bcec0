package ledger

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafeplanalto/fiscal-api/internal/domain"
	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
	"github.com/cafeplanalto/fiscal-api/internal/domain/repository"
)

// Fakes em memória: o TxRunner executa o callback direto com os repositórios
// compartilhados, sem transação real.

type fakeMovementRepo struct {
	movs []*entity.ClassifiedMovement
}

func (f *fakeMovementRepo) Create(_ context.Context, mov *entity.ClassifiedMovement) error {
	f.movs = append(f.movs, mov)
	return nil
}

func (f *fakeMovementRepo) UpdateStatus(_ context.Context, id, status string) error {
	for _, m := range f.movs {
		if m.ID == id {
			m.Status = status
		}
	}
	return nil
}

func (f *fakeMovementRepo) UpdateClassification(_ context.Context, mov *entity.ClassifiedMovement) error {
	for i, m := range f.movs {
		if m.ID == mov.ID {
			f.movs[i] = mov
		}
	}
	return nil
}

func (f *fakeMovementRepo) ListByProductOrdered(_ context.Context, companyID, productID string) ([]*entity.ClassifiedMovement, error) {
	var out []*entity.ClassifiedMovement
	for _, m := range f.movs {
		if m.CompanyID == companyID && m.ProductID == productID &&
			(m.Status == entity.MovementStatusApplied || m.Status == entity.MovementStatusNegative ||
				m.Status == entity.MovementStatusOutOfOrder) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeMovementRepo) ListByCompany(_ context.Context, _ string, _, _ *time.Time, _, _ int) ([]*entity.ClassifiedMovement, error) {
	return f.movs, nil
}

func (f *fakeMovementRepo) ListUnclassified(_ context.Context, _ string, _, _ int) ([]*entity.ClassifiedMovement, error) {
	return nil, nil
}

type fakeBalanceRepo struct {
	balances map[string]*entity.ProductBalance
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{balances: map[string]*entity.ProductBalance{}}
}

func (f *fakeBalanceRepo) key(companyID, productID string) string { return companyID + "/" + productID }

func (f *fakeBalanceRepo) Get(_ context.Context, companyID, productID string) (*entity.ProductBalance, error) {
	return f.balances[f.key(companyID, productID)], nil
}

func (f *fakeBalanceRepo) GetForUpdate(ctx context.Context, companyID, productID string) (*entity.ProductBalance, error) {
	return f.Get(ctx, companyID, productID)
}

func (f *fakeBalanceRepo) Upsert(_ context.Context, b *entity.ProductBalance) error {
	f.balances[f.key(b.CompanyID, b.ProductID)] = b
	return nil
}

func (f *fakeBalanceRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.ProductBalance, error) {
	var out []*entity.ProductBalance
	for _, b := range f.balances {
		if b.CompanyID == companyID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeTxRunner struct {
	movs     *fakeMovementRepo
	balances *fakeBalanceRepo
	openings *fakeOpeningRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	repository.ClassifiedMovementRepository,
	repository.ProductBalanceRepository,
	repository.InventoryOpeningRepository,
) error) error {
	return fn(f.movs, f.balances, f.openings)
}

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

type fakeOpeningRepo struct {
	openings map[string]*entity.InventoryOpening
}

func (f *fakeOpeningRepo) Create(_ context.Context, o *entity.InventoryOpening) error {
	if _, ok := f.openings[o.ProductID]; ok {
		return domain.ErrDuplicate
	}
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

const (
	companyID = "co-1"
	productID = "prod-1"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func buildUseCase() (*UseCase, *fakeMovementRepo, *fakeBalanceRepo) {
	movs := &fakeMovementRepo{}
	balances := newFakeBalanceRepo()
	products := &fakeProductRepo{products: map[string]*entity.Product{
		productID: {ID: productID, CompanyID: companyID, Name: "Café Torrado", Unit: "SC"},
	}}
	openings := &fakeOpeningRepo{openings: map[string]*entity.InventoryOpening{
		productID: {
			ID: "open-1", CompanyID: companyID, ProductID: productID,
			Date: day(1), QtyNative: dec("10"), SCEquivalent: dec("10"), TotalValue: dec("1000"),
		},
	}}
	runner := &fakeTxRunner{movs: movs, balances: balances, openings: openings}
	uc := NewUseCase(runner, openings, products, balances, movs)
	return uc, movs, balances
}

// buildUseCaseSemAbertura monta o caso de uso sem abertura nem saldo prévios.
func buildUseCaseSemAbertura() (*UseCase, *fakeMovementRepo, *fakeBalanceRepo, *fakeOpeningRepo) {
	movs := &fakeMovementRepo{}
	balances := newFakeBalanceRepo()
	products := &fakeProductRepo{products: map[string]*entity.Product{
		productID: {ID: productID, CompanyID: companyID, Name: "Café Torrado", Unit: "SC"},
	}}
	openings := &fakeOpeningRepo{openings: map[string]*entity.InventoryOpening{}}
	runner := &fakeTxRunner{movs: movs, balances: balances, openings: openings}
	uc := NewUseCase(runner, openings, products, balances, movs)
	return uc, movs, balances, openings
}

func seedBalance(balances *fakeBalanceRepo) {
	balances.balances[balances.key(companyID, productID)] = &entity.ProductBalance{
		CompanyID: companyID, ProductID: productID,
		QtyNative: dec("10"), SCEquivalent: dec("10"), TotalValue: dec("1000"),
		LastDate: day(1),
	}
}

func movement(direction string, d time.Time, qty, total string) *entity.ClassifiedMovement {
	return &entity.ClassifiedMovement{
		ID: "mov-" + qty + "-" + d.Format("02"), CompanyID: companyID, ProductID: productID,
		Direction: direction, Date: d,
		QtyNative: dec(qty), SCEquivalent: dec(qty), TotalValue: dec(total),
	}
}

func TestApplyMovement_EntradaAtualizaCustoMedio(t *testing.T) {
	uc, movs, balances := buildUseCase()
	seedBalance(balances)

	flags, err := uc.ApplyMovement(context.Background(), movement(entity.DirectionIN, day(2), "10", "1200"))
	require.NoError(t, err)
	assert.Empty(t, flags)

	require.Len(t, movs.movs, 1)
	assert.Equal(t, entity.MovementStatusApplied, movs.movs[0].Status)

	b := balances.balances[balances.key(companyID, productID)]
	assert.True(t, b.SCEquivalent.Equal(dec("20")))
	assert.True(t, b.TotalValue.Equal(dec("2200")))
	assert.True(t, b.UnitCost().Equal(dec("110")))
}

func TestApplyMovement_SaidaValoradaAoCustoMedio(t *testing.T) {
	uc, _, balances := buildUseCase()
	seedBalance(balances)

	_, err := uc.ApplyMovement(context.Background(), movement(entity.DirectionIN, day(2), "10", "1200"))
	require.NoError(t, err)
	flags, err := uc.ApplyMovement(context.Background(), movement(entity.DirectionOUT, day(3), "5", "9999"))
	require.NoError(t, err)
	assert.Empty(t, flags)

	b := balances.balances[balances.key(companyID, productID)]
	assert.True(t, b.SCEquivalent.Equal(dec("15")))
	assert.True(t, b.TotalValue.Equal(dec("1650")), "saída sai ao custo médio, não ao preço de venda")
	assert.True(t, b.UnitCost().Equal(dec("110")))
}

func TestApplyMovement_SaldoNegativoSinalizaEMarca(t *testing.T) {
	uc, movs, balances := buildUseCase()
	seedBalance(balances)

	flags, err := uc.ApplyMovement(context.Background(), movement(entity.DirectionOUT, day(2), "12", "0"))
	require.NoError(t, err, "saldo negativo é aceito, nunca bloqueado")
	require.Len(t, flags, 1)

	require.Len(t, movs.movs, 1)
	assert.Equal(t, entity.MovementStatusNegative, movs.movs[0].Status)

	b := balances.balances[balances.key(companyID, productID)]
	assert.True(t, b.SCEquivalent.Equal(dec("-2")))
}

func TestApplyMovement_ForaDeOrdemNaoPersisteNada(t *testing.T) {
	uc, movs, balances := buildUseCase()
	seedBalance(balances)

	before := *balances.balances[balances.key(companyID, productID)]
	_, err := uc.ApplyMovement(context.Background(), movement(entity.DirectionIN, day(1).Add(-24*time.Hour), "5", "500"))
	require.ErrorIs(t, err, domain.ErrOutOfOrder)

	assert.Empty(t, movs.movs, "movimento fora de ordem não é gravado")
	after := balances.balances[balances.key(companyID, productID)]
	assert.True(t, before.TotalValue.Equal(after.TotalValue))
	assert.True(t, before.SCEquivalent.Equal(after.SCEquivalent))
}

func TestApplyMovement_SemProdutoRejeita(t *testing.T) {
	uc, _, _ := buildUseCase()
	mov := movement(entity.DirectionIN, day(2), "1", "100")
	mov.ProductID = ""
	_, err := uc.ApplyMovement(context.Background(), mov)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReplay_ReconstroiDoZeroEIdempotente(t *testing.T) {
	uc, movs, balances := buildUseCase()
	seedBalance(balances)

	_, err := uc.ApplyMovement(context.Background(), movement(entity.DirectionIN, day(2), "10", "1200"))
	require.NoError(t, err)
	_, err = uc.ApplyMovement(context.Background(), movement(entity.DirectionOUT, day(3), "5", "0"))
	require.NoError(t, err)

	// Corrompe o checkpoint; o replay deve reconstruí-lo da abertura + movimentos.
	balances.balances[balances.key(companyID, productID)] = &entity.ProductBalance{
		CompanyID: companyID, ProductID: productID,
		QtyNative: dec("999"), SCEquivalent: dec("999"), TotalValue: dec("999"),
	}

	out, err := uc.Replay(context.Background(), companyID, productID)
	require.NoError(t, err)
	assert.Equal(t, 2, out.MovementsCount)
	assert.True(t, out.SCEquivalent.Equal(dec("15")))
	assert.True(t, out.TotalValue.Equal(dec("1650")))
	assert.True(t, out.UnitCost.Equal(dec("110")))

	again, err := uc.Replay(context.Background(), companyID, productID)
	require.NoError(t, err)
	assert.True(t, again.SCEquivalent.Equal(out.SCEquivalent))
	assert.True(t, again.TotalValue.Equal(out.TotalValue))
	_ = movs
}

func TestReplay_ProdutoInexistente(t *testing.T) {
	uc, _, _ := buildUseCase()
	_, err := uc.Replay(context.Background(), companyID, "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReplay_IntegraMovimentoForaDeOrdemEPromoveStatus(t *testing.T) {
	uc, movs, balances := buildUseCase()
	seedBalance(balances)

	_, err := uc.ApplyMovement(context.Background(), movement(entity.DirectionIN, day(3), "10", "1200"))
	require.NoError(t, err)

	// Linha rejeitada na importação fica persistida fora do checkpoint,
	// aguardando o replay.
	pendente := movement(entity.DirectionIN, day(2), "5", "500")
	pendente.Status = entity.MovementStatusOutOfOrder
	movs.movs = append(movs.movs, pendente)

	out, err := uc.Replay(context.Background(), companyID, productID)
	require.NoError(t, err)
	assert.Equal(t, 2, out.MovementsCount)
	assert.True(t, out.SCEquivalent.Equal(dec("25")))
	assert.True(t, out.TotalValue.Equal(dec("2700")), "o fold ordenado por data integra a linha atrasada")

	assert.Equal(t, entity.MovementStatusApplied, pendente.Status, "status promovido após o replay")

	b := balances.balances[balances.key(companyID, productID)]
	assert.True(t, b.SCEquivalent.Equal(dec("25")))
}

func TestSeedOpening_RefoldaMovimentosExistentes(t *testing.T) {
	uc, _, balances, openings := buildUseCaseSemAbertura()

	// Movimento chegou antes da abertura ser cadastrada: checkpoint parte do zero.
	_, err := uc.ApplyMovement(context.Background(), movement(entity.DirectionIN, day(5), "10", "1200"))
	require.NoError(t, err)

	err = uc.SeedOpening(context.Background(), &entity.InventoryOpening{
		ID: "open-1", CompanyID: companyID, ProductID: productID,
		Date: day(1), QtyNative: dec("10"), SCEquivalent: dec("10"), TotalValue: dec("1000"),
	})
	require.NoError(t, err)
	require.NotNil(t, openings.openings[productID])

	// O checkpoint é o fold da abertura seguida do movimento, nunca só a abertura.
	b := balances.balances[balances.key(companyID, productID)]
	assert.True(t, b.SCEquivalent.Equal(dec("20")))
	assert.True(t, b.TotalValue.Equal(dec("2200")))
	assert.True(t, b.LastDate.Equal(day(5)), "a abertura não rebobina a data do checkpoint")
}

func TestSeedOpening_DatadaAposMovimentoRejeita(t *testing.T) {
	uc, _, balances, _ := buildUseCaseSemAbertura()

	_, err := uc.ApplyMovement(context.Background(), movement(entity.DirectionIN, day(5), "10", "1200"))
	require.NoError(t, err)
	before := *balances.balances[balances.key(companyID, productID)]

	err = uc.SeedOpening(context.Background(), &entity.InventoryOpening{
		ID: "open-2", CompanyID: companyID, ProductID: productID,
		Date: day(7), QtyNative: dec("1"), SCEquivalent: dec("1"), TotalValue: dec("100"),
	})
	require.ErrorIs(t, err, domain.ErrOutOfOrder)

	after := balances.balances[balances.key(companyID, productID)]
	assert.True(t, before.SCEquivalent.Equal(after.SCEquivalent), "saldo intacto após rejeição")
	assert.True(t, before.TotalValue.Equal(after.TotalValue))
}

func TestSeedOpening_AberturaDuplicadaRejeita(t *testing.T) {
	uc, _, _ := buildUseCase()
	err := uc.SeedOpening(context.Background(), &entity.InventoryOpening{
		ID: "open-9", CompanyID: companyID, ProductID: productID,
		Date: day(1), QtyNative: dec("1"), SCEquivalent: dec("1"), TotalValue: dec("100"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
