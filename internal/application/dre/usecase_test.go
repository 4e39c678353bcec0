package dre_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafeplanalto/fiscal-api/internal/application/dre"
	"github.com/cafeplanalto/fiscal-api/internal/domain"
	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
	"github.com/cafeplanalto/fiscal-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(y, m, d int) time.Time { return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC) }

type fakeReportRepo struct {
	totals       []repository.DRECategoryTotal
	unclassified int
}

func (f *fakeReportRepo) SumByCategory(_ context.Context, _ string, _, _ time.Time) ([]repository.DRECategoryTotal, error) {
	return f.totals, nil
}

func (f *fakeReportRepo) CountUnclassified(_ context.Context, _ string, _, _ time.Time) (int, error) {
	return f.unclassified, nil
}

type fakeDeductionRepo struct {
	all []*entity.DREDeduction
}

func (f *fakeDeductionRepo) Create(context.Context, *entity.DREDeduction) error { return nil }

func (f *fakeDeductionRepo) ListByCompany(context.Context, string) ([]*entity.DREDeduction, error) {
	return f.all, nil
}

// ListOverlapping filtra em memória com a mesma regra da consulta SQL.
func (f *fakeDeductionRepo) ListOverlapping(_ context.Context, _ string, start, end time.Time) ([]*entity.DREDeduction, error) {
	var out []*entity.DREDeduction
	for _, d := range f.all {
		if d.Overlaps(start, end) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDeductionRepo) Delete(context.Context, string, string) error { return nil }

func TestCompute_SomaAssinadaMenosDeducoes(t *testing.T) {
	report := &fakeReportRepo{
		totals: []repository.DRECategoryTotal{
			{Category: "receita_bruta", Label: "Venda de café torrado", Total: dec("10000")},
			{Category: "custo_materia_prima", Label: "Compra de café cru", Total: dec("-4000")},
		},
		unclassified: 3,
	}
	deductions := &fakeDeductionRepo{all: []*entity.DREDeduction{
		{ID: "d1", Title: "Impostos s/ venda", StartDate: date(2025, 2, 1), EndDate: date(2025, 2, 28), Amount: dec("1200")},
	}}
	uc := dre.NewUseCase(report, deductions)

	got, err := uc.Compute(context.Background(), "emp-1", date(2025, 2, 1), date(2025, 2, 28))
	require.NoError(t, err)
	require.Len(t, got.Categories, 2)
	require.Len(t, got.Deductions, 1)
	// net = 10000 - 4000 - 1200
	assert.True(t, dec("4800").Equal(got.Net), "net=%s", got.Net)
	assert.Equal(t, 3, got.UnclassifiedCount)
}

// Dedução que cruza a borda do período entra por inteiro, sem rateio.
func TestCompute_DeducaoSobrepostaEntraInteira(t *testing.T) {
	deductions := &fakeDeductionRepo{all: []*entity.DREDeduction{
		{ID: "d1", Title: "Frete contratado", StartDate: date(2025, 1, 15), EndDate: date(2025, 2, 15), Amount: dec("500")},
		{ID: "d2", Title: "Fora do período", StartDate: date(2025, 3, 1), EndDate: date(2025, 3, 31), Amount: dec("999")},
	}}
	uc := dre.NewUseCase(&fakeReportRepo{}, deductions)

	got, err := uc.Compute(context.Background(), "emp-1", date(2025, 2, 1), date(2025, 2, 28))
	require.NoError(t, err)
	require.Len(t, got.Deductions, 1)
	assert.Equal(t, "d1", got.Deductions[0].ID)
	assert.True(t, dec("500").Equal(got.Deductions[0].Amount))
	assert.True(t, dec("-500").Equal(got.Net), "net=%s", got.Net)
}

func TestCompute_PeriodoSemMovimento(t *testing.T) {
	uc := dre.NewUseCase(&fakeReportRepo{}, &fakeDeductionRepo{})
	got, err := uc.Compute(context.Background(), "emp-1", date(2025, 2, 1), date(2025, 2, 28))
	require.NoError(t, err)
	assert.Empty(t, got.Categories)
	assert.Empty(t, got.Deductions)
	assert.True(t, got.Net.IsZero())
	assert.Zero(t, got.UnclassifiedCount)
}

func TestCompute_EntradaInvalida(t *testing.T) {
	uc := dre.NewUseCase(&fakeReportRepo{}, &fakeDeductionRepo{})
	_, err := uc.Compute(context.Background(), "", date(2025, 2, 1), date(2025, 2, 28))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Compute(context.Background(), "emp-1", date(2025, 2, 28), date(2025, 2, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
