package dre

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cafeplanalto/fiscal-api/internal/application/dto"
	"github.com/cafeplanalto/fiscal-api/internal/domain"
	"github.com/cafeplanalto/fiscal-api/internal/domain/repository"
)

// UseCase monta a demonstração do resultado (DRE) de um período: somas
// assinadas por categoria dos movimentos incluídos, deduções manuais que
// sobrepõem o período e contagem de movimentos não classificados. Somente
// leitura; nunca bloqueia escritores do ledger.
type UseCase struct {
	report     repository.DREReportRepository
	deductions repository.DREDeductionRepository
}

// NewUseCase constrói o agregador.
func NewUseCase(report repository.DREReportRepository, deductions repository.DREDeductionRepository) *UseCase {
	return &UseCase{report: report, deductions: deductions}
}

// Compute calcula o DRE de [start, end]. O sinal de cada movimento vem
// gravado na classificação; aqui só se agrega e soma. Deduções que cruzam a
// borda do período entram por inteiro (sobreposição, sem rateio). Movimentos
// não classificados são contados para expor lacuna, não omitidos em silêncio.
func (uc *UseCase) Compute(ctx context.Context, companyID string, start, end time.Time) (*dto.DREReportResponse, error) {
	if companyID == "" || start.IsZero() || end.IsZero() || end.Before(start) {
		return nil, domain.ErrInvalidInput
	}

	categories, err := uc.report.SumByCategory(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}
	deductions, err := uc.deductions.ListOverlapping(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}
	unclassified, err := uc.report.CountUnclassified(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}

	out := &dto.DREReportResponse{
		StartDate:         start,
		EndDate:           end,
		Categories:        make([]dto.DRECategoryResponse, 0, len(categories)),
		Deductions:        make([]dto.DeductionResponse, 0, len(deductions)),
		UnclassifiedCount: unclassified,
	}

	net := decimal.Zero
	for _, c := range categories {
		out.Categories = append(out.Categories, dto.DRECategoryResponse{
			Category: c.Category,
			Label:    c.Label,
			Total:    c.Total,
		})
		net = net.Add(c.Total)
	}
	for _, d := range deductions {
		out.Deductions = append(out.Deductions, dto.DeductionResponse{
			ID:        d.ID,
			Title:     d.Title,
			StartDate: d.StartDate,
			EndDate:   d.EndDate,
			Amount:    d.Amount,
		})
		net = net.Sub(d.Amount)
	}
	out.Net = net
	return out, nil
}
