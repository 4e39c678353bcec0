package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cafeplanalto/fiscal-api/internal/application/dto"
	"github.com/cafeplanalto/fiscal-api/internal/domain"
	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
	"github.com/cafeplanalto/fiscal-api/internal/domain/repository"
)

// DeductionUseCase administra as deduções manuais do DRE.
type DeductionUseCase struct {
	repo repository.DREDeductionRepository
}

// NewDeductionUseCase constrói o caso de uso.
func NewDeductionUseCase(repo repository.DREDeductionRepository) *DeductionUseCase {
	return &DeductionUseCase{repo: repo}
}

// Create cadastra uma dedução com vigência [StartDate, EndDate].
func (uc *DeductionUseCase) Create(ctx context.Context, companyID string, in dto.CreateDeductionRequest) (*dto.DeductionResponse, error) {
	if in.Title == "" || in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.EndDate.Before(in.StartDate) || !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	deduction := &entity.DREDeduction{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Title:     in.Title,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Amount:    in.Amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, deduction); err != nil {
		return nil, err
	}
	return toDeductionResponse(deduction), nil
}

// ListByCompany lista as deduções da empresa.
func (uc *DeductionUseCase) ListByCompany(ctx context.Context, companyID string) ([]dto.DeductionResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeductionResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *toDeductionResponse(d))
	}
	return out, nil
}

// Delete remove uma dedução da empresa.
func (uc *DeductionUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.repo.Delete(ctx, companyID, id)
}

func toDeductionResponse(d *entity.DREDeduction) *dto.DeductionResponse {
	return &dto.DeductionResponse{
		ID:        d.ID,
		Title:     d.Title,
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		Amount:    d.Amount,
	}
}
