package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cafeplanalto/fiscal-api/internal/domain"
	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
	"github.com/cafeplanalto/fiscal-api/internal/domain/repository"
)

var _ repository.DREDeductionRepository = (*DREDeductionRepo)(nil)

// DREDeductionRepo implementação do port DREDeductionRepository.
type DREDeductionRepo struct {
	pool *pgxpool.Pool
}

func NewDREDeductionRepository(pool *pgxpool.Pool) *DREDeductionRepo {
	return &DREDeductionRepo{pool: pool}
}

const deductionColumns = `id, company_id, title, start_date, end_date, amount, created_at, updated_at`

func (r *DREDeductionRepo) Create(ctx context.Context, deduction *entity.DREDeduction) error {
	query := `
		INSERT INTO dre_deductions (id, company_id, title, start_date, end_date, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		deduction.ID, deduction.CompanyID, deduction.Title,
		deduction.StartDate, deduction.EndDate, deduction.Amount,
		deduction.CreatedAt, deduction.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deduction: %w", err)
	}
	return nil
}

func (r *DREDeductionRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.DREDeduction, error) {
	query := `SELECT ` + deductionColumns + ` FROM dre_deductions WHERE company_id = $1 ORDER BY start_date`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list deductions: %w", err)
	}
	return r.scanRows(rows)
}

// ListOverlapping devolve as deduções cuja vigência cruza [start, end].
// Sobreposição, não contenção: start_date <= fim e end_date >= início.
func (r *DREDeductionRepo) ListOverlapping(ctx context.Context, companyID string, start, end time.Time) ([]*entity.DREDeduction, error) {
	query := `SELECT ` + deductionColumns + ` FROM dre_deductions
		WHERE company_id = $1 AND start_date <= $2 AND end_date >= $3
		ORDER BY start_date`
	rows, err := r.pool.Query(ctx, query, companyID, end, start)
	if err != nil {
		return nil, fmt.Errorf("list overlapping deductions: %w", err)
	}
	return r.scanRows(rows)
}

func (r *DREDeductionRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM dre_deductions WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete deduction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DREDeductionRepo) scanRows(rows pgx.Rows) ([]*entity.DREDeduction, error) {
	defer rows.Close()
	var list []*entity.DREDeduction
	for rows.Next() {
		var d entity.DREDeduction
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.Title, &d.StartDate, &d.EndDate,
			&d.Amount, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan deduction: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
