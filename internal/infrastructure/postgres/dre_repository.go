package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
	"github.com/cafeplanalto/fiscal-api/internal/domain/repository"
)

var _ repository.DREReportRepository = (*DREReportRepo)(nil)

// DREReportRepo consultas read-only do agregador de DRE. A soma é assinada na
// consulta: o sinal ficou gravado no snapshot do movimento na classificação.
type DREReportRepo struct {
	pool *pgxpool.Pool
}

func NewDREReportRepository(pool *pgxpool.Pool) *DREReportRepo {
	return &DREReportRepo{pool: pool}
}

// SumByCategory agrega dre_sign * total_value por (categoria, rótulo) dos
// movimentos incluíveis no período. Movimentos UNCLASSIFIED ficam fora.
func (r *DREReportRepo) SumByCategory(ctx context.Context, companyID string, start, end time.Time) ([]repository.DRECategoryTotal, error) {
	query := `
		SELECT dre_category, dre_label, COALESCE(SUM(dre_sign * total_value), 0)
		FROM classified_movements
		WHERE company_id = $1
		  AND dre_include
		  AND status <> $2
		  AND date >= $3 AND date <= $4
		GROUP BY dre_category, dre_label
		ORDER BY dre_category, dre_label`
	rows, err := r.pool.Query(ctx, query, companyID, entity.MovementStatusUnclassified, start, end)
	if err != nil {
		return nil, fmt.Errorf("sum by category: %w", err)
	}
	defer rows.Close()
	var totals []repository.DRECategoryTotal
	for rows.Next() {
		var t repository.DRECategoryTotal
		if err := rows.Scan(&t.Category, &t.Label, &t.Total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// CountUnclassified conta os movimentos sem classificação no período.
func (r *DREReportRepo) CountUnclassified(ctx context.Context, companyID string, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM classified_movements
		WHERE company_id = $1 AND status = $2 AND date >= $3 AND date <= $4`
	var count int
	err := r.pool.QueryRow(ctx, query, companyID, entity.MovementStatusUnclassified, start, end).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unclassified: %w", err)
	}
	return count, nil
}
