package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cafeplanalto/fiscal-api/internal/domain"
	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
	"github.com/cafeplanalto/fiscal-api/internal/domain/repository"
)

var _ repository.InventoryOpeningRepository = (*InventoryOpeningRepo)(nil)

// InventoryOpeningRepo implementação do port InventoryOpeningRepository.
// Recebe um Querier para rodar no pool ou dentro da transação do TxRunner.
type InventoryOpeningRepo struct {
	q Querier
}

func NewInventoryOpeningRepository(q Querier) *InventoryOpeningRepo {
	return &InventoryOpeningRepo{q: q}
}

const openingColumns = `id, company_id, product_id, date, qty_native, sc_equivalent, total_value, unit_cost, created_at, updated_at`

// Create persiste uma abertura; índice único em (company_id, product_id)
// garante no máximo uma por produto.
func (r *InventoryOpeningRepo) Create(ctx context.Context, opening *entity.InventoryOpening) error {
	query := `
		INSERT INTO inventory_openings (id, company_id, product_id, date, qty_native, sc_equivalent, total_value, unit_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		opening.ID, opening.CompanyID, opening.ProductID, opening.Date,
		opening.QtyNative, opening.SCEquivalent, opening.TotalValue, opening.UnitCost,
		opening.CreatedAt, opening.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert opening: %w", err)
	}
	return nil
}

func (r *InventoryOpeningRepo) GetByProduct(ctx context.Context, companyID, productID string) (*entity.InventoryOpening, error) {
	query := `SELECT ` + openingColumns + ` FROM inventory_openings WHERE company_id = $1 AND product_id = $2`
	var o entity.InventoryOpening
	err := r.q.QueryRow(ctx, query, companyID, productID).Scan(
		&o.ID, &o.CompanyID, &o.ProductID, &o.Date, &o.QtyNative,
		&o.SCEquivalent, &o.TotalValue, &o.UnitCost, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get opening: %w", err)
	}
	return &o, nil
}

func (r *InventoryOpeningRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.InventoryOpening, error) {
	query := `SELECT ` + openingColumns + ` FROM inventory_openings WHERE company_id = $1 ORDER BY date`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list openings: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryOpening
	for rows.Next() {
		var o entity.InventoryOpening
		if err := rows.Scan(&o.ID, &o.CompanyID, &o.ProductID, &o.Date, &o.QtyNative,
			&o.SCEquivalent, &o.TotalValue, &o.UnitCost, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan opening: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

func (r *InventoryOpeningRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory_openings WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete opening: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
