package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
	"github.com/cafeplanalto/fiscal-api/internal/domain/repository"
)

var _ repository.ProductBalanceRepository = (*ProductBalanceRepo)(nil)

// ProductBalanceRepo implementação do port ProductBalanceRepository sobre
// PostgreSQL. Recebe um Querier para poder rodar tanto no pool quanto dentro
// da transação aberta pelo TxRunner (caso do GetForUpdate + Upsert).
type ProductBalanceRepo struct {
	q Querier
}

// NewProductBalanceRepository constrói o adaptador de saldos.
func NewProductBalanceRepository(q Querier) *ProductBalanceRepo {
	return &ProductBalanceRepo{q: q}
}

const balanceColumns = `company_id, product_id, qty_native, sc_equivalent, total_value, last_date, updated_at`

// Get obtém o saldo corrente do produto; (nil, nil) quando não há checkpoint.
func (r *ProductBalanceRepo) Get(ctx context.Context, companyID, productID string) (*entity.ProductBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM product_balances WHERE company_id = $1 AND product_id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, companyID, productID))
}

// GetForUpdate obtém o saldo bloqueando a linha até o fim da transação.
// Serializa os escritores de um mesmo produto.
func (r *ProductBalanceRepo) GetForUpdate(ctx context.Context, companyID, productID string) (*entity.ProductBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM product_balances
		WHERE company_id = $1 AND product_id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, companyID, productID))
}

// Upsert grava o checkpoint do fold.
func (r *ProductBalanceRepo) Upsert(ctx context.Context, balance *entity.ProductBalance) error {
	query := `
		INSERT INTO product_balances (company_id, product_id, qty_native, sc_equivalent, total_value, last_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (company_id, product_id) DO UPDATE SET
			qty_native = EXCLUDED.qty_native,
			sc_equivalent = EXCLUDED.sc_equivalent,
			total_value = EXCLUDED.total_value,
			last_date = EXCLUDED.last_date,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		balance.CompanyID, balance.ProductID, balance.QtyNative, balance.SCEquivalent,
		balance.TotalValue, balance.LastDate, balance.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}

// ListByCompany lista os saldos da empresa com paginação.
func (r *ProductBalanceRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.ProductBalance, error) {
	query := `
		SELECT ` + balanceColumns + ` FROM product_balances
		WHERE company_id = $1 ORDER BY product_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductBalance
	for rows.Next() {
		var b entity.ProductBalance
		if err := rows.Scan(&b.CompanyID, &b.ProductID, &b.QtyNative, &b.SCEquivalent,
			&b.TotalValue, &b.LastDate, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

func (r *ProductBalanceRepo) scanOne(row pgx.Row) (*entity.ProductBalance, error) {
	var b entity.ProductBalance
	err := row.Scan(&b.CompanyID, &b.ProductID, &b.QtyNative, &b.SCEquivalent,
		&b.TotalValue, &b.LastDate, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}
