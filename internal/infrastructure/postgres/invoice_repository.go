package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cafeplanalto/fiscal-api/internal/domain"
	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
	"github.com/cafeplanalto/fiscal-api/internal/domain/repository"
)

var (
	_ repository.InvoiceRepository                   = (*InvoiceRepo)(nil)
	_ repository.CteRepository                       = (*CteRepo)(nil)
	_ repository.InvoiceItemProductMappingRepository = (*InvoiceItemProductMappingRepo)(nil)
)

// InvoiceRepo implementação do port InvoiceRepository.
type InvoiceRepo struct {
	pool *pgxpool.Pool
}

func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepo {
	return &InvoiceRepo{pool: pool}
}

const invoiceColumns = `id, company_id, access_key, number, series, issuer_cnpj, recipient_cnpj,
	nat_op, date, total_value, self_issued_entrada, created_at`

// CreateWithItems persiste cabeça e itens da nota na mesma transação.
func (r *InvoiceRepo) CreateWithItems(ctx context.Context, invoice *entity.Invoice, items []*entity.InvoiceItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	headQuery := `
		INSERT INTO invoices (id, company_id, access_key, number, series, issuer_cnpj, recipient_cnpj,
			nat_op, date, total_value, self_issued_entrada, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = tx.Exec(ctx, headQuery,
		invoice.ID, invoice.CompanyID, invoice.AccessKey, invoice.Number, invoice.Series,
		invoice.IssuerCNPJ, invoice.RecipientCNPJ, invoice.NatOp, invoice.Date,
		invoice.TotalValue, invoice.SelfIssuedEntrada, invoice.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}

	itemQuery := `
		INSERT INTO invoice_items (id, invoice_id, line_number, cfop_code, ncm, descricao, unit, qty, total_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, item := range items {
		_, err = tx.Exec(ctx, itemQuery,
			item.ID, item.InvoiceID, item.LineNumber, item.CfopCode, item.NCM,
			item.Descricao, item.Unit, item.Qty, item.TotalValue, item.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item %d: %w", item.LineNumber, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *InvoiceRepo) GetByAccessKey(ctx context.Context, companyID, accessKey string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1 AND access_key = $2`
	return r.scanOne(r.pool.QueryRow(ctx, query, companyID, accessKey))
}

func (r *InvoiceRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE company_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.CompanyID, &inv.AccessKey, &inv.Number, &inv.Series,
			&inv.IssuerCNPJ, &inv.RecipientCNPJ, &inv.NatOp, &inv.Date,
			&inv.TotalValue, &inv.SelfIssuedEntrada, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

func (r *InvoiceRepo) scanOne(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(&inv.ID, &inv.CompanyID, &inv.AccessKey, &inv.Number, &inv.Series,
		&inv.IssuerCNPJ, &inv.RecipientCNPJ, &inv.NatOp, &inv.Date,
		&inv.TotalValue, &inv.SelfIssuedEntrada, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// CteRepo implementação do port CteRepository.
type CteRepo struct {
	pool *pgxpool.Pool
}

func NewCteRepository(pool *pgxpool.Pool) *CteRepo {
	return &CteRepo{pool: pool}
}

const cteColumns = `id, company_id, access_key, number, issuer_cnpj, recipient_cnpj, cfop_code, nat_op, date, total_value, created_at`

func (r *CteRepo) Create(ctx context.Context, cte *entity.Cte) error {
	query := `
		INSERT INTO ctes (id, company_id, access_key, number, issuer_cnpj, recipient_cnpj, cfop_code, nat_op, date, total_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(ctx, query,
		cte.ID, cte.CompanyID, cte.AccessKey, cte.Number, cte.IssuerCNPJ, cte.RecipientCNPJ,
		cte.CfopCode, cte.NatOp, cte.Date, cte.TotalValue, cte.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cte: %w", err)
	}
	return nil
}

func (r *CteRepo) GetByAccessKey(ctx context.Context, companyID, accessKey string) (*entity.Cte, error) {
	query := `SELECT ` + cteColumns + ` FROM ctes WHERE company_id = $1 AND access_key = $2`
	var c entity.Cte
	err := r.pool.QueryRow(ctx, query, companyID, accessKey).Scan(
		&c.ID, &c.CompanyID, &c.AccessKey, &c.Number, &c.IssuerCNPJ, &c.RecipientCNPJ,
		&c.CfopCode, &c.NatOp, &c.Date, &c.TotalValue, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cte: %w", err)
	}
	return &c, nil
}

func (r *CteRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Cte, error) {
	query := `SELECT ` + cteColumns + ` FROM ctes
		WHERE company_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ctes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cte
	for rows.Next() {
		var c entity.Cte
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.AccessKey, &c.Number, &c.IssuerCNPJ,
			&c.RecipientCNPJ, &c.CfopCode, &c.NatOp, &c.Date, &c.TotalValue, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cte: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// InvoiceItemProductMappingRepo implementação do port de mapeamentos item -> produto.
type InvoiceItemProductMappingRepo struct {
	pool *pgxpool.Pool
}

func NewInvoiceItemProductMappingRepository(pool *pgxpool.Pool) *InvoiceItemProductMappingRepo {
	return &InvoiceItemProductMappingRepo{pool: pool}
}

// Upsert grava o vínculo; um novo mapeamento para o mesmo item substitui o anterior.
func (r *InvoiceItemProductMappingRepo) Upsert(ctx context.Context, mapping *entity.InvoiceItemProductMapping) error {
	query := `
		INSERT INTO invoice_item_product_mappings (id, company_id, invoice_item_id, product_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id, invoice_item_id) DO UPDATE SET product_id = EXCLUDED.product_id`
	_, err := r.pool.Exec(ctx, query,
		mapping.ID, mapping.CompanyID, mapping.InvoiceItemID, mapping.ProductID, mapping.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert mapping: %w", err)
	}
	return nil
}

func (r *InvoiceItemProductMappingRepo) GetByItem(ctx context.Context, companyID, invoiceItemID string) (*entity.InvoiceItemProductMapping, error) {
	query := `SELECT id, company_id, invoice_item_id, product_id, created_at
		FROM invoice_item_product_mappings WHERE company_id = $1 AND invoice_item_id = $2`
	var m entity.InvoiceItemProductMapping
	err := r.pool.QueryRow(ctx, query, companyID, invoiceItemID).Scan(
		&m.ID, &m.CompanyID, &m.InvoiceItemID, &m.ProductID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mapping: %w", err)
	}
	return &m, nil
}
