package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
	"github.com/cafeplanalto/fiscal-api/internal/domain/repository"
)

var _ repository.ClassifiedMovementRepository = (*ClassifiedMovementRepo)(nil)

// ClassifiedMovementRepo implementação do port ClassifiedMovementRepository
// sobre PostgreSQL. Recebe um Querier para rodar no pool ou dentro da
// transação do TxRunner.
type ClassifiedMovementRepo struct {
	q Querier
}

// NewClassifiedMovementRepository constrói o adaptador de movimentos.
func NewClassifiedMovementRepository(q Querier) *ClassifiedMovementRepo {
	return &ClassifiedMovementRepo{q: q}
}

const movementColumns = `id, company_id, product_id, source_document_id, source_item_id,
	cfop_code, direction, nat_op, self_issued_entrada, natureza_operacao_id,
	dre_include, dre_category, dre_label, dre_sign, date, qty_native, unit,
	sc_equivalent, total_value, status, created_at, updated_at`

// Create persiste um movimento classificado (snapshot da resolução incluso).
func (r *ClassifiedMovementRepo) Create(ctx context.Context, mov *entity.ClassifiedMovement) error {
	query := `
		INSERT INTO classified_movements (
			id, company_id, product_id, source_document_id, source_item_id,
			cfop_code, direction, nat_op, self_issued_entrada, natureza_operacao_id,
			dre_include, dre_category, dre_label, dre_sign, date, qty_native, unit,
			sc_equivalent, total_value, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(ctx, query,
		mov.ID, mov.CompanyID, nullIfEmpty(mov.ProductID), mov.SourceDocumentID, mov.SourceItemID,
		mov.CfopCode, mov.Direction, mov.NatOp, mov.SelfIssuedEntrada, nullIfEmpty(mov.NaturezaOperacaoID),
		mov.DREInclude, mov.DRECategory, mov.DRELabel, mov.DRESign, mov.Date, mov.QtyNative, mov.Unit,
		mov.SCEquivalent, mov.TotalValue, mov.Status, mov.CreatedAt, mov.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// UpdateStatus atualiza apenas o status de um movimento.
func (r *ClassifiedMovementRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE classified_movements SET status = $1, updated_at = now() WHERE id = $2`
	_, err := r.q.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update movement status: %w", err)
	}
	return nil
}

// UpdateClassification regrava o snapshot da resolução de um movimento
// existente junto com unidade, equivalência em sacas e status.
func (r *ClassifiedMovementRepo) UpdateClassification(ctx context.Context, mov *entity.ClassifiedMovement) error {
	query := `
		UPDATE classified_movements
		SET natureza_operacao_id = $1, dre_include = $2, dre_category = $3,
			dre_label = $4, dre_sign = $5, unit = $6, sc_equivalent = $7,
			status = $8, updated_at = now()
		WHERE id = $9`
	_, err := r.q.Exec(ctx, query,
		nullIfEmpty(mov.NaturezaOperacaoID), mov.DREInclude, mov.DRECategory,
		mov.DRELabel, mov.DRESign, mov.Unit, mov.SCEquivalent, mov.Status, mov.ID)
	if err != nil {
		return fmt.Errorf("update movement classification: %w", err)
	}
	return nil
}

// ListByProductOrdered devolve os movimentos aplicáveis de um produto em
// ordem crescente de data, desempatando por created_at para replay estável.
// Inclui os fora de ordem: o re-fold ordenado por data os integra.
func (r *ClassifiedMovementRepo) ListByProductOrdered(ctx context.Context, companyID, productID string) ([]*entity.ClassifiedMovement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM classified_movements
		WHERE company_id = $1 AND product_id = $2 AND status IN ($3, $4, $5)
		ORDER BY date ASC, created_at ASC`
	rows, err := r.q.Query(ctx, query, companyID, productID,
		entity.MovementStatusApplied, entity.MovementStatusNegative, entity.MovementStatusOutOfOrder)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return r.scanRows(rows)
}

// ListByCompany lista os movimentos da empresa, com filtro opcional de período.
func (r *ClassifiedMovementRepo) ListByCompany(ctx context.Context, companyID string, from, to *time.Time, limit, offset int) ([]*entity.ClassifiedMovement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM classified_movements
		WHERE company_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date DESC, created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, companyID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return r.scanRows(rows)
}

// ListUnclassified lista os movimentos pendentes de classificação.
func (r *ClassifiedMovementRepo) ListUnclassified(ctx context.Context, companyID string, limit, offset int) ([]*entity.ClassifiedMovement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM classified_movements
		WHERE company_id = $1 AND status = $2
		ORDER BY date ASC, created_at ASC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, entity.MovementStatusUnclassified, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list unclassified: %w", err)
	}
	return r.scanRows(rows)
}

func (r *ClassifiedMovementRepo) scanRows(rows pgx.Rows) ([]*entity.ClassifiedMovement, error) {
	defer rows.Close()
	var list []*entity.ClassifiedMovement
	for rows.Next() {
		var m entity.ClassifiedMovement
		var productID, naturezaID *string
		if err := rows.Scan(
			&m.ID, &m.CompanyID, &productID, &m.SourceDocumentID, &m.SourceItemID,
			&m.CfopCode, &m.Direction, &m.NatOp, &m.SelfIssuedEntrada, &naturezaID,
			&m.DREInclude, &m.DRECategory, &m.DRELabel, &m.DRESign, &m.Date, &m.QtyNative, &m.Unit,
			&m.SCEquivalent, &m.TotalValue, &m.Status, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if productID != nil {
			m.ProductID = *productID
		}
		if naturezaID != nil {
			m.NaturezaOperacaoID = *naturezaID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// nullIfEmpty converte string vazia em NULL para colunas opcionais com FK.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
