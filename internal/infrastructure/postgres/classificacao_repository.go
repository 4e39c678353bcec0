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
	_ repository.NaturezaOperacaoRepository      = (*NaturezaOperacaoRepo)(nil)
	_ repository.CfopRuleRepository              = (*CfopRuleRepo)(nil)
	_ repository.NaturezaOperacaoAliasRepository = (*NaturezaOperacaoAliasRepo)(nil)
)

// NaturezaOperacaoRepo implementação do port NaturezaOperacaoRepository.
type NaturezaOperacaoRepo struct {
	pool *pgxpool.Pool
}

func NewNaturezaOperacaoRepository(pool *pgxpool.Pool) *NaturezaOperacaoRepo {
	return &NaturezaOperacaoRepo{pool: pool}
}

const naturezaColumns = `id, company_id, name, dre_include, dre_category, dre_label, dre_sign, created_at, updated_at`

func (r *NaturezaOperacaoRepo) Create(ctx context.Context, nat *entity.NaturezaOperacao) error {
	query := `
		INSERT INTO naturezas_operacao (id, company_id, name, dre_include, dre_category, dre_label, dre_sign, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		nat.ID, nat.CompanyID, nat.Name, nat.DREInclude, nat.DRECategory,
		nat.DRELabel, nat.DRESign, nat.CreatedAt, nat.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert natureza: %w", err)
	}
	return nil
}

func (r *NaturezaOperacaoRepo) GetByID(ctx context.Context, id string) (*entity.NaturezaOperacao, error) {
	query := `SELECT ` + naturezaColumns + ` FROM naturezas_operacao WHERE id = $1`
	var n entity.NaturezaOperacao
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.CompanyID, &n.Name, &n.DREInclude, &n.DRECategory,
		&n.DRELabel, &n.DRESign, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get natureza: %w", err)
	}
	return &n, nil
}

func (r *NaturezaOperacaoRepo) Update(ctx context.Context, nat *entity.NaturezaOperacao) error {
	query := `
		UPDATE naturezas_operacao
		SET name = $1, dre_include = $2, dre_category = $3, dre_label = $4, dre_sign = $5, updated_at = $6
		WHERE id = $7`
	_, err := r.pool.Exec(ctx, query,
		nat.Name, nat.DREInclude, nat.DRECategory, nat.DRELabel, nat.DRESign,
		nat.UpdatedAt, nat.ID,
	)
	if err != nil {
		return fmt.Errorf("update natureza: %w", err)
	}
	return nil
}

func (r *NaturezaOperacaoRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.NaturezaOperacao, error) {
	query := `SELECT ` + naturezaColumns + ` FROM naturezas_operacao WHERE company_id = $1 ORDER BY name`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list naturezas: %w", err)
	}
	defer rows.Close()
	var list []*entity.NaturezaOperacao
	for rows.Next() {
		var n entity.NaturezaOperacao
		if err := rows.Scan(&n.ID, &n.CompanyID, &n.Name, &n.DREInclude, &n.DRECategory,
			&n.DRELabel, &n.DRESign, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan natureza: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// CfopRuleRepo implementação do port CfopRuleRepository.
type CfopRuleRepo struct {
	pool *pgxpool.Pool
}

func NewCfopRuleRepository(pool *pgxpool.Pool) *CfopRuleRepo {
	return &CfopRuleRepo{pool: pool}
}

const cfopRuleColumns = `id, company_id, cfop_code, direction, natureza_operacao_id, created_at, updated_at`

func (r *CfopRuleRepo) Create(ctx context.Context, rule *entity.CfopRule) error {
	query := `
		INSERT INTO cfop_rules (id, company_id, cfop_code, direction, natureza_operacao_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		rule.ID, rule.CompanyID, rule.CfopCode, rule.Direction,
		rule.NaturezaOperacaoID, rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cfop rule: %w", err)
	}
	return nil
}

func (r *CfopRuleRepo) Find(ctx context.Context, companyID, cfopCode, direction string) (*entity.CfopRule, error) {
	query := `SELECT ` + cfopRuleColumns + ` FROM cfop_rules
		WHERE company_id = $1 AND cfop_code = $2 AND direction = $3`
	var c entity.CfopRule
	err := r.pool.QueryRow(ctx, query, companyID, cfopCode, direction).Scan(
		&c.ID, &c.CompanyID, &c.CfopCode, &c.Direction, &c.NaturezaOperacaoID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find cfop rule: %w", err)
	}
	return &c, nil
}

func (r *CfopRuleRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.CfopRule, error) {
	query := `SELECT ` + cfopRuleColumns + ` FROM cfop_rules WHERE company_id = $1 ORDER BY cfop_code, direction`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list cfop rules: %w", err)
	}
	defer rows.Close()
	var list []*entity.CfopRule
	for rows.Next() {
		var c entity.CfopRule
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.CfopCode, &c.Direction,
			&c.NaturezaOperacaoID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cfop rule: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *CfopRuleRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cfop_rules WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete cfop rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NaturezaOperacaoAliasRepo implementação do port NaturezaOperacaoAliasRepository.
type NaturezaOperacaoAliasRepo struct {
	pool *pgxpool.Pool
}

func NewNaturezaOperacaoAliasRepository(pool *pgxpool.Pool) *NaturezaOperacaoAliasRepo {
	return &NaturezaOperacaoAliasRepo{pool: pool}
}

const aliasColumns = `id, company_id, nat_op, cfop_code, direction, self_issued_entrada, natureza_operacao_id, created_at, updated_at`

func (r *NaturezaOperacaoAliasRepo) Create(ctx context.Context, alias *entity.NaturezaOperacaoAlias) error {
	query := `
		INSERT INTO natureza_operacao_aliases (id, company_id, nat_op, cfop_code, direction, self_issued_entrada, natureza_operacao_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		alias.ID, alias.CompanyID, alias.NatOp, alias.CfopCode, alias.Direction,
		alias.SelfIssuedEntrada, alias.NaturezaOperacaoID, alias.CreatedAt, alias.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAmbiguousAlias
		}
		return fmt.Errorf("insert alias: %w", err)
	}
	return nil
}

func (r *NaturezaOperacaoAliasRepo) Find(ctx context.Context, companyID, natOp, cfopCode, direction string, selfIssuedEntrada bool) (*entity.NaturezaOperacaoAlias, error) {
	query := `SELECT ` + aliasColumns + ` FROM natureza_operacao_aliases
		WHERE company_id = $1 AND nat_op = $2 AND cfop_code = $3 AND direction = $4 AND self_issued_entrada = $5`
	var a entity.NaturezaOperacaoAlias
	err := r.pool.QueryRow(ctx, query, companyID, natOp, cfopCode, direction, selfIssuedEntrada).Scan(
		&a.ID, &a.CompanyID, &a.NatOp, &a.CfopCode, &a.Direction,
		&a.SelfIssuedEntrada, &a.NaturezaOperacaoID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find alias: %w", err)
	}
	return &a, nil
}

func (r *NaturezaOperacaoAliasRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.NaturezaOperacaoAlias, error) {
	query := `SELECT ` + aliasColumns + ` FROM natureza_operacao_aliases WHERE company_id = $1 ORDER BY nat_op, cfop_code`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list aliases: %w", err)
	}
	defer rows.Close()
	var list []*entity.NaturezaOperacaoAlias
	for rows.Next() {
		var a entity.NaturezaOperacaoAlias
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.NatOp, &a.CfopCode, &a.Direction,
			&a.SelfIssuedEntrada, &a.NaturezaOperacaoID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan alias: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *NaturezaOperacaoAliasRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM natureza_operacao_aliases WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete alias: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
