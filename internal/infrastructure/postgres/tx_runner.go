package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	ledgerapp "github.com/cafeplanalto/fiscal-api/internal/application/ledger"
	"github.com/cafeplanalto/fiscal-api/internal/domain/repository"
)

var _ ledgerapp.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com repositórios atados à tx e faz
// Commit ou Rollback. É o envelope da escrita serializada do ledger: o
// FOR UPDATE do saldo vale até o fim da transação.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.ClassifiedMovementRepository,
	balanceRepo repository.ProductBalanceRepository,
	openingRepo repository.InventoryOpeningRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewClassifiedMovementRepository(tx)
	balanceRepo := NewProductBalanceRepository(tx)
	openingRepo := NewInventoryOpeningRepository(tx)

	if err := fn(movRepo, balanceRepo, openingRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
