package ledger

import (
	"context"

	"github.com/cafeplanalto/fiscal-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de banco, passando
// repositórios atados a essa transação. Garante a disciplina de escritor
// único por produto: o saldo é lido com FOR UPDATE e gravado na mesma tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.ClassifiedMovementRepository,
		balanceRepo repository.ProductBalanceRepository,
		openingRepo repository.InventoryOpeningRepository,
	) error) error
}
