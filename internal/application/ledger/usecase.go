package ledger

import (
	"context"
	"time"

	"github.com/cafeplanalto/fiscal-api/internal/application/dto"
	"github.com/cafeplanalto/fiscal-api/internal/domain"
	"github.com/cafeplanalto/fiscal-api/internal/domain/conversao"
	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
	ledgerdom "github.com/cafeplanalto/fiscal-api/internal/domain/ledger"
	"github.com/cafeplanalto/fiscal-api/internal/domain/repository"
)

// UseCase aplica movimentos classificados ao saldo corrente e reprocessa o
// fold desde a abertura. Escritas no saldo de um produto são serializadas
// via transação + SELECT FOR UPDATE; produtos distintos seguem em paralelo.
type UseCase struct {
	txRunner TxRunner
	openings repository.InventoryOpeningRepository
	products repository.ProductRepository
	balances repository.ProductBalanceRepository
	moves    repository.ClassifiedMovementRepository
}

// NewUseCase constrói o caso de uso do ledger.
func NewUseCase(
	txRunner TxRunner,
	openings repository.InventoryOpeningRepository,
	products repository.ProductRepository,
	balances repository.ProductBalanceRepository,
	moves repository.ClassifiedMovementRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, openings: openings, products: products, balances: balances, moves: moves}
}

// ApplyMovement persiste o movimento classificado e atualiza o saldo do
// produto na mesma transação. Devolve as flags do passo do fold (saldo
// negativo é aceito e sinalizado). Movimento fora de ordem devolve
// domain.ErrOutOfOrder sem atualizar o saldo.
func (uc *UseCase) ApplyMovement(ctx context.Context, mov *entity.ClassifiedMovement) ([]ledgerdom.Flag, error) {
	return uc.apply(ctx, mov, false)
}

// ApplyReclassified aplica um movimento já persistido cuja classificação
// acabou de ser resolvida: mesma transação e trava do ApplyMovement, mas o
// registro existente é atualizado em vez de inserido.
func (uc *UseCase) ApplyReclassified(ctx context.Context, mov *entity.ClassifiedMovement) ([]ledgerdom.Flag, error) {
	return uc.apply(ctx, mov, true)
}

func (uc *UseCase) apply(ctx context.Context, mov *entity.ClassifiedMovement, existing bool) ([]ledgerdom.Flag, error) {
	if mov.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	var flags []ledgerdom.Flag
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.ClassifiedMovementRepository,
		balanceRepo repository.ProductBalanceRepository,
		_ repository.InventoryOpeningRepository,
	) error {
		// Bloqueia a linha do saldo: serializa escritores do mesmo produto.
		current, err := balanceRepo.GetForUpdate(ctx, mov.CompanyID, mov.ProductID)
		if err != nil {
			return err
		}
		state := balanceToState(current)

		next, stepFlags, err := ledgerdom.Apply(state, ledgerdom.Movement{
			Direction:    mov.Direction,
			Date:         mov.Date,
			QtyNative:    mov.QtyNative,
			SCEquivalent: mov.SCEquivalent,
			TotalValue:   mov.TotalValue,
		})
		if err != nil {
			return err
		}
		flags = stepFlags

		mov.Status = entity.MovementStatusApplied
		for _, f := range stepFlags {
			if f == ledgerdom.FlagNegativeInventory {
				mov.Status = entity.MovementStatusNegative
			}
		}
		if existing {
			if err := movRepo.UpdateClassification(ctx, mov); err != nil {
				return err
			}
		} else if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		return balanceRepo.Upsert(ctx, stateToBalance(mov.CompanyID, mov.ProductID, next))
	})
	if err != nil {
		return nil, err
	}
	return flags, nil
}

// SeedOpening registra a abertura e grava o checkpoint na mesma transação.
// Com movimentos já aplicados, o checkpoint vira o fold da abertura seguida
// deles em ordem de data; uma abertura datada depois de movimento existente
// é rejeitada com domain.ErrOutOfOrder e nada é persistido.
func (uc *UseCase) SeedOpening(ctx context.Context, opening *entity.InventoryOpening) error {
	return uc.txRunner.Run(ctx, func(
		movRepo repository.ClassifiedMovementRepository,
		balanceRepo repository.ProductBalanceRepository,
		openingRepo repository.InventoryOpeningRepository,
	) error {
		if err := openingRepo.Create(ctx, opening); err != nil {
			return err
		}
		if _, err := balanceRepo.GetForUpdate(ctx, opening.CompanyID, opening.ProductID); err != nil {
			return err
		}
		movs, err := movRepo.ListByProductOrdered(ctx, opening.CompanyID, opening.ProductID)
		if err != nil {
			return err
		}
		final, _, err := foldFrom(ctx, movRepo, opening, movs)
		if err != nil {
			return err
		}
		return balanceRepo.Upsert(ctx, stateToBalance(opening.CompanyID, opening.ProductID, final))
	})
}

// Replay refaz o fold do produto: abertura (se houver) seguida de todos os
// movimentos aplicáveis em ordem de data, e grava o saldo resultante.
// Movimentos rejeitados como fora de ordem entram pela ordenação e têm o
// status promovido. Idempotente; cancelável via ctx entre passos.
func (uc *UseCase) Replay(ctx context.Context, companyID, productID string) (*dto.ReplayResponse, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	opening, err := uc.openings.GetByProduct(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}

	var final ledgerdom.Balance
	var flags []ledgerdom.Flag
	var count int
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.ClassifiedMovementRepository,
		balanceRepo repository.ProductBalanceRepository,
		_ repository.InventoryOpeningRepository,
	) error {
		if _, err := balanceRepo.GetForUpdate(ctx, companyID, productID); err != nil {
			return err
		}
		movs, err := movRepo.ListByProductOrdered(ctx, companyID, productID)
		if err != nil {
			return err
		}
		count = len(movs)
		final, flags, err = foldFrom(ctx, movRepo, opening, movs)
		if err != nil {
			return err
		}
		return balanceRepo.Upsert(ctx, stateToBalance(companyID, productID, final))
	})
	if err != nil {
		return nil, err
	}

	out := &dto.ReplayResponse{
		ProductID:      productID,
		MovementsCount: count,
		SCEquivalent:   final.SCEquivalent,
		TotalValue:     final.TotalValue,
		UnitCost:       final.UnitCost(),
	}
	for _, f := range flags {
		out.Flags = append(out.Flags, string(f))
	}
	return out, nil
}

// foldFrom refaz o fold da abertura sobre os movimentos em ordem de data e
// promove status defasados: fora-de-ordem integrados viram APPLIED (ou
// NEGATIVE, conforme o passo) e negativos que o re-fold resolveu também.
func foldFrom(
	ctx context.Context,
	movRepo repository.ClassifiedMovementRepository,
	opening *entity.InventoryOpening,
	movs []*entity.ClassifiedMovement,
) (ledgerdom.Balance, []ledgerdom.Flag, error) {
	b := ledgerdom.Seed(opening)
	var all []ledgerdom.Flag
	for _, m := range movs {
		if err := ctx.Err(); err != nil {
			return b, all, err
		}
		next, stepFlags, err := ledgerdom.Apply(b, ledgerdom.Movement{
			Direction:    m.Direction,
			Date:         m.Date,
			QtyNative:    m.QtyNative,
			SCEquivalent: m.SCEquivalent,
			TotalValue:   m.TotalValue,
		})
		if err != nil {
			return b, all, err
		}
		b = next
		all = append(all, stepFlags...)

		status := entity.MovementStatusApplied
		for _, f := range stepFlags {
			if f == ledgerdom.FlagNegativeInventory {
				status = entity.MovementStatusNegative
			}
		}
		if m.Status != status {
			if err := movRepo.UpdateStatus(ctx, m.ID, status); err != nil {
				return b, all, err
			}
			m.Status = status
		}
	}
	return b, all, nil
}

// CurrentBalance devolve o saldo corrente do produto com custos derivados.
func (uc *UseCase) CurrentBalance(ctx context.Context, companyID, productID string) (*dto.BalanceResponse, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	balance, err := uc.balances.Get(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	return toBalanceResponse(productID, balance), nil
}

// ListBalances lista os saldos correntes da empresa.
func (uc *UseCase) ListBalances(ctx context.Context, companyID string, limit, offset int) (*dto.BalanceListResponse, error) {
	list, err := uc.balances.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BalanceResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBalanceResponse(b.ProductID, b))
	}
	return &dto.BalanceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func balanceToState(b *entity.ProductBalance) ledgerdom.Balance {
	if b == nil {
		return ledgerdom.Seed(nil)
	}
	return ledgerdom.Balance{
		QtyNative:    b.QtyNative,
		SCEquivalent: b.SCEquivalent,
		TotalValue:   b.TotalValue,
		LastDate:     b.LastDate,
	}
}

func stateToBalance(companyID, productID string, s ledgerdom.Balance) *entity.ProductBalance {
	return &entity.ProductBalance{
		CompanyID:    companyID,
		ProductID:    productID,
		QtyNative:    s.QtyNative,
		SCEquivalent: s.SCEquivalent,
		TotalValue:   s.TotalValue,
		LastDate:     s.LastDate,
		UpdatedAt:    time.Now(),
	}
}

func toBalanceResponse(productID string, b *entity.ProductBalance) *dto.BalanceResponse {
	if b == nil {
		b = &entity.ProductBalance{ProductID: productID}
	}
	out := &dto.BalanceResponse{
		ProductID:    productID,
		QtyNative:    b.QtyNative,
		SCEquivalent: b.SCEquivalent,
		TotalValue:   b.TotalValue,
		UnitCost:     b.UnitCost(),
		CostPerFardo: conversao.CostPerFardoDec(b.UnitCost()),
	}
	if !b.LastDate.IsZero() {
		d := b.LastDate
		out.LastDate = &d
	}
	return out
}
