package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cafeplanalto/fiscal-api/internal/domain"
	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
)

// Flag sinaliza condição de qualidade de dado detectada ao aplicar um movimento.
type Flag string

// FlagNegativeInventory: a saída levou o saldo em sacas abaixo de zero. O
// movimento é aceito (o documento de entrada pode chegar depois); a flag é
// sinal para correção upstream, não bloqueio.
const FlagNegativeInventory Flag = "NEGATIVE_INVENTORY"

// Balance é o estado imutável do fold para um produto. UnitCost deriva dos
// totais acumulados e nunca é campo mutável separado.
type Balance struct {
	QtyNative    decimal.Decimal
	SCEquivalent decimal.Decimal
	TotalValue   decimal.Decimal
	LastDate     time.Time
}

// UnitCost é o custo médio ponderado por saca equivalente (zero sem saldo).
func (b Balance) UnitCost() decimal.Decimal {
	if b.SCEquivalent.IsZero() {
		return decimal.Zero
	}
	return b.TotalValue.Div(b.SCEquivalent)
}

// Movement é um movimento já classificado e custeado, pronto para o fold.
// SCEquivalent vem convertido pela camada de conversão usando a unidade do
// produto; TotalValue só é considerado nas entradas (saídas saem ao custo médio).
type Movement struct {
	Direction    string // entity.DirectionIN | entity.DirectionOUT
	Date         time.Time
	QtyNative    decimal.Decimal
	SCEquivalent decimal.Decimal
	TotalValue   decimal.Decimal
}

// Seed inicializa o estado a partir da abertura manual; sem abertura, zeros.
func Seed(opening *entity.InventoryOpening) Balance {
	if opening == nil {
		return Balance{
			QtyNative:    decimal.Zero,
			SCEquivalent: decimal.Zero,
			TotalValue:   decimal.Zero,
		}
	}
	return Balance{
		QtyNative:    opening.QtyNative,
		SCEquivalent: opening.SCEquivalent,
		TotalValue:   opening.TotalValue,
		LastDate:     opening.Date,
	}
}

// Apply executa um passo do fold e devolve o novo estado.
//
// Entrada: soma quantidade e valor; o custo médio se recompõe sozinho porque
// deriva dos acumulados (método da média ponderada).
// Saída: baixa quantidade e baixa valor a movedSC × custo médio *anterior* ao
// movimento, realizando o custo dos vendidos na média, não no preço original.
//
// Movimento datado antes de LastDate viola a ordem do fold: rejeitado com
// domain.ErrOutOfOrder (a correção é replay desde a abertura).
func Apply(b Balance, m Movement) (Balance, []Flag, error) {
	if m.Direction != entity.DirectionIN && m.Direction != entity.DirectionOUT {
		return b, nil, domain.ErrInvalidInput
	}
	if !b.LastDate.IsZero() && m.Date.Before(b.LastDate) {
		return b, nil, domain.ErrOutOfOrder
	}

	next := b
	next.LastDate = m.Date
	var flags []Flag

	switch m.Direction {
	case entity.DirectionIN:
		next.QtyNative = b.QtyNative.Add(m.QtyNative)
		next.SCEquivalent = b.SCEquivalent.Add(m.SCEquivalent)
		next.TotalValue = b.TotalValue.Add(m.TotalValue)
	case entity.DirectionOUT:
		cost := b.UnitCost() // custo médio pré-movimento
		next.QtyNative = b.QtyNative.Sub(m.QtyNative)
		next.SCEquivalent = b.SCEquivalent.Sub(m.SCEquivalent)
		next.TotalValue = b.TotalValue.Sub(m.SCEquivalent.Mul(cost))
		if next.SCEquivalent.IsNegative() {
			flags = append(flags, FlagNegativeInventory)
		}
	}
	return next, flags, nil
}

// Replay refaz o fold do zero: abertura seguida dos movimentos em ordem não
// decrescente de data. Determinístico e idempotente; verifica ctx entre
// passos para permitir cancelamento em reprocessamentos longos.
func Replay(ctx context.Context, opening *entity.InventoryOpening, movements []Movement) (Balance, []Flag, error) {
	b := Seed(opening)
	var all []Flag
	for _, m := range movements {
		if err := ctx.Err(); err != nil {
			return b, all, err
		}
		next, flags, err := Apply(b, m)
		if err != nil {
			return b, all, err
		}
		b = next
		all = append(all, flags...)
	}
	return b, all, nil
}
