package importacao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cafeplanalto/fiscal-api/internal/application/dto"
	ledgerapp "github.com/cafeplanalto/fiscal-api/internal/application/ledger"
	"github.com/cafeplanalto/fiscal-api/internal/domain"
	"github.com/cafeplanalto/fiscal-api/internal/domain/classificacao"
	"github.com/cafeplanalto/fiscal-api/internal/domain/conversao"
	"github.com/cafeplanalto/fiscal-api/internal/domain/entity"
	ledgerdom "github.com/cafeplanalto/fiscal-api/internal/domain/ledger"
	"github.com/cafeplanalto/fiscal-api/internal/domain/repository"
	"github.com/cafeplanalto/fiscal-api/pkg/logger"
)

// UseCase ingere documentos fiscais normalizados: persiste o documento,
// classifica cada linha pela cadeia alias -> regra CFOP e aplica ao ledger.
// Cada linha tem desfecho independente; uma linha ruim nunca aborta o lote.
type UseCase struct {
	resolver *classificacao.Resolver
	invoices repository.InvoiceRepository
	ctes     repository.CteRepository
	mappings repository.InvoiceItemProductMappingRepository
	products repository.ProductRepository
	moves    repository.ClassifiedMovementRepository
	ledger   *ledgerapp.UseCase
	log      *logger.Logger
}

// NewUseCase constrói o caso de uso de importação.
func NewUseCase(
	resolver *classificacao.Resolver,
	invoices repository.InvoiceRepository,
	ctes repository.CteRepository,
	mappings repository.InvoiceItemProductMappingRepository,
	products repository.ProductRepository,
	moves repository.ClassifiedMovementRepository,
	ledger *ledgerapp.UseCase,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		resolver: resolver,
		invoices: invoices,
		ctes:     ctes,
		mappings: mappings,
		products: products,
		moves:    moves,
		ledger:   ledger,
		log:      log,
	}
}

// ImportInvoice persiste a nota com seus itens e processa cada linha:
// classificação, conversão para sacas equivalentes e aplicação no ledger.
// Linhas sem produto mapeado ou sem regra ficam UNCLASSIFIED (registradas,
// fora do custeio) — nunca recebem categoria padrão.
func (uc *UseCase) ImportInvoice(ctx context.Context, companyID string, in dto.ImportInvoiceRequest) (*dto.ImportResultResponse, error) {
	if in.AccessKey == "" || in.Date.IsZero() || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Direction != entity.DirectionIN && in.Direction != entity.DirectionOUT {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.invoices.GetByAccessKey(ctx, companyID, in.AccessKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	invoice := &entity.Invoice{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		AccessKey:         in.AccessKey,
		Number:            in.Number,
		Series:            in.Series,
		IssuerCNPJ:        in.IssuerCNPJ,
		RecipientCNPJ:     in.RecipientCNPJ,
		NatOp:             in.NatOp,
		Date:              in.Date,
		TotalValue:        in.TotalValue,
		SelfIssuedEntrada: in.SelfIssuedEntrada,
		CreatedAt:         now,
	}
	items := make([]*entity.InvoiceItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, &entity.InvoiceItem{
			ID:         uuid.New().String(),
			InvoiceID:  invoice.ID,
			LineNumber: it.LineNumber,
			CfopCode:   it.CfopCode,
			NCM:        it.NCM,
			Descricao:  it.Descricao,
			Unit:       it.Unit,
			Qty:        it.Qty,
			TotalValue: it.TotalValue,
			CreatedAt:  now,
		})
	}
	if err := uc.invoices.CreateWithItems(ctx, invoice, items); err != nil {
		return nil, err
	}

	result := &dto.ImportResultResponse{DocumentID: invoice.ID}
	for i, it := range in.Items {
		line := entity.DocumentLine{
			CompanyID:         companyID,
			ProductID:         it.ProductID,
			SourceDocumentID:  invoice.ID,
			SourceItemID:      items[i].ID,
			CfopCode:          it.CfopCode,
			Direction:         in.Direction,
			NatOp:             in.NatOp,
			SelfIssuedEntrada: in.SelfIssuedEntrada,
			Date:              in.Date,
			QtyNative:         it.Qty,
			Unit:              it.Unit,
			TotalValue:        it.TotalValue,
		}
		if it.ProductID != "" {
			mapping := &entity.InvoiceItemProductMapping{
				ID:            uuid.New().String(),
				CompanyID:     companyID,
				InvoiceItemID: items[i].ID,
				ProductID:     it.ProductID,
				CreatedAt:     now,
			}
			if err := uc.mappings.Upsert(ctx, mapping); err != nil {
				result.Lines = append(result.Lines, dto.LineOutcome{
					LineNumber: it.LineNumber, Outcome: dto.LineOutcomeError, Detail: err.Error(),
				})
				continue
			}
		}
		result.Lines = append(result.Lines, uc.processLine(ctx, line, it.LineNumber))
	}
	return result, nil
}

// ImportCte persiste o conhecimento de transporte e o classifica para o DRE.
// CTe não movimenta estoque: não há produto nem aplicação no ledger.
func (uc *UseCase) ImportCte(ctx context.Context, companyID string, in dto.ImportCteRequest) (*dto.ImportResultResponse, error) {
	if in.AccessKey == "" || in.CfopCode == "" || in.Date.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.Direction != entity.DirectionIN && in.Direction != entity.DirectionOUT {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.ctes.GetByAccessKey(ctx, companyID, in.AccessKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	cte := &entity.Cte{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		AccessKey:     in.AccessKey,
		Number:        in.Number,
		IssuerCNPJ:    in.IssuerCNPJ,
		RecipientCNPJ: in.RecipientCNPJ,
		CfopCode:      in.CfopCode,
		NatOp:         in.NatOp,
		Date:          in.Date,
		TotalValue:    in.TotalValue,
		CreatedAt:     now,
	}
	if err := uc.ctes.Create(ctx, cte); err != nil {
		return nil, err
	}

	result := &dto.ImportResultResponse{DocumentID: cte.ID}
	line := entity.DocumentLine{
		CompanyID:        companyID,
		SourceDocumentID: cte.ID,
		CfopCode:         in.CfopCode,
		Direction:        in.Direction,
		NatOp:            in.NatOp,
		Date:             in.Date,
		TotalValue:       in.TotalValue,
	}
	result.Lines = append(result.Lines, uc.processLine(ctx, line, 1))
	return result, nil
}

// processLine classifica e aplica uma linha; o desfecho nunca escapa como erro
// do lote. Linha não classificada é registrada para correção posterior.
func (uc *UseCase) processLine(ctx context.Context, line entity.DocumentLine, lineNumber int) dto.LineOutcome {
	natOp := classificacao.NormalizeNatOp(line.NatOp)
	mov := &entity.ClassifiedMovement{
		ID:                uuid.New().String(),
		CompanyID:         line.CompanyID,
		ProductID:         line.ProductID,
		SourceDocumentID:  line.SourceDocumentID,
		SourceItemID:      line.SourceItemID,
		CfopCode:          line.CfopCode,
		Direction:         line.Direction,
		NatOp:             natOp,
		SelfIssuedEntrada: line.SelfIssuedEntrada,
		Date:              line.Date,
		QtyNative:         line.QtyNative,
		Unit:              line.Unit,
		TotalValue:        line.TotalValue,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	desc, err := uc.resolver.Resolve(ctx, classificacao.Query{
		CompanyID:         line.CompanyID,
		CfopCode:          line.CfopCode,
		Direction:         line.Direction,
		NatOp:             line.NatOp,
		SelfIssuedEntrada: line.SelfIssuedEntrada,
	})
	switch {
	case errors.Is(err, domain.ErrUnclassified):
		return uc.recordUnclassified(ctx, mov, lineNumber, "sem regra ou alias para o CFOP/natureza")
	case err != nil:
		return dto.LineOutcome{LineNumber: lineNumber, Outcome: dto.LineOutcomeError, Detail: err.Error()}
	}

	mov.NaturezaOperacaoID = desc.NaturezaOperacaoID
	mov.DREInclude = desc.DREInclude
	mov.DRECategory = desc.DRECategory
	mov.DRELabel = desc.DRELabel
	mov.DRESign = desc.DRESign

	// Sem produto mapeado não há como custear: registra e segue.
	if line.ProductID == "" {
		if line.SourceItemID == "" {
			// CTe e afins: classificado só para o DRE, sem ledger.
			mov.Status = entity.MovementStatusApplied
			if err := uc.moves.Create(ctx, mov); err != nil {
				return dto.LineOutcome{LineNumber: lineNumber, Outcome: dto.LineOutcomeError, Detail: err.Error()}
			}
			return dto.LineOutcome{LineNumber: lineNumber, MovementID: mov.ID, Outcome: dto.LineOutcomeApplied}
		}
		return uc.recordUnclassified(ctx, mov, lineNumber, "item sem produto mapeado")
	}

	product, err := uc.products.GetByID(ctx, line.ProductID)
	if err != nil {
		return dto.LineOutcome{LineNumber: lineNumber, Outcome: dto.LineOutcomeError, Detail: err.Error()}
	}
	if product == nil || product.CompanyID != line.CompanyID {
		return uc.recordUnclassified(ctx, mov, lineNumber, "produto inexistente para a empresa")
	}

	// Conversão para sacas equivalentes pela unidade da linha (cai na unidade
	// do produto quando o documento não informa).
	unit := line.Unit
	if !conversao.ValidUnit(unit) {
		unit = product.Unit
	}
	mov.Unit = unit
	mov.SCEquivalent = conversao.SCEquivalent(unit, line.QtyNative)

	flags, err := uc.ledger.ApplyMovement(ctx, mov)
	switch {
	case errors.Is(err, domain.ErrOutOfOrder):
		// Persiste fora do checkpoint: o replay do produto integra a linha
		// pela ordenação por data e promove o status.
		mov.Status = entity.MovementStatusOutOfOrder
		if cerr := uc.moves.Create(ctx, mov); cerr != nil {
			return dto.LineOutcome{LineNumber: lineNumber, Outcome: dto.LineOutcomeError, Detail: cerr.Error()}
		}
		return dto.LineOutcome{
			LineNumber: lineNumber, MovementID: mov.ID, Outcome: dto.LineOutcomeOutOfOrder,
			Detail: "data anterior ao último movimento aplicado; rode o replay do produto",
		}
	case err != nil:
		uc.log.Error().Err(err).Str("movement_id", mov.ID).Msg("aplicar movimento no ledger")
		return dto.LineOutcome{LineNumber: lineNumber, Outcome: dto.LineOutcomeError, Detail: err.Error()}
	}
	for _, f := range flags {
		if f == ledgerdom.FlagNegativeInventory {
			return dto.LineOutcome{LineNumber: lineNumber, MovementID: mov.ID, Outcome: dto.LineOutcomeNegative}
		}
	}
	return dto.LineOutcome{LineNumber: lineNumber, MovementID: mov.ID, Outcome: dto.LineOutcomeApplied}
}

const reclassifyPageSize = 200

// Reclassify revisita os movimentos pendentes da empresa depois que regras ou
// aliases foram cadastrados: re-resolve cada um e aplica ao ledger os que
// agora têm classificação. Pendentes que continuam sem regra ou sem produto
// mapeado permanecem UNCLASSIFIED; os com data anterior ao checkpoint ficam
// OUT_OF_ORDER até o replay do produto.
func (uc *UseCase) Reclassify(ctx context.Context, companyID string) (*dto.ReclassifyResponse, error) {
	out := &dto.ReclassifyResponse{}
	offset := 0
	for {
		batch, err := uc.moves.ListUnclassified(ctx, companyID, reclassifyPageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, mov := range batch {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out.Processed++
			switch uc.reclassifyOne(ctx, mov) {
			case dto.LineOutcomeApplied, dto.LineOutcomeNegative:
				out.Applied++
			case dto.LineOutcomeOutOfOrder:
				out.OutOfOrder++
			default:
				// Segue UNCLASSIFIED no banco: pula na próxima página.
				out.Remaining++
				offset++
			}
		}
		if len(batch) < reclassifyPageSize {
			break
		}
	}
	return out, nil
}

func (uc *UseCase) reclassifyOne(ctx context.Context, mov *entity.ClassifiedMovement) string {
	desc, err := uc.resolver.Resolve(ctx, classificacao.Query{
		CompanyID:         mov.CompanyID,
		CfopCode:          mov.CfopCode,
		Direction:         mov.Direction,
		NatOp:             mov.NatOp,
		SelfIssuedEntrada: mov.SelfIssuedEntrada,
	})
	if err != nil {
		return dto.LineOutcomeUnclassified
	}
	mov.NaturezaOperacaoID = desc.NaturezaOperacaoID
	mov.DREInclude = desc.DREInclude
	mov.DRECategory = desc.DRECategory
	mov.DRELabel = desc.DRELabel
	mov.DRESign = desc.DRESign

	if mov.ProductID == "" {
		if mov.SourceItemID != "" {
			// Item de nota ainda sem produto mapeado: segue pendente.
			return dto.LineOutcomeUnclassified
		}
		mov.Status = entity.MovementStatusApplied
		if err := uc.moves.UpdateClassification(ctx, mov); err != nil {
			uc.log.Error().Err(err).Str("movement_id", mov.ID).Msg("reclassificar movimento")
			return dto.LineOutcomeError
		}
		return dto.LineOutcomeApplied
	}

	product, err := uc.products.GetByID(ctx, mov.ProductID)
	if err != nil || product == nil || product.CompanyID != mov.CompanyID {
		return dto.LineOutcomeUnclassified
	}
	unit := mov.Unit
	if !conversao.ValidUnit(unit) {
		unit = product.Unit
	}
	mov.Unit = unit
	mov.SCEquivalent = conversao.SCEquivalent(unit, mov.QtyNative)

	flags, err := uc.ledger.ApplyReclassified(ctx, mov)
	switch {
	case errors.Is(err, domain.ErrOutOfOrder):
		mov.Status = entity.MovementStatusOutOfOrder
		if uerr := uc.moves.UpdateClassification(ctx, mov); uerr != nil {
			uc.log.Error().Err(uerr).Str("movement_id", mov.ID).Msg("reclassificar movimento")
			return dto.LineOutcomeError
		}
		return dto.LineOutcomeOutOfOrder
	case err != nil:
		uc.log.Error().Err(err).Str("movement_id", mov.ID).Msg("aplicar movimento reclassificado")
		return dto.LineOutcomeError
	}
	for _, f := range flags {
		if f == ledgerdom.FlagNegativeInventory {
			return dto.LineOutcomeNegative
		}
	}
	return dto.LineOutcomeApplied
}

func (uc *UseCase) recordUnclassified(ctx context.Context, mov *entity.ClassifiedMovement, lineNumber int, detail string) dto.LineOutcome {
	mov.Status = entity.MovementStatusUnclassified
	if err := uc.moves.Create(ctx, mov); err != nil {
		return dto.LineOutcome{LineNumber: lineNumber, Outcome: dto.LineOutcomeError, Detail: err.Error()}
	}
	return dto.LineOutcome{LineNumber: lineNumber, MovementID: mov.ID, Outcome: dto.LineOutcomeUnclassified, Detail: detail}
}
