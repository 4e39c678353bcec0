package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cafeplanalto/fiscal-api/internal/application/dto"
	ledgerapp "github.com/cafeplanalto/fiscal-api/internal/application/ledger"
	"github.com/cafeplanalto/fiscal-api/internal/application/usecase"
	"github.com/cafeplanalto/fiscal-api/internal/domain"
)

// InventoryHandler aberturas, saldos e replay do ledger.
type InventoryHandler struct {
	openingUC *usecase.OpeningUseCase
	ledgerUC  *ledgerapp.UseCase
}

// NewInventoryHandler constrói o handler.
func NewInventoryHandler(openingUC *usecase.OpeningUseCase, ledgerUC *ledgerapp.UseCase) *InventoryHandler {
	return &InventoryHandler{openingUC: openingUC, ledgerUC: ledgerUC}
}

// CreateOpening godoc
// @Summary      Registrar abertura de estoque
// @Description  No máximo uma abertura por produto; semeia o saldo corrente.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOpeningRequest  true  "Dados da abertura"
// @Success      201   {object}  dto.OpeningResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/openings [post]
func (h *InventoryHandler) CreateOpening(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.CreateOpeningRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.openingUC.Create(c.Context(), companyID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id, date e valores não negativos são obrigatórios"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produto não encontrado"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "produto já tem abertura"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListOpenings godoc
// @Summary      Listar aberturas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OpeningResponse
// @Router       /api/inventory/openings [get]
func (h *InventoryHandler) ListOpenings(c *fiber.Ctx) error {
	out, err := h.openingUC.ListByCompany(c.Context(), GetCompanyID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListBalances godoc
// @Summary      Listar saldos correntes
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.BalanceListResponse
// @Router       /api/inventory/balances [get]
func (h *InventoryHandler) ListBalances(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.ledgerUC.ListBalances(c.Context(), GetCompanyID(c), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetBalance godoc
// @Summary      Saldo corrente de um produto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID do produto"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/balances/{productId} [get]
func (h *InventoryHandler) GetBalance(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productId é obrigatório"})
	}
	out, err := h.ledgerUC.CurrentBalance(c.Context(), GetCompanyID(c), productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produto sem saldo registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Replay godoc
// @Summary      Reprocessar o ledger de um produto
// @Description  Refaz o fold determinístico (abertura + movimentos em ordem de
// @Description  data) e regrava o checkpoint. Idempotente.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID do produto"
// @Success      200  {object}  dto.ReplayResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/inventory/replay/{productId} [post]
func (h *InventoryHandler) Replay(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productId é obrigatório"})
	}
	out, err := h.ledgerUC.Replay(c.Context(), GetCompanyID(c), productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produto não encontrado"})
		}
		if errors.Is(err, domain.ErrOutOfOrder) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "OUT_OF_ORDER", Message: "histórico com movimento fora de ordem"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
