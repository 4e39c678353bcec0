package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cafeplanalto/fiscal-api/internal/application/dto"
	"github.com/cafeplanalto/fiscal-api/internal/application/importacao"
	"github.com/cafeplanalto/fiscal-api/internal/domain"
)

// DocumentHandler importação de documentos fiscais normalizados (NFe e CTe).
type DocumentHandler struct {
	uc *importacao.UseCase
}

// NewDocumentHandler constrói o handler.
func NewDocumentHandler(uc *importacao.UseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// ImportInvoice godoc
// @Summary      Importar nota fiscal
// @Description  Classifica e aplica cada linha de forma independente; o lote
// @Description  nunca aborta por uma linha ruim. Reimportação da mesma chave
// @Description  de acesso devolve 409.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportInvoiceRequest  true  "Nota normalizada"
// @Success      200   {object}  dto.ImportResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documents/invoices [post]
func (h *DocumentHandler) ImportInvoice(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.ImportInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.ImportInvoice(c.Context(), companyID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "access_key, date e direction (IN|OUT) são obrigatórios"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "nota já importada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ImportCte godoc
// @Summary      Importar conhecimento de transporte
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportCteRequest  true  "CTe normalizado"
// @Success      200   {object}  dto.ImportResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documents/ctes [post]
func (h *DocumentHandler) ImportCte(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.ImportCteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.ImportCte(c.Context(), companyID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "access_key, date e direction (IN|OUT) são obrigatórios"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "CTe já importado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Reclassify godoc
// @Summary      Reclassificar movimentos pendentes
// @Description  Re-resolve os movimentos UNCLASSIFIED da empresa depois do
// @Description  cadastro de novas regras ou aliases e aplica ao ledger os que
// @Description  agora têm classificação.
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReclassifyResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/documents/reclassify [post]
func (h *DocumentHandler) Reclassify(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	out, err := h.uc.Reclassify(c.Context(), companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
