package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	dreapp "github.com/cafeplanalto/fiscal-api/internal/application/dre"
	"github.com/cafeplanalto/fiscal-api/internal/application/dto"
	"github.com/cafeplanalto/fiscal-api/internal/application/usecase"
	"github.com/cafeplanalto/fiscal-api/internal/domain"
)

// ReportHandler relatório de DRE e deduções manuais.
type ReportHandler struct {
	dreUC       *dreapp.UseCase
	deductionUC *usecase.DeductionUseCase
}

// NewReportHandler constrói o handler.
func NewReportHandler(dreUC *dreapp.UseCase, deductionUC *usecase.DeductionUseCase) *ReportHandler {
	return &ReportHandler{dreUC: dreUC, deductionUC: deductionUC}
}

// GetDRE godoc
// @Summary      Demonstração do resultado do período
// @Description  Soma assinada por categoria menos deduções vigentes no período.
// @Description  unclassified_count expõe movimentos fora do relatório.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  true  "Início (YYYY-MM-DD)"
// @Param        end    query  string  true  "Fim (YYYY-MM-DD)"
// @Success      200    {object}  dto.DREReportResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/dre [get]
func (h *ReportHandler) GetDRE(c *fiber.Ctx) error {
	start, err := parseDay(c.Query("start"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start inválido (YYYY-MM-DD)"})
	}
	end, err := parseDay(c.Query("end"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end inválido (YYYY-MM-DD)"})
	}
	out, err := h.dreUC.Compute(c.Context(), GetCompanyID(c), start, end)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "período inválido: start deve ser <= end"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CreateDeduction godoc
// @Summary      Cadastrar dedução manual do DRE
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeductionRequest  true  "Dados da dedução"
// @Success      201   {object}  dto.DeductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/deductions [post]
func (h *ReportHandler) CreateDeduction(c *fiber.Ctx) error {
	var in dto.CreateDeductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.deductionUC.Create(c.Context(), GetCompanyID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title, vigência válida e amount positivo são obrigatórios"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListDeductions godoc
// @Summary      Listar deduções
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DeductionResponse
// @Router       /api/reports/deductions [get]
func (h *ReportHandler) ListDeductions(c *fiber.Ctx) error {
	out, err := h.deductionUC.ListByCompany(c.Context(), GetCompanyID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DeleteDeduction godoc
// @Summary      Remover dedução
// @Tags         reports
// @Security     Bearer
// @Param        id  path  string  true  "ID da dedução"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/deductions/{id} [delete]
func (h *ReportHandler) DeleteDeduction(c *fiber.Ctx) error {
	err := h.deductionUC.Delete(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "dedução não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseDay interpreta uma data YYYY-MM-DD em UTC.
func parseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
