package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cafeplanalto/fiscal-api/internal/application/dto"
	"github.com/cafeplanalto/fiscal-api/internal/application/usecase"
	"github.com/cafeplanalto/fiscal-api/internal/domain"
)

// ClassificacaoHandler configuração de classificação: naturezas, regras CFOP
// e aliases de texto livre.
type ClassificacaoHandler struct {
	uc *usecase.ClassificacaoUseCase
}

// NewClassificacaoHandler constrói o handler.
func NewClassificacaoHandler(uc *usecase.ClassificacaoUseCase) *ClassificacaoHandler {
	return &ClassificacaoHandler{uc: uc}
}

// CreateNatureza godoc
// @Summary      Criar natureza de operação
// @Tags         classificacao
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNaturezaRequest  true  "Dados da natureza"
// @Success      201   {object}  dto.NaturezaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/classificacao/naturezas [post]
func (h *ClassificacaoHandler) CreateNatureza(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.CreateNaturezaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.CreateNatureza(c.Context(), companyID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name é obrigatório; natureza incluída no DRE exige categoria e sinal +1/-1"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "natureza já cadastrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListNaturezas godoc
// @Summary      Listar naturezas de operação
// @Tags         classificacao
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NaturezaResponse
// @Router       /api/classificacao/naturezas [get]
func (h *ClassificacaoHandler) ListNaturezas(c *fiber.Ctx) error {
	out, err := h.uc.ListNaturezas(c.Context(), GetCompanyID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CreateRule godoc
// @Summary      Criar regra CFOP
// @Tags         classificacao
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCfopRuleRequest  true  "Dados da regra"
// @Success      201   {object}  dto.CfopRuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/classificacao/rules [post]
func (h *ClassificacaoHandler) CreateRule(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.CreateCfopRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.CreateRule(c.Context(), companyID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cfop_code, direction (IN|OUT) e natureza_operacao_id são obrigatórios"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "natureza não encontrada"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "já existe regra para esse CFOP e direção"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRules godoc
// @Summary      Listar regras CFOP
// @Tags         classificacao
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CfopRuleResponse
// @Router       /api/classificacao/rules [get]
func (h *ClassificacaoHandler) ListRules(c *fiber.Ctx) error {
	out, err := h.uc.ListRules(c.Context(), GetCompanyID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DeleteRule godoc
// @Summary      Remover regra CFOP
// @Tags         classificacao
// @Security     Bearer
// @Param        id  path  string  true  "ID da regra"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/classificacao/rules/{id} [delete]
func (h *ClassificacaoHandler) DeleteRule(c *fiber.Ctx) error {
	err := h.uc.DeleteRule(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "regra não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateAlias godoc
// @Summary      Criar alias de natureza de operação
// @Description  O texto é normalizado antes de gravar; tupla repetida é rejeitada.
// @Tags         classificacao
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAliasRequest  true  "Dados da alias"
// @Success      201   {object}  dto.AliasResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/classificacao/aliases [post]
func (h *ClassificacaoHandler) CreateAlias(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.CreateAliasRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.CreateAlias(c.Context(), companyID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nat_op, cfop_code, direction (IN|OUT) e natureza_operacao_id são obrigatórios"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "natureza não encontrada"})
		}
		if errors.Is(err, domain.ErrAmbiguousAlias) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "AMBIGUOUS_ALIAS", Message: "já existe alias para essa combinação"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAliases godoc
// @Summary      Listar aliases
// @Tags         classificacao
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AliasResponse
// @Router       /api/classificacao/aliases [get]
func (h *ClassificacaoHandler) ListAliases(c *fiber.Ctx) error {
	out, err := h.uc.ListAliases(c.Context(), GetCompanyID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DeleteAlias godoc
// @Summary      Remover alias
// @Tags         classificacao
// @Security     Bearer
// @Param        id  path  string  true  "ID da alias"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/classificacao/aliases/{id} [delete]
func (h *ClassificacaoHandler) DeleteAlias(c *fiber.Ctx) error {
	err := h.uc.DeleteAlias(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "alias não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
