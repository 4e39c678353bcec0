package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cafeplanalto/fiscal-api/internal/application/auth"
	dreapp "github.com/cafeplanalto/fiscal-api/internal/application/dre"
	"github.com/cafeplanalto/fiscal-api/internal/application/importacao"
	ledgerapp "github.com/cafeplanalto/fiscal-api/internal/application/ledger"
	"github.com/cafeplanalto/fiscal-api/internal/application/usecase"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	CompanyUC       *usecase.CompanyUseCase
	ProductUC       *usecase.ProductUseCase
	ClassificacaoUC *usecase.ClassificacaoUseCase
	OpeningUC       *usecase.OpeningUseCase
	DeductionUC     *usecase.DeductionUseCase
	LedgerUC        *ledgerapp.UseCase
	ImportUC        *importacao.UseCase
	DREUC           *dreapp.UseCase
	JWTSecret       string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público para bootstrap; obter/listar exigem token noutros ambientes)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Configuração de classificação (protegido; escrita restrita a admin/fiscal)
	classificacao := protected.Group("/classificacao")
	classificacaoHandler := NewClassificacaoHandler(deps.ClassificacaoUC)
	classificacao.Post("/naturezas", RequireRole("admin", "fiscal"), classificacaoHandler.CreateNatureza)
	classificacao.Get("/naturezas", classificacaoHandler.ListNaturezas)
	classificacao.Post("/rules", RequireRole("admin", "fiscal"), classificacaoHandler.CreateRule)
	classificacao.Get("/rules", classificacaoHandler.ListRules)
	classificacao.Delete("/rules/:id", RequireRole("admin", "fiscal"), classificacaoHandler.DeleteRule)
	classificacao.Post("/aliases", RequireRole("admin", "fiscal"), classificacaoHandler.CreateAlias)
	classificacao.Get("/aliases", classificacaoHandler.ListAliases)
	classificacao.Delete("/aliases/:id", RequireRole("admin", "fiscal"), classificacaoHandler.DeleteAlias)

	// Documentos fiscais (protegido)
	documents := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.ImportUC)
	documents.Post("/invoices", documentHandler.ImportInvoice)
	documents.Post("/ctes", documentHandler.ImportCte)
	documents.Post("/reclassify", RequireRole("admin", "fiscal"), documentHandler.Reclassify)

	// Estoque: aberturas, saldos e replay (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.OpeningUC, deps.LedgerUC)
	invGroup.Post("/openings", RequireRole("admin", "fiscal"), inventoryHandler.CreateOpening)
	invGroup.Get("/openings", inventoryHandler.ListOpenings)
	invGroup.Get("/balances", inventoryHandler.ListBalances)
	invGroup.Get("/balances/:productId", inventoryHandler.GetBalance)
	invGroup.Post("/replay/:productId", RequireRole("admin", "fiscal"), inventoryHandler.Replay)

	// Relatórios (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.DREUC, deps.DeductionUC)
	reports.Get("/dre", reportHandler.GetDRE)
	reports.Post("/deductions", RequireRole("admin", "financeiro"), reportHandler.CreateDeduction)
	reports.Get("/deductions", reportHandler.ListDeductions)
	reports.Delete("/deductions/:id", RequireRole("admin", "financeiro"), reportHandler.DeleteDeduction)
}
