package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cafeplanalto/fiscal-api/internal/application/auth"
	dreapp "github.com/cafeplanalto/fiscal-api/internal/application/dre"
	"github.com/cafeplanalto/fiscal-api/internal/application/importacao"
	ledgerapp "github.com/cafeplanalto/fiscal-api/internal/application/ledger"
	"github.com/cafeplanalto/fiscal-api/internal/application/usecase"
	"github.com/cafeplanalto/fiscal-api/internal/infrastructure/postgres"
	httpRouter "github.com/cafeplanalto/fiscal-api/internal/interfaces/http"
	"github.com/cafeplanalto/fiscal-api/pkg/config"
	"github.com/cafeplanalto/fiscal-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	naturezaRepo := postgres.NewNaturezaOperacaoRepository(pool)
	ruleRepo := postgres.NewCfopRuleRepository(pool)
	aliasRepo := postgres.NewNaturezaOperacaoAliasRepository(pool)
	openingRepo := postgres.NewInventoryOpeningRepository(pool)
	deductionRepo := postgres.NewDREDeductionRepository(pool)
	balanceRepo := postgres.NewProductBalanceRepository(pool)
	movementRepo := postgres.NewClassifiedMovementRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	cteRepo := postgres.NewCteRepository(pool)
	mappingRepo := postgres.NewInvoiceItemProductMappingRepository(pool)
	dreRepo := postgres.NewDREReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	classificacaoUC := usecase.NewClassificacaoUseCase(naturezaRepo, ruleRepo, aliasRepo)
	deductionUC := usecase.NewDeductionUseCase(deductionRepo)

	ledgerUC := ledgerapp.NewUseCase(txRunner, openingRepo, productRepo, balanceRepo, movementRepo)
	openingUC := usecase.NewOpeningUseCase(openingRepo, productRepo, ledgerUC)
	resolver := importacao.NewResolver(aliasRepo, ruleRepo, naturezaRepo)
	importUC := importacao.NewUseCase(resolver, invoiceRepo, cteRepo, mappingRepo, productRepo, movementRepo, ledgerUC, log)
	dreUC := dreapp.NewUseCase(dreRepo, deductionRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs. Registrado só quando o
	// swagger.json gerado existe, para o binário subir num checkout limpo.
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Fiscal API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		CompanyUC:       companyUC,
		ProductUC:       productUC,
		ClassificacaoUC: classificacaoUC,
		OpeningUC:       openingUC,
		DeductionUC:     deductionUC,
		LedgerUC:        ledgerUC,
		ImportUC:        importUC,
		DREUC:           dreUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
