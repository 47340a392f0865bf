package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httpadp "retail-backoffice/internal/adapter/http"
	appmw "retail-backoffice/internal/adapter/middleware"

	"retail-backoffice/internal/adapter/auditlog"
	"retail-backoffice/internal/adapter/repository/mysql"
	"retail-backoffice/internal/config"
	"retail-backoffice/internal/infrastructure/cache"
	"retail-backoffice/internal/infrastructure/db"
	"retail-backoffice/internal/usecase/approvals"
	"retail-backoffice/internal/usecase/bulk"
	"retail-backoffice/internal/usecase/ledger"
	"retail-backoffice/internal/usecase/rules"
	seqgen "retail-backoffice/internal/usecase/sequence"
	"retail-backoffice/internal/usecase/transfers"
	"retail-backoffice/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log := logger.Get()
	defer func() { _ = log.Sync() }()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("config", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal("mysql", zap.Error(err))
	}
	if err := mysql.AutoMigrate(gdb); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}

	// repositories
	uow := mysql.NewGormUoW(gdb)
	invRepo := mysql.NewInventoryRepository(gdb)
	reqRepo := mysql.NewApprovalRequestRepository(gdb)
	ruleRepo := mysql.NewApprovalRuleRepository(gdb)
	dirRepo := mysql.NewDirectoryRepository(gdb)
	catRepo := mysql.NewCatalogRepository(gdb)

	recorder := auditlog.NewZapRecorder(log)

	// usecases
	engine := rules.NewEngine(ruleRepo, dirRepo, recorder)
	manager := approvals.NewManager(uow, reqRepo, dirRepo, recorder)
	stock := ledger.NewLedger()
	stockSvc := ledger.NewService(uow, stock, invRepo, recorder)
	numbers := seqgen.NewGenerator()
	transferUC := transfers.NewUsecase(uow, engine, stock, numbers, catRepo, recorder)
	bulkUC := bulk.NewOrchestrator(uow, engine, numbers, catRepo, recorder)

	// handlers
	h := httpadp.NewHandler()
	ruleH := httpadp.NewRuleHandler(engine)
	approvalH := httpadp.NewApprovalHandler(manager)
	transferH := httpadp.NewTransferHandler(transferUC)
	bulkH := httpadp.NewBulkHandler(bulkUC)
	invH := httpadp.NewInventoryHandler(stockSvc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Recover())
	e.Use(appmw.RequestIDMiddleware)
	e.Use(appmw.MetricsMiddleware)

	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.Use(appmw.AuthMiddleware([]byte(cfg.JWTSecret)))
	api.Use(appmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	httpadp.Register(api, ruleH, approvalH, transferH, bulkH, invH)

	// background sweep marking overdue approval requests expired
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go func() {
		t := time.NewTicker(cfg.ApprovalSweepInterval)
		defer t.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-t.C:
				n, err := manager.ExpireDue(sweepCtx)
				if err != nil {
					log.Warn("approval expiry sweep", zap.Error(err))
					continue
				}
				if n > 0 {
					log.Info("approval requests expired", zap.Int64("count", n))
				}
			}
		}
	}()

	addr := ":" + cfg.AppPort
	log.Info("listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		log.Fatal("server", zap.Error(err))
	}
}
