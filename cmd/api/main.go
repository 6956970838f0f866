package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	bookingrepo "github.com/xxz807/watertaxi/internal/booking/adapter/repo"
	bookingapi "github.com/xxz807/watertaxi/internal/booking/api"
	bookingdomain "github.com/xxz807/watertaxi/internal/booking/domain"
	bookingservice "github.com/xxz807/watertaxi/internal/booking/service"
	fleetrepo "github.com/xxz807/watertaxi/internal/fleet/adapter/repo"
	fleetapi "github.com/xxz807/watertaxi/internal/fleet/api"
	fleetdomain "github.com/xxz807/watertaxi/internal/fleet/domain"
	fleetservice "github.com/xxz807/watertaxi/internal/fleet/service"
	investorrepo "github.com/xxz807/watertaxi/internal/investor/adapter/repo"
	investorapi "github.com/xxz807/watertaxi/internal/investor/api"
	investordomain "github.com/xxz807/watertaxi/internal/investor/domain"
	investorservice "github.com/xxz807/watertaxi/internal/investor/service"
	"github.com/xxz807/watertaxi/internal/platform/clock"
	"github.com/xxz807/watertaxi/internal/platform/config"
	"github.com/xxz807/watertaxi/internal/platform/database"
	"github.com/xxz807/watertaxi/internal/platform/logger"
	"github.com/xxz807/watertaxi/internal/platform/metrics"
	"github.com/xxz807/watertaxi/internal/platform/scheduler"
	"github.com/xxz807/watertaxi/internal/platform/server"
	settlementrepo "github.com/xxz807/watertaxi/internal/settlement/adapter/repo"
	settlementapi "github.com/xxz807/watertaxi/internal/settlement/api"
	settlementdomain "github.com/xxz807/watertaxi/internal/settlement/domain"
	settlementservice "github.com/xxz807/watertaxi/internal/settlement/service"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error reading config file: %s", err)
	}

	// 2. 初始化基础设施 (Infra)
	// Logger
	appLogger, err := logger.NewLogger(cfg.Server.Mode, cfg.Log)
	if err != nil {
		log.Fatalf("Error building logger: %s", err)
	}
	defer func() { _ = appLogger.Sync() }()

	// Database
	db, err := database.Open(cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Database connection failed", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&fleetdomain.Boat{},
		&investordomain.Investor{},
		&bookingdomain.Booking{},
		&settlementdomain.Settlement{},
	); err != nil {
		appLogger.Fatal("Database migration failed", zap.Error(err))
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	clk := clock.New()

	// 3. 依赖注入 (Wiring)
	// -- Fleet Module --
	fleetSvc := fleetservice.NewFleetService(fleetrepo.NewBoatRepo(db), appLogger)

	// -- Investor Module --
	investorSvc := investorservice.NewInvestorService(db, investorrepo.NewInvestorRepo(db), clk, appLogger)

	// -- Settlement Module --
	bookingRepo := bookingrepo.NewBookingRepo(db)
	settlementRepo := settlementrepo.NewSettlementRepo(db)
	settlementSvc := settlementservice.NewSettlementService(
		settlementRepo,
		bookingRepo,
		fleetSvc,
		investorSvc,
		clk,
		appMetrics,
		appLogger,
		cfg.Settlement.JourneyWorkers,
	)
	reportSvc := settlementservice.NewReportService(settlementRepo)

	// -- Booking Module --
	bookingSvc := bookingservice.NewBookingService(bookingRepo, fleetSvc, settlementSvc, clk, appLogger)

	// 4. 定时任务
	jobs, err := scheduler.NewManager(appLogger)
	if err != nil {
		appLogger.Fatal("Scheduler init failed", zap.Error(err))
	}
	if cfg.Settlement.ReconcileEnabled {
		job := settlementservice.NewReconcileJob(
			settlementSvc,
			settlementRepo,
			appMetrics,
			appLogger,
			cfg.Settlement.ReconcileInterval,
			cfg.Settlement.ReconcileBatch,
		)
		if err := jobs.Register(job); err != nil {
			appLogger.Fatal("Register reconcile job failed", zap.Error(err))
		}
	}
	jobs.Start()

	// 5. 初始化 Server (Gateway)
	srv := server.NewServer(
		appLogger,
		cfg.Server,
		registry,
		fleetapi.NewFleetHandler(fleetSvc),
		investorapi.NewInvestorHandler(investorSvc),
		bookingapi.NewBookingHandler(bookingSvc),
		settlementapi.NewSettlementHandler(settlementSvc, reportSvc),
	)

	// 6. 启动服务
	go func() {
		if err := srv.Run(); err != nil {
			appLogger.Fatal("Server startup failed", zap.Error(err))
		}
	}()

	// 7. 优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server shutdown failed", zap.Error(err))
	}
	if err := jobs.Stop(); err != nil {
		appLogger.Error("Scheduler shutdown failed", zap.Error(err))
	}
}
