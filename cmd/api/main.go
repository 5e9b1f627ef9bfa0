package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	httpadp "prestamos-api/internal/adapter/http"
	"prestamos-api/internal/adapter/middleware"
	"prestamos-api/internal/adapter/repository/mysql"
	"prestamos-api/internal/config"
	"prestamos-api/internal/domain/user"
	"prestamos-api/internal/infrastructure/cache"
	"prestamos-api/internal/infrastructure/db"
	"prestamos-api/internal/usecase/auth"
	"prestamos-api/internal/usecase/delinquency"
	"prestamos-api/internal/usecase/installment"
	"prestamos-api/internal/usecase/loan"
	"prestamos-api/internal/usecase/registry"
	"prestamos-api/internal/usecase/report"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.WithError(err).Fatal("mysql connection failed")
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Fatal("redis connection failed")
	}

	// repositories
	loans := mysql.NewLoanRepository(gdb)
	installments := mysql.NewInstallmentRepository(gdb)
	clients := mysql.NewClientRepository(gdb)
	guarantors := mysql.NewGuarantorRepository(gdb)
	agents := mysql.NewAgentRepository(gdb)
	groups := mysql.NewGroupRepository(gdb)
	users := mysql.NewUserRepository(gdb)
	reports := mysql.NewReportRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	// usecases
	loanUC := loan.NewUsecase(loans, clients, tx)
	instUC := installment.NewUsecase(installments, tx)
	delUC := delinquency.NewUsecase(tx, log)
	reportUC := report.NewUsecase(reports)
	registryUC := registry.NewUsecase(clients, guarantors, agents, groups)
	authUC := auth.NewUsecase(users, []byte(cfg.JWTSecret), time.Duration(cfg.TokenTTLHours)*time.Hour, log)

	// handlers
	h := httpadp.NewHandler()
	loanH := httpadp.NewLoanHandler(loanUC)
	instH := httpadp.NewInstallmentHandler(instUC)
	reportH := httpadp.NewReportHandler(reportUC, delUC)
	registryH := httpadp.NewRegistryHandler(registryUC)
	authH := httpadp.NewAuthHandler(authUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	api := e.Group("/api")
	api.POST("/auth/login", authH.Login)

	authed := api.Group("", middleware.JWTAuth(authUC))
	writer := middleware.RequireRoles(user.RoleAdmin, user.RoleOperator)
	admin := middleware.RequireRoles(user.RoleAdmin)
	idemp := middleware.Idempotency(rdb, log, time.Duration(cfg.IdempTTLSecs)*time.Second)

	authed.GET("/auth/me", authH.Me)
	authed.POST("/auth/register", authH.Register, admin)
	authed.GET("/usuarios", authH.ListUsers, admin)
	authed.DELETE("/usuarios/:id", authH.DeactivateUser, admin)

	// loans
	authed.POST("/prestamos", loanH.Create, writer, idemp)
	authed.GET("/prestamos", loanH.List)
	authed.GET("/prestamos/buscar", loanH.Search)
	authed.GET("/prestamos/morosos", loanH.Delinquent)
	authed.GET("/prestamos/resumen-cartera", loanH.PortfolioSummary)
	authed.GET("/prestamos/:id", loanH.Get)
	authed.PUT("/prestamos/:id/aprobar", loanH.Approve, writer)
	authed.PUT("/prestamos/:id/liquidar", loanH.Liquidate, writer)
	authed.PUT("/prestamos/:id/cancelar", loanH.Cancel, writer)
	authed.PUT("/prestamos/:id/recalcular", loanH.Recount, writer)
	authed.PUT("/prestamos/:id/notas", loanH.UpdateNotes, writer)
	authed.GET("/prestamos/:id_prestamo/cuotas", instH.ListByLoan)
	authed.GET("/prestamos/:id_prestamo/cuotas/pendientes", instH.ListUnpaidByLoan)
	authed.GET("/prestamos/:id_prestamo/cuotas/proxima", instH.NextUnpaid)
	authed.GET("/clientes/:id_cliente/prestamo-abierto", loanH.OpenByClient)

	// installments
	authed.PUT("/cuotas/:id/pagar", instH.Pay, writer, idemp)
	authed.GET("/cuotas/:id", instH.Get)

	// reference registries
	authed.POST("/clientes", registryH.CreateClient, writer)
	authed.GET("/clientes", registryH.ListClients)
	authed.GET("/clientes/con-prestamos", registryH.ClientsWithLoans)
	authed.GET("/clientes/:id", registryH.GetClient)
	authed.PUT("/clientes/:id", registryH.UpdateClient, writer)
	authed.DELETE("/clientes/:id", registryH.DeactivateClient, writer)
	authed.PUT("/clientes/:id/reactivar", registryH.ReactivateClient, writer)

	authed.POST("/avales", registryH.CreateGuarantor, writer)
	authed.GET("/avales", registryH.ListGuarantors)
	authed.PUT("/avales/:id", registryH.UpdateGuarantor, writer)
	authed.DELETE("/avales/:id", registryH.DeactivateGuarantor, writer)

	authed.POST("/promotores", registryH.CreateAgent, writer)
	authed.GET("/promotores", registryH.ListAgents)
	authed.PUT("/promotores/:id", registryH.UpdateAgent, writer)
	authed.DELETE("/promotores/:id", registryH.DeactivateAgent, writer)

	authed.POST("/grupos", registryH.CreateGroup, writer)
	authed.GET("/grupos", registryH.ListGroups)
	authed.PUT("/grupos/:id", registryH.UpdateGroup, writer)
	authed.DELETE("/grupos/:id", registryH.DeactivateGroup, writer)

	// reports
	authed.GET("/reportes/cobranza-semanal", reportH.WeeklyBilling)
	authed.GET("/reportes/cobranza-semanal/:id_promotor", reportH.AgentWeek)
	authed.GET("/reportes/resumen-cobranza", reportH.CollectionSummary)
	authed.GET("/reportes/cuotas-vencidas", reportH.Overdue)
	authed.GET("/reportes/cartera-vencida", reportH.PastDuePortfolio)
	authed.POST("/reportes/marcar-vencidas", reportH.MarkOverdue, admin)

	// nightly delinquency scan
	var scheduler *cron.Cron
	if !cfg.DisableScanner {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.OverdueCron, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			if _, err := delUC.MarkOverdue(ctx); err != nil {
				log.WithError(err).Error("overdue scan failed")
			}
		})
		if err != nil {
			log.WithError(err).Fatal("invalid OVERDUE_CRON expression")
		}
		scheduler.Start()
	}

	go func() {
		addr := ":" + cfg.AppPort
		log.WithField("addr", addr).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown failed")
	}
	_ = rdb.Close()
}
