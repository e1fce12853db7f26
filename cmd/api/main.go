package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/devxankit/appzeto-payroll/internal/config"
	appHTTP "github.com/devxankit/appzeto-payroll/internal/handler/http"
	"github.com/devxankit/appzeto-payroll/internal/pkg/database"
	"github.com/devxankit/appzeto-payroll/internal/pkg/finance"
	"github.com/devxankit/appzeto-payroll/internal/pkg/jwt"
	"github.com/devxankit/appzeto-payroll/internal/repository/postgresql"
	salaryService "github.com/devxankit/appzeto-payroll/internal/service/salary"
	rewardService "github.com/devxankit/appzeto-payroll/internal/service/reward"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "appzeto-payroll"),
	)

	memberRepo := postgresql.NewMemberRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	rewardRepo := postgresql.NewRewardRepository(db)
	awardRepo := postgresql.NewAwardRepository(db)
	perfProvider := postgresql.NewPerformanceProvider(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	ledgerGateway := finance.NewClient(cfg.Finance.BaseURL, cfg.Finance.APIKey, cfg.Finance.Timeout)

	txManager := postgresql.NewTxManager(db)
	salarySvc := salaryService.NewSalaryService(salaryRepo, memberRepo, ledgerGateway, txManager, logger, nil)
	rewardSvc := rewardService.NewRewardService(rewardRepo, awardRepo, memberRepo, perfProvider, logger, nil)

	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)
	rewardHandler := appHTTP.NewRewardHandler(rewardSvc)

	router := appHTTP.NewRouter(jwtService, salaryHandler, rewardHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("starting server", "addr", addr, "env", cfg.App.Env)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
