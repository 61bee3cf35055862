package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/timecard-payroll-go/internal/config"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/payroll"
	appHTTP "github.com/cmlabs-hris/timecard-payroll-go/internal/handler/http"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/pkg/ocr"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/timecard-payroll-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/timecard-payroll-go/internal/service/auth"
	payrollService "github.com/cmlabs-hris/timecard-payroll-go/internal/service/payroll"
	userService "github.com/cmlabs-hris/timecard-payroll-go/internal/service/user"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timecard-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgresql.Migrate(ctx, db); err != nil {
		slog.Error("Error migrating database", "error", err)
		os.Exit(1)
	}

	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	transactor := postgresql.NewTransactor(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.IsProduction())

	breakPolicy := payroll.BreakPolicy{
		ThresholdMinutes: cfg.Payroll.BreakThresholdMinutes,
		DeductionMinutes: cfg.Payroll.BreakDeductionMinutes,
	}
	ocrClient := ocr.NewClient(cfg.Extraction.APIKey, cfg.Extraction.Model)
	if !ocrClient.Enabled() {
		slog.Warn("OPENAI_API_KEY not set, attendance card extraction disabled")
	}

	authService := serviceAuth.NewAuthService(transactor, userRepo, JWTService, JWTRepository)
	payrollSvc := payrollService.NewPayrollService(userRepo, cfg.Payroll.DefaultShopName)
	attendanceSvc := attendanceService.NewAttendanceService(ocrClient, breakPolicy)
	profileSvc := userService.NewProfileService(userRepo, cfg.Payroll.DefaultShopName)

	authHandler := appHTTP.NewAuthHandler(JWTService, authService, cfg.IsProduction())
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	profileHandler := appHTTP.NewProfileHandler(profileSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		payrollHandler,
		attendanceHandler,
		profileHandler,
		appHTTP.RouterOptions{
			Logger:         logger,
			AllowedOrigins: cfg.App.AllowedOrigins,
			LogLevel:       cfg.SlogLevel(),
		},
	)

	scheduler := cron.NewScheduler()
	cron.NewTokenJobs(JWTService, JWTRepository).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", "http://localhost"+server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
