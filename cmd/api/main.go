package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/kriyahr/hrms-backend-go/internal/config"
	appHTTP "github.com/kriyahr/hrms-backend-go/internal/handler/http"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/cron"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/database"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/jwt"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/oauth"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/storage"
	"github.com/kriyahr/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/kriyahr/hrms-backend-go/internal/service/attendance"
	serviceAuth "github.com/kriyahr/hrms-backend-go/internal/service/auth"
	employeeService "github.com/kriyahr/hrms-backend-go/internal/service/employee"
	leaveService "github.com/kriyahr/hrms-backend-go/internal/service/leave"
	masterService "github.com/kriyahr/hrms-backend-go/internal/service/master"
	notificationService "github.com/kriyahr/hrms-backend-go/internal/service/notification"
	payrollService "github.com/kriyahr/hrms-backend-go/internal/service/payroll"
	regularizationService "github.com/kriyahr/hrms-backend-go/internal/service/regularization"
	settingsService "github.com/kriyahr/hrms-backend-go/internal/service/settings"
	taskReportService "github.com/kriyahr/hrms-backend-go/internal/service/taskreport"
	wfhService "github.com/kriyahr/hrms-backend-go/internal/service/wfh"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	officeRepo := postgresql.NewOfficeRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	wfhRepo := postgresql.NewWFHRepository(db)
	regularizationRepo := postgresql.NewRegularizationRepository(db)
	taskReportRepo := postgresql.NewTaskReportRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	case "s3":
		fileStorage, err = storage.NewS3Storage(context.Background(), storage.S3Config{
			Bucket:    cfg.Storage.S3Bucket,
			Region:    cfg.Storage.S3Region,
			AccessKey: cfg.Storage.S3Key,
			SecretKey: cfg.Storage.S3Secret,
			Endpoint:  cfg.Storage.S3Endpoint,
		})
		if err != nil {
			log.Fatal("Failed to initialize s3 storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	loc := cfg.Organization.Location

	settingsSvc := settingsService.NewService(settingsRepo, loc, nil)
	notificationSvc := notificationService.NewService(notificationRepo, userRepo, nil)
	attendanceSvc := attendanceService.NewService(
		attendanceRepo,
		employeeRepo,
		officeRepo,
		wfhRepo,
		taskReportRepo,
		holidayRepo,
		leaveRepo,
		settingsSvc,
		notificationSvc,
		nil,
	)
	authSvc := serviceAuth.NewService(userRepo, JWTService, GoogleService)
	employeeSvc := employeeService.NewService(employeeRepo, loc, nil)
	leaveSvc := leaveService.NewService(leaveRepo, notificationSvc, loc, nil)
	wfhSvc := wfhService.NewService(wfhRepo, attendanceSvc, notificationSvc, loc, nil)
	regularizationSvc := regularizationService.NewService(regularizationRepo, attendanceSvc, notificationSvc, loc, nil)
	masterSvc := masterService.NewService(officeRepo, holidayRepo, loc, nil)
	taskReportSvc := taskReportService.NewService(taskReportRepo, loc)
	payrollSvc := payrollService.NewService(payrollRepo, employeeRepo, attendanceSvc, fileStorage, notificationSvc, cfg.Organization.Name, loc, nil)

	router := appHTTP.NewRouter(cfg, JWTService, appHTTP.Handlers{
		Auth:           appHTTP.NewAuthHandler(authSvc, GoogleService),
		Attendance:     appHTTP.NewAttendanceHandler(attendanceSvc),
		Employee:       appHTTP.NewEmployeeHandler(employeeSvc),
		Leave:          appHTTP.NewLeaveHandler(leaveSvc),
		WFH:            appHTTP.NewWFHHandler(wfhSvc),
		Regularization: appHTTP.NewRegularizationHandler(regularizationSvc),
		TaskReport:     appHTTP.NewTaskReportHandler(taskReportSvc),
		Master:         appHTTP.NewMasterHandler(masterSvc, settingsSvc),
		Notification:   appHTTP.NewNotificationHandler(notificationSvc),
		Payroll:        appHTTP.NewPayrollHandler(payrollSvc),
	})

	scheduler := cron.NewScheduler()
	scheduler.AddJob("missing-checkout-sweep", time.Hour, attendanceSvc.SweepMissingCheckouts)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error:", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
