package app

import (
	"go-hrms/internal/auth"
	"go-hrms/internal/company"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	"go-hrms/internal/leavebank"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/middleware"
	"go-hrms/internal/notify"
	"go-hrms/internal/payroll"
	"go-hrms/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	// --- Repositories ---
	companyRepo := company.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveBankRepo := leavebank.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	notifier := notify.NewOutboxNotifier(outboxRepo)

	// --- Services ---
	companyService := company.NewService(companyRepo)
	employeeService := employee.NewService(gormDB, employeeRepo, companyRepo, leaveBankRepo, counterRepo, rdb)
	leaveBankService := leavebank.NewService(gormDB, leaveBankRepo, companyRepo, employeeRepo)
	authService := auth.NewService(employeeRepo)
	leaveService := leave.NewService(gormDB, leaveRepo, companyRepo, employeeRepo, leaveBankRepo, notifier)
	payrollService := payroll.NewService(gormDB, payrollRepo, companyRepo, employeeRepo, leaveRepo, rdb)

	// --- Handlers ---
	companyHandler := company.NewHandler(companyService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveBankHandler := leavebank.NewHandler(leaveBankService)
	authHandler := auth.NewHandler(authService)
	leaveHandler := leave.NewHandler(leaveService)
	payrollHandler := payroll.NewHandler(payrollService, rdb)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		company.RegisterRoutes(api, companyHandler)
		employee.RegisterRoutes(api, employeeHandler, rdb)
		leavebank.RegisterRoutes(api, leaveBankHandler)
		leave.RegisterRoutes(api, leaveHandler, rdb)
		payroll.RegisterRoutes(api, payrollHandler, rdb)
	}

	return nil
}
