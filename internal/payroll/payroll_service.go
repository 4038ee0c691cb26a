package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hrms/internal/company"
	companyerrors "go-hrms/internal/company/errors"
	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"
	payrollerrors "go-hrms/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const payrollListTTL = 10 * time.Minute

func payrollListKey(companyID string, month, year int) string {
	return fmt.Sprintf("payrolls:list:%s:%d-%02d", companyID, year, month)
}

// LOPDaysSource reports the unpaid leave days charged to one employee for a
// payroll period. The leave repository satisfies it.
type LOPDaysSource interface {
	SumLOPDays(ctx context.Context, companyID, employeeID uuid.UUID, month, year int) (decimal.Decimal, error)
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, companyID string, req GeneratePayrollRequest) (*GeneratePayrollResponse, error)
	AssignComponents(ctx context.Context, companyID, employeeID string, req AssignComponentsRequest) (*AssignComponentsResponse, error)
	List(ctx context.Context, companyID string, month, year int) ([]MonthlyPayrollResponse, error)
	PayslipPDF(ctx context.Context, companyID, employeeID string, month, year int) ([]byte, error)
	ExportXLSX(ctx context.Context, companyID string, month, year int) ([]byte, error)
}

type service struct {
	db           *gorm.DB
	repo         Repository
	companyRepo  company.Repository
	employeeRepo employee.Repository
	lopDays      LOPDaysSource
	rdb          *redis.Client
	sf           *singleflight.Group
	logger       *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	companyRepo company.Repository,
	employeeRepo employee.Repository,
	lopDays LOPDaysSource,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		companyRepo:  companyRepo,
		employeeRepo: employeeRepo,
		lopDays:      lopDays,
		rdb:          rdb,
		sf:           &singleflight.Group{},
		logger:       l,
	}
}

// Generate runs payroll for every employee with a gross row in the period.
// All preconditions are checked before the first write; the whole batch
// commits or none of it does.
func (s *service) Generate(ctx context.Context, companyID string, req GeneratePayrollRequest) (*GeneratePayrollResponse, error) {
	companyUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	if _, err := s.companyRepo.GetByID(ctx, companyUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	components, err := s.companyRepo.ListSalaryComponents(ctx, companyUID)
	if err != nil {
		return nil, err
	}
	if len(components) == 0 {
		return nil, payrollerrors.ErrComponentsNotConfigured
	}

	grossRows, err := s.repo.GrossRowsForPeriod(ctx, companyUID, req.Month, req.Year)
	if err != nil {
		return nil, err
	}
	if len(grossRows) == 0 {
		return nil, payrollerrors.ErrNoGrossSalary
	}

	effective, err := s.companyRepo.GetEffectiveDays(ctx, companyUID, req.Year, req.Month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrEffectiveDaysNotConfigured
		}
		return nil, err
	}
	effectiveDays := decimal.NewFromInt(int64(effective.EffectiveDays))

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var created, updated int
	for i := range grossRows {
		gross := &grossRows[i]

		lop, err := s.lopDays.SumLOPDays(ctx, companyUID, gross.EmployeeID, req.Month, req.Year)
		if err != nil {
			return nil, err
		}

		paidDays := effectiveDays.Sub(lop)
		breakdown := ComputeBreakdown(gross.GrossSalary, lop)

		row, err := qtx.GetMonthly(ctx, companyUID, gross.EmployeeID, req.Month, req.Year)
		switch {
		case err == nil:
			applyBreakdown(row, gross.GrossSalary, lop, paidDays, breakdown)
			if err := qtx.UpdateMonthly(ctx, row); err != nil {
				return nil, err
			}
			updated++
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = &MonthlyPayroll{
				CompanyID:  companyUID,
				EmployeeID: gross.EmployeeID,
				Month:      req.Month,
				Year:       req.Year,
			}
			applyBreakdown(row, gross.GrossSalary, lop, paidDays, breakdown)
			if err := qtx.CreateMonthly(ctx, row); err != nil {
				return nil, err
			}
			created++
		default:
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx, companyID, req.Month, req.Year)

	s.logger.Info("payroll generated",
		zap.String("company_id", companyID),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
		zap.Int("created", created),
		zap.Int("updated", updated),
	)

	return &GeneratePayrollResponse{
		Message: "Payroll generated for current month",
		Created: created,
		Updated: updated,
	}, nil
}

// applyBreakdown copies a breakdown onto the persisted row. The breakdown
// fields are already rounded, so the earnings and net-pay identities survive
// persistence unchanged.
func applyBreakdown(row *MonthlyPayroll, gross, lop, paidDays decimal.Decimal, b Breakdown) {
	row.GrossSalary = round2(gross)
	row.LOPDays = lop
	row.PaidDays = paidDays
	row.Basic = b.Basic
	row.DA = b.DA
	row.HRA = b.HRA
	row.Conveyance = b.Conveyance
	row.MedicalAllowance = b.MedicalAllowance
	row.SpecialAllowance = b.SpecialAllowance
	row.PF = b.PF
	row.ESI = b.ESI
	row.TotalEarnings = b.TotalEarnings
	row.TotalDeductions = b.TotalDeductions
	row.NetPay = b.NetPay
}

// AssignComponents computes the component split on the raw gross and stores
// both the per-component amounts and the current period's gross row.
func (s *service) AssignComponents(ctx context.Context, companyID, employeeID string, req AssignComponentsRequest) (*AssignComponentsResponse, error) {
	companyUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}
	employeeUID, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	if _, err := s.companyRepo.GetByID(ctx, companyUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	ok, err := s.employeeRepo.ExistsInCompany(ctx, companyUID, employeeUID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, employeeerrors.ErrEmployeeNotInCompany
	}

	components, err := s.companyRepo.ListSalaryComponents(ctx, companyUID)
	if err != nil {
		return nil, err
	}
	if len(components) == 0 {
		return nil, payrollerrors.ErrComponentsNotConfigured
	}

	gross, err := decimal.NewFromString(req.GrossSalary)
	if err != nil || !gross.IsPositive() {
		return nil, payrollerrors.ErrInvalidGrossSalary
	}

	breakdown := ComputeBreakdown(gross, decimal.Zero)

	now := time.Now()
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	amounts := make(map[string]string, len(components))
	for _, comp := range components {
		amount := round2(componentAmount(comp.Name, breakdown))
		if err := qtx.UpsertComponentAmount(ctx, &EmployeeComponentAmount{
			CompanyID:         companyUID,
			EmployeeID:        employeeUID,
			SalaryComponentID: comp.ID,
			Amount:            amount,
		}); err != nil {
			return nil, err
		}
		amounts[comp.Name] = amount.String()
	}

	if err := qtx.UpsertGross(ctx, &GrossPayroll{
		CompanyID:       companyUID,
		EmployeeID:      employeeUID,
		Month:           int(now.Month()),
		Year:            now.Year(),
		GrossSalary:     round2(gross),
		TotalEarnings:   round2(breakdown.TotalEarnings),
		TotalDeductions: round2(breakdown.TotalDeductions),
		NetPay:          round2(breakdown.NetPay),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info("salary components assigned",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
		zap.String("gross_salary", gross.String()),
	)

	return &AssignComponentsResponse{
		EmployeeID:  employeeID,
		GrossSalary: round2(gross).String(),
		Components:  amounts,
		NetPay:      round2(breakdown.NetPay).String(),
	}, nil
}

// componentAmount maps a configured component name onto the computed
// breakdown. Unrecognized components get zero.
func componentAmount(name string, b Breakdown) decimal.Decimal {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "basic"):
		return b.Basic
	case n == "da" || strings.Contains(n, "dearness"):
		return b.DA
	case strings.Contains(n, "hra") || strings.Contains(n, "house"):
		return b.HRA
	case n == "pf" || strings.Contains(n, "provident"):
		return b.PF
	case strings.Contains(n, "esi"):
		return b.ESI
	case strings.Contains(n, "convey"):
		return b.Conveyance
	case strings.Contains(n, "medic"):
		return b.MedicalAllowance
	case strings.Contains(n, "special"):
		return b.SpecialAllowance
	default:
		return decimal.Zero
	}
}

// List returns the period's payroll lines, cached in redis with singleflight
// protecting the cold path.
func (s *service) List(ctx context.Context, companyID string, month, year int) ([]MonthlyPayrollResponse, error) {
	companyUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}
	if month < 1 || month > 12 {
		return nil, payrollerrors.ErrInvalidPeriod
	}

	cacheKey := payrollListKey(companyID, month, year)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var result []MonthlyPayrollResponse
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return result, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		rows, err := s.repo.ListMonthly(ctx, companyUID, month, year)
		if err != nil {
			return nil, err
		}

		names, err := s.employeeNames(ctx, companyUID)
		if err != nil {
			return nil, err
		}

		result := make([]MonthlyPayrollResponse, 0, len(rows))
		for i := range rows {
			resp := mapMonthlyToResponse(&rows[i])
			resp.EmployeeName = names[rows[i].EmployeeID]
			result = append(result, *resp)
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(result); err == nil {
				_ = s.rdb.Set(ctx, cacheKey, payload, payrollListTTL).Err()
			}
		}

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]MonthlyPayrollResponse), nil
}

func (s *service) employeeNames(ctx context.Context, companyUID uuid.UUID) (map[uuid.UUID]string, error) {
	employees, err := s.employeeRepo.GetAll(ctx, companyUID)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.FullName
	}
	return names, nil
}

func (s *service) invalidateListCache(ctx context.Context, companyID string, month, year int) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, payrollListKey(companyID, month, year)).Err(); err != nil {
		s.logger.Warn("invalidate payroll list cache failed",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
	}
}

func (s *service) PayslipPDF(ctx context.Context, companyID, employeeID string, month, year int) ([]byte, error) {
	companyUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}
	employeeUID, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	comp, err := s.companyRepo.GetByID(ctx, companyUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	empl, err := s.employeeRepo.GetByID(ctx, companyUID, employeeUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotInCompany
		}
		return nil, err
	}

	row, err := s.repo.GetMonthly(ctx, companyUID, employeeUID, month, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrPayrollNotFound
		}
		return nil, err
	}

	return buildPayslipPDF(comp, empl, row)
}

func (s *service) ExportXLSX(ctx context.Context, companyID string, month, year int) ([]byte, error) {
	companyUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	rows, err := s.repo.ListMonthly(ctx, companyUID, month, year)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, payrollerrors.ErrPayrollNotFound
	}

	employees, err := s.employeeRepo.GetAll(ctx, companyUID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*employee.Employee, len(employees))
	for i := range employees {
		byID[employees[i].ID] = &employees[i]
	}

	return buildPayrollXLSX(rows, byID)
}

func mapMonthlyToResponse(row *MonthlyPayroll) *MonthlyPayrollResponse {
	return &MonthlyPayrollResponse{
		ID:               row.ID.String(),
		EmployeeID:       row.EmployeeID.String(),
		Month:            row.Month,
		Year:             row.Year,
		GrossSalary:      row.GrossSalary.String(),
		LOPDays:          row.LOPDays.String(),
		PaidDays:         row.PaidDays.String(),
		Basic:            row.Basic.String(),
		DA:               row.DA.String(),
		HRA:              row.HRA.String(),
		Conveyance:       row.Conveyance.String(),
		MedicalAllowance: row.MedicalAllowance.String(),
		SpecialAllowance: row.SpecialAllowance.String(),
		PF:               row.PF.String(),
		ESI:              row.ESI.String(),
		TotalEarnings:    row.TotalEarnings.String(),
		TotalDeductions:  row.TotalDeductions.String(),
		NetPay:           row.NetPay.String(),
	}
}
