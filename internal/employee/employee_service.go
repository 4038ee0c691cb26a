package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-hrms/internal/company"
	companyerrors "go-hrms/internal/company/errors"
	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/leavebank"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const EmployeeOptionsKeyPrefix = "employees:options:"

func GetEmployeeOptionsKey(companyID string) string {
	return EmployeeOptionsKeyPrefix + companyID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db            *gorm.DB
	repo          Repository
	companyRepo   company.Repository
	leaveBankRepo leavebank.Repository
	counter       counter.Repository
	rdb           *redis.Client
	sf            *singleflight.Group
	logger        *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	companyRepo company.Repository,
	leaveBankRepo leavebank.Repository,
	counterRepo counter.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:            db,
		repo:          repo,
		companyRepo:   companyRepo,
		leaveBankRepo: leaveBankRepo,
		counter:       counterRepo,
		rdb:           rdb,
		sf:            &singleflight.Group{},
		logger:        l,
	}
}

// Create onboards an employee: number assignment, credential hashing and one
// leave bank per company leave type, all in one transaction.
func (s *service) Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("email", req.Email),
	)

	companyUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeResponse{}, companyerrors.ErrInvalidCompanyID
	}

	if _, err := s.companyRepo.GetByID(ctx, companyUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, companyerrors.ErrCompanyNotFound
		}
		return EmployeeResponse{}, err
	}

	var managerID *uuid.UUID
	if req.ReportingManagerID != "" {
		mid, err := uuid.Parse(req.ReportingManagerID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrManagerNotFound
		}
		ok, err := s.repo.ExistsInCompany(ctx, companyUID, mid)
		if err != nil {
			return EmployeeResponse{}, err
		}
		if !ok {
			return EmployeeResponse{}, employeeerrors.ErrManagerNotFound
		}
		managerID = &mid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return EmployeeResponse{}, err
	}

	if req.EmployeeNumber == "" {
		nextVal, err := s.counter.GetNextValue(ctx, companyID, "employee_number")
		if err != nil {
			s.logger.Error("create employee generate number failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeNumber = fmt.Sprintf("EMP-%06d", nextVal)
	}

	leaveTypes, err := s.companyRepo.ListLeaveTypes(ctx, companyUID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:                 uuid.New(),
		CompanyID:          companyUID,
		EmployeeNumber:     req.EmployeeNumber,
		FullName:           req.FullName,
		Email:              req.Email,
		PasswordHash:       string(hash),
		Designation:        req.Designation,
		ReportingManagerID: managerID,
		BankAccountNumber:  req.BankAccountNumber,
		BankAccountType:    req.BankAccountType,
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(tx.Error))
		return EmployeeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	banks := make([]leavebank.LeaveBank, 0, len(leaveTypes))
	for _, lt := range leaveTypes {
		if lt.Policy == company.PolicyLOP {
			continue
		}
		banks = append(banks, leavebank.LeaveBank{
			CompanyID:    companyUID,
			EmployeeID:   empl.ID,
			LeaveTypeID:  lt.ID,
			TotalAllowed: lt.DefaultAllocation,
			Remaining:    lt.DefaultAllocation,
			IsCumulated:  lt.Policy == company.PolicyYearlyCumulative,
		})
	}
	if err := s.leaveBankRepo.WithTx(tx).CreateBatch(ctx, banks); err != nil {
		s.logger.Error("create employee seed leave banks failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx, companyID)

	s.logger.Info("employee created",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
		zap.Int("leave_banks_seeded", len(banks)),
	)

	return mapToResponse(empl), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	companyUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	employees, err := s.repo.GetAll(ctx, companyUID)
	if err != nil {
		return nil, err
	}

	result := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		result = append(result, mapToResponse(&employees[i]))
	}
	return result, nil
}

// GetOptions is a cached, trimmed-down listing for dropdowns. Reads collapse
// through singleflight so a cold key hits the database once.
func (s *service) GetOptions(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	cacheKey := GetEmployeeOptionsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var result []EmployeeResponse
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return result, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		employees, err := s.GetAll(ctx, companyID)
		if err != nil {
			return nil, err
		}

		options := make([]EmployeeResponse, 0, len(employees))
		for _, e := range employees {
			options = append(options, EmployeeResponse{
				ID:             e.ID,
				EmployeeNumber: e.EmployeeNumber,
				FullName:       e.FullName,
				Email:          e.Email,
			})
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(options); err == nil {
				_ = s.rdb.Set(ctx, cacheKey, payload, 5*time.Minute).Err()
			}
		}

		return options, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error) {
	companyUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeResponse{}, companyerrors.ErrInvalidCompanyID
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.GetByID(ctx, companyUID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	return mapToResponse(empl), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	companyUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeResponse{}, companyerrors.ErrInvalidCompanyID
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.GetByID(ctx, companyUID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	if req.FullName != "" {
		empl.FullName = req.FullName
	}
	if req.Designation != "" {
		empl.Designation = req.Designation
	}
	if req.BankAccountNumber != "" {
		empl.BankAccountNumber = req.BankAccountNumber
	}
	if req.BankAccountType != "" {
		empl.BankAccountType = req.BankAccountType
	}
	if req.ReportingManagerID != "" {
		mid, err := uuid.Parse(req.ReportingManagerID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrManagerNotFound
		}
		ok, err := s.repo.ExistsInCompany(ctx, companyUID, mid)
		if err != nil {
			return EmployeeResponse{}, err
		}
		if !ok {
			return EmployeeResponse{}, employeeerrors.ErrManagerNotFound
		}
		empl.ReportingManagerID = &mid
	}

	if err := s.repo.Update(ctx, empl); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx, companyID)

	return mapToResponse(empl), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	companyUID, err := uuid.Parse(companyID)
	if err != nil {
		return companyerrors.ErrInvalidCompanyID
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	ok, err := s.repo.ExistsInCompany(ctx, companyUID, uid)
	if err != nil {
		return err
	}
	if !ok {
		return employeeerrors.ErrEmployeeNotFound
	}

	if err := s.repo.Delete(ctx, companyUID, uid); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx, companyID)
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, GetEmployeeOptionsKey(companyID)).Err(); err != nil {
		s.logger.Warn("invalidate employee options cache failed",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
	}
}

func mapToResponse(e *Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                e.ID.String(),
		CompanyID:         e.CompanyID.String(),
		EmployeeNumber:    e.EmployeeNumber,
		FullName:          e.FullName,
		Email:             e.Email,
		Designation:       e.Designation,
		BankAccountNumber: e.BankAccountNumber,
		BankAccountType:   e.BankAccountType,
	}
	if e.ReportingManagerID != nil {
		resp.ReportingManagerID = e.ReportingManagerID.String()
	}
	return resp
}
