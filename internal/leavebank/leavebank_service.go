package leavebank

import (
	"context"
	"errors"

	"go-hrms/internal/company"
	companyerrors "go-hrms/internal/company/errors"
	leavebankerrors "go-hrms/internal/leavebank/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeVerifier is the slice of the employee repository this service needs.
type EmployeeVerifier interface {
	ExistsInCompany(ctx context.Context, companyID, employeeID uuid.UUID) (bool, error)
}

//go:generate mockgen -source=leavebank_service.go -destination=mock/leavebank_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, companyID string, req UpsertLeaveBankRequest) (*LeaveBankResponse, error)
	BulkUpsert(ctx context.Context, companyID string, req BulkUpsertLeaveBankRequest) ([]LeaveBankResponse, error)
	ListByEmployee(ctx context.Context, companyID, employeeID string) ([]LeaveBankResponse, error)
}

type service struct {
	db          *gorm.DB
	repo        Repository
	companyRepo company.Repository
	employees   EmployeeVerifier
	logger      *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	companyRepo company.Repository,
	employees EmployeeVerifier,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leavebank.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebank.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		companyRepo: companyRepo,
		employees:   employees,
		logger:      l,
	}
}

// Upsert sets an employee's entitlement for a leave type. On update the
// remaining balance moves by the same delta as the total, so days already
// consumed stay consumed.
func (s *service) Upsert(ctx context.Context, companyID string, req UpsertLeaveBankRequest) (*LeaveBankResponse, error) {
	companyUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}
	employeeUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return nil, leavebankerrors.ErrInvalidEmployeeID
	}
	leaveTypeUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return nil, leavebankerrors.ErrInvalidLeaveTypeID
	}

	total, err := decimal.NewFromString(req.TotalAllowed)
	if err != nil || total.IsNegative() {
		return nil, leavebankerrors.ErrInvalidTotalAllowed
	}

	ok, err := s.employees.ExistsInCompany(ctx, companyUID, employeeUID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, leavebankerrors.ErrInvalidEmployeeID
	}

	lt, err := s.companyRepo.GetLeaveType(ctx, companyUID, leaveTypeUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrLeaveTypeNotFound
		}
		return nil, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	bank, err := applyUpsert(ctx, qtx, companyUID, employeeUID, leaveTypeUID, total, req.IsCumulated)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info("leave bank upserted",
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.String("total_allowed", total.String()),
	)

	resp := mapToResponse(bank)
	resp.LeaveType = lt.Name
	return resp, nil
}

// BulkUpsert applies the same delta semantics as Upsert to several leave
// types of one employee, all-or-nothing.
func (s *service) BulkUpsert(ctx context.Context, companyID string, req BulkUpsertLeaveBankRequest) ([]LeaveBankResponse, error) {
	companyUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}
	employeeUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return nil, leavebankerrors.ErrInvalidEmployeeID
	}

	ok, err := s.employees.ExistsInCompany(ctx, companyUID, employeeUID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, leavebankerrors.ErrInvalidEmployeeID
	}

	type parsedItem struct {
		leaveTypeID uuid.UUID
		typeName    string
		total       decimal.Decimal
		isCumulated *bool
	}
	items := make([]parsedItem, 0, len(req.Items))
	for _, item := range req.Items {
		leaveTypeUID, err := uuid.Parse(item.LeaveTypeID)
		if err != nil {
			return nil, leavebankerrors.ErrInvalidLeaveTypeID
		}
		total, err := decimal.NewFromString(item.TotalAllowed)
		if err != nil || total.IsNegative() {
			return nil, leavebankerrors.ErrInvalidTotalAllowed
		}
		lt, err := s.companyRepo.GetLeaveType(ctx, companyUID, leaveTypeUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, companyerrors.ErrLeaveTypeNotFound
			}
			return nil, err
		}
		items = append(items, parsedItem{
			leaveTypeID: leaveTypeUID,
			typeName:    lt.Name,
			total:       total,
			isCumulated: item.IsCumulated,
		})
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	result := make([]LeaveBankResponse, 0, len(items))
	for _, item := range items {
		bank, err := applyUpsert(ctx, qtx, companyUID, employeeUID, item.leaveTypeID, item.total, item.isCumulated)
		if err != nil {
			return nil, err
		}
		resp := mapToResponse(bank)
		resp.LeaveType = item.typeName
		result = append(result, *resp)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info("leave banks bulk upserted",
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("items", len(result)),
	)

	return result, nil
}

func applyUpsert(
	ctx context.Context,
	qtx Repository,
	companyUID, employeeUID, leaveTypeUID uuid.UUID,
	total decimal.Decimal,
	isCumulated *bool,
) (*LeaveBank, error) {
	bank, err := qtx.GetForUpdate(ctx, companyUID, employeeUID, leaveTypeUID)
	switch {
	case err == nil:
		delta := total.Sub(bank.TotalAllowed)
		bank.TotalAllowed = total
		bank.Remaining = bank.Remaining.Add(delta)
		if bank.Remaining.IsNegative() {
			bank.Remaining = decimal.Zero
		}
		if isCumulated != nil {
			bank.IsCumulated = *isCumulated
		}
		if err := qtx.Save(ctx, bank); err != nil {
			return nil, err
		}
		return bank, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		bank = &LeaveBank{
			CompanyID:    companyUID,
			EmployeeID:   employeeUID,
			LeaveTypeID:  leaveTypeUID,
			TotalAllowed: total,
			Remaining:    total,
			IsCumulated:  isCumulated != nil && *isCumulated,
		}
		if err := qtx.Create(ctx, bank); err != nil {
			return nil, err
		}
		return bank, nil
	default:
		return nil, err
	}
}

func (s *service) ListByEmployee(ctx context.Context, companyID, employeeID string) ([]LeaveBankResponse, error) {
	companyUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}
	employeeUID, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, leavebankerrors.ErrInvalidEmployeeID
	}

	banks, err := s.repo.ListByEmployee(ctx, companyUID, employeeUID)
	if err != nil {
		return nil, err
	}

	types, err := s.companyRepo.ListLeaveTypes(ctx, companyUID)
	if err != nil {
		return nil, err
	}
	typeNames := make(map[uuid.UUID]string, len(types))
	for _, lt := range types {
		typeNames[lt.ID] = lt.Name
	}

	result := make([]LeaveBankResponse, 0, len(banks))
	for i := range banks {
		resp := mapToResponse(&banks[i])
		resp.LeaveType = typeNames[banks[i].LeaveTypeID]
		result = append(result, *resp)
	}
	return result, nil
}

func mapToResponse(b *LeaveBank) *LeaveBankResponse {
	return &LeaveBankResponse{
		ID:           b.ID.String(),
		EmployeeID:   b.EmployeeID.String(),
		LeaveTypeID:  b.LeaveTypeID.String(),
		TotalAllowed: b.TotalAllowed.String(),
		Remaining:    b.Remaining.String(),
		IsCumulated:  b.IsCumulated,
	}
}
