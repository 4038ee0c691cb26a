package leave

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -destination=mock/leave_repo_mock.go -package=mock . Repository
type Repository interface {
	Create(ctx context.Context, app *LeaveApplication) error
	CreateBatch(ctx context.Context, apps []*LeaveApplication) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*LeaveApplication, error)
	// GetByIDForUpdate takes a row lock; only call inside a transaction.
	GetByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*LeaveApplication, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, employeeID *uuid.UUID) ([]LeaveApplication, error)
	HasOverlappingActive(ctx context.Context, companyID, employeeID uuid.UUID, from, to time.Time) (bool, error)
	// SumDaysTaken totals leave_days_taken over PENDING and APPROVED
	// applications for one employee and leave type. A nil range means all
	// history; otherwise only applications fully inside [from, to] count.
	SumDaysTaken(ctx context.Context, companyID, employeeID, leaveTypeID uuid.UUID, from, to *time.Time) (decimal.Decimal, error)
	// SumLOPDays totals unpaid days of active applications touching the
	// given payroll period, joining on the company's LOP-tagged types.
	SumLOPDays(ctx context.Context, companyID, employeeID uuid.UUID, month, year int) (decimal.Decimal, error)
	Update(ctx context.Context, app *LeaveApplication) error
	WithTx(tx *gorm.DB) Repository
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, app *LeaveApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *repository) CreateBatch(ctx context.Context, apps []*LeaveApplication) error {
	if len(apps) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&apps).Error
}

func (r *repository) GetByID(ctx context.Context, companyID, id uuid.UUID) (*LeaveApplication, error) {
	var app LeaveApplication
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&app).Error
	return &app, err
}

func (r *repository) GetByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*LeaveApplication, error) {
	var app LeaveApplication
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&app).Error
	return &app, err
}

func (r *repository) ListByCompany(ctx context.Context, companyID uuid.UUID, employeeID *uuid.UUID) ([]LeaveApplication, error) {
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if employeeID != nil {
		q = q.Where("employee_id = ?", *employeeID)
	}

	var apps []LeaveApplication
	err := q.Order("from_date DESC, created_at DESC").Find(&apps).Error
	return apps, err
}

func (r *repository) HasOverlappingActive(ctx context.Context, companyID, employeeID uuid.UUID, from, to time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveApplication{}).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("from_date <= ? AND to_date >= ?", to, from).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) SumDaysTaken(ctx context.Context, companyID, employeeID, leaveTypeID uuid.UUID, from, to *time.Time) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).
		Model(&LeaveApplication{}).
		Where("company_id = ? AND employee_id = ? AND leave_type_id = ?", companyID, employeeID, leaveTypeID).
		Where("status IN ?", []string{StatusPending, StatusApproved})
	if from != nil && to != nil {
		q = q.Where("from_date >= ? AND to_date <= ?", *from, *to)
	}

	var total decimal.NullDecimal
	err := q.Select("SUM(leave_days_taken)").Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *repository) SumLOPDays(ctx context.Context, companyID, employeeID uuid.UUID, month, year int) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&LeaveApplication{}).
		Joins("JOIN leave_types ON leave_types.id = leave_applications.leave_type_id").
		Where("leave_applications.company_id = ? AND leave_applications.employee_id = ?", companyID, employeeID).
		Where("leave_types.policy = ?", "LOP").
		Where("leave_applications.status IN ?", []string{StatusPending, StatusApproved}).
		Where(`(EXTRACT(MONTH FROM from_date) = ? AND EXTRACT(YEAR FROM from_date) = ?)
			OR (EXTRACT(MONTH FROM to_date) = ? AND EXTRACT(YEAR FROM to_date) = ?)`,
			month, year, month, year).
		Select("SUM(leave_applications.leave_days_taken)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *repository) Update(ctx context.Context, app *LeaveApplication) error {
	return r.db.WithContext(ctx).Save(app).Error
}
