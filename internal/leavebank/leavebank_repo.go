package leavebank

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -destination=mock/leavebank_repo_mock.go -package=mock . Repository
type Repository interface {
	Create(ctx context.Context, bank *LeaveBank) error
	CreateBatch(ctx context.Context, banks []LeaveBank) error
	Get(ctx context.Context, companyID, employeeID, leaveTypeID uuid.UUID) (*LeaveBank, error)
	// GetForUpdate takes a row lock; only call inside a transaction.
	GetForUpdate(ctx context.Context, companyID, employeeID, leaveTypeID uuid.UUID) (*LeaveBank, error)
	ListByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]LeaveBank, error)
	Save(ctx context.Context, bank *LeaveBank) error
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

func (r *repository) Create(ctx context.Context, bank *LeaveBank) error {
	return r.db.WithContext(ctx).Create(bank).Error
}

func (r *repository) CreateBatch(ctx context.Context, banks []LeaveBank) error {
	if len(banks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&banks).Error
}

func (r *repository) Get(ctx context.Context, companyID, employeeID, leaveTypeID uuid.UUID) (*LeaveBank, error) {
	var bank LeaveBank
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ? AND leave_type_id = ?", companyID, employeeID, leaveTypeID).
		First(&bank).Error
	return &bank, err
}

func (r *repository) GetForUpdate(ctx context.Context, companyID, employeeID, leaveTypeID uuid.UUID) (*LeaveBank, error) {
	var bank LeaveBank
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("company_id = ? AND employee_id = ? AND leave_type_id = ?", companyID, employeeID, leaveTypeID).
		First(&bank).Error
	return &bank, err
}

func (r *repository) ListByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]LeaveBank, error) {
	var banks []LeaveBank
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Order("created_at ASC").
		Find(&banks).Error
	return banks, err
}

func (r *repository) Save(ctx context.Context, bank *LeaveBank) error {
	return r.db.WithContext(ctx).Save(bank).Error
}
