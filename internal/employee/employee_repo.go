package employee

import (
	"context"

	"go-hrms/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/employee_repo_mock.go -package=mock . Repository
type Repository interface {
	Create(ctx context.Context, empl *Employee) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	GetAll(ctx context.Context, companyID uuid.UUID) ([]Employee, error)
	ExistsInCompany(ctx context.Context, companyID, employeeID uuid.UUID) (bool, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) GetByID(ctx context.Context, companyID, id uuid.UUID) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID.String())).
		Where("id = ?", id).
		First(&empl).Error
	return &empl, err
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&empl).Error
	return &empl, err
}

func (r *repository) GetAll(ctx context.Context, companyID uuid.UUID) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID.String())).
		Order("employee_number ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) ExistsInCompany(ctx context.Context, companyID, employeeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID.String())).
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID.String())).
		Where("id = ?", id).
		Delete(&Employee{}).Error
}
