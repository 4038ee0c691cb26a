package payroll

import (
	"context"

	"go-hrms/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -destination=mock/payroll_repo_mock.go -package=mock . Repository
type Repository interface {
	UpsertGross(ctx context.Context, row *GrossPayroll) error
	GrossRowsForPeriod(ctx context.Context, companyID uuid.UUID, month, year int) ([]GrossPayroll, error)

	UpsertComponentAmount(ctx context.Context, row *EmployeeComponentAmount) error
	ListComponentAmounts(ctx context.Context, companyID, employeeID uuid.UUID) ([]EmployeeComponentAmount, error)

	GetMonthly(ctx context.Context, companyID, employeeID uuid.UUID, month, year int) (*MonthlyPayroll, error)
	CreateMonthly(ctx context.Context, row *MonthlyPayroll) error
	UpdateMonthly(ctx context.Context, row *MonthlyPayroll) error
	ListMonthly(ctx context.Context, companyID uuid.UUID, month, year int) ([]MonthlyPayroll, error)

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

func (r *repository) UpsertGross(ctx context.Context, row *GrossPayroll) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "month"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"gross_salary", "total_earnings", "total_deductions", "net_pay", "updated_at",
			}),
		}).
		Create(row).Error
}

func (r *repository) GrossRowsForPeriod(ctx context.Context, companyID uuid.UUID, month, year int) ([]GrossPayroll, error) {
	var rows []GrossPayroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID.String())).
		Where("month = ? AND year = ?", month, year).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpsertComponentAmount(ctx context.Context, row *EmployeeComponentAmount) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "salary_component_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).
		Create(row).Error
}

func (r *repository) ListComponentAmounts(ctx context.Context, companyID, employeeID uuid.UUID) ([]EmployeeComponentAmount, error) {
	var rows []EmployeeComponentAmount
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID.String())).
		Where("employee_id = ?", employeeID).
		Find(&rows).Error
	return rows, err
}

func (r *repository) GetMonthly(ctx context.Context, companyID, employeeID uuid.UUID, month, year int) (*MonthlyPayroll, error) {
	var row MonthlyPayroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID.String())).
		Where("employee_id = ? AND month = ? AND year = ?", employeeID, month, year).
		First(&row).Error
	return &row, err
}

func (r *repository) CreateMonthly(ctx context.Context, row *MonthlyPayroll) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) UpdateMonthly(ctx context.Context, row *MonthlyPayroll) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *repository) ListMonthly(ctx context.Context, companyID uuid.UUID, month, year int) ([]MonthlyPayroll, error) {
	var rows []MonthlyPayroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID.String())).
		Where("month = ? AND year = ?", month, year).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
