package company

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -destination=mock/company_repo_mock.go -package=mock . Repository
type Repository interface {
	Create(ctx context.Context, company *Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
	GetByName(ctx context.Context, name string) (*Company, error)
	GetAll(ctx context.Context) ([]Company, error)
	Update(ctx context.Context, company *Company) error

	CreateLeaveType(ctx context.Context, lt *LeaveType) error
	ListLeaveTypes(ctx context.Context, companyID uuid.UUID) ([]LeaveType, error)
	GetLeaveType(ctx context.Context, companyID, leaveTypeID uuid.UUID) (*LeaveType, error)
	GetLeaveTypeByPolicy(ctx context.Context, companyID uuid.UUID, policy string) (*LeaveType, error)

	CreateHoliday(ctx context.Context, holiday *Holiday) error
	ListHolidays(ctx context.Context, companyID uuid.UUID) ([]Holiday, error)
	HolidayDates(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]time.Time, error)

	CreateSalaryComponent(ctx context.Context, sc *SalaryComponent) error
	ListSalaryComponents(ctx context.Context, companyID uuid.UUID) ([]SalaryComponent, error)

	UpsertEffectiveDays(ctx context.Context, row *MonthlyEffectiveDays) error
	GetEffectiveDays(ctx context.Context, companyID uuid.UUID, year, month int) (*MonthlyEffectiveDays, error)

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

func (r *repository) Create(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	return &company, err
}

func (r *repository) GetByName(ctx context.Context, name string) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&company).Error
	return &company, err
}

func (r *repository) GetAll(ctx context.Context) ([]Company, error) {
	var companies []Company
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&companies).Error
	return companies, err
}

func (r *repository) Update(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *repository) CreateLeaveType(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Create(lt).Error
}

func (r *repository) ListLeaveTypes(ctx context.Context, companyID uuid.UUID) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) GetLeaveType(ctx context.Context, companyID, leaveTypeID uuid.UUID) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, leaveTypeID).
		First(&lt).Error
	return &lt, err
}

func (r *repository) GetLeaveTypeByPolicy(ctx context.Context, companyID uuid.UUID, policy string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND policy = ?", companyID, policy).
		Order("created_at ASC").
		First(&lt).Error
	return &lt, err
}

func (r *repository) CreateHoliday(ctx context.Context, holiday *Holiday) error {
	return r.db.WithContext(ctx).Create(holiday).Error
}

func (r *repository) ListHolidays(ctx context.Context, companyID uuid.UUID) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) HolidayDates(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&Holiday{}).
		Where("company_id = ? AND date >= ? AND date <= ?", companyID, from, to).
		Order("date ASC").
		Pluck("date", &dates).Error
	return dates, err
}

func (r *repository) CreateSalaryComponent(ctx context.Context, sc *SalaryComponent) error {
	return r.db.WithContext(ctx).Create(sc).Error
}

func (r *repository) ListSalaryComponents(ctx context.Context, companyID uuid.UUID) ([]SalaryComponent, error) {
	var components []SalaryComponent
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&components).Error
	return components, err
}

func (r *repository) UpsertEffectiveDays(ctx context.Context, row *MonthlyEffectiveDays) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}, {Name: "year"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"effective_days", "updated_at"}),
		}).
		Create(row).Error
}

func (r *repository) GetEffectiveDays(ctx context.Context, companyID uuid.UUID, year, month int) (*MonthlyEffectiveDays, error) {
	var row MonthlyEffectiveDays
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND year = ? AND month = ?", companyID, year, month).
		First(&row).Error
	return &row, err
}
