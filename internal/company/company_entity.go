package company

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Company struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string         `gorm:"type:varchar(150);not null"`
	Email     string         `gorm:"type:varchar(255);index"`
	IsActive  bool           `gorm:"not null;default:true"`
	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}

// Leave policies. The policy tag is resolved once at creation; the allocation
// engine never inspects type names.
const (
	PolicyMonthlyCapped    = "MONTHLY_CAPPED"
	PolicyYearlyCumulative = "YEARLY_CUMULATIVE"
	PolicyLOP              = "LOP"
)

type LeaveType struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_type_company_name"`
	Name              string          `gorm:"type:varchar(100);not null;uniqueIndex:uq_leave_type_company_name"`
	Policy            string          `gorm:"type:varchar(30);not null"`
	DefaultAllocation decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	CreatedAt         time.Time       `gorm:"not null;default:now()"`
	UpdatedAt         time.Time       `gorm:"not null;default:now()"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}

// ResolvePolicy derives the policy tag from a leave type name when the request
// does not set one explicitly.
func ResolvePolicy(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))

	if n == "lop" || strings.Contains(n, "loss of pay") || strings.Contains(n, "without pay") {
		return PolicyLOP
	}

	for _, kw := range []string{"sick", "maternity", "paternity", "marriage"} {
		if strings.Contains(n, kw) {
			return PolicyYearlyCumulative
		}
	}

	return PolicyMonthlyCapped
}

type Holiday struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_holiday_company_date"`
	Name      string    `gorm:"type:varchar(150);not null"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uq_holiday_company_date"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Holiday) TableName() string {
	return "holidays"
}

const (
	ComponentKindEarning   = "EARNING"
	ComponentKindDeduction = "DEDUCTION"
)

type SalaryComponent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_salary_component_company_name"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_salary_component_company_name"`
	Kind      string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (SalaryComponent) TableName() string {
	return "salary_components"
}

// MonthlyEffectiveDays is the payable-day baseline for one payroll period.
// Payroll generation refuses to run for a period that has no row.
type MonthlyEffectiveDays struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_effective_days_period"`
	Year          int       `gorm:"not null;uniqueIndex:uq_effective_days_period"`
	Month         int       `gorm:"not null;uniqueIndex:uq_effective_days_period"`
	EffectiveDays int       `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null;default:now()"`
	UpdatedAt     time.Time `gorm:"not null;default:now()"`
}

func (MonthlyEffectiveDays) TableName() string {
	return "monthly_effective_days"
}
