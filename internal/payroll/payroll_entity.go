package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GrossPayroll is the per-period gross input a payroll run starts from,
// written when components are assigned to an employee.
type GrossPayroll struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_gross_payroll_period"`
	Month           int             `gorm:"not null;uniqueIndex:uq_gross_payroll_period"`
	Year            int             `gorm:"not null;uniqueIndex:uq_gross_payroll_period"`
	GrossSalary     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalEarnings   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalDeductions decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	NetPay          decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt       time.Time       `gorm:"not null;default:now()"`
	UpdatedAt       time.Time       `gorm:"not null;default:now()"`
}

func (GrossPayroll) TableName() string {
	return "gross_payrolls"
}

// EmployeeComponentAmount stores the computed amount of one salary component
// for one employee.
type EmployeeComponentAmount struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_component_amount"`
	SalaryComponentID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_component_amount"`
	Amount            decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt         time.Time       `gorm:"not null;default:now()"`
	UpdatedAt         time.Time       `gorm:"not null;default:now()"`
}

func (EmployeeComponentAmount) TableName() string {
	return "employee_component_amounts"
}

// MonthlyPayroll is one finalized payroll line: the full breakdown for one
// employee and period. Regenerating a period overwrites the existing line.
type MonthlyPayroll struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_monthly_payroll_period"`
	EmployeeID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_monthly_payroll_period"`
	Month            int             `gorm:"not null;uniqueIndex:uq_monthly_payroll_period"`
	Year             int             `gorm:"not null;uniqueIndex:uq_monthly_payroll_period"`
	GrossSalary      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	LOPDays          decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	PaidDays         decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	Basic            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DA               decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	HRA              decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Conveyance       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	MedicalAllowance decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	SpecialAllowance decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PF               decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ESI              decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalEarnings    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalDeductions  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	NetPay           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt        time.Time       `gorm:"not null;default:now()"`
	UpdatedAt        time.Time       `gorm:"not null;default:now()"`
}

func (MonthlyPayroll) TableName() string {
	return "monthly_payrolls"
}
