package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID          uuid.UUID  `gorm:"type:uuid;index"`
	EmployeeNumber     string     `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_company_number"`
	FullName           string     `gorm:"type:varchar(150);not null"`
	Email              string     `gorm:"uniqueIndex"`
	PasswordHash       string     `gorm:"type:varchar(100);not null"`
	Designation        string     `gorm:"type:varchar(100)"`
	ReportingManagerID *uuid.UUID `gorm:"type:uuid"`
	BankAccountNumber  string     `gorm:"type:varchar(34)"`
	BankAccountType    string     `gorm:"type:varchar(20)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Employee) TableName() string {
	return "employees"
}
