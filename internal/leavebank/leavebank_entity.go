package leavebank

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaveBank is one employee's entitlement ledger for one leave type.
// Remaining only moves on approval and revocation, never on application.
type LeaveBank struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_bank_employee_type"`
	LeaveTypeID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_bank_employee_type"`
	TotalAllowed decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	Remaining    decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	IsCumulated  bool            `gorm:"not null;default:false"`
	CreatedAt    time.Time       `gorm:"not null;default:now()"`
	UpdatedAt    time.Time       `gorm:"not null;default:now()"`
}

func (LeaveBank) TableName() string {
	return "leave_banks"
}
