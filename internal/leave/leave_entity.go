package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusRevoked   = "REVOKED"
	StatusCancelled = "CANCELLED"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionRevoke  = "revoke"
	ActionCancel  = "cancel"
)

// LeaveApplication is one contiguous segment of requested days. A single
// request can materialize several rows when the allocation engine splits it
// into allowed and unpaid parts.
type LeaveApplication struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	LeaveTypeID    uuid.UUID       `gorm:"type:uuid;not null"`
	SubmittedTo    uuid.UUID       `gorm:"type:uuid;not null"`
	FromDate       time.Time       `gorm:"type:date;not null"`
	ToDate         time.Time       `gorm:"type:date;not null"`
	Reason         string          `gorm:"type:text"`
	Status         string          `gorm:"type:varchar(20);not null;index"`
	LeaveDuration  decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	LeaveDaysTaken decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	CreatedAt      time.Time       `gorm:"not null;default:now()"`
	UpdatedAt      time.Time       `gorm:"not null;default:now()"`
}

func (LeaveApplication) TableName() string {
	return "leave_applications"
}
