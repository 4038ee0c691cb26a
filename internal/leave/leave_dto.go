package leave

type ApplyLeaveRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	FromDate    string `json:"from_date" binding:"required"`
	ToDate      string `json:"to_date" binding:"required"`
	Duration    string `json:"duration"`
	Reason      string `json:"reason"`
}

type LeaveApplicationResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	LeaveTypeID    string `json:"leave_type_id"`
	LeaveType      string `json:"leave_type,omitempty"`
	SubmittedTo    string `json:"submitted_to,omitempty"`
	FromDate       string `json:"from_date"`
	ToDate         string `json:"to_date"`
	Reason         string `json:"reason,omitempty"`
	Status         string `json:"status"`
	LeaveDuration  string `json:"leave_duration"`
	LeaveDaysTaken string `json:"leave_days_taken"`
	IsLOP          bool   `json:"is_lop"`
}

type ApplyLeaveResponse struct {
	Message string                              `json:"message"`
	IsLOP   bool                                `json:"is_lop"`
	Data    map[string]LeaveApplicationResponse `json:"data"`
}

type TransitionLeaveRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject revoke cancel"`
}
