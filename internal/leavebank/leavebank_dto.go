package leavebank

type UpsertLeaveBankRequest struct {
	EmployeeID   string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID  string `json:"leave_type_id" binding:"required,uuid"`
	TotalAllowed string `json:"total_allowed" binding:"required"`
	IsCumulated  *bool  `json:"is_cumulated"`
}

type LeaveBankItem struct {
	LeaveTypeID  string `json:"leave_type_id" binding:"required,uuid"`
	TotalAllowed string `json:"total_allowed" binding:"required"`
	IsCumulated  *bool  `json:"is_cumulated"`
}

type BulkUpsertLeaveBankRequest struct {
	EmployeeID string          `json:"employee_id" binding:"required,uuid"`
	Items      []LeaveBankItem `json:"items" binding:"required,min=1,dive"`
}

type LeaveBankResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	LeaveTypeID  string `json:"leave_type_id"`
	LeaveType    string `json:"leave_type,omitempty"`
	TotalAllowed string `json:"total_allowed"`
	Remaining    string `json:"remaining"`
	IsCumulated  bool   `json:"is_cumulated"`
}
