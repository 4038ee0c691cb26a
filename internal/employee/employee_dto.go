package employee

type CreateEmployeeRequest struct {
	FullName           string `json:"full_name" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Password           string `json:"password" binding:"required,min=8"`
	Designation        string `json:"designation"`
	ReportingManagerID string `json:"reporting_manager_id" binding:"omitempty,uuid"`
	BankAccountNumber  string `json:"bank_account_number"`
	BankAccountType    string `json:"bank_account_type"`
	EmployeeNumber     string `json:"employee_number"`
}

type UpdateEmployeeRequest struct {
	FullName           string `json:"full_name"`
	Designation        string `json:"designation"`
	ReportingManagerID string `json:"reporting_manager_id" binding:"omitempty,uuid"`
	BankAccountNumber  string `json:"bank_account_number"`
	BankAccountType    string `json:"bank_account_type"`
}

type EmployeeResponse struct {
	ID                 string `json:"id"`
	CompanyID          string `json:"company_id"`
	EmployeeNumber     string `json:"employee_number"`
	FullName           string `json:"full_name"`
	Email              string `json:"email"`
	Designation        string `json:"designation,omitempty"`
	ReportingManagerID string `json:"reporting_manager_id,omitempty"`
	BankAccountNumber  string `json:"bank_account_number,omitempty"`
	BankAccountType    string `json:"bank_account_type,omitempty"`
}
