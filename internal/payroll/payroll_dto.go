package payroll

type GeneratePayrollRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=2000,max=2100"`
}

type GeneratePayrollResponse struct {
	Message string `json:"message"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
}

type AssignComponentsRequest struct {
	GrossSalary string `json:"gross_salary" binding:"required"`
}

type AssignComponentsResponse struct {
	EmployeeID  string            `json:"employee_id"`
	GrossSalary string            `json:"gross_salary"`
	Components  map[string]string `json:"components"`
	NetPay      string            `json:"net_pay"`
}

type MonthlyPayrollResponse struct {
	ID               string `json:"id"`
	EmployeeID       string `json:"employee_id"`
	EmployeeName     string `json:"employee_name,omitempty"`
	Month            int    `json:"month"`
	Year             int    `json:"year"`
	GrossSalary      string `json:"gross_salary"`
	LOPDays          string `json:"lop_days"`
	PaidDays         string `json:"paid_days"`
	Basic            string `json:"basic"`
	DA               string `json:"da"`
	HRA              string `json:"hra"`
	Conveyance       string `json:"conveyance"`
	MedicalAllowance string `json:"medical_allowance"`
	SpecialAllowance string `json:"special_allowance"`
	PF               string `json:"pf"`
	ESI              string `json:"esi"`
	TotalEarnings    string `json:"total_earnings"`
	TotalDeductions  string `json:"total_deductions"`
	NetPay           string `json:"net_pay"`
}

type GetPayrollsFilterRequest struct {
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
	Year  int `form:"year" binding:"omitempty,min=2000,max=2100"`
}
