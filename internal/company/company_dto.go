package company

type CreateCompanyRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type UpdateCompanyRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive *bool  `json:"is_active"`
}

type CompanyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

type CreateLeaveTypeRequest struct {
	Name              string `json:"name" binding:"required"`
	Policy            string `json:"policy" binding:"omitempty,oneof=MONTHLY_CAPPED YEARLY_CUMULATIVE LOP"`
	DefaultAllocation string `json:"default_allocation"`
}

type LeaveTypeResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Policy            string `json:"policy"`
	DefaultAllocation string `json:"default_allocation"`
}

type CreateHolidayRequest struct {
	Name string `json:"name" binding:"required"`
	Date string `json:"date" binding:"required"`
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

type CreateSalaryComponentRequest struct {
	Name string `json:"name" binding:"required"`
	Kind string `json:"kind" binding:"required,oneof=EARNING DEDUCTION"`
}

type SalaryComponentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type UpsertEffectiveDaysRequest struct {
	Year          int `json:"year" binding:"required,min=2000,max=2100"`
	Month         int `json:"month" binding:"required,min=1,max=12"`
	EffectiveDays int `json:"effective_days" binding:"required,min=1,max=31"`
}

type EffectiveDaysResponse struct {
	Year          int `json:"year"`
	Month         int `json:"month"`
	EffectiveDays int `json:"effective_days"`
}
