package auth

import "go-hrms/internal/employee"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string                    `json:"access_token"`
	TokenType   string                    `json:"token_type"`
	ExpiresIn   int64                     `json:"expires_in"`
	Employee    employee.EmployeeResponse `json:"employee"`
}
