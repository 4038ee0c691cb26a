package companyerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrCompanyAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Company with the same name already exists",
		http.StatusConflict,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)

	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave type not found",
		http.StatusNotFound,
	)

	ErrLeaveTypeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Leave type with the same name already exists",
		http.StatusConflict,
	)

	ErrLOPTypeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A Loss of Pay leave type is already configured",
		http.StatusConflict,
	)

	ErrHolidayAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A holiday already exists on this date",
		http.StatusConflict,
	)

	ErrSalaryComponentAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Salary component with the same name already exists",
		http.StatusConflict,
	)

	ErrEffectiveDaysNotFound = apperror.New(
		apperror.CodeNotFound,
		"Effective days not configured for this period",
		http.StatusNotFound,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidAllocation = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid default allocation",
		http.StatusBadRequest,
	)
)
