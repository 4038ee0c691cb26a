package payrollerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrComponentsNotConfigured = apperror.New(
		apperror.CodeNotFound,
		"Salary components are not configured for this company",
		http.StatusNotFound,
	)

	ErrNoGrossSalary = apperror.New(
		apperror.CodeNotFound,
		"No gross salary added.",
		http.StatusNotFound,
	)

	ErrEffectiveDaysNotConfigured = apperror.New(
		apperror.CodeInvalidState,
		"Monthly effective days are not configured for this period",
		http.StatusConflict,
	)

	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll not found for this employee and period",
		http.StatusNotFound,
	)

	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid payroll period",
		http.StatusBadRequest,
	)

	ErrInvalidGrossSalary = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid gross salary",
		http.StatusBadRequest,
	)
)
