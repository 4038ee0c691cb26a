package employeeerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeNotFound,
		"Employee does not belong to this company",
		http.StatusNotFound,
	)

	ErrEmailAlreadyUsed = apperror.New(
		apperror.CodeConflict,
		"Email is already registered",
		http.StatusConflict,
	)

	ErrManagerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Reporting manager not found in this company",
		http.StatusNotFound,
	)

	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
)
