package leavebankerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrLeaveBankNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave bank not found for this employee and leave type",
		http.StatusNotFound,
	)

	ErrInvalidTotalAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid total allowed, expected a non-negative number",
		http.StatusBadRequest,
	)

	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)

	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave type ID",
		http.StatusBadRequest,
	)
)
