package leaveerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave application not found",
		http.StatusNotFound,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date range, expected from_date <= to_date in YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidDuration = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid duration",
		http.StatusBadRequest,
	)

	ErrOverlappingLeave = apperror.New(
		apperror.CodeConflict,
		"An active leave application already covers part of this period",
		http.StatusConflict,
	)

	ErrNoWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"The requested period contains no working days",
		http.StatusBadRequest,
	)

	ErrLeaveBankNotFound = apperror.New(
		apperror.CodeNotFound,
		"No leave bank exists for this employee and leave type",
		http.StatusNotFound,
	)

	ErrManagerNotAssigned = apperror.New(
		apperror.CodeInvalidInput,
		"Employee has no reporting manager assigned",
		http.StatusBadRequest,
	)

	ErrLOPTypeNotConfigured = apperror.New(
		apperror.CodeInvalidState,
		"No loss-of-pay leave type is configured for this company",
		http.StatusConflict,
	)

	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"This status change is not allowed from the application's current status",
		http.StatusConflict,
	)
)
