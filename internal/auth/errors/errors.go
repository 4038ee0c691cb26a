package autherrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid email or password",
		http.StatusUnauthorized,
	)

	ErrTokenSigningFailed = apperror.New(
		apperror.CodeInternalError,
		"Could not issue access token",
		http.StatusInternalServerError,
	)
)
