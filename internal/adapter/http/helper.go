package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"prestamos-api/internal/domain/installment"
	"prestamos-api/internal/domain/loan"
	"prestamos-api/internal/domain/registry"
	"prestamos-api/internal/domain/user"
	authuc "prestamos-api/internal/usecase/auth"
	loanuc "prestamos-api/internal/usecase/loan"
)

func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

func queryID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.QueryParam(name), 10, 64)
}

func badID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
}

// errStatus maps the domain sentinels to HTTP codes. Zero means unmapped.
func errStatus(err error) int {
	switch {
	case errors.Is(err, loan.ErrNotFound),
		errors.Is(err, installment.ErrNotFound),
		errors.Is(err, installment.ErrNoneUnpaid),
		errors.Is(err, registry.ErrClientNotFound),
		errors.Is(err, registry.ErrGuarantorNotFound),
		errors.Is(err, registry.ErrAgentNotFound),
		errors.Is(err, registry.ErrGroupNotFound),
		errors.Is(err, user.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, loan.ErrNotRequested),
		errors.Is(err, loan.ErrCancelNotAllowed),
		errors.Is(err, installment.ErrAlreadyPaid),
		errors.Is(err, user.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, user.ErrBadCredentials),
		errors.Is(err, authuc.ErrInvalidToken):
		return http.StatusUnauthorized
	}
	var ve *loanuc.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	return 0
}

// writeErr answers with the mapped status, or 500 when the error is unknown.
func writeErr(c echo.Context, err error) error {
	return writeErrOr(c, err, http.StatusInternalServerError)
}

// writeErrOr is for create/update paths where an unmapped error is almost
// always a rejected input rather than a server fault.
func writeErrOr(c echo.Context, err error, fallback int) error {
	code := errStatus(err)
	if code == 0 {
		code = fallback
	}
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}
