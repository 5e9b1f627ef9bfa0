package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"prestamos-api/internal/adapter/middleware"
	"prestamos-api/internal/usecase/installment"
)

type InstallmentHandler struct{ uc *installment.Usecase }

func NewInstallmentHandler(uc *installment.Usecase) *InstallmentHandler {
	return &InstallmentHandler{uc: uc}
}

func (h *InstallmentHandler) Pay(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badID(c)
	}
	operator := middleware.OperatorID(c)
	var res *installment.PaymentResult
	if operator != 0 {
		res, err = h.uc.PayWithAudit(c.Request().Context(), id, operator)
	} else {
		res, err = h.uc.Pay(c.Request().Context(), id)
	}
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *InstallmentHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badID(c)
	}
	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *InstallmentHandler) ListByLoan(c echo.Context) error {
	loanID, err := pathID(c, "id_prestamo")
	if err != nil {
		return badID(c)
	}
	out, err := h.uc.ListByLoan(c.Request().Context(), loanID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *InstallmentHandler) ListUnpaidByLoan(c echo.Context) error {
	loanID, err := pathID(c, "id_prestamo")
	if err != nil {
		return badID(c)
	}
	out, err := h.uc.ListUnpaidByLoan(c.Request().Context(), loanID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *InstallmentHandler) NextUnpaid(c echo.Context) error {
	loanID, err := pathID(c, "id_prestamo")
	if err != nil {
		return badID(c)
	}
	out, err := h.uc.NextUnpaid(c.Request().Context(), loanID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
