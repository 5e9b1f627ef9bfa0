package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"prestamos-api/internal/adapter/middleware"
	loanDomain "prestamos-api/internal/domain/loan"
	"prestamos-api/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

func (h *LoanHandler) Create(c echo.Context) error {
	var in loan.CreateLoanInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	in.RegisteredBy = middleware.OperatorID(c)
	dto, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeErrOr(c, err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badID(c)
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// List accepts ?estado= and ?id_cliente= filters, matching how the
// collection is browsed from the back office.
func (h *LoanHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if s := c.QueryParam("estado"); s != "" {
		dtos, err := h.uc.ListByState(ctx, loanDomain.State(s))
		if err != nil {
			return writeErr(c, err)
		}
		return c.JSON(http.StatusOK, dtos)
	}
	if c.QueryParam("id_cliente") != "" {
		clientID, err := queryID(c, "id_cliente")
		if err != nil {
			return badID(c)
		}
		dtos, err := h.uc.ListByClient(ctx, clientID)
		if err != nil {
			return writeErr(c, err)
		}
		return c.JSON(http.StatusOK, dtos)
	}
	dtos, err := h.uc.List(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) OpenByClient(c echo.Context) error {
	clientID, err := pathID(c, "id_cliente")
	if err != nil {
		return badID(c)
	}
	dto, err := h.uc.OpenByClient(c.Request().Context(), clientID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Search(c echo.Context) error {
	name := c.QueryParam("nombre")
	if name == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "nombre is required"})
	}
	dtos, err := h.uc.SearchActiveByClientName(c.Request().Context(), name)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) Delinquent(c echo.Context) error {
	dtos, err := h.uc.ListDelinquent(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) PortfolioSummary(c echo.Context) error {
	out, err := h.uc.PortfolioSummary(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) Approve(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badID(c)
	}
	dto, schedule, err := h.uc.Approve(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"prestamo": dto,
		"cuotas":   schedule,
	})
}

func (h *LoanHandler) Liquidate(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badID(c)
	}
	dto, err := h.uc.Liquidate(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Cancel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badID(c)
	}
	dto, err := h.uc.Cancel(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Recount(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badID(c)
	}
	counters, err := h.uc.RecomputeCounters(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"cuotas_pagadas":    counters.Paid,
		"cuotas_pendientes": counters.Pending,
		"cuotas_vencidas":   counters.Overdue,
		"saldo_pendiente":   counters.Outstanding.StringFixed(2),
	})
}

type updateNotesReq struct {
	Notes string `json:"notas"`
}

func (h *LoanHandler) UpdateNotes(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badID(c)
	}
	var req updateNotesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.uc.UpdateNotes(c.Request().Context(), id, req.Notes); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
