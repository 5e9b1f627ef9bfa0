package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"prestamos-api/internal/usecase/delinquency"
	"prestamos-api/internal/usecase/report"
)

type ReportHandler struct {
	uc  *report.Usecase
	del *delinquency.Usecase
}

func NewReportHandler(uc *report.Usecase, del *delinquency.Usecase) *ReportHandler {
	return &ReportHandler{uc: uc, del: del}
}

// queryDate returns nil when the param is absent so the usecase can fall
// back to the current week.
func queryDate(c echo.Context, name string) (*time.Time, error) {
	s := c.QueryParam(name)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}

func queryAgent(c echo.Context) (*uint64, error) {
	if c.QueryParam("id_promotor") == "" {
		return nil, nil
	}
	id, err := queryID(c, "id_promotor")
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (h *ReportHandler) WeeklyBilling(c echo.Context) error {
	start, err := queryDate(c, "fecha_inicio")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "fecha_inicio must be YYYY-MM-DD"})
	}
	end, err := queryDate(c, "fecha_fin")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "fecha_fin must be YYYY-MM-DD"})
	}
	agent, err := queryAgent(c)
	if err != nil {
		return badID(c)
	}
	out, err := h.uc.WeeklyBilling(c.Request().Context(), start, end, agent)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) AgentWeek(c echo.Context) error {
	agentID, err := pathID(c, "id_promotor")
	if err != nil {
		return badID(c)
	}
	start, err := queryDate(c, "fecha_inicio")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "fecha_inicio must be YYYY-MM-DD"})
	}
	end, err := queryDate(c, "fecha_fin")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "fecha_fin must be YYYY-MM-DD"})
	}
	rows, err := h.uc.AgentWeek(c.Request().Context(), agentID, start, end)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) CollectionSummary(c echo.Context) error {
	rows, err := h.uc.CollectionSummary(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) Overdue(c echo.Context) error {
	rows, err := h.uc.Overdue(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) PastDuePortfolio(c echo.Context) error {
	agent, err := queryAgent(c)
	if err != nil {
		return badID(c)
	}
	rows, err := h.uc.PastDuePortfolio(c.Request().Context(), agent)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// MarkOverdue exposes the nightly delinquency scan so operators can run it
// on demand after a data fix.
func (h *ReportHandler) MarkOverdue(c echo.Context) error {
	res, err := h.del.MarkOverdue(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
