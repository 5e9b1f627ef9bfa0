package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"prestamos-api/internal/usecase/registry"
)

type RegistryHandler struct{ uc *registry.Usecase }

func NewRegistryHandler(uc *registry.Usecase) *RegistryHandler { return &RegistryHandler{uc: uc} }

func includeInactive(c echo.Context) bool { return c.QueryParam("incluir_inactivos") == "1" }

// ---- clients ----

type clientReq struct {
	Name           string  `json:"nombre" validate:"required"`
	Address        string  `json:"direccion"`
	Phone          string  `json:"telefono" validate:"telefono"`
	SecondaryPhone string  `json:"telefono_secundario" validate:"telefono"`
	AgentID        uint64  `json:"id_promotor" validate:"required"`
	GroupID        *uint64 `json:"id_grupo"`
	GuarantorID    *uint64 `json:"id_aval"`
	Notes          string  `json:"notas"`
}

func (r clientReq) input() registry.ClientInput {
	return registry.ClientInput{
		Name:           r.Name,
		Address:        r.Address,
		Phone:          r.Phone,
		SecondaryPhone: r.SecondaryPhone,
		AgentID:        r.AgentID,
		GroupID:        r.GroupID,
		GuarantorID:    r.GuarantorID,
		Notes:          r.Notes,
	}
}

func bindValidated[T any](c echo.Context, req *T) error {
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	return nil
}

func (h *RegistryHandler) CreateClient(c echo.Context) error {
	var req clientReq
	if err := bindValidated(c, &req); err != nil || c.Response().Committed {
		return err
	}
	out, err := h.uc.CreateClient(c.Request().Context(), req.input())
	if err != nil {
		return writeErrOr(c, err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *RegistryHandler) UpdateClient(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badID(c)
	}
	var req clientReq
	if err := bindValidated(c, &req); err != nil || c.Response().Committed {
		return err
	}
	out, err := h.uc.UpdateClient(c.Request().Context(), id, req.input())
	if err != nil {
		return writeErrOr(c, err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RegistryHandler) GetClient(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badID(c)
	}
	out, err := h.uc.GetClient(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RegistryHandler) ListClients(c echo.Context) error {
	if name := c.QueryParam("nombre"); name != "" {
		out, err := h.uc.SearchClients(c.Request().Context(), name)
		if err != nil {
			return writeErr(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}
	out, err := h.uc.ListClients(c.Request().Context(), includeInactive(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RegistryHandler) ClientsWithLoans(c echo.Context) error {
	out, err := h.uc.ClientsWithLoans(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RegistryHandler) DeactivateClient(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badID(c)
	}
	if err := h.uc.DeactivateClient(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RegistryHandler) ReactivateClient(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badID(c)
	}
	if err := h.uc.ReactivateClient(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- guarantors ----

type personReq struct {
	Name    string `json:"nombre" validate:"required"`
	Phone   string `json:"telefono" validate:"telefono"`
	Address string `json:"direccion"`
}

func (r personReq) input() registry.PersonInput {
	return registry.PersonInput{Name: r.Name, Phone: r.Phone, Address: r.Address}
}

func (h *RegistryHandler) CreateGuarantor(c echo.Context) error {
	var req personReq
	if err := bindValidated(c, &req); err != nil || c.Response().Committed {
		return err
	}
	out, err := h.uc.CreateGuarantor(c.Request().Context(), req.input())
	if err != nil {
		return writeErrOr(c, err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *RegistryHandler) UpdateGuarantor(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badID(c)
	}
	var req personReq
	if err := bindValidated(c, &req); err != nil || c.Response().Committed {
		return err
	}
	out, err := h.uc.UpdateGuarantor(c.Request().Context(), id, req.input())
	if err != nil {
		return writeErrOr(c, err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RegistryHandler) ListGuarantors(c echo.Context) error {
	out, err := h.uc.ListGuarantors(c.Request().Context(), includeInactive(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RegistryHandler) DeactivateGuarantor(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badID(c)
	}
	if err := h.uc.DeactivateGuarantor(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- agents ----

func (h *RegistryHandler) CreateAgent(c echo.Context) error {
	var req personReq
	if err := bindValidated(c, &req); err != nil || c.Response().Committed {
		return err
	}
	out, err := h.uc.CreateAgent(c.Request().Context(), req.input())
	if err != nil {
		return writeErrOr(c, err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *RegistryHandler) UpdateAgent(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badID(c)
	}
	var req personReq
	if err := bindValidated(c, &req); err != nil || c.Response().Committed {
		return err
	}
	out, err := h.uc.UpdateAgent(c.Request().Context(), id, req.input())
	if err != nil {
		return writeErrOr(c, err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RegistryHandler) ListAgents(c echo.Context) error {
	out, err := h.uc.ListAgents(c.Request().Context(), includeInactive(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RegistryHandler) DeactivateAgent(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badID(c)
	}
	if err := h.uc.DeactivateAgent(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- groups ----

type groupReq struct {
	Name        string `json:"nombre" validate:"required"`
	Description string `json:"descripcion"`
}

func (h *RegistryHandler) CreateGroup(c echo.Context) error {
	var req groupReq
	if err := bindValidated(c, &req); err != nil || c.Response().Committed {
		return err
	}
	out, err := h.uc.CreateGroup(c.Request().Context(), registry.GroupInput(req))
	if err != nil {
		return writeErrOr(c, err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *RegistryHandler) UpdateGroup(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badID(c)
	}
	var req groupReq
	if err := bindValidated(c, &req); err != nil || c.Response().Committed {
		return err
	}
	out, err := h.uc.UpdateGroup(c.Request().Context(), id, registry.GroupInput(req))
	if err != nil {
		return writeErrOr(c, err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RegistryHandler) ListGroups(c echo.Context) error {
	out, err := h.uc.ListGroups(c.Request().Context(), includeInactive(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RegistryHandler) DeactivateGroup(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badID(c)
	}
	if err := h.uc.DeactivateGroup(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
