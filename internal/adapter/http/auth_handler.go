package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"prestamos-api/internal/adapter/middleware"
	"prestamos-api/internal/usecase/auth"
)

type AuthHandler struct{ uc *auth.Usecase }

func NewAuthHandler(uc *auth.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bindValidated(c, &req); err != nil || c.Response().Committed {
		return err
	}
	out, err := h.uc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return writeErrOr(c, err, http.StatusUnauthorized)
	}
	return c.JSON(http.StatusOK, out)
}

type registerReq struct {
	Username string `json:"username" validate:"required,min=4"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"nombre_completo" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"rol" validate:"required,rol"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := bindValidated(c, &req); err != nil || c.Response().Committed {
		return err
	}
	out, err := h.uc.Register(c.Request().Context(), auth.RegisterInput(req))
	if err != nil {
		return writeErrOr(c, err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusCreated, out)
}

// Me echoes the verified token claims back to the caller.
func (h *AuthHandler) Me(c echo.Context) error {
	claims := middleware.OperatorClaims(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
	}
	return c.JSON(http.StatusOK, claims)
}

func (h *AuthHandler) ListUsers(c echo.Context) error {
	out, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) DeactivateUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badID(c)
	}
	if err := h.uc.DeactivateUser(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
