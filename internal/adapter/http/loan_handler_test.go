package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	loanDomain "prestamos-api/internal/domain/loan"
	"prestamos-api/internal/domain/registry"
	"prestamos-api/internal/domain/uow"
	"prestamos-api/internal/testutil/instmock"
	"prestamos-api/internal/testutil/loanmock"
	"prestamos-api/internal/testutil/regmock"
	"prestamos-api/internal/testutil/uowmock"
	"prestamos-api/internal/usecase/loan"
)

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func newLoanHandler(loans *loanmock.Repo, clients *regmock.ClientRepo) *LoanHandler {
	return NewLoanHandler(loan.NewUsecase(loans, clients, uowmock.New()))
}

func TestLoanHandler_Create(t *testing.T) {
	loans := &loanmock.Repo{
		MaxSequenceFn: func(ctx context.Context, clientID uint64) (int, error) { return 0, nil },
		CreateFn: func(ctx context.Context, l *loanDomain.Loan) error {
			l.ID = 9
			return nil
		},
	}
	clients := &regmock.ClientRepo{
		CardFn: func(ctx context.Context, id uint64) (*registry.ClientCard, error) {
			return &registry.ClientCard{
				Client:    registry.Client{ID: id, Name: "Maria Lopez"},
				AgentName: "Laura",
			}, nil
		},
	}
	h := newLoanHandler(loans, clients)

	body := mustJSON(t, map[string]any{
		"id_cliente":        5,
		"monto_prestado":    "10000",
		"tasa_interes":      "10",
		"frecuencia_pago":   "QUINCENAL",
		"numero_cuotas":     5,
		"fecha_primer_pago": "2024-01-15",
	})
	e := newEchoWithValidator()
	req := httptest.NewRequest(http.MethodPost, "/api/prestamos", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	var dto loan.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.ID != 9 || dto.ClientID != 5 || dto.Sequence != 1 {
		t.Fatalf("dto=%+v", dto)
	}
	if dto.Total != "11000.00" || dto.InstallmentAmount != "2200.00" {
		t.Fatalf("total=%s installment=%s", dto.Total, dto.InstallmentAmount)
	}
	if dto.State != string(loanDomain.StateRequested) {
		t.Fatalf("state=%s", dto.State)
	}
	if dto.Client == nil || dto.Client.Name != "Maria Lopez" {
		t.Fatalf("client=%+v", dto.Client)
	}
}

func TestLoanHandler_CreateMissingFields(t *testing.T) {
	h := newLoanHandler(&loanmock.Repo{}, &regmock.ClientRepo{})

	e := newEchoWithValidator()
	req := httptest.NewRequest(http.MethodPost, "/api/prestamos", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(resp.Error, "campos obligatorios") {
		t.Fatalf("error=%q", resp.Error)
	}
}

func TestLoanHandler_GetNotFound(t *testing.T) {
	h := newLoanHandler(&loanmock.Repo{}, &regmock.ClientRepo{})

	e := newEchoWithValidator()
	req := httptest.NewRequest(http.MethodGet, "/api/prestamos/404", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("404")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestLoanHandler_CancelSettledConflict(t *testing.T) {
	loans := &loanmock.Repo{
		GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
			return &loanDomain.Loan{
				ID:          id,
				State:       loanDomain.StateSettled,
				Principal:   decimal.New(10000, 0),
				Outstanding: decimal.Zero,
			}, nil
		},
	}
	repos := uow.Repos{Loans: loans, Installments: &instmock.Repo{}}
	h := NewLoanHandler(loan.NewUsecase(loans, &regmock.ClientRepo{}, uowmock.Passthrough(repos)))

	e := newEchoWithValidator()
	req := httptest.NewRequest(http.MethodPut, "/api/prestamos/9/cancelar", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.Cancel(c); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestLoanHandler_BadPathID(t *testing.T) {
	h := newLoanHandler(&loanmock.Repo{}, &regmock.ClientRepo{})

	e := newEchoWithValidator()
	req := httptest.NewRequest(http.MethodGet, "/api/prestamos/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", rec.Code)
	}
}
