package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jforero/kardex-api/internal/application/dto"
	"github.com/jforero/kardex-api/internal/domain"
)

// respondWith devuelve la respuesta de mapError para el error dado.
func respondWith(t *testing.T, err error) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return mapError(c, err)
	})
	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, reqErr)

	var body dto.ErrorResponse
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp, body
}

func TestMapError_CodigosEstables(t *testing.T) {
	casos := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION_ERROR"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrStockNegative, http.StatusConflict, "STOCK_NEGATIVE_NOT_ALLOWED"},
		{domain.ErrSameWarehouse, http.StatusBadRequest, "SAME_WAREHOUSE_NOT_ALLOWED"},
		{domain.ErrDuplicateCode, http.StatusConflict, "DUPLICATE_CODE"},
		{domain.ErrItemHasMoves, http.StatusConflict, "ITEM_HAS_MOVES"},
		{domain.ErrNoTargetWarehouse, http.StatusConflict, "NO_TARGET_WAREHOUSE"},
		{domain.ErrDuplicateRequest, http.StatusConflict, "DUPLICATE_REQUEST"},
		{domain.ErrStockUnavailable, http.StatusServiceUnavailable, "STOCK_UNAVAILABLE"},
	}
	for _, tc := range casos {
		t.Run(tc.code, func(t *testing.T) {
			resp, body := respondWith(t, tc.err)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.False(t, body.OK)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

// Un error envuelto conserva su mapeo (errors.Is sobre la cadena).
func TestMapError_ErroresEnvueltos(t *testing.T) {
	wrapped := fmt.Errorf("%w: timeout leyendo kardex", domain.ErrStockUnavailable)
	resp, body := respondWith(t, wrapped)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "STOCK_UNAVAILABLE", body.Code)
}

// Errores no anticipados: 500 genérico sin detalle de almacenamiento.
func TestMapError_ErrorDesconocidoNoFiltraDetalle(t *testing.T) {
	resp, body := respondWith(t, errors.New("pq: conexión rechazada en 10.0.0.5"))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.NotContains(t, body.Message, "10.0.0.5", "el mensaje no expone detalle interno")
}
