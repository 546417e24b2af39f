package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movistock/internal/domain/catalogs/product"
	"movistock/internal/domain/catalogs/unit"
	"movistock/internal/domain/movement"
	"movistock/internal/infrastructure/http/v1/dto"
	"movistock/internal/infrastructure/storage/memory"
	"movistock/pkg/logger"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	sessions := movement.NewManager(0)
	return NewRouter(RouterConfig{
		Logger:    logger.Default(),
		Movements: movement.NewService(sessions, movement.LogRecorder{}),
		Sessions:  sessions,
		Products:  product.NewService(memory.NewProductRepo()),
		Units:     unit.NewService(memory.NewUnitRepo()),
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func TestRouter_SessionLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// Open a session; it starts with one empty row.
	w := doJSON(t, router, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	sess := decode[dto.SessionResponse](t, w)
	require.Len(t, sess.Items, 1)
	assert.Equal(t, "none", sess.MovementType)
	assert.Equal(t, "0.00", sess.Total)

	base := "/api/v1/sessions/" + sess.ID

	// Choose stock-in; invoice fields become visible.
	w = doJSON(t, router, http.MethodPatch, base, map[string]string{"movementType": "in"})
	require.Equal(t, http.StatusOK, w.Code)
	sess = decode[dto.SessionResponse](t, w)
	assert.True(t, sess.Visibility.InvoiceGroup)
	assert.False(t, sess.Visibility.ExitReasonGroup)

	// Price the first row.
	w = doJSON(t, router, http.MethodPatch, base+"/items/1", map[string]string{"field": "quantity", "value": "3"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodPatch, base+"/items/1", map[string]string{"field": "unitPrice", "value": "2.505"})
	require.Equal(t, http.StatusOK, w.Code)
	update := decode[dto.ItemUpdateResponse](t, w)
	assert.Equal(t, "7.52", update.Item.Subtotal)
	assert.Equal(t, "7.52", update.Total)

	// Append a row, then remove the first; the survivor is reindexed to 1.
	w = doJSON(t, router, http.MethodPost, base+"/items", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	sess = decode[dto.SessionResponse](t, w)
	require.Len(t, sess.Items, 2)

	w = doJSON(t, router, http.MethodDelete, base+"/items/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sess = decode[dto.SessionResponse](t, w)
	require.Len(t, sess.Items, 1)
	assert.Equal(t, 1, sess.Items[0].Position)
	assert.Equal(t, "0.00", sess.Total)

	// The last row cannot be removed.
	w = doJSON(t, router, http.MethodDelete, base+"/items/1", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errBody := decode[map[string]any](t, w)
	assert.Equal(t, "LAST_ITEM", errBody["code"])

	// Close, then the session is gone.
	w = doJSON(t, router, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, router, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Submit(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	sess := decode[dto.SessionResponse](t, w)
	base := "/api/v1/sessions/" + sess.ID

	// Submitting an untouched form fails validation.
	w = doJSON(t, router, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	errBody := decode[map[string]any](t, w)
	assert.Equal(t, "select a movement type", errBody["message"])

	w = doJSON(t, router, http.MethodPatch, base, map[string]string{
		"movementType": "out",
		"exitReason":   "expired",
	})
	require.Equal(t, http.StatusOK, w.Code)

	for field, value := range map[string]string{
		"product":  "2",
		"lot":      "L-10",
		"expiry":   "2027-03-01",
		"quantity": "4",
	} {
		w = doJSON(t, router, http.MethodPatch, base+"/items/1", map[string]string{"field": field, "value": value})
		require.Equal(t, http.StatusOK, w.Code, "field %s: %s", field, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	submitted := decode[dto.SubmitResponse](t, w)
	assert.NotEmpty(t, submitted.MovementID)
	assert.Equal(t, "movement recorded successfully", submitted.Message)
}

func TestRouter_InvalidRequests(t *testing.T) {
	router := newTestRouter(t)

	// Malformed session id.
	w := doJSON(t, router, http.MethodGet, "/api/v1/sessions/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	sess := decode[dto.SessionResponse](t, w)
	base := "/api/v1/sessions/" + sess.ID

	// Positions are 1-based.
	w = doJSON(t, router, http.MethodPatch, base+"/items/0", map[string]string{"field": "lot", "value": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Field name is required.
	w = doJSON(t, router, http.MethodPatch, base+"/items/1", map[string]string{"value": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown field is rejected.
	w = doJSON(t, router, http.MethodPatch, base+"/items/1", map[string]string{"field": "color", "value": "blue"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Out-of-range position on an existing session.
	w = doJSON(t, router, http.MethodPatch, fmt.Sprintf("%s/items/%d", base, 9), map[string]string{"field": "lot", "value": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Catalogs(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/catalog/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	products := decode[struct {
		Items []dto.ProductResponse `json:"items"`
	}](t, w)
	assert.Len(t, products.Items, 5)

	w = doJSON(t, router, http.MethodGet, "/api/v1/catalog/units", nil)
	require.Equal(t, http.StatusOK, w.Code)
	units := decode[struct {
		Items []dto.UnitResponse `json:"items"`
	}](t, w)
	assert.Len(t, units.Items, 4)
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "ok", body["status"])

	// No database pool configured: readiness is unconditional.
	w = doJSON(t, router, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
