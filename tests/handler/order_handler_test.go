package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamu-beverages/sales-api/internal/domain"
	"github.com/tamu-beverages/sales-api/internal/http/handler"
	"github.com/tamu-beverages/sales-api/internal/repository"
	"github.com/tamu-beverages/sales-api/internal/service"
	"github.com/tamu-beverages/sales-api/tests/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createOrderHandler(db *gorm.DB) *handler.OrderHandler {
	orderService := service.NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewClientRepository(db),
		repository.NewFlavorRepository(db),
		zap.NewNop(),
	)
	return handler.NewOrderHandler(orderService, zap.NewNop())
}

func orderRoutes(h *handler.OrderHandler) chi.Router {
	r := chi.NewRouter()
	r.Get("/orders", h.List)
	r.Post("/orders", h.Create)
	r.Get("/orders/{id}", h.Get)
	r.Put("/orders/{id}", h.Update)
	r.Delete("/orders/{id}", h.Delete)
	return r
}

func TestOrderHandler_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := orderRoutes(createOrderHandler(db))
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	client := testutil.CreateTestClient(t, db, "Duka", domain.ClientStatusApproved, &salesProfile.ID)
	flavor := testutil.CreateTestFlavor(t, db, "Passion", "1500.00")
	ctx := testutil.SalespersonContext(salesProfile)

	w := doJSON(t, router, ctx, http.MethodPost, "/orders", domain.CreateOrderRequest{
		ClientID: client.ID,
		Items: []domain.OrderItemRequest{
			{FlavorID: flavor.ID, QuantityLiters: "10"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.OrderDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "15000.00", created.TotalAmount)
	assert.Equal(t, domain.PaymentStatusOutstanding, created.PaymentStatus)
	require.Len(t, created.Items, 1)
	assert.Equal(t, "1500.00", created.Items[0].PricePerLiterAtSale)

	w = doJSON(t, router, ctx, http.MethodGet, "/orders/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOrderHandler_CreateValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := orderRoutes(createOrderHandler(db))
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	client := testutil.CreateTestClient(t, db, "Duka", domain.ClientStatusApproved, &salesProfile.ID)
	flavor := testutil.CreateTestFlavor(t, db, "Passion", "1500.00")
	ctx := testutil.SalespersonContext(salesProfile)

	t.Run("empty items", func(t *testing.T) {
		w := doJSON(t, router, ctx, http.MethodPost, "/orders", domain.CreateOrderRequest{
			ClientID: client.ID,
			Items:    []domain.OrderItemRequest{},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad quantity", func(t *testing.T) {
		w := doJSON(t, router, ctx, http.MethodPost, "/orders", domain.CreateOrderRequest{
			ClientID: client.ID,
			Items: []domain.OrderItemRequest{
				{FlavorID: flavor.ID, QuantityLiters: "abc"},
			},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		req = req.WithContext(ctx)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandler_ListDateFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := orderRoutes(createOrderHandler(db))
	_, adminProfile := testutil.CreateTestUser(t, db, "admin", domain.RoleAdmin)
	ctx := testutil.AdminContext(adminProfile)

	t.Run("malformed start_date", func(t *testing.T) {
		w := doJSON(t, router, ctx, http.MethodGet, "/orders?start_date=20-08-2026", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var errResp domain.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
		assert.Contains(t, errResp.Message, "start_date")
	})

	t.Run("malformed end_date", func(t *testing.T) {
		w := doJSON(t, router, ctx, http.MethodGet, "/orders?end_date=never", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("valid range", func(t *testing.T) {
		w := doJSON(t, router, ctx, http.MethodGet, "/orders?start_date=2026-08-01&end_date=2026-08-31", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestOrderHandler_UpdateReplacesItems(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := orderRoutes(createOrderHandler(db))
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	client := testutil.CreateTestClient(t, db, "Duka", domain.ClientStatusApproved, &salesProfile.ID)
	passion := testutil.CreateTestFlavor(t, db, "Passion", "1500.00")
	mango := testutil.CreateTestFlavor(t, db, "Mango", "2000.00")
	ctx := testutil.SalespersonContext(salesProfile)

	w := doJSON(t, router, ctx, http.MethodPost, "/orders", domain.CreateOrderRequest{
		ClientID: client.ID,
		Items:    []domain.OrderItemRequest{{FlavorID: passion.ID, QuantityLiters: "5"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.OrderDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	paid := domain.PaymentStatusPaid
	w = doJSON(t, router, ctx, http.MethodPut, "/orders/"+created.ID.String(), domain.UpdateOrderRequest{
		Items:         []domain.OrderItemRequest{{FlavorID: mango.ID, QuantityLiters: "3"}},
		PaymentStatus: &paid,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated domain.OrderDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "6000.00", updated.TotalAmount)
	assert.Equal(t, domain.PaymentStatusPaid, updated.PaymentStatus)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "Mango", updated.Items[0].FlavorName)
}

func TestOrderHandler_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := orderRoutes(createOrderHandler(db))
	_, salesProfile := testutil.CreateTestUser(t, db, "sales1", domain.RoleSalesperson)
	client := testutil.CreateTestClient(t, db, "Duka", domain.ClientStatusApproved, &salesProfile.ID)
	flavor := testutil.CreateTestFlavor(t, db, "Passion", "1500.00")
	ctx := testutil.SalespersonContext(salesProfile)

	w := doJSON(t, router, ctx, http.MethodPost, "/orders", domain.CreateOrderRequest{
		ClientID: client.ID,
		Items:    []domain.OrderItemRequest{{FlavorID: flavor.ID, QuantityLiters: "5"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.OrderDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, router, ctx, http.MethodDelete, "/orders/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, ctx, http.MethodGet, "/orders/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
