package woo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CSCSoftware/woohoo/config"
)

// newTestClient builds a client pointed at an httptest server acting as the
// WooCommerce store.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		StoreURL:       srv.URL,
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
		APIVersion:     "wc/v3",
		TimeoutSeconds: 5,
	}
	client, err := New(cfg, nil)
	require.NoError(t, err)
	return client, srv
}

func jsonHandler(t *testing.T, status int, payload any) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}
}

func TestListProducts_AuthAndDefaultPagination(t *testing.T) {
	var gotPath, gotKey, gotSecret, gotPerPage string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		q := r.URL.Query()
		gotKey = q.Get("consumer_key")
		gotSecret = q.Get("consumer_secret")
		gotPerPage = q.Get("per_page")
		w.Write([]byte(`[{"id": 1, "name": "Mug"}]`))
	}))

	records, err := client.ListProducts(context.Background(), ListOptions{})
	require.NoError(t, err)

	assert.Equal(t, "/wp-json/wc/v3/products", gotPath)
	assert.Equal(t, "ck_test", gotKey)
	assert.Equal(t, "cs_test", gotSecret)
	assert.Equal(t, "10", gotPerPage)
	require.Len(t, records, 1)
	assert.Equal(t, "Mug", records[0]["name"])
}

func TestListProducts_PageAndFilters(t *testing.T) {
	var got map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{
			"page":     q.Get("page"),
			"per_page": q.Get("per_page"),
			"status":   q.Get("status"),
		}
		w.Write([]byte(`[]`))
	}))

	_, err := client.ListProducts(context.Background(), ListOptions{
		Page:    3,
		PerPage: 25,
		Filters: map[string]string{"status": "draft"},
	})
	require.NoError(t, err)

	assert.Equal(t, "3", got["page"])
	assert.Equal(t, "25", got["per_page"])
	assert.Equal(t, "draft", got["status"])
}

func TestListProducts_ReturnsStoreOrder(t *testing.T) {
	client, _ := newTestClient(t, jsonHandler(t, http.StatusOK, []map[string]any{
		{"id": 9, "name": "Zebra"},
		{"id": 2, "name": "Apple"},
	}))

	records, err := client.ListProducts(context.Background(), ListOptions{PerPage: 2})
	require.NoError(t, err)
	require.Len(t, records, 2)
	// No local re-sorting: whatever the store returns comes back verbatim
	assert.Equal(t, "Zebra", records[0]["name"])
	assert.Equal(t, "Apple", records[1]["name"])
}

func TestGetOrder(t *testing.T) {
	var gotPath, gotMethod string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Write([]byte(`{"id": 42, "status": "processing"}`))
	}))

	record, err := client.GetOrder(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/wp-json/wc/v3/orders/42", gotPath)
	assert.Equal(t, "processing", record["status"])
}

func TestGet_InvalidIDMakesNoRequest(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	_, err := client.GetProduct(context.Background(), 0)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindValidation, apiErr.Kind)
	assert.Equal(t, int32(0), calls.Load())
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   ErrorKind
	}{
		{name: "bad request", status: http.StatusBadRequest, kind: KindValidation},
		{name: "unauthorized", status: http.StatusUnauthorized, kind: KindAuth},
		{name: "forbidden", status: http.StatusForbidden, kind: KindAuth},
		{name: "not found", status: http.StatusNotFound, kind: KindNotFound},
		{name: "server error", status: http.StatusInternalServerError, kind: KindTransient},
		{name: "bad gateway", status: http.StatusBadGateway, kind: KindTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, jsonHandler(t, tt.status, map[string]any{
				"code":    "woocommerce_rest_error",
				"message": "store said no",
			}))

			_, err := client.GetProduct(context.Background(), 1)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, "store said no", apiErr.Message)
		})
	}
}

func TestAuthFailure_SameKindAcrossResources(t *testing.T) {
	client, _ := newTestClient(t, jsonHandler(t, http.StatusUnauthorized, map[string]any{
		"code":    "woocommerce_rest_cannot_view",
		"message": "invalid signature",
	}))

	ctx := context.Background()
	calls := []func() error{
		func() error { _, err := client.ListProducts(ctx, ListOptions{}); return err },
		func() error { _, err := client.GetOrder(ctx, 5); return err },
		func() error { _, err := client.CreateCustomer(ctx, map[string]any{"email": "a@b.com"}); return err },
	}

	for _, call := range calls {
		var apiErr *APIError
		require.ErrorAs(t, call(), &apiErr)
		assert.Equal(t, KindAuth, apiErr.Kind)
	}
}

func TestError_NonJSONBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	}))

	_, err := client.GetProduct(context.Background(), 1)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "upstream exploded", apiErr.Message)
}

func TestNetworkFailure_Transient(t *testing.T) {
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := client.ListOrders(context.Background(), ListOptions{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindTransient, apiErr.Kind)
	assert.Equal(t, 0, apiErr.Status)
}

func TestCreateOrder_PostsBody(t *testing.T) {
	var gotMethod, gotContentType string
	var gotBody map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 101, "status": "pending"}`))
	}))

	body := map[string]any{
		"payment_method": "bacs",
		"line_items":     []any{map[string]any{"product_id": 1, "quantity": 2}},
	}
	record, err := client.CreateOrder(context.Background(), body)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "bacs", gotBody["payment_method"])
	assert.Equal(t, float64(101), record["id"])
}

func TestCreate_EmptyBodyMakesNoRequest(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	_, err := client.CreateProduct(context.Background(), nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindValidation, apiErr.Kind)
	assert.Equal(t, int32(0), calls.Load())
}

func TestUpdateCustomer_PutsBody(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"id": 7, "email": "new@example.com"}`))
	}))

	record, err := client.UpdateCustomer(context.Background(), 7, map[string]any{"email": "new@example.com"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/wp-json/wc/v3/customers/7", gotPath)
	assert.Equal(t, "new@example.com", record["email"])
}

func TestDelete_ForceFlag(t *testing.T) {
	var gotMethod, gotForce string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotForce = r.URL.Query().Get("force")
		w.Write([]byte(`{"id": 3}`))
	})

	client, _ := newTestClient(t, handler)
	ctx := context.Background()

	_, err := client.DeleteProduct(ctx, 3, true)
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "true", gotForce)

	_, err = client.DeleteProduct(ctx, 3, false)
	require.NoError(t, err)
	assert.Empty(t, gotForce)
}

func TestBatchUpdateProducts(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"update": [{"id": 1}, {"id": 2}]}`))
	}))

	updates := []map[string]any{
		{"id": 1, "description": "new"},
		{"id": 2, "short_description": "also new"},
	}
	result, err := client.BatchUpdateProducts(context.Background(), updates)
	require.NoError(t, err)

	assert.Equal(t, "/wp-json/wc/v3/products/batch", gotPath)
	assert.Len(t, gotBody["update"], 2)
	assert.Len(t, result["update"], 2)
}

func TestBatchUpdateProducts_Validation(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	ctx := context.Background()

	_, err := client.BatchUpdateProducts(ctx, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindValidation, apiErr.Kind)

	_, err = client.BatchUpdateProducts(ctx, []map[string]any{{"description": "no id"}})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindValidation, apiErr.Kind)

	assert.Equal(t, int32(0), calls.Load())
}

func TestListCategories_Path(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[{"id": 1, "name": "Hoodies", "count": 4}]`))
	}))

	records, err := client.ListCategories(context.Background(), ListOptions{})
	require.NoError(t, err)

	assert.Equal(t, "/wp-json/wc/v3/products/categories", gotPath)
	require.Len(t, records, 1)
}

func TestSystemStatus_Path(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"environment": {"version": "8.0.0"}}`))
	}))

	record, err := client.SystemStatus(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/wp-json/wc/v3/system_status", gotPath)
	assert.NotNil(t, record["environment"])
}

func TestCancelledContext_AbortsCall(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListProducts(ctx, ListOptions{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindTransient, apiErr.Kind)
}
