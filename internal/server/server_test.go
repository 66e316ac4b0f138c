package server_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"armoury-showroom/internal/server"
	"armoury-showroom/internal/store"
)

func newHandler(t *testing.T, upstreamGLB, adminPassword string) http.Handler {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	ls, err := store.NewLocalStore(t.TempDir(), log)
	require.NoError(t, err)
	srv := server.New(log, store.NewCart(ls), store.NewOrders(ls), upstreamGLB, adminPassword)
	return srv.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func basicAuth(password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:"+password))
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rec := doJSON(t, newHandler(t, "", "pw"), http.MethodGet, "/_healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestAddToCart(t *testing.T) {
	t.Parallel()

	h := newHandler(t, "", "pw")

	rec := doJSON(t, h, http.MethodPost, "/api/cart", map[string]string{"objectKey": "artifact_01"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)

	// Re-adding the same artifact is a no-op.
	rec = doJSON(t, h, http.MethodPost, "/api/cart", map[string]string{"objectKey": "artifact_01"})
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestAddToCartUnknownObjectKey(t *testing.T) {
	t.Parallel()

	rec := doJSON(t, newHandler(t, "", "pw"), http.MethodPost, "/api/cart", map[string]string{"objectKey": "artifact_99"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartViewRemoveAndEmpty(t *testing.T) {
	t.Parallel()

	h := newHandler(t, "", "pw")
	doJSON(t, h, http.MethodPost, "/api/cart", map[string]string{"objectKey": "artifact_01"})
	doJSON(t, h, http.MethodPost, "/api/cart", map[string]string{"objectKey": "artifact_03"})

	rec := doJSON(t, h, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view struct {
		Items []store.CartItem `json:"items"`
		Count int              `json:"count"`
		Total float64          `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 2, view.Count)
	assert.InDelta(t, 165, view.Total, 1e-9)

	rec = doJSON(t, h, http.MethodDelete, "/api/cart/p01", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/cart/empty", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, h, http.MethodGet, "/api/cart", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Zero(t, view.Count)
}

func TestCheckoutFlow(t *testing.T) {
	t.Parallel()

	h := newHandler(t, "", "secret")
	doJSON(t, h, http.MethodPost, "/api/cart", map[string]string{"objectKey": "artifact_01"})

	// Short name is rejected with an inline message and no order appears.
	rec := doJSON(t, h, http.MethodPost, "/api/checkout", map[string]string{
		"Name": "И", "Phone": "1234567", "Address": "Москва, Арбат 1",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/checkout", map[string]string{
		"Name": "Иван Петров", "Phone": "+7 900 000 00 00", "Address": "Москва, Арбат 1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var order store.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, "cod", order.PaymentMethod)
	assert.Equal(t, store.StatusNew, order.Status)
	assert.InDelta(t, 120, order.TotalEur, 1e-9)

	// Cart is cleared by the successful submission.
	rec = doJSON(t, h, http.MethodGet, "/api/cart", nil)
	var view struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Zero(t, view.Count)

	// And the order is visible in the admin list.
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", basicAuth("secret"))
	adminRec := httptest.NewRecorder()
	h.ServeHTTP(adminRec, req)
	require.Equal(t, http.StatusOK, adminRec.Code)
	var listing struct {
		Orders []store.Order        `json:"orders"`
		Stats  map[store.Status]int `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(adminRec.Body.Bytes(), &listing))
	require.Len(t, listing.Orders, 1)
	assert.Equal(t, order.ID, listing.Orders[0].ID)
	assert.Equal(t, 1, listing.Stats[store.StatusNew])
}

func TestAdminGate(t *testing.T) {
	t.Parallel()

	h := newHandler(t, "", "secret")

	t.Run("no credentials", func(t *testing.T) {
		t.Parallel()
		rec := doJSON(t, h, http.MethodGet, "/admin/orders", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, `Basic realm="Admin Area", charset="UTF-8"`, rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.Header.Set("Authorization", basicAuth("nope"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage encoding", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.Header.Set("Authorization", "Basic !!!not-base64!!!")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("correct password, username ignored", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		cred := base64.StdEncoding.EncodeToString([]byte("whoever:secret"))
		req.Header.Set("Authorization", "Basic "+cred)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-admin paths bypass the gate", func(t *testing.T) {
		t.Parallel()
		rec := doJSON(t, h, http.MethodGet, "/api/products", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAdminGateRejectsAllWithoutConfiguredPassword(t *testing.T) {
	t.Parallel()

	h := newHandler(t, "", "")
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", basicAuth(""))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOrderMutations(t *testing.T) {
	t.Parallel()

	h := newHandler(t, "", "secret")
	doJSON(t, h, http.MethodPost, "/api/cart", map[string]string{"objectKey": "artifact_05"})
	rec := doJSON(t, h, http.MethodPost, "/api/checkout", map[string]string{
		"Name": "Иван", "Phone": "1234567", "Address": "Москва, Арбат 1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var order store.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))

	adminDo := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Authorization", basicAuth("secret"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	res := adminDo(http.MethodPost, "/admin/orders/"+order.ID+"/status", map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusOK, res.Code)

	res = adminDo(http.MethodPost, "/admin/orders/"+order.ID+"/status", map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = adminDo(http.MethodPost, "/admin/orders/ord_missing/status", map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = adminDo(http.MethodDelete, "/admin/orders/"+order.ID, nil)
	assert.Equal(t, http.StatusNoContent, res.Code)

	res = adminDo(http.MethodDelete, "/admin/orders/"+order.ID, nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestSceneAssetProxy(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		payload := []byte("glTF-binary-bytes")
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write(payload)
		}))
		defer upstream.Close()

		rec := doJSON(t, newHandler(t, upstream.URL, "pw"), http.MethodGet, "/api/armoury.glb", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "model/gltf-binary", rec.Header().Get("Content-Type"))
		assert.Equal(t, "public, max-age=31536000, immutable", rec.Header().Get("Cache-Control"))
		assert.Equal(t, payload, rec.Body.Bytes())
	})

	t.Run("upstream failure", func(t *testing.T) {
		t.Parallel()
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer upstream.Close()

		rec := doJSON(t, newHandler(t, upstream.URL, "pw"), http.MethodGet, "/api/armoury.glb", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to fetch GLB: 502", rec.Body.String())
	})

	t.Run("unreachable upstream", func(t *testing.T) {
		t.Parallel()
		rec := doJSON(t, newHandler(t, "http://127.0.0.1:1/armoury.glb", "pw"), http.MethodGet, "/api/armoury.glb", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to fetch GLB", rec.Body.String())
	})
}

func TestConcurrentCartRequests(t *testing.T) {
	t.Parallel()

	h := newHandler(t, "", "pw")
	keys := []string{
		"artifact_01", "artifact_02", "artifact_03", "artifact_04",
		"artifact_05", "artifact_06", "artifact_07", "artifact_08",
	}

	var wg sync.WaitGroup
	for _, key := range keys {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				var buf bytes.Buffer
				json.NewEncoder(&buf).Encode(map[string]string{"objectKey": key})
				req := httptest.NewRequest(http.MethodPost, "/api/cart", &buf)
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, req)

				view := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
				h.ServeHTTP(httptest.NewRecorder(), view)
			}
		}(key)
	}
	wg.Wait()

	rec := doJSON(t, h, http.MethodGet, "/api/cart", nil)
	var view struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, len(keys), view.Count)
}

func TestProductsListing(t *testing.T) {
	t.Parallel()

	rec := doJSON(t, newHandler(t, "", "pw"), http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var products map[string]struct {
		ID    string `json:"id"`
		Price string `json:"price"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 10)
	assert.Equal(t, "p01", products["artifact_01"].ID)
	assert.Equal(t, "€120", products["artifact_01"].Price)
}
