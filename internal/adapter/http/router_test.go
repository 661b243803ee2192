package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/FernandoNarvaez1904/ecommerce-expo/configs"
	"github.com/FernandoNarvaez1904/ecommerce-expo/internal/adapter/http/middleware"
	domain "github.com/FernandoNarvaez1904/ecommerce-expo/internal/entity"
	"github.com/FernandoNarvaez1904/ecommerce-expo/internal/logging"
	"github.com/FernandoNarvaez1904/ecommerce-expo/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is a minimal in-memory usecase.Store for handler tests. The
// transactional fidelity lives in the usecase package's own tests; here the
// store only needs to be correct for sequential requests.
type fakeStore struct {
	items  map[int64]domain.Item
	orders map[string]domain.Order
	seq    []string
}

func (s *fakeStore) WithinTx(_ context.Context, fn func(tx usecase.Tx) error) error {
	return fn((*fakeTx)(s))
}

func (s *fakeStore) OrdersByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for i := len(s.seq) - 1; i >= 0; i-- {
		if o := s.orders[s.seq[i]]; o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *fakeStore) AllOrders(context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for i := len(s.seq) - 1; i >= 0; i-- {
		out = append(out, s.orders[s.seq[i]])
	}
	return out, nil
}

type fakeTx fakeStore

func (t *fakeTx) ItemsForUpdate(_ context.Context, ids []int64) ([]domain.Item, error) {
	var out []domain.Item
	for _, id := range ids {
		if it, ok := t.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (t *fakeTx) UpdateItemStock(_ context.Context, itemID, newStock int64) error {
	it := t.items[itemID]
	it.Stock = newStock
	t.items[itemID] = it
	return nil
}

func (t *fakeTx) InsertOrder(_ context.Context, o *domain.Order) error {
	t.orders[o.ID] = *o
	t.seq = append(t.seq, o.ID)
	return nil
}

func (t *fakeTx) OrderForUpdate(_ context.Context, id string) (*domain.Order, error) {
	o, ok := t.orders[id]
	if !ok {
		return nil, usecase.ErrNotFound
	}
	return &o, nil
}

func (t *fakeTx) UpdateOrderStatus(_ context.Context, id string, to domain.Status) error {
	o := t.orders[id]
	o.Status = to
	t.orders[id] = o
	return nil
}

type fakeItemRepo struct{ store *fakeStore }

func (r fakeItemRepo) All(context.Context) ([]domain.Item, error) {
	var out []domain.Item
	for _, it := range r.store.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeItemRepo) ByID(_ context.Context, id int64) (*domain.Item, error) {
	it, ok := r.store.items[id]
	if !ok {
		return nil, usecase.ErrNotFound
	}
	return &it, nil
}

func (r fakeItemRepo) Insert(_ context.Context, it *domain.Item) error {
	it.ID = int64(len(r.store.items) + 1)
	r.store.items[it.ID] = *it
	return nil
}

func (r fakeItemRepo) Update(_ context.Context, it *domain.Item) error {
	if _, ok := r.store.items[it.ID]; !ok {
		return usecase.ErrNotFound
	}
	r.store.items[it.ID] = *it
	return nil
}

func (r fakeItemRepo) AdjustStock(_ context.Context, itemID, delta int64) (*domain.Item, error) {
	it, ok := r.store.items[itemID]
	if !ok {
		return nil, usecase.ErrNotFound
	}
	it.Stock += delta
	r.store.items[itemID] = it
	return &it, nil
}

func testRouter(t *testing.T) (*gin.Engine, *fakeStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logging.Init("test", filepath.Join(t.TempDir(), "app.log"))

	var cfg configs.Config
	cfg.Security.JWTSecret = "test-secret"
	cfg.Security.Issuer = "storefront-api"
	cfg.Security.Audience = "storefront-clients"
	cfg.Security.TTL = 5 * time.Minute

	store := &fakeStore{
		items: map[int64]domain.Item{
			1: {ID: 1, Name: "coffee beans", Price: decimal.RequireFromString("12.50"), Stock: 3},
		},
		orders: map[string]domain.Order{},
	}

	engine := usecase.NewOrderEngine(store, nil, nil)
	catalog := usecase.NewCatalog(fakeItemRepo{store: store}, nil)

	router := NewRouter(
		NewOrderHandler(engine),
		NewItemHandler(catalog),
		NewTokenHandler(cfg),
		middleware.NewAuthz(cfg),
	)
	return router, store
}

func issueToken(t *testing.T, r *gin.Engine, userID, secret string) string {
	t.Helper()
	form := url.Values{"user_id": {userID}, "user_secret": {secret}}
	req := httptest.NewRequest(http.MethodPost, "/v1/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken
}

func doJSON(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCatalogReadsArePublic(t *testing.T) {
	r, _ := testRouter(t)

	w := doJSON(r, http.MethodGet, "/v1/items", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/v1/items/1", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/v1/items/42", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrdersRequireAuth(t *testing.T) {
	r, _ := testRouter(t)

	w := doJSON(r, http.MethodPost, "/v1/orders", "", `{"total":"12.50","items":[{"itemId":1,"quantity":1}]}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/v1/orders", "bogus-token", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	r, store := testRouter(t)
	shopperTok := issueToken(t, r, "demo-shopper", "demo-shopper-secret")
	adminTok := issueToken(t, r, "demo-admin", "demo-admin-secret")

	// place
	w := doJSON(r, http.MethodPost, "/v1/orders", shopperTok,
		`{"total":"25.00","items":[{"itemId":1,"quantity":2}]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var placed struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	assert.Equal(t, "Placed", placed.Status)
	assert.EqualValues(t, 1, store.items[1].Stock)

	// non-admin cannot complete
	w = doJSON(r, http.MethodPost, "/v1/orders/"+placed.ID+"/complete", shopperTok, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// owner cancels, stock restored
	w = doJSON(r, http.MethodPost, "/v1/orders/"+placed.ID+"/cancel", shopperTok, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, store.items[1].Stock)

	// second cancel rejected
	w = doJSON(r, http.MethodPost, "/v1/orders/"+placed.ID+"/cancel", shopperTok, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// admin list sees the order
	w = doJSON(r, http.MethodGet, "/v1/orders", adminTok, "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 1)
	assert.Equal(t, placed.ID, all[0].ID)
}

func TestErrorMapping(t *testing.T) {
	r, _ := testRouter(t)
	tok := issueToken(t, r, "demo-shopper", "demo-shopper-secret")

	// validation
	w := doJSON(r, http.MethodPost, "/v1/orders", tok, `{"total":"1.00","items":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown order
	w = doJSON(r, http.MethodPost, "/v1/orders/nope/cancel", tok, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestItemMutationsNeedAuth(t *testing.T) {
	r, _ := testRouter(t)

	w := doJSON(r, http.MethodPost, "/v1/items", "", `{"name":"grinder","price":"89.99","stock":2}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tok := issueToken(t, r, "demo-shopper", "demo-shopper-secret")
	w = doJSON(r, http.MethodPost, "/v1/items", tok, `{"name":"grinder","price":"89.99","stock":2}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPatch, "/v1/items/2", tok, `{"price":"-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
