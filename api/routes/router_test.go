package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/store-service/internal/items"
	"github.com/angelmondragon/store-service/internal/stores"
	"github.com/angelmondragon/store-service/internal/tags"
	"github.com/angelmondragon/store-service/pkg/auth"
	"github.com/angelmondragon/store-service/pkg/config"
	"github.com/angelmondragon/store-service/pkg/db/dbtest"
	"github.com/angelmondragon/store-service/pkg/logger"
	"github.com/angelmondragon/store-service/pkg/metrics"
)

type harness struct {
	handler http.Handler
	token   string
}

func newHarness(t *testing.T) harness {
	t.Helper()
	cfg := &config.Config{
		App:  config.AppConfig{Env: "test"},
		HTTP: config.HTTPConfig{CORSOrigins: []string{"http://localhost:3000"}},
		JWT:  config.JWTConfig{Secret: "router-secret", ExpirationMinutes: 5},
	}
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("error"), Output: io.Discard})

	client := dbtest.New(t)
	storeRepo := stores.NewRepository(client.DB())
	itemRepo := items.NewRepository(client.DB())

	storeSvc, err := stores.NewService(storeRepo, client)
	require.NoError(t, err)
	itemSvc, err := items.NewService(itemRepo, storeRepo, client)
	require.NoError(t, err)
	tagSvc, err := tags.NewService(tags.NewRepository(client.DB()), storeRepo, itemRepo, client)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	handler := NewRouter(cfg, logg, client, storeSvc, itemSvc, tagSvc, metrics.NewHTTPMetrics(reg), reg)

	token, err := auth.MintAccessToken(cfg.JWT, time.Now(), auth.AccessTokenPayload{Subject: "alice"})
	require.NoError(t, err)
	return harness{handler: handler, token: token}
}

func (h harness) do(t *testing.T, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&out), "body=%s", rec.Body.String())
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	env := decodeBody[struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}](t, rec)
	return env.Error.Code
}

func TestHealthRoutes(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/health/live", "", false).Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/health/ready", "", false).Code)
}

func TestGatedRoutesRequireToken(t *testing.T) {
	h := newHarness(t)
	gated := []struct{ method, path, body string }{
		{http.MethodPost, "/create_store", `{"name":"Acme"}`},
		{http.MethodPut, "/store/1", `{"store_id":1,"name":"Acme"}`},
		{http.MethodDelete, "/store/1", ""},
		{http.MethodPost, "/items", `{"name":"Soap","price":1,"store_id":1}`},
		{http.MethodPut, "/item/1", `{"price":2}`},
		{http.MethodDelete, "/item/1", ""},
		{http.MethodPost, "/item/1/tag/1", ""},
		{http.MethodDelete, "/item/1/tag/1", ""},
	}
	for _, tc := range gated {
		rec := h.do(t, tc.method, tc.path, tc.body, false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec), "%s %s", tc.method, tc.path)
	}

	// tag routes stay open
	rec := h.do(t, http.MethodGet, "/store/1/tag", "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStoreItemTagScenario(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/create_store", `{"name":"Acme"}`, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	store := decodeBody[stores.StoreDTO](t, rec)
	assert.Equal(t, uint(1), store.StoreID)
	assert.Empty(t, store.Items)

	rec = h.do(t, http.MethodPost, "/items", `{"name":"Soap","price":3.5,"store_id":1}`, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decodeBody[items.ItemDTO](t, rec)
	require.NotNil(t, item.Store)
	assert.Equal(t, "Acme", item.Store.Name)

	rec = h.do(t, http.MethodPost, "/store/1/tag", `{"name":"Moisturizer"}`, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tag := decodeBody[tags.TagDTO](t, rec)

	rec = h.do(t, http.MethodPost, "/item/1/tag/1", "", true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	linked := decodeBody[tags.TagDTO](t, rec)
	require.Len(t, linked.Items, 1)
	assert.Equal(t, item.ProductID, linked.Items[0].ProductID)

	rec = h.do(t, http.MethodGet, "/item/1", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	withTag := decodeBody[items.ItemDTO](t, rec)
	require.Len(t, withTag.Tags, 1)
	assert.Equal(t, tag.TagID, withTag.Tags[0].TagID)

	rec = h.do(t, http.MethodGet, "/store/1", "", false)
	full := decodeBody[stores.StoreDTO](t, rec)
	assert.Len(t, full.Items, 1)
	assert.Len(t, full.Tags, 1)

	rec = h.do(t, http.MethodDelete, "/tag/1", "", false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "STATE_CONFLICT", errorCode(t, rec))

	rec = h.do(t, http.MethodDelete, "/item/1/tag/1", "", true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	unlinked := decodeBody[struct {
		Message string        `json:"message"`
		Item    items.ItemDTO `json:"item"`
		Tag     tags.TagDTO   `json:"tag"`
	}](t, rec)
	assert.Equal(t, "removed", unlinked.Message)
	assert.Empty(t, unlinked.Item.Tags)
	assert.Empty(t, unlinked.Tag.Items)

	rec = h.do(t, http.MethodDelete, "/tag/1", "", false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Tag deleted")
}

func TestStoreDeleteCascadesItemsAndOrphansTags(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, http.StatusCreated, h.do(t, http.MethodPost, "/create_store", `{"name":"Acme"}`, true).Code)
	require.Equal(t, http.StatusCreated, h.do(t, http.MethodPost, "/items", `{"name":"Soap","price":1,"store_id":1}`, true).Code)
	require.Equal(t, http.StatusCreated, h.do(t, http.MethodPost, "/store/1/tag", `{"name":"Bath"}`, false).Code)

	rec := h.do(t, http.MethodDelete, "/store/1", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "store deleted with store id 1")

	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/item/1", "", false).Code)

	rec = h.do(t, http.MethodGet, "/tag/1", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	orphan := decodeBody[map[string]any](t, rec)
	assert.Nil(t, orphan["store"])
}

func TestDuplicateStoreNameRejected(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, http.StatusCreated, h.do(t, http.MethodPost, "/create_store", `{"name":"Acme"}`, true).Code)
	rec := h.do(t, http.MethodPost, "/create_store", `{"name":"Acme"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CONFLICT", errorCode(t, rec))
}

func TestPutUpsertCreatesWithClientID(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodPut, "/store/7", `{"store_id":7,"name":"Seven"}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, uint(7), decodeBody[stores.StoreDTO](t, rec).StoreID)

	rec = h.do(t, http.MethodPost, "/create_store", `{"name":"Next"}`, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, uint(8), decodeBody[stores.StoreDTO](t, rec).StoreID)
}

func TestInvalidPathID(t *testing.T) {
	h := newHarness(t)
	for _, path := range []string{"/store/abc", "/store/0", "/item/-1", "/tag/1.5", "/store/2147483648"} {
		rec := h.do(t, http.MethodGet, path, "", false)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec), path)
	}

	rec := h.do(t, http.MethodPut, "/store/3000000000", `{"store_id":3000000000,"name":"Big"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestMetricsEndpointReportsRoutes(t *testing.T) {
	h := newHarness(t)
	h.do(t, http.MethodGet, "/stores", "", false)

	rec := h.do(t, http.MethodGet, "/metrics", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/stores",status="200"} 1`)
}
