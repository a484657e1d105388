package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/apperror"
	"backoffice/internal/domain/shift"
	"backoffice/internal/infrastructure/http/v1/handlers"
	"backoffice/internal/infrastructure/storage/memory"
	"backoffice/internal/metrics"
	"backoffice/pkg/logger"
)

type testServer struct {
	h     http.Handler
	store *memory.ShiftStore
}

func newTestServer(t *testing.T, compressFrom int) *testServer {
	return newTestServerWith(t, func(cfg *RouterConfig) { cfg.CompressionMinBytes = compressFrom })
}

func newTestServerWith(t *testing.T, configure func(*RouterConfig)) *testServer {
	t.Helper()

	store := memory.NewShiftStore()
	reg := prometheus.NewRegistry()
	svc := shift.NewService(shift.ServiceConfig{
		Repo:      store,
		TxManager: memory.NewTxManager(store),
		Batch:     shift.DefaultBatchOptions(),
		Metrics:   metrics.NewSearchMetrics(reg),
	})

	cfg := RouterConfig{
		Logger:   logger.Nop(),
		Health:   handlers.NewHealthHandler(store, "test", nil),
		Shifts:   svc,
		Location: time.UTC,
		Metrics:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}
	configure(&cfg)

	router, err := NewRouter(cfg)
	require.NoError(t, err)

	return &testServer{h: router, store: store}
}

func (s *testServer) do(t *testing.T, method, target string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

type listBody struct {
	Items      []shift.ShiftView `json:"items"`
	TotalCount int               `json:"totalCount"`
}

func shiftBody(number, shop int, closeTime string, purchases int) map[string]any {
	closeAt, _ := time.Parse(time.RFC3339, closeTime)
	open := closeAt.Add(-8 * time.Hour)

	ps := make([]map[string]any, 0, purchases)
	for i := 0; i < purchases; i++ {
		ps = append(ps, map[string]any{
			"purchaseTime": open.Add(time.Duration(i+1) * time.Minute),
			"positions": []map[string]any{
				{"barcode": "4600000000001", "article": "A-1", "name": "Milk", "price": "1.25"},
				{"barcode": "4600000000002", "article": "A-2", "name": "Bread", "price": "0.75"},
			},
		})
	}

	return map[string]any{
		"shiftNumber": number,
		"shopNumber":  shop,
		"cashNumber":  1,
		"openTime":    open,
		"closeTime":   closeAt,
		"purchases":   ps,
	}
}

func (s *testServer) create(t *testing.T, body map[string]any) shift.ShiftView {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/shifts", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[shift.ShiftView](t, w)
}

func TestSearch_ShallowByShopAndDay(t *testing.T) {
	s := newTestServer(t, 0)
	s.create(t, shiftBody(1, 1, "2024-01-01T20:00:00Z", 1))
	s.create(t, shiftBody(2, 2, "2024-01-01T21:00:00Z", 1))

	w := s.do(t, http.MethodGet, "/api/v1/shifts/search?shopNumber=1&date=2024-01-01", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode[listBody](t, w)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 1, body.Items[0].Number)
	assert.NotNil(t, body.Items[0].Purchases)
	assert.Empty(t, body.Items[0].Purchases)
	assert.Contains(t, w.Body.String(), `"purchases":[]`)
}

func TestSearch_Deep(t *testing.T) {
	s := newTestServer(t, 0)
	s.create(t, shiftBody(1, 1, "2024-01-01T20:00:00Z", 2))

	w := s.do(t, http.MethodGet, "/api/v1/shifts/search?date=2024-01-01&deep=true", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode[listBody](t, w)
	require.Len(t, body.Items, 1)
	require.Len(t, body.Items[0].Purchases, 2)
	assert.Len(t, body.Items[0].Purchases[0].Positions, 2)
	assert.Equal(t, "4.00", body.Items[0].Total.StringFixed(2))
}

func TestSearch_EmptyResultIsNotFound(t *testing.T) {
	s := newTestServer(t, 0)

	w := s.do(t, http.MethodGet, "/api/v1/shifts/search?date=2024-01-01", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeNotFound, decode[errorBody](t, w).Code)
}

func TestSearch_InvalidCriteria(t *testing.T) {
	s := newTestServer(t, 0)

	tests := []struct {
		name  string
		query string
	}{
		{"no date", "shopNumber=1"},
		{"date and range", "date=2024-01-01&startDate=2024-01-01&endDate=2024-01-02"},
		{"inverted range", "startDate=2024-01-05&endDate=2024-01-01"},
		{"half range", "startDate=2024-01-05"},
		{"bad format", "date=01.01.2024"},
		{"bad number", "date=2024-01-01&shopNumber=abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodGet, "/api/v1/shifts/search?"+tt.query, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, apperror.CodeValidation, decode[errorBody](t, w).Code)
		})
	}
}

func TestSearchBatch(t *testing.T) {
	s := newTestServer(t, 0)
	s.create(t, shiftBody(1, 1, "2024-01-01T10:00:00Z", 0))
	s.create(t, shiftBody(2, 1, "2024-01-02T10:00:00Z", 0))
	s.create(t, shiftBody(3, 1, "2024-01-03T10:00:00Z", 0))

	w := s.do(t, http.MethodPost, "/api/v1/shifts/search/batch", map[string]any{
		"criteria": []map[string]any{
			{"startDate": "2024-01-01", "endDate": "2024-01-02"},
			{"startDate": "2024-01-02", "endDate": "2024-01-03"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode[listBody](t, w)
	require.Len(t, body.Items, 3)
	assert.Equal(t, 3, body.TotalCount)
	assert.Equal(t, 1, body.Items[0].Number)
	assert.Equal(t, 2, body.Items[1].Number)
	assert.Equal(t, 3, body.Items[2].Number)
}

func TestSearchBatch_EmptyIsOK(t *testing.T) {
	s := newTestServer(t, 0)

	w := s.do(t, http.MethodPost, "/api/v1/shifts/search/batch", map[string]any{
		"criteria": []map[string]any{{"date": "2024-01-01"}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"totalCount":0}`, w.Body.String())
}

func TestSearchBatch_InvalidElementReportsIndex(t *testing.T) {
	s := newTestServer(t, 0)

	w := s.do(t, http.MethodPost, "/api/v1/shifts/search/batch", map[string]any{
		"criteria": []map[string]any{
			{"date": "2024-01-01"},
			{"shopNumber": 1},
		},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, 1, decode[errorBody](t, w).Details["index"])
}

func TestShiftLifecycle(t *testing.T) {
	s := newTestServer(t, 0)
	created := s.create(t, shiftBody(7, 3, "2024-02-01T18:00:00Z", 1))

	w := s.do(t, http.MethodGet, "/api/v1/shifts/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[shift.ShiftView](t, w)
	assert.Equal(t, 7, got.Number)
	require.Len(t, got.Purchases, 1)
	assert.Equal(t, 2, got.Purchases[0].Positions[1].LineNo)

	w = s.do(t, http.MethodDelete, "/api/v1/shifts/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, s.store.Len())

	w = s.do(t, http.MethodGet, "/api/v1/shifts/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/shifts/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateShift_Invalid(t *testing.T) {
	s := newTestServer(t, 0)

	body := shiftBody(1, 1, "2024-01-01T20:00:00Z", 1)
	body["closeTime"] = "2023-12-31T00:00:00Z"

	w := s.do(t, http.MethodPost, "/api/v1/shifts", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, s.store.Len())
}

func TestCompression(t *testing.T) {
	s := newTestServer(t, 256)
	s.create(t, shiftBody(1, 1, "2024-01-01T20:00:00Z", 10))

	plain := s.do(t, http.MethodGet, "/api/v1/shifts/search?date=2024-01-01&deep=true", nil)
	require.Equal(t, http.StatusOK, plain.Code)
	assert.Empty(t, plain.Header().Get("Content-Encoding"))

	w := s.do(t, http.MethodGet, "/api/v1/shifts/search?date=2024-01-01&deep=true", nil, "Accept-Encoding", "gzip, zstd")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "zstd", w.Header().Get("Content-Encoding"))

	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer dec.Close()
	raw, err := dec.DecodeAll(w.Body.Bytes(), nil)
	require.NoError(t, err)
	assert.JSONEq(t, plain.Body.String(), string(raw))

	// small bodies stay plain
	w = s.do(t, http.MethodGet, "/health/live", nil, "Accept-Encoding", "zstd")
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, 0)

	w := s.do(t, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	s.do(t, http.MethodGet, "/api/v1/shifts/search?date=2024-01-01", nil)

	w = s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `backoffice_shift_searches_total{mode="single"`), w.Body.String())
}

func TestCatalogRoutesAbsentWithoutServices(t *testing.T) {
	s := newTestServer(t, 0)

	w := s.do(t, http.MethodGet, "/api/v1/catalog/shops", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchBatch_TooManyCriteriaRejectedBeforeParsing(t *testing.T) {
	s := newTestServerWith(t, func(cfg *RouterConfig) { cfg.MaxBatchSize = 2 })

	w := s.do(t, http.MethodPost, "/api/v1/shifts/search/batch", map[string]any{
		"criteria": []map[string]any{
			{"date": "2024-01-01"},
			{"date": "2024-01-02"},
			{"date": "not-a-date"},
		},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[errorBody](t, w)
	assert.Equal(t, apperror.CodeValidation, body.Code)
	assert.EqualValues(t, 2, body.Details["max"])
	assert.NotContains(t, body.Details, "index")
}

// panickingShifts fails every search with a panic.
type panickingShifts struct {
	handlers.ShiftService
}

func (panickingShifts) Find(context.Context, shift.Criteria) ([]shift.ShiftView, error) {
	panic("search exploded")
}

func TestPanicIsInternalError(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
	}{
		{name: "plain"},
		{name: "zstd accepted", headers: []string{"Accept-Encoding", "zstd"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServerWith(t, func(cfg *RouterConfig) {
				cfg.Shifts = panickingShifts{}
				cfg.CompressionMinBytes = 1
			})

			w := s.do(t, http.MethodGet, "/api/v1/shifts/search?date=2024-01-01", nil, tt.headers...)

			require.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Empty(t, w.Header().Get("Content-Encoding"))
			body := decode[errorBody](t, w)
			assert.Equal(t, apperror.CodeInternal, body.Code)
			assert.NotContains(t, w.Body.String(), "search exploded")
		})
	}
}
