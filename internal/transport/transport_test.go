package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ds124wfegd/visionpipe/internal/entity"
	"github.com/ds124wfegd/visionpipe/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

type stubLabelService struct {
	results map[string]*entity.LabelResult
	err     error
}

func (s *stubLabelService) LabelImage(ctx context.Context, imageID string, image []byte) (*entity.LabelResult, error) {
	return nil, errors.New("not used")
}

func (s *stubLabelService) GetResult(ctx context.Context, imageID string) (*entity.LabelResult, error) {
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("request context has no deadline")
	}
	if s.err != nil {
		return nil, s.err
	}
	result, ok := s.results[imageID]
	if !ok {
		return nil, entity.ErrResultNotFound
	}
	return result, nil
}

func newRouter(svc *stubLabelService) (*gin.Engine, *metrics.Pipeline) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := metrics.NewPipeline(reg)
	return InitRoutes(NewResultHandler(svc), reg, time.Second), m
}

func serve(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetResult(t *testing.T) {
	svc := &stubLabelService{results: map[string]*entity.LabelResult{
		"test.jpg": {
			ImageID:    "test.jpg",
			Categories: []string{"People"},
			Tags:       []entity.Tag{{Name: "Person", Confidence: 99}},
		},
	}}
	router, _ := newRouter(svc)

	tests := []struct {
		name   string
		path   string
		status int
		body   string
	}{
		{
			name:   "found",
			path:   "/results/test.jpg",
			status: http.StatusOK,
			body:   `{"image_id":"test.jpg","categories":["People"],"tags":[{"name":"Person","confidence":99}]}`,
		},
		{
			name:   "missing",
			path:   "/results/other.jpg",
			status: http.StatusNotFound,
			body:   `{"error":"Result not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, tt.path)
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestGetResultStoreFailure(t *testing.T) {
	router, _ := newRouter(&stubLabelService{err: errors.New("connection refused")})

	w := serve(router, "/results/test.jpg")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestHealthAndMetrics(t *testing.T) {
	router, m := newRouter(&stubLabelService{})
	m.ResultSaved()

	w := serve(router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = serve(router, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "visionpipe_results_saved_total 1"))
}
