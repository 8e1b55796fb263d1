package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"watchlist-api/internal/metrics"
)

func setupTestRouter(m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Metrics(m))
	return router
}

func newTestMetrics() *metrics.Metrics {
	return metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
}

func TestMetricsMiddleware_Integration(t *testing.T) {
	m := newTestMetrics()
	router := setupTestRouter(m)

	router.GET("/api/watchlist/lists", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.POST("/api/watchlist/lists", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	router.GET("/api/watchlist/lists/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.DELETE("/api/watchlist/lists/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	testCases := []struct {
		name       string
		method     string
		path       string
		statusCode int
	}{
		{"GET lists", "GET", "/api/watchlist/lists", http.StatusOK},
		{"POST list", "POST", "/api/watchlist/lists", http.StatusCreated},
		{"GET list by ID", "GET", "/api/watchlist/lists/123", http.StatusOK},
		{"DELETE list", "DELETE", "/api/watchlist/lists/456", http.StatusNoContent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
		})
	}
}

func TestMetricsMiddleware_ExcludedEndpoints(t *testing.T) {
	m := newTestMetrics()
	router := setupTestRouter(m)

	router.GET("/metrics", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/api/watchlist/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	excludedPaths := []string{
		"/metrics",
		"/health",
		"/api/watchlist/health",
	}

	for _, path := range excludedPaths {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest("GET", path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("Expected status 200, got %d", w.Code)
			}
		})
	}
}

func TestMetricsMiddleware_ErrorStatusCodes(t *testing.T) {
	m := newTestMetrics()
	router := setupTestRouter(m)

	router.GET("/api/watchlist/not-found", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	router.POST("/api/watchlist/bad-request", func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
	})
	router.GET("/api/watchlist/server-error", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	testCases := []struct {
		name       string
		method     string
		path       string
		statusCode int
	}{
		{"404 Not Found", "GET", "/api/watchlist/not-found", http.StatusNotFound},
		{"400 Bad Request", "POST", "/api/watchlist/bad-request", http.StatusBadRequest},
		{"500 Server Error", "GET", "/api/watchlist/server-error", http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
		})
	}
}
